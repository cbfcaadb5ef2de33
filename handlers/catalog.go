package handlers

import (
	"net/http"

	"github.com/gorilla/mux"

	"ramotsav.com/project-ramotsav/catalog"
)

func GetQuote(cat *catalog.Catalog) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, cat.Quote)
	}
}

func GetPlaylists(cat *catalog.Catalog) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, cat.Playlists)
	}
}

func GetPlaylist(cat *catalog.Catalog) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		p, ok := cat.Playlist(mux.Vars(r)["id"])
		if !ok {
			http.Error(w, "Playlist not found", http.StatusNotFound)
			return
		}
		writeJSON(w, http.StatusOK, p)
	}
}
