package routes

import (
	"github.com/gorilla/mux"

	"ramotsav.com/project-ramotsav/handlers"
)

func CreateCatalogRoutes(d *Deps, router *mux.Router) *mux.Router {
	router.HandleFunc("/quote", handlers.GetQuote(d.Catalog)).Methods("GET")
	router.HandleFunc("/playlists", handlers.GetPlaylists(d.Catalog)).Methods("GET")
	router.HandleFunc("/playlists/{id}", handlers.GetPlaylist(d.Catalog)).Methods("GET")
	router.HandleFunc("/live", handlers.GetLiveWatch(d.App, d.Catalog, d.Viewers)).Methods("GET")

	return router
}

func CreateLiveRoutes(d *Deps, router *mux.Router) *mux.Router {
	router.HandleFunc("/live/broadcast", handlers.Broadcast(d.Hub)).Methods("GET")
	router.HandleFunc("/live/broadcast", handlers.StopBroadcast(d.Hub)).Methods("DELETE")
	router.HandleFunc("/live/users/{id}", handlers.GetLiveStatus(d.Hub)).Methods("GET")

	return router
}
