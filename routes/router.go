package routes

import (
	"net/http"

	"github.com/gorilla/mux"

	"ramotsav.com/project-ramotsav/metrics"
	"ramotsav.com/project-ramotsav/middleware"
)

// NewRouter assembles the public and token-protected route groups.
func NewRouter(d *Deps) *mux.Router {
	router := mux.NewRouter()
	router.Use(middleware.Observe)

	router.Handle("/metrics", metrics.Handler()).Methods("GET")
	router.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}).Methods("GET")

	public := router.NewRoute().Subrouter()
	CreateAuthRoutes(d, public)
	CreateCatalogRoutes(d, public)

	protected := router.NewRoute().Subrouter()
	protected.Use(middleware.Auth(d.Tokens.Secret, d.App))
	CreateUserRoutes(d, protected)
	CreatePostRoutes(d, protected)
	CreatePracticeRoutes(d, protected)
	CreateChatRoutes(d, protected)
	CreateLiveRoutes(d, protected)

	return router
}
