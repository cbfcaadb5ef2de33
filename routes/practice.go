package routes

import (
	"github.com/gorilla/mux"

	"ramotsav.com/project-ramotsav/handlers"
)

func CreatePracticeRoutes(d *Deps, router *mux.Router) *mux.Router {
	router.HandleFunc("/jaap", handlers.GetJaapStats(d.App)).Methods("GET")
	router.HandleFunc("/jaap/tap", handlers.JaapTap(d.App)).Methods("POST")
	router.HandleFunc("/jaap/reset", handlers.ResetJaap(d.App)).Methods("POST")
	router.HandleFunc("/jaap/leaderboard", handlers.GetLeaderboard(d.App, d.RealTotals)).Methods("GET")
	router.HandleFunc("/lekhan", handlers.GetLekhanStats(d.App)).Methods("GET")
	router.HandleFunc("/lekhan/today", handlers.EditLekhan(d.App)).Methods("PUT")

	return router
}
