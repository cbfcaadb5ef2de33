package routes

import (
	"github.com/gorilla/mux"

	"ramotsav.com/project-ramotsav/handlers"
)

// CreateAuthRoutes registers the endpoints reachable without a token.
func CreateAuthRoutes(d *Deps, router *mux.Router) *mux.Router {
	router.HandleFunc("/register", handlers.CreateUser(d.App)).Methods("POST")
	router.HandleFunc("/login", handlers.Login(d.App, d.Tokens)).Methods("POST")

	return router
}

func CreateUserRoutes(d *Deps, router *mux.Router) *mux.Router {
	router.HandleFunc("/logout", handlers.Logout(d.App)).Methods("POST")
	router.HandleFunc("/me", handlers.GetMe(d.App)).Methods("GET")
	router.HandleFunc("/me", handlers.UpdateProfile(d.App)).Methods("PUT")
	router.HandleFunc("/me/fcm-token", handlers.RegisterFCMToken(d.App)).Methods("POST")
	router.HandleFunc("/me/preferences", handlers.GetPreferences(d.App)).Methods("GET")
	router.HandleFunc("/me/preferences", handlers.UpdatePreferences(d.App)).Methods("PUT")
	router.HandleFunc("/me/splash", handlers.GetSplash(d.App)).Methods("GET")
	router.HandleFunc("/me/splash", handlers.MarkSplashSeen(d.App)).Methods("POST")

	router.HandleFunc("/users", handlers.GetUsers(d.App)).Methods("GET")
	router.HandleFunc("/users/{id}", handlers.GetUserById(d.App)).Methods("GET")
	router.HandleFunc("/users/{id}/profile", handlers.GetProfile(d.App)).Methods("GET")
	router.HandleFunc("/users/{id}/follow", handlers.FollowUser(d.App)).Methods("POST")
	router.HandleFunc("/users/{id}/followers", handlers.GetFollowers(d.App)).Methods("GET")
	router.HandleFunc("/users/{id}/following", handlers.GetFollowing(d.App)).Methods("GET")
	router.HandleFunc("/users/{userId}/streak", handlers.GetUserStreak(d.App)).Methods("GET")

	router.HandleFunc("/notifications", handlers.GetNotifications(d.App)).Methods("GET")
	router.HandleFunc("/notifications/unread", handlers.GetUnreadCount(d.App)).Methods("GET")
	router.HandleFunc("/notifications/read", handlers.MarkNotificationsRead(d.App)).Methods("POST")

	return router
}
