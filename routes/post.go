package routes

import (
	"github.com/gorilla/mux"

	"ramotsav.com/project-ramotsav/handlers"
)

func CreatePostRoutes(d *Deps, router *mux.Router) *mux.Router {
	var media handlers.MediaStorage
	if d.Media != nil {
		media = d.Media
	}

	router.HandleFunc("/feed", handlers.GetHomeFeed(d.App)).Methods("GET")
	router.HandleFunc("/feed/granth", handlers.GetGranthFeed(d.App)).Methods("GET")
	router.HandleFunc("/feed/audio", handlers.GetAudioFeed(d.App)).Methods("GET")

	router.HandleFunc("/posts", handlers.CreatePost(d.App)).Methods("POST")
	router.HandleFunc("/posts/upload", handlers.UploadPost(d.App, media)).Methods("POST")
	router.HandleFunc("/posts/user/{userId}", handlers.GetPostsByUser(d.App)).Methods("GET")
	router.HandleFunc("/posts/{postId}", handlers.GetPost(d.App)).Methods("GET")
	router.HandleFunc("/posts/{postId}", handlers.DeletePost(d.App, media)).Methods("DELETE")
	router.HandleFunc("/posts/{postId}/like", handlers.ToggleLike(d.App)).Methods("POST")
	router.HandleFunc("/posts/{postId}/likes", handlers.GetPostLikes(d.App)).Methods("GET")
	router.HandleFunc("/posts/{postId}/comments", handlers.CreateComment(d.App)).Methods("POST")
	router.HandleFunc("/posts/{postId}/comments", handlers.GetPostComments(d.App)).Methods("GET")
	router.HandleFunc("/posts/{postId}/save", handlers.ToggleSave(d.App)).Methods("POST")
	router.HandleFunc("/posts/{postId}/view", handlers.RecordView(d.App)).Methods("POST")

	return router
}
