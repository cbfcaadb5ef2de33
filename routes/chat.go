package routes

import (
	"github.com/gorilla/mux"

	"ramotsav.com/project-ramotsav/handlers"
)

// CreateChatRoutes registers the AI endpoints. Anything that reaches the
// model goes through the limiter.
func CreateChatRoutes(d *Deps, router *mux.Router) *mux.Router {
	router.HandleFunc("/chats/{context}", handlers.GetChatSessions(d.App)).Methods("GET")
	router.HandleFunc("/chats/{context}", handlers.CreateChatSession(d.App)).Methods("POST")
	router.HandleFunc("/chats/{context}/{sessionId}/select", handlers.SelectChatSession(d.App)).Methods("POST")
	router.HandleFunc("/chats/{context}/{sessionId}", handlers.DeleteChatSession(d.App)).Methods("DELETE")

	ai := router.NewRoute().Subrouter()
	if d.AILimiter != nil {
		ai.Use(d.AILimiter.Handler)
	}
	ai.HandleFunc("/chats/{context}/{sessionId}/messages", handlers.SendChatMessage(d.App)).Methods("POST")
	ai.HandleFunc("/chats/{context}/{sessionId}/stream", handlers.StreamChat(d.App)).Methods("GET")
	ai.HandleFunc("/granth/{postId}/ask", handlers.AskGranth(d.App, d.Asker)).Methods("POST")

	return router
}
