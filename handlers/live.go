package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"ramotsav.com/project-ramotsav/catalog"
	"ramotsav.com/project-ramotsav/live"
	"ramotsav.com/project-ramotsav/logger"
	"ramotsav.com/project-ramotsav/state"
)

// GetLiveWatch describes the fixed stream with its simulated audience.
func GetLiveWatch(app *state.App, cat *catalog.Catalog, viewers *live.ViewerCounter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, live.WatchInfo{
			Title:      cat.Live.Title,
			StreamURL:  cat.Live.StreamURL,
			ArtworkURL: cat.Live.ArtworkURL,
			Viewers:    viewers.At(app.Now()),
			Simulated:  true,
		})
	}
}

type liveFrame struct {
	Type    string `json:"type"`
	Message string `json:"message,omitempty"`
}

// Broadcast holds the caller's broadcast open for as long as the websocket
// stays connected. Capture is released when the socket closes or the
// broadcast is stopped.
func Broadcast(hub *live.Hub) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := actor(r)
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			logger.Log.Warn("broadcast upgrade failed", zap.Error(err))
			return
		}
		defer conn.Close()

		ctx, cancel := context.WithCancel(context.WithoutCancel(r.Context()))
		defer cancel()
		go func() {
			defer cancel()
			for {
				if _, _, err := conn.ReadMessage(); err != nil {
					return
				}
			}
		}()

		released, err := hub.GoLive(ctx, userID)
		if err != nil {
			msg := "Could not start the broadcast"
			if errors.Is(err, live.ErrAlreadyLive) {
				msg = "You are already live"
			}
			conn.WriteJSON(liveFrame{Type: "error", Message: msg})
			return
		}
		if conn.WriteJSON(liveFrame{Type: "live"}) != nil {
			return
		}

		select {
		case <-ctx.Done():
		case <-released:
		}
		logger.Log.Info("broadcast ended", zap.String("user_id", userID))
		conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
	}
}

func StopBroadcast(hub *live.Hub) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := hub.StopLive(actor(r)); err != nil {
			if errors.Is(err, live.ErrNotLive) {
				writeMessage(w, http.StatusConflict, "You are not live")
				return
			}
			writeStateError(w, r, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func GetLiveStatus(hub *live.Hub) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]bool{"live": hub.IsLive(mux.Vars(r)["id"])})
	}
}
