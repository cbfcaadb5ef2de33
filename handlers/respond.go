package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"ramotsav.com/project-ramotsav/logger"
	"ramotsav.com/project-ramotsav/middleware"
	"ramotsav.com/project-ramotsav/state"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeMessage(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"message": msg})
}

// writeStateError maps container errors to a status and a message the
// client can show.
func writeStateError(w http.ResponseWriter, r *http.Request, err error) {
	var verr *state.ValidationError
	switch {
	case errors.As(err, &verr):
		writeMessage(w, http.StatusBadRequest, verr.Message)
	case errors.Is(err, state.ErrNotFound):
		writeMessage(w, http.StatusNotFound, "Not found")
	case errors.Is(err, state.ErrConfirmationRequired):
		writeMessage(w, http.StatusConflict, "Please confirm this action")
	case errors.Is(err, state.ErrSelfFollow):
		writeMessage(w, http.StatusBadRequest, "You cannot follow yourself")
	case errors.Is(err, state.ErrForbidden):
		writeMessage(w, http.StatusForbidden, "Only the owner can do this")
	case errors.Is(err, state.ErrUnknownUser):
		writeMessage(w, http.StatusUnauthorized, "Unknown user, please sign in again")
	case errors.Is(err, state.ErrEmailTaken):
		writeMessage(w, http.StatusConflict, "Email is already registered")
	case errors.Is(err, state.ErrBadCredentials):
		writeMessage(w, http.StatusUnauthorized, "Invalid email or password")
	default:
		logger.Log.Error("request failed", zap.String("path", r.URL.Path), zap.Error(err))
		http.Error(w, "Internal server error", http.StatusInternalServerError)
	}
}

func decode(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return false
	}
	return true
}

func actor(r *http.Request) string {
	return middleware.UserID(r.Context())
}

// confirmed reads the explicit confirmation a destructive request must
// carry.
func confirmed(r *http.Request) bool {
	return r.URL.Query().Get("confirm") == "true"
}
