package handlers

import (
	"net/http"
	"strings"
	"time"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"ramotsav.com/project-ramotsav/logger"
	"ramotsav.com/project-ramotsav/middleware"
	"ramotsav.com/project-ramotsav/models"
	"ramotsav.com/project-ramotsav/state"
)

// TokenConfig signs the bearer tokens handed out at login.
type TokenConfig struct {
	Secret []byte
	TTL    time.Duration
}

type registerRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	Token string      `json:"token"`
	User  models.User `json:"user"`
}

func CreateUser(app *state.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req registerRequest
		if !decode(w, r, &req) {
			return
		}
		u, err := app.RegisterUser(r.Context(), req.Name, req.Email, req.Password)
		if err != nil {
			writeStateError(w, r, err)
			return
		}
		logger.Log.Info("user registered", zap.String("user_id", u.ID))
		writeJSON(w, http.StatusCreated, u)
	}
}

// Login verifies credentials, opens a session holding the acting user and
// returns a token bound to that session.
func Login(app *state.App, tokens TokenConfig) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req loginRequest
		if !decode(w, r, &req) {
			return
		}
		u, err := app.Authenticate(req.Email, req.Password)
		if err != nil {
			writeStateError(w, r, err)
			return
		}
		sid, err := app.OpenSession(r.Context(), u.ID)
		if err != nil {
			writeStateError(w, r, err)
			return
		}
		token, err := middleware.IssueToken(tokens.Secret, u.ID, sid, tokens.TTL, app.Now())
		if err != nil {
			logger.Log.Error("token signing failed", zap.Error(err))
			http.Error(w, "Failed to sign in", http.StatusInternalServerError)
			return
		}
		writeJSON(w, http.StatusOK, loginResponse{Token: token, User: u})
	}
}

func Logout(app *state.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		app.EndSession(r.Context(), middleware.SessionID(r.Context()))
		w.WriteHeader(http.StatusNoContent)
	}
}

func GetUsers(app *state.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, app.Users())
	}
}

func GetUserById(app *state.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		u, err := app.User(mux.Vars(r)["id"])
		if err != nil {
			writeStateError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, u)
	}
}

func GetMe(app *state.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		u, err := app.Account(actor(r))
		if err != nil {
			writeStateError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, u)
	}
}

func UpdateProfile(app *state.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var upd models.ProfileUpdate
		if !decode(w, r, &upd) {
			return
		}
		u, err := app.UpdateProfile(r.Context(), actor(r), upd)
		if err != nil {
			writeStateError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, u)
	}
}

type TokenRequest struct {
	Token string `json:"token"`
}

func RegisterFCMToken(app *state.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req TokenRequest
		if !decode(w, r, &req) {
			return
		}
		req.Token = strings.TrimSpace(req.Token)
		if req.Token == "" {
			http.Error(w, "Token is required", http.StatusBadRequest)
			return
		}
		if err := app.RegisterDeviceToken(r.Context(), actor(r), req.Token); err != nil {
			writeStateError(w, r, err)
			return
		}
		writeMessage(w, http.StatusOK, "Token registered successfully")
	}
}

func GetPreferences(app *state.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, app.Preferences(r.Context(), actor(r)))
	}
}

func UpdatePreferences(app *state.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var p models.Preferences
		if !decode(w, r, &p) {
			return
		}
		saved, err := app.SetPreferences(r.Context(), actor(r), p)
		if err != nil {
			writeStateError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, saved)
	}
}

func GetSplash(app *state.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		seen := app.SplashSeen(r.Context(), middleware.SessionID(r.Context()))
		writeJSON(w, http.StatusOK, map[string]bool{"seen": seen})
	}
}

func MarkSplashSeen(app *state.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		app.MarkSplashSeen(r.Context(), middleware.SessionID(r.Context()))
		writeJSON(w, http.StatusOK, map[string]bool{"seen": true})
	}
}
