package handlers

import (
	"net/http"

	"github.com/gorilla/mux"

	"ramotsav.com/project-ramotsav/metrics"
	"ramotsav.com/project-ramotsav/models"
	"ramotsav.com/project-ramotsav/state"
	"ramotsav.com/project-ramotsav/views"
)

type jaapTapResponse struct {
	Record    models.JaapRecord `json:"record"`
	Completed bool              `json:"completed"`
}

// JaapTap counts one repetition for today. Completed is set on the tap that
// finishes a mala.
func JaapTap(app *state.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rec, completed := app.JaapTap(r.Context(), actor(r))
		if completed {
			metrics.RecordJaapCompletion()
		}
		writeJSON(w, http.StatusOK, jaapTapResponse{Record: rec, Completed: completed})
	}
}

func ResetJaap(app *state.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rec, err := app.ResetTodayJaap(r.Context(), actor(r), confirmed(r))
		if err != nil {
			writeStateError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, rec)
	}
}

type jaapStatsResponse struct {
	Target  int                 `json:"target"`
	Stats   models.PeriodStats  `json:"stats"`
	Streak  models.Streak       `json:"streak"`
	Total   int                 `json:"total"`
	History []models.JaapRecord `json:"history"`
}

func GetJaapStats(app *state.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		history := app.JaapHistory(r.Context(), actor(r))
		now := app.Now()
		writeJSON(w, http.StatusOK, jaapStatsResponse{
			Target:  models.JaapTarget,
			Stats:   views.JaapStats(history, now),
			Streak:  views.JaapStreak(history, now),
			Total:   views.JaapTotal(history),
			History: history,
		})
	}
}

// GetUserStreak exposes another user's jaap streak for their profile.
func GetUserStreak(app *state.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := mux.Vars(r)["userId"]
		if _, err := app.User(userID); err != nil {
			writeStateError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, views.JaapStreak(app.JaapHistory(r.Context(), userID), app.Now()))
	}
}

type lekhanRequest struct {
	Text string `json:"text"`
}

func EditLekhan(app *state.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req lekhanRequest
		if !decode(w, r, &req) {
			return
		}
		writeJSON(w, http.StatusOK, app.EditLekhan(r.Context(), actor(r), req.Text))
	}
}

type lekhanStatsResponse struct {
	Today   string                `json:"today"`
	Stats   models.PeriodStats    `json:"stats"`
	History []models.LekhanRecord `json:"history"`
}

func GetLekhanStats(app *state.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		history := app.LekhanHistory(r.Context(), actor(r))
		now := app.Now()
		today := ""
		for _, rec := range history {
			if rec.Date == views.Today(now) {
				today = rec.Text
			}
		}
		writeJSON(w, http.StatusOK, lekhanStatsResponse{
			Today:   today,
			Stats:   views.LekhanStats(history, now),
			History: history,
		})
	}
}

// GetLeaderboard ranks users by lifetime jaap. Unless realTotals is set,
// everyone but the caller gets a placeholder score marked as simulated.
func GetLeaderboard(app *state.App, realTotals bool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		me := actor(r)
		var totals map[string]int
		if realTotals {
			totals = app.JaapTotals(r.Context())
		}
		mine := views.JaapTotal(app.JaapHistory(r.Context(), me))
		writeJSON(w, http.StatusOK, views.Leaderboard(app.Users(), me, mine, totals))
	}
}
