package handlers

import (
	"net/http"

	"github.com/gorilla/mux"

	"ramotsav.com/project-ramotsav/models"
	"ramotsav.com/project-ramotsav/state"
	"ramotsav.com/project-ramotsav/views"
)

// FollowUser toggles the acting user's follow of the target.
func FollowUser(app *state.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		following, err := app.ToggleFollow(r.Context(), actor(r), mux.Vars(r)["id"])
		if err != nil {
			writeStateError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]bool{"following": following})
	}
}

func GetFollowers(app *state.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		u, err := app.User(mux.Vars(r)["id"])
		if err != nil {
			writeStateError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, views.Followers(app.Users(), u))
	}
}

func GetFollowing(app *state.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		u, err := app.User(mux.Vars(r)["id"])
		if err != nil {
			writeStateError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, views.Following(app.Users(), u))
	}
}

type profileResponse struct {
	User        models.User        `json:"user"`
	Stats       views.ProfileStats `json:"stats"`
	IsFollowing bool               `json:"is_following"`
	IsSelf      bool               `json:"is_self"`
}

// GetProfile returns the user together with post, like, view and follow
// counts.
func GetProfile(app *state.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := mux.Vars(r)["id"]
		lookup := app.User
		if id == actor(r) {
			lookup = app.Account
		}
		u, err := lookup(id)
		if err != nil {
			writeStateError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, profileResponse{
			User:        u,
			Stats:       views.Profile(app.Posts(), u),
			IsFollowing: u.HasFollower(actor(r)),
			IsSelf:      u.ID == actor(r),
		})
	}
}

func GetNotifications(app *state.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, app.Notifications(actor(r)))
	}
}

func GetUnreadCount(app *state.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]int{"unread": app.UnreadCount(actor(r))})
	}
}

func MarkNotificationsRead(app *state.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		n := app.MarkAllNotificationsRead(r.Context(), actor(r))
		writeJSON(w, http.StatusOK, map[string]int{"marked": n})
	}
}
