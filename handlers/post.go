package handlers

import (
	"context"
	"io"
	"net/http"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"ramotsav.com/project-ramotsav/logger"
	"ramotsav.com/project-ramotsav/middleware"
	"ramotsav.com/project-ramotsav/models"
	"ramotsav.com/project-ramotsav/services"
	"ramotsav.com/project-ramotsav/state"
	"ramotsav.com/project-ramotsav/views"
)

const maxUploadBytes = 200 << 20

// MediaStorage is the object store behind post uploads.
type MediaStorage interface {
	Upload(ctx context.Context, name string, src io.Reader, size int64, contentType string) (string, error)
	Delete(ctx context.Context, name string) error
	ObjectFromURL(url string) (string, bool)
}

func GetHomeFeed(app *state.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		filter := views.HomeFilter(r.URL.Query().Get("filter"))
		if filter == "" {
			filter = views.FilterAll
		}
		if !filter.Valid() {
			http.Error(w, "filter must be all or saved", http.StatusBadRequest)
			return
		}
		saved := app.SavedPosts(r.Context(), actor(r))
		feed := views.HomeFeed(app.Posts(), filter, r.URL.Query().Get("q"), saved)
		writeJSON(w, http.StatusOK, views.WithEngagement(feed, actor(r), saved))
	}
}

func GetGranthFeed(app *state.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		saved := app.SavedPosts(r.Context(), actor(r))
		writeJSON(w, http.StatusOK, views.WithEngagement(views.GranthFeed(app.Posts()), actor(r), saved))
	}
}

func GetAudioFeed(app *state.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		saved := app.SavedPosts(r.Context(), actor(r))
		writeJSON(w, http.StatusOK, views.WithEngagement(views.ByType(app.Posts(), models.PostAudio), actor(r), saved))
	}
}

func GetPostsByUser(app *state.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := mux.Vars(r)["userId"]
		if _, err := app.User(userID); err != nil {
			writeStateError(w, r, err)
			return
		}
		saved := app.SavedPosts(r.Context(), actor(r))
		writeJSON(w, http.StatusOK, views.WithEngagement(views.PostsByUser(app.Posts(), userID), actor(r), saved))
	}
}

func GetPost(app *state.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		p, err := app.Post(mux.Vars(r)["postId"])
		if err != nil {
			writeStateError(w, r, err)
			return
		}
		saved := app.SavedPosts(r.Context(), actor(r))
		writeJSON(w, http.StatusOK, views.WithEngagement([]models.Post{p}, actor(r), saved)[0])
	}
}

type createPostResponse struct {
	Post    models.Post   `json:"post"`
	Section state.Section `json:"section"`
}

func CreatePost(app *state.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var draft models.PostDraft
		if !decode(w, r, &draft) {
			return
		}
		p, section, err := app.CreatePost(r.Context(), actor(r), draft)
		if err != nil {
			writeStateError(w, r, err)
			return
		}
		writeJSON(w, http.StatusCreated, createPostResponse{Post: p, Section: section})
	}
}

// UploadPost accepts a multipart form with the draft fields and an optional
// "file" part, stores the file and publishes the post.
func UploadPost(app *state.App, media MediaStorage) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)
		if err := r.ParseMultipartForm(32 << 20); err != nil {
			http.Error(w, "Invalid upload form", http.StatusBadRequest)
			return
		}
		draft := models.PostDraft{
			Type:        models.PostType(r.FormValue("type")),
			Title:       r.FormValue("title"),
			Description: r.FormValue("description"),
		}

		var uploaded string
		file, header, err := r.FormFile("file")
		if err == nil {
			defer file.Close()
			if media == nil {
				http.Error(w, "Media uploads are not configured", http.StatusServiceUnavailable)
				return
			}
			withFile := draft
			withFile.URL = header.Filename
			if _, err := app.ValidateDraft(withFile); err != nil {
				writeStateError(w, r, err)
				return
			}
			name := services.ObjectName("posts", header.Filename)
			url, err := media.Upload(r.Context(), name, file, header.Size, header.Header.Get("Content-Type"))
			if err != nil {
				logger.Log.Error("media upload failed", zap.String("object", name), zap.Error(err))
				http.Error(w, "File upload error", http.StatusBadGateway)
				return
			}
			uploaded = name
			draft.URL = url
		}

		p, section, err := app.CreatePost(r.Context(), actor(r), draft)
		if err != nil {
			if uploaded != "" {
				if derr := media.Delete(r.Context(), uploaded); derr != nil {
					logger.Log.Warn("orphaned upload not removed", zap.String("object", uploaded), zap.Error(derr))
				}
			}
			writeStateError(w, r, err)
			return
		}
		writeJSON(w, http.StatusCreated, createPostResponse{Post: p, Section: section})
	}
}

func DeletePost(app *state.App, media MediaStorage) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		postID := mux.Vars(r)["postId"]
		p, err := app.Post(postID)
		if err != nil {
			writeStateError(w, r, err)
			return
		}
		if err := app.DeletePost(r.Context(), actor(r), postID, confirmed(r)); err != nil {
			writeStateError(w, r, err)
			return
		}
		if media != nil {
			if name, ok := media.ObjectFromURL(p.URL); ok {
				if err := media.Delete(r.Context(), name); err != nil {
					logger.Log.Warn("media cleanup failed", zap.String("post_id", postID), zap.Error(err))
				}
			}
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func ToggleLike(app *state.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		p, err := app.ToggleLike(r.Context(), actor(r), mux.Vars(r)["postId"])
		if err != nil {
			writeStateError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]interface{}{
			"liked":      p.LikedBy(actor(r)),
			"like_count": len(p.Likes),
		})
	}
}

func GetPostLikes(app *state.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		p, err := app.Post(mux.Vars(r)["postId"])
		if err != nil {
			writeStateError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, views.Resolve(app.Users(), p.Likes))
	}
}

type commentRequest struct {
	Text string `json:"text"`
}

func CreateComment(app *state.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req commentRequest
		if !decode(w, r, &req) {
			return
		}
		c, err := app.AddComment(r.Context(), actor(r), mux.Vars(r)["postId"], req.Text)
		if err != nil {
			writeStateError(w, r, err)
			return
		}
		writeJSON(w, http.StatusCreated, c)
	}
}

func GetPostComments(app *state.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		p, err := app.Post(mux.Vars(r)["postId"])
		if err != nil {
			writeStateError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, p.Comments)
	}
}

func ToggleSave(app *state.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		saved := app.ToggleSave(r.Context(), actor(r), mux.Vars(r)["postId"])
		writeJSON(w, http.StatusOK, map[string]bool{"saved": saved})
	}
}

func RecordView(app *state.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		p, counted, err := app.IncrementView(r.Context(), middleware.SessionID(r.Context()), mux.Vars(r)["postId"])
		if err != nil {
			writeStateError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]interface{}{"views": p.Views, "counted": counted})
	}
}
