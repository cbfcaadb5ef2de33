package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/require"

	"ramotsav.com/project-ramotsav/middleware"
	"ramotsav.com/project-ramotsav/models"
	"ramotsav.com/project-ramotsav/services"
	"ramotsav.com/project-ramotsav/state"
	"ramotsav.com/project-ramotsav/storage"
)

var (
	ist      = time.FixedZone("IST", 5*3600+1800)
	fixedNow = time.Date(2024, 3, 10, 9, 0, 0, 0, ist)
)

func newTestApp(t *testing.T, asker state.Asker, seed map[string]any) *state.App {
	t.Helper()
	ctx := context.Background()
	store := storage.NewMemoryStore(0)
	require.NoError(t, store.Save(ctx, storage.KeyUsers, []models.User{
		{ID: "u1", Name: "Ram", Followers: []string{}, Following: []string{}},
		{ID: "u2", Name: "Sita", Followers: []string{}, Following: []string{}},
	}))
	require.NoError(t, store.Save(ctx, storage.KeyPosts, []models.Post{
		{ID: "p1", UploaderID: "u1", Type: models.PostVideo, Title: "Aarti", URL: "https://cdn/aarti.mp4", Likes: []string{}, Comments: []models.Comment{}},
		{ID: "p2", UploaderID: "u2", Type: models.PostNews, Title: "Gita", Description: "Adhyay 1", Likes: []string{}, Comments: []models.Comment{}},
	}))
	for k, v := range seed {
		require.NoError(t, store.Save(ctx, k, v))
	}
	return state.New(ctx, state.Options{
		Store:    store,
		Location: ist,
		Now:      func() time.Time { return fixedNow },
		Asker:    asker,
	})
}

// call runs h as userID with the given route vars.
func call(h http.HandlerFunc, method, target, userID string, body any, vars map[string]string) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, target, &buf)
	req = req.WithContext(middleware.WithIdentity(req.Context(), userID, "s-"+userID))
	if vars != nil {
		req = mux.SetURLVars(req, vars)
	}
	rr := httptest.NewRecorder()
	h(rr, req)
	return rr
}

func decodeBody[T any](t *testing.T, rr *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &v), rr.Body.String())
	return v
}

type cannedAsker struct {
	mu        sync.Mutex
	questions []services.Question
	answer    services.Answer
}

func (c *cannedAsker) Ask(_ context.Context, q services.Question) services.Answer {
	c.mu.Lock()
	c.questions = append(c.questions, q)
	c.mu.Unlock()
	return c.answer
}

func streamOf(frags ...string) services.Answer {
	return services.Answer{Stream: func(yield func(string, error) bool) {
		for _, f := range frags {
			if !yield(f, nil) {
				return
			}
		}
	}}
}

type fakePusher struct {
	mu   sync.Mutex
	sent map[string][]string
}

func (f *fakePusher) SendToUser(_ context.Context, userID, title, body string, _ map[string]string) (int, int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.sent == nil {
		f.sent = make(map[string][]string)
	}
	f.sent[userID] = append(f.sent[userID], title)
	return 1, 0, nil
}
