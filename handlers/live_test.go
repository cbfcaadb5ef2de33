package handlers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ramotsav.com/project-ramotsav/catalog"
	"ramotsav.com/project-ramotsav/live"
	"ramotsav.com/project-ramotsav/middleware"
	"ramotsav.com/project-ramotsav/models"
)

func TestGetLiveWatch(t *testing.T) {
	app := newTestApp(t, nil, nil)
	cat := catalog.Default()

	rr := call(GetLiveWatch(app, cat, live.NewViewerCounter(fixedNow, 7)), http.MethodGet, "/live", "", nil, nil)
	require.Equal(t, http.StatusOK, rr.Code)
	info := decodeBody[live.WatchInfo](t, rr)
	assert.True(t, info.Simulated)
	assert.Equal(t, cat.Live.StreamURL, info.StreamURL)
	assert.GreaterOrEqual(t, info.Viewers, 150)
}

func TestCatalogHandlers(t *testing.T) {
	cat := catalog.Default()
	require.NotEmpty(t, cat.Playlists)

	rr := call(GetPlaylist(cat), http.MethodGet, "/playlists/x", "", nil, map[string]string{"id": cat.Playlists[0].ID})
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, cat.Playlists[0].Title, decodeBody[models.Playlist](t, rr).Title)

	rr = call(GetPlaylist(cat), http.MethodGet, "/playlists/none", "", nil, map[string]string{"id": "none"})
	assert.Equal(t, http.StatusNotFound, rr.Code)

	rr = call(GetQuote(cat), http.MethodGet, "/quote", "", nil, nil)
	assert.Equal(t, cat.Quote.Text, decodeBody[models.Quote](t, rr).Text)
}

func TestBroadcast_EndsWithSocket(t *testing.T) {
	hub := live.NewHub(live.IngestAcquirer)
	defer hub.Shutdown()

	h := Broadcast(hub)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		h(w, r.WithContext(middleware.WithIdentity(r.Context(), "u1", "s1")))
	}))
	defer srv.Close()

	conn, _, err := websocket.DefaultDialer.Dial("ws"+strings.TrimPrefix(srv.URL, "http"), nil)
	require.NoError(t, err)

	var f liveFrame
	require.NoError(t, conn.ReadJSON(&f))
	assert.Equal(t, "live", f.Type)
	assert.True(t, hub.IsLive("u1"))

	conn.Close()
	assert.Eventually(t, func() bool { return !hub.IsLive("u1") }, time.Second, 10*time.Millisecond)
}

func TestStopBroadcast_NotLive(t *testing.T) {
	hub := live.NewHub(live.IngestAcquirer)
	rr := call(StopBroadcast(hub), http.MethodDelete, "/live/broadcast", "u1", nil, nil)
	assert.Equal(t, http.StatusConflict, rr.Code)
}
