package handlers

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ramotsav.com/project-ramotsav/models"
	"ramotsav.com/project-ramotsav/storage"
	"ramotsav.com/project-ramotsav/views"
)

func TestJaapTap_CompletesOnTarget(t *testing.T) {
	app := newTestApp(t, nil, map[string]any{
		storage.JaapHistoryKey("u1"): []models.JaapRecord{{Date: "2024-03-10", Count: 106}},
	})

	first := decodeBody[jaapTapResponse](t, call(JaapTap(app), http.MethodPost, "/jaap/tap", "u1", nil, nil))
	assert.Equal(t, 107, first.Record.Count)
	assert.False(t, first.Completed)

	second := decodeBody[jaapTapResponse](t, call(JaapTap(app), http.MethodPost, "/jaap/tap", "u1", nil, nil))
	assert.Equal(t, 108, second.Record.Count)
	assert.True(t, second.Completed)

	third := decodeBody[jaapTapResponse](t, call(JaapTap(app), http.MethodPost, "/jaap/tap", "u1", nil, nil))
	assert.False(t, third.Completed)
}

func TestResetJaap_NeedsConfirmation(t *testing.T) {
	app := newTestApp(t, nil, map[string]any{
		storage.JaapHistoryKey("u1"): []models.JaapRecord{{Date: "2024-03-10", Count: 40}},
	})

	rr := call(ResetJaap(app), http.MethodPost, "/jaap/reset", "u1", nil, nil)
	assert.Equal(t, http.StatusConflict, rr.Code)

	rr = call(ResetJaap(app), http.MethodPost, "/jaap/reset?confirm=true", "u1", nil, nil)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, 0, decodeBody[models.JaapRecord](t, rr).Count)
}

func TestGetJaapStats(t *testing.T) {
	app := newTestApp(t, nil, map[string]any{
		storage.JaapHistoryKey("u1"): []models.JaapRecord{
			{Date: "2024-03-08", Count: 108},
			{Date: "2024-03-09", Count: 20},
			{Date: "2024-03-10", Count: 5},
		},
	})

	stats := decodeBody[jaapStatsResponse](t, call(GetJaapStats(app), http.MethodGet, "/jaap", "u1", nil, nil))
	assert.Equal(t, 108, stats.Target)
	assert.Equal(t, 5, stats.Stats.Today)
	assert.Equal(t, 133, stats.Total)
	assert.Equal(t, 3, stats.Streak.Current)
}

func TestLekhan(t *testing.T) {
	app := newTestApp(t, nil, nil)

	rr := call(EditLekhan(app), http.MethodPut, "/lekhan/today", "u1", lekhanRequest{Text: "रामराम"}, nil)
	require.Equal(t, http.StatusOK, rr.Code)

	stats := decodeBody[lekhanStatsResponse](t, call(GetLekhanStats(app), http.MethodGet, "/lekhan", "u1", nil, nil))
	assert.Equal(t, "रामराम", stats.Today)
	assert.Equal(t, 6, stats.Stats.Today)
}

func TestGetLeaderboard(t *testing.T) {
	seed := map[string]any{
		storage.JaapHistoryKey("u1"): []models.JaapRecord{{Date: "2024-03-10", Count: 50}},
		storage.JaapHistoryKey("u2"): []models.JaapRecord{{Date: "2024-03-10", Count: 70}},
	}

	t.Run("placeholder", func(t *testing.T) {
		app := newTestApp(t, nil, seed)
		board := decodeBody[[]views.LeaderboardEntry](t, call(GetLeaderboard(app, false), http.MethodGet, "/jaap/leaderboard", "u1", nil, nil))
		require.Len(t, board, 2)
		for _, e := range board {
			if e.UserID == "u1" {
				assert.Equal(t, 50, e.Score)
				assert.False(t, e.Simulated)
			} else {
				assert.Equal(t, views.PlaceholderScore("u2"), e.Score)
				assert.True(t, e.Simulated)
			}
		}
	})

	t.Run("real totals", func(t *testing.T) {
		app := newTestApp(t, nil, seed)
		board := decodeBody[[]views.LeaderboardEntry](t, call(GetLeaderboard(app, true), http.MethodGet, "/jaap/leaderboard", "u1", nil, nil))
		require.Len(t, board, 2)
		assert.Equal(t, "u2", board[0].UserID)
		assert.Equal(t, 70, board[0].Score)
		assert.Equal(t, "u1", board[1].UserID)
	})
}

func TestJaapReminder_SkipsFinishedMala(t *testing.T) {
	app := newTestApp(t, nil, map[string]any{
		storage.JaapHistoryKey("u1"): []models.JaapRecord{{Date: "2024-03-10", Count: 108}},
		storage.JaapHistoryKey("u2"): []models.JaapRecord{{Date: "2024-03-10", Count: 30}},
	})
	pusher := &fakePusher{}

	SendJaapReminderNotifications(t.Context(), app, pusher)

	assert.NotContains(t, pusher.sent, "u1")
	assert.Len(t, pusher.sent["u2"], 1)
}

func TestStreakReminder_OnlyAtRisk(t *testing.T) {
	app := newTestApp(t, nil, map[string]any{
		storage.JaapHistoryKey("u1"): []models.JaapRecord{{Date: "2024-03-08", Count: 10}, {Date: "2024-03-09", Count: 10}},
		storage.JaapHistoryKey("u2"): []models.JaapRecord{{Date: "2024-03-09", Count: 10}, {Date: "2024-03-10", Count: 1}},
	})
	pusher := &fakePusher{}

	SendStreakExpiryNotifications(t.Context(), app, pusher)

	assert.Len(t, pusher.sent["u1"], 1)
	assert.NotContains(t, pusher.sent, "u2")
}
