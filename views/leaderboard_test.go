package views

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ramotsav.com/project-ramotsav/models"
)

func TestPlaceholderScore(t *testing.T) {
	// "u1" -> 117 + 49 = 166; (166*9301+500) % 15000
	assert.Equal(t, 14466, PlaceholderScore("u1"))
	assert.Equal(t, PlaceholderScore("user_7"), PlaceholderScore("user_7"))
	assert.Less(t, PlaceholderScore("some-long-user-id"), 15000)
}

func TestLeaderboard_PlaceholderMode(t *testing.T) {
	users := []models.User{{ID: "u1", Name: "A"}, {ID: "me", Name: "Me"}, {ID: "u2", Name: "B"}}
	board := Leaderboard(users, "me", 20000, nil)

	require.Len(t, board, 3)
	assert.Equal(t, "me", board[0].UserID)
	assert.Equal(t, "crown", board[0].Badge)
	assert.False(t, board[0].Simulated)
	assert.Equal(t, "silver", board[1].Badge)
	assert.True(t, board[1].Simulated)
	assert.Equal(t, "bronze", board[2].Badge)
	assert.GreaterOrEqual(t, board[1].Score, board[2].Score)
}

func TestLeaderboard_RealTotalsStableTies(t *testing.T) {
	users := []models.User{{ID: "a"}, {ID: "b"}, {ID: "c"}, {ID: "d"}, {ID: "me"}}
	totals := map[string]int{"a": 5, "b": 10, "c": 5, "d": 5}
	board := Leaderboard(users, "me", 1, totals)

	got := []string{}
	for _, e := range board {
		got = append(got, e.UserID)
	}
	assert.Equal(t, []string{"b", "a", "c", "d", "me"}, got)
	assert.Equal(t, "4", board[3].Badge)
	assert.Equal(t, 5, board[4].Rank)
}
