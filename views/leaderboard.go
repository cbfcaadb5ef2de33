package views

import (
	"sort"
	"strconv"
	"unicode/utf16"

	"ramotsav.com/project-ramotsav/models"
)

type Badge string

const (
	BadgeCrown  Badge = "crown"
	BadgeSilver Badge = "silver"
	BadgeBronze Badge = "bronze"
)

type LeaderboardEntry struct {
	Rank      int    `json:"rank"`
	Badge     string `json:"badge"`
	UserID    string `json:"user_id"`
	Name      string `json:"name"`
	AvatarURL string `json:"avatar_url,omitempty"`
	Score     int    `json:"score"`
	IsActing  bool   `json:"is_acting_user"`
	Simulated bool   `json:"simulated"`
}

// PlaceholderScore is a demo stand-in for a real per-user jaap aggregate:
// it is deterministic per id and carries no product meaning.
func PlaceholderScore(userID string) int {
	seed := 0
	for _, u := range utf16.Encode([]rune(userID)) {
		seed += int(u)
	}
	return (seed*9301 + 500) % 15000
}

// Leaderboard ranks users by jaap score. The acting user always scores
// actingTotal. Other users score totals[id] when totals is non-nil, or the
// placeholder score otherwise. Ties keep users-collection order.
func Leaderboard(users []models.User, actingID string, actingTotal int, totals map[string]int) []LeaderboardEntry {
	entries := make([]LeaderboardEntry, 0, len(users))
	for _, u := range users {
		e := LeaderboardEntry{
			UserID:    u.ID,
			Name:      u.Name,
			AvatarURL: u.AvatarURL,
			IsActing:  u.ID == actingID,
		}
		switch {
		case e.IsActing:
			e.Score = actingTotal
		case totals != nil:
			e.Score = totals[u.ID]
		default:
			e.Score = PlaceholderScore(u.ID)
			e.Simulated = true
		}
		entries = append(entries, e)
	}
	sort.SliceStable(entries, func(i, j int) bool { return entries[i].Score > entries[j].Score })
	for i := range entries {
		entries[i].Rank = i + 1
		entries[i].Badge = badgeFor(i + 1)
	}
	return entries
}

func badgeFor(rank int) string {
	switch rank {
	case 1:
		return string(BadgeCrown)
	case 2:
		return string(BadgeSilver)
	case 3:
		return string(BadgeBronze)
	}
	return strconv.Itoa(rank)
}
