// Package views derives read-only projections (feeds, stats, rankings) from
// the entity collections. Every function is pure and never mutates its input.
package views

import (
	"strings"

	"ramotsav.com/project-ramotsav/models"
)

type HomeFilter string

const (
	FilterAll   HomeFilter = "all"
	FilterSaved HomeFilter = "saved"
)

func (f HomeFilter) Valid() bool {
	return f == FilterAll || f == FilterSaved
}

// HomeFeed selects posts for the home section. The "all" filter hides news
// and audio posts, which have their own sections; "saved" keeps only
// bookmarked ids regardless of type. Store order is preserved.
func HomeFeed(posts []models.Post, filter HomeFilter, search string, saved []string) []models.Post {
	savedSet := toSet(saved)
	out := make([]models.Post, 0, len(posts))
	for _, p := range posts {
		switch filter {
		case FilterSaved:
			if _, ok := savedSet[p.ID]; !ok {
				continue
			}
		default:
			if p.Type == models.PostNews || p.Type == models.PostAudio {
				continue
			}
		}
		if !MatchesSearch(p, search) {
			continue
		}
		out = append(out, p)
	}
	return out
}

// MatchesSearch is a case-insensitive substring match on title or
// description. An empty query matches everything.
func MatchesSearch(p models.Post, query string) bool {
	if query == "" {
		return true
	}
	q := strings.ToLower(query)
	return strings.Contains(strings.ToLower(p.Title), q) ||
		strings.Contains(strings.ToLower(p.Description), q)
}

func GranthFeed(posts []models.Post) []models.Post {
	return ByType(posts, models.PostNews)
}

func ByType(posts []models.Post, t models.PostType) []models.Post {
	out := make([]models.Post, 0)
	for _, p := range posts {
		if p.Type == t {
			out = append(out, p)
		}
	}
	return out
}

func PostsByUser(posts []models.Post, userID string) []models.Post {
	out := make([]models.Post, 0)
	for _, p := range posts {
		if p.UploaderID == userID {
			out = append(out, p)
		}
	}
	return out
}

// WithEngagement decorates posts with counters and the viewer's own like
// and bookmark flags.
func WithEngagement(posts []models.Post, viewerID string, saved []string) []models.PostWithEngagement {
	savedSet := toSet(saved)
	out := make([]models.PostWithEngagement, 0, len(posts))
	for _, p := range posts {
		_, isSaved := savedSet[p.ID]
		out = append(out, models.PostWithEngagement{
			Post:          p,
			LikeCount:     len(p.Likes),
			CommentCount:  len(p.Comments),
			IsLikedByUser: p.LikedBy(viewerID),
			IsSaved:       isSaved,
		})
	}
	return out
}

func toSet(ids []string) map[string]struct{} {
	set := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		set[id] = struct{}{}
	}
	return set
}
