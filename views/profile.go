package views

import "ramotsav.com/project-ramotsav/models"

type ProfileStats struct {
	UserID     string `json:"user_id"`
	PostCount  int    `json:"post_count"`
	TotalLikes int    `json:"total_likes"`
	TotalViews int    `json:"total_views"`
	Followers  int    `json:"followers"`
	Following  int    `json:"following"`
}

func Profile(posts []models.Post, subject models.User) ProfileStats {
	stats := ProfileStats{
		UserID:    subject.ID,
		Followers: len(subject.Followers),
		Following: len(subject.Following),
	}
	for _, p := range posts {
		if p.UploaderID != subject.ID {
			continue
		}
		stats.PostCount++
		stats.TotalLikes += len(p.Likes)
		stats.TotalViews += p.Views
	}
	return stats
}

// Followers resolves the subject's follower ids against the users
// collection, skipping ids that no longer resolve.
func Followers(users []models.User, subject models.User) []models.User {
	return Resolve(users, subject.Followers)
}

func Following(users []models.User, subject models.User) []models.User {
	return Resolve(users, subject.Following)
}

func FindUser(users []models.User, id string) (models.User, bool) {
	for _, u := range users {
		if u.ID == id {
			return u, true
		}
	}
	return models.User{}, false
}

// Resolve maps ids to public users in id order.
func Resolve(users []models.User, ids []string) []models.User {
	out := make([]models.User, 0, len(ids))
	for _, id := range ids {
		if u, ok := FindUser(users, id); ok {
			out = append(out, u.Public())
		}
	}
	return out
}
