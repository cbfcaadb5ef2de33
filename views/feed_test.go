package views

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"ramotsav.com/project-ramotsav/models"
)

func samplePosts() []models.Post {
	return []models.Post{
		{ID: "p1", Type: models.PostVideo, Title: "Ayodhya Aarti", Description: "Evening aarti"},
		{ID: "p2", Type: models.PostNews, Title: "Gita Adhyay 1", Description: "Arjuna vishada yoga"},
		{ID: "p3", Type: models.PostAudio, Title: "Ram Siya Ram", Description: "Bhajan"},
		{ID: "p4", Type: models.PostImage, Title: "Darshan", Description: "Morning AARTI darshan"},
	}
}

func ids(posts []models.Post) []string {
	out := []string{}
	for _, p := range posts {
		out = append(out, p.ID)
	}
	return out
}

func TestHomeFeed_AllExcludesNewsAndAudio(t *testing.T) {
	types := []models.PostType{models.PostVideo, models.PostImage, models.PostAudio, models.PostNews}
	var posts []models.Post
	for i := 0; i < 40; i++ {
		posts = append(posts, models.Post{ID: string(rune('a' + i%26)), Type: types[i%len(types)]})
	}
	for _, p := range HomeFeed(posts, FilterAll, "", nil) {
		assert.NotEqual(t, models.PostNews, p.Type)
		assert.NotEqual(t, models.PostAudio, p.Type)
	}
}

func TestHomeFeed(t *testing.T) {
	tests := []struct {
		name   string
		filter HomeFilter
		search string
		saved  []string
		want   []string
	}{
		{"all keeps order", FilterAll, "", nil, []string{"p1", "p4"}},
		{"saved ignores type", FilterSaved, "", []string{"p3", "p2"}, []string{"p2", "p3"}},
		{"search is case-insensitive", FilterAll, "aarti", nil, []string{"p1", "p4"}},
		{"search matches description", FilterAll, "morning", nil, []string{"p4"}},
		{"search within saved", FilterSaved, "GITA", []string{"p2", "p1"}, []string{"p2"}},
		{"no match", FilterAll, "krishna", nil, []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ids(HomeFeed(samplePosts(), tt.filter, tt.search, tt.saved)))
		})
	}
}

func TestMatchesSearch_EmptyQueryMatchesAll(t *testing.T) {
	for _, p := range samplePosts() {
		assert.True(t, MatchesSearch(p, ""))
	}
}

func TestGranthFeedAndPostsByUser(t *testing.T) {
	posts := samplePosts()
	posts[0].UploaderID = "u1"
	posts[3].UploaderID = "u1"

	assert.Equal(t, []string{"p2"}, ids(GranthFeed(posts)))
	assert.Equal(t, []string{"p1", "p4"}, ids(PostsByUser(posts, "u1")))
	assert.Empty(t, PostsByUser(posts, "nobody"))
}

func TestWithEngagement(t *testing.T) {
	posts := []models.Post{{ID: "p1", Likes: []string{"u1", "u2"}, Comments: []models.Comment{{ID: "c1"}}}}
	got := WithEngagement(posts, "u2", []string{"p1"})

	assert.Len(t, got, 1)
	assert.Equal(t, 2, got[0].LikeCount)
	assert.Equal(t, 1, got[0].CommentCount)
	assert.True(t, got[0].IsLikedByUser)
	assert.True(t, got[0].IsSaved)
}
