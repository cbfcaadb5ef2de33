package models

import "time"

type PostType string

const (
	PostVideo PostType = "video"
	PostImage PostType = "image"
	PostAudio PostType = "audio"
	PostNews  PostType = "news"
)

func (t PostType) Valid() bool {
	switch t {
	case PostVideo, PostImage, PostAudio, PostNews:
		return true
	}
	return false
}

type Post struct {
	ID           string    `json:"id"`
	UploaderID   string    `json:"uploader_id"`
	Type         PostType  `json:"type"`
	URL          string    `json:"url"`
	ThumbnailURL string    `json:"thumbnail_url,omitempty"`
	Title        string    `json:"title"`
	Description  string    `json:"description"`
	Likes        []string  `json:"likes"`
	Comments     []Comment `json:"comments"`
	Timestamp    time.Time `json:"timestamp"`
	Views        int       `json:"views"`
}

// LikedBy reports whether userID is in the post's like set.
func (p Post) LikedBy(userID string) bool {
	for _, id := range p.Likes {
		if id == userID {
			return true
		}
	}
	return false
}

// Clone returns a copy that shares no slices with p.
func (p Post) Clone() Post {
	c := p
	c.Likes = append([]string(nil), p.Likes...)
	c.Comments = append([]Comment(nil), p.Comments...)
	if c.Likes == nil {
		c.Likes = []string{}
	}
	if c.Comments == nil {
		c.Comments = []Comment{}
	}
	return c
}

type PostDraft struct {
	Type         PostType `json:"type" validate:"required,post_type"`
	Title        string   `json:"title" validate:"required"`
	Description  string   `json:"description" validate:"required_if=Type news"`
	URL          string   `json:"url" validate:"required_unless=Type news"`
	ThumbnailURL string   `json:"thumbnail_url,omitempty"`
}

type PostWithEngagement struct {
	Post
	LikeCount     int  `json:"like_count"`
	CommentCount  int  `json:"comment_count"`
	IsLikedByUser bool `json:"is_liked_by_user"`
	IsSaved       bool `json:"is_saved"`
}
