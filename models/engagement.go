package models

import "time"

type Comment struct {
	ID       string `json:"id"`
	AuthorID string `json:"author_id"`
	Text     string `json:"text"`
}

type NotificationType string

const (
	NotifyLike    NotificationType = "like"
	NotifyComment NotificationType = "comment"
	NotifyFollow  NotificationType = "follow"
)

type Notification struct {
	ID         string           `json:"id"`
	Type       NotificationType `json:"type"`
	FromUserID string           `json:"from_user_id"`
	ToUserID   string           `json:"to_user_id"`
	PostID     string           `json:"post_id,omitempty"`
	Timestamp  time.Time        `json:"timestamp"`
	IsRead     bool             `json:"is_read"`
}

type DeviceToken struct {
	Token     string    `json:"token"`
	UpdatedAt time.Time `json:"updated_at"`
}
