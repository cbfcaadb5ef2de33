package handlers

import "context"

// Pusher delivers a push notification to every device of one user.
type Pusher interface {
	SendToUser(ctx context.Context, userID, title, body string, data map[string]string) (int, int, error)
}
