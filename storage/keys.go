package storage

import "ramotsav.com/project-ramotsav/models"

const (
	KeyPosts         = "posts"
	KeyUsers         = "users"
	KeyNotifications = "notifications"
)

func SavedPostsKey(userID string) string { return "saved-posts/" + userID }
func JaapHistoryKey(userID string) string { return "jaap-history/" + userID }
func LekhanHistoryKey(userID string) string { return "lekhan-history/" + userID }
func PreferencesKey(userID string) string { return "preferences/" + userID }
func DeviceTokensKey(userID string) string { return "device-tokens/" + userID }

func ChatSessionsKey(c models.ChatContext, userID string) string {
	return "chat/" + string(c) + "/" + userID
}

// Session-scoped keys live in the short-lived store.

func ActingUserKey(sessionID string) string { return "session/" + sessionID + "/acting-user-id" }
func SplashSeenKey(sessionID string) string { return "session/" + sessionID + "/splash-seen" }
func ViewedPostsKey(sessionID string) string { return "session/" + sessionID + "/viewed-posts" }
