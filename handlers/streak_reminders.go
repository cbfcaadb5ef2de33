package handlers

import (
	"context"

	"go.uber.org/zap"

	"ramotsav.com/project-ramotsav/logger"
	"ramotsav.com/project-ramotsav/metrics"
	"ramotsav.com/project-ramotsav/state"
	"ramotsav.com/project-ramotsav/views"
)

// SendStreakExpiryNotifications warns users whose jaap streak ends tonight
// unless they chant today.
func SendStreakExpiryNotifications(ctx context.Context, app *state.App, pusher Pusher) {
	now := app.Now()
	logger.Log.Info("[StreakReminder] Job started", zap.Time("now", now))

	sent := 0
	for _, u := range app.Users() {
		history := app.JaapHistory(ctx, u.ID)
		if !views.StreakAtRisk(history, now) {
			continue
		}
		streak := views.JaapStreak(history, now)

		success, failure, err := pusher.SendToUser(ctx, u.ID,
			"🔥 Don't let your streak expire today!",
			"Your jaap streak ends at midnight. A few taps keep it alive.",
			map[string]string{
				"type":    "streak_expiry",
				"user_id": u.ID,
			},
		)
		if err != nil {
			logger.Log.Warn("[StreakReminder] FCM error", zap.String("user_id", u.ID), zap.Error(err))
			continue
		}
		sent += success
		logger.Log.Info("[StreakReminder] Sent streak expiry warning",
			zap.String("user_id", u.ID), zap.Int("streak", streak.Current),
			zap.Int("success", success), zap.Int("failure", failure))
	}

	metrics.RecordReminderSent("streak", sent)
	logger.Log.Info("[StreakReminder] Job finished", zap.Int("notifications_sent", sent))
}
