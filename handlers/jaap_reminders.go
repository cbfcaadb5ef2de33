package handlers

import (
	"context"

	"go.uber.org/zap"

	"ramotsav.com/project-ramotsav/logger"
	"ramotsav.com/project-ramotsav/metrics"
	"ramotsav.com/project-ramotsav/models"
	"ramotsav.com/project-ramotsav/state"
	"ramotsav.com/project-ramotsav/views"
)

// SendJaapReminderNotifications nudges every user who has not finished a
// mala today.
func SendJaapReminderNotifications(ctx context.Context, app *state.App, pusher Pusher) {
	now := app.Now()
	today := views.Today(now)
	logger.Log.Info("[JaapReminder] Job started", zap.Time("now", now))

	var processedUsers, notificationsSent int
	for _, u := range app.Users() {
		count := 0
		for _, rec := range app.JaapHistory(ctx, u.ID) {
			if rec.Date == today {
				count = rec.Count
			}
		}
		if count >= models.JaapTarget {
			logger.Log.Debug("[JaapReminder] Mala already complete", zap.String("user_id", u.ID))
			continue
		}

		body := "आज की माला अभी बाकी है। कुछ पल राम नाम के लिए निकालें।"
		if count > 0 {
			body = "आपकी आज की माला अधूरी है। 108 पूरे करें!"
		}
		success, failure, err := pusher.SendToUser(ctx, u.ID, "राम नाम जाप 📿", body, map[string]string{
			"type":    "jaap_reminder",
			"user_id": u.ID,
		})
		if err != nil {
			logger.Log.Warn("[JaapReminder] FCM error", zap.String("user_id", u.ID), zap.Error(err))
			continue
		}
		if success+failure == 0 {
			continue
		}

		processedUsers++
		notificationsSent += success
		logger.Log.Info("[JaapReminder] Sent",
			zap.String("user_id", u.ID), zap.Int("success", success), zap.Int("failure", failure))
	}

	metrics.RecordReminderSent("jaap", notificationsSent)
	logger.Log.Info("[JaapReminder] Job finished",
		zap.Int("processed_users", processedUsers), zap.Int("notifications_sent", notificationsSent))
}
