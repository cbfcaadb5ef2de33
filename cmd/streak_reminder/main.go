package main

import (
	"context"
	"log"

	"go.uber.org/zap"

	"ramotsav.com/project-ramotsav/bootstrap"
	"ramotsav.com/project-ramotsav/config"
	"ramotsav.com/project-ramotsav/handlers"
	"ramotsav.com/project-ramotsav/logger"
)

func main() {
	if err := logger.Init("info"); err != nil {
		log.Fatalf("logger: %v", err)
	}
	defer logger.Sync()

	cfg, err := config.Load()
	if err != nil {
		logger.Log.Fatal("StreakReminder: config", zap.Error(err))
	}
	logger.SetLevel(cfg.LogLevel)

	ctx := context.Background()
	rt, err := bootstrap.Start(ctx, cfg)
	if err != nil {
		logger.Log.Fatal("StreakReminder: startup failed", zap.Error(err))
	}
	defer rt.Close()

	pusher, err := rt.RequirePusher()
	if err != nil {
		logger.Log.Fatal("StreakReminder: push unavailable", zap.Error(err))
	}

	logger.Log.Info("🔥 Running streak expiry reminder job")
	handlers.SendStreakExpiryNotifications(ctx, rt.App, pusher)
	logger.Log.Info("✅ Streak expiry reminder job finished")
}
