package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"ramotsav.com/project-ramotsav/bootstrap"
	"ramotsav.com/project-ramotsav/catalog"
	"ramotsav.com/project-ramotsav/config"
	"ramotsav.com/project-ramotsav/handlers"
	"ramotsav.com/project-ramotsav/live"
	"ramotsav.com/project-ramotsav/logger"
	"ramotsav.com/project-ramotsav/middleware"
	"ramotsav.com/project-ramotsav/routes"
	"ramotsav.com/project-ramotsav/services"
)

// maxTrackedClients bounds the AI limiter map between sweeps.
const maxTrackedClients = 10000

func main() {
	if err := logger.Init("info"); err != nil {
		log.Fatalf("logger: %v", err)
	}
	defer logger.Sync()

	cfg, err := config.Load()
	if err != nil {
		logger.Log.Fatal("config", zap.Error(err))
	}
	logger.SetLevel(cfg.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	rt, err := bootstrap.Start(ctx, cfg)
	if err != nil {
		logger.Log.Fatal("startup failed", zap.Error(err))
	}
	defer rt.Close()

	var media *services.MediaStore
	if cfg.MinioEndpoint != "" {
		media, err = services.NewMediaStore(ctx, services.MediaConfig{
			Endpoint:       cfg.MinioEndpoint,
			PublicEndpoint: cfg.MinioPublicEndpoint,
			AccessKey:      cfg.MinioAccessKey,
			SecretKey:      cfg.MinioSecretKey,
			Bucket:         cfg.MinioBucket,
			Secure:         cfg.MinioSecure,
		})
		if err != nil {
			logger.Log.Error("media storage unavailable, uploads disabled", zap.Error(err))
			media = nil
		}
	}

	cat := catalog.Default()
	if cfg.LiveStreamURL != "" {
		cat.Live.StreamURL = cfg.LiveStreamURL
	}

	hub := live.NewHub(live.IngestAcquirer)
	defer hub.Shutdown()

	limiter := middleware.NewRateLimiter(cfg.AIRate, cfg.AIBurst)

	loc, _ := cfg.Location()
	scheduler := cron.New(cron.WithLocation(loc))
	if rt.Pusher != nil {
		if _, err := scheduler.AddFunc(cfg.JaapReminderSpec, func() {
			handlers.SendJaapReminderNotifications(ctx, rt.App, rt.Pusher)
		}); err != nil {
			logger.Log.Fatal("JAAP_REMINDER_CRON", zap.Error(err))
		}
		if _, err := scheduler.AddFunc(cfg.StreakReminderSpec, func() {
			handlers.SendStreakExpiryNotifications(ctx, rt.App, rt.Pusher)
		}); err != nil {
			logger.Log.Fatal("STREAK_REMINDER_CRON", zap.Error(err))
		}
	}
	scheduler.AddFunc("@every 10m", func() { limiter.Reset(maxTrackedClients) })
	scheduler.Start()
	defer func() { <-scheduler.Stop().Done() }()

	router := routes.NewRouter(&routes.Deps{
		App:     rt.App,
		Media:   media,
		Asker:   rt.Bridge,
		Hub:     hub,
		Catalog: cat,
		Viewers: live.NewViewerCounter(rt.App.Now(), uint64(time.Now().UnixNano())),
		Tokens: handlers.TokenConfig{
			Secret: []byte(cfg.JWTSecret),
			TTL:    cfg.TokenTTL,
		},
		AILimiter:  limiter,
		RealTotals: cfg.LeaderboardRealTotals,
	})

	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() {
		logger.Log.Info("server listening", zap.String("addr", cfg.HTTPAddr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Log.Fatal("server failed", zap.Error(err))
		}
	}()

	<-ctx.Done()
	logger.Log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	hub.Shutdown()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Log.Error("graceful shutdown failed", zap.Error(err))
	}
}
