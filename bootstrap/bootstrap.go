// Package bootstrap wires the stores and services shared by the server
// and the reminder jobs.
package bootstrap

import (
	"context"
	"fmt"
	"net/http"
	"os"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"

	"ramotsav.com/project-ramotsav/config"
	"ramotsav.com/project-ramotsav/database"
	"ramotsav.com/project-ramotsav/logger"
	"ramotsav.com/project-ramotsav/services"
	"ramotsav.com/project-ramotsav/state"
	"ramotsav.com/project-ramotsav/storage"
)

// Runtime is a started state container and what it needs to shut down.
type Runtime struct {
	App    *state.App
	Store  storage.DocumentStore
	Pusher *services.Pusher
	Bridge *services.Bridge

	closers []func()
}

func (rt *Runtime) Close() {
	for i := len(rt.closers) - 1; i >= 0; i-- {
		rt.closers[i]()
	}
}

// Start opens Postgres and Redis when configured, falling back to memory,
// then loads the state container.
func Start(ctx context.Context, cfg *config.Config) (*Runtime, error) {
	rt := &Runtime{}

	var store storage.DocumentStore = storage.NewMemoryStore(0)
	if cfg.DatabaseEnabled() {
		db, err := database.ConnectDB(cfg.DSN())
		if err != nil {
			return nil, err
		}
		rt.closers = append(rt.closers, func() { db.Close() })
		if err := database.Migrate(ctx, db); err != nil {
			rt.Close()
			return nil, err
		}
		store = storage.NewPostgresStore(db)
	} else {
		logger.Log.Warn("DB_HOST not set, documents live in memory only")
	}
	rt.Store = store
	devices := storage.NewDeviceRegistry(store)

	var sessions storage.DocumentStore = storage.NewMemoryStore(cfg.SessionTTL)
	if cfg.RedisAddr != "" {
		client := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr, Password: cfg.RedisPassword})
		if err := client.Ping(ctx).Err(); err != nil {
			rt.Close()
			return nil, fmt.Errorf("ping redis: %w", err)
		}
		rt.closers = append(rt.closers, func() { client.Close() })
		sessions = storage.NewRedisStore(client, cfg.SessionTTL)
	}

	loc, err := cfg.Location()
	if err != nil {
		rt.Close()
		return nil, err
	}

	var notifier state.Notifier
	if cfg.FirebaseCredentialsPath != "" {
		client, err := services.InitFirebase(ctx, cfg.FirebaseCredentialsPath)
		if err != nil {
			logger.Log.Error("[FCM] Firebase init failed, push disabled", zap.Error(err))
		} else {
			rt.Pusher = services.NewPusher(client, devices)
			notifier = rt.Pusher
		}
	}

	rt.Bridge = services.NewBridge(newGenerator(ctx, cfg), cfg.AITimeout, darshanImage(cfg.DarshanImage))

	rt.App = state.New(ctx, state.Options{
		Store:    store,
		Sessions: sessions,
		Devices:  devices,
		Location: loc,
		Notifier: notifier,
		Asker:    rt.Bridge,
	})
	return rt, nil
}

func newGenerator(ctx context.Context, cfg *config.Config) services.Generator {
	if cfg.GeminiAPIKey == "" {
		logger.Log.Warn("API_KEY not set, AI answers will ask for a key")
		return nil
	}
	gen, err := services.NewGeminiGenerator(ctx, cfg.GeminiAPIKey, cfg.GeminiModel)
	if err != nil {
		logger.Log.Error("gemini init failed", zap.Error(err))
		return nil
	}
	return gen
}

func darshanImage(path string) services.Image {
	if path == "" {
		return services.Image{}
	}
	data, err := os.ReadFile(path)
	if err != nil {
		logger.Log.Warn("darshan image unavailable", zap.String("path", path), zap.Error(err))
		return services.Image{}
	}
	return services.Image{Data: data, MIMEType: http.DetectContentType(data)}
}

// RequirePusher is for jobs that have nothing to do without push.
func (rt *Runtime) RequirePusher() (*services.Pusher, error) {
	if rt.Pusher == nil {
		return nil, fmt.Errorf("FIREBASE_CREDENTIALS_PATH not set or invalid")
	}
	return rt.Pusher, nil
}
