package services

import (
	"context"
	"fmt"
	"sync"

	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/messaging"
	"go.uber.org/zap"
	"google.golang.org/api/option"

	"ramotsav.com/project-ramotsav/logger"
	"ramotsav.com/project-ramotsav/models"
	"ramotsav.com/project-ramotsav/storage"
)

var (
	messagingClient *messaging.Client
	once            sync.Once
	initError       error
)

// InitFirebase builds the process-wide FCM client once.
func InitFirebase(ctx context.Context, credentialsPath string) (*messaging.Client, error) {
	once.Do(func() {
		logger.Log.Info("[FCM] Initializing Firebase", zap.String("credentials", credentialsPath))

		app, err := firebase.NewApp(ctx, nil, option.WithCredentialsFile(credentialsPath))
		if err != nil {
			initError = fmt.Errorf("firebase app: %w", err)
			return
		}
		messagingClient, err = app.Messaging(ctx)
		if err != nil {
			initError = fmt.Errorf("firebase messaging: %w", err)
			return
		}
		logger.Log.Info("[FCM] Firebase Messaging client initialized")
	})
	return messagingClient, initError
}

// Multicaster is the part of the FCM client used for delivery.
type Multicaster interface {
	SendEachForMulticast(ctx context.Context, message *messaging.MulticastMessage) (*messaging.BatchResponse, error)
}

// Pusher delivers to every device a user registered and forgets tokens FCM
// reports as unregistered.
type Pusher struct {
	client  Multicaster
	devices *storage.DeviceRegistry
	isDead  func(error) bool
}

func NewPusher(client Multicaster, devices *storage.DeviceRegistry) *Pusher {
	return &Pusher{client: client, devices: devices, isDead: messaging.IsUnregistered}
}

func (p *Pusher) SendToUser(ctx context.Context, userID, title, body string, data map[string]string) (int, int, error) {
	devices := p.devices.Tokens(ctx, userID)
	if len(devices) == 0 {
		logger.Log.Debug("[FCM] No device tokens", zap.String("user_id", userID))
		return 0, 0, nil
	}
	tokens := make([]string, len(devices))
	for i, d := range devices {
		tokens[i] = d.Token
	}

	resp, err := p.client.SendEachForMulticast(ctx, &messaging.MulticastMessage{
		Notification: &messaging.Notification{Title: title, Body: body},
		Data:         data,
		Tokens:       tokens,
	})
	if err != nil {
		logger.Log.Error("[FCM] Multicast send failed entirely", zap.String("user_id", userID), zap.Error(err))
		return 0, 0, err
	}

	dead := make(map[string]bool)
	for i, r := range resp.Responses {
		if r.Success || i >= len(tokens) {
			continue
		}
		logger.Log.Warn("[FCM] Token error", zap.String("user_id", userID), zap.Error(r.Error))
		if p.isDead(r.Error) {
			dead[tokens[i]] = true
		}
	}
	if n := p.devices.Prune(ctx, userID, dead); n > 0 {
		logger.Log.Info("[FCM] Pruned dead tokens", zap.String("user_id", userID), zap.Int("count", n))
	}

	logger.Log.Info("[FCM] Multicast result",
		zap.String("user_id", userID),
		zap.Int("success", resp.SuccessCount),
		zap.Int("failure", resp.FailureCount))
	return resp.SuccessCount, resp.FailureCount, nil
}

// Notify pushes an in-app notification to its recipient's devices.
func (p *Pusher) Notify(ctx context.Context, n models.Notification, from models.User) {
	name := from.Name
	if name == "" {
		name = "Someone"
	}
	var body string
	switch n.Type {
	case models.NotifyLike:
		body = name + " liked your post"
	case models.NotifyComment:
		body = name + " commented on your post"
	case models.NotifyFollow:
		body = name + " started following you"
	default:
		return
	}
	data := map[string]string{
		"type":         string(n.Type),
		"from_user_id": n.FromUserID,
	}
	if n.PostID != "" {
		data["post_id"] = n.PostID
	}
	if _, _, err := p.SendToUser(ctx, n.ToUserID, "Ramotsav", body, data); err != nil {
		logger.Log.Warn("[FCM] Notification push failed", zap.String("notification_id", n.ID), zap.Error(err))
	}
}
