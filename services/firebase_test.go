package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"firebase.google.com/go/v4/messaging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ramotsav.com/project-ramotsav/models"
	"ramotsav.com/project-ramotsav/storage"
)

var errUnregistered = errors.New("registration-token-not-registered")

type fakeFCM struct {
	sent   []*messaging.MulticastMessage
	failOn map[string]error
	err    error
	// during runs while the multicast is in flight.
	during func()
}

func (f *fakeFCM) SendEachForMulticast(_ context.Context, m *messaging.MulticastMessage) (*messaging.BatchResponse, error) {
	if f.err != nil {
		return nil, f.err
	}
	if f.during != nil {
		f.during()
	}
	f.sent = append(f.sent, m)
	br := &messaging.BatchResponse{}
	for _, tok := range m.Tokens {
		if err, ok := f.failOn[tok]; ok {
			br.FailureCount++
			br.Responses = append(br.Responses, &messaging.SendResponse{Success: false, Error: err})
			continue
		}
		br.SuccessCount++
		br.Responses = append(br.Responses, &messaging.SendResponse{Success: true, MessageID: "m-" + tok})
	}
	return br, nil
}

func newTestPusher(t *testing.T, fcm *fakeFCM, tokens ...string) (*Pusher, *storage.MemoryStore, *storage.DeviceRegistry) {
	t.Helper()
	store := storage.NewMemoryStore(0)
	var seed []models.DeviceToken
	for _, tok := range tokens {
		seed = append(seed, models.DeviceToken{Token: tok})
	}
	require.NoError(t, store.Save(context.Background(), storage.DeviceTokensKey("u1"), seed))
	devices := storage.NewDeviceRegistry(store)
	p := NewPusher(fcm, devices)
	p.isDead = func(err error) bool { return errors.Is(err, errUnregistered) }
	return p, store, devices
}

func TestPusher_PrunesDeadTokens(t *testing.T) {
	ctx := context.Background()
	fcm := &fakeFCM{failOn: map[string]error{
		"dead":  errUnregistered,
		"flaky": errors.New("unavailable"),
	}}
	p, store, _ := newTestPusher(t, fcm, "live", "dead", "flaky")

	ok, failed, err := p.SendToUser(ctx, "u1", "Ramotsav", "hello", nil)
	require.NoError(t, err)
	assert.Equal(t, 1, ok)
	assert.Equal(t, 2, failed)

	left := storage.Load(ctx, store, storage.DeviceTokensKey("u1"), []models.DeviceToken(nil))
	assert.Equal(t, []models.DeviceToken{{Token: "live"}, {Token: "flaky"}}, left)
}

func TestPusher_PruneKeepsTokenRegisteredMidSend(t *testing.T) {
	ctx := context.Background()
	fcm := &fakeFCM{failOn: map[string]error{"dead": errUnregistered}}
	p, store, devices := newTestPusher(t, fcm, "live", "dead")
	fcm.during = func() { devices.Register(ctx, "u1", "fresh", time.Time{}) }

	_, _, err := p.SendToUser(ctx, "u1", "Ramotsav", "hello", nil)
	require.NoError(t, err)

	left := storage.Load(ctx, store, storage.DeviceTokensKey("u1"), []models.DeviceToken(nil))
	assert.Equal(t, []models.DeviceToken{{Token: "live"}, {Token: "fresh"}}, left)
}

func TestPusher_NoTokensSkipsSend(t *testing.T) {
	fcm := &fakeFCM{}
	p := NewPusher(fcm, storage.NewDeviceRegistry(storage.NewMemoryStore(0)))

	ok, failed, err := p.SendToUser(context.Background(), "nobody", "t", "b", nil)
	require.NoError(t, err)
	assert.Zero(t, ok+failed)
	assert.Empty(t, fcm.sent)
}

func TestPusher_SendFailure(t *testing.T) {
	fcm := &fakeFCM{err: errors.New("quota")}
	p, _, _ := newTestPusher(t, fcm, "live")
	_, _, err := p.SendToUser(context.Background(), "u1", "t", "b", nil)
	assert.Error(t, err)
}

func TestPusher_Notify(t *testing.T) {
	fcm := &fakeFCM{}
	p, _, _ := newTestPusher(t, fcm, "live")

	p.Notify(context.Background(),
		models.Notification{ID: "n1", Type: models.NotifyComment, FromUserID: "u2", ToUserID: "u1", PostID: "post_1"},
		models.User{ID: "u2", Name: "Sita"})

	require.Len(t, fcm.sent, 1)
	msg := fcm.sent[0]
	assert.Equal(t, "Sita commented on your post", msg.Notification.Body)
	assert.Equal(t, map[string]string{"type": "comment", "from_user_id": "u2", "post_id": "post_1"}, msg.Data)
}
