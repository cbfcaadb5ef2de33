package live

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"ramotsav.com/project-ramotsav/logger"
)

// IngestTrack is a server-side ingest slot that a client publishes one
// media kind to.
type IngestTrack struct {
	ID        string `json:"id"`
	MediaKind string `json:"kind"`

	once    sync.Once
	stopped chan struct{}
}

func NewIngestTrack(kind string) *IngestTrack {
	return &IngestTrack{ID: uuid.NewString(), MediaKind: kind, stopped: make(chan struct{})}
}

func (t *IngestTrack) Kind() string { return t.MediaKind }

func (t *IngestTrack) Stop() {
	t.once.Do(func() {
		close(t.stopped)
		logger.Log.Debug("ingest track released", zap.String("track_id", t.ID), zap.String("kind", t.MediaKind))
	})
}

func (t *IngestTrack) Stopped() <-chan struct{} { return t.stopped }

// IngestAcquirer allocates one video and one audio slot.
func IngestAcquirer(context.Context) ([]Track, error) {
	return []Track{NewIngestTrack("video"), NewIngestTrack("audio")}, nil
}

// Hub keeps at most one broadcast per user.
type Hub struct {
	acquire Acquirer

	mu         sync.Mutex
	broadcasts map[string]*Broadcast
}

func NewHub(acquire Acquirer) *Hub {
	return &Hub{acquire: acquire, broadcasts: make(map[string]*Broadcast)}
}

// GoLive starts userID's broadcast. It ends on StopLive or when ctx ends;
// the returned channel closes once its tracks are released.
func (h *Hub) GoLive(ctx context.Context, userID string) (<-chan struct{}, error) {
	h.mu.Lock()
	b, ok := h.broadcasts[userID]
	if !ok {
		b = NewBroadcast(h.acquire)
		h.broadcasts[userID] = b
	}
	h.mu.Unlock()
	if err := b.Start(ctx); err != nil {
		return nil, err
	}
	return b.Done(), nil
}

func (h *Hub) StopLive(userID string) error {
	h.mu.Lock()
	b, ok := h.broadcasts[userID]
	h.mu.Unlock()
	if !ok {
		return ErrNotLive
	}
	return b.Stop()
}

func (h *Hub) IsLive(userID string) bool {
	h.mu.Lock()
	b, ok := h.broadcasts[userID]
	h.mu.Unlock()
	return ok && b.Live()
}

// Shutdown releases every live broadcast.
func (h *Hub) Shutdown() {
	h.mu.Lock()
	all := make([]*Broadcast, 0, len(h.broadcasts))
	for _, b := range h.broadcasts {
		all = append(all, b)
	}
	h.mu.Unlock()
	for _, b := range all {
		_ = b.Stop()
	}
}
