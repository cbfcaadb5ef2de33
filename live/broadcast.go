// Package live holds the broadcast resource and the watch-mode feed.
package live

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"ramotsav.com/project-ramotsav/logger"
)

var (
	ErrAlreadyLive = errors.New("broadcast already live")
	ErrNotLive     = errors.New("broadcast not live")
)

// Track is one captured media source, such as a camera or microphone.
type Track interface {
	Kind() string
	Stop()
}

// Acquirer obtains the tracks of a broadcast. A refused device surfaces as
// an error and leaves nothing acquired.
type Acquirer func(ctx context.Context) ([]Track, error)

// Broadcast owns the tracks of one live session. Tracks are released when
// Stop is called or the context given to Start ends, whichever comes first,
// and each track is stopped exactly once.
type Broadcast struct {
	acquire Acquirer

	mu     sync.Mutex
	tracks []Track
	cancel context.CancelFunc
	done   chan struct{}
}

func NewBroadcast(acquire Acquirer) *Broadcast {
	return &Broadcast{acquire: acquire}
}

func (b *Broadcast) Start(ctx context.Context) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.tracks != nil {
		return ErrAlreadyLive
	}
	tracks, err := b.acquire(ctx)
	if err != nil {
		return fmt.Errorf("acquire media: %w", err)
	}
	if tracks == nil {
		tracks = []Track{}
	}

	scope, cancel := context.WithCancel(ctx)
	done := make(chan struct{})
	b.tracks, b.cancel, b.done = tracks, cancel, done

	go func() {
		<-scope.Done()
		b.release(done)
	}()
	logger.Log.Info("broadcast started", zap.Int("tracks", len(tracks)))
	return nil
}

// Stop ends the broadcast and waits until every track is stopped.
func (b *Broadcast) Stop() error {
	b.mu.Lock()
	cancel, done := b.cancel, b.done
	b.mu.Unlock()
	if cancel == nil {
		return ErrNotLive
	}
	cancel()
	<-done
	return nil
}

// Done is closed once the current broadcast has released its tracks.
func (b *Broadcast) Done() <-chan struct{} {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.done
}

func (b *Broadcast) Live() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.tracks != nil
}

func (b *Broadcast) release(done chan struct{}) {
	b.mu.Lock()
	tracks := b.tracks
	b.tracks, b.cancel = nil, nil
	b.mu.Unlock()

	for _, t := range tracks {
		t.Stop()
	}
	logger.Log.Info("broadcast stopped", zap.Int("tracks", len(tracks)))
	close(done)
}
