package live

import (
	"math/rand/v2"
	"sync"
	"time"
)

// WatchInfo describes the fixed stream shown in watching mode.
type WatchInfo struct {
	Title      string `json:"title"`
	StreamURL  string `json:"stream_url"`
	ArtworkURL string `json:"artwork_url"`
	Viewers    int    `json:"viewers"`
	// Simulated marks Viewers as generated, not measured.
	Simulated bool `json:"simulated"`
}

// ViewerCounter produces a fake, time-varying audience size: a random walk
// that moves by up to four viewers every step.
type ViewerCounter struct {
	mu    sync.Mutex
	rng   *rand.Rand
	count int
	last  time.Time
	step  time.Duration
}

func NewViewerCounter(start time.Time, seed uint64) *ViewerCounter {
	rng := rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
	return &ViewerCounter{
		rng:   rng,
		count: 150 + rng.IntN(200),
		last:  start,
		step:  3 * time.Second,
	}
}

func (v *ViewerCounter) At(now time.Time) int {
	v.mu.Lock()
	defer v.mu.Unlock()
	for !now.Before(v.last.Add(v.step)) {
		delta := v.rng.IntN(5)
		if v.rng.IntN(2) == 0 {
			delta = -delta
		}
		v.count += delta
		if v.count < 1 {
			v.count = 1
		}
		v.last = v.last.Add(v.step)
	}
	return v.count
}
