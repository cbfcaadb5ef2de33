package state

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ramotsav.com/project-ramotsav/models"
	"ramotsav.com/project-ramotsav/storage"
)

func TestJaapTap_CompletesExactlyAtTarget(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, Options{})

	completions := 0
	for i := 1; i <= models.JaapTarget+5; i++ {
		rec, done := f.app.JaapTap(ctx, "u1")
		require.Equal(t, i, rec.Count)
		if done {
			completions++
			assert.Equal(t, models.JaapTarget, rec.Count)
		}
	}
	assert.Equal(t, 1, completions)

	_, err := f.app.ResetTodayJaap(ctx, "u1", false)
	assert.ErrorIs(t, err, ErrConfirmationRequired)
	assert.Equal(t, models.JaapTarget+5, f.app.JaapHistory(ctx, "u1")[0].Count)

	rec, err := f.app.ResetTodayJaap(ctx, "u1", true)
	require.NoError(t, err)
	assert.Zero(t, rec.Count)

	completions = 0
	for i := 0; i < models.JaapTarget; i++ {
		if _, done := f.app.JaapTap(ctx, "u1"); done {
			completions++
		}
	}
	assert.Equal(t, 1, completions)
}

func TestJaapTap_OneRecordPerDay(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, Options{})

	f.app.JaapTap(ctx, "u1")
	f.app.JaapTap(ctx, "u1")
	f.clock.Set(f.clock.Now().Add(24 * time.Hour))
	f.app.JaapTap(ctx, "u1")

	hist := f.app.JaapHistory(ctx, "u1")
	assert.Equal(t, []models.JaapRecord{{Date: "2024-03-10", Count: 2}, {Date: "2024-03-11", Count: 1}}, hist)
	assert.Equal(t, hist, storage.Load(ctx, f.store, storage.JaapHistoryKey("u1"), []models.JaapRecord(nil)))
	assert.Empty(t, f.app.JaapHistory(ctx, "u2"))

	totals := f.app.JaapTotals(ctx)
	assert.Equal(t, 3, totals["u1"])
	assert.Zero(t, totals["u2"])
}

func TestJaapTap_DateFollowsLocation(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, Options{})
	// 20:00 UTC is already the next day in IST
	f.clock.Set(time.Date(2024, 3, 10, 20, 0, 0, 0, time.UTC))

	rec, _ := f.app.JaapTap(ctx, "u1")
	assert.Equal(t, "2024-03-11", rec.Date)
}

func TestEditLekhan_ReplacesTodaysText(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, Options{})

	f.app.EditLekhan(ctx, "u1", "राम")
	rec := f.app.EditLekhan(ctx, "u1", "राम राम")
	assert.Equal(t, "राम राम", rec.Text)

	hist := f.app.LekhanHistory(ctx, "u1")
	require.Len(t, hist, 1)
	assert.Equal(t, models.LekhanRecord{Date: "2024-03-10", Text: "राम राम"}, hist[0])
}
