package state

import (
	"context"

	"ramotsav.com/project-ramotsav/models"
	"ramotsav.com/project-ramotsav/storage"
	"ramotsav.com/project-ramotsav/views"
)

func (a *App) jaapFor(ctx context.Context, userID string) []models.JaapRecord {
	recs, ok := a.jaap[userID]
	if !ok {
		recs = storage.Load(ctx, a.store, storage.JaapHistoryKey(userID), []models.JaapRecord{})
		a.jaap[userID] = recs
	}
	return recs
}

func (a *App) lekhanFor(ctx context.Context, userID string) []models.LekhanRecord {
	recs, ok := a.lekhan[userID]
	if !ok {
		recs = storage.Load(ctx, a.store, storage.LekhanHistoryKey(userID), []models.LekhanRecord{})
		a.lekhan[userID] = recs
	}
	return recs
}

func (a *App) JaapHistory(ctx context.Context, userID string) []models.JaapRecord {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.jaapFor(ctx, userID)
}

func (a *App) LekhanHistory(ctx context.Context, userID string) []models.LekhanRecord {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.lekhanFor(ctx, userID)
}

// JaapTotals sums every known user's lifetime jaap count.
func (a *App) JaapTotals(ctx context.Context) map[string]int {
	a.mu.Lock()
	defer a.mu.Unlock()
	totals := make(map[string]int, len(a.users))
	for _, u := range a.users {
		totals[u.ID] = views.JaapTotal(a.jaapFor(ctx, u.ID))
	}
	return totals
}

// JaapTap adds one to today's count. completed is true only for the tap
// that lands exactly on JaapTarget.
func (a *App) JaapTap(ctx context.Context, userID string) (rec models.JaapRecord, completed bool) {
	a.mu.Lock()
	defer a.mu.Unlock()

	rec = a.setJaap(ctx, userID, func(count int) int { return count + 1 })
	return rec, rec.Count == models.JaapTarget
}

func (a *App) ResetTodayJaap(ctx context.Context, userID string, confirm bool) (models.JaapRecord, error) {
	if !confirm {
		return models.JaapRecord{}, ErrConfirmationRequired
	}
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.setJaap(ctx, userID, func(int) int { return 0 }), nil
}

func (a *App) setJaap(ctx context.Context, userID string, update func(int) int) models.JaapRecord {
	today := a.today()
	current := a.jaapFor(ctx, userID)
	next := make([]models.JaapRecord, 0, len(current)+1)
	rec := models.JaapRecord{Date: today}
	found := false
	for _, r := range current {
		if r.Date == today {
			r.Count = update(r.Count)
			rec = r
			found = true
		}
		next = append(next, r)
	}
	if !found {
		rec.Count = update(0)
		next = append(next, rec)
	}
	a.jaap[userID] = next
	storage.Save(ctx, a.store, storage.JaapHistoryKey(userID), next)
	return rec
}

// EditLekhan replaces today's text wholesale.
func (a *App) EditLekhan(ctx context.Context, userID, text string) models.LekhanRecord {
	a.mu.Lock()
	defer a.mu.Unlock()

	today := a.today()
	current := a.lekhanFor(ctx, userID)
	next := make([]models.LekhanRecord, 0, len(current)+1)
	rec := models.LekhanRecord{Date: today, Text: text}
	found := false
	for _, r := range current {
		if r.Date == today {
			r.Text = text
			found = true
		}
		next = append(next, r)
	}
	if !found {
		next = append(next, rec)
	}
	a.lekhan[userID] = next
	storage.Save(ctx, a.store, storage.LekhanHistoryKey(userID), next)
	return rec
}
