package views

import (
	"sort"
	"time"
	"unicode/utf8"

	"ramotsav.com/project-ramotsav/models"
)

// WeekStart returns local midnight of the Monday on or before now.
func WeekStart(now time.Time) time.Time {
	offset := int(now.Weekday()) - 1
	if now.Weekday() == time.Sunday {
		offset = 6
	}
	y, m, d := now.Date()
	return time.Date(y, m, d-offset, 0, 0, 0, 0, now.Location())
}

func Today(now time.Time) string {
	return now.Format(models.DateLayout)
}

func JaapStats(records []models.JaapRecord, now time.Time) models.PeriodStats {
	return aggregate(len(records), func(i int) (string, int) {
		return records[i].Date, records[i].Count
	}, now)
}

// LekhanStats sums written characters, counted as runes.
func LekhanStats(records []models.LekhanRecord, now time.Time) models.PeriodStats {
	return aggregate(len(records), func(i int) (string, int) {
		return records[i].Date, utf8.RuneCountInString(records[i].Text)
	}, now)
}

func JaapTotal(records []models.JaapRecord) int {
	total := 0
	for _, r := range records {
		total += r.Count
	}
	return total
}

func aggregate(n int, at func(int) (string, int), now time.Time) models.PeriodStats {
	loc := now.Location()
	today := Today(now)
	weekFrom := WeekStart(now)
	weekTo := weekFrom.AddDate(0, 0, 7)
	yearFrom := time.Date(now.Year(), time.January, 1, 0, 0, 0, 0, loc)
	yearTo := yearFrom.AddDate(1, 0, 0)

	var stats models.PeriodStats
	for i := 0; i < n; i++ {
		date, value := at(i)
		day, err := time.ParseInLocation(models.DateLayout, date, loc)
		if err != nil {
			continue
		}
		if date == today {
			stats.Today += value
		}
		if !day.Before(weekFrom) && day.Before(weekTo) {
			stats.Week += value
		}
		if !day.Before(yearFrom) && day.Before(yearTo) {
			stats.Year += value
		}
	}
	return stats
}

// JaapStreak counts consecutive days with at least one tap. A streak whose
// last day is yesterday is still current; it breaks once a full day passes.
func JaapStreak(records []models.JaapRecord, now time.Time) models.Streak {
	loc := now.Location()
	days := make([]time.Time, 0, len(records))
	for _, r := range records {
		if r.Count <= 0 {
			continue
		}
		d, err := time.ParseInLocation(models.DateLayout, r.Date, loc)
		if err != nil {
			continue
		}
		days = append(days, d)
	}
	if len(days) == 0 {
		return models.Streak{}
	}
	sort.Slice(days, func(i, j int) bool { return days[i].Before(days[j]) })

	var s models.Streak
	run := 0
	var prev time.Time
	for i, d := range days {
		if i > 0 && d.Equal(prev) {
			continue
		}
		if i > 0 && prev.AddDate(0, 0, 1).Equal(d) {
			run++
		} else {
			run = 1
		}
		if run > s.Longest {
			s.Longest = run
		}
		prev = d
	}

	last := days[len(days)-1]
	s.LastDate = last.Format(models.DateLayout)
	y, m, d := now.Date()
	today := time.Date(y, m, d, 0, 0, 0, 0, loc)
	if last.Equal(today) || last.Equal(today.AddDate(0, 0, -1)) {
		s.Current = run
	}
	return s
}

// StreakAtRisk reports a live streak that has no taps yet today.
func StreakAtRisk(records []models.JaapRecord, now time.Time) bool {
	s := JaapStreak(records, now)
	return s.Current > 0 && s.LastDate != Today(now)
}
