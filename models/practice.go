package models

// DateLayout is the calendar-date key shared by jaap and lekhan records.
const DateLayout = "2006-01-02"

// JaapTarget is one mala: reaching it exactly signals completion.
const JaapTarget = 108

type JaapRecord struct {
	Date  string `json:"date"`
	Count int    `json:"count"`
}

type LekhanRecord struct {
	Date string `json:"date"`
	Text string `json:"text"`
}

type PeriodStats struct {
	Today int `json:"today"`
	Week  int `json:"week"`
	Year  int `json:"year"`
}

type Streak struct {
	Current  int    `json:"current"`
	Longest  int    `json:"longest"`
	LastDate string `json:"last_date,omitempty"`
}
