package models

import "time"

// NewsItem is one candidate article taken from the feed. Items live for a
// single pipeline run and are never persisted.
type NewsItem struct {
	Title string `json:"title"`
	URL   string `json:"url"`
}

// RunRecord is the audit row written after each digest run.
type RunRecord struct {
	ID              int64     `json:"id"`
	ItemCount       int       `json:"item_count"`
	ExtractFailures int       `json:"extract_failures"`
	SummaryFailures int       `json:"summary_failures"`
	MessageChars    int       `json:"message_chars"`
	Truncated       bool      `json:"truncated"`
	Delivered       bool      `json:"delivered"`
	StartedAt       time.Time `json:"started_at"`
	FinishedAt      time.Time `json:"finished_at"`
	CreatedAt       time.Time `json:"created_at"`
}
