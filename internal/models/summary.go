package models

type LabelStat struct {
	Count   int     `json:"count"`
	Percent float64 `json:"percent"`
}

type ConfidenceStats struct {
	Mean     float64   `json:"mean"`
	Variance float64   `json:"variance"`
	Deciles  []float64 `json:"deciles,omitempty"`
}

type TrendBucket struct {
	Day    string                 `json:"day"`
	Counts map[SentimentLabel]int `json:"counts"`
}

type TokenCount struct {
	Token string `json:"token"`
	Count int    `json:"count"`
}

// SummaryView is a read-only aggregation derived from one AnalysisBatch.
// It is recomputed on demand and never mutated in place.
type SummaryView struct {
	Total      int                               `json:"total"`
	Classified int                               `json:"classified"`
	Errors     int                               `json:"errors"`
	Labels     map[SentimentLabel]LabelStat      `json:"labels"`
	Confidence ConfidenceStats                   `json:"confidence"`
	Trend      []TrendBucket                     `json:"trend,omitempty"`
	Undated    int                               `json:"undated"`
	Platforms  map[Platform]map[SentimentLabel]int `json:"platforms,omitempty"`
	TopTokens  []TokenCount                      `json:"top_tokens,omitempty"`

	// TokensByLabel holds per-sentiment token frequencies, the data a
	// word-cloud renderer would consume.
	TokensByLabel map[SentimentLabel][]TokenCount `json:"tokens_by_label,omitempty"`
}
