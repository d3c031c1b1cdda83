package models

import "time"

type SentimentLabel string

const (
	LabelPositive SentimentLabel = "positive"
	LabelNeutral  SentimentLabel = "neutral"
	LabelNegative SentimentLabel = "negative"
)

// AnalysisResult is the classification outcome for one CommentRecord.
// A failed classification still produces a result with Err set and
// Label/Confidence zeroed, so aggregate counts stay consistent with
// input size.
type AnalysisResult struct {
	Record     CommentRecord  `json:"record"`
	Label      SentimentLabel `json:"label,omitempty"`
	Confidence float64        `json:"confidence"`
	Err        string         `json:"error,omitempty"`
}

func (r AnalysisResult) Failed() bool { return r.Err != "" }

// AnalysisBatch holds the ordered results of one analysis session.
// Invariant: len(Results) equals the number of input records.
type AnalysisBatch struct {
	ID        string           `json:"id"`
	CreatedAt time.Time        `json:"created_at"`
	Results   []AnalysisResult `json:"results"`
	Warning   string           `json:"warning,omitempty"`
}

func (b AnalysisBatch) Len() int { return len(b.Results) }

func (b AnalysisBatch) FailureCount() int {
	var n int
	for _, r := range b.Results {
		if r.Failed() {
			n++
		}
	}
	return n
}

func (b AnalysisBatch) FailureRate() float64 {
	if len(b.Results) == 0 {
		return 0
	}
	return float64(b.FailureCount()) / float64(len(b.Results))
}
