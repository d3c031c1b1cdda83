// Package analytics derives summary statistics from an analysis batch.
// Summarize is a pure function: the same batch always yields the same
// view, and an empty batch yields the zero view rather than an error.
package analytics

import (
	"sort"

	"gonum.org/v1/gonum/stat"

	"github.com/spacesedan/commentlens/internal/models"
)

const trendDayLayout = "2006-01-02"

// Summarize computes the SummaryView for a batch. Errored results are
// excluded from percentages and confidence statistics but always counted.
func Summarize(batch models.AnalysisBatch) models.SummaryView {
	view := models.SummaryView{
		Total:  batch.Len(),
		Labels: map[models.SentimentLabel]models.LabelStat{},
	}
	for _, label := range []models.SentimentLabel{
		models.LabelPositive, models.LabelNeutral, models.LabelNegative,
	} {
		view.Labels[label] = models.LabelStat{}
	}

	if batch.Len() == 0 {
		return view
	}

	var confidences []float64
	var texts []string
	textsByLabel := map[models.SentimentLabel][]string{}
	trend := map[string]map[models.SentimentLabel]int{}
	platforms := map[models.Platform]map[models.SentimentLabel]int{}

	for _, result := range batch.Results {
		if result.Failed() {
			view.Errors++
			continue
		}
		view.Classified++

		ls := view.Labels[result.Label]
		ls.Count++
		view.Labels[result.Label] = ls

		confidences = append(confidences, result.Confidence)
		texts = append(texts, result.Record.Text)
		textsByLabel[result.Label] = append(textsByLabel[result.Label], result.Record.Text)

		if result.Record.Timestamp != nil {
			day := result.Record.Timestamp.UTC().Format(trendDayLayout)
			if trend[day] == nil {
				trend[day] = map[models.SentimentLabel]int{}
			}
			trend[day][result.Label]++
		} else {
			view.Undated++
		}

		if platforms[result.Record.Platform] == nil {
			platforms[result.Record.Platform] = map[models.SentimentLabel]int{}
		}
		platforms[result.Record.Platform][result.Label]++
	}

	if view.Classified > 0 {
		for label, ls := range view.Labels {
			ls.Percent = float64(ls.Count) / float64(view.Classified) * 100
			view.Labels[label] = ls
		}
		view.Confidence = confidenceStats(confidences)
	}

	view.Trend = sortedTrend(trend)
	if len(platforms) > 0 {
		view.Platforms = platforms
	}

	view.TopTokens = toTokenCounts(countTokens(texts, TOP_TOKEN_LIMIT))
	if view.Classified > 0 {
		view.TokensByLabel = map[models.SentimentLabel][]models.TokenCount{}
		for label, labelTexts := range textsByLabel {
			view.TokensByLabel[label] = toTokenCounts(countTokens(labelTexts, TOP_TOKEN_LIMIT))
		}
	}

	return view
}

func confidenceStats(confidences []float64) models.ConfidenceStats {
	sorted := append([]float64(nil), confidences...)
	sort.Float64s(sorted)

	stats := models.ConfidenceStats{
		Mean: stat.Mean(sorted, nil),
	}
	if len(sorted) > 1 {
		stats.Variance = stat.Variance(sorted, nil)
	}

	stats.Deciles = make([]float64, 11)
	for i := 0; i <= 10; i++ {
		stats.Deciles[i] = stat.Quantile(float64(i)/10, stat.Empirical, sorted, nil)
	}
	return stats
}

func sortedTrend(trend map[string]map[models.SentimentLabel]int) []models.TrendBucket {
	if len(trend) == 0 {
		return nil
	}

	days := make([]string, 0, len(trend))
	for day := range trend {
		days = append(days, day)
	}
	sort.Strings(days)

	buckets := make([]models.TrendBucket, len(days))
	for i, day := range days {
		buckets[i] = models.TrendBucket{Day: day, Counts: trend[day]}
	}
	return buckets
}

func toTokenCounts(entries []tokenEntry) []models.TokenCount {
	if len(entries) == 0 {
		return nil
	}
	out := make([]models.TokenCount, len(entries))
	for i, e := range entries {
		out[i] = models.TokenCount{Token: e.token, Count: e.count}
	}
	return out
}
