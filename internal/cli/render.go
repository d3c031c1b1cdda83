package cli

import (
	"fmt"
	"io"

	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/spacesedan/commentlens/internal/adapters"
	"github.com/spacesedan/commentlens/internal/models"
)

const topTokensShown = 15

// renderSummary prints the SummaryView as plain-text tables.
func renderSummary(w io.Writer, view models.SummaryView, batch models.AnalysisBatch, report *adapters.SourceReport) {
	fmt.Fprintf(w, "Batch %s: %d records, %d classified, %d errors\n",
		batch.ID, view.Total, view.Classified, view.Errors)
	if report != nil && report.Skipped > 0 {
		fmt.Fprintf(w, "Source skipped %d rows\n", report.Skipped)
	}
	if batch.Warning != "" {
		fmt.Fprintf(w, "WARNING: %s\n", batch.Warning)
	}

	labels := table.NewWriter()
	labels.SetOutputMirror(w)
	labels.SetStyle(table.StyleLight)
	labels.AppendHeader(table.Row{"Sentiment", "Count", "Percent"})
	for _, label := range []models.SentimentLabel{
		models.LabelPositive, models.LabelNeutral, models.LabelNegative,
	} {
		ls := view.Labels[label]
		labels.AppendRow(table.Row{label, ls.Count, fmt.Sprintf("%.1f%%", ls.Percent)})
	}
	labels.Render()

	if view.Classified > 0 {
		fmt.Fprintf(w, "Confidence: mean %.4f, variance %.4f\n",
			view.Confidence.Mean, view.Confidence.Variance)
	}

	if len(view.Platforms) > 1 {
		platforms := table.NewWriter()
		platforms.SetOutputMirror(w)
		platforms.SetStyle(table.StyleLight)
		platforms.AppendHeader(table.Row{"Platform", "Positive", "Neutral", "Negative"})
		for _, platform := range []models.Platform{
			models.PlatformManual, models.PlatformCSV,
			models.PlatformInstagram, models.PlatformTikTok,
		} {
			counts, ok := view.Platforms[platform]
			if !ok {
				continue
			}
			platforms.AppendRow(table.Row{
				platform,
				counts[models.LabelPositive],
				counts[models.LabelNeutral],
				counts[models.LabelNegative],
			})
		}
		platforms.Render()
	}

	if len(view.Trend) > 0 {
		trend := table.NewWriter()
		trend.SetOutputMirror(w)
		trend.SetStyle(table.StyleLight)
		trend.AppendHeader(table.Row{"Day", "Positive", "Neutral", "Negative"})
		for _, bucket := range view.Trend {
			trend.AppendRow(table.Row{
				bucket.Day,
				bucket.Counts[models.LabelPositive],
				bucket.Counts[models.LabelNeutral],
				bucket.Counts[models.LabelNegative],
			})
		}
		if view.Undated > 0 {
			trend.AppendFooter(table.Row{"undated", view.Undated, "", ""})
		}
		trend.Render()
	}

	if len(view.TopTokens) > 0 {
		tokens := view.TopTokens
		if len(tokens) > topTokensShown {
			tokens = tokens[:topTokensShown]
		}
		tt := table.NewWriter()
		tt.SetOutputMirror(w)
		tt.SetStyle(table.StyleLight)
		tt.AppendHeader(table.Row{"Token", "Count"})
		for _, tc := range tokens {
			tt.AppendRow(table.Row{tc.Token, tc.Count})
		}
		tt.Render()
	}
}
