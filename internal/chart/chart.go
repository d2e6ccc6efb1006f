package chart

import (
	"context"

	"github.com/14dstcyr/buzzline-04-stcyr/internal/model"
)

// Chart labels
const (
	Title      = "Streaming Sentiment Trend"
	XAxisLabel = "Time"
	YAxisLabel = "Sentiment (-1 to 1)"
)

// Renderer is the narrow surface the consumption loop draws through.
// Redraw pushes a fresh frame during the loop; Show keeps the final frame
// visible after the loop has ended, blocking until ctx is cancelled.
type Renderer interface {
	Redraw(snapshot model.WindowSnapshot)
	Show(ctx context.Context)
}

// Frame is one full redraw of the chart as sent to connected pages. The
// whole window is shipped every time; the page clears and replots it.
type Frame struct {
	Title      string    `json:"title"`
	XLabel     string    `json:"x_label"`
	YLabel     string    `json:"y_label"`
	Timestamps []string  `json:"timestamps"`
	Sentiments []float64 `json:"sentiments"`
}

// NewFrame converts a window snapshot into a drawable frame, formatting
// timestamps into tick labels.
func NewFrame(snapshot model.WindowSnapshot) Frame {
	labels := make([]string, len(snapshot.Timestamps))
	for i, ts := range snapshot.Timestamps {
		labels[i] = ts.Format(model.TimestampLayout)
	}

	return Frame{
		Title:      Title,
		XLabel:     XAxisLabel,
		YLabel:     YAxisLabel,
		Timestamps: labels,
		Sentiments: snapshot.Sentiments,
	}
}
