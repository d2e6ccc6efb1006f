package consume

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/14dstcyr/buzzline-04-stcyr/internal/chart"
	"github.com/14dstcyr/buzzline-04-stcyr/internal/decode"
	"github.com/14dstcyr/buzzline-04-stcyr/internal/metrics"
	"github.com/14dstcyr/buzzline-04-stcyr/internal/model"
	"github.com/14dstcyr/buzzline-04-stcyr/internal/window"
)

// MessageConsumer is the message source collaborator: a pull-based stream of
// envelopes plus guaranteed release.
type MessageConsumer interface {
	Fetch(ctx context.Context) (model.Envelope, error)
	Close() error
}

// Loop drives the decoder, the rolling window and the chart from a message
// source. A single goroutine owns it; decode failures skip the message, any
// other failure ends the loop through the same cleanup path as an interrupt.
type Loop struct {
	consumer MessageConsumer
	window   *window.RollingWindow
	renderer chart.Renderer
	metrics  *metrics.Metrics
	logger   *slog.Logger

	closeOnce sync.Once
	closeErr  error
}

// NewLoop creates a consumption loop.
func NewLoop(consumer MessageConsumer, w *window.RollingWindow, renderer chart.Renderer, m *metrics.Metrics, logger *slog.Logger) *Loop {
	if logger == nil {
		logger = slog.Default()
	}
	return &Loop{
		consumer: consumer,
		window:   w,
		renderer: renderer,
		metrics:  m,
		logger:   logger,
	}
}

// Run pulls envelopes until ctx is cancelled or the source fails, then
// releases the consumer. Close runs exactly once no matter how the loop
// ends. An interrupt returns nil; a source failure returns the error.
func (l *Loop) Run(ctx context.Context) error {
	defer func() {
		if err := l.close(); err != nil {
			l.logger.Error("failed to close message consumer", "error", err)
		}
	}()

	l.logger.Info("starting consumption loop")

	for {
		envelope, err := l.consumer.Fetch(ctx)
		if err != nil {
			if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
				l.logger.Info("consumption interrupted, shutting down")
				return nil
			}
			l.logger.Error("failed to fetch message", "error", err)
			return fmt.Errorf("fetch message: %w", err)
		}

		l.handle(envelope)

		select {
		case <-ctx.Done():
			l.logger.Info("consumption interrupted, shutting down")
			return nil
		default:
		}
	}
}

// handle runs one envelope through decode-append-redraw.
func (l *Loop) handle(envelope model.Envelope) {
	l.logger.Debug("received message",
		"offset", envelope.Offset,
		"payload", string(envelope.Value))
	if l.metrics != nil {
		l.metrics.MessagesConsumed.Inc()
	}

	msg, err := decode.Message(envelope.Value)
	if err != nil {
		fields := []any{
			"offset", envelope.Offset,
			"payload", string(envelope.Value),
			"error", err,
		}
		var decodeErr *decode.DecodeError
		if errors.As(err, &decodeErr) {
			fields = append(fields, "kind", string(decodeErr.Kind))
			if l.metrics != nil {
				l.metrics.DecodeFailures.WithLabelValues(string(decodeErr.Kind)).Inc()
			}
		}
		l.logger.Warn("skipping undecodable message", fields...)
		return
	}

	if err := l.window.Append(model.SentimentPoint{
		Timestamp: msg.Timestamp,
		Sentiment: msg.Sentiment,
	}); err != nil {
		l.logger.Error("failed to append point", "offset", envelope.Offset, "error", err)
		return
	}

	l.logger.Info("sentiment point added",
		"timestamp", msg.Timestamp.Format(model.TimestampLayout),
		"sentiment", msg.Sentiment,
		"window_length", l.window.Len())
	if l.metrics != nil {
		l.metrics.PointsPlotted.Inc()
		l.metrics.WindowLength.Set(float64(l.window.Len()))
	}

	l.renderer.Redraw(l.window.Snapshot())
}

func (l *Loop) close() error {
	l.closeOnce.Do(func() {
		l.closeErr = l.consumer.Close()
	})
	return l.closeErr
}
