package mock

import (
	"context"
	"encoding/json"
	"fmt"
	"math/rand"
	"time"

	"github.com/14dstcyr/buzzline-04-stcyr/internal/model"
)

// GeneratorConfig holds configuration for the buzz message generator
type GeneratorConfig struct {
	Authors    []string
	Categories []string
	Keywords   []string
	Interval   time.Duration
	Volatility float64
	Seed       int64
}

// DefaultGeneratorConfig returns a sensible default configuration
func DefaultGeneratorConfig() GeneratorConfig {
	return GeneratorConfig{
		Authors:    []string{"Alice", "Bob", "Charlie", "Eve"},
		Categories: []string{"humor", "tech", "food", "travel", "entertainment", "gaming", "other"},
		Keywords:   []string{"meme", "Python", "recipe", "travel", "movie", "game"},
		Interval:   time.Second,
		Volatility: 0.3,
		Seed:       time.Now().UnixNano(),
	}
}

// BuzzGenerator fabricates buzz messages so the chart works without a live
// broker. The sentiment follows a clamped random walk in [-1, 1]. It
// implements consume.MessageConsumer.
type BuzzGenerator struct {
	config    GeneratorConfig
	sentiment float64
	offset    int64
	rng       *rand.Rand
	ticker    *time.Ticker
}

// NewBuzzGenerator creates a buzz generator with default config
func NewBuzzGenerator() *BuzzGenerator {
	return NewBuzzGeneratorWithConfig(DefaultGeneratorConfig())
}

// NewBuzzGeneratorWithConfig creates a buzz generator with custom config
func NewBuzzGeneratorWithConfig(config GeneratorConfig) *BuzzGenerator {
	if config.Interval <= 0 {
		config.Interval = DefaultGeneratorConfig().Interval
	}
	return &BuzzGenerator{
		config: config,
		rng:    rand.New(rand.NewSource(config.Seed)),
		ticker: time.NewTicker(config.Interval),
	}
}

// Fetch waits one interval and returns the next fabricated envelope.
func (g *BuzzGenerator) Fetch(ctx context.Context) (model.Envelope, error) {
	select {
	case <-ctx.Done():
		return model.Envelope{}, ctx.Err()
	case <-g.ticker.C:
	}

	payload, err := json.Marshal(g.nextMessage())
	if err != nil {
		return model.Envelope{}, fmt.Errorf("marshal generated message: %w", err)
	}

	envelope := model.Envelope{
		Value:  payload,
		Offset: g.offset,
	}
	g.offset++

	return envelope, nil
}

// Close stops the generator's ticker.
func (g *BuzzGenerator) Close() error {
	g.ticker.Stop()
	return nil
}

// wireMessage mirrors the documented buzz payload shape.
type wireMessage struct {
	Message          string  `json:"message"`
	Author           string  `json:"author"`
	Timestamp        string  `json:"timestamp"`
	Category         string  `json:"category"`
	Sentiment        float64 `json:"sentiment"`
	KeywordMentioned string  `json:"keyword_mentioned"`
	MessageLength    int     `json:"message_length"`
}

func (g *BuzzGenerator) nextMessage() wireMessage {
	// Random walk with clamping keeps the trend line interesting
	g.sentiment += g.rng.NormFloat64() * g.config.Volatility
	if g.sentiment > 1 {
		g.sentiment = 1
	}
	if g.sentiment < -1 {
		g.sentiment = -1
	}

	author := g.config.Authors[g.rng.Intn(len(g.config.Authors))]
	category := g.config.Categories[g.rng.Intn(len(g.config.Categories))]
	keyword := g.config.Keywords[g.rng.Intn(len(g.config.Keywords))]
	text := fmt.Sprintf("I just shared a %s! It was %s.", keyword, reaction(g.sentiment))

	return wireMessage{
		Message:          text,
		Author:           author,
		Timestamp:        time.Now().Format(model.TimestampLayout),
		Category:         category,
		Sentiment:        g.sentiment,
		KeywordMentioned: keyword,
		MessageLength:    len(text),
	}
}

func reaction(sentiment float64) string {
	switch {
	case sentiment > 0.3:
		return "amazing"
	case sentiment < -0.3:
		return "terrible"
	default:
		return "okay"
	}
}
