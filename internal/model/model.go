package model

import "time"

// TimestampLayout is the exact wire format of the buzz message timestamp
// (24-hour, zero-padded).
const TimestampLayout = "2006-01-02 15:04:05"

// Envelope is one unit pulled from the message source: the raw payload plus
// its sequence offset in the topic.
type Envelope struct {
	Value  []byte
	Offset int64
}

// BuzzMessage is a single decoded buzz payload. Sentiment and Timestamp are
// required on the wire; the remaining fields are part of the documented
// envelope shape and carried through when present.
type BuzzMessage struct {
	Sentiment        float64
	Timestamp        time.Time
	Message          string
	Author           string
	Category         string
	KeywordMentioned string
	MessageLength    int
}

// SentimentPoint pairs one sentiment reading with its timestamp.
type SentimentPoint struct {
	Timestamp time.Time `json:"timestamp"`
	Sentiment float64   `json:"sentiment"`
}

// WindowSnapshot is a copied, index-aligned view of the rolling window:
// Timestamps[i] pairs with Sentiments[i], both in arrival order.
type WindowSnapshot struct {
	Timestamps []time.Time `json:"timestamps"`
	Sentiments []float64   `json:"sentiments"`
}

// Len returns the number of points in the snapshot.
func (s WindowSnapshot) Len() int {
	return len(s.Sentiments)
}
