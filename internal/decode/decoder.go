package decode

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/14dstcyr/buzzline-04-stcyr/internal/model"
)

// Kind classifies why a payload could not be decoded.
type Kind string

const (
	// KindMalformedSyntax means the payload is not valid JSON.
	KindMalformedSyntax Kind = "malformed_syntax"
	// KindWrongShape means the payload parsed but is not a JSON object.
	KindWrongShape Kind = "wrong_shape"
	// KindMissingField means sentiment or timestamp is absent, empty, or of
	// the wrong type.
	KindMissingField Kind = "missing_field"
	// KindBadFormat means the timestamp does not match the wire layout.
	KindBadFormat Kind = "bad_format"
)

// DecodeError reports a rejected payload. The caller decides policy
// (skip vs. abort); the decoder never logs and never panics.
type DecodeError struct {
	Kind  Kind
	Field string
	Err   error
}

func (e *DecodeError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("decode %s: field %q: %v", e.Kind, e.Field, e.Err)
	}
	return fmt.Sprintf("decode %s: %v", e.Kind, e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

func newError(kind Kind, field string, err error) *DecodeError {
	return &DecodeError{Kind: kind, Field: field, Err: err}
}

// Message attempts to decode one raw buzz payload into a BuzzMessage.
// Required fields are sentiment (number) and timestamp (string matching
// model.TimestampLayout); the remaining envelope fields are optional.
func Message(payload []byte) (model.BuzzMessage, error) {
	var parsed any
	if err := json.Unmarshal(payload, &parsed); err != nil {
		return model.BuzzMessage{}, newError(KindMalformedSyntax, "", err)
	}

	fields, ok := parsed.(map[string]any)
	if !ok {
		return model.BuzzMessage{}, newError(KindWrongShape, "",
			fmt.Errorf("expected a JSON object, got %T", parsed))
	}

	sentiment, ok := fields["sentiment"].(float64)
	if !ok {
		return model.BuzzMessage{}, newError(KindMissingField, "sentiment",
			errors.New("absent or not a number"))
	}

	rawTimestamp, ok := fields["timestamp"].(string)
	if !ok || rawTimestamp == "" {
		return model.BuzzMessage{}, newError(KindMissingField, "timestamp",
			errors.New("absent or empty"))
	}

	timestamp, err := time.Parse(model.TimestampLayout, rawTimestamp)
	if err != nil {
		return model.BuzzMessage{}, newError(KindBadFormat, "timestamp", err)
	}

	msg := model.BuzzMessage{
		Sentiment: sentiment,
		Timestamp: timestamp,
	}

	// Optional envelope fields, carried through when present and well-typed.
	if v, ok := fields["message"].(string); ok {
		msg.Message = v
	}
	if v, ok := fields["author"].(string); ok {
		msg.Author = v
	}
	if v, ok := fields["category"].(string); ok {
		msg.Category = v
	}
	if v, ok := fields["keyword_mentioned"].(string); ok {
		msg.KeywordMentioned = v
	}
	if v, ok := fields["message_length"].(float64); ok {
		msg.MessageLength = int(v)
	}

	return msg, nil
}
