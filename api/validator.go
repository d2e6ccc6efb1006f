package api

import (
	"errors"
	"strconv"
	"strings"
	"sync"
)

// MaxWindowLimit bounds the limit query parameter. The rolling window never
// holds more points than this anyway.
const MaxWindowLimit = 1000

// Validator handles validation logic separate from HTTP concerns
type Validator struct {
	maxLimit int64
}

var (
	validatorInstance *Validator
	validatorOnce     sync.Once
)

// GetValidator returns the singleton validator instance
func GetValidator() *Validator {
	validatorOnce.Do(func() {
		validatorInstance = &Validator{
			maxLimit: MaxWindowLimit,
		}
	})
	return validatorInstance
}

// ValidateWindowRequest validates and sanitizes the limit for window reads.
// An empty limit means "everything in the window" and maps to 0.
func (v *Validator) ValidateWindowRequest(limitStr string) (int64, error) {
	limitStr = v.sanitizeInput(limitStr)
	if limitStr == "" {
		return 0, nil
	}

	limit, err := strconv.ParseInt(limitStr, 10, 64)
	if err != nil {
		return 0, errors.New("limit must be a valid number")
	}

	if limit < 0 || limit > v.maxLimit {
		return 0, errors.New("limit must be between 0 and 1000 (0 means no limit)")
	}

	return limit, nil
}

// sanitizeInput removes control characters and trims whitespace
func (v *Validator) sanitizeInput(input string) string {
	input = strings.TrimSpace(input)

	input = strings.Map(func(r rune) rune {
		if r < 32 {
			return -1
		}
		return r
	}, input)

	// Limit length to prevent abuse
	if len(input) > 100 {
		input = input[:100]
	}

	return input
}
