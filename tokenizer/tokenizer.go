// Package tokenizer counts model tokens for budgeting decisions. One
// Counter instance, pinned to one encoding, serves a whole request so every
// budget comparison uses the same scheme. Counts are advisory: tokenizers
// drift slightly across model versions and the pipeline treats the numbers
// as budgeting signals, not hard guarantees.
package tokenizer

import (
	"fmt"
	"unicode/utf8"

	tiktoken "github.com/pkoukk/tiktoken-go"
)

// Counter counts how many model tokens a string of text consumes.
type Counter interface {
	Count(text string) int
}

// TiktokenCounter implements Counter using a tiktoken BPE encoding.
type TiktokenCounter struct {
	encoding *tiktoken.Tiktoken
}

// NewTiktokenCounter creates a counter for the given encoding name
// (e.g. "cl100k_base", "o200k_base").
func NewTiktokenCounter(encodingName string) (*TiktokenCounter, error) {
	enc, err := tiktoken.GetEncoding(encodingName)
	if err != nil {
		return nil, fmt.Errorf("load tiktoken encoding %q: %w", encodingName, err)
	}
	return &TiktokenCounter{encoding: enc}, nil
}

// NewCounterForModel creates a counter using the encoding tiktoken maps to
// the given model name (e.g. "gpt-4" -> cl100k_base).
func NewCounterForModel(model string) (*TiktokenCounter, error) {
	enc, err := tiktoken.EncodingForModel(model)
	if err != nil {
		return nil, fmt.Errorf("load tiktoken encoding for model %q: %w", model, err)
	}
	return &TiktokenCounter{encoding: enc}, nil
}

// Count returns the number of tokens in text.
func (c *TiktokenCounter) Count(text string) int {
	if text == "" {
		return 0
	}
	return len(c.encoding.Encode(text, nil, nil))
}

// Estimator is a heuristic Counter used when no BPE data is available:
// roughly four characters per token for Latin-script text. It deliberately
// over-counts short strings so budget checks stay conservative.
type Estimator struct{}

// Count estimates the token count of text.
func (Estimator) Count(text string) int {
	if text == "" {
		return 0
	}
	n := utf8.RuneCountInString(text) / 4
	if n == 0 {
		n = 1
	}
	return n
}

// NewCounter returns a tiktoken-backed counter for model, falling back to
// the heuristic Estimator when the encoding cannot be loaded (for example,
// offline with a cold BPE cache). The second return reports whether the
// exact tokenizer is in use.
func NewCounter(model string) (Counter, bool) {
	if c, err := NewCounterForModel(model); err == nil {
		return c, true
	}
	return Estimator{}, false
}
