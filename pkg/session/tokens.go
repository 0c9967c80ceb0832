package session

import (
	"github.com/pkoukk/tiktoken-go"
)

// TokenCounter reports assembled prompt sizes for status display.
// Counting is informational only; it never gates a submission.
type TokenCounter struct {
	enc *tiktoken.Tiktoken
}

// NewTokenCounter creates a counter using the cl100k_base encoding.
func NewTokenCounter() (*TokenCounter, error) {
	enc, err := tiktoken.GetEncoding("cl100k_base")
	if err != nil {
		return nil, err
	}
	return &TokenCounter{enc: enc}, nil
}

// Count returns the token count of text, or 0 if counting is unavailable.
func (c *TokenCounter) Count(text string) int {
	if c == nil || c.enc == nil {
		return 0
	}
	return len(c.enc.Encode(text, nil, nil))
}
