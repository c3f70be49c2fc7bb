package summarizer

import (
	"context"

	"clip-summarize/internal/utils/text"
)

// noopMaxRunes is the length of the excerpt returned by NoOp.
const noopMaxRunes = 500

// NoOp is a summarizer that returns an excerpt of the original text without
// calling any API. It is used for offline runs and development.
type NoOp struct{}

// NewNoOp creates a new NoOp summarizer.
func NewNoOp() *NoOp {
	return &NoOp{}
}

// Summarize returns the first 500 characters of input, followed by an
// ellipsis when anything was cut.
func (n *NoOp) Summarize(ctx context.Context, input string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if text.IsBlank(input) {
		return "", ErrEmptyResponse
	}
	return text.Truncate(input, noopMaxRunes, "..."), nil
}
