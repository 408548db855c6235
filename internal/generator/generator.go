package generator

import (
	"context"
	"errors"
)

// FallbackDescription is written in place of a description the model failed to produce
const FallbackDescription = "Error generating PR description."

var (
	// ErrNoChoices is returned when the completion response carries no choices.
	ErrNoChoices = errors.New("no response from AI")
	// ErrEmptyContent is returned when the first choice has no text.
	ErrEmptyContent = errors.New("empty description from AI")
)

// Generator produces a Markdown pull request description
type Generator interface {
	Generate(ctx context.Context, title, diff string) (string, error)
}
