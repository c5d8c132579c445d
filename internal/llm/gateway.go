// Package llm wraps the external text-completion capability behind a
// small gateway interface. The rest of the system treats the model as a
// black box: a prompt goes in, text comes out.
package llm

import (
	"context"
	"fmt"
)

// Gateway is the text-completion capability consumed by the pipeline
// stages. CompleteStream invokes fn with the cumulative response text
// each time a new delta arrives and returns the full text at the end.
type Gateway interface {
	Complete(ctx context.Context, prompt string) (string, error)
	CompleteStream(ctx context.Context, prompt string, fn func(cumulative string) error) (string, error)
}

// GatewayError signals an upstream model failure (timeout, rate limit,
// malformed credentials). Stages absorb it into pipeline state.
type GatewayError struct {
	error
}

func NewGatewayError(op string, err error) *GatewayError {
	return &GatewayError{fmt.Errorf("completion gateway %s: %w", op, err)}
}

func (e *GatewayError) Unwrap() error { return e.error }

// ExtractionError signals that a model response could not be interpreted
// as the expected structured shape.
type ExtractionError struct {
	error
}

func NewExtractionError(what string, err error) *ExtractionError {
	return &ExtractionError{fmt.Errorf("failed to parse %s from model response: %w", what, err)}
}

func (e *ExtractionError) Unwrap() error { return e.error }
