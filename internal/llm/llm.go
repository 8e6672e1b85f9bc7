package llm

import (
	"context"
	"errors"
)

// LLMClient is the reasoning-service boundary. One blocking call: a system
// instruction plus a user prompt in, the model's raw text out. Cross-cutting
// concerns (logging, etc.) are applied via Middleware.
type LLMClient interface {
	Name() string
	Generate(ctx context.Context, system, user string) (string, error)
	Close() error
}

var ErrEmptyResponse = errors.New("empty response from LLM")

// ServiceError marks a transport, timeout, or provider-side failure.
// Callers retry these; anything else is terminal for the call.
type ServiceError struct {
	Err error
}

func (e *ServiceError) Error() string { return e.Err.Error() }
func (e *ServiceError) Unwrap() error { return e.Err }

func NewServiceError(err error) error {
	return &ServiceError{Err: err}
}

func IsServiceError(err error) bool {
	var se *ServiceError
	return errors.As(err, &se)
}
