package llm

import (
	"context"

	"go.uber.org/zap"
)

// Middleware decorates an LLMClient to inject cross-cutting concerns.
type Middleware func(LLMClient) LLMClient

// Wrap applies middlewares in left-to-right order.
// Example: Wrap(inner, A, B) => A(B(inner))
func Wrap(inner LLMClient, mws ...Middleware) LLMClient {
	out := inner
	for i := len(mws) - 1; i >= 0; i-- {
		out = mws[i](out)
	}
	return out
}

// WithLogging logs request sizes and errors. Pass nil for a no-op logger.
func WithLogging(logger *zap.Logger) Middleware {
	if logger == nil {
		logger = zap.NewNop()
	}
	return func(next LLMClient) LLMClient {
		return &logging{next: next, log: logger}
	}
}

type logging struct {
	next LLMClient
	log  *zap.Logger
}

func (l *logging) Name() string { return l.next.Name() }
func (l *logging) Close() error { return l.next.Close() }

func (l *logging) Generate(ctx context.Context, system, user string) (string, error) {
	l.log.Debug("LLM request",
		zap.String("client", l.next.Name()),
		zap.Int("bytes", len(system)+len(user)),
	)
	text, err := l.next.Generate(ctx, system, user)
	if err != nil {
		l.log.Warn("LLM error", zap.String("client", l.next.Name()), zap.Error(err))
	}
	return text, err
}
