package recommend

import (
	"context"
	"time"

	"go.uber.org/zap"

	"agrirec/internal/llm"
)

const (
	maxAttempts = 3
	backoffStep = 500 * time.Millisecond
)

// invokeWithRetry drives one reasoning-service call under the shared retry
// policy: up to maxAttempts attempts, sleeping backoffStep*attempt after
// each failed attempt except the last (0.5s, 1.0s). Only the transport
// failure class is retried; the text returned by a successful call is
// handed back as-is, so a later parse failure never re-enters this loop.
// The caller applies its stage-specific fail-safe when an error comes back.
func invokeWithRetry(ctx context.Context, client llm.LLMClient, system, user string, sleep func(time.Duration), log *zap.Logger) (string, error) {
	if sleep == nil {
		sleep = time.Sleep
	}
	var last error
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		text, err := client.Generate(ctx, system, user)
		if err == nil {
			return text, nil
		}
		last = err
		log.Warn("reasoning service call failed",
			zap.Int("attempt", attempt),
			zap.Int("max_attempts", maxAttempts),
			zap.Error(err),
		)
		if attempt == maxAttempts {
			break
		}
		select {
		case <-ctx.Done():
			return "", ctx.Err()
		default:
		}
		sleep(backoffStep * time.Duration(attempt))
	}
	return "", last
}
