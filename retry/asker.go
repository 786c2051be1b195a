// Package retry retries failed completion requests with fixed backoff.
package retry

import (
	"context"
	"time"

	"github.com/fwojciec/llmsdoc"
)

// DefaultDelays returns the backoff delays between attempts: 1s, 2s.
// Three attempts are made in total.
func DefaultDelays() []time.Duration {
	return []time.Duration{1 * time.Second, 2 * time.Second}
}

// Ensure Asker implements llmsdoc.Asker at compile time.
var _ llmsdoc.Asker = (*Asker)(nil)

// Asker retries the wrapped Asker. Errors the caller cannot fix by
// waiting (EUNAUTHORIZED, EINVALID) are returned immediately.
type Asker struct {
	Asker  llmsdoc.Asker
	Delays []time.Duration

	// OnRetry, if set, is called before each wait with the attempt that
	// just failed (starting at 1).
	OnRetry func(attempt int, err error)
}

// NewAsker wraps asker with DefaultDelays.
func NewAsker(asker llmsdoc.Asker) *Asker {
	return &Asker{Asker: asker, Delays: DefaultDelays()}
}

func (a *Asker) Ask(ctx context.Context, question, docContext string) (string, error) {
	maxAttempts := len(a.Delays) + 1

	var lastErr error
	for attempt := 0; attempt < maxAttempts; attempt++ {
		answer, err := a.Asker.Ask(ctx, question, docContext)
		if err == nil {
			return answer, nil
		}
		lastErr = err

		if !retryable(err) || attempt >= maxAttempts-1 {
			break
		}

		select {
		case <-ctx.Done():
			return "", ctx.Err()
		default:
		}

		if a.OnRetry != nil {
			a.OnRetry(attempt+1, err)
		}

		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case <-time.After(a.Delays[attempt]):
		}
	}

	return "", lastErr
}

func retryable(err error) bool {
	switch llmsdoc.ErrorCode(err) {
	case llmsdoc.EUNAUTHORIZED, llmsdoc.EINVALID:
		return false
	}
	return true
}
