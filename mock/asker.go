package mock

import (
	"context"

	"github.com/fwojciec/llmsdoc"
)

var _ llmsdoc.Asker = (*Asker)(nil)

// Asker is a mock implementation of llmsdoc.Asker.
type Asker struct {
	AskFn func(ctx context.Context, question, docContext string) (string, error)
}

func (a *Asker) Ask(ctx context.Context, question, docContext string) (string, error) {
	return a.AskFn(ctx, question, docContext)
}
