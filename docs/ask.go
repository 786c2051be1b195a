package docs

import (
	"context"
	"strings"

	"github.com/fwojciec/llmsdoc"
)

// Ask answers question with asker. With includeContext the relevant
// sections of the corpus are passed along; a corpus that cannot be loaded
// fails the call.
func Ask(ctx context.Context, svc llmsdoc.DocumentationService, asker llmsdoc.Asker, question string, includeContext bool) (string, error) {
	question = strings.TrimSpace(question)
	if question == "" {
		return "", llmsdoc.Errorf(llmsdoc.EINVALID, "question required")
	}

	var docContext string
	if includeContext {
		var err error
		docContext, err = svc.RelevantContext(ctx, question, llmsdoc.DefaultContextSections)
		if err != nil {
			return "", err
		}
	}

	return asker.Ask(ctx, question, docContext)
}
