package main

import (
	"fmt"

	"github.com/fwojciec/llmsdoc"
	"github.com/fwojciec/llmsdoc/docs"
)

// Run executes the ask command.
func (c *AskCmd) Run(deps *Dependencies) error {
	answer, err := docs.Ask(deps.Ctx, deps.Docs, deps.Asker, c.Question, !c.NoContext)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", llmsdoc.ErrorMessage(err))
		if llmsdoc.ErrorCode(err) == llmsdoc.EUNAUTHORIZED {
			fmt.Fprintln(deps.Stderr, "Hint: Set AI_API_KEY, or AI_PROVIDER=gemini with GEMINI_API_KEY")
		}
		return err
	}

	fmt.Fprintln(deps.Stdout, answer)
	return nil
}
