package llmsdoc

import (
	"context"
	"strings"
)

// SystemPrompt instructs the completion model how to answer.
const SystemPrompt = `You are an expert assistant for this product's documentation.
You help developers understand and use the product effectively.
Your responses should be accurate, helpful, and based on the provided documentation context when available.
If you're unsure about something, acknowledge it and suggest where to find more information.`

// Asker answers natural language questions with a language model.
type Asker interface {
	// Ask answers question, grounding the answer in docContext when it is
	// not empty. Returns EUNAUTHORIZED when the endpoint rejects the
	// credentials.
	Ask(ctx context.Context, question, docContext string) (string, error)
}

// UserPrompt builds the user message sent to the completion model.
func UserPrompt(question, docContext string) string {
	if strings.TrimSpace(docContext) == "" {
		return question
	}
	return "Based on the following documentation context:\n\n" + docContext + "\n\nQuestion: " + question
}
