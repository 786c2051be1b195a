// Package gemini provides an llmsdoc.Asker backed by Google Gemini.
package gemini

import (
	"context"
	"strings"

	"github.com/fwojciec/llmsdoc"
	"google.golang.org/genai"
)

// DefaultModel is used when no model is configured.
const DefaultModel = "gemini-2.5-flash"

// Ensure Asker implements llmsdoc.Asker at compile time.
var _ llmsdoc.Asker = (*Asker)(nil)

// Asker implements llmsdoc.Asker using Google Gemini.
type Asker struct {
	client *genai.Client
	model  string
}

// NewAsker creates a new Asker. An empty model selects DefaultModel.
func NewAsker(client *genai.Client, model string) *Asker {
	if model == "" {
		model = DefaultModel
	}
	return &Asker{client: client, model: model}
}

// Ask answers question, grounding the answer in docContext when present.
func (a *Asker) Ask(ctx context.Context, question, docContext string) (string, error) {
	if strings.TrimSpace(question) == "" {
		return "", llmsdoc.Errorf(llmsdoc.EINVALID, "question required")
	}
	if a.client == nil {
		return "", llmsdoc.Errorf(llmsdoc.EUNAUTHORIZED, "GEMINI_API_KEY not configured")
	}

	result, err := a.client.Models.GenerateContent(ctx, a.model,
		[]*genai.Content{{
			Role:  "user",
			Parts: []*genai.Part{{Text: llmsdoc.UserPrompt(question, docContext)}},
		}},
		BuildConfig(),
	)
	if err != nil {
		return "", llmsdoc.Wrapf(llmsdoc.EUPSTREAM, err, "gemini request failed")
	}
	if result == nil {
		return "", llmsdoc.Errorf(llmsdoc.EINTERNAL, "gemini returned nil result")
	}

	answer := result.Text()
	if answer == "" {
		return "", llmsdoc.Errorf(llmsdoc.EUPSTREAM, "gemini returned an empty answer")
	}
	return answer, nil
}

// BuildConfig returns the GenerateContentConfig for Gemini API calls.
func BuildConfig() *genai.GenerateContentConfig {
	temp := float32(0.7)
	topP := float32(0.9)
	return &genai.GenerateContentConfig{
		SystemInstruction: &genai.Content{
			Parts: []*genai.Part{{Text: llmsdoc.SystemPrompt}},
		},
		Temperature:     &temp,
		TopP:            &topP,
		MaxOutputTokens: 1000,
	}
}
