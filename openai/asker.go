// Package openai provides an llmsdoc.Asker for any OpenAI compatible
// chat-completions endpoint.
package openai

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/fwojciec/llmsdoc"
	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
)

// DefaultModel is used when no model is configured.
const DefaultModel = "gpt-4o"

// Sampling parameters sent with every completion request.
const (
	Temperature = 0.7
	MaxTokens   = 1000
	TopP        = 0.9
)

// Ensure Asker implements llmsdoc.Asker at compile time.
var _ llmsdoc.Asker = (*Asker)(nil)

// Asker implements llmsdoc.Asker with a single chat completion per call.
// It does not retry; wrap it with retry.Asker for that.
type Asker struct {
	client openai.Client
	model  string
	apiKey string
}

// NewAsker creates an Asker. endpoint may be a base URL or a full
// chat-completions URL; empty selects the OpenAI API. An empty model
// selects DefaultModel. A missing apiKey is reported by Ask.
func NewAsker(apiKey, endpoint, model string, opts ...option.RequestOption) *Asker {
	if model == "" {
		model = DefaultModel
	}

	reqOpts := []option.RequestOption{
		option.WithAPIKey(apiKey),
		option.WithMaxRetries(0),
	}
	if base := BaseURL(endpoint); base != "" {
		reqOpts = append(reqOpts, option.WithBaseURL(base))
	}
	reqOpts = append(reqOpts, opts...)

	return &Asker{
		client: openai.NewClient(reqOpts...),
		model:  model,
		apiKey: apiKey,
	}
}

// BaseURL derives the client base URL from a configured endpoint, which
// is commonly given as the full chat-completions URL.
func BaseURL(endpoint string) string {
	endpoint = strings.TrimSpace(endpoint)
	if endpoint == "" {
		return ""
	}
	endpoint = strings.TrimSuffix(endpoint, "/")
	endpoint = strings.TrimSuffix(endpoint, "/chat/completions")
	return endpoint + "/"
}

// Ask sends the system prompt and the user prompt built from question and
// docContext, and returns the first choice. Rejected credentials are
// EUNAUTHORIZED; other failures are EUPSTREAM.
func (a *Asker) Ask(ctx context.Context, question, docContext string) (string, error) {
	if strings.TrimSpace(question) == "" {
		return "", llmsdoc.Errorf(llmsdoc.EINVALID, "question required")
	}
	if a.apiKey == "" {
		return "", llmsdoc.Errorf(llmsdoc.EUNAUTHORIZED, "AI_API_KEY not configured")
	}

	completion, err := a.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: openai.ChatModel(a.model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(llmsdoc.SystemPrompt),
			openai.UserMessage(llmsdoc.UserPrompt(question, docContext)),
		},
		Temperature: openai.Float(Temperature),
		MaxTokens:   openai.Int(MaxTokens),
		TopP:        openai.Float(TopP),
	})
	if err != nil {
		var apiErr *openai.Error
		if errors.As(err, &apiErr) {
			switch apiErr.StatusCode {
			case http.StatusUnauthorized, http.StatusForbidden:
				return "", llmsdoc.Wrapf(llmsdoc.EUNAUTHORIZED, err, "completion endpoint rejected credentials: HTTP %d", apiErr.StatusCode)
			}
			return "", llmsdoc.Wrapf(llmsdoc.EUPSTREAM, err, "completion request failed: HTTP %d", apiErr.StatusCode)
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			return "", ctxErr
		}
		return "", llmsdoc.Wrapf(llmsdoc.EUPSTREAM, err, "completion request failed")
	}

	if len(completion.Choices) == 0 {
		return "", llmsdoc.Errorf(llmsdoc.EUPSTREAM, "completion returned no choices")
	}
	return completion.Choices[0].Message.Content, nil
}
