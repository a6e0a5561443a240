package llm

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/liushuangls/go-anthropic/v2"
)

// AnthropicClient implementa LLMClient contra la Messages API.
type AnthropicClient struct {
	client *anthropic.Client
	model  string
	gen    GenerationConfig
}

// NewAnthropicClient construye el cliente; baseURL vacio usa el endpoint publico.
func NewAnthropicClient(baseURL, apiKey, model string, timeout time.Duration, gen GenerationConfig) *AnthropicClient {
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	opts := []anthropic.ClientOption{
		anthropic.WithHTTPClient(&http.Client{Timeout: timeout}),
	}
	if strings.TrimSpace(baseURL) != "" {
		opts = append(opts, anthropic.WithBaseURL(baseURL))
	}
	return &AnthropicClient{
		client: anthropic.NewClient(apiKey, opts...),
		model:  model,
		gen:    gen,
	}
}

func (a *AnthropicClient) Generate(ctx context.Context, prompt string) (string, error) {
	temperature := a.gen.Temperature
	topP := a.gen.TopP
	topK := a.gen.TopK

	resp, err := a.client.CreateMessages(ctx, anthropic.MessagesRequest{
		Model:     anthropic.Model(a.model),
		MaxTokens: a.gen.MaxOutputTokens,
		Messages: []anthropic.Message{
			{Role: anthropic.RoleUser, Content: []anthropic.MessageContent{
				{Type: anthropic.MessagesContentTypeText, Text: &prompt},
			}},
		},
		Temperature: &temperature,
		TopP:        &topP,
		TopK:        &topK,
	})
	if err != nil {
		return "", &ProviderError{Provider: "anthropic", StatusCode: anthropicStatus(err), Err: err}
	}

	var sb strings.Builder
	for _, block := range resp.Content {
		if block.Type == anthropic.MessagesContentTypeText && block.Text != nil {
			sb.WriteString(*block.Text)
		}
	}
	if strings.TrimSpace(sb.String()) == "" {
		return "", ErrEmptyResponse
	}
	return sb.String(), nil
}

func anthropicStatus(err error) int {
	var reqErr *anthropic.RequestError
	if errors.As(err, &reqErr) {
		return reqErr.StatusCode
	}
	return 0
}
