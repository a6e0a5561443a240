package llm

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	openai "github.com/sashabaranov/go-openai"
)

// ErrEmptyResponse indica que el proveedor respondio sin texto utilizable.
var ErrEmptyResponse = errors.New("llm empty response")

// LLMClient define la interfaz para generar respuestas con un LLM.
type LLMClient interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// GenerationConfig son los parametros de muestreo fijos de cada llamada.
type GenerationConfig struct {
	Temperature     float32
	TopK            int
	TopP            float32
	MaxOutputTokens int
}

// DefaultGenerationConfig devuelve los valores por defecto del servicio.
func DefaultGenerationConfig() GenerationConfig {
	return GenerationConfig{
		Temperature:     0.7,
		TopK:            40,
		TopP:            0.95,
		MaxOutputTokens: 2048,
	}
}

// ProviderError envuelve errores de transporte con el status HTTP cuando se conoce.
type ProviderError struct {
	Provider   string
	StatusCode int
	Err        error
}

func (e *ProviderError) Error() string {
	if e.StatusCode > 0 {
		return fmt.Sprintf("%s: status=%d: %v", e.Provider, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("%s: %v", e.Provider, e.Err)
}

func (e *ProviderError) Unwrap() error { return e.Err }

// OpenAIClient implementa LLMClient contra cualquier API OpenAI-compatible.
type OpenAIClient struct {
	client *openai.Client
	model  string
	gen    GenerationConfig
}

// NewOpenAIClient construye un cliente apuntando a la API de chat completions.
func NewOpenAIClient(baseURL, apiKey, model string, timeout time.Duration, gen GenerationConfig) *OpenAIClient {
	cfg := openai.DefaultConfig(apiKey)
	if strings.TrimSpace(baseURL) != "" {
		cfg.BaseURL = strings.TrimRight(baseURL, "/")
	}
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	cfg.HTTPClient = &http.Client{Timeout: timeout}
	return &OpenAIClient{
		client: openai.NewClientWithConfig(cfg),
		model:  model,
		gen:    gen,
	}
}

// La API de chat completions no expone topK; se ignora.
func (c *OpenAIClient) Generate(ctx context.Context, prompt string) (string, error) {
	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: c.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
		Temperature: c.gen.Temperature,
		TopP:        c.gen.TopP,
		MaxTokens:   c.gen.MaxOutputTokens,
	})
	if err != nil {
		return "", &ProviderError{Provider: "openai", StatusCode: openAIStatus(err), Err: err}
	}
	if len(resp.Choices) == 0 || strings.TrimSpace(resp.Choices[0].Message.Content) == "" {
		return "", ErrEmptyResponse
	}
	return resp.Choices[0].Message.Content, nil
}

func openAIStatus(err error) int {
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		return apiErr.HTTPStatusCode
	}
	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) {
		return reqErr.HTTPStatusCode
	}
	return 0
}
