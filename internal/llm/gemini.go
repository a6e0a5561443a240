package llm

import (
	"context"
	"errors"
	"strings"
	"time"

	"google.golang.org/genai"
)

// GeminiClient implementa LLMClient usando el SDK oficial de Gemini.
type GeminiClient struct {
	client *genai.Client
	model  string
	gen    GenerationConfig
}

// NewGeminiClient crea el cliente contra la Gemini API (no Vertex). timeout acota cada request; 0 = sin limite.
func NewGeminiClient(ctx context.Context, baseURL, apiKey, model string, timeout time.Duration, gen GenerationConfig) (*GeminiClient, error) {
	cc := &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	}
	if strings.TrimSpace(baseURL) != "" {
		cc.HTTPOptions.BaseURL = baseURL
	}
	if timeout > 0 {
		cc.HTTPOptions.Timeout = &timeout
	}
	client, err := genai.NewClient(ctx, cc)
	if err != nil {
		return nil, err
	}
	return &GeminiClient{client: client, model: model, gen: gen}, nil
}

func (g *GeminiClient) Generate(ctx context.Context, prompt string) (string, error) {
	resp, err := g.client.Models.GenerateContent(ctx, g.model, genai.Text(prompt), &genai.GenerateContentConfig{
		Temperature:     genai.Ptr(g.gen.Temperature),
		TopK:            genai.Ptr(float32(g.gen.TopK)),
		TopP:            genai.Ptr(g.gen.TopP),
		MaxOutputTokens: int32(g.gen.MaxOutputTokens),
	})
	if err != nil {
		return "", &ProviderError{Provider: "gemini", StatusCode: geminiStatus(err), Err: err}
	}
	text := candidateText(resp)
	if strings.TrimSpace(text) == "" {
		return "", ErrEmptyResponse
	}
	return text, nil
}

// candidateText concatena las partes de texto del primer candidato.
func candidateText(resp *genai.GenerateContentResponse) string {
	if resp == nil || len(resp.Candidates) == 0 {
		return ""
	}
	cand := resp.Candidates[0]
	if cand == nil || cand.Content == nil {
		return ""
	}
	var sb strings.Builder
	for _, part := range cand.Content.Parts {
		if part == nil || part.Thought {
			continue
		}
		sb.WriteString(part.Text)
	}
	return sb.String()
}

func geminiStatus(err error) int {
	var apiErr genai.APIError
	if errors.As(err, &apiErr) {
		return apiErr.Code
	}
	return 0
}
