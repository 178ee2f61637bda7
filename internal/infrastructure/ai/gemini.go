// Package ai adapts the Gemini API to ports.LanguageModel.
package ai

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"google.golang.org/genai"
)

const DefaultModel = "gemini-2.5-flash"

var errEmptyResponse = errors.New("empty response from gemini")

// GeminiClient sends single-turn prompts to a Gemini model.
type GeminiClient struct {
	model    string
	generate func(ctx context.Context, model, prompt string) (*genai.GenerateContentResponse, error)
	lookup   func(ctx context.Context, model string) error
}

func NewGeminiClient(ctx context.Context, apiKey, model string) (*GeminiClient, error) {
	if apiKey == "" {
		return nil, errors.New("gemini api key is empty")
	}
	if model == "" {
		model = DefaultModel
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	return &GeminiClient{
		model: model,
		generate: func(ctx context.Context, model, prompt string) (*genai.GenerateContentResponse, error) {
			return client.Models.GenerateContent(ctx, model, genai.Text(prompt), nil)
		},
		lookup: func(ctx context.Context, model string) error {
			_, err := client.Models.Get(ctx, model, nil)
			return err
		},
	}, nil
}

func (c *GeminiClient) Name() string { return "gemini:" + c.model }

func (c *GeminiClient) Generate(ctx context.Context, prompt string) (string, error) {
	resp, err := c.generate(ctx, c.model, prompt)
	if err != nil {
		return "", fmt.Errorf("failed to generate content: %w", err)
	}
	return responseText(resp)
}

// Ping checks that the configured model is reachable with the API key.
func (c *GeminiClient) Ping(ctx context.Context) error {
	if err := c.lookup(ctx, c.model); err != nil {
		return fmt.Errorf("gemini model %s: %w", c.model, err)
	}
	return nil
}

func responseText(resp *genai.GenerateContentResponse) (string, error) {
	if resp == nil || len(resp.Candidates) == 0 {
		return "", errEmptyResponse
	}
	text := resp.Text()
	if strings.TrimSpace(text) == "" {
		return "", errEmptyResponse
	}
	return text, nil
}
