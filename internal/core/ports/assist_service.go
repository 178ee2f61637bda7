package ports

import "context"

// LanguageModel is the external text-generation provider.
type LanguageModel interface {
	Name() string
	Generate(ctx context.Context, prompt string) (string, error)
	Ping(ctx context.Context) error
}

// AssistResult mirrors the response shape the editor sidebar expects.
type AssistResult struct {
	Success      bool   `json:"success"`
	Result       string `json:"result"`
	ProviderUsed string `json:"provider_used"`
}

// AssistService exposes the AI helper operations.
type AssistService interface {
	Autocomplete(ctx context.Context, text string) (*AssistResult, error)
	Grammar(ctx context.Context, text string) (*AssistResult, error)
	Translate(ctx context.Context, text, targetLanguage string) (*AssistResult, error)
	Health(ctx context.Context) (string, error)
}
