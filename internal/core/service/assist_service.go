package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/mdnotes/notes-api/internal/core/domain"
	"github.com/mdnotes/notes-api/internal/core/ports"
)

const (
	defaultAssistTimeout  = 30 * time.Second
	defaultTargetLanguage = "Ukrainian"
)

const autocompletePrompt = `You are a Markdown writing assistant. Continue the given Markdown text naturally and coherently.

Rules:
- Maintain Markdown formatting (headers, lists, links, etc.)
- Continue in the same style and tone
- Don't explain what you're doing
- Return only the continuation

Text:
%s`

const grammarPrompt = `You are a Markdown grammar expert. Fix grammar and spelling errors while preserving Markdown formatting.

Rules:
- Keep ALL Markdown syntax intact (**, *, #, [], (), etc.)
- Fix only grammar, spelling, and punctuation errors
- Don't change the meaning or structure
- Return only the corrected text

Text:
%s`

const translatePrompt = `You are a professional Markdown translator. Translate text while preserving ALL Markdown formatting.

Rules:
- Translate ONLY the text content, not Markdown syntax
- Keep headers (# ## ###), links [text](url), lists (- * 1.), code (` + "`code`" + `), etc.
- Preserve URLs, code snippets, and technical terms
- Return only the translation

Target language: %s

Text:
%s`

// AssistService forwards editor text to a language model. A nil model
// disables every operation with domain.ErrAIDisabled.
type AssistService struct {
	model   ports.LanguageModel
	timeout time.Duration
	log     zerolog.Logger
}

func NewAssistService(model ports.LanguageModel, log zerolog.Logger) *AssistService {
	return &AssistService{model: model, timeout: defaultAssistTimeout, log: log}
}

func (s *AssistService) Autocomplete(ctx context.Context, text string) (*ports.AssistResult, error) {
	return s.run(ctx, "autocomplete", text, fmt.Sprintf(autocompletePrompt, text))
}

func (s *AssistService) Grammar(ctx context.Context, text string) (*ports.AssistResult, error) {
	return s.run(ctx, "grammar", text, fmt.Sprintf(grammarPrompt, text))
}

func (s *AssistService) Translate(ctx context.Context, text, targetLanguage string) (*ports.AssistResult, error) {
	if strings.TrimSpace(targetLanguage) == "" {
		targetLanguage = defaultTargetLanguage
	}
	return s.run(ctx, "translate", text, fmt.Sprintf(translatePrompt, targetLanguage, text))
}

// Health pings the provider and returns its name.
func (s *AssistService) Health(ctx context.Context) (string, error) {
	if s.model == nil {
		return "", domain.ErrAIDisabled
	}
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	if err := s.model.Ping(ctx); err != nil {
		return s.model.Name(), domain.Upstream("ai provider unavailable", err)
	}
	return s.model.Name(), nil
}

func (s *AssistService) run(ctx context.Context, task, text, prompt string) (*ports.AssistResult, error) {
	if s.model == nil {
		return nil, domain.ErrAIDisabled
	}
	if strings.TrimSpace(text) == "" {
		return nil, domain.InvalidInput("text cannot be empty")
	}

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	out, err := s.model.Generate(ctx, prompt)
	if err != nil {
		s.log.Error().Err(err).Str("task", task).Str("provider", s.model.Name()).Msg("ai request failed")
		return nil, domain.Upstream(task+" failed", err)
	}

	return &ports.AssistResult{
		Success:      true,
		Result:       strings.TrimSpace(out),
		ProviderUsed: s.model.Name(),
	}, nil
}
