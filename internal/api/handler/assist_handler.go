package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/mdnotes/notes-api/internal/api/metrics"
	"github.com/mdnotes/notes-api/internal/core/ports"
)

// AssistHandler exposes the AI writing helpers.
type AssistHandler struct {
	assist ports.AssistService
}

func NewAssistHandler(assist ports.AssistService) *AssistHandler {
	return &AssistHandler{assist: assist}
}

type assistRequest struct {
	Text string `json:"text" validate:"required"`
}

// translateRequest accepts the language as target_language, the name the
// editor client sends, or as targetLanguage.
type translateRequest struct {
	Text           string `json:"text" validate:"required"`
	TargetLanguage string `json:"target_language" validate:"max=64"`
	CamelLanguage  string `json:"targetLanguage" validate:"max=64" swaggerignore:"true"`
}

func (r translateRequest) language() string {
	if r.TargetLanguage != "" {
		return r.TargetLanguage
	}
	return r.CamelLanguage
}

type assistHealthResponse struct {
	Status   string `json:"status"`
	Provider string `json:"provider"`
}

// Health reports whether the language model answers.
//
// @Summary      AI provider health
// @Tags         ai
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  assistHealthResponse
// @Failure      502  {object}  map[string]string
// @Failure      503  {object}  map[string]string
// @Router       /ai/health [get]
func (h *AssistHandler) Health(c echo.Context) error {
	start := time.Now()
	provider, err := h.assist.Health(c.Request().Context())
	observe("health", start, err)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, assistHealthResponse{Status: "ok", Provider: provider})
}

// Autocomplete continues the given Markdown text.
//
// @Summary      Autocomplete Markdown
// @Tags         ai
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      assistRequest  true  "Text"
// @Success      200   {object}  ports.AssistResult
// @Failure      400   {object}  map[string]string
// @Failure      502   {object}  map[string]string
// @Failure      503   {object}  map[string]string
// @Router       /ai/autocomplete [post]
func (h *AssistHandler) Autocomplete(c echo.Context) error {
	var req assistRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	start := time.Now()
	res, err := h.assist.Autocomplete(c.Request().Context(), req.Text)
	observe("autocomplete", start, err)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, res)
}

// Grammar fixes grammar and spelling, keeping Markdown intact.
//
// @Summary      Fix grammar
// @Tags         ai
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      assistRequest  true  "Text"
// @Success      200   {object}  ports.AssistResult
// @Failure      400   {object}  map[string]string
// @Failure      502   {object}  map[string]string
// @Failure      503   {object}  map[string]string
// @Router       /ai/grammar [post]
func (h *AssistHandler) Grammar(c echo.Context) error {
	var req assistRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	start := time.Now()
	res, err := h.assist.Grammar(c.Request().Context(), req.Text)
	observe("grammar", start, err)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, res)
}

// Translate translates the text, keeping Markdown intact.
//
// @Summary      Translate Markdown
// @Tags         ai
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      translateRequest  true  "Text and target language"
// @Success      200   {object}  ports.AssistResult
// @Failure      400   {object}  map[string]string
// @Failure      502   {object}  map[string]string
// @Failure      503   {object}  map[string]string
// @Router       /ai/translate [post]
func (h *AssistHandler) Translate(c echo.Context) error {
	var req translateRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	start := time.Now()
	res, err := h.assist.Translate(c.Request().Context(), req.Text, req.language())
	observe("translate", start, err)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, res)
}

func observe(task string, start time.Time, err error) {
	result := "success"
	if err != nil {
		result = "error"
	}
	metrics.AIRequestDuration.WithLabelValues(task, result).Observe(time.Since(start).Seconds())
}
