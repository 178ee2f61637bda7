package api

import (
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	_ "github.com/mdnotes/notes-api/docs"
	"github.com/mdnotes/notes-api/internal/api/handler"
	"github.com/mdnotes/notes-api/internal/api/middleware"
	"github.com/mdnotes/notes-api/internal/core/ports"
	"github.com/mdnotes/notes-api/internal/infrastructure/http/handlers"
)

const (
	defaultBodyLimit = "256K"
	banner           = "Markdown Editor API is running!"
)

// Deps carries everything the router wires into handlers.
type Deps struct {
	Log    zerolog.Logger
	Auth   ports.AuthService
	Tokens ports.TokenVerifier
	Notes  ports.NoteService
	Assist ports.AssistService

	// Readiness checks, keyed by dependency name.
	Checks map[string]handlers.Check

	CORSOrigins       []string
	ExposeErrorDetail bool
	BodyLimit         string

	// Registry receives the HTTP metrics. A fresh registry is used when nil.
	Registry *prometheus.Registry
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(d Deps) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(d.Log, d.ExposeErrorDetail)

	reg := d.Registry
	if reg == nil {
		reg = prometheus.NewRegistry()
	}
	bodyLimit := d.BodyLimit
	if bodyLimit == "" {
		bodyLimit = defaultBodyLimit
	}

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(requestLogger(d.Log))
	e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
		AllowOrigins:     d.CORSOrigins,
		AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowHeaders:     []string{echo.HeaderContentType, echo.HeaderAuthorization},
		AllowCredentials: true,
	}))
	e.Use(echomiddleware.BodyLimit(bodyLimit))
	e.Use(echoprometheus.NewMiddlewareWithConfig(echoprometheus.MiddlewareConfig{
		Namespace:  "notes",
		Subsystem:  "http",
		Registerer: reg,
		Skipper:    skipOperational,
	}))

	// --- Handlers ---
	authHandler := handler.NewAuthHandler(d.Auth)
	noteHandler := handler.NewNoteHandler(d.Notes)
	assistHandler := handler.NewAssistHandler(d.Assist)
	requireAuth := middleware.Auth(d.Tokens)

	e.GET("/", func(c echo.Context) error {
		return c.String(http.StatusOK, banner)
	})

	// --- Auth routes ---
	auth := e.Group("/auth")
	auth.POST("/register", authHandler.Register)
	auth.POST("/login", authHandler.Login)

	// --- Note routes (bearer token required) ---
	notes := e.Group("/notes", requireAuth)
	notes.POST("", noteHandler.Create)
	notes.GET("", noteHandler.List)
	notes.GET("/:id", noteHandler.Get)
	notes.PUT("/:id", noteHandler.Update)
	notes.DELETE("/:id", noteHandler.Delete)
	notes.GET("/:id/html", noteHandler.HTML)

	// --- AI assist routes (bearer token required) ---
	ai := e.Group("/ai", requireAuth)
	ai.GET("/health", assistHandler.Health)
	ai.POST("/autocomplete", assistHandler.Autocomplete)
	ai.POST("/grammar", assistHandler.Grammar)
	ai.POST("/translate", assistHandler.Translate)

	// --- Health probes, metrics and docs (no auth required) ---
	healthHandler := handlers.NewHealthHandler()
	healthDepsHandler := handlers.NewHealthDependenciesHandler(d.Checks)

	e.GET("/health", healthHandler.Liveness)           // liveness  – is the process alive?
	e.GET("/health/ready", healthDepsHandler.Readiness) // readiness – are dependencies up?
	e.GET("/metrics", echoprometheus.NewHandlerWithConfig(echoprometheus.HandlerConfig{
		Gatherer: prometheus.Gatherers{reg, prometheus.DefaultGatherer},
	}))
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	return e
}

func skipOperational(c echo.Context) bool {
	p := c.Path()
	return p == "/metrics" || strings.HasPrefix(p, "/health") || strings.HasPrefix(p, "/swagger")
}

func requestLogger(log zerolog.Logger) echo.MiddlewareFunc {
	return echomiddleware.RequestLoggerWithConfig(echomiddleware.RequestLoggerConfig{
		LogMethod:    true,
		LogURI:       true,
		LogStatus:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogError:     true,
		HandleError:  true,
		Skipper:      skipOperational,
		LogValuesFunc: func(c echo.Context, v echomiddleware.RequestLoggerValues) error {
			ev := log.Info()
			if v.Error != nil {
				ev = log.Warn().Err(v.Error)
			}
			ev.Str("method", v.Method).
				Str("uri", v.URI).
				Int("status", v.Status).
				Dur("latency", v.Latency).
				Str("request_id", v.RequestID).
				Msg("request")
			return nil
		},
	})
}

// NewServer wraps the router in an http.Server with read, write and idle
// timeouts set.
func NewServer(addr string, e *echo.Echo) *http.Server {
	return &http.Server{
		Addr:              addr,
		Handler:           e,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       120 * time.Second,
	}
}
