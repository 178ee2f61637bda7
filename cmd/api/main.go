// @title           Markdown Notes API
// @version         1.0
// @description     Accounts, Markdown notes with HTML rendering, and AI writing assistance.
// @BasePath        /
// @securityDefinitions.apikey BearerAuth
// @in              header
// @name            Authorization
// @description     Type "Bearer" followed by a space and the JWT.
package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/mdnotes/notes-api/internal/api"
	"github.com/mdnotes/notes-api/internal/api/metrics"
	"github.com/mdnotes/notes-api/internal/core/ports"
	"github.com/mdnotes/notes-api/internal/core/service"
	"github.com/mdnotes/notes-api/internal/infrastructure/ai"
	redisstore "github.com/mdnotes/notes-api/internal/infrastructure/db/redis"
	"github.com/mdnotes/notes-api/internal/infrastructure/http/handlers"
	"github.com/mdnotes/notes-api/internal/infrastructure/markdown"
	"github.com/mdnotes/notes-api/internal/infrastructure/queue"
	"github.com/mdnotes/notes-api/internal/pkg/config"
	"github.com/mdnotes/notes-api/pkg/logger"
)

const shutdownTimeout = 10 * time.Second

var version = "dev" // set by ldflags

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg := config.Load()
	log := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  !cfg.Production(),
		Service: "notes-api",
		Version: version,
	})

	st, err := openStore(ctx, cfg)
	if err != nil {
		log.Fatal().Err(err).Str("driver", cfg.Store.Driver).Msg("failed to initialize storage")
	}
	defer st.close()

	checks := map[string]handlers.Check{"store": st.ping}

	tokens := service.NewJWTManager(cfg.JWTSecret, cfg.TokenTTL)
	authSvc := service.NewAuthService(st.users, tokens, cfg.BcryptCost, logger.Component(log, "auth"))

	noteOpts := []service.NoteOption{service.WithMaxContentLength(cfg.MaxContentLength)}
	var warmer *queue.Dispatcher
	if cfg.Redis.Addr != "" {
		rdb, err := redisstore.Connect(ctx, redisstore.Config{
			Addr:    cfg.Redis.Addr,
			DB:      cfg.Redis.DB,
			Timeout: cfg.Store.Timeout,
		})
		if err != nil {
			log.Fatal().Err(err).Msg("failed to connect to redis")
		}
		defer rdb.Close()

		cache := redisstore.NewRenderCache(rdb, cfg.Redis.CacheTTL)
		checks["redis"] = cache.Ping

		warmer = queue.NewDispatcher(0, logger.Component(log, "render-queue"))
		warmer.OnDrop(metrics.RenderQueueDropsTotal.Inc)
		noteOpts = append(noteOpts,
			service.WithRenderCache(metrics.NewCountingRenderCache(cache)),
			service.WithRenderWarmer(warmer),
		)
	}
	noteSvc := service.NewNoteService(st.notes, markdown.NewRenderer(), logger.Component(log, "notes"), noteOpts...)

	workerCtx, stopWorkers := context.WithCancel(context.Background())
	if warmer != nil {
		warmer.Start(workerCtx, noteSvc)
	}

	assistSvc := service.NewAssistService(newLanguageModel(ctx, cfg, log), logger.Component(log, "assist"))

	e := api.NewRouter(api.Deps{
		Log:               log,
		Auth:              authSvc,
		Tokens:            authSvc,
		Notes:             noteSvc,
		Assist:            assistSvc,
		Checks:            checks,
		CORSOrigins:       cfg.CORSOrigins,
		ExposeErrorDetail: !cfg.Production(),
	})
	srv := api.NewServer(":"+cfg.Port, e)

	go func() {
		log.Info().Str("addr", srv.Addr).Str("driver", cfg.Store.Driver).Msg("starting server")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error().Err(err).Msg("server stopped unexpectedly")
			stop()
		}
	}()

	<-ctx.Done()
	log.Info().Msg("received interruption signal, shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("error during server shutdown")
	}

	stopWorkers()
	if warmer != nil {
		warmer.Wait()
	}
	log.Info().Msg("shutdown complete")
}

// newLanguageModel returns nil when no API key is configured, which disables
// the assist endpoints.
func newLanguageModel(ctx context.Context, cfg *config.Config, log zerolog.Logger) ports.LanguageModel {
	if cfg.AI.APIKey == "" {
		log.Warn().Msg("GEMINI_API_KEY not set, ai assist disabled")
		return nil
	}
	client, err := ai.NewGeminiClient(ctx, cfg.AI.APIKey, cfg.AI.Model)
	if err != nil {
		log.Error().Err(err).Msg("ai assist disabled")
		return nil
	}
	return client
}
