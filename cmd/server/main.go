// Command server runs the event feedback backend: the conversation API, the
// event and analytics endpoints, and the Prometheus/OTel surfaces.
//
// The process tolerates a missing database: persistence then runs in-memory
// (non-durable), which keeps local development and demos working without any
// setup. A missing GROQ_API_KEY likewise degrades generation to the static
// response templates.
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/eventpulse/feedback-backend/internal/config"
	"github.com/eventpulse/feedback-backend/internal/genai"
	httpapi "github.com/eventpulse/feedback-backend/internal/http"
	"github.com/eventpulse/feedback-backend/internal/observability"
	"github.com/eventpulse/feedback-backend/internal/repo"
	"github.com/eventpulse/feedback-backend/internal/staticgen"
	"github.com/eventpulse/feedback-backend/internal/store"
	"github.com/eventpulse/feedback-backend/internal/sysutil"
)

// version is stamped at build time via -ldflags "-X main.version=...".
var version = "dev"

func main() {
	_ = godotenv.Load()

	cfg := config.MustLoad()

	sysutil.SetLogLevel(cfg.LogLevel)
	zerolog.TimeFieldFormat = time.RFC3339
	if cfg.LogPretty {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	shutdownOTel, err := observability.SetupOTel(ctx, cfg.OTEL, version)
	if err != nil {
		log.Fatal().Err(err).Msg("otel setup failed")
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdownOTel(ctx); err != nil {
			log.Warn().Err(err).Msg("otel shutdown failed")
		}
	}()

	db := openDB(cfg.DBPath)

	sessions := store.New(db, cfg.SessionCacheTTL)
	events := store.NewEvents(db)

	var client genai.Client
	if cfg.GenAI.APIKey != "" {
		client = genai.NewGroqClient(cfg.GenAI.APIKey, cfg.GenAI.BaseURL, cfg.GenAI.Model)
		log.Info().Str("model", cfg.GenAI.Model).Msg("generation backend configured")
	} else {
		log.Info().Msg("no GROQ_API_KEY, using static response templates")
	}
	adapter := genai.NewAdapter(client, staticgen.New(),
		genai.WithTimeout(cfg.GenAI.CallTimeout),
		genai.WithBudget(cfg.GenAI.BudgetCalls, cfg.GenAI.BudgetWindow),
	)

	gin.SetMode(cfg.GinMode)
	r := gin.New()
	httpapi.RegisterRoutes(r, httpapi.Deps{
		Sessions: sessions,
		Events:   events,
		Gen:      adapter,
	}, cfg)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadTimeout:       cfg.ReadTimeout,
		ReadHeaderTimeout: cfg.ReadHeaderTimeout,
		WriteTimeout:      cfg.WriteTimeout,
		IdleTimeout:       cfg.IdleTimeout,
		MaxHeaderBytes:    cfg.MaxHeaderBytes,
	}

	go func() {
		log.Info().Str("addr", srv.Addr).Str("version", version).Msg("server starting")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
}

// openDB opens and migrates the SQLite database. On failure it returns nil,
// which puts the stores into in-memory degraded mode instead of aborting.
func openDB(path string) *gorm.DB {
	db, err := repo.OpenSQLite(path)
	if err != nil {
		log.Warn().Err(err).Str("path", path).Msg("database unavailable, continuing in-memory")
		return nil
	}
	if err := repo.AutoMigrate(db); err != nil {
		log.Warn().Err(err).Msg("migration failed, continuing in-memory")
		return nil
	}
	return db
}
