// Command server runs the HTTP API: multilingual content catalog, program
// purchases, live class bookings, and support conversations.
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

	"github.com/phytolife/go-phyto-backend/internal/config"
	httpapi "github.com/phytolife/go-phyto-backend/internal/http"
	"github.com/phytolife/go-phyto-backend/internal/observability"
	"github.com/phytolife/go-phyto-backend/internal/repo"
	"github.com/phytolife/go-phyto-backend/internal/services"
	"github.com/phytolife/go-phyto-backend/internal/sysutil"
)

// version is stamped at build time via -ldflags.
var version = "dev"

func main() {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	cfg := config.MustLoad()
	setupLogger(cfg)

	log.Info().
		Str("version", sysutil.FirstNonEmpty(os.Getenv("APP_VERSION"), version)).
		Str("gin_mode", cfg.GinMode).
		Str("db_driver", cfg.DBDriver).
		Msg("starting server")

	ctx := context.Background()

	shutdownOTel, err := observability.SetupOTel(ctx, cfg.OTEL, version)
	if err != nil {
		log.Fatal().Err(err).Msg("otel setup failed")
	}

	db, err := openDB(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("database open failed")
	}
	if cfg.OTEL.Enabled {
		if err := repo.EnableTracing(db); err != nil {
			log.Warn().Err(err).Msg("gorm tracing not enabled")
		}
	}
	if err := repo.AutoMigrate(db); err != nil {
		log.Fatal().Err(err).Msg("migration failed")
	}
	if sysutil.IsTruthy(os.Getenv("MIGRATE_ONLY")) {
		log.Info().Msg("migrations applied, exiting")
		return
	}

	seedAdmin(ctx, db, cfg)

	gin.SetMode(cfg.GinMode)
	engine := gin.New()
	httpapi.RegisterRoutes(engine, db, cfg)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           engine,
		ReadTimeout:       cfg.ReadTimeout,
		ReadHeaderTimeout: cfg.ReadHeaderTimeout,
		WriteTimeout:      cfg.WriteTimeout,
		IdleTimeout:       cfg.IdleTimeout,
		MaxHeaderBytes:    cfg.MaxHeaderBytes,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("addr", srv.Addr).Msg("listening")
		errCh <- srv.ListenAndServe()
	}()

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGINT, syscall.SIGTERM)

	select {
	case <-done:
		log.Info().Msg("shutdown signal received")
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server crashed")
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server shutdown failed")
	}
	if err := shutdownOTel(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("otel shutdown failed")
	}
	if sqlDB, err := db.DB(); err == nil {
		_ = sqlDB.Close()
	}
	log.Info().Msg("server stopped")
}

// setupLogger configures the global zerolog output for the process.
func setupLogger(cfg config.Config) {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	sysutil.SetLogLevel(cfg.LogLevel)
	if cfg.LogPretty {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})
	}
}

// openDB connects to the configured database backend.
func openDB(cfg config.Config) (*gorm.DB, error) {
	switch cfg.DBDriver {
	case "postgres":
		return repo.OpenPostgres(cfg.DBDSN)
	default:
		return repo.OpenSQLite(cfg.DBPath)
	}
}

// seedAdmin promotes the bootstrap account if one is configured. The account
// must already exist; a missing profile is logged, not fatal, so a fresh
// deployment can sign the account up first and restart.
func seedAdmin(ctx context.Context, db *gorm.DB, cfg config.Config) {
	if cfg.BootstrapAdminEmail == "" {
		return
	}
	auth := services.NewAuthService(db)
	if err := auth.SeedAdmin(ctx, cfg.BootstrapAdminEmail); err != nil {
		if errors.Is(err, services.ErrNotFound) {
			log.Warn().Str("email", cfg.BootstrapAdminEmail).Msg("bootstrap admin account not found")
			return
		}
		log.Error().Err(err).Msg("bootstrap admin promotion failed")
		return
	}
	log.Info().Str("email", cfg.BootstrapAdminEmail).Msg("bootstrap admin ensured")
}
