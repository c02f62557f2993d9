// Command server boots the lookup gateway: it loads configuration (with an
// optional .env file), wires logging and tracing, opens the audit database,
// seeds the credential store, mounts the HTTP API, and serves until a
// shutdown signal arrives.
//
//	@title        Lookup Gateway API
//	@version      1.0
//	@description  Proxy API that authenticates callers, throttles upstream traffic, and republishes scraped lookup records as JSON.
//	@BasePath     /api/v1
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
	"github.com/rs/zerolog/log"

	"github.com/simdex/go-lookup-gateway/internal/config"
	httpapi "github.com/simdex/go-lookup-gateway/internal/http"
	"github.com/simdex/go-lookup-gateway/internal/keystore"
	"github.com/simdex/go-lookup-gateway/internal/observability"
	"github.com/simdex/go-lookup-gateway/internal/repo"
	"github.com/simdex/go-lookup-gateway/internal/sysutil"
)

// version is stamped at build time via -ldflags.
var version = "dev"

func main() {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("load config")
	}

	sysutil.SetupLogger(os.Stderr, cfg.LogPretty)
	sysutil.SetLogLevel(cfg.LogLevel)
	gin.SetMode(cfg.GinMode)

	ctx := context.Background()

	shutdownOTel, err := observability.SetupOTel(ctx, cfg.OTEL, version)
	if err != nil {
		log.Fatal().Err(err).Msg("setup otel")
	}
	defer func() {
		if err := shutdownOTel(context.Background()); err != nil {
			log.Warn().Err(err).Msg("otel shutdown")
		}
	}()

	db, err := repo.OpenSQLite(cfg.DBPath, cfg.OTEL.Enabled)
	if err != nil {
		log.Fatal().Err(err).Str("path", cfg.DBPath).Msg("open audit db")
	}
	if err := repo.AutoMigrate(db); err != nil {
		log.Fatal().Err(err).Msg("migrate audit db")
	}

	store := keystore.NewStore(keystore.DefaultCredentials())

	r := gin.New()
	httpapi.RegisterRoutes(r, store, db, cfg)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadTimeout:       cfg.ReadTimeout,
		ReadHeaderTimeout: cfg.ReadHeaderTimeout,
		WriteTimeout:      cfg.WriteTimeout,
		IdleTimeout:       cfg.IdleTimeout,
		MaxHeaderBytes:    cfg.MaxHeaderBytes,
	}

	srvErrCh := make(chan error, 1)
	go func() {
		log.Info().
			Str("port", cfg.Port).
			Str("upstream", cfg.Upstream.BaseURL+cfg.Upstream.Path).
			Dur("min_interval", cfg.Upstream.MinInterval).
			Int("keys", store.ActiveCount()).
			Msg("server listening")
		srvErrCh <- srv.ListenAndServe()
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigCh:
		log.Info().Str("signal", sig.String()).Msg("shutdown signal received")
	case err := <-srvErrCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server error")
		}
		return
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("shutdown error")
		os.Exit(1)
	}

	log.Info().Msg("server exited cleanly")
}
