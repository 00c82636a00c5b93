package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/snarg/captiond/internal/api"
	"github.com/snarg/captiond/internal/config"
	"github.com/snarg/captiond/internal/metrics"
	"github.com/snarg/captiond/internal/store"
	"github.com/snarg/captiond/internal/youtube"

	"github.com/prometheus/client_golang/prometheus"
)

var version = "dev"

func main() {
	startTime := time.Now()

	var overrides config.Overrides
	flag.StringVar(&overrides.EnvFile, "env", "", "path to .env file")
	flag.StringVar(&overrides.HTTPAddr, "addr", "", "HTTP listen address (overrides HTTP_ADDR)")
	flag.StringVar(&overrides.LogLevel, "log-level", "", "log level (overrides LOG_LEVEL)")
	flag.Parse()

	// Config
	cfg, err := config.Load(overrides)
	if err != nil {
		early := zerolog.New(os.Stderr).With().Timestamp().Logger()
		early.Fatal().Err(err).Msg("failed to load config")
	}

	// Logger
	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = zerolog.InfoLevel
	}
	log := zerolog.New(os.Stdout).With().Timestamp().Logger().Level(level)
	log.Info().Str("version", version).Msg("captiond starting")

	// Context for graceful shutdown
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Transcript archive (optional)
	var archive *store.Store
	if cfg.DatabaseURL != "" {
		storeLog := log.With().Str("component", "store").Logger()
		archive, err = store.Connect(ctx, cfg.DatabaseURL, storeLog)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to connect to archive database")
		}
		defer archive.Close()
		if err := archive.InitSchema(ctx); err != nil {
			log.Fatal().Err(err).Msg("failed to initialize archive schema")
		}
		prometheus.MustRegister(metrics.NewCollector(archive.Pool))
	}

	// Discovery pipeline
	pipeLog := log.With().Str("component", "pipeline").Logger()
	pipeline := youtube.New(youtube.Options{
		FetchTimeout: cfg.FetchTimeout,
		MinChars:     cfg.MinTranscriptChars,
		TargetLang:   cfg.TargetLang,
		Sink: youtube.MultiSink{
			youtube.LogSink{Log: pipeLog},
			metrics.PipelineSink{},
		},
	})

	// HTTP Server
	httpLog := log.With().Str("component", "http").Logger()
	srv := api.NewServer(cfg, pipeline, archive, version, startTime, httpLog)

	// Start HTTP server in background
	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Start()
	}()

	// Wait for shutdown signal or server error
	select {
	case <-ctx.Done():
		log.Info().Msg("shutdown signal received")
	case err := <-errCh:
		if err != nil {
			log.Error().Err(err).Msg("http server error")
		}
	}

	// Graceful shutdown with 10s timeout
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("http server shutdown error")
	}

	log.Info().Msg("captiond stopped")
}
