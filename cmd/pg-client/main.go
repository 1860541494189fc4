package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/venky2135/pg-management-system/internal/client"
	"github.com/venky2135/pg-management-system/internal/config"
	"github.com/venky2135/pg-management-system/internal/logger"
	"github.com/venky2135/pg-management-system/internal/shell"
	"github.com/venky2135/pg-management-system/internal/validator"
)

func main() {
	// ─── Load Configuration ────────────────────────────────────────────
	cfg := config.Load()

	// ─── Initialize Logger ─────────────────────────────────────────────
	// stdout belongs to the shell.
	log := logger.Setup(cfg.LogLevel, cfg.LogFormat, os.Stderr)
	log.Info().
		Str("api", cfg.APIBaseURL).
		Str("log_level", cfg.LogLevel).
		Msg("Starting PG Management client")

	// ─── Initialize Validator ──────────────────────────────────────────
	validator.Setup()

	// ─── Graceful Shutdown ─────────────────────────────────────────────
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// ─── Initialize Clients ────────────────────────────────────────────
	httpClient := &http.Client{}
	students := client.NewStudentClient(cfg, httpClient, log)
	fees := client.NewFeeClient(cfg, httpClient, log)

	// ─── Run Shell ─────────────────────────────────────────────────────
	sh := shell.New(os.Stdin, os.Stdout, students, fees, log, shell.Options{
		Interactive: shell.IsTerminal(os.Stdin),
	})
	if err := sh.Run(ctx); err != nil && ctx.Err() == nil {
		log.Fatal().Err(err).Msg("Shell error")
	}

	log.Info().Msg("Bye")
}

// init sets zerolog global defaults before main runs.
func init() {
	zerolog.TimeFieldFormat = time.RFC3339
}
