// cmd/agent/main.go
//
// Vigil agent – process entry point.
//
// Boot sequence
// -------------
//
//  1. Load env vars (system-wide file → .env fallback).
//
//  2. Start daily rotating logger (tees to console when running in a TTY).
//
//  3. Apply the BASE_URL override to the persisted application file.
//     The rewrite targets the *file*: the instance cached during the
//     rewrite keeps the pre-override URLs, and the new endpoints take
//     effect on the next agent start.  No BASE_URL means no touch.
//
//  4. Load the configuration through the store.  A missing or
//     malformed file is fatal; the agent must not run on guesses.
//
//  5. Start the result listener (when `listener.port` ≥ 1) under an
//     errgroup, and block until SIGINT/SIGTERM.
//
// Large comment blocks are framed by blank “//” lines; inline comments
// use a single “//”.
package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"golang.org/x/sync/errgroup"

	"github.com/yanizio/vigil/internal/config"
	"github.com/yanizio/vigil/internal/listener"
	"github.com/yanizio/vigil/internal/logger"
	"github.com/yanizio/vigil/internal/paths"
)

const systemEnvPath = "/usr/local/etc/vigil/agent.env"

// loadEnv prefers the system-wide env file; on dev it falls back to .env.
func loadEnv() {
	if _, err := os.Stat(systemEnvPath); err == nil {
		_ = godotenv.Load(systemEnvPath)
		return
	}
	_ = godotenv.Load()
}

// runningInTTY returns true when stdout is a character device.
func runningInTTY() bool {
	fi, err := os.Stdout.Stat()
	if err != nil {
		return false
	}
	return fi.Mode()&os.ModeCharDevice != 0
}

func init() { loadEnv() }

func main() {
	logOut, err := logger.New(paths.LogDir(), runningInTTY())
	if err != nil {
		log.Fatalf("start logger: %v", err)
	}
	defer func() { _ = logOut.Sync() }()

	//
	// ── 1.  Configuration: override, then load ──────────────────────────
	//
	store := config.NewStore(paths.AppConfig())
	config.ApplyBaseURLOverride(store)

	cfg, err := store.Get()
	if err != nil {
		logOut.Fatalf("load configuration: %v", err)
	}
	logOut.Infow("agent configured",
		"id_enabled", cfg.IDEnabled,
		"results_enabled", cfg.ClientResults.Enabled,
		"updates_enabled", cfg.ClientUpdates.Enabled,
		"survey_enabled", cfg.Survey.Enabled,
		"manage_processes", cfg.ResourceControl.ManageProcesses,
	)

	//
	// ── 2.  Result listener until shutdown signal ───────────────────────
	//
	ctx, stop := signal.NotifyContext(context.Background(),
		syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)
	lst := listener.New(cfg, paths.SpoolDir())
	g.Go(func() error { return lst.Run(ctx) })

	if err := g.Wait(); err != nil {
		logOut.Fatalf("agent terminated: %v", err)
	}
	logOut.Infow("agent shut down cleanly")
}
