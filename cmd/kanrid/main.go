package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/kanriapp/kanri/internal/config"
	"github.com/kanriapp/kanri/internal/database"
	"github.com/kanriapp/kanri/internal/server"
)

func main() {
	seed := flag.Bool("seed", false, "seed the database with a starter project and members")
	flag.Parse()

	// Set up signal handling for graceful shutdown
	ctx, cancel := signal.NotifyContext(
		context.Background(),
		os.Interrupt,
		syscall.SIGTERM,
		syscall.SIGQUIT,
	)
	defer cancel()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	dbPath := cfg.Server.DatabasePath
	if dbPath == "" {
		dbPath, err = database.DefaultPath()
		if err != nil {
			slog.Error("failed to resolve database path", "error", err)
			os.Exit(1)
		}
	}

	db, err := database.InitDB(ctx, dbPath)
	if err != nil {
		slog.Error("failed to initialize database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	if *seed {
		if err := database.Seed(ctx, db); err != nil {
			slog.Error("failed to seed database", "error", err)
			os.Exit(1)
		}
		slog.Info("database seeded")
	}

	repo := database.NewRepository(db)
	srv := server.NewServer(repo)

	slog.Info("kanrid starting", "addr", cfg.Server.ListenAddr, "db", dbPath, "pid", os.Getpid())

	// Blocks until shutdown
	if err := srv.ListenAndServe(ctx, cfg.Server.ListenAddr); err != nil {
		slog.Error("server error", "error", err)
		os.Exit(1)
	}

	slog.Info("kanrid shutting down gracefully")
}
