package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/alecthomas/kong"
	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"golang.org/x/sync/errgroup"

	"github.com/Techjunky-monk39/CasinoLive/internal/api"
	"github.com/Techjunky-monk39/CasinoLive/internal/casino"
	"github.com/Techjunky-monk39/CasinoLive/internal/chat"
	"github.com/Techjunky-monk39/CasinoLive/internal/config"
	"github.com/Techjunky-monk39/CasinoLive/internal/rng"
	"github.com/Techjunky-monk39/CasinoLive/internal/session"
	"github.com/Techjunky-monk39/CasinoLive/internal/store"
)

var CLI struct {
	Config   string `short:"c" help:"Path to YAML configuration file"`
	Addr     string `short:"a" help:"Listen address (overrides config)"`
	Database string `short:"d" help:"SQLite database path (overrides config; empty uses memory)"`
	LogLevel string `short:"l" help:"Log level (overrides config)"`
}

func main() {
	ctx := kong.Parse(&CLI)

	cfg := config.Default()
	if CLI.Config != "" {
		loaded, err := config.Load(CLI.Config)
		if err != nil {
			fmt.Printf("Error loading config: %v\n", err)
			ctx.Exit(1)
		}
		cfg = loaded
	}
	if CLI.Addr != "" {
		cfg.Addr = CLI.Addr
	}
	if CLI.Database != "" {
		cfg.DatabasePath = CLI.Database
	}
	if CLI.LogLevel != "" {
		cfg.LogLevel = CLI.LogLevel
	}
	if err := cfg.Validate(); err != nil {
		fmt.Printf("Invalid configuration: %v\n", err)
		ctx.Exit(1)
	}

	logger := log.New(os.Stderr)
	switch cfg.LogLevel {
	case "debug":
		logger.SetLevel(log.DebugLevel)
	case "warn":
		logger.SetLevel(log.WarnLevel)
	case "error":
		logger.SetLevel(log.ErrorLevel)
	default:
		logger.SetLevel(log.InfoLevel)
	}

	if err := run(cfg, logger); err != nil {
		logger.Error("server exited", "err", err)
		ctx.Exit(1)
	}
}

func run(cfg config.Config, logger *log.Logger) error {
	var st store.Store
	if cfg.DatabasePath == "" {
		logger.Info("using in-memory store")
		mem := store.NewMemory()
		// Ephemeral runs get a ready-made account to play with.
		if _, err := mem.CreateUser("player123", api.HashPassword("password123"), cfg.StartingBalance); err != nil {
			return err
		}
		st = mem
	} else {
		logger.Info("opening database", "path", cfg.DatabasePath)
		sqlite, err := store.NewSQLite(cfg.DatabasePath)
		if err != nil {
			return err
		}
		st = sqlite
	}
	defer st.Close()

	svc := casino.New(st, logger, rng.Locked(rng.NewCrypto()), cfg.RerollPolicy)
	sessions := session.NewManager(time.Duration(cfg.SessionTTL), quartz.NewReal())
	hub := chat.NewHub(logger)
	server := api.NewServer(svc, st, sessions, hub, logger, cfg.StartingBalance)

	httpServer := &http.Server{
		Addr:    cfg.Addr,
		Handler: server.Routes(),
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		hub.Run()
		return nil
	})

	g.Go(func() error {
		logger.Info("listening", "addr", cfg.Addr)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		ticker := time.NewTicker(time.Hour)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				if n := sessions.Prune(); n > 0 {
					logger.Debug("pruned sessions", "count", n)
				}
			case <-ctx.Done():
				return nil
			}
		}
	})

	g.Go(func() error {
		<-ctx.Done()
		logger.Info("shutting down")
		hub.Stop()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return httpServer.Shutdown(shutdownCtx)
	})

	return g.Wait()
}
