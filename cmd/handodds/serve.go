package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"

	"github.com/lox/handodds/internal/config"
	"github.com/lox/handodds/internal/server"
)

// ServeCmd runs the WebSocket calculation server
type ServeCmd struct {
	Config   string `short:"c" default:"handodds-server.hcl" help:"Path to HCL server configuration file"`
	Addr     string `short:"a" help:"Host to bind to (overrides config)"`
	Port     int    `short:"p" help:"Port to listen on (overrides config)"`
	DeckFile string `help:"Deck file whose decks can be requested by name (overrides config)"`
}

func (c *ServeCmd) Run(g *Globals, logger *log.Logger) error {
	cfg, err := server.LoadServerConfig(c.Config)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	// Apply command line overrides
	if c.Addr != "" {
		cfg.Server.Address = c.Addr
	}
	if c.Port != 0 {
		cfg.Server.Port = c.Port
	}
	if c.DeckFile != "" {
		cfg.Server.DeckFile = c.DeckFile
	}
	if g.LogLevel != "" {
		cfg.Server.LogLevel = g.LogLevel
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	setLevel(logger, cfg.Server.LogLevel)

	idle, err := cfg.IdleDuration()
	if err != nil {
		return err
	}

	srv := server.NewServer(cfg.GetServerAddress(), logger, quartz.NewReal())
	srv.SetIdleTimeout(idle)

	if cfg.Server.DeckFile != "" {
		decks, err := config.Load(cfg.Server.DeckFile)
		if err != nil {
			return err
		}
		srv.SetDecks(decks)
		logger.Info("Loaded decks", "file", cfg.Server.DeckFile, "decks", decks.Names())
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	serverErr := make(chan error, 1)
	go func() {
		serverErr <- srv.Start()
	}()

	select {
	case <-ctx.Done():
		logger.Info("Shutting down server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Stop(shutdownCtx)
	case err := <-serverErr:
		if err != nil && !errors.Is(err, context.Canceled) {
			return err
		}
		return nil
	}
}
