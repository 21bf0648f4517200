package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"

	"github.com/cardroom/blackjack/internal/game"
	"github.com/cardroom/blackjack/internal/server"
)

// ServeCmd runs the WebSocket server.
type ServeCmd struct {
	Config string `short:"c" default:"blackjack.hcl" help:"Path to HCL configuration file"`
	Port   int    `short:"p" help:"Listen port (overrides config)"`
	Debug  bool   `help:"Enable debug logging"`
}

func (c *ServeCmd) Run() error {
	cfg, err := server.LoadConfig(c.Config)
	if err != nil {
		return err
	}
	if c.Port != 0 {
		cfg.Server.Port = c.Port
	}
	if c.Debug {
		cfg.Server.LogLevel = "debug"
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	logger := log.New(os.Stderr)
	switch cfg.Server.LogLevel {
	case "debug":
		logger.SetLevel(log.DebugLevel)
	case "warn":
		logger.SetLevel(log.WarnLevel)
	case "error":
		logger.SetLevel(log.ErrorLevel)
	default:
		logger.SetLevel(log.InfoLevel)
	}

	gameCfg := cfg.GameConfig()
	logger.Info("Starting blackjack server",
		"addr", cfg.Addr(),
		"startingChips", gameCfg.StartingChips,
		"minimumBet", gameCfg.MinimumBet,
		"maxRounds", gameCfg.MaxRounds)

	gateway := server.NewGateway(logger)
	registry := game.NewRegistry(gameCfg, quartz.NewReal(), gateway, logger)
	gateway.SetRegistry(registry)
	srv := server.NewServer(cfg, gateway, logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return srv.Run(ctx)
}
