package main

import (
	"fmt"
	"net"
	"os"
	"strconv"

	"github.com/lox/concentration/internal/server"
)

// ServeCmd serves the browser client over HTTP and WebSocket
type ServeCmd struct {
	Config   string `short:"c" default:"concentration.hcl" help:"Path to HCL configuration file"`
	Addr     string `short:"a" help:"Address to listen on as host:port (overrides config)"`
	LogLevel string `short:"l" help:"Log level: debug, info, warn, error (overrides config)"`
	Seed     *int64 `help:"Seed for board shuffles; 0 picks one from the clock (overrides config)"`
}

func (c *ServeCmd) Run() error {
	cfg, err := server.LoadServerConfig(c.Config)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	if err := c.applyOverrides(cfg); err != nil {
		return err
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	logger, err := newLogger(os.Stderr, cfg.Server.LogLevel)
	if err != nil {
		return err
	}

	logger.Info("Starting Concentration server",
		"addr", cfg.GetServerAddress(),
		"config", c.Config,
		"difficulties", len(cfg.DifficultyList()),
		"default", cfg.Server.DefaultDifficulty)

	ctx, cancel := signalContext(logger)
	defer cancel()

	s := server.NewServer(cfg, logger)
	return s.Serve(ctx)
}

// applyOverrides copies command line flags over values from the config file
func (c *ServeCmd) applyOverrides(cfg *server.ServerConfig) error {
	if c.Addr != "" {
		host, port, err := net.SplitHostPort(c.Addr)
		if err != nil {
			return fmt.Errorf("invalid address %q: %w", c.Addr, err)
		}
		p, err := strconv.Atoi(port)
		if err != nil {
			return fmt.Errorf("invalid port in %q: %w", c.Addr, err)
		}
		if host != "" {
			cfg.Server.Address = host
		}
		cfg.Server.Port = p
	}
	if c.LogLevel != "" {
		cfg.Server.LogLevel = c.LogLevel
	}
	if c.Seed != nil {
		cfg.Server.Seed = *c.Seed
	}
	return nil
}
