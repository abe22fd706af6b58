package main

import (
	"fmt"
	"io"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/lox/concentration/internal/randutil"
	"github.com/lox/concentration/internal/server"
	"github.com/lox/concentration/internal/tui"
	"github.com/muesli/termenv"
)

// PlayCmd runs a game in the terminal
type PlayCmd struct {
	Config     string `short:"c" default:"concentration.hcl" help:"Path to HCL configuration file for custom difficulties and alphabet"`
	Difficulty string `short:"d" help:"Difficulty to start with (defaults to the configured default)"`
	Seed       int64  `help:"Seed for board shuffles; 0 picks one from the clock"`
	NoColor    bool   `help:"Disable colors"`
	LogFile    string `help:"Write debug logs to this file"`
}

func (c *PlayCmd) Run() error {
	cfg, err := server.LoadServerConfig(c.Config)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	name := c.Difficulty
	if name == "" {
		name = cfg.Server.DefaultDifficulty
	}
	difficulty, ok := cfg.LookupDifficulty(name)
	if !ok {
		return fmt.Errorf("unknown difficulty %q, see the presets command", name)
	}
	if err := cfg.GameConfig(difficulty).Validate(); err != nil {
		return fmt.Errorf("difficulty %s: %w", name, err)
	}

	if c.NoColor {
		lipgloss.SetColorProfile(termenv.Ascii)
	}

	// The terminal belongs to the game, so logs only go to a file
	var w io.Writer = io.Discard
	if c.LogFile != "" {
		f, err := os.OpenFile(c.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return fmt.Errorf("opening log file: %w", err)
		}
		defer f.Close()
		w = f
	}
	logger, err := newLogger(w, "debug")
	if err != nil {
		return err
	}

	seed := randutil.Seed(c.Seed)
	logger.Info("Starting terminal game", "difficulty", difficulty.Name, "seed", seed)

	ctx, cancel := signalContext(logger)
	defer cancel()

	return tui.Play(ctx, tui.PlayConfig{
		Difficulty:   difficulty,
		Difficulties: cfg.DifficultyList(),
		GameConfig:   cfg.GameConfig,
		Random:       randutil.New(seed),
		Logger:       logger,
		Options:      []tea.ProgramOption{tea.WithAltScreen()},
	})
}
