package tui

import (
	"context"
	"fmt"
	"io"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"github.com/lox/concentration/internal/game"
)

// NewRenderer returns an engine renderer that hands every notification to send,
// typically (*tea.Program).Send.
func NewRenderer(send func(tea.Msg)) game.Renderer {
	return game.EventFunc(func(ev game.Event) {
		send(EventMsg{Event: ev})
	})
}

// PlayConfig configures a local terminal game
type PlayConfig struct {
	Difficulty   game.Difficulty
	Difficulties []game.Difficulty
	GameConfig   func(game.Difficulty) game.Config
	Random       game.RandomSource
	Clock        quartz.Clock
	Logger       *log.Logger
	Options      []tea.ProgramOption
}

// Play runs an interactive game until the user quits or ctx is cancelled
func Play(ctx context.Context, cfg PlayConfig) error {
	var program *tea.Program
	if cfg.Logger == nil {
		cfg.Logger = log.New(io.Discard)
	}

	opts := []game.Option{
		game.WithRenderer(NewRenderer(func(msg tea.Msg) { program.Send(msg) })),
		game.WithLogger(cfg.Logger),
	}
	if cfg.Random != nil {
		opts = append(opts, game.WithRandom(cfg.Random))
	}
	if cfg.Clock != nil {
		opts = append(opts, game.WithClock(cfg.Clock))
	}
	engine := game.NewGameEngine(opts...)
	defer engine.Close()

	var modelOpts []ModelOption
	if len(cfg.Difficulties) > 0 {
		modelOpts = append(modelOpts, WithDifficulties(cfg.Difficulties))
	}
	if cfg.GameConfig != nil {
		modelOpts = append(modelOpts, WithGameConfig(cfg.GameConfig))
	}
	model := NewTUIModel(engine, cfg.Difficulty, cfg.Logger, modelOpts...)

	programOpts := append([]tea.ProgramOption{tea.WithContext(ctx)}, cfg.Options...)
	program = tea.NewProgram(model, programOpts...)

	if _, err := program.Run(); err != nil {
		if ctx.Err() != nil {
			return nil
		}
		return fmt.Errorf("terminal game: %w", err)
	}
	return nil
}
