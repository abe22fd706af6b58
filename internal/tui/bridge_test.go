package tui

import (
	"context"
	"io"
	"strings"
	"sync"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"github.com/lox/concentration/internal/game"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRendererWrapsEvents(t *testing.T) {
	var got []tea.Msg
	r := NewRenderer(func(msg tea.Msg) { got = append(got, msg) })

	cards := []game.CardView{{ID: 0}, {ID: 1}}
	r.OnLayout(cards)
	r.OnReveal(1, "X")
	r.OnComplete(game.Result{Moves: 4})
	cards[0].ID = 9

	require.Len(t, got, 3)
	assert.Equal(t, EventMsg{Event: game.LayoutEvent{Cards: []game.CardView{{ID: 0}, {ID: 1}}}}, got[0])
	assert.Equal(t, EventMsg{Event: game.RevealEvent{CardID: 1, Symbol: "X"}}, got[1])
	assert.Equal(t, EventMsg{Event: game.CompleteEvent{Result: game.Result{Moves: 4}}}, got[2])
}

func TestPlayQuits(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	err := Play(ctx, PlayConfig{
		Difficulty: tiny,
		Random:     game.NewOrderedSource(2),
		Clock:      quartz.NewMock(t),
		Logger:     log.New(io.Discard),
		Options: []tea.ProgramOption{
			tea.WithInput(strings.NewReader("q")),
			tea.WithOutput(io.Discard),
			tea.WithoutRenderer(),
		},
	})
	require.NoError(t, err)
}

func TestPlayStopsWithContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	// a reader that never delivers keeps the program waiting for input
	r, w := io.Pipe()
	defer w.Close()

	err := Play(ctx, PlayConfig{
		Difficulty: tiny,
		Clock:      quartz.NewMock(t),
		Logger:     log.New(io.Discard),
		Options: []tea.ProgramOption{
			tea.WithInput(r),
			tea.WithOutput(io.Discard),
			tea.WithoutRenderer(),
		},
	})
	assert.NoError(t, err)
}

func TestPlayKeepsRunningWhileTimerFires(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	clock := quartz.NewMock(t)
	in, keys := io.Pipe()
	defer keys.Close()

	revealed := make(chan struct{})
	ticked := make(chan struct{})
	var once sync.Once

	// The tick takes the engine lock and delivers to the program while the
	// difficulty key is still being handled.
	filter := func(_ tea.Model, msg tea.Msg) tea.Msg {
		switch msg := msg.(type) {
		case EventMsg:
			if _, ok := msg.Event.(game.RevealEvent); ok {
				once.Do(func() { close(revealed) })
			}
		case tea.KeyMsg:
			if msg.String() == "2" {
				go func() {
					defer close(ticked)
					_ = clock.Advance(time.Second).Wait(ctx)
				}()
				time.Sleep(50 * time.Millisecond)
			}
		}
		return msg
	}

	done := make(chan error, 1)
	go func() {
		done <- Play(ctx, PlayConfig{
			Difficulty: tiny,
			Random:     game.NewOrderedSource(2),
			Clock:      clock,
			Logger:     log.New(io.Discard),
			Options: []tea.ProgramOption{
				tea.WithInput(in),
				tea.WithOutput(io.Discard),
				tea.WithoutRenderer(),
				tea.WithFilter(filter),
			},
		})
	}()

	waitFor := func(ch <-chan struct{}, what string) {
		t.Helper()
		select {
		case <-ch:
		case <-ctx.Done():
			t.Fatalf("timed out waiting for %s", what)
		}
	}

	_, err := keys.Write([]byte("\r"))
	require.NoError(t, err)
	waitFor(revealed, "the first card to be revealed")

	_, err = keys.Write([]byte("2"))
	require.NoError(t, err)
	waitFor(ticked, "the timer tick to be delivered")

	_, err = keys.Write([]byte("q"))
	require.NoError(t, err)

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-ctx.Done():
		t.Fatal("terminal game stopped responding")
	}
}
