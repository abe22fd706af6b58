package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/lox/concentration/internal/game"
)

// Engine is the part of the game engine the model drives
type Engine interface {
	StartSession(cfg game.Config) error
	Flip(cardID int) game.FlipStatus
	Reset() error
}

// EventMsg carries one engine notification into the program
type EventMsg struct {
	Event game.Event
}

type flipResultMsg struct {
	cardID int
	status game.FlipStatus
}

type errMsg struct {
	err error
}

// TUIModel is the Bubble Tea model for a local game. Board state is built only from
// engine notifications.
type TUIModel struct {
	engine       Engine
	logger       *log.Logger
	difficulties []game.Difficulty
	difficulty   game.Difficulty
	gameConfig   func(game.Difficulty) game.Config

	// Display state (event-driven)
	cards      []game.CardView
	moves      int
	seconds    int
	matched    int
	total      int
	mismatch   []int
	result     *game.Result
	status     string
	pendingDif *game.Difficulty
	started    bool

	cursor   int
	keys     keyMap
	help     help.Model
	width    int
	quitting bool
}

// ModelOption configures a TUIModel
type ModelOption func(*TUIModel)

// WithDifficulties sets the difficulties selectable with the number keys
func WithDifficulties(list []game.Difficulty) ModelOption {
	return func(m *TUIModel) {
		m.difficulties = list
	}
}

// WithGameConfig sets how a difficulty becomes a session configuration
func WithGameConfig(f func(game.Difficulty) game.Config) ModelOption {
	return func(m *TUIModel) {
		m.gameConfig = f
	}
}

// NewTUIModel creates a model that starts a game at the given difficulty
func NewTUIModel(engine Engine, difficulty game.Difficulty, logger *log.Logger, opts ...ModelOption) *TUIModel {
	m := &TUIModel{
		engine:       engine,
		logger:       logger.WithPrefix("tui"),
		difficulties: game.Presets(),
		difficulty:   difficulty,
		gameConfig:   game.Difficulty.Config,
		keys:         defaultKeyMap(),
		help:         help.New(),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Init starts the first game
func (m *TUIModel) Init() tea.Cmd {
	return m.startCmd(m.difficulty)
}

// Engine calls run as commands, off the event loop, because the engine delivers
// its notifications back through the program while it holds its lock. Update never
// calls the engine directly.
func (m *TUIModel) startCmd(d game.Difficulty) tea.Cmd {
	engine, cfg := m.engine, m.gameConfig(d)
	return func() tea.Msg {
		if err := engine.StartSession(cfg); err != nil {
			return errMsg{err: err}
		}
		return nil
	}
}

func (m *TUIModel) flipCmd(cardID int) tea.Cmd {
	engine := m.engine
	return func() tea.Msg {
		return flipResultMsg{cardID: cardID, status: engine.Flip(cardID)}
	}
}

func (m *TUIModel) resetCmd() tea.Cmd {
	engine := m.engine
	return func() tea.Msg {
		if err := engine.Reset(); err != nil {
			return errMsg{err: err}
		}
		return nil
	}
}

// Update handles messages in the TUI
func (m *TUIModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.help.Width = msg.Width

	case EventMsg:
		m.applyEvent(msg.Event)

	case flipResultMsg:
		switch msg.status {
		case game.Locked:
			m.status = "Wait for the cards to settle"
		case game.GameOver:
			m.status = "Game over, press r to play again"
		default:
			m.status = ""
		}

	case errMsg:
		m.logger.Error("Engine error", "error", msg.err)
		m.status = msg.err.Error()

	case tea.KeyMsg:
		return m, m.handleKey(msg)
	}

	return m, nil
}

func (m *TUIModel) handleKey(msg tea.KeyMsg) tea.Cmd {
	if key.Matches(msg, m.keys.Quit) {
		m.quitting = true
		return tea.Quit
	}

	if m.pendingDif != nil {
		d := *m.pendingDif
		switch {
		case key.Matches(msg, m.keys.Confirm):
			m.pendingDif = nil
			return m.switchDifficulty(d)
		case key.Matches(msg, m.keys.Cancel):
			m.pendingDif = nil
			m.status = ""
		}
		return nil
	}

	switch {
	case key.Matches(msg, m.keys.Up):
		m.moveCursor(0, -1)
	case key.Matches(msg, m.keys.Down):
		m.moveCursor(0, 1)
	case key.Matches(msg, m.keys.Left):
		m.moveCursor(-1, 0)
	case key.Matches(msg, m.keys.Right):
		m.moveCursor(1, 0)
	case key.Matches(msg, m.keys.Flip):
		if m.cursor < len(m.cards) {
			return m.flipCmd(m.cursor)
		}
	case key.Matches(msg, m.keys.Reset):
		return m.resetCmd()
	case key.Matches(msg, m.keys.Difficulty):
		return m.selectDifficulty(msg.String())
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
	}
	return nil
}

func (m *TUIModel) selectDifficulty(k string) tea.Cmd {
	i := int(k[0] - '1')
	if i < 0 || i >= len(m.difficulties) {
		return nil
	}
	d := m.difficulties[i]
	if m.started {
		m.pendingDif = &d
		m.status = fmt.Sprintf("Changing difficulty to %s will reset the game. Continue? (y/n)", d.Name)
		return nil
	}
	return m.switchDifficulty(d)
}

func (m *TUIModel) switchDifficulty(d game.Difficulty) tea.Cmd {
	m.logger.Debug("Switching difficulty", "difficulty", d.Name)
	m.difficulty = d
	m.status = ""
	return m.startCmd(d)
}

func (m *TUIModel) columns() int {
	if m.difficulty.Columns < 1 {
		return 4
	}
	return m.difficulty.Columns
}

func (m *TUIModel) moveCursor(dx, dy int) {
	if len(m.cards) == 0 {
		return
	}
	cols := m.columns()
	row, col := m.cursor/cols, m.cursor%cols
	rows := (len(m.cards) + cols - 1) / cols

	col = (col + dx + cols) % cols
	row = (row + dy + rows) % rows
	next := row*cols + col
	if next >= len(m.cards) {
		next = len(m.cards) - 1
	}
	m.cursor = next
}

func (m *TUIModel) applyEvent(ev game.Event) {
	switch ev := ev.(type) {
	case game.LayoutEvent:
		m.cards = ev.Cards
		m.mismatch = nil
		m.result = nil
		m.status = ""
		m.started = false
		if m.cursor >= len(m.cards) {
			m.cursor = 0
		}
	case game.RevealEvent:
		if c := m.card(ev.CardID); c != nil {
			c.State = game.Revealed
			c.Symbol = ev.Symbol
		}
		m.started = true
	case game.HideEvent:
		if c := m.card(ev.CardID); c != nil {
			c.State = game.Hidden
			c.Symbol = ""
		}
		m.mismatch = nil
	case game.MatchedEvent:
		if c := m.card(ev.CardID); c != nil {
			c.State = game.Matched
		}
	case game.MovesEvent:
		m.moves = ev.Moves
	case game.TimeEvent:
		m.seconds = ev.Seconds
	case game.PairsEvent:
		m.matched, m.total = ev.Matched, ev.Total
	case game.MismatchEvent:
		m.mismatch = []int{ev.First, ev.Second}
	case game.CompleteEvent:
		result := ev.Result
		m.result = &result
	}
}

func (m *TUIModel) card(id int) *game.CardView {
	if id < 0 || id >= len(m.cards) {
		return nil
	}
	return &m.cards[id]
}

// View renders the TUI
func (m *TUIModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder
	b.WriteString(HeaderStyle.Render(fmt.Sprintf("Concentration: %s", m.difficulty.Name)))
	b.WriteString("\n")
	b.WriteString(StatsStyle.Render(fmt.Sprintf("Moves: %d   Time: %s   Pairs: %d/%d",
		m.moves, game.FormatElapsed(m.seconds), m.matched, m.total)))
	b.WriteString("\n\n")
	b.WriteString(m.renderBoard())
	b.WriteString("\n")

	if m.result != nil {
		b.WriteString(m.renderResult())
		b.WriteString("\n")
	}
	if m.status != "" {
		b.WriteString(WarningStyle.Render(m.status))
		b.WriteString("\n")
	}
	b.WriteString(m.renderDifficulties())
	b.WriteString("\n")
	b.WriteString(m.help.View(m.keys))
	return b.String()
}

func (m *TUIModel) renderBoard() string {
	if len(m.cards) == 0 {
		return InfoStyle.Render("Dealing...")
	}

	cols := m.columns()
	var rows []string
	for start := 0; start < len(m.cards); start += cols {
		end := start + cols
		if end > len(m.cards) {
			end = len(m.cards)
		}
		cells := make([]string, 0, end-start)
		for _, c := range m.cards[start:end] {
			cells = append(cells, m.renderCard(c))
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, cells...))
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

func (m *TUIModel) renderCard(c game.CardView) string {
	style := HiddenCardStyle
	face := "??"
	switch c.State {
	case game.Revealed:
		style = RevealedCardStyle
		face = string(c.Symbol)
		if m.isMismatched(c.ID) {
			style = MismatchCardStyle
		}
	case game.Matched:
		style = MatchedCardStyle
		face = string(c.Symbol)
	}
	if c.ID == m.cursor {
		style = style.BorderStyle(lipgloss.ThickBorder()).Bold(true)
	}
	return style.Render(face)
}

func (m *TUIModel) isMismatched(id int) bool {
	for _, mid := range m.mismatch {
		if mid == id {
			return true
		}
	}
	return false
}

func (m *TUIModel) renderResult() string {
	r := m.result
	stars := strings.Repeat("★", r.Rating.Stars()) + strings.Repeat("☆", 3-r.Rating.Stars())
	return SuccessStyle.Render(fmt.Sprintf("Congratulations! %s %s\nTime: %s   Moves: %d",
		r.Rating, stars, game.FormatElapsed(r.ElapsedSeconds), r.Moves))
}

func (m *TUIModel) renderDifficulties() string {
	parts := make([]string, len(m.difficulties))
	for i, d := range m.difficulties {
		label := fmt.Sprintf("%d:%s", i+1, d.Name)
		if d.Name == m.difficulty.Name {
			label = SuccessStyle.Render(label)
		} else {
			label = InfoStyle.Render(label)
		}
		parts[i] = label
	}
	return strings.Join(parts, " ")
}
