package game

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"github.com/lox/concentration/internal/randutil"
)

// Phase is the lifecycle stage of a session
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseRunning
	PhaseResolving
	PhaseComplete
)

// String returns the string representation of a phase
func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseRunning:
		return "running"
	case PhaseResolving:
		return "resolving"
	case PhaseComplete:
		return "complete"
	default:
		return "unknown"
	}
}

// MarshalText encodes the phase by name
func (p Phase) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

// FlipStatus is the outcome of a flip request. Only Accepted changes state.
type FlipStatus int

const (
	Accepted FlipStatus = iota
	Locked
	InvalidCard
	GameOver
)

// String returns the string representation of a flip status
func (s FlipStatus) String() string {
	switch s {
	case Accepted:
		return "accepted"
	case Locked:
		return "locked"
	case InvalidCard:
		return "invalid_card"
	case GameOver:
		return "game_over"
	default:
		return "unknown"
	}
}

// MarshalText encodes the status by name
func (s FlipStatus) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// ErrNoSession is returned by Reset before any session has been started
var ErrNoSession = errors.New("no session started")

// errStaleTicker stops a ticker whose session has ended
var errStaleTicker = errors.New("stale ticker")

// timer tags, used to trap clock calls in tests
const (
	tagTicker      = "ticker"
	tagMatch       = "match"
	tagMismatchCue = "mismatch-cue"
	tagMismatch    = "mismatch"
)

type session struct {
	config       Config
	generation   uint64
	cards        []Card
	pairsTotal   int
	pairsMatched int
	moves        int
	elapsed      int
	phase        Phase
	pending      []int
}

// Snapshot is a copy of the observable session state
type Snapshot struct {
	Name           string     `json:"name,omitempty"`
	Cards          []CardView `json:"cards"`
	PairsTotal     int        `json:"pairsTotal"`
	PairsMatched   int        `json:"pairsMatched"`
	Moves          int        `json:"moves"`
	ElapsedSeconds int        `json:"elapsedSeconds"`
	Phase          Phase      `json:"phase"`
	Pending        []int      `json:"pending"`
}

// GameEngine owns a single memory game session and its turn-resolution state machine.
// A new session replaces the previous one entirely; callbacks scheduled by an earlier
// session never touch a later one.
type GameEngine struct {
	mu       sync.Mutex
	clock    quartz.Clock
	rng      RandomSource
	renderer Renderer
	logger   *log.Logger

	session    *session
	generation uint64
	settle     *quartz.Timer
	stopTicker context.CancelFunc
}

// Option configures a GameEngine
type Option func(*GameEngine)

// WithClock sets the clock used for settle delays and the elapsed-time ticker
func WithClock(clock quartz.Clock) Option {
	return func(e *GameEngine) { e.clock = clock }
}

// WithRandom sets the source used to pick symbols and shuffle the board
func WithRandom(rng RandomSource) Option {
	return func(e *GameEngine) { e.rng = rng }
}

// WithRenderer sets the notification target
func WithRenderer(r Renderer) Option {
	return func(e *GameEngine) { e.renderer = r }
}

// WithLogger sets the logger
func WithLogger(logger *log.Logger) Option {
	return func(e *GameEngine) { e.logger = logger }
}

// NewGameEngine creates an engine with no session. Call StartSession before flipping.
func NewGameEngine(opts ...Option) *GameEngine {
	e := &GameEngine{
		clock:    quartz.NewReal(),
		renderer: NopRenderer{},
		logger:   log.New(io.Discard),
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.rng == nil {
		e.rng = randutil.New(time.Now().UnixNano())
	}
	e.logger = e.logger.WithPrefix("engine")
	return e
}

// StartSession discards any current session, including its timers, and deals a new
// board. Configuration errors are returned as *ConfigError and leave the current
// session untouched.
func (e *GameEngine) StartSession(cfg Config) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	cfg.Alphabet = append([]Symbol(nil), cfg.alphabet()...)
	cfg.Timing = cfg.Timing.withDefaults()

	e.mu.Lock()
	defer e.mu.Unlock()
	e.startLocked(cfg)
	return nil
}

// Reset starts a new session with the last used configuration
func (e *GameEngine) Reset() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.session == nil {
		return ErrNoSession
	}
	e.startLocked(e.session.config)
	return nil
}

// Close cancels outstanding timers and drops the session
func (e *GameEngine) Close() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.cancelTimersLocked()
	e.generation++
	e.session = nil
}

func (e *GameEngine) startLocked(cfg Config) {
	e.cancelTimersLocked()
	e.generation++

	symbols := choose(e.rng, cfg.Alphabet, cfg.Pairs)
	s := &session{
		config:     cfg,
		generation: e.generation,
		cards:      deal(e.rng, symbols),
		pairsTotal: cfg.Pairs,
		phase:      PhaseIdle,
		pending:    make([]int, 0, 2),
	}
	e.session = s

	e.logger.Debug("Session started", "session", s.generation, "name", cfg.Name, "pairs", cfg.Pairs)

	e.renderer.OnLayout(viewsOf(s.cards))
	e.renderer.OnMoveCountChanged(0)
	e.renderer.OnTimeChanged(0)
	e.renderer.OnPairsChanged(0, s.pairsTotal)
}

// Flip reveals a card. Rejected flips are not errors: they return Locked, InvalidCard
// or GameOver and leave the session unchanged.
func (e *GameEngine) Flip(cardID int) FlipStatus {
	e.mu.Lock()
	defer e.mu.Unlock()

	s := e.session
	if s == nil {
		return InvalidCard
	}
	switch s.phase {
	case PhaseComplete:
		return GameOver
	case PhaseResolving:
		return Locked
	}
	if cardID < 0 || cardID >= len(s.cards) || s.cards[cardID].State != Hidden {
		return InvalidCard
	}

	if s.phase == PhaseIdle {
		s.phase = PhaseRunning
		e.startTickerLocked(s.generation)
	}

	card := &s.cards[cardID]
	card.State = Revealed
	s.pending = append(s.pending, cardID)
	e.logger.Debug("Card flipped", "session", s.generation, "card", cardID, "pending", len(s.pending))
	e.renderer.OnReveal(cardID, card.Symbol)

	switch len(s.pending) {
	case 1:
	case 2:
		s.moves++
		e.renderer.OnMoveCountChanged(s.moves)
		s.phase = PhaseResolving
		e.resolveLocked(s)
	default:
		panic(fmt.Sprintf("game: %d cards pending", len(s.pending)))
	}
	return Accepted
}

// resolveLocked schedules the settle chain for the two pending cards
func (e *GameEngine) resolveLocked(s *session) {
	first, second := s.pending[0], s.pending[1]
	gen := s.generation
	if s.cards[first].Symbol == s.cards[second].Symbol {
		e.settle = e.clock.AfterFunc(s.config.Timing.MatchSettle, func() { e.settleMatch(gen) }, tagMatch)
		return
	}
	e.settle = e.clock.AfterFunc(s.config.Timing.MismatchCue, func() { e.signalMismatch(gen) }, tagMismatchCue)
}

// resolving returns the session for gen if it is still waiting on a settle callback
func (e *GameEngine) resolving(gen uint64) *session {
	s := e.session
	if s == nil || s.generation != gen || s.phase != PhaseResolving {
		e.logger.Debug("Ignoring stale settle callback", "session", gen)
		return nil
	}
	return s
}

func (e *GameEngine) settleMatch(gen uint64) {
	e.mu.Lock()
	defer e.mu.Unlock()

	s := e.resolving(gen)
	if s == nil {
		return
	}
	e.settle = nil

	for _, id := range s.pending {
		s.cards[id].State = Matched
		e.renderer.OnMatched(id)
	}
	s.pending = s.pending[:0]
	s.pairsMatched++
	e.renderer.OnPairsChanged(s.pairsMatched, s.pairsTotal)
	e.checkLocked(s)

	if s.pairsMatched < s.pairsTotal {
		s.phase = PhaseRunning
		return
	}

	s.phase = PhaseComplete
	e.stopTickerLocked()
	result := Result{
		ElapsedSeconds: s.elapsed,
		Moves:          s.moves,
		PairsTotal:     s.pairsTotal,
		Rating:         RateMoves(s.moves, s.pairsTotal),
	}
	e.logger.Info("Session complete",
		"session", s.generation,
		"moves", result.Moves,
		"time", FormatElapsed(result.ElapsedSeconds),
		"rating", result.Rating)
	e.renderer.OnComplete(result)
}

func (e *GameEngine) signalMismatch(gen uint64) {
	e.mu.Lock()
	defer e.mu.Unlock()

	s := e.resolving(gen)
	if s == nil {
		return
	}
	e.renderer.OnMismatch(s.pending[0], s.pending[1])
	e.settle = e.clock.AfterFunc(s.config.Timing.MismatchSettle, func() { e.settleMismatch(gen) }, tagMismatch)
}

func (e *GameEngine) settleMismatch(gen uint64) {
	e.mu.Lock()
	defer e.mu.Unlock()

	s := e.resolving(gen)
	if s == nil {
		return
	}
	e.settle = nil

	for _, id := range s.pending {
		s.cards[id].State = Hidden
		e.renderer.OnHide(id)
	}
	s.pending = s.pending[:0]
	s.phase = PhaseRunning
	e.checkLocked(s)
}

func (e *GameEngine) startTickerLocked(gen uint64) {
	ctx, cancel := context.WithCancel(context.Background())
	e.stopTicker = cancel
	e.clock.TickerFunc(ctx, time.Second, func() error { return e.tick(gen) }, tagTicker)
}

func (e *GameEngine) tick(gen uint64) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	s := e.session
	if s == nil || s.generation != gen || (s.phase != PhaseRunning && s.phase != PhaseResolving) {
		return errStaleTicker
	}
	s.elapsed++
	e.renderer.OnTimeChanged(s.elapsed)
	return nil
}

// stopTickerLocked is safe to call any number of times
func (e *GameEngine) stopTickerLocked() {
	if e.stopTicker != nil {
		e.stopTicker()
		e.stopTicker = nil
	}
}

func (e *GameEngine) cancelTimersLocked() {
	if e.settle != nil {
		e.settle.Stop()
		e.settle = nil
	}
	e.stopTickerLocked()
}

// checkLocked panics if the session's counters disagree with its cards
func (e *GameEngine) checkLocked(s *session) {
	matched := 0
	for _, c := range s.cards {
		if c.State == Matched {
			matched++
		}
	}
	if matched != 2*s.pairsMatched || s.pairsMatched > s.pairsTotal || len(s.pending) > 2 {
		panic(fmt.Sprintf("game: inconsistent session: %d matched cards, %d/%d pairs, %d pending",
			matched, s.pairsMatched, s.pairsTotal, len(s.pending)))
	}
}

// Snapshot returns a copy of the current session. ok is false before the first session.
func (e *GameEngine) Snapshot() (snap Snapshot, ok bool) {
	e.mu.Lock()
	defer e.mu.Unlock()

	s := e.session
	if s == nil {
		return Snapshot{}, false
	}
	return Snapshot{
		Name:           s.config.Name,
		Cards:          viewsOf(s.cards),
		PairsTotal:     s.pairsTotal,
		PairsMatched:   s.pairsMatched,
		Moves:          s.moves,
		ElapsedSeconds: s.elapsed,
		Phase:          s.phase,
		Pending:        append([]int(nil), s.pending...),
	}, true
}

// Config returns the configuration of the current session
func (e *GameEngine) Config() (Config, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.session == nil {
		return Config{}, false
	}
	return e.session.config, true
}

// Started reports whether the current session has seen its first flip
func (e *GameEngine) Started() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.session != nil && e.session.phase != PhaseIdle
}
