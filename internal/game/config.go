package game

import (
	"fmt"
	"time"
)

// Default settle delays. The mismatch path waits MismatchCue before signalling the
// mismatch, then MismatchSettle before hiding the cards again.
const (
	DefaultMatchSettle    = 300 * time.Millisecond
	DefaultMismatchCue    = 800 * time.Millisecond
	DefaultMismatchSettle = 500 * time.Millisecond
)

// MinPairs is the smallest playable board
const MinPairs = 2

// DefaultAlphabet is the symbol set used when a configuration does not supply one
var DefaultAlphabet = []Symbol{
	"🎮", "🎯", "🎨", "🎭", "🎪", "🎬",
	"🎵", "🎸", "🎹", "🎺", "🎻", "🥁",
	"⚽", "🏀", "🏈", "🎾", "🏐", "🎱",
	"🌟", "🌙", "☀️", "🌈", "❄️", "🔥",
	"🦋", "🐬", "🦊", "🐼", "🦄", "🐲",
}

// Timing holds the settle delays applied while a pair is resolving
type Timing struct {
	MatchSettle    time.Duration
	MismatchCue    time.Duration
	MismatchSettle time.Duration
}

// DefaultTiming returns the standard settle delays
func DefaultTiming() Timing {
	return Timing{
		MatchSettle:    DefaultMatchSettle,
		MismatchCue:    DefaultMismatchCue,
		MismatchSettle: DefaultMismatchSettle,
	}
}

func (t Timing) withDefaults() Timing {
	if t.MatchSettle == 0 {
		t.MatchSettle = DefaultMatchSettle
	}
	if t.MismatchCue == 0 {
		t.MismatchCue = DefaultMismatchCue
	}
	if t.MismatchSettle == 0 {
		t.MismatchSettle = DefaultMismatchSettle
	}
	return t
}

// Config describes a session. Name is informational and carried into snapshots.
type Config struct {
	Name     string
	Pairs    int
	Alphabet []Symbol
	Timing   Timing
}

// ConfigError reports an unusable session configuration
type ConfigError struct {
	Field  string
	Reason string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("invalid config: %s: %s", e.Field, e.Reason)
}

// Validate checks the configuration. The returned error is always a *ConfigError.
func (c Config) Validate() error {
	if c.Pairs < MinPairs {
		return &ConfigError{Field: "pairs", Reason: fmt.Sprintf("must be at least %d, got %d", MinPairs, c.Pairs)}
	}
	alphabet := c.alphabet()
	if len(alphabet) < c.Pairs {
		return &ConfigError{Field: "alphabet", Reason: fmt.Sprintf("%d symbols cannot cover %d pairs", len(alphabet), c.Pairs)}
	}
	seen := make(map[Symbol]bool, len(alphabet))
	for _, s := range alphabet {
		if s == "" {
			return &ConfigError{Field: "alphabet", Reason: "empty symbol"}
		}
		if seen[s] {
			return &ConfigError{Field: "alphabet", Reason: fmt.Sprintf("duplicate symbol %q", s)}
		}
		seen[s] = true
	}
	if c.Timing.MatchSettle < 0 || c.Timing.MismatchCue < 0 || c.Timing.MismatchSettle < 0 {
		return &ConfigError{Field: "timing", Reason: "delays must not be negative"}
	}
	return nil
}

func (c Config) alphabet() []Symbol {
	if len(c.Alphabet) == 0 {
		return DefaultAlphabet
	}
	return c.Alphabet
}

// Difficulty is a named board size. Columns is layout advice for renderers.
type Difficulty struct {
	Name    string
	Pairs   int
	Columns int
}

// Config returns a session configuration for the difficulty using the default alphabet
func (d Difficulty) Config() Config {
	return Config{Name: d.Name, Pairs: d.Pairs}
}

var presets = []Difficulty{
	{Name: "easy", Pairs: 6, Columns: 4},
	{Name: "medium", Pairs: 8, Columns: 4},
	{Name: "hard", Pairs: 12, Columns: 6},
}

// DefaultDifficulty is the preset used when none is chosen
const DefaultDifficulty = "medium"

// Presets returns the built-in difficulties, easiest first
func Presets() []Difficulty {
	out := make([]Difficulty, len(presets))
	copy(out, presets)
	return out
}

// LookupDifficulty returns the preset with the given name
func LookupDifficulty(name string) (Difficulty, bool) {
	for _, d := range presets {
		if d.Name == name {
			return d, true
		}
	}
	return Difficulty{}, false
}
