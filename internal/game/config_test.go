package game

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name  string
		cfg   Config
		field string
	}{
		{"default alphabet", Config{Pairs: 12}, ""},
		{"whole default alphabet", Config{Pairs: len(DefaultAlphabet)}, ""},
		{"exact alphabet", Config{Pairs: 2, Alphabet: []Symbol{"x", "y"}}, ""},
		{"zero pairs", Config{Pairs: 0}, "pairs"},
		{"one pair", Config{Pairs: 1}, "pairs"},
		{"negative pairs", Config{Pairs: -3}, "pairs"},
		{"too many pairs", Config{Pairs: len(DefaultAlphabet) + 1}, "alphabet"},
		{"small alphabet", Config{Pairs: 3, Alphabet: []Symbol{"x", "y"}}, "alphabet"},
		{"duplicate symbol", Config{Pairs: 2, Alphabet: []Symbol{"x", "y", "x"}}, "alphabet"},
		{"empty symbol", Config{Pairs: 2, Alphabet: []Symbol{"x", ""}}, "alphabet"},
		{"negative timing", Config{Pairs: 2, Timing: Timing{MismatchCue: -time.Second}}, "timing"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.field == "" {
				assert.NoError(t, err)
				return
			}
			var cfgErr *ConfigError
			require.ErrorAs(t, err, &cfgErr)
			assert.Equal(t, tt.field, cfgErr.Field)
			assert.Contains(t, err.Error(), tt.field)
		})
	}
}

func TestTimingDefaults(t *testing.T) {
	assert.Equal(t, DefaultTiming(), Timing{}.withDefaults())

	custom := Timing{MatchSettle: time.Second}.withDefaults()
	assert.Equal(t, time.Second, custom.MatchSettle)
	assert.Equal(t, DefaultMismatchCue, custom.MismatchCue)
	assert.Equal(t, DefaultMismatchSettle, custom.MismatchSettle)
}

func TestDefaultAlphabetIsUsable(t *testing.T) {
	seen := make(map[Symbol]bool)
	for _, s := range DefaultAlphabet {
		assert.NotEmpty(t, s)
		assert.False(t, seen[s], "duplicate %s", s)
		seen[s] = true
	}
	assert.Len(t, DefaultAlphabet, 30)
}

func TestPresets(t *testing.T) {
	presets := Presets()
	require.Len(t, presets, 3)
	assert.Equal(t, "easy", presets[0].Name)
	assert.Equal(t, 6, presets[0].Pairs)
	assert.Equal(t, 8, presets[1].Pairs)
	assert.Equal(t, 12, presets[2].Pairs)
	assert.Equal(t, 6, presets[2].Columns)

	for _, d := range presets {
		assert.NoError(t, d.Config().Validate(), d.Name)
		assert.Zero(t, (d.Pairs*2)%d.Columns, "%s fills its rows", d.Name)
	}

	presets[0].Pairs = 99
	assert.Equal(t, 6, Presets()[0].Pairs, "presets are copied")

	d, ok := LookupDifficulty(DefaultDifficulty)
	require.True(t, ok)
	assert.Equal(t, "medium", d.Config().Name)

	_, ok = LookupDifficulty("impossible")
	assert.False(t, ok)
}
