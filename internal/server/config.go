package server

import (
	"fmt"
	"os"
	"time"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/lox/concentration/internal/game"
)

// ServerConfig represents the complete server configuration
type ServerConfig struct {
	Server       *ServerSettings    `hcl:"server,block"`
	Timing       *TimingConfig      `hcl:"timing,block"`
	Difficulties []DifficultyConfig `hcl:"difficulty,block"`
	Alphabet     []string           `hcl:"alphabet,optional"`
}

// ServerSettings contains server-level configuration
type ServerSettings struct {
	Address           string `hcl:"address,optional"`
	Port              int    `hcl:"port,optional"`
	LogLevel          string `hcl:"log_level,optional"`
	Seed              int64  `hcl:"seed,optional"`
	DefaultDifficulty string `hcl:"default_difficulty,optional"`
}

// TimingConfig overrides the settle delays, in milliseconds
type TimingConfig struct {
	MatchSettleMS    int `hcl:"match_settle_ms,optional"`
	MismatchCueMS    int `hcl:"mismatch_cue_ms,optional"`
	MismatchSettleMS int `hcl:"mismatch_settle_ms,optional"`
}

// DifficultyConfig adds a difficulty or overrides a built-in preset of the same name
type DifficultyConfig struct {
	Name    string `hcl:"name,label"`
	Pairs   int    `hcl:"pairs"`
	Columns int    `hcl:"columns,optional"`
}

const (
	defaultAddress  = "localhost"
	defaultPort     = 8080
	defaultLogLevel = "info"
)

// DefaultServerConfig returns default server configuration
func DefaultServerConfig() *ServerConfig {
	return &ServerConfig{
		Server: &ServerSettings{
			Address:           defaultAddress,
			Port:              defaultPort,
			LogLevel:          defaultLogLevel,
			DefaultDifficulty: game.DefaultDifficulty,
		},
	}
}

// LoadServerConfig loads server configuration from HCL file
func LoadServerConfig(filename string) (*ServerConfig, error) {
	// Check if file exists
	if _, err := os.Stat(filename); os.IsNotExist(err) {
		return DefaultServerConfig(), nil
	}

	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL file: %s", diags.Error())
	}

	var config ServerConfig
	diags = gohcl.DecodeBody(file.Body, nil, &config)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode HCL: %s", diags.Error())
	}

	// Apply defaults for missing values
	if config.Server == nil {
		config.Server = &ServerSettings{}
	}
	if config.Server.Address == "" {
		config.Server.Address = defaultAddress
	}
	if config.Server.Port == 0 {
		config.Server.Port = defaultPort
	}
	if config.Server.LogLevel == "" {
		config.Server.LogLevel = defaultLogLevel
	}
	if config.Server.DefaultDifficulty == "" {
		config.Server.DefaultDifficulty = game.DefaultDifficulty
	}
	for i := range config.Difficulties {
		if config.Difficulties[i].Columns == 0 {
			config.Difficulties[i].Columns = 4
		}
	}

	return &config, nil
}

// Validate validates the server configuration
func (c *ServerConfig) Validate() error {
	if c.Server == nil {
		return fmt.Errorf("missing server settings")
	}
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid port: %d", c.Server.Port)
	}

	switch c.Server.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("invalid log level: %s", c.Server.LogLevel)
	}

	if c.Timing != nil {
		if c.Timing.MatchSettleMS < 0 || c.Timing.MismatchCueMS < 0 || c.Timing.MismatchSettleMS < 0 {
			return fmt.Errorf("timing: delays must not be negative")
		}
	}

	seen := make(map[string]bool)
	for _, d := range c.Difficulties {
		if seen[d.Name] {
			return fmt.Errorf("difficulty %s: defined more than once", d.Name)
		}
		seen[d.Name] = true
		if d.Columns < 1 {
			return fmt.Errorf("difficulty %s: columns must be positive", d.Name)
		}
	}

	for _, d := range c.DifficultyList() {
		if err := c.GameConfig(d).Validate(); err != nil {
			return fmt.Errorf("difficulty %s: %w", d.Name, err)
		}
	}

	if _, ok := c.LookupDifficulty(c.Server.DefaultDifficulty); !ok {
		return fmt.Errorf("default difficulty %s is not defined", c.Server.DefaultDifficulty)
	}

	return nil
}

// GetServerAddress returns the full server address
func (c *ServerConfig) GetServerAddress() string {
	return fmt.Sprintf("%s:%d", c.Server.Address, c.Server.Port)
}

// DifficultyList returns the built-in presets with configured overrides applied,
// followed by any new difficulties in file order
func (c *ServerConfig) DifficultyList() []game.Difficulty {
	list := game.Presets()
	index := make(map[string]int, len(list))
	for i, d := range list {
		index[d.Name] = i
	}
	for _, dc := range c.Difficulties {
		d := game.Difficulty{Name: dc.Name, Pairs: dc.Pairs, Columns: dc.Columns}
		if i, ok := index[dc.Name]; ok {
			list[i] = d
			continue
		}
		index[dc.Name] = len(list)
		list = append(list, d)
	}
	return list
}

// LookupDifficulty returns a difficulty by name
func (c *ServerConfig) LookupDifficulty(name string) (game.Difficulty, bool) {
	for _, d := range c.DifficultyList() {
		if d.Name == name {
			return d, true
		}
	}
	return game.Difficulty{}, false
}

// GameConfig builds the session configuration for a difficulty, applying the
// configured alphabet and timing
func (c *ServerConfig) GameConfig(d game.Difficulty) game.Config {
	cfg := d.Config()
	if len(c.Alphabet) > 0 {
		cfg.Alphabet = make([]game.Symbol, len(c.Alphabet))
		for i, s := range c.Alphabet {
			cfg.Alphabet[i] = game.Symbol(s)
		}
	}
	if c.Timing != nil {
		cfg.Timing = game.Timing{
			MatchSettle:    time.Duration(c.Timing.MatchSettleMS) * time.Millisecond,
			MismatchCue:    time.Duration(c.Timing.MismatchCueMS) * time.Millisecond,
			MismatchSettle: time.Duration(c.Timing.MismatchSettleMS) * time.Millisecond,
		}
	}
	return cfg
}
