// Package config loads the betlog configuration from a YAML file.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/etnz/betlog"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

// Config is the content of a betlog configuration file.
type Config struct {
	// Currency of the ledger, an ISO 4217 code.
	Currency string `yaml:"currency"`
	// InitialBalance is the balance of a new ledger.
	InitialBalance Amount `yaml:"initialBalance"`
	// Transitions is the status transition policy: "reverse" or "strict".
	Transitions string `yaml:"transitions"`
	Store       Store  `yaml:"store"`
	Log         Log    `yaml:"log"`
}

// Store selects the persistence backend.
type Store struct {
	Backend string `yaml:"backend"` // file, sqlite, badger or memory
	Path    string `yaml:"path"`    // defaults depend on the backend
}

// Log configures logging.
type Log struct {
	Level      string `yaml:"level"`
	File       string `yaml:"file"`       // optional, rotated log file
	MaxSize    int    `yaml:"maxSize"`    // megabytes
	MaxBackups int    `yaml:"maxBackups"` // rotated files kept
	MaxAge     int    `yaml:"maxAge"`     // days
	Compress   bool   `yaml:"compress"`
}

// Amount is a decimal read from a YAML scalar without going through float64.
type Amount struct{ decimal.Decimal }

func (a *Amount) UnmarshalYAML(n *yaml.Node) error {
	if n.Kind != yaml.ScalarNode {
		return fmt.Errorf("line %d: amount must be a number", n.Line)
	}
	v, err := decimal.NewFromString(n.Value)
	if err != nil {
		return fmt.Errorf("line %d: invalid amount %q: %w", n.Line, n.Value, err)
	}
	a.Decimal = v
	return nil
}

func (a Amount) MarshalYAML() (any, error) {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!float", Value: a.String()}, nil
}

// Default paths for each backend.
var defaultPaths = map[string]string{
	"file":   "bets.jsonl",
	"sqlite": "bets.db",
	"badger": "bets.badger",
	"memory": "",
}

// Default returns the configuration used when no file exists.
func Default() Config {
	return Config{
		Currency:       "EUR",
		InitialBalance: Amount{decimal.RequireFromString("7.96")},
		Transitions:    "reverse",
		Store:          Store{Backend: "file"},
		Log: Log{
			Level:      "warn",
			MaxSize:    10,
			MaxBackups: 3,
			MaxAge:     28,
		},
	}
}

// Load reads the configuration file at path on top of the defaults. A
// missing file is not an error.
func Load(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return cfg.withDefaults(), nil
	}
	if err != nil {
		return Config{}, fmt.Errorf("could not read config %q: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("could not parse config %q: %w", path, err)
	}
	cfg = cfg.withDefaults()
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("invalid config %q: %w", path, err)
	}
	return cfg, nil
}

func (c Config) withDefaults() Config {
	if c.Store.Path == "" {
		c.Store.Path = defaultPaths[c.Store.Backend]
	}
	return c
}

// Validate checks the configuration values.
func (c Config) Validate() error {
	var errs error
	if len(c.Currency) != 3 {
		errs = errors.Join(errs, fmt.Errorf("currency must be a 3 letters code, got %q", c.Currency))
	}
	if _, err := c.Policy(); err != nil {
		errs = errors.Join(errs, err)
	}
	if _, ok := defaultPaths[c.Store.Backend]; !ok {
		errs = errors.Join(errs, fmt.Errorf("unknown store backend %q", c.Store.Backend))
	}
	return errs
}

// Policy returns the configured status transition policy.
func (c Config) Policy() (betlog.Policy, error) { return betlog.ParsePolicy(c.Transitions) }

// Save writes the configuration to path.
func (c Config) Save(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("could not encode config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("could not write config %q: %w", path, err)
	}
	return nil
}
