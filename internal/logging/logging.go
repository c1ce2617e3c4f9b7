// Package logging builds the zerolog logger shared by the simulator
// components.
package logging

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// Config controls logger construction.
type Config struct {
	// Level is a zerolog level name; empty means info.
	Level string `json:"level,omitempty" yaml:"level,omitempty"`
	// Console switches from JSON lines to the human readable console writer.
	Console bool `json:"console,omitempty" yaml:"console,omitempty"`
}

// DefaultConfig returns console logging at warn level, which keeps the
// simulator output readable.
func DefaultConfig() Config {
	return Config{Level: zerolog.WarnLevel.String(), Console: true}
}

// Validate checks the level name.
func (c *Config) Validate() error {
	if c.Level == "" {
		return nil
	}
	if _, err := zerolog.ParseLevel(strings.ToLower(c.Level)); err != nil {
		return fmt.Errorf("invalid log level %q: %w", c.Level, err)
	}
	return nil
}

// New creates a logger writing to w (stderr when nil).
func New(config Config, w io.Writer) (zerolog.Logger, error) {
	if w == nil {
		w = os.Stderr
	}
	level := zerolog.InfoLevel
	if config.Level != "" {
		parsed, err := zerolog.ParseLevel(strings.ToLower(config.Level))
		if err != nil {
			return zerolog.Nop(), fmt.Errorf("invalid log level %q: %w", config.Level, err)
		}
		level = parsed
	}
	if config.Console {
		w = zerolog.ConsoleWriter{Out: w, TimeFormat: time.TimeOnly, NoColor: true}
	}
	return zerolog.New(w).Level(level).With().Timestamp().Logger(), nil
}
