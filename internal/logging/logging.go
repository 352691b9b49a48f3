// SPDX-License-Identifier: MIT

// Package logging builds the zerolog loggers used by the command line
// and the pipeline.
package logging

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// ErrFormat reports an unknown output format.
var ErrFormat = errors.New("logging: unknown format")

// Config selects the level, format and destination of a logger.
type Config struct {
	Level  string    // debug, info, warn, error; empty means info
	Format string    // json or text; empty means text
	Output io.Writer // defaults to os.Stderr
}

// New returns a logger for cfg with timestamps and a component-free root
// context. Text output uses zerolog's console writer without colours.
func New(cfg Config) (zerolog.Logger, error) {
	level := zerolog.InfoLevel
	if cfg.Level != "" {
		var err error
		if level, err = zerolog.ParseLevel(strings.ToLower(cfg.Level)); err != nil {
			return zerolog.Nop(), fmt.Errorf("logging: level %q: %w", cfg.Level, err)
		}
	}
	out := cfg.Output
	if out == nil {
		out = os.Stderr
	}

	switch strings.ToLower(cfg.Format) {
	case "json":
	case "", "text", "console":
		out = zerolog.ConsoleWriter{Out: out, NoColor: true, TimeFormat: time.TimeOnly}
	default:
		return zerolog.Nop(), fmt.Errorf("%w: %q", ErrFormat, cfg.Format)
	}

	return zerolog.New(out).Level(level).With().Timestamp().Logger(), nil
}

// Component derives a child logger tagged with name.
func Component(l zerolog.Logger, name string) zerolog.Logger {
	return l.With().Str("component", name).Logger()
}
