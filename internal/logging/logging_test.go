// SPDX-License-Identifier: MIT

package logging_test

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/lvlasm/internal/logging"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name   string
		format string
		level  string
	}{
		{"JSON info", "json", "info"},
		{"JSON debug", "json", "DEBUG"},
		{"text default", "", ""},
		{"console warn", "console", "warn"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			l, err := logging.New(logging.Config{Format: tt.format, Level: tt.level, Output: &buf})
			require.NoError(t, err)
			l.Error().Msg("heartbeat")
			assert.Contains(t, buf.String(), "heartbeat")
		})
	}
}

func TestNew_Errors(t *testing.T) {
	_, err := logging.New(logging.Config{Level: "loud"})
	assert.Error(t, err)

	_, err = logging.New(logging.Config{Format: "xml"})
	assert.ErrorIs(t, err, logging.ErrFormat)
}

func TestLevelFilteringAndComponent(t *testing.T) {
	var buf bytes.Buffer
	l, err := logging.New(logging.Config{Format: "json", Level: "warn", Output: &buf})
	require.NoError(t, err)

	l.Info().Msg("dropped")
	assert.Zero(t, buf.Len())

	cl := logging.Component(l, "chain")
	cl.Warn().Int("queries", 3).Msg("kept")
	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "chain", entry["component"])
	assert.Equal(t, "kept", entry["message"])
	assert.EqualValues(t, 3, entry["queries"])
}
