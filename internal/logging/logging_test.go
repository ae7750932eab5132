package logging

import (
	"bytes"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

func TestParseLevel(t *testing.T) {
	tests := map[string]zerolog.Level{
		"trace":   zerolog.TraceLevel,
		"DEBUG":   zerolog.DebugLevel,
		"Info":    zerolog.InfoLevel,
		"warn":    zerolog.WarnLevel,
		"warning": zerolog.WarnLevel,
		"error":   zerolog.ErrorLevel,
		" debug ": zerolog.DebugLevel,
		"":        zerolog.InfoLevel,
		"verbose": zerolog.InfoLevel,
	}
	for in, want := range tests {
		assert.Equal(t, want, ParseLevel(in), "level %q", in)
	}
}

func TestSetupFiltersByLevel(t *testing.T) {
	var buf bytes.Buffer
	log := Setup("warn", &buf)

	log.Info().Msg("hidden message")
	assert.Empty(t, buf.String())

	log.Warn().Msg("visible message")
	assert.Contains(t, buf.String(), "visible message")
}

func TestComponent(t *testing.T) {
	var buf bytes.Buffer
	log := Component(Setup("debug", &buf), "marker")

	log.Debug().Int("live", 3).Msg("tick")
	out := buf.String()
	assert.Contains(t, out, "component=marker")
	assert.Contains(t, out, "live=3")
	assert.Contains(t, out, "tick")
}
