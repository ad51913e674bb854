package logger

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetReturnsUsableLogger(t *testing.T) {
	// Callers bind the result to a variable before chaining level methods;
	// the returned value must work that way out of the box.
	l := Get()
	l.Info().Msg("boot")
	assert.Equal(t, zerolog.InfoLevel, l.GetLevel())
}

func TestNewConfiguresLevelAndFormat(t *testing.T) {
	l, err := New("debug", "json")
	require.NoError(t, err)
	assert.Equal(t, zerolog.DebugLevel, l.GetLevel())

	_, err = New("nope", "json")
	assert.Error(t, err)

	_, err = New("info", "xml")
	assert.Error(t, err)
}
