package logger

import (
	"bytes"
	"testing"

	"github.com/lshigami/mockinterview/config"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

func TestConfigureLevel(t *testing.T) {
	t.Cleanup(func() { zerolog.SetGlobalLevel(zerolog.InfoLevel) })

	Configure(&config.Config{Log: config.Log{Level: "debug", Format: "json"}})
	assert.Equal(t, zerolog.DebugLevel, zerolog.GlobalLevel())

	Configure(&config.Config{Log: config.Log{Level: "nonsense"}})
	assert.Equal(t, zerolog.InfoLevel, zerolog.GlobalLevel())
}

func TestNewWriterJSONPassesThrough(t *testing.T) {
	var buf bytes.Buffer
	assert.Same(t, &buf, newWriter("JSON", &buf))

	_, isConsole := newWriter("console", &buf).(zerolog.ConsoleWriter)
	assert.True(t, isConsole)
}
