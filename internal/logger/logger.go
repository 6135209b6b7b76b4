package logger

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/lshigami/mockinterview/config"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Init installs a console logger on the global zerolog instance so that
// anything logged before the configuration is loaded is still readable.
func Init() {
	zerolog.TimeFieldFormat = time.RFC3339
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	log.Logger = zerolog.New(newWriter("console", os.Stderr)).With().Timestamp().Logger()
}

// Configure applies the level and output format from cfg to the global logger.
func Configure(cfg *config.Config) {
	level, err := zerolog.ParseLevel(strings.ToLower(strings.TrimSpace(cfg.Log.Level)))
	if err != nil || level == zerolog.NoLevel {
		log.Warn().Str("level", cfg.Log.Level).Msg("Unknown LOG_LEVEL, falling back to info")
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)
	log.Logger = zerolog.New(newWriter(cfg.Log.Format, os.Stderr)).With().Timestamp().Logger()
	log.Debug().Str("level", level.String()).Str("format", cfg.Log.Format).Msg("Logger configured")
}

func newWriter(format string, out io.Writer) io.Writer {
	if strings.EqualFold(format, "json") {
		return out
	}
	return zerolog.ConsoleWriter{Out: out, TimeFormat: time.Kitchen}
}
