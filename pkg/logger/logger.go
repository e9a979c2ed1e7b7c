package logger

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
)

func New(env, level string) zerolog.Logger {
	return NewWriter(os.Stdout, env, level)
}

// NewWriter is New with an explicit sink. An unparsable level falls back to the env default.
func NewWriter(w io.Writer, env, level string) zerolog.Logger {
	zerolog.TimeFieldFormat = time.RFC3339
	l := zerolog.New(w).With().Timestamp().Logger()
	if lvl, err := zerolog.ParseLevel(level); err == nil && level != "" {
		return l.Level(lvl)
	}
	if env == "dev" {
		l = l.Level(zerolog.DebugLevel)
	} else {
		l = l.Level(zerolog.InfoLevel)
	}
	return l
}
