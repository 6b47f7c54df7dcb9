package logger

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
	zlog "github.com/rs/zerolog/log"
)

// Logger is the process-wide root logger. Components receive it (or a
// child with extra context) at construction rather than importing it.
var Logger zerolog.Logger

// Init configures the root logger from LOG_LEVEL and LOG_FORMAT and
// mirrors it into zerolog's global.
func Init() {
	InitWithWriter(os.Stdout)
}

func InitWithWriter(w io.Writer) {
	if os.Getenv("LOG_FORMAT") != "json" {
		w = zerolog.ConsoleWriter{Out: w, TimeFormat: time.RFC3339}
	}

	Logger = zerolog.New(w).
		With().Timestamp().
		Logger().Level(parseLevel(os.Getenv("LOG_LEVEL")))

	zlog.Logger = Logger
}

// parseLevel falls back to info on empty or unparseable input.
func parseLevel(s string) zerolog.Level {
	if s == "" {
		return zerolog.InfoLevel
	}
	level, err := zerolog.ParseLevel(s)
	if err != nil {
		return zerolog.InfoLevel
	}
	return level
}
