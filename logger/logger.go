package logger

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Logger is usable before Init; it writes JSON to stdout.
var Logger = zerolog.New(os.Stdout).With().Timestamp().Logger()

// Init sets up the global logger on stdout. Development mode pretty prints.
func Init(serviceName string, isDevelopment bool) {
	InitTo(os.Stdout, serviceName, isDevelopment)
}

// InitTo is Init with an explicit destination, used by the CLI to keep
// logs off the rendered output.
func InitTo(w io.Writer, serviceName string, isDevelopment bool) {
	zerolog.TimeFieldFormat = time.RFC3339Nano

	output := w
	if isDevelopment {
		output = zerolog.ConsoleWriter{
			Out:        w,
			TimeFormat: "15:04:05",
		}
	}

	Logger = zerolog.New(output).
		With().
		Timestamp().
		Str("service", serviceName).
		Logger()

	log.Logger = Logger
}

// SetLevel sets the global log level; unknown names mean info.
func SetLevel(level string) {
	switch level {
	case "debug":
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	case "warn":
		zerolog.SetGlobalLevel(zerolog.WarnLevel)
	case "error":
		zerolog.SetGlobalLevel(zerolog.ErrorLevel)
	case "disabled":
		zerolog.SetGlobalLevel(zerolog.Disabled)
	default:
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}
}
