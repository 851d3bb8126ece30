package config

import (
	"io"
	"os"
	"time"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// ConfigureLogger sets the global log level and, in development, writes human
// readable output instead of json.
func ConfigureLogger(level string) error {
	return configureLogger(level, GetCurrentEnvironment(), os.Stderr)
}

func configureLogger(level string, environment Environment, out io.Writer) error {
	parsed := zerolog.InfoLevel

	if level != "" {
		var err error

		if parsed, err = zerolog.ParseLevel(level); err != nil {
			return errors.Wrapf(err, "invalid log level %q", level)
		}
	}

	zerolog.SetGlobalLevel(parsed)
	zerolog.TimeFieldFormat = time.RFC3339Nano

	if environment == Development {
		out = zerolog.ConsoleWriter{Out: out, TimeFormat: time.RFC3339}
	}

	log.Logger = zerolog.New(out).With().Timestamp().Logger()
	return nil
}
