package settings

import (
	"io"
	"os"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// InitLogger configures the global zerolog logger. When quiet is set and no log
// file is configured, logs are discarded so they do not draw over a full-screen UI.
// The returned closer releases the log file, if any.
func InitLogger(s *Settings, quiet bool) (io.Closer, error) {
	level, err := zerolog.ParseLevel(s.LogLevel)
	if err != nil {
		return nil, errors.Wrapf(err, "invalid log level %q", s.LogLevel)
	}

	var out io.Writer = os.Stderr
	var closer io.Closer = nopCloser{}
	isFile := false
	switch {
	case s.LogFile != "":
		f, err := os.OpenFile(s.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, errors.Wrapf(err, "failed to open log file %s", s.LogFile)
		}
		out, closer, isFile = f, f, true
	case quiet:
		out = io.Discard
	}

	if s.LogFormat == "text" {
		out = zerolog.ConsoleWriter{Out: out, NoColor: isFile}
	}

	zerolog.SetGlobalLevel(level)
	log.Logger = zerolog.New(out).With().Timestamp().Logger()
	return closer, nil
}
