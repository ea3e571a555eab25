// Package logging configures the global zerolog logger for the CLI.
package logging

import (
	"fmt"
	"io"
	"time"

	"github.com/GaiaWorld/pt-commit-tool/internal/ui"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// DefaultLevel keeps normal runs quiet apart from the progress lines.
const DefaultLevel = "warn"

// Setup installs a console logger writing to w at the given level.
func Setup(w io.Writer, level string) error {
	if level == "" {
		level = DefaultLevel
	}
	lvl, err := zerolog.ParseLevel(level)
	if err != nil {
		return fmt.Errorf("invalid log level %q: %w", level, err)
	}
	zerolog.SetGlobalLevel(lvl)
	log.Logger = zerolog.New(zerolog.ConsoleWriter{
		Out:        w,
		NoColor:    !ui.IsTerminal(w),
		TimeFormat: time.TimeOnly,
	}).With().Timestamp().Logger()
	return nil
}
