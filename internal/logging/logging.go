package logging

import (
	"io"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/mattn/go-colorable"
	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
)

// New returns the diagnostic logger. With verbose off every event is
// discarded. Each logger is tagged with a fresh game id.
func New(w io.Writer, verbose bool) zerolog.Logger {
	if !verbose {
		return zerolog.Nop()
	}

	noColor := true
	if f, ok := w.(*os.File); ok {
		noColor = !isatty.IsTerminal(f.Fd()) && !isatty.IsCygwinTerminal(f.Fd())
		w = colorable.NewColorable(f)
	}
	cw := zerolog.ConsoleWriter{Out: w, NoColor: noColor, TimeFormat: time.RFC3339}

	return zerolog.New(cw).
		Level(zerolog.DebugLevel).
		With().
		Timestamp().
		Str("game", uuid.NewString()).
		Logger()
}
