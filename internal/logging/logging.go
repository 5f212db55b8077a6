// Package logging configures the process-wide slog logger.
package logging

import (
	"io"
	"log/slog"
	"os"

	charmlog "github.com/charmbracelet/log"
	"golang.org/x/term"
)

// Setup initializes the global slog logger using charmbracelet/log as the backend,
// writing to w. A terminal gets colored text; anything else gets JSON lines.
// Diagnostics only: user-facing command output goes to stdout, not here.
func Setup(w io.Writer, verbose bool) {
	slog.SetDefault(slog.New(NewHandler(w, verbose)))
}

// NewHandler builds the charmbracelet/log handler used by Setup.
func NewHandler(w io.Writer, verbose bool) *charmlog.Logger {
	handler := charmlog.NewWithOptions(w, charmlog.Options{
		ReportTimestamp: true,
		Prefix:          "issuecloser",
	})

	if verbose {
		handler.SetLevel(charmlog.DebugLevel)
	} else {
		handler.SetLevel(charmlog.InfoLevel)
	}

	if !isTerminal(w) {
		handler.SetFormatter(charmlog.JSONFormatter)
	}

	return handler
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}
