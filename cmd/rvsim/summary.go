package main

import (
	"io"
	"log/slog"

	"github.com/jeandeaual/go-locale"
	"golang.org/x/text/message"
)

// newPrinter returns a message printer for the user's locale.
func newPrinter(logger *slog.Logger) *message.Printer {
	locales, err := locale.GetLocales()
	if err != nil {
		logger.Debug("locale lookup failed", "error", err)
	}

	if len(locales) == 0 {
		locales = []string{"en-US"}
	}

	return message.NewPrinter(message.MatchLanguage(locales...))
}

// writeSummary prints the totals of a suite run followed by each failure.
func writeSummary(w io.Writer, p *message.Printer, outcomes []outcome) {
	var passed int
	var instructions uint64
	for _, out := range outcomes {
		if out.err == nil {
			passed++
		}
		instructions += out.instructions
	}

	p.Fprintf(w, "%d of %d programs passed, %d instructions executed\n",
		passed, len(outcomes), instructions)

	for _, out := range outcomes {
		if out.err != nil {
			p.Fprintf(w, "FAIL %s: %v\n", out.path, out.err)
		}
	}
}
