package cli

import (
	"io"
	"os"

	"golang.org/x/term"
)

// printer decides whether user-facing lines get emoji markers. Markers
// are only emitted on an interactive terminal so that CI logs and
// captured output stay plain.
type printer struct {
	decorate bool
}

func newPrinter(w io.Writer) printer {
	f, ok := w.(*os.File)
	return printer{decorate: ok && term.IsTerminal(int(f.Fd()))}
}

// mark returns symbol followed by a space, or "" when not decorating.
func (p printer) mark(symbol string) string {
	if !p.decorate {
		return ""
	}
	return symbol + " "
}
