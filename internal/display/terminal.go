package display

import (
	"io"
	"os"

	"github.com/mattn/go-isatty"
)

// IsColorTerminal reports whether f is an interactive terminal that should get colour.
// NO_COLOR disables colour everywhere.
func IsColorTerminal(f *os.File) bool {
	if f == nil || os.Getenv("NO_COLOR") != "" {
		return false
	}
	fd := f.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

// colorWriter reports whether output to w should be coloured.
func colorWriter(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && IsColorTerminal(f)
}
