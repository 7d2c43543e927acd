package style

import (
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/mattn/go-colorable"
	"github.com/mattn/go-isatty"
)

var (
	// Respect https://no-color.org/.
	noColor = os.Getenv("NO_COLOR") != ""

	isErrTTY   = isatty.IsTerminal(os.Stderr.Fd()) || isatty.IsCygwinTerminal(os.Stderr.Fd())
	isErrColor = isErrTTY && !noColor
)

func IsStderrTTY() bool         { return isErrTTY }
func StderrSupportsColor() bool { return isErrColor }

func doS(ms []int) string {
	if len(ms) == 0 {
		return "\033[0m"
	}
	var b strings.Builder
	_, _ = b.WriteString("\033[")
	for i, m := range ms {
		if i != 0 {
			_ = b.WriteByte(';')
		}
		_, _ = b.WriteString(strconv.FormatInt(int64(m), 10))
	}
	_ = b.WriteByte('m')
	return b.String()
}

// SE returns the SGR sequence for ms if stderr is colored, and an empty string otherwise.
func SE(ms ...int) string {
	if isErrColor {
		return doS(ms)
	}
	return ""
}

func WithSE(s string, ms ...int) string { return SE(ms...) + s + SE() }

// Stderr returns a writer for text meant for stderr. On Windows consoles it translates ANSI
// sequences, and it strips them when stderr is not colored.
func Stderr() io.Writer {
	if isErrColor {
		return colorable.NewColorableStderr()
	}
	return colorable.NewNonColorable(os.Stderr)
}
