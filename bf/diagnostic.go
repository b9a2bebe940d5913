package bf

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
)

const (
	contextBefore = 4
	contextAfter  = 5
)

// Diagnostic renders a ParseError against the source it came from.
type Diagnostic struct {
	Err    *ParseError
	Source string
	Color  bool
}

// NewDiagnostic takes the raw source; it is filtered so offsets line up.
func NewDiagnostic(err *ParseError, source string) *Diagnostic {
	return &Diagnostic{
		Err:    err,
		Source: PreLex(source),
	}
}

// painter returns a function colouring its argument, or leaving it as is
// when colour is off. Empty strings are never wrapped.
func (d *Diagnostic) painter(attrs ...color.Attribute) func(string) string {
	c := color.New(attrs...)
	if d.Color {
		c.EnableColor()
	} else {
		c.DisableColor()
	}
	return func(s string) string {
		if s == "" {
			return s
		}
		return c.Sprint(s)
	}
}

// Window of commands around the offending one: before, at and after.
func (d *Diagnostic) Window() (string, string, string) {
	commands := []rune(d.Source)
	at := d.Err.Offset
	if at < 0 || at >= len(commands) {
		return "", "", ""
	}
	start := max(at-contextBefore, 0)
	end := min(at+1+contextAfter, len(commands))
	return string(commands[start:at]), string(commands[at]), string(commands[at+1 : end])
}

func (d *Diagnostic) WriteTo(w io.Writer) (int64, error) {
	var (
		header = d.painter(color.FgRed, color.Bold)
		bold   = d.painter(color.Bold)
		red    = d.painter(color.FgRed)
		yellow = d.painter(color.FgYellow)
		blue   = d.painter(color.FgHiBlue)
	)

	var b strings.Builder
	before, at, after := d.Window()

	b.WriteString(header("~~~~~~ Error on building! ~~~~~~"))
	b.WriteString("\n\n")
	fmt.Fprintf(&b, "error on %s:\n", bold(fmt.Sprintf("instruction %d", d.Err.Instruction)))
	fmt.Fprintf(&b, "|\t%s%s%s\n", blue(before), red(at), blue(after))
	caret := ""
	if at != "" {
		caret = "^"
	}
	fmt.Fprintf(&b, "|\t%s%s%s\n\n",
		yellow(strings.Repeat("~", len(before))),
		red(caret),
		yellow(strings.Repeat("~", len(after))),
	)
	b.WriteString(bold(d.Err.Reason()))
	b.WriteString("\n")
	b.WriteString(blue("Exception: " + d.Err.Kind.Name()))
	b.WriteString("\n")

	n, err := io.WriteString(w, b.String())
	return int64(n), err
}

func (d *Diagnostic) String() string {
	var b strings.Builder
	d.WriteTo(&b)
	return b.String()
}
