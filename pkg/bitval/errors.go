package bitval

import (
	"fmt"
	"sort"
	"strings"
)

// Diagnostic describes one problem in a parsed string. Start and End are
// byte offsets into the input; Start == End marks a position rather than a
// range.
type Diagnostic struct {
	Start   int
	End     int
	Message string
}

func (d Diagnostic) String() string {
	return fmt.Sprintf("%d..%d: %s", d.Start, d.End, d.Message)
}

// ParseError is returned by Parse. It carries every diagnostic found, not
// only the first.
type ParseError struct {
	Input       string
	Diagnostics []Diagnostic
}

func (e *ParseError) add(start, end int, format string, args ...any) {
	e.Diagnostics = append(e.Diagnostics, Diagnostic{
		Start:   start,
		End:     end,
		Message: fmt.Sprintf(format, args...),
	})
}

func (e *ParseError) sort() {
	sort.SliceStable(e.Diagnostics, func(i, j int) bool {
		return e.Diagnostics[i].Start < e.Diagnostics[j].Start
	})
}

func (e *ParseError) Error() string {
	msgs := make([]string, len(e.Diagnostics))
	for i, d := range e.Diagnostics {
		msgs[i] = d.Message
	}
	return fmt.Sprintf("bitval: invalid value %q: %s", e.Input, strings.Join(msgs, "; "))
}

// Render draws the input once per diagnostic with carets under the offending
// bytes:
//
//	 | 0b101
//	 |   ^^^ value needs 3 bits, width is 2
func (e *ParseError) Render() string {
	var b strings.Builder
	for i, d := range e.Diagnostics {
		if i > 0 {
			b.WriteByte('\n')
		}
		n := d.End - d.Start
		if n < 1 {
			n = 1
		}
		fmt.Fprintf(&b, " | %s\n", e.Input)
		fmt.Fprintf(&b, " | %s%s %s", strings.Repeat(" ", d.Start), strings.Repeat("^", n), d.Message)
	}
	return b.String()
}
