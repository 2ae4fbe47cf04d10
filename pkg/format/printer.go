// Package format renders procedure trees as SQL text.
package format

import (
	"bytes"
	"strings"
)

const indentWidth = 2

// Printer accumulates SQL text. The first write on each line is indented to
// the current nesting depth.
type Printer struct {
	buf     bytes.Buffer
	depth   int
	midLine bool
}

func newPrinter() *Printer { return &Printer{} }

// String returns the text with exactly one trailing newline.
func (p *Printer) String() string {
	return strings.TrimRight(p.buf.String(), "\n") + "\n"
}

func (p *Printer) write(s string) {
	if s == "" {
		return
	}
	if !p.midLine {
		p.buf.WriteString(strings.Repeat(" ", p.depth*indentWidth))
		p.midLine = true
	}
	p.buf.WriteString(s)
}

func (p *Printer) writeln() {
	p.buf.WriteByte('\n')
	p.midLine = false
}

func (p *Printer) keyword(s string) { p.write(strings.ToUpper(s)) }

func (p *Printer) space() { p.write(" ") }

// nested runs fn one level deeper.
func (p *Printer) nested(fn func()) {
	p.depth++
	fn()
	p.depth--
}

// join prints n items with sep between them.
func (p *Printer) join(n int, sep string, item func(i int)) {
	for i := range n {
		if i > 0 {
			p.write(sep)
		}
		item(i)
	}
}
