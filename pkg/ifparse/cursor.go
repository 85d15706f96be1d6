package ifparse

import (
	"bufio"
	"io"
	"strings"
)

// Line is one line of a configuration file. Num counts from 1.
// Text carries no line terminator.
type Line struct {
	Num  int
	Text string
}

// Cursor hands out the lines of one configuration in order.
// Next returns false when the input is exhausted. A cursor is never
// rewound.
type Cursor interface {
	Next() (Line, bool)
}

type sliceCursor struct {
	lines []string
	pos   int
}

// NewSliceCursor returns a Cursor over already read lines.
func NewSliceCursor(lines []string) Cursor {
	return &sliceCursor{lines: lines}
}

func (c *sliceCursor) Next() (Line, bool) {
	if c.pos >= len(c.lines) {
		return Line{}, false
	}
	text := strings.TrimRight(c.lines[c.pos], "\r\n")
	c.pos++
	return Line{Num: c.pos, Text: text}, true
}

// ReaderCursor reads lines lazily from an io.Reader.
type ReaderCursor struct {
	scanner *bufio.Scanner
	num     int
}

// Long "description" or certificate lines exceed the default 64k token
// size of bufio.Scanner.
const maxLineSize = 1024 * 1024

// NewReaderCursor returns a Cursor reading from r.
func NewReaderCursor(r io.Reader) *ReaderCursor {
	s := bufio.NewScanner(r)
	s.Buffer(make([]byte, 0, 64*1024), maxLineSize)
	return &ReaderCursor{scanner: s}
}

func (c *ReaderCursor) Next() (Line, bool) {
	if !c.scanner.Scan() {
		return Line{}, false
	}
	c.num++
	return Line{Num: c.num, Text: strings.TrimRight(c.scanner.Text(), "\r")}, true
}

// Err returns the first read error, if any.
func (c *ReaderCursor) Err() error { return c.scanner.Err() }
