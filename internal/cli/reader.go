package cli

import (
	"bufio"
	"io"
)

// LineScanner reads commands and moves from a plain stream, for piped input
// where a line editor is of no use
type LineScanner struct {
	scanner *bufio.Scanner
}

func NewLineScanner(r io.Reader) *LineScanner {
	return &LineScanner{scanner: bufio.NewScanner(r)}
}

// Readline returns io.EOF once the stream is exhausted
func (l *LineScanner) Readline() (string, error) {
	if l.scanner.Scan() {
		return l.scanner.Text(), nil
	}
	if err := l.scanner.Err(); err != nil {
		return "", err
	}
	return "", io.EOF
}
