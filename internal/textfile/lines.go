// Package textfile loads text files as lines.
package textfile

import (
	"errors"
	"fmt"
	"unicode/utf8"

	"parsefile/internal/iox"
)

// ErrInvalidUTF8 marks content that does not decode as UTF-8.
var ErrInvalidUTF8 = errors.New("content is not valid UTF-8")

// ReadError is returned when a file cannot be loaded as text.
type ReadError struct {
	Path string
	Err  error
}

func (e *ReadError) Error() string {
	return fmt.Sprintf("read %s: %v", e.Path, e.Err)
}

func (e *ReadError) Unwrap() error { return e.Err }

// ReadLines reads the whole file at path and returns its lines.
// Invalid UTF-8 is rejected rather than replaced. Files ending in .gz are
// decompressed first.
func ReadLines(path string) ([]string, error) {
	b, err := iox.ReadAll(path)
	if err != nil {
		return nil, &ReadError{Path: path, Err: err}
	}
	if !utf8.Valid(b) {
		return nil, &ReadError{Path: path, Err: ErrInvalidUTF8}
	}
	return SplitLines(string(b)), nil
}

// SplitLines splits text on "\r\n", "\n" or "\r". A single trailing empty
// element (text ending in a terminator) is dropped; blank lines elsewhere
// are kept.
func SplitLines(text string) []string {
	lines := make([]string, 0, 16)
	start := 0
	for i := 0; i < len(text); i++ {
		switch text[i] {
		case '\n':
			lines = append(lines, text[start:i])
			start = i + 1
		case '\r':
			lines = append(lines, text[start:i])
			if i+1 < len(text) && text[i+1] == '\n' {
				i++
			}
			start = i + 1
		}
	}
	lines = append(lines, text[start:])

	if lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	return lines
}
