// Package buffer implements the in-memory text buffer: an ordered list of
// lines, a cursor, the associated file path and a dirty flag. All cursor
// mutation saturates at the buffer boundaries, so after every operation
// 0 <= row < len(lines) and 0 <= col <= len(lines[row]) hold (columns are
// counted in runes).
package buffer

import (
	"os"
	"path/filepath"
	"strings"

	"tedit/internal/errors"
)

// Direction identifies a cursor movement.
type Direction int

const (
	Left Direction = iota
	Right
	Up
	Down
)

// Buffer holds the document being edited.
type Buffer struct {
	lines []string
	row   int
	col   int
	path  string
	dirty bool
}

// New creates an empty buffer: one empty line, cursor at the origin.
func New() *Buffer {
	return &Buffer{lines: []string{""}}
}

// Lines returns the document lines. Callers must not modify the slice.
func (b *Buffer) Lines() []string {
	return b.lines
}

// Line returns the line at the given row, or "" when out of range.
func (b *Buffer) Line(row int) string {
	if row < 0 || row >= len(b.lines) {
		return ""
	}
	return b.lines[row]
}

// LineCount returns the number of lines in the document.
func (b *Buffer) LineCount() int {
	return len(b.lines)
}

// Cursor returns the current (row, col) position.
func (b *Buffer) Cursor() (row, col int) {
	return b.row, b.col
}

// Path returns the file path associated with the buffer, or "" when the
// buffer has never been saved to or loaded from disk.
func (b *Buffer) Path() string {
	return b.path
}

// Dirty reports whether the content differs from its last persisted state.
func (b *Buffer) Dirty() bool {
	return b.dirty
}

// Content returns the document joined with newlines. Save appends a final
// newline on top of this so that loading the file restores the exact lines.
func (b *Buffer) Content() string {
	return strings.Join(b.lines, "\n")
}

// InsertRune inserts a printable character at the cursor and advances the
// column. A newline rune splits the line instead.
func (b *Buffer) InsertRune(r rune) {
	if r == '\n' {
		b.InsertNewline()
		return
	}
	line := []rune(b.lines[b.row])
	next := make([]rune, 0, len(line)+1)
	next = append(next, line[:b.col]...)
	next = append(next, r)
	next = append(next, line[b.col:]...)
	b.lines[b.row] = string(next)
	b.col++
	b.dirty = true
}

// InsertString inserts a run of characters at the cursor. Newlines in s
// split lines as InsertNewline would.
func (b *Buffer) InsertString(s string) {
	for _, r := range s {
		b.InsertRune(r)
	}
}

// InsertNewline splits the current line at the cursor and moves to the
// start of the new line.
func (b *Buffer) InsertNewline() {
	line := []rune(b.lines[b.row])
	left := string(line[:b.col])
	right := string(line[b.col:])
	b.lines[b.row] = left
	rest := append([]string{right}, b.lines[b.row+1:]...)
	b.lines = append(b.lines[:b.row+1], rest...)
	b.row++
	b.col = 0
	b.dirty = true
}

// DeleteBackward removes the character before the cursor, joining with the
// previous line at column zero. At the start of the document it is a no-op
// and does not mark the buffer dirty.
func (b *Buffer) DeleteBackward() {
	if b.col == 0 && b.row == 0 {
		return
	}
	if b.col > 0 {
		line := []rune(b.lines[b.row])
		b.lines[b.row] = string(line[:b.col-1]) + string(line[b.col:])
		b.col--
	} else {
		prev := b.lines[b.row-1]
		cur := b.lines[b.row]
		newCol := len([]rune(prev))
		b.lines[b.row-1] = prev + cur
		b.lines = append(b.lines[:b.row], b.lines[b.row+1:]...)
		b.row--
		b.col = newCol
	}
	b.dirty = true
}

// Move shifts the cursor one step in the given direction, saturating at the
// document boundaries.
func (b *Buffer) Move(d Direction) {
	switch d {
	case Left:
		if b.col > 0 {
			b.col--
		} else if b.row > 0 {
			b.row--
			b.col = b.lineLen(b.row)
		}
	case Right:
		if b.col < b.lineLen(b.row) {
			b.col++
		} else if b.row < len(b.lines)-1 {
			b.row++
			b.col = 0
		}
	case Up:
		if b.row > 0 {
			b.row--
			if b.col > b.lineLen(b.row) {
				b.col = b.lineLen(b.row)
			}
		}
	case Down:
		if b.row < len(b.lines)-1 {
			b.row++
			if b.col > b.lineLen(b.row) {
				b.col = b.lineLen(b.row)
			}
		}
	}
}

func (b *Buffer) lineLen(row int) int {
	return len([]rune(b.lines[row]))
}

// Load replaces the buffer content with the file at path, resets the cursor
// to the origin, associates the path and clears the dirty flag. On failure
// the buffer is left untouched.
func (b *Buffer) Load(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return errors.NewFileError("file not found", path, errors.FileNotFound, nil)
		}
		return errors.NewFileError("cannot read file", path, errors.IOError, err)
	}
	lines := splitLines(string(data))
	b.lines = lines
	b.row = 0
	b.col = 0
	b.path = path
	b.dirty = false
	return nil
}

// Save writes the document to path, or to the associated path when path is
// empty. Parent directories are created as needed. On success an explicit
// path becomes the associated path and the dirty flag is cleared; on failure
// buffer state is unchanged.
func (b *Buffer) Save(path string) error {
	target := path
	if target == "" {
		target = b.path
	}
	if target == "" {
		return errors.NewFileError("no file associated with buffer", "", errors.NoFileAssociated, nil)
	}
	if dir := filepath.Dir(target); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return errors.NewFileError("cannot create directory", dir, errors.IOError, err)
		}
	}
	// The terminating newline is the exact inverse of the trim in splitLines,
	// so save-then-load reproduces the lines verbatim, trailing blank line
	// included.
	if err := os.WriteFile(target, []byte(b.Content()+"\n"), 0o644); err != nil {
		return errors.NewFileError("cannot write file", target, errors.IOError, err)
	}
	if path != "" {
		b.path = path
	}
	b.dirty = false
	return nil
}

// splitLines splits file content into document lines. CRLF is normalized
// and a single trailing newline does not produce a phantom empty line, but
// a file genuinely ending in a blank line keeps it.
func splitLines(s string) []string {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	lines := strings.Split(s, "\n")
	if len(lines) > 1 && lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	if len(lines) == 0 {
		lines = []string{""}
	}
	return lines
}
