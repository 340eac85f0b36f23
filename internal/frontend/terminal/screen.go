package terminal

import (
	"bufio"
	"io"
	"strings"
	"sync"
	"time"
)

// SizeFunc reports the terminal size in columns and rows.
type SizeFunc func() (cols, rows int, err error)

// FixedSize reports cols x rows regardless of the real terminal.
func FixedSize(cols, rows int) SizeFunc {
	return func() (int, int, error) { return cols, rows, nil }
}

// Screen is a buffered, cursor-addressed view of a terminal. Drawing calls
// only buffer; Flush sends them and reports the first write error.
// Screen is safe for concurrent use.
type Screen struct {
	mu   sync.Mutex
	w    *bufio.Writer
	size SizeFunc

	// Sleep pauses between animation frames. nil means time.Sleep.
	Sleep func(time.Duration)
}

// NewScreen creates a Screen drawing to w and sized by size.
//
// Precondition: w and size must be non-nil.
func NewScreen(w io.Writer, size SizeFunc) *Screen {
	return &Screen{w: bufio.NewWriterSize(w, 8192), size: size}
}

// Size returns the current terminal size.
func (s *Screen) Size() (cols, rows int, err error) {
	return s.size()
}

// Write buffers raw text or escape sequences at the cursor.
func (s *Screen) Write(parts ...string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, p := range parts {
		_, _ = s.w.WriteString(p)
	}
}

// At buffers text at the 1-based (col, row).
func (s *Screen) At(col, row int, text string) {
	s.Write(Goto(col, row), text)
}

// Clear buffers a full-screen clear.
func (s *Screen) Clear() { s.Write(ClearScreen) }

// Flush sends everything buffered so far.
//
// Postcondition: returns the first error any buffered write hit.
func (s *Screen) Flush() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.w.Flush()
}

func (s *Screen) sleep(d time.Duration) {
	if s.Sleep != nil {
		s.Sleep(d)
		return
	}
	time.Sleep(d)
}

// centreCol returns the column that centres msg on a cols-wide terminal.
func centreCol(cols int, msg string) int {
	return max(cols/2-len(msg)/2, 1)
}

func spaces(n int) string { return strings.Repeat(" ", n) }
