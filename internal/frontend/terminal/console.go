package terminal

import (
	"errors"
	"os"
	"sync"

	"golang.org/x/term"
)

// ErrNotTerminal is returned by NewConsole when input or output is not a terminal.
var ErrNotTerminal = errors.New("terminal: not a terminal")

// Console owns the process terminal: its size, and switching input between
// line mode and raw single-key mode.
type Console struct {
	in, out int

	mu    sync.Mutex
	saved *term.State
}

// NewConsole captures the current state of in so Restore can return to it.
//
// Postcondition: returns ErrNotTerminal when in or out is not a terminal.
func NewConsole(in, out *os.File) (*Console, error) {
	inFd, outFd := int(in.Fd()), int(out.Fd())
	if !term.IsTerminal(inFd) || !term.IsTerminal(outFd) {
		return nil, ErrNotTerminal
	}
	saved, err := term.GetState(inFd)
	if err != nil {
		return nil, err
	}
	return &Console{in: inFd, out: outFd, saved: saved}, nil
}

// Size reports the output terminal's columns and rows.
func (c *Console) Size() (cols, rows int, err error) {
	return term.GetSize(c.out)
}

// MakeRaw puts input into raw mode so single keys arrive unbuffered and
// unechoed. The returned func returns input to the state it had before.
func (c *Console) MakeRaw() (restore func() error, err error) {
	prev, err := term.MakeRaw(c.in)
	if err != nil {
		return nil, err
	}
	return func() error { return term.Restore(c.in, prev) }, nil
}

// Restore returns input to the state captured by NewConsole.
func (c *Console) Restore() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return term.Restore(c.in, c.saved)
}
