package terminal

import (
	"errors"
	"strings"
	"time"

	"github.com/cory-johannsen/dicetable/internal/game/dice"
	"github.com/cory-johannsen/dicetable/internal/game/outcome"
)

// ErrWindowTooSmall is returned by ShowMath when the results graph does not fit.
var ErrWindowTooSmall = errors.New("window too small to display results")

// LoadingBarWidth is the number of frames in the pre-throw loading bar.
const LoadingBarWidth = 21

const (
	rollingLabel = "Rolling:"
	rollPrompt   = "Press any key to roll"
	anyKeyPrompt = " PRESS ANY KEY "
)

var graphKeys = []string{"t: Toggle display", "r: Make another roll", "esc: Exit"}

var errorHelp = []string{
	" Resize and press 't' to try again, ",
	" or 'r' to return to command line ",
}

// PrintThrow shows the pending roll centred on the screen: a "Rolling:"
// label, one line per command, the mode for special rolls, a loading bar
// drawn one frame per frameDelay, and the prompt to roll.
func (s *Screen) PrintThrow(r dice.Roll, frameDelay time.Duration) error {
	cols, rows, err := s.Size()
	if err != nil {
		return err
	}
	row := rows/2 - len(r.Commands)/2
	s.At(centreCol(cols, rollingLabel), row-2, rollingLabel)
	for _, c := range r.Commands {
		text := c.String()
		s.At(centreCol(cols, text), row, text)
		row++
	}
	switch r.Mode {
	case dice.Advantage:
		s.At(centreCol(cols, "Advantage"), row, "Advantage")
	case dice.Disadvantage:
		s.At(centreCol(cols, "Disadvantage"), row, "Disadvantage")
	case dice.Percentile:
		s.At(centreCol(cols, "Percentile"), row, "Percentile")
	default:
		row--
	}
	if err := s.Flush(); err != nil {
		return err
	}

	row += 2
	col := cols/2 - LoadingBarWidth/2
	for i := 0; i < LoadingBarWidth; i++ {
		s.sleep(frameDelay)
		s.At(col+i, row, "-")
		if err := s.Flush(); err != nil {
			return err
		}
	}
	s.At(centreCol(cols, rollPrompt), row+1, rollPrompt)
	return s.Flush()
}

// PressAnyKey shows the pause banner in the middle of the screen.
func (s *Screen) PressAnyKey() error {
	cols, rows, err := s.Size()
	if err != nil {
		return err
	}
	s.At(centreCol(cols, anyKeyPrompt), rows/2, anyKeyPrompt)
	return s.Flush()
}

// ShowMath draws the results graph for r centred on the screen, over a
// cleared box, followed by the key help.
//
// Postcondition: returns ErrWindowTooSmall, drawing nothing, when the
// terminal is shorter than the graph or narrower than TableWidth+2.
func (s *Screen) ShowMath(r outcome.Result) error {
	cols, rows, err := s.Size()
	if err != nil {
		return err
	}
	lines := outcome.Format(r, CritStyle)
	height := len(lines) + len(graphKeys)
	if rows < height || cols < outcome.TableWidth+2 {
		return ErrWindowTooSmall
	}

	left := max(cols/2-outcome.TableWidth/2, 1)
	top := max(rows/2-height/2, 1)
	blank := spaces(outcome.TableWidth + 2)
	for i := 0; i < height; i++ {
		s.At(max(left-1, 1), top+i, blank)
	}
	for i, l := range lines {
		if l != "" {
			s.At(left, top+i, l)
		}
	}
	for i, k := range graphKeys {
		s.At(left, top+len(lines)+i, k)
	}
	return s.Flush()
}

// PrintError shows err centred on the screen with how to recover.
func (s *Screen) PrintError(err error) error {
	cols, rows, serr := s.Size()
	if serr != nil {
		return serr
	}
	msg := err.Error()
	if msg != "" {
		msg = strings.ToUpper(msg[:1]) + msg[1:]
	}
	lines := append([]string{" " + msg + " "}, errorHelp...)
	top := max(rows/2-len(lines)/2, 1)
	for i, l := range lines {
		s.At(centreCol(cols, l), top+i, l)
	}
	return s.Flush()
}
