// Package shell runs the interactive dice table: it reads roll lines at a
// prompt, throws the dice across the terminal, and shows the results.
package shell

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/cory-johannsen/dicetable/internal/config"
	"github.com/cory-johannsen/dicetable/internal/frontend/terminal"
	"github.com/cory-johannsen/dicetable/internal/game/dice"
	"github.com/cory-johannsen/dicetable/internal/game/motion"
	"github.com/cory-johannsen/dicetable/internal/game/outcome"
	"github.com/cory-johannsen/dicetable/internal/game/preset"
	"github.com/cory-johannsen/dicetable/internal/game/table"
	"github.com/cory-johannsen/dicetable/internal/observability"
)

// Terminal is the part of the process terminal the shell needs.
// *terminal.Console satisfies it.
type Terminal interface {
	Size() (cols, rows int, err error)
	MakeRaw() (restore func() error, err error)
}

// Keys the results screen understands.
const (
	keyNone   = 0x00
	keyEsc    = 0x1b
	keyCtrlC  = 0x03
	keyToggle = 't'
	keyReturn = 'r'
)

// settlePause is the gap between clearing the throw banner and the first die.
const settlePause = 200 * time.Millisecond

const intro = "\nEnter command (or 'help' / 'quit'):"

const helpText = `
Enter dice rolls in the format:
'[coefficient]d[die kind]+/-[modifier]'.
Separate roll commands with commas or slashes.

Special rolls --
Advantage roll: 'adv d[dice kind]'.
Disadvantage roll: 'disadv d[dice kind]'.
Percentile roll: 'd100' or 'd%'.

Modifiers may be applied to any roll type,
but you may not add additional dice
to a special roll.

Enter 'quit' or 'exit' to close program.
`

// Shell is the read-throw-show loop.
type Shell struct {
	in      *bufio.Reader
	out     io.Writer
	screen  *terminal.Screen
	term    Terminal
	roller  *dice.Roller
	presets *preset.Registry
	cfg     config.Config
	logger  *zap.Logger

	// Sleep pauses the shell and every die it throws. nil means time.Sleep.
	Sleep func(time.Duration)
}

// New creates a Shell reading lines and keys from in, printing prompts to
// out, and drawing the table on screen.
//
// Precondition: every argument non-nil; cfg passes Validate.
func New(
	in io.Reader,
	out io.Writer,
	screen *terminal.Screen,
	term Terminal,
	roller *dice.Roller,
	presets *preset.Registry,
	cfg config.Config,
	logger *zap.Logger,
) *Shell {
	return &Shell{
		in:      bufio.NewReader(in),
		out:     out,
		screen:  screen,
		term:    term,
		roller:  roller,
		presets: presets,
		cfg:     cfg,
		logger:  logger,
	}
}

// Run prompts for rolls until the user quits, input ends, the user presses
// esc on a results screen, or ctx is cancelled.
//
// Postcondition: returns nil on any of those, or the first terminal error.
func (s *Shell) Run(ctx context.Context) error {
	fmt.Fprint(s.out, intro)
	for {
		if err := ctx.Err(); err != nil {
			return nil
		}
		fmt.Fprint(s.out, "\nRoll: ")
		line, err := s.in.ReadString('\n')
		if err != nil {
			if !errors.Is(err, io.EOF) {
				return fmt.Errorf("reading input: %w", err)
			}
			if strings.TrimSpace(line) == "" {
				return nil
			}
		}

		input := strings.ToLower(strings.TrimSpace(line))
		switch input {
		case "":
			continue
		case "help":
			s.help()
			continue
		case "quit", "exit":
			return nil
		}

		roll, err := s.roller.Parse(s.presets.Expand(input))
		if err != nil {
			fmt.Fprintln(s.out, err)
			continue
		}

		summary, again, err := s.Throw(roll)
		if err != nil {
			var ae *outcome.AssessmentError
			if errors.As(err, &ae) || errors.Is(err, errArena) {
				fmt.Fprintln(s.out, err)
				continue
			}
			return err
		}
		if !again {
			return nil
		}
		fmt.Fprintf(s.out, "Result: %s\n", summary)
	}
}

func (s *Shell) help() {
	fmt.Fprint(s.out, helpText)
	all := s.presets.All()
	if len(all) == 0 {
		return
	}
	fmt.Fprintln(s.out, "\nPresets --")
	for _, p := range all {
		if p.Description != "" {
			fmt.Fprintf(s.out, "%s: '%s' (%s)\n", p.Name, p.Roll, p.Description)
			continue
		}
		fmt.Fprintf(s.out, "%s: '%s'\n", p.Name, p.Roll)
	}
}

var errArena = errors.New("arena unavailable")

// arena snapshots the bounds dice roll inside: the terminal size unless the
// config fixes an axis.
func (s *Shell) arena() (motion.Bounds, error) {
	cols, rows, err := s.term.Size()
	if err != nil {
		return motion.Bounds{}, fmt.Errorf("%w: reading terminal size: %v", errArena, err)
	}
	if s.cfg.Arena.Width > 0 {
		cols = s.cfg.Arena.Width
	}
	if s.cfg.Arena.Height > 0 {
		rows = s.cfg.Arena.Height
	}
	b, err := motion.NewBounds(cols, rows)
	if err != nil {
		return motion.Bounds{}, fmt.Errorf("%w: %v", errArena, err)
	}
	return b, nil
}

func (s *Shell) tuning() motion.Tuning {
	return motion.Tuning{
		MinSpeed:       s.cfg.Physics.MinSpeed,
		MaxSpeed:       s.cfg.Physics.MaxSpeed,
		RedirectChance: s.cfg.Physics.RedirectChance,
		Sleep:          s.Sleep,
	}
}

func (s *Shell) sleep(d time.Duration) {
	if s.Sleep != nil {
		s.Sleep(d)
		return
	}
	time.Sleep(d)
}

// Throw rolls roll across the screen and runs its results screen.
//
// Postcondition: again is true when the user asked for another roll, with
// summary holding the one-line result; false when the user pressed esc.
// The screen and input mode are restored before returning.
func (s *Shell) Throw(roll dice.Roll) (summary string, again bool, err error) {
	bounds, err := s.arena()
	if err != nil {
		return "", false, err
	}
	logger := observability.ForRoll(s.logger, observability.NewRollID())

	restore, err := s.term.MakeRaw()
	if err != nil {
		return "", false, fmt.Errorf("entering raw mode: %w", err)
	}
	s.screen.Write(terminal.EnterAltScrn, terminal.HideCursor, terminal.ClearScreen)
	defer func() {
		s.screen.Write(terminal.ShowCursor, terminal.ExitAltScrn)
		if ferr := s.screen.Flush(); ferr != nil && err == nil {
			err = ferr
		}
		if rerr := restore(); rerr != nil && err == nil {
			err = fmt.Errorf("leaving raw mode: %w", rerr)
		}
	}()

	if err := s.screen.PrintThrow(roll, s.cfg.Display.FrameDelay); err != nil {
		return "", false, err
	}
	if _, err := s.readKey(); err != nil {
		return "", false, err
	}
	s.screen.Clear()
	if err := s.screen.Flush(); err != nil {
		return "", false, err
	}
	s.sleep(settlePause)

	renderer := terminal.NewRenderer(s.screen, bounds)
	tb, err := table.Throw(roll, table.Options{
		Bounds:   bounds,
		Tuning:   s.tuning(),
		Source:   s.roller.Source(),
		Observer: renderer,
		Logger:   logger,
	})
	if err != nil {
		return "", false, err
	}
	snap := tb.Snapshot()
	if err := renderer.Redraw(snap); err != nil {
		return "", false, err
	}

	result, err := outcome.Resolve(roll.Mode, roll.Commands, tb.Faces())
	if err != nil {
		logger.Error("assessing roll", zap.Error(err))
		return "", false, err
	}
	logger.Info("roll resolved",
		zap.Stringer("mode", roll.Mode),
		zap.Int("dice", len(snap)),
		zap.Int("total", result.Total),
	)

	if err := s.screen.PressAnyKey(); err != nil {
		return "", false, err
	}
	if _, err := s.readKey(); err != nil {
		return "", false, err
	}

	graphOn, errorOn, err := s.showMath(result)
	if err != nil {
		return "", false, err
	}
	for {
		key, err := s.readKey()
		if err != nil {
			return "", false, err
		}
		switch key {
		case keyEsc, keyCtrlC:
			return "", false, nil
		case keyReturn:
			return outcome.SummaryStyled(result, terminal.CritStyle, s.cfg.Display.PreviewResults), true, nil
		case keyToggle:
			if graphOn {
				if err := renderer.Redraw(snap); err != nil {
					return "", false, err
				}
				graphOn, errorOn = false, false
				continue
			}
			if errorOn {
				if err := renderer.Redraw(snap); err != nil {
					return "", false, err
				}
				s.sleep(settlePause)
			}
			graphOn, errorOn, err = s.showMath(result)
			if err != nil {
				return "", false, err
			}
		}
	}
}

// showMath draws the results graph, or the window-too-small banner when it
// does not fit.
func (s *Shell) showMath(r outcome.Result) (graphOn, errorOn bool, err error) {
	err = s.screen.ShowMath(r)
	switch {
	case err == nil:
		return true, false, nil
	case errors.Is(err, terminal.ErrWindowTooSmall):
		return false, true, s.screen.PrintError(err)
	}
	return false, false, err
}

// readKey waits for one key press. End of input reads as esc. Escape
// sequences already buffered behind an ESC, such as an arrow key's
// "ESC [ A", are consumed whole and read as keyNone.
func (s *Shell) readKey() (byte, error) {
	b, err := s.in.ReadByte()
	if errors.Is(err, io.EOF) {
		return keyEsc, nil
	}
	if err != nil {
		return 0, fmt.Errorf("reading key: %w", err)
	}
	if b != keyEsc || s.in.Buffered() == 0 {
		return b, nil
	}
	next, err := s.in.Peek(1)
	if err != nil || (next[0] != '[' && next[0] != 'O') {
		return keyEsc, nil
	}
	intro, _ := s.in.ReadByte()
	for s.in.Buffered() > 0 {
		c, err := s.in.ReadByte()
		if err != nil {
			break
		}
		// SS3 sequences are one byte long; CSI sequences end on a byte in 0x40..0x7e.
		if intro == 'O' || (c >= 0x40 && c <= 0x7e) {
			break
		}
	}
	return keyNone, nil
}
