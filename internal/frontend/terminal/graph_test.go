package terminal

import (
	"os"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cory-johannsen/dicetable/internal/game/dice"
	"github.com/cory-johannsen/dicetable/internal/game/outcome"
)

func TestShowMath_Layout(t *testing.T) {
	v := newVT(80, 24)
	s := NewScreen(v, v.size())
	r, err := outcome.Resolve(dice.Normal, []dice.Command{{Coefficient: 3, Kind: dice.D6, Modifier: 2}}, []int{4, 2, 5})
	require.NoError(t, err)
	require.NoError(t, s.ShowMath(r))

	// 9 table rows plus 3 key rows, centred on row 12; left edge at column 23.
	top, left := 6, 23
	assert.Equal(t, strings.Repeat(" ", left-1)+"           Normal roll", v.line(top))
	assert.Equal(t, strings.Repeat(" ", left-1)+"3d6+2    -> 4", v.line(top+4))
	assert.Equal(t, strings.Repeat(" ", left-1)+"         -> 5  => 11   + 2  = 13", v.line(top+6))
	assert.Equal(t, strings.Repeat(" ", left-1)+"                            = 13", v.line(top+8))
	assert.Equal(t, strings.Repeat(" ", left-1)+"t: Toggle display", v.line(top+9))
	assert.Equal(t, strings.Repeat(" ", left-1)+"esc: Exit", v.line(top+11))
}

func TestShowMath_ClearsUnderTheGraph(t *testing.T) {
	v := newVT(80, 24)
	s := NewScreen(v, v.size())
	s.At(40, 12, "X")
	r, err := outcome.Resolve(dice.Advantage, []dice.Command{{Coefficient: 1, Kind: dice.D20}}, []int{20, 3})
	require.NoError(t, err)
	require.NoError(t, s.ShowMath(r))
	assert.NotContains(t, v.text(), "X")
	assert.Contains(t, v.raw.String(), Colorize(Green, "20"))
}

func TestShowMath_WindowTooSmall(t *testing.T) {
	r, err := outcome.Resolve(dice.Normal, []dice.Command{{Coefficient: 3, Kind: dice.D6}}, []int{1, 2, 3})
	require.NoError(t, err)

	for _, size := range [][2]int{{35, 24}, {80, 11}} {
		v := newVT(size[0], size[1])
		s := NewScreen(v, v.size())
		assert.ErrorIs(t, s.ShowMath(r), ErrWindowTooSmall, "size %v", size)
		assert.Zero(t, v.raw.Len(), "nothing drawn")
	}
}

func TestPrintError(t *testing.T) {
	v := newVT(80, 24)
	s := NewScreen(v, v.size())
	require.NoError(t, s.PrintError(ErrWindowTooSmall))
	assert.Contains(t, v.line(11), " Window too small to display results")
	assert.Contains(t, v.line(12), "Resize and press 't' to try again,")
	assert.Contains(t, v.line(13), "or 'r' to return to command line")
}

func TestPrintThrow(t *testing.T) {
	v := newVT(80, 24)
	s := NewScreen(v, v.size())
	var frames []time.Duration
	s.Sleep = func(d time.Duration) { frames = append(frames, d) }

	roll, err := dice.ParseRoll("adv d20+1")
	require.NoError(t, err)
	require.NoError(t, s.PrintThrow(roll, 15*time.Millisecond))

	assert.Len(t, frames, LoadingBarWidth)
	assert.Equal(t, 15*time.Millisecond, frames[0])
	text := v.text()
	assert.Contains(t, v.line(10), "Rolling:")
	assert.Contains(t, v.line(12), "1d20+1")
	assert.Contains(t, v.line(13), "Advantage")
	assert.Equal(t, strings.Repeat(" ", 29)+strings.Repeat("-", LoadingBarWidth), v.line(15))
	assert.Contains(t, v.line(16), "Press any key to roll")
	assert.NotContains(t, text, "Normal")
}

func TestPrintThrow_NormalHasNoModeLine(t *testing.T) {
	v := newVT(80, 24)
	s := NewScreen(v, v.size())
	s.Sleep = func(time.Duration) {}

	roll, err := dice.ParseRoll("2d6, d12")
	require.NoError(t, err)
	require.NoError(t, s.PrintThrow(roll, 0))

	assert.Contains(t, v.line(9), "Rolling:")
	assert.Contains(t, v.line(11), "2d6")
	assert.Contains(t, v.line(12), "1d12")
	assert.Contains(t, v.line(14), strings.Repeat("-", LoadingBarWidth))
}

func TestPressAnyKey(t *testing.T) {
	v := newVT(80, 24)
	s := NewScreen(v, v.size())
	require.NoError(t, s.PressAnyKey())
	assert.Equal(t, strings.Repeat(" ", 32)+" PRESS ANY KEY", v.line(12))
}

func TestNewConsole_NotATerminal(t *testing.T) {
	r, w, err := os.Pipe()
	require.NoError(t, err)
	defer r.Close()
	defer w.Close()

	_, err = NewConsole(r, w)
	assert.ErrorIs(t, err, ErrNotTerminal)
}
