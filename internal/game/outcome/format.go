package outcome

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/cory-johannsen/dicetable/internal/game/dice"
)

// PreviewResults is how many faces a one-line summary shows before
// eliding the rest of a large single-command roll.
const PreviewResults = 5

// Results table geometry, in columns from the table's left edge.
const (
	TableWidth = 34

	colCommand  = 0
	colArrow    = 9
	colResult   = 12
	colBigArrow = 15
	colRunning  = 18
	colModifier = 23
	colEquals   = 28
	colSum      = 30
)

const (
	tableHeader  = "Rolls    Results       Mod  Total"
	tableDivider = "----------------------------------"
)

// Styler decorates a face label, e.g. colouring crits. It must not change
// the label's printable width.
type Styler func(f Face) string

// Plain renders a face label with no decoration.
func Plain(f Face) string { return f.Label() }

// Summary renders r on one line with no decoration.
func Summary(r Result) string {
	return SummaryStyled(r, Plain, PreviewResults)
}

// SummaryStyled renders r on one line:
//
//	Normal, one command:   "4 + 2 + 5 + 2 = 11 + 2 = 13"
//	Normal, many commands: "27"
//	Advantage:             "15 | 20 => 20 + 2 = 22"
//	Percentile:            "00, 0 => 100 + 0 = 100"
//
// A single command of more than preview+1 dice shows its first preview faces
// followed by " + ...".
//
// Precondition: style non-nil; preview >= 1.
func SummaryStyled(r Result, style Styler, preview int) string {
	var b strings.Builder
	switch r.Mode {
	case dice.Advantage, dice.Disadvantage, dice.Percentile:
		sep := " | "
		if r.Mode == dice.Percentile {
			sep = ", "
		}
		line := r.Lines[0]
		for i, f := range line.Faces {
			if i > 0 {
				b.WriteString(sep)
			}
			b.WriteString(style(f))
		}
		fmt.Fprintf(&b, " => %d %s = %d", line.Subtotal, signed(line.Command.Modifier), line.Total)
	default:
		if len(r.Lines) == 1 {
			line := r.Lines[0]
			n := len(line.Faces)
			for i, f := range line.Faces {
				if i > preview {
					break
				}
				if i > 0 {
					b.WriteString(" + ")
				}
				if i == preview && n > preview+1 {
					b.WriteString("...")
					break
				}
				b.WriteString(style(f))
			}
			mod := signed(line.Command.Modifier)
			fmt.Fprintf(&b, " %s = %d %s = ", mod, line.Subtotal, mod)
		}
		b.WriteString(strconv.Itoa(r.Total))
	}
	return b.String()
}

// signed renders a modifier as "+ 3" or "- 3".
func signed(m int) string {
	if m < 0 {
		return "- " + strconv.Itoa(-m)
	}
	return "+ " + strconv.Itoa(m)
}

// Format renders r as the multi-line results table: a centred mode banner, a
// blank row, the column header, and one block per command with its faces and
// totals. Normal rolls close with the grand total.
//
// Postcondition: every row is at most TableWidth printable columns wide.
func Format(r Result, style Styler) []string {
	rows := []string{
		centre(r.Mode.String(), TableWidth),
		"",
		tableHeader,
		tableDivider,
	}
	for _, line := range r.Lines {
		for i, f := range line.Faces {
			var rw row
			if i == 0 {
				rw.put(colCommand, line.Command.String(), -1)
			}
			rw.put(colArrow, "->", -1)
			rw.put(colResult, style(f), len(f.Label()))
			if i == len(line.Faces)-1 {
				rw.put(colBigArrow, "=>", -1)
				rw.put(colRunning, strconv.Itoa(line.Subtotal), -1)
				rw.put(colModifier, signed(line.Command.Modifier), -1)
				rw.put(colEquals, "=", -1)
				rw.put(colSum, strconv.Itoa(line.Total), -1)
			}
			rows = append(rows, rw.String())
		}
		rows = append(rows, tableDivider)
	}
	if r.Mode == dice.Normal {
		var rw row
		rw.put(colEquals, "= "+strconv.Itoa(r.Total), -1)
		rows = append(rows, rw.String())
	}
	return rows
}

// row lays out text at fixed columns. Styled text carries escape codes, so
// callers pass its printable width; -1 means len(text).
type row struct {
	b     strings.Builder
	width int
}

func (r *row) put(col int, text string, width int) {
	if width < 0 {
		width = len(text)
	}
	if pad := col - r.width; pad > 0 {
		r.b.WriteString(strings.Repeat(" ", pad))
		r.width += pad
	} else if r.width > 0 {
		r.b.WriteByte(' ')
		r.width++
	}
	r.b.WriteString(text)
	r.width += width
}

func (r *row) String() string { return r.b.String() }

func centre(s string, width int) string {
	pad := (width - len(s)) / 2
	if pad <= 0 {
		return s
	}
	return strings.Repeat(" ", pad) + s
}
