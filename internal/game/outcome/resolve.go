// Package outcome reduces the settled faces of a roll to its result under
// the roll's mode, and renders that result as a table or a one-line summary.
package outcome

import (
	"fmt"

	"github.com/cory-johannsen/dicetable/internal/game/dice"
)

// PercentileZero is the value of a percentile roll showing "00" and "0".
// A 0 on the ones die otherwise counts as 0: 10 + 0 is 10, not 20.
const PercentileZero = 100

// Crit marks a natural extreme on a d20.
type Crit int

const (
	NoCrit Crit = iota
	NaturalMax
	NaturalMin
)

// Face is one settled die as it enters the result.
type Face struct {
	Value int
	Kind  dice.Kind
	Crit  Crit
}

// Label renders the face the way the table shows it.
func (f Face) Label() string { return f.Kind.Label(f.Value) }

// Line is one command's share of the result.
type Line struct {
	Command dice.Command
	Faces   []Face
	// Subtotal is the dice before the modifier: the sum for Normal, the kept
	// face for Advantage and Disadvantage, and the combined value for Percentile.
	Subtotal int
	// Total is Subtotal + Command.Modifier.
	Total int
}

// Result is a resolved roll.
type Result struct {
	Mode  dice.Mode
	Lines []Line
	// Selected is the kept face for Advantage and Disadvantage, and the
	// combined value for Percentile. Zero for Normal.
	Selected int
	Total    int
}

// Faces returns every face of every line in id order.
func (r Result) Faces() []Face {
	var out []Face
	for _, l := range r.Lines {
		out = append(out, l.Faces...)
	}
	return out
}

// AssessmentError reports a roll whose die count does not fit its mode.
// It indicates a caller bug, never a bad throw.
type AssessmentError struct {
	Mode  dice.Mode
	Count int
	Want  int
}

func (e *AssessmentError) Error() string {
	return fmt.Sprintf("outcome: cannot assess %s with %d dice (want %d)", e.Mode, e.Count, e.Want)
}

// Resolve computes the result of a settled roll. faces are the final faces in
// die id order.
//
// Precondition: cmds is the roll's command list; faces has one entry per die.
// Postcondition: Returns a Result, or an *AssessmentError when len(faces) does
// not match what mode requires. Never guesses which faces to use.
func Resolve(mode dice.Mode, cmds []dice.Command, faces []int) (Result, error) {
	switch mode {
	case dice.Normal:
		return resolveNormal(cmds, faces)
	case dice.Advantage, dice.Disadvantage:
		return resolveKeep(mode, cmds, faces)
	case dice.Percentile:
		return resolvePercentile(cmds, faces)
	}
	return Result{}, fmt.Errorf("outcome: unknown mode %d", int(mode))
}

func resolveNormal(cmds []dice.Command, faces []int) (Result, error) {
	want := 0
	for _, c := range cmds {
		want += c.Coefficient
	}
	if len(cmds) == 0 || len(faces) != want {
		return Result{}, &AssessmentError{Mode: dice.Normal, Count: len(faces), Want: want}
	}

	res := Result{Mode: dice.Normal, Lines: make([]Line, 0, len(cmds))}
	next := 0
	for _, c := range cmds {
		line := Line{Command: c, Faces: make([]Face, 0, c.Coefficient)}
		for _, v := range faces[next : next+c.Coefficient] {
			line.Faces = append(line.Faces, Face{Value: v, Kind: c.Kind, Crit: CritOf(c.Kind, v)})
			line.Subtotal += v
		}
		next += c.Coefficient
		line.Total = line.Subtotal + c.Modifier
		res.Total += line.Total
		res.Lines = append(res.Lines, line)
	}
	return res, nil
}

func resolveKeep(mode dice.Mode, cmds []dice.Command, faces []int) (Result, error) {
	if len(cmds) != 1 || len(faces) != 2 {
		return Result{}, &AssessmentError{Mode: mode, Count: len(faces), Want: 2}
	}
	c := cmds[0]
	selected := max(faces[0], faces[1])
	if mode == dice.Disadvantage {
		selected = min(faces[0], faces[1])
	}

	line := Line{Command: c, Subtotal: selected, Total: selected + c.Modifier}
	for _, v := range faces {
		// Only the kept face can be a crit; a discarded 20 is just a 20.
		crit := NoCrit
		if v == selected {
			crit = CritOf(c.Kind, v)
		}
		line.Faces = append(line.Faces, Face{Value: v, Kind: c.Kind, Crit: crit})
	}
	return Result{Mode: mode, Lines: []Line{line}, Selected: selected, Total: line.Total}, nil
}

func resolvePercentile(cmds []dice.Command, faces []int) (Result, error) {
	if len(cmds) != 1 || len(faces) != 2 {
		return Result{}, &AssessmentError{Mode: dice.Percentile, Count: len(faces), Want: 2}
	}
	c := cmds[0]
	sum := faces[0] + faces[1]
	if sum == 0 {
		sum = PercentileZero
	}
	line := Line{
		Command: c,
		Faces: []Face{
			{Value: faces[0], Kind: dice.PercentTens},
			{Value: faces[1], Kind: dice.PercentOnes},
		},
		Subtotal: sum,
		Total:    sum + c.Modifier,
	}
	return Result{Mode: dice.Percentile, Lines: []Line{line}, Selected: sum, Total: line.Total}, nil
}

// CritOf classifies face v of a die of kind. Only d20s crit.
func CritOf(kind dice.Kind, v int) Crit {
	if kind != dice.D20 {
		return NoCrit
	}
	switch v {
	case 20:
		return NaturalMax
	case 1:
		return NaturalMin
	}
	return NoCrit
}
