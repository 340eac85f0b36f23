package dice

import (
	"fmt"
	"strings"
)

// Mode is the rule applied to a whole roll invocation.
type Mode int

const (
	Normal Mode = iota
	Advantage
	Disadvantage
	Percentile
)

// String returns the banner shown for a roll in mode m.
func (m Mode) String() string {
	switch m {
	case Normal:
		return "Normal roll"
	case Advantage:
		return "Advantage roll"
	case Disadvantage:
		return "Disadvantage roll"
	case Percentile:
		return "Percentile roll"
	}
	return fmt.Sprintf("Mode(%d)", int(m))
}

// Command is one validated "CdK+M" term of a roll.
type Command struct {
	Coefficient int
	Kind        Kind
	Modifier    int
}

// String returns the canonical notation, e.g. "3d6+2", "1d20-1", "1d100".
func (c Command) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%dd%d", c.Coefficient, c.Kind.Number())
	if c.Modifier != 0 {
		fmt.Fprintf(&b, "%+d", c.Modifier)
	}
	return b.String()
}

// Roll is a parsed roll invocation: its mode, its commands in input order,
// and the flattened dice to throw. Die ids are indexes into Dice.
type Roll struct {
	Mode     Mode
	Commands []Command
	Dice     []Kind
}

// Expand flattens commands into the dice thrown for mode.
//
// Postcondition: Normal yields Coefficient copies of each command's kind;
// Advantage and Disadvantage yield exactly two copies of the first command's
// kind; Percentile yields PercentTens followed by PercentOnes.
func Expand(mode Mode, cmds []Command) []Kind {
	switch mode {
	case Advantage, Disadvantage:
		if len(cmds) == 0 {
			return nil
		}
		return []Kind{cmds[0].Kind, cmds[0].Kind}
	case Percentile:
		return []Kind{PercentTens, PercentOnes}
	}
	var out []Kind
	for _, c := range cmds {
		for i := 0; i < c.Coefficient; i++ {
			out = append(out, c.Kind)
		}
	}
	return out
}
