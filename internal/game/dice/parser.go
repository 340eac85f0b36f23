package dice

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Limits applied by ParseRoll.
const (
	DieLimit         = 99
	CoefficientLimit = 99
	ModifierLimit    = 99
)

const (
	advPrefix    = "adv"
	disadvPrefix = "disadv"
)

// Parse failures. Every error returned by ParseRoll wraps exactly one of these.
var (
	ErrCoefficient = errors.New("coefficient error")
	ErrDieType     = errors.New("die type error")
	ErrModifier    = errors.New("modifier error")
	ErrLimit       = errors.New("limit exceeded")
	ErrRule        = errors.New("roll rule violated")
)

// ParseRoll parses a full roll line such as "2d6+3, d12", "adv d20-1" or "d%".
// Commands are separated by ',' or '/'.
//
// Precondition: none; any string is accepted.
// Postcondition: Returns a Roll whose Dice == Expand(Mode, Commands), or an
// error wrapping one of the Err* sentinels.
func ParseRoll(line string) (Roll, error) {
	input := strings.ToLower(strings.TrimSpace(line))
	if input == "" {
		return Roll{}, fmt.Errorf("%w: empty roll", ErrDieType)
	}
	// Empty terms are kept, so "adv d20," counts as two commands and "d6,"
	// fails on its missing second command.
	terms := strings.Split(strings.ReplaceAll(input, "/", ","), ",")

	mode := Normal
	cmds := make([]Command, 0, len(terms))
	for _, term := range terms {
		term = strings.TrimSpace(term)

		// disadv must be checked first: it starts with "adv" after the "dis".
		prefixed := Normal
		switch {
		case strings.HasPrefix(term, disadvPrefix):
			prefixed = Disadvantage
			term = strings.TrimSpace(strings.TrimPrefix(term, disadvPrefix))
		case strings.HasPrefix(term, advPrefix):
			prefixed = Advantage
			term = strings.TrimSpace(strings.TrimPrefix(term, advPrefix))
		}
		if prefixed != Normal {
			mode = prefixed
		}

		cmd, err := ParseCommand(term)
		if err != nil {
			return Roll{}, err
		}
		if cmd.Kind == PercentTens {
			if prefixed != Normal {
				return Roll{}, fmt.Errorf("%w: you cannot roll advantage/disadvantage on a d100", ErrRule)
			}
			mode = Percentile
		}
		if err := validate(mode, cmd, len(terms)); err != nil {
			return Roll{}, err
		}
		cmds = append(cmds, cmd)
	}

	dice := Expand(mode, cmds)
	if len(dice) > DieLimit {
		return Roll{}, fmt.Errorf("%w: cannot roll %d dice (max %d)", ErrLimit, len(dice), DieLimit)
	}
	return Roll{Mode: mode, Commands: cmds, Dice: dice}, nil
}

// ParseCommand parses a single "CdK+M" term. The coefficient defaults to 1
// and the modifier to 0; "d%" and "d100" select PercentTens.
//
// Postcondition: Returns a Command or an error wrapping ErrCoefficient,
// ErrDieType, or ErrModifier.
func ParseCommand(term string) (Command, error) {
	s := strings.ToLower(strings.TrimSpace(term))
	dIdx := strings.IndexByte(s, 'd')
	if dIdx < 0 {
		return Command{}, fmt.Errorf("%w: missing 'd' in %q", ErrCoefficient, term)
	}

	coefficient := 1
	if countStr := strings.TrimSpace(s[:dIdx]); countStr != "" {
		n, err := strconv.Atoi(countStr)
		if err != nil || n < 0 || !isDigit(countStr[0]) {
			return Command{}, fmt.Errorf("%w: invalid die count in %q", ErrCoefficient, term)
		}
		coefficient = n
	}

	rest := s[dIdx+1:]
	if strings.Count(rest, "+")+strings.Count(rest, "-") > 1 {
		return Command{}, fmt.Errorf("%w: more than one modifier in %q", ErrModifier, term)
	}
	opIdx := strings.IndexAny(rest, "+-")
	sidesStr, modStr := rest, ""
	if opIdx >= 0 {
		sidesStr, modStr = rest[:opIdx], rest[opIdx:]
	}

	kind, err := parseKind(strings.TrimSpace(sidesStr))
	if err != nil {
		return Command{}, fmt.Errorf("%w: %q", err, term)
	}

	modifier := 0
	if modStr != "" {
		// strconv rejects "+ 3", so the sign and magnitude are parsed apart.
		n, err := strconv.Atoi(strings.TrimSpace(modStr[1:]))
		if err != nil || n < 0 {
			return Command{}, fmt.Errorf("%w: invalid modifier in %q", ErrModifier, term)
		}
		if modStr[0] == '-' {
			n = -n
		}
		modifier = n
	}

	return Command{Coefficient: coefficient, Kind: kind, Modifier: modifier}, nil
}

func isDigit(b byte) bool { return b >= '0' && b <= '9' }

func parseKind(sides string) (Kind, error) {
	if sides == "%" {
		return PercentTens, nil
	}
	n, err := strconv.Atoi(sides)
	if err != nil {
		return 0, ErrDieType
	}
	k, ok := KindFromSides(n)
	if !ok {
		return 0, ErrDieType
	}
	return k, nil
}

func validate(mode Mode, cmd Command, commandCount int) error {
	if cmd.Coefficient == 0 {
		return fmt.Errorf("%w: coefficient cannot be zero", ErrCoefficient)
	}
	if cmd.Coefficient > CoefficientLimit {
		return fmt.Errorf("%w: coefficient limit exceeded", ErrLimit)
	}
	if cmd.Modifier > ModifierLimit || cmd.Modifier < -ModifierLimit {
		return fmt.Errorf("%w: modifier limit exceeded", ErrLimit)
	}
	if mode != Normal && cmd.Coefficient != 1 {
		return fmt.Errorf("%w: you cannot have a coefficient on this roll", ErrRule)
	}
	if mode != Normal && commandCount != 1 {
		return fmt.Errorf("%w: you cannot throw extra dice on advantage, disadvantage, and percentile rolls", ErrRule)
	}
	return nil
}
