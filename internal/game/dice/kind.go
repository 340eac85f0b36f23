package dice

import (
	"fmt"
	"strconv"
)

// Kind is a die type.
type Kind int

const (
	D2 Kind = iota
	D4
	D6
	D10
	D12
	D20
	// PercentTens is the tens-place die of a percentile roll; it shows 0, 10, ..., 90.
	PercentTens
	// PercentOnes is the ones-place die of a percentile roll; it shows 0..9.
	PercentOnes
)

type kindSpec struct {
	maxFace      int
	acceleration int
	number       int
}

var kindSpecs = map[Kind]kindSpec{
	D2:          {maxFace: 2, acceleration: -10, number: 2},
	D4:          {maxFace: 4, acceleration: -7, number: 4},
	D6:          {maxFace: 6, acceleration: -4, number: 6},
	D10:         {maxFace: 10, acceleration: -3, number: 10},
	D12:         {maxFace: 12, acceleration: -2, number: 12},
	D20:         {maxFace: 20, acceleration: -1, number: 20},
	PercentTens: {maxFace: 10, acceleration: -3, number: 100},
	PercentOnes: {maxFace: 10, acceleration: -3, number: 100},
}

func (k Kind) spec() kindSpec {
	s, ok := kindSpecs[k]
	if !ok {
		panic(fmt.Sprintf("dice: unknown kind %d", int(k)))
	}
	return s
}

// Kinds returns every kind in declaration order.
func Kinds() []Kind {
	return []Kind{D2, D4, D6, D10, D12, D20, PercentTens, PercentOnes}
}

// MaxFace is the upper bound of the raw uniform draw for k.
func (k Kind) MaxFace() int { return k.spec().maxFace }

// Acceleration is the speed lost per step. Always negative.
func (k Kind) Acceleration() int { return k.spec().acceleration }

// Number is the die size as written in a roll command ("d20" → 20, percentile → 100).
func (k Kind) Number() int { return k.spec().number }

// DisplayValue maps a raw draw in [1, MaxFace] to the face shown on the die.
//
// Postcondition: PercentTens returns 10*(raw-1); PercentOnes returns raw-1;
// every other kind returns raw unchanged.
func (k Kind) DisplayValue(raw int) int {
	switch k {
	case PercentTens:
		return 10 * (raw - 1)
	case PercentOnes:
		return raw - 1
	default:
		return raw
	}
}

// Flip draws a fresh face for k.
//
// Precondition: src must be non-nil.
func (k Kind) Flip(src Source) int {
	return k.DisplayValue(Between(src, 1, k.MaxFace()))
}

// IsTwoDigits reports whether face renders as two characters.
// The tens die always does: its zero face is drawn as "00".
func (k Kind) IsTwoDigits(face int) bool {
	return face >= 10 || k == PercentTens
}

// Label renders face the way it is drawn on the table.
func (k Kind) Label(face int) string {
	if k == PercentTens && face == 0 {
		return "00"
	}
	return strconv.Itoa(face)
}

// String returns the dice-notation name of k, e.g. "d20" or "d100".
func (k Kind) String() string {
	switch k {
	case PercentTens:
		return "d100"
	case PercentOnes:
		return "d10(ones)"
	}
	if s, ok := kindSpecs[k]; ok {
		return "d" + strconv.Itoa(s.number)
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// KindFromSides returns the kind rolled for an "N" in "dN".
// 100 selects PercentTens; the ones die is added by Expand.
func KindFromSides(sides int) (Kind, bool) {
	switch sides {
	case 2:
		return D2, true
	case 4:
		return D4, true
	case 6:
		return D6, true
	case 10:
		return D10, true
	case 12:
		return D12, true
	case 20:
		return D20, true
	case 100:
		return PercentTens, true
	}
	return 0, false
}
