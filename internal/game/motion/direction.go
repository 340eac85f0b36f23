// Package motion simulates dice sliding and bouncing around a rectangular
// arena. Each Die owns its kinetic state and steps on its own goroutine until
// friction brings it to rest.
package motion

import "github.com/cory-johannsen/dicetable/internal/game/dice"

// Direction is one of nine discrete movement vectors.
type Direction int

const (
	None Direction = iota
	Up
	Down
	Left
	Right
	UpLeft
	UpRight
	DownLeft
	DownRight
)

var moving = [...]Direction{Up, Down, Left, Right, UpLeft, UpRight, DownLeft, DownRight}

var directionNames = map[Direction]string{
	None:      "none",
	Up:        "up",
	Down:      "down",
	Left:      "left",
	Right:     "right",
	UpLeft:    "up-left",
	UpRight:   "up-right",
	DownLeft:  "down-left",
	DownRight: "down-right",
}

// RandomDirection draws uniformly among the eight moving directions.
//
// Postcondition: never returns None.
func RandomDirection(src dice.Source) Direction {
	return moving[src.Intn(len(moving))]
}

// Moving returns the eight non-stationary directions.
func Moving() []Direction {
	out := make([]Direction, len(moving))
	copy(out, moving[:])
	return out
}

// Delta returns the (column, row) unit step for d. Rows grow downward.
func (d Direction) Delta() (dc, dr int) {
	switch d {
	case Up:
		return 0, -1
	case Down:
		return 0, 1
	case Left:
		return -1, 0
	case Right:
		return 1, 0
	case UpLeft:
		return -1, -1
	case UpRight:
		return 1, -1
	case DownLeft:
		return -1, 1
	case DownRight:
		return 1, 1
	}
	return 0, 0
}

// Opposite returns the direction pointing the other way.
func (d Direction) Opposite() Direction {
	switch d {
	case Up:
		return Down
	case Down:
		return Up
	case Left:
		return Right
	case Right:
		return Left
	case UpLeft:
		return DownRight
	case UpRight:
		return DownLeft
	case DownLeft:
		return UpRight
	case DownRight:
		return UpLeft
	}
	return None
}

func (d Direction) String() string {
	if s, ok := directionNames[d]; ok {
		return s
	}
	return "invalid"
}
