package motion

import "github.com/cory-johannsen/dicetable/internal/game/dice"

// Zone classifies a cell by the walls it touches.
type Zone int

const (
	Interior Zone = iota
	TopLeftCorner
	TopRightCorner
	BottomLeftCorner
	BottomRightCorner
	LeftWall
	RightWall
	Floor
	Ceiling
)

// Classify returns the zone p sits in. Corners take precedence over single
// walls; single walls are checked left, right, floor, then ceiling.
func (b Bounds) Classify(p Position, twoDigit bool) Zone {
	right := b.rightWall(twoDigit)
	atLeft := p.Col <= b.Left
	atRight := p.Col >= right
	atTop := p.Row <= b.Top
	atBottom := p.Row >= b.Bottom

	switch {
	case atLeft && atTop:
		return TopLeftCorner
	case atRight && atTop:
		return TopRightCorner
	case atLeft && atBottom:
		return BottomLeftCorner
	case atRight && atBottom:
		return BottomRightCorner
	case atLeft:
		return LeftWall
	case atRight:
		return RightWall
	case atBottom:
		return Floor
	case atTop:
		return Ceiling
	}
	return Interior
}

// WillCollide reports whether a die heading dir runs into a surface lying in
// direction surface from it. For a corner surface (a diagonal) any heading
// with a component into either of its walls collides.
func WillCollide(surface, dir Direction) bool {
	switch surface {
	case Up:
		return dir == Up || dir == UpLeft || dir == UpRight
	case Down:
		return dir == Down || dir == DownLeft || dir == DownRight
	case Left:
		return dir == Left || dir == UpLeft || dir == DownLeft
	case Right:
		return dir == Right || dir == UpRight || dir == DownRight
	case UpLeft:
		return dir != Down && dir != Right && dir != DownRight
	case UpRight:
		return dir != Down && dir != Left && dir != DownLeft
	case DownLeft:
		return dir != Up && dir != Right && dir != UpRight
	case DownRight:
		return dir != Up && dir != Left && dir != UpLeft
	}
	return false
}

type bounceKey struct {
	dir      Direction
	wall     bool
	redirect bool
}

// diagonalBounces is the single-surface table for diagonal headings. wall is
// true for the side walls and false for the floor and ceiling.
var diagonalBounces = map[bounceKey]Direction{
	{UpLeft, false, false}: DownLeft,
	{UpLeft, true, false}:  UpRight,
	{UpLeft, false, true}:  Down,
	{UpLeft, true, true}:   Right,

	{UpRight, false, false}: DownRight,
	{UpRight, true, false}:  UpLeft,
	{UpRight, false, true}:  Down,
	{UpRight, true, true}:   Left,

	{DownLeft, false, false}: UpLeft,
	{DownLeft, true, false}:  DownRight,
	{DownLeft, false, true}:  Up,
	{DownLeft, true, true}:   Right,

	{DownRight, false, false}: UpRight,
	{DownRight, true, false}:  DownLeft,
	{DownRight, false, true}:  Up,
	{DownRight, true, true}:   Left,
}

// cardinalRedirects holds the two diagonals a cardinal heading may redirect
// to, indexed by the coin toss.
var cardinalRedirects = map[Direction][2]Direction{
	Up:    {DownLeft, DownRight},
	Down:  {UpLeft, UpRight},
	Left:  {UpRight, DownRight},
	Right: {UpLeft, DownLeft},
}

// Bounce returns the heading after dir strikes a single surface.
// wall is true for side walls. redirect selects the alternate outcome; option
// picks between the two redirects available to a cardinal heading.
//
// Postcondition: pure; the same inputs always give the same heading.
func Bounce(dir Direction, wall, redirect, option bool) Direction {
	if pair, ok := cardinalRedirects[dir]; ok {
		if !redirect {
			return dir.Opposite()
		}
		if option {
			return pair[1]
		}
		return pair[0]
	}
	if out, ok := diagonalBounces[bounceKey{dir, wall, redirect}]; ok {
		return out
	}
	return dir
}

// Resolver decides post-collision headings. It draws the redirect chance and
// the redirect coin toss from src only when a single-surface bounce happens.
type Resolver struct {
	bounds         Bounds
	src            dice.Source
	redirectChance int
}

// NewResolver returns a Resolver for bounds that redirects one bounce in
// redirectChance.
//
// Precondition: src non-nil; redirectChance >= 1.
func NewResolver(bounds Bounds, src dice.Source, redirectChance int) *Resolver {
	if redirectChance < 1 {
		panic("motion: redirect chance must be >= 1")
	}
	return &Resolver{bounds: bounds, src: src, redirectChance: redirectChance}
}

// Bounds returns the arena the resolver bounces against.
func (r *Resolver) Bounds() Bounds { return r.bounds }

// Resolve returns the heading a die at p moving dir should take this step.
// It never changes the position.
//
// Postcondition: a corner collision always returns the diagonal pointing away
// from that corner; no collision returns dir unchanged.
func (r *Resolver) Resolve(p Position, dir Direction, twoDigit bool) Direction {
	switch r.bounds.Classify(p, twoDigit) {
	case TopLeftCorner:
		return cornerBounce(UpLeft, dir)
	case TopRightCorner:
		return cornerBounce(UpRight, dir)
	case BottomLeftCorner:
		return cornerBounce(DownLeft, dir)
	case BottomRightCorner:
		return cornerBounce(DownRight, dir)
	case LeftWall:
		return r.wallBounce(Left, dir, true)
	case RightWall:
		return r.wallBounce(Right, dir, true)
	case Floor:
		return r.wallBounce(Down, dir, false)
	case Ceiling:
		return r.wallBounce(Up, dir, false)
	}
	return dir
}

func cornerBounce(corner, dir Direction) Direction {
	if WillCollide(corner, dir) {
		return corner.Opposite()
	}
	return dir
}

func (r *Resolver) wallBounce(surface, dir Direction, wall bool) Direction {
	if !WillCollide(surface, dir) {
		return dir
	}
	redirect := dice.OneIn(r.src, r.redirectChance)
	option := r.src.Intn(2) == 1
	return Bounce(dir, wall, redirect, option)
}
