package motion

import (
	"time"

	"github.com/cory-johannsen/dicetable/internal/game/dice"
)

// StopSpeed is the speed at or below which a die comes to rest.
const StopSpeed = 0

// Tuning holds the physics knobs shared by every die in a roll.
type Tuning struct {
	// MinSpeed and MaxSpeed bound the initial speed, in steps per second.
	MinSpeed int
	MaxSpeed int
	// RedirectChance is the reciprocal of the chance a wall bounce redirects.
	RedirectChance int
	// Sleep suspends a die between steps. nil means time.Sleep.
	Sleep func(time.Duration)
}

// DefaultTuning returns the stock speeds (60..120) and a one-in-five redirect.
func DefaultTuning() Tuning {
	return Tuning{MinSpeed: 60, MaxSpeed: 120, RedirectChance: 5}
}

// Update is a die's state after one step.
type Update struct {
	ID       int
	Face     int
	Position Position
}

// Die is a single rolling die. All of its fields are owned by the goroutine
// running Run; nothing else reads or writes them while it rolls.
type Die struct {
	id        int
	kind      dice.Kind
	face      int
	position  Position
	speed     int
	direction Direction

	src      dice.Source
	resolver *Resolver
	sleep    func(time.Duration)
}

// NewDie spawns die id of kind at a random cell in the central quarter of
// bounds with a random heading and an initial speed drawn from tuning.
//
// Precondition: src non-nil; tuning.MinSpeed <= tuning.MaxSpeed.
func NewDie(id int, kind dice.Kind, bounds Bounds, src dice.Source, tuning Tuning) *Die {
	return NewDieAt(id, kind, SpawnPoint(bounds, src), RandomDirection(src),
		dice.Between(src, tuning.MinSpeed, tuning.MaxSpeed), bounds, src, tuning)
}

// NewDieAt creates a die with explicit starting kinetics.
//
// Precondition: src non-nil; tuning.RedirectChance >= 1.
func NewDieAt(id int, kind dice.Kind, pos Position, dir Direction, speed int, bounds Bounds, src dice.Source, tuning Tuning) *Die {
	sleep := tuning.Sleep
	if sleep == nil {
		sleep = time.Sleep
	}
	return &Die{
		id:        id,
		kind:      kind,
		face:      kind.Flip(src),
		position:  pos,
		speed:     speed,
		direction: dir,
		src:       src,
		resolver:  NewResolver(bounds, src, tuning.RedirectChance),
		sleep:     sleep,
	}
}

// SpawnPoint picks a cell within width/8 columns and height/8 rows of the
// arena centre.
func SpawnPoint(b Bounds, src dice.Source) Position {
	c := b.Centre()
	hr := b.Width() / 8
	vr := b.Height() / 8
	return Position{
		Col: dice.Between(src, c.Col-hr, c.Col+hr),
		Row: dice.Between(src, c.Row-vr, c.Row+vr),
	}
}

func (d *Die) ID() int              { return d.id }
func (d *Die) Kind() dice.Kind      { return d.kind }
func (d *Die) Face() int            { return d.face }
func (d *Die) Position() Position   { return d.position }
func (d *Die) Speed() int           { return d.speed }
func (d *Die) Direction() Direction { return d.direction }

// Rolling reports whether the die still has speed.
func (d *Die) Rolling() bool { return d.speed > StopSpeed }

// Step flips the face, bounces off any wall the die is about to hit, and
// moves it one cell. It does not sleep or apply friction.
//
// Postcondition: Position stays inside the resolver's bounds when it started inside.
func (d *Die) Step() Update {
	d.face = d.kind.Flip(d.src)
	d.direction = d.resolver.Resolve(d.position, d.direction, d.kind.IsTwoDigits(d.face))
	dc, dr := d.direction.Delta()
	d.position = Position{Col: d.position.Col + dc, Row: d.position.Row + dr}
	return Update{ID: d.id, Face: d.face, Position: d.position}
}

// Interval is the pause between steps at the current speed: floor(1000/speed) ms.
//
// Precondition: Rolling().
func (d *Die) Interval() time.Duration {
	return time.Duration(1000/d.speed) * time.Millisecond
}

// Friction slows the die by its kind's acceleration.
func (d *Die) Friction() {
	d.speed += d.kind.Acceleration()
}

// Run steps the die until it stops, sending every update to out. The pause
// comes before friction so the slowest step still waits on a positive speed.
//
// Postcondition: returns after a finite number of sends; out is not closed.
func (d *Die) Run(out chan<- Update) int {
	steps := 0
	for d.Rolling() {
		out <- d.Step()
		steps++
		d.sleep(d.Interval())
		d.Friction()
	}
	return steps
}
