package table

import (
	"errors"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/cory-johannsen/dicetable/internal/game/dice"
	"github.com/cory-johannsen/dicetable/internal/game/motion"
)

// ErrNoDice is returned by Throw and Roll for a roll with nothing to throw.
var ErrNoDice = errors.New("table: roll has no dice")

// Observer receives every update as it is drained, for live drawing.
// Calls happen on the goroutine that called Roll, one at a time.
type Observer interface {
	// OnSpawn is called once per die, in id order, before any die moves.
	OnSpawn(d Die)
	// OnUpdate is called after the table has applied u. previous is the
	// state u replaced.
	OnUpdate(d Die, previous Entry)
}

// Options configures a Throw.
type Options struct {
	// Bounds is the arena snapshot every die bounces inside.
	Bounds motion.Bounds
	Tuning motion.Tuning
	Source dice.Source
	// Observer may be nil.
	Observer Observer
	Logger   *zap.Logger
}

// Throw rolls roll.Dice on a new Table. See Roll.
func Throw(roll dice.Roll, opts Options) (*Table, error) {
	t := New()
	if err := t.Roll(roll, opts); err != nil {
		return nil, err
	}
	return t, nil
}

// Roll rolls roll.Dice concurrently, one goroutine per die, and blocks until
// every die has come to rest. Die ids are indexes into roll.Dice. The
// observer may read t while the dice are rolling.
//
// Precondition: t is empty; opts.Source and opts.Logger non-nil.
// Postcondition: t holds the final state of every die.
func (t *Table) Roll(roll dice.Roll, opts Options) error {
	if len(roll.Dice) == 0 {
		return ErrNoDice
	}
	start := time.Now()

	dieSet := make([]*motion.Die, len(roll.Dice))
	for id, kind := range roll.Dice {
		d := motion.NewDie(id, kind, opts.Bounds, opts.Source, opts.Tuning)
		dieSet[id] = d
		t.Register(id, kind, Entry{Position: d.Position(), Face: d.Face()})
		if opts.Observer != nil {
			opts.Observer.OnSpawn(Die{ID: id, Kind: kind, Face: d.Face(), Position: d.Position()})
		}
	}

	in := make(chan motion.Update)
	var wg sync.WaitGroup
	for _, d := range dieSet {
		wg.Add(1)
		go func(d *motion.Die) {
			defer wg.Done()
			steps := d.Run(in)
			opts.Logger.Debug("die settled",
				zap.Int("id", d.ID()),
				zap.Stringer("kind", d.Kind()),
				zap.Int("face", d.Face()),
				zap.Int("steps", steps),
			)
		}(d)
	}
	go func() {
		wg.Wait()
		close(in)
	}()

	updates := 0
	for u := range relay(in) {
		prev, _ := t.Apply(u)
		updates++
		if opts.Observer != nil {
			kind, _ := t.Kind(u.ID)
			opts.Observer.OnUpdate(Die{ID: u.ID, Kind: kind, Face: u.Face, Position: u.Position}, prev)
		}
	}

	opts.Logger.Debug("roll settled",
		zap.Stringer("mode", roll.Mode),
		zap.Int("dice", t.Len()),
		zap.Ints("faces", t.Faces()),
		zap.Int("updates", updates),
		zap.Duration("elapsed", time.Since(start)),
	)
	return nil
}

// relay forwards everything sent on in to the returned channel through an
// unbounded buffer, so a slow reader never holds up a rolling die. The
// returned channel closes once in is closed and the buffer is empty.
func relay(in <-chan motion.Update) <-chan motion.Update {
	out := make(chan motion.Update)
	go func() {
		defer close(out)
		var pending []motion.Update
		for in != nil || len(pending) > 0 {
			var send chan<- motion.Update
			var next motion.Update
			if len(pending) > 0 {
				send = out
				next = pending[0]
			}
			select {
			case u, ok := <-in:
				if !ok {
					in = nil
					continue
				}
				pending = append(pending, u)
			case send <- next:
				pending = pending[1:]
			}
		}
	}()
	return out
}
