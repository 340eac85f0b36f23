package terminal

import (
	"github.com/cory-johannsen/dicetable/internal/game/dice"
	"github.com/cory-johannsen/dicetable/internal/game/motion"
	"github.com/cory-johannsen/dicetable/internal/game/outcome"
	"github.com/cory-johannsen/dicetable/internal/game/table"
)

// Renderer draws dice as they move. It implements table.Observer, so every
// drained update erases a die's old glyph and draws the new one.
type Renderer struct {
	screen *Screen
	bounds motion.Bounds
}

var _ table.Observer = (*Renderer)(nil)

// NewRenderer creates a Renderer for a roll thrown inside bounds.
//
// Precondition: screen non-nil.
func NewRenderer(screen *Screen, bounds motion.Bounds) *Renderer {
	return &Renderer{screen: screen, bounds: bounds}
}

// drawCol is where a face's first character goes. A two-character face on
// the last column of b is drawn one column left so it never wraps; the die's
// recorded position is unchanged.
func drawCol(b motion.Bounds, p motion.Position, label string) int {
	if len(label) > 1 && p.Col >= b.Right {
		return p.Col - 1
	}
	return p.Col
}

func (r *Renderer) draw(b motion.Bounds, d table.Die) {
	label := d.Label()
	r.screen.At(drawCol(b, d.Position, label), d.Position.Row, label)
}

// OnSpawn draws a die at its spawn cell.
func (r *Renderer) OnSpawn(d table.Die) {
	r.draw(r.bounds, d)
	_ = r.screen.Flush()
}

// OnUpdate erases the glyph previous left behind, wide enough for a
// two-character face, then draws d.
func (r *Renderer) OnUpdate(d table.Die, previous table.Entry) {
	old := d.Kind.Label(previous.Face)
	r.screen.At(drawCol(r.bounds, previous.Position, old), previous.Position.Row, spaces(len(old)))
	r.draw(r.bounds, d)
	_ = r.screen.Flush()
}

// view returns the screen as it is now. The terminal may have shrunk since
// the roll's bounds were taken; the roll's bounds are used when the size
// cannot be read or is too small for an arena.
func (r *Renderer) view() motion.Bounds {
	cols, rows, err := r.screen.Size()
	if err != nil {
		return r.bounds
	}
	b, err := motion.NewBounds(cols, rows)
	if err != nil {
		return r.bounds
	}
	return b
}

// Redraw clears the screen and draws every die in snap, restoring glyphs
// that overlapping dice erased, then colours crits. Dice left outside a
// shrunken screen are pulled in to its edge.
func (r *Renderer) Redraw(snap []table.Die) error {
	v := r.view()
	placed := make([]table.Die, len(snap))
	for i, d := range snap {
		d.Position = v.Clamp(d.Position)
		placed[i] = d
	}
	r.screen.Clear()
	for _, d := range placed {
		r.draw(v, d)
	}
	r.critColour(v, placed)
	return r.screen.Flush()
}

// critColour redraws natural 1s on d20s in red and natural 20s in green.
func (r *Renderer) critColour(v motion.Bounds, snap []table.Die) {
	for _, d := range snap {
		if d.Kind != dice.D20 {
			continue
		}
		label := d.Label()
		styled := CritStyle(outcome.Face{Value: d.Face, Kind: d.Kind, Crit: outcome.CritOf(d.Kind, d.Face)})
		if styled == label {
			continue
		}
		r.screen.At(drawCol(v, d.Position, label), d.Position.Row, styled)
	}
}

// CritStyle is an outcome.Styler that colours natural 20s green and natural
// 1s red. Other faces are returned plain.
func CritStyle(f outcome.Face) string {
	switch f.Crit {
	case outcome.NaturalMax:
		return Colorize(Green, f.Label())
	case outcome.NaturalMin:
		return Colorize(Red, f.Label())
	}
	return f.Label()
}
