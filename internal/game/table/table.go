// Package table aggregates the update streams of concurrently rolling dice
// into a single last-known state per die.
package table

import (
	"fmt"
	"sync"

	"github.com/elliotchance/orderedmap/v2"

	"github.com/cory-johannsen/dicetable/internal/game/dice"
	"github.com/cory-johannsen/dicetable/internal/game/motion"
)

// Entry is the last known state of one die.
type Entry struct {
	Position motion.Position
	Face     int
}

// Die is an Entry joined with its id and kind.
type Die struct {
	ID       int
	Kind     dice.Kind
	Face     int
	Position motion.Position
}

// Label renders the die's face as drawn on the table.
func (d Die) Label() string { return d.Kind.Label(d.Face) }

// Table holds the authoritative state of every die in one roll, keyed by id
// in spawn order. Entries are last-write-wins. It is safe for concurrent use.
type Table struct {
	mu    sync.RWMutex
	kinds map[int]dice.Kind
	state *orderedmap.OrderedMap[int, Entry]
}

// New returns an empty Table.
func New() *Table {
	return &Table{
		kinds: make(map[int]dice.Kind),
		state: orderedmap.NewOrderedMap[int, Entry](),
	}
}

// Register records die id with its kind and spawn state. Registering ids in
// ascending order keeps Snapshot and Faces in id order.
//
// Precondition: id has not been registered before in this Table.
func (t *Table) Register(id int, kind dice.Kind, initial Entry) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if _, ok := t.kinds[id]; ok {
		panic(fmt.Sprintf("table: die id %d registered twice", id))
	}
	t.kinds[id] = kind
	t.state.Set(id, initial)
}

// Apply stores u as the latest state of its die and returns the state it replaced.
//
// Postcondition: existed is false only for an id never registered or applied.
func (t *Table) Apply(u motion.Update) (previous Entry, existed bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	previous, existed = t.state.Get(u.ID)
	t.state.Set(u.ID, Entry{Position: u.Position, Face: u.Face})
	return previous, existed
}

// Kind returns the kind registered for id.
func (t *Table) Kind(id int) (dice.Kind, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	k, ok := t.kinds[id]
	return k, ok
}

// Get returns the current state of die id.
func (t *Table) Get(id int) (Die, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	e, ok := t.state.Get(id)
	if !ok {
		return Die{}, false
	}
	return Die{ID: id, Kind: t.kinds[id], Face: e.Face, Position: e.Position}, true
}

// Len is the number of dice on the table.
func (t *Table) Len() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.state.Len()
}

// Snapshot copies every die's current state in id order. It may be called
// while dice are still rolling.
func (t *Table) Snapshot() []Die {
	t.mu.RLock()
	defer t.mu.RUnlock()
	out := make([]Die, 0, t.state.Len())
	for el := t.state.Front(); el != nil; el = el.Next() {
		out = append(out, Die{ID: el.Key, Kind: t.kinds[el.Key], Face: el.Value.Face, Position: el.Value.Position})
	}
	return out
}

// Faces returns every die's current face in id order.
func (t *Table) Faces() []int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	out := make([]int, 0, t.state.Len())
	for el := t.state.Front(); el != nil; el = el.Next() {
		out = append(out, el.Value.Face)
	}
	return out
}
