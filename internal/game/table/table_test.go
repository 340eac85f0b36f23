package table_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"pgregory.net/rapid"

	"github.com/cory-johannsen/dicetable/internal/game/dice"
	"github.com/cory-johannsen/dicetable/internal/game/motion"
	"github.com/cory-johannsen/dicetable/internal/game/table"
)

// recorder is an Observer that keeps every callback it sees.
type recorder struct {
	spawned []table.Die
	last    map[int]table.Die
	updates int
	prevOK  bool
}

func newRecorder() *recorder {
	return &recorder{last: make(map[int]table.Die), prevOK: true}
}

func (r *recorder) OnSpawn(d table.Die) {
	r.spawned = append(r.spawned, d)
	r.last[d.ID] = d
}

func (r *recorder) OnUpdate(d table.Die, previous table.Entry) {
	prior := r.last[d.ID]
	if prior.Position != previous.Position || prior.Face != previous.Face {
		r.prevOK = false
	}
	r.last[d.ID] = d
	r.updates++
}

func options(t require.TestingT, seed uint64, obs table.Observer) table.Options {
	b, err := motion.NewBounds(80, 24)
	require.NoError(t, err)
	tuning := motion.DefaultTuning()
	tuning.Sleep = func(time.Duration) {}
	return table.Options{
		Bounds:   b,
		Tuning:   tuning,
		Source:   dice.NewSeededSource(seed),
		Observer: obs,
		Logger:   zap.NewNop(),
	}
}

func TestTable_RegisterApplySnapshot(t *testing.T) {
	tb := table.New()
	tb.Register(0, dice.PercentTens, table.Entry{Position: motion.Position{Col: 5, Row: 5}, Face: 30})
	tb.Register(1, dice.PercentOnes, table.Entry{Position: motion.Position{Col: 6, Row: 5}, Face: 4})

	prev, ok := tb.Apply(motion.Update{ID: 1, Face: 7, Position: motion.Position{Col: 7, Row: 5}})
	require.True(t, ok)
	assert.Equal(t, 4, prev.Face)

	// Applying id 1 first must not reorder the snapshot.
	_, _ = tb.Apply(motion.Update{ID: 0, Face: 0, Position: motion.Position{Col: 4, Row: 5}})

	snap := tb.Snapshot()
	require.Len(t, snap, 2)
	assert.Equal(t, 0, snap[0].ID)
	assert.Equal(t, "00", snap[0].Label())
	assert.Equal(t, 1, snap[1].ID)
	assert.Equal(t, []int{0, 7}, tb.Faces())
	assert.Equal(t, 2, tb.Len())

	d, ok := tb.Get(1)
	require.True(t, ok)
	assert.Equal(t, dice.PercentOnes, d.Kind)
	_, ok = tb.Get(9)
	assert.False(t, ok)
}

func TestTable_RegisterTwicePanics(t *testing.T) {
	tb := table.New()
	tb.Register(0, dice.D6, table.Entry{})
	assert.Panics(t, func() { tb.Register(0, dice.D6, table.Entry{}) })
}

func TestThrow_NoDice(t *testing.T) {
	_, err := table.Throw(dice.Roll{}, options(t, 1, nil))
	assert.ErrorIs(t, err, table.ErrNoDice)
}

func TestThrow_FinalStateMatchesLastUpdate(t *testing.T) {
	roll, err := dice.ParseRoll("4d6+1, 3d20")
	require.NoError(t, err)

	rec := newRecorder()
	tb, err := table.Throw(roll, options(t, 99, rec))
	require.NoError(t, err)

	require.Len(t, rec.spawned, 7)
	for i, d := range rec.spawned {
		assert.Equal(t, i, d.ID, "spawn order")
	}
	assert.True(t, rec.prevOK, "previous entries must be the state each update replaced")
	assert.Positive(t, rec.updates)

	snap := tb.Snapshot()
	require.Len(t, snap, 7)
	for i, d := range snap {
		assert.Equal(t, i, d.ID)
		assert.Equal(t, roll.Dice[i], d.Kind)
		assert.Equal(t, rec.last[i], d, "die %d", i)
	}
}

// snapshotter reads its table from inside every callback.
type snapshotter struct {
	tb       *table.Table
	dice     int
	calls    int
	mismatch int
}

func (s *snapshotter) OnSpawn(table.Die) {}

func (s *snapshotter) OnUpdate(d table.Die, _ table.Entry) {
	s.calls++
	snap := s.tb.Snapshot()
	if len(snap) != s.dice || snap[d.ID] != d {
		s.mismatch++
	}
	_, _ = s.tb.Get(d.ID)
	_ = s.tb.Faces()
}

func TestRoll_ObserverReadsTableWhileRolling(t *testing.T) {
	roll, err := dice.ParseRoll("6d10, 2d4")
	require.NoError(t, err)

	tb := table.New()
	obs := &snapshotter{tb: tb, dice: len(roll.Dice)}
	opts := options(t, 5, obs)
	done := make(chan error, 1)
	go func() { done <- tb.Roll(roll, opts) }()

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(10 * time.Second):
		t.Fatal("Roll blocked with an observer reading the table")
	}
	assert.Positive(t, obs.calls)
	assert.Zero(t, obs.mismatch, "snapshot must already hold each update")
	assert.Len(t, tb.Snapshot(), 8)
}

func TestThrow_MaximumDice(t *testing.T) {
	roll, err := dice.ParseRoll("99d2")
	require.NoError(t, err)
	tb, err := table.Throw(roll, options(t, 3, nil))
	require.NoError(t, err)
	faces := tb.Faces()
	require.Len(t, faces, 99)
	for _, f := range faces {
		assert.True(t, f == 1 || f == 2)
	}
}

// TestThrow_Property verifies every throw settles with one in-bounds entry per
// die and faces inside each kind's display range.
func TestThrow_Property(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		kinds := rapid.SliceOfN(rapid.SampledFrom(dice.Kinds()), 1, 12).Draw(rt, "kinds")
		seed := rapid.Uint64().Draw(rt, "seed")
		opts := options(rt, seed, nil)

		tb, err := table.Throw(dice.Roll{Mode: dice.Normal, Dice: kinds}, opts)
		require.NoError(rt, err)
		snap := tb.Snapshot()
		require.Len(rt, snap, len(kinds))
		for i, d := range snap {
			assert.Equal(rt, i, d.ID)
			assert.True(rt, opts.Bounds.Contains(d.Position), "die %d at %v", i, d.Position)
			lo, hi := 1, d.Kind.MaxFace()
			switch d.Kind {
			case dice.PercentTens:
				lo, hi = 0, 90
			case dice.PercentOnes:
				lo, hi = 0, 9
			}
			assert.GreaterOrEqual(rt, d.Face, lo)
			assert.LessOrEqual(rt, d.Face, hi)
		}
	})
}
