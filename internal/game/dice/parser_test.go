package dice_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/cory-johannsen/dicetable/internal/game/dice"
)

func TestParseRoll_Normal(t *testing.T) {
	roll, err := dice.ParseRoll("3d6+2, d20 / 2d4-1")
	require.NoError(t, err)
	assert.Equal(t, dice.Normal, roll.Mode)
	assert.Equal(t, []dice.Command{
		{Coefficient: 3, Kind: dice.D6, Modifier: 2},
		{Coefficient: 1, Kind: dice.D20, Modifier: 0},
		{Coefficient: 2, Kind: dice.D4, Modifier: -1},
	}, roll.Commands)
	assert.Len(t, roll.Dice, 6)
}

func TestParseRoll_Spacing(t *testing.T) {
	roll, err := dice.ParseRoll("  2 d 6 + 3 ")
	require.NoError(t, err)
	assert.Equal(t, dice.Command{Coefficient: 2, Kind: dice.D6, Modifier: 3}, roll.Commands[0])
}

func TestParseRoll_Advantage(t *testing.T) {
	roll, err := dice.ParseRoll("ADV d20+5")
	require.NoError(t, err)
	assert.Equal(t, dice.Advantage, roll.Mode)
	assert.Equal(t, []dice.Kind{dice.D20, dice.D20}, roll.Dice)
	assert.Equal(t, 5, roll.Commands[0].Modifier)
}

func TestParseRoll_Disadvantage(t *testing.T) {
	roll, err := dice.ParseRoll("disadv d20-2")
	require.NoError(t, err)
	assert.Equal(t, dice.Disadvantage, roll.Mode)
	assert.Equal(t, -2, roll.Commands[0].Modifier)
}

func TestParseRoll_Percentile(t *testing.T) {
	for _, in := range []string{"d100", "d%", "1d100+4"} {
		roll, err := dice.ParseRoll(in)
		require.NoError(t, err, in)
		assert.Equal(t, dice.Percentile, roll.Mode, in)
		assert.Equal(t, []dice.Kind{dice.PercentTens, dice.PercentOnes}, roll.Dice, in)
	}
}

func TestParseRoll_Errors(t *testing.T) {
	cases := []struct {
		in   string
		want error
	}{
		{"", dice.ErrDieType},
		{"20", dice.ErrCoefficient},
		{"xd6", dice.ErrCoefficient},
		{"0d6", dice.ErrCoefficient},
		{"d7", dice.ErrDieType},
		{"d", dice.ErrDieType},
		{"d6+1+2", dice.ErrModifier},
		{"d6+x", dice.ErrModifier},
		{"100d6", dice.ErrLimit},
		{"d6+100", dice.ErrLimit},
		{"d6-100", dice.ErrLimit},
		{"50d6, 50d6", dice.ErrLimit},
		{"adv 2d20", dice.ErrRule},
		{"adv d20, d6", dice.ErrRule},
		{"d100, d6", dice.ErrRule},
		{"2d100", dice.ErrRule},
		{"adv d100", dice.ErrRule},
		{"adv d20,", dice.ErrRule},
		{"d6,", dice.ErrCoefficient},
		{"d6,,d4", dice.ErrCoefficient},
		{"/d6", dice.ErrCoefficient},
		{"+3d6", dice.ErrCoefficient},
	}
	for _, tc := range cases {
		t.Run(tc.in, func(t *testing.T) {
			_, err := dice.ParseRoll(tc.in)
			require.Error(t, err)
			assert.ErrorIs(t, err, tc.want)
		})
	}
}

// TestParseRoll_RoundTrip_Property verifies every canonical Command string parses
// back to the same Command.
func TestParseRoll_RoundTrip_Property(t *testing.T) {
	kinds := []dice.Kind{dice.D2, dice.D4, dice.D6, dice.D10, dice.D12, dice.D20}
	rapid.Check(t, func(rt *rapid.T) {
		cmd := dice.Command{
			Coefficient: rapid.IntRange(1, dice.CoefficientLimit).Draw(rt, "coefficient"),
			Kind:        rapid.SampledFrom(kinds).Draw(rt, "kind"),
			Modifier:    rapid.IntRange(-dice.ModifierLimit, dice.ModifierLimit).Draw(rt, "modifier"),
		}
		roll, err := dice.ParseRoll(cmd.String())
		require.NoError(rt, err, cmd.String())
		require.Len(rt, roll.Commands, 1)
		assert.Equal(rt, cmd, roll.Commands[0])
		assert.Len(rt, roll.Dice, cmd.Coefficient)
	})
}

// TestParseRoll_DiceMatchExpand_Property verifies Dice is always Expand(Mode, Commands).
func TestParseRoll_DiceMatchExpand_Property(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		n := rapid.IntRange(1, 4).Draw(rt, "terms")
		line := ""
		for i := 0; i < n; i++ {
			if i > 0 {
				line += ","
			}
			line += fmt.Sprintf("%dd%d", rapid.IntRange(1, 20).Draw(rt, "count"),
				rapid.SampledFrom([]int{2, 4, 6, 10, 12, 20}).Draw(rt, "sides"))
		}
		roll, err := dice.ParseRoll(line)
		require.NoError(rt, err, line)
		assert.Equal(rt, dice.Expand(roll.Mode, roll.Commands), roll.Dice)
	})
}
