package effect

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTwistedBowMultipliers(t *testing.T) {
	tests := []struct {
		magic    int64
		accuracy int64
		damage   int64
	}{
		{magic: 0, accuracy: 39, damage: 53},
		{magic: 1, accuracy: 39, damage: 53},
		{magic: 100, accuracy: 93, damage: 131},
		{magic: 250, accuracy: 140, damage: 215},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.accuracy, TwistedBowAccuracy(tt.magic), "accuracy at magic %d", tt.magic)
		assert.Equal(t, tt.damage, TwistedBowDamage(tt.magic), "damage at magic %d", tt.magic)
	}
}

func TestTwistedBowMultipliers_NeverExceedCaps(t *testing.T) {
	for m := int64(0); m <= 400; m++ {
		assert.LessOrEqual(t, TwistedBowAccuracy(m), int64(140))
		assert.LessOrEqual(t, TwistedBowDamage(m), int64(250))
		assert.GreaterOrEqual(t, TwistedBowAccuracy(m), int64(0))
	}
}

func TestSpecial_TwistedBowUsesTargetMagicCap(t *testing.T) {
	f := NewFacts()
	f.SetNumber(NumTargetMagicLevel, 480) // capped to 250

	s := NewState()
	s.Set(StatAttackRoll, 10000)
	s.Set(StatMaxHit, 40)

	SpecialTwistedBow.apply(StagePreRolls, f, s)
	SpecialTwistedBow.apply(StagePostMaxHit, f, s)

	assert.Equal(t, int64(14000), s.Get(StatAttackRoll))
	assert.Equal(t, int64(86), s.Get(StatMaxHit)) // 40 * 215 / 100
}

func TestSpecial_DharokSet(t *testing.T) {
	f := NewFacts()
	f.SetNumber(NumPlayerHitpoints, 99)
	f.SetNumber(NumPlayerCurrentHealth, 1)

	s := NewState()
	s.Set(StatMaxHit, 50)
	changes := SpecialDharokSet.apply(StagePostMaxHit, f, s)

	// 50 * (10000 + 98*99) / 10000 = 50 * 19702 / 10000 = 98.51
	require.Len(t, changes, 1)
	assert.Equal(t, int64(98), s.Get(StatMaxHit))
}

func TestSpecial_DharokSetFullHealthIsIdentity(t *testing.T) {
	f := NewFacts()
	f.SetNumber(NumPlayerHitpoints, 99)
	f.SetNumber(NumPlayerCurrentHealth, 99)

	s := NewState()
	s.Set(StatMaxHit, 50)
	SpecialDharokSet.apply(StagePostMaxHit, f, s)
	assert.Equal(t, int64(50), s.Get(StatMaxHit))
}

func TestSpecial_ColossalBlade(t *testing.T) {
	tests := []struct {
		size int64
		want int64
	}{
		{0, 32}, // size floors at 1
		{1, 32},
		{3, 36},
		{5, 40},
		{7, 40}, // capped at 5
	}
	for _, tt := range tests {
		f := NewFacts()
		f.SetNumber(NumTargetSize, tt.size)
		s := NewState()
		s.Set(StatMaxHit, 30)
		SpecialColossalBlade.apply(StagePostMaxHit, f, s)
		assert.Equal(t, tt.want, s.Get(StatMaxHit), "size %d", tt.size)
	}
}

func TestSpecial_InquisitorCrush(t *testing.T) {
	f := NewFacts()
	assert.Equal(t, int64(0), InquisitorBonus(f))

	f.MarkEquipped(ItemInquisitorHelm)
	assert.Equal(t, int64(5), InquisitorBonus(f))

	f.MarkEquipped(ItemInquisitorHauberk)
	assert.Equal(t, int64(10), InquisitorBonus(f))

	f.MarkEquipped(ItemInquisitorPlateskirt)
	assert.Equal(t, int64(25), InquisitorBonus(f))

	s := NewState()
	s.Set(StatAttackRoll, 40000)
	s.Set(StatMaxHit, 50)
	SpecialInquisitorCrush.apply(StagePreRolls, f, s)
	SpecialInquisitorCrush.apply(StagePostMaxHit, f, s)

	assert.Equal(t, int64(41000), s.Get(StatAttackRoll))
	assert.Equal(t, int64(51), s.Get(StatMaxHit)) // 51.25
}

func TestSpecial_InquisitorWithoutPiecesChangesNothing(t *testing.T) {
	s := NewState()
	s.Set(StatMaxHit, 50)
	assert.Nil(t, SpecialInquisitorCrush.apply(StagePostMaxHit, NewFacts(), s))
	assert.Equal(t, int64(50), s.Get(StatMaxHit))
}

func TestSpecial_OsmumtensFang(t *testing.T) {
	s := NewState()
	s.Set(StatMaxHit, 41)
	changes := SpecialOsmumtensFang.apply(StagePostMaxHit, NewFacts(), s)

	require.Len(t, changes, 2)
	assert.Equal(t, int64(6), s.Get(StatMinHit))  // floor(41 * 3 / 20)
	assert.Equal(t, int64(35), s.Get(StatMaxHit)) // 41 - 6
}

func TestSpecialOps_AllHaveStages(t *testing.T) {
	for _, op := range SpecialOps {
		stages, ok := op.Stages()
		require.True(t, ok, op)
		assert.NotEmpty(t, stages, op)
	}
	_, ok := SpecialOp("nope").Stages()
	assert.False(t, ok)
}
