package effect

import "github.com/udisondev/osrs-sim/internal/game/combat"

// SpecialOp names a per-item formula that is not a linear transform of a
// single stat. The set is closed: every value is handled by the switch in
// apply, and catalogs referencing any other name fail to load.
type SpecialOp string

const (
	// SpecialTwistedBow scales accuracy and damage with the target's magic level.
	SpecialTwistedBow SpecialOp = "twisted_bow"
	// SpecialDharokSet scales max hit with the player's missing hitpoints.
	SpecialDharokSet SpecialOp = "dharok_set"
	// SpecialColossalBlade adds 2 max hit per target size tile, up to 5 tiles.
	SpecialColossalBlade SpecialOp = "colossal_blade"
	// SpecialInquisitorCrush grants 0.5% per inquisitor piece, 2.5% for the full set.
	SpecialInquisitorCrush SpecialOp = "inquisitor_crush"
	// SpecialOsmumtensFang raises the min hit to 15% of max and lowers the max by the same amount.
	SpecialOsmumtensFang SpecialOp = "osmumtens_fang"
)

// SpecialOps lists every special operation.
var SpecialOps = []SpecialOp{
	SpecialTwistedBow,
	SpecialDharokSet,
	SpecialColossalBlade,
	SpecialInquisitorCrush,
	SpecialOsmumtensFang,
}

// Inquisitor's armour pieces.
const (
	ItemInquisitorHelm       int32 = 24419
	ItemInquisitorHauberk    int32 = 24420
	ItemInquisitorPlateskirt int32 = 24421
)

const (
	twistedBowMagicCap    = 250
	twistedBowAccuracyCap = 140
	twistedBowDamageCap   = 250
	colossalBladeSizeCap  = 5
)

// Stages returns the stages the operation may run in. The second value is
// false for unknown names.
func (op SpecialOp) Stages() ([]Stage, bool) {
	switch op {
	case SpecialTwistedBow, SpecialInquisitorCrush:
		return []Stage{StagePreRolls, StagePostMaxHit}, true
	case SpecialDharokSet, SpecialColossalBlade, SpecialOsmumtensFang:
		return []Stage{StagePostMaxHit}, true
	}
	return nil, false
}

// apply runs the formula for stage. Each case is a pure function of
// (stage, facts, state) and touches only the stats it names.
func (op SpecialOp) apply(stage Stage, f *Facts, s *State) []Change {
	switch op {
	case SpecialTwistedBow:
		m := min(f.Number(NumTargetMagicLevel), twistedBowMagicCap)
		if stage == StagePreRolls {
			return scale(s, StatAttackRoll, combat.Ratio{Num: TwistedBowAccuracy(m), Den: 100})
		}
		return scale(s, StatMaxHit, combat.Ratio{Num: TwistedBowDamage(m), Den: 100})

	case SpecialDharokSet:
		level := f.Number(NumPlayerHitpoints)
		missing := max(level-f.Number(NumPlayerCurrentHealth), 0)
		// max * (1 + missing/100 * level/100)
		return scale(s, StatMaxHit, combat.Ratio{Num: 10000 + missing*level, Den: 10000})

	case SpecialColossalBlade:
		size := min(max(f.Number(NumTargetSize), 1), colossalBladeSizeCap)
		before := s.Get(StatMaxHit)
		s.Set(StatMaxHit, before+2*size)
		return []Change{{Stat: StatMaxHit, Before: before, After: s.Get(StatMaxHit)}}

	case SpecialInquisitorCrush:
		bonus := InquisitorBonus(f)
		if bonus == 0 {
			return nil
		}
		stat := StatMaxHit
		if stage == StagePreRolls {
			stat = StatAttackRoll
		}
		return scale(s, stat, combat.Ratio{Num: 1000 + bonus, Den: 1000})

	case SpecialOsmumtensFang:
		maxHit := s.Get(StatMaxHit)
		minBefore := s.Get(StatMinHit)
		shrink := combat.FloorDiv(maxHit*3, 20)
		s.Set(StatMaxHit, maxHit-shrink)
		s.Set(StatMinHit, shrink)
		return []Change{
			{Stat: StatMaxHit, Before: maxHit, After: s.Get(StatMaxHit)},
			{Stat: StatMinHit, Before: minBefore, After: s.Get(StatMinHit)},
		}
	}
	return nil
}

func scale(s *State, stat Stat, r combat.Ratio) []Change {
	before := s.Get(stat)
	s.Set(stat, r.Apply(before))
	return []Change{{Stat: stat, Before: before, After: s.Get(stat)}}
}

// TwistedBowAccuracy returns the accuracy multiplier in percent for target magic m.
// Formula: 140 + floor((3m - 10) / 100) - floor((floor(3m / 10) - 100)^2 / 100), capped at 140.
func TwistedBowAccuracy(m int64) int64 {
	t := combat.FloorDiv(3*m, 10) - 100
	v := 140 + combat.FloorDiv(3*m-10, 100) - combat.FloorDiv(t*t, 100)
	return min(max(v, 0), twistedBowAccuracyCap)
}

// TwistedBowDamage returns the damage multiplier in percent for target magic m.
// Formula: 250 + floor((3m - 14) / 100) - floor((floor(3m / 10) - 140)^2 / 100), capped at 250.
func TwistedBowDamage(m int64) int64 {
	t := combat.FloorDiv(3*m, 10) - 140
	v := 250 + combat.FloorDiv(3*m-14, 100) - combat.FloorDiv(t*t, 100)
	return min(max(v, 0), twistedBowDamageCap)
}

// InquisitorBonus returns the crush bonus in per mille from worn inquisitor pieces.
func InquisitorBonus(f *Facts) int64 {
	var pieces int64
	for _, id := range []int32{ItemInquisitorHelm, ItemInquisitorHauberk, ItemInquisitorPlateskirt} {
		if f.IsEquipped(id) {
			pieces++
		}
	}
	if pieces == 3 {
		return 25
	}
	return pieces * 5
}
