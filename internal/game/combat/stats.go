package combat

import "github.com/udisondev/osrs-sim/internal/model"

// StatBlock is the additive sum of every equipment bonus worn by the player.
// Built fresh per evaluation and treated as a value.
type StatBlock struct {
	AttackStab   int64
	AttackSlash  int64
	AttackCrush  int64
	AttackMagic  int64
	AttackRanged int64

	DefenceStab   int64
	DefenceSlash  int64
	DefenceCrush  int64
	DefenceMagic  int64
	DefenceRanged int64

	MeleeStrength  int64
	RangedStrength int64
	MagicDamage    int64 // percent
	Prayer         int64
}

// Add returns the field-wise sum of b and e.
func (b StatBlock) Add(e model.EquipmentStats) StatBlock {
	b.AttackStab += e.AttackStab
	b.AttackSlash += e.AttackSlash
	b.AttackCrush += e.AttackCrush
	b.AttackMagic += e.AttackMagic
	b.AttackRanged += e.AttackRanged
	b.DefenceStab += e.DefenceStab
	b.DefenceSlash += e.DefenceSlash
	b.DefenceCrush += e.DefenceCrush
	b.DefenceMagic += e.DefenceMagic
	b.DefenceRanged += e.DefenceRanged
	b.MeleeStrength += e.MeleeStrength
	b.RangedStrength += e.RangedStrength
	b.MagicDamage += e.MagicDamage
	b.Prayer += e.Prayer
	return b
}

// Aggregate sums per-slot equipment bonuses on top of base.
// Summation is order-independent; slots missing from the map contribute zero.
// Identifiers must already be resolved: the aggregator never fails.
func Aggregate(base StatBlock, slots map[model.Slot]model.EquipmentStats) StatBlock {
	out := base
	for _, e := range slots {
		out = out.Add(e)
	}
	return out
}

// AttackBonus returns the offensive bonus for attack type t.
func (b StatBlock) AttackBonus(t model.AttackType) int64 {
	switch t {
	case model.AttackStab:
		return b.AttackStab
	case model.AttackSlash:
		return b.AttackSlash
	case model.AttackCrush:
		return b.AttackCrush
	case model.AttackMagic:
		return b.AttackMagic
	case model.AttackRanged:
		return b.AttackRanged
	}
	return 0
}

// StrengthBonus returns the damage bonus used by the given style:
// melee strength, ranged strength, or magic damage percent.
func (b StatBlock) StrengthBonus(style model.CombatStyle) int64 {
	switch style {
	case model.StyleRanged:
		return b.RangedStrength
	case model.StyleMagic:
		return b.MagicDamage
	default:
		return b.MeleeStrength
	}
}
