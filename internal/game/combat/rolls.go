package combat

// Roll computes a max attack or defence roll.
// Formula: effective_level * (equipment_bonus + 64).
// A negative product (bonus below -64) clamps to zero.
func Roll(effectiveLevel, bonus int64) int64 {
	r := effectiveLevel * (bonus + 64)
	if r < 0 {
		return 0
	}
	return r
}

// DefenceRoll computes the target's defence roll against one attack type.
// Same formula as Roll: monsters carry no stance or prayer.
func DefenceRoll(effectiveDefence, defenceBonus int64) int64 {
	return Roll(effectiveDefence, defenceBonus)
}

// MaxHit computes the melee and ranged max hit.
// Formula: floor(0.5 + effective_strength * (strength_bonus + 64) / 640),
// evaluated in integers as floor((eff * (bonus + 64) + 320) / 640).
func MaxHit(effectiveStrength, strengthBonus int64) int64 {
	v := effectiveStrength*(strengthBonus+64) + 320
	if v < 0 {
		return 0
	}
	return FloorDiv(v, 640)
}

// MagicMaxHit scales a spell's base max hit by the magic damage bonus.
// Formula: floor(spell_base * (100 + magic_damage_percent) / 100).
func MagicMaxHit(spellBase, magicDamagePercent int64) int64 {
	v := spellBase * (100 + magicDamagePercent)
	if v < 0 {
		return 0
	}
	return FloorDiv(v, 100)
}
