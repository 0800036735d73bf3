package model

import "fmt"

// AttackType is the damage type an attack is rolled against.
// Each type has a matching offensive bonus on the attacker and a defensive
// bonus on the target.
type AttackType string

const (
	AttackStab   AttackType = "stab"
	AttackSlash  AttackType = "slash"
	AttackCrush  AttackType = "crush"
	AttackRanged AttackType = "ranged"
	AttackMagic  AttackType = "magic"
)

// AttackTypes lists every attack type in catalog order.
var AttackTypes = []AttackType{AttackStab, AttackSlash, AttackCrush, AttackRanged, AttackMagic}

// ParseAttackType validates s as an attack type.
func ParseAttackType(s string) (AttackType, error) {
	switch t := AttackType(s); t {
	case AttackStab, AttackSlash, AttackCrush, AttackRanged, AttackMagic:
		return t, nil
	}
	return "", &ValidationError{Field: "attack_type", Reason: fmt.Sprintf("unknown attack type %q", s)}
}

// Style returns the combat style an attack type belongs to.
func (t AttackType) Style() CombatStyle {
	switch t {
	case AttackRanged:
		return StyleRanged
	case AttackMagic:
		return StyleMagic
	default:
		return StyleMelee
	}
}

// CombatStyle groups attack types that share one formula variant.
type CombatStyle string

const (
	StyleMelee  CombatStyle = "melee"
	StyleRanged CombatStyle = "ranged"
	StyleMagic  CombatStyle = "magic"
)

// Stance is the attack style selected on the weapon interface.
type Stance string

const (
	StanceAccurate   Stance = "accurate"
	StanceAggressive Stance = "aggressive"
	StanceDefensive  Stance = "defensive"
	StanceControlled Stance = "controlled"
	StanceRapid      Stance = "rapid"
	StanceLongrange  Stance = "longrange"
	StanceAutocast   Stance = "autocast"
)

// ParseStance validates s as a stance name.
func ParseStance(s string) (Stance, error) {
	switch st := Stance(s); st {
	case StanceAccurate, StanceAggressive, StanceDefensive, StanceControlled,
		StanceRapid, StanceLongrange, StanceAutocast:
		return st, nil
	}
	return "", &ValidationError{Field: "stance", Reason: fmt.Sprintf("unknown stance %q", s)}
}

// StanceBonus holds the invisible level bonuses granted by a stance.
type StanceBonus struct {
	Attack   int64
	Strength int64
	Defence  int64
	// SpeedDelta is added to the weapon attack interval in ticks.
	SpeedDelta int64
}

// Bonus returns the invisible bonuses the stance grants in the given style.
// The second value is false when the stance is not valid for the style.
func (s Stance) Bonus(style CombatStyle) (StanceBonus, bool) {
	switch style {
	case StyleMelee:
		switch s {
		case StanceAccurate:
			return StanceBonus{Attack: 3}, true
		case StanceAggressive:
			return StanceBonus{Strength: 3}, true
		case StanceDefensive:
			return StanceBonus{Defence: 3}, true
		case StanceControlled:
			return StanceBonus{Attack: 1, Strength: 1, Defence: 1}, true
		}
	case StyleRanged:
		switch s {
		case StanceAccurate:
			return StanceBonus{Attack: 3, Strength: 3}, true
		case StanceRapid:
			return StanceBonus{SpeedDelta: -1}, true
		case StanceLongrange:
			return StanceBonus{Defence: 3}, true
		}
	case StyleMagic:
		switch s {
		case StanceAutocast:
			return StanceBonus{}, true
		case StanceAccurate:
			return StanceBonus{Attack: 2}, true
		case StanceLongrange:
			return StanceBonus{Attack: 1, Defence: 3}, true
		}
	}
	return StanceBonus{}, false
}

// Slot is an equipment slot.
type Slot string

const (
	SlotHead   Slot = "head"
	SlotCape   Slot = "cape"
	SlotNeck   Slot = "neck"
	SlotAmmo   Slot = "ammo"
	SlotWeapon Slot = "weapon"
	SlotBody   Slot = "body"
	SlotShield Slot = "shield"
	SlotLegs   Slot = "legs"
	SlotHands  Slot = "hands"
	SlotFeet   Slot = "feet"
	SlotRing   Slot = "ring"
	// Slot2H is the catalog slot of two-handed weapons; they are equipped in SlotWeapon.
	Slot2H Slot = "2h"
)

// Slots lists every wearable slot.
var Slots = []Slot{
	SlotHead, SlotCape, SlotNeck, SlotAmmo, SlotWeapon, SlotBody,
	SlotShield, SlotLegs, SlotHands, SlotFeet, SlotRing,
}

// ParseSlot validates s as a wearable slot name.
func ParseSlot(s string) (Slot, error) {
	for _, slot := range Slots {
		if string(slot) == s {
			return slot, nil
		}
	}
	return "", &ValidationError{Field: "equipment", Reason: fmt.Sprintf("unknown slot %q", s)}
}

// Fits reports whether an item with catalog slot c may be worn in s.
func (s Slot) Fits(c Slot) bool {
	if c == Slot2H {
		return s == SlotWeapon
	}
	return s == c
}

// Skill is a player skill relevant to combat.
type Skill string

const (
	SkillAttack    Skill = "attack"
	SkillStrength  Skill = "strength"
	SkillDefence   Skill = "defence"
	SkillRanged    Skill = "ranged"
	SkillMagic     Skill = "magic"
	SkillHitpoints Skill = "hitpoints"
	SkillPrayer    Skill = "prayer"
	SkillSlayer    Skill = "slayer"
)

// Skills lists every tracked skill.
var Skills = []Skill{
	SkillAttack, SkillStrength, SkillDefence, SkillRanged,
	SkillMagic, SkillHitpoints, SkillPrayer, SkillSlayer,
}

// ParseSkill validates s as a skill name.
func ParseSkill(s string) (Skill, error) {
	for _, sk := range Skills {
		if string(sk) == s {
			return sk, nil
		}
	}
	return "", &ValidationError{Field: "skills", Reason: fmt.Sprintf("unknown skill %q", s)}
}
