package effect

import (
	"maps"
	"slices"
	"strconv"
)

// Flag keys understood by conditions. Keys with a trailing dot take a suffix.
const (
	FactStyle        = "style"       // melee | ranged | magic
	FactAttackType   = "attack_type" // stab | slash | crush | ranged | magic
	FactStance       = "stance"
	FactSpell        = "spell"
	FactSpellbook    = "spellbook" // standard | ancient
	FactWeaponType   = "weapon_type"
	FactOnTask       = "player.on_task"
	FactWilderness   = "player.in_wilderness"
	FactFullHealth   = "player.full_health"
	FactPrayer       = "prayer."           // + prayer name
	FactPotion       = "potion."           // + potion name
	FactEquipped     = "equipped."         // + item id
	FactTargetAttr   = "target.attribute." // + attribute, e.g. target.attribute.undead
	FactTargetName   = "target.name"
	FactSlayerTask   = "target.slayer_monster"
	FactCustomTarget = "target.custom"
)

// Numeric fact keys, readable by special operations only.
const (
	NumTargetMagicLevel    = "target.magic_level"
	NumTargetSize          = "target.size"
	NumTargetHitpoints     = "target.hitpoints"
	NumPlayerHitpoints     = "player.hitpoints_level"
	NumPlayerCurrentHealth = "player.current_hitpoints"
)

// Facts is the flattened set of flags an evaluation exposes to conditions,
// plus numeric facts for special operations. Built once per evaluation, then read-only.
type Facts struct {
	flags   map[string]string
	numbers map[string]int64
}

// NewFacts returns an empty fact set.
func NewFacts() *Facts {
	return &Facts{
		flags:   make(map[string]string, 32),
		numbers: make(map[string]int64, 8),
	}
}

// Set records an enumerated flag.
func (f *Facts) Set(key, value string) {
	f.flags[key] = value
}

// SetBool records a boolean flag. False flags are simply absent.
func (f *Facts) SetBool(key string, v bool) {
	if v {
		f.flags[key] = "true"
		return
	}
	delete(f.flags, key)
}

// SetNumber records a numeric fact.
func (f *Facts) SetNumber(key string, v int64) {
	f.numbers[key] = v
}

// MarkEquipped records that item id is worn.
func (f *Facts) MarkEquipped(id int32) {
	f.flags[EquippedKey(id)] = "true"
}

// Flag returns the value of key and whether it is set.
func (f *Facts) Flag(key string) (string, bool) {
	v, ok := f.flags[key]
	return v, ok
}

// Bool reports whether boolean flag key is set to true.
func (f *Facts) Bool(key string) bool {
	return f.flags[key] == "true"
}

// Number returns a numeric fact, zero when absent.
func (f *Facts) Number(key string) int64 {
	return f.numbers[key]
}

// IsEquipped reports whether item id is worn.
func (f *Facts) IsEquipped(id int32) bool {
	return f.Bool(EquippedKey(id))
}

// Keys returns every flag key, sorted. Used for cache signatures and explain output.
func (f *Facts) Keys() []string {
	return slices.Sorted(maps.Keys(f.flags))
}

// NumberKeys returns every numeric fact key, sorted.
func (f *Facts) NumberKeys() []string {
	return slices.Sorted(maps.Keys(f.numbers))
}

// EquippedKey returns the flag key recording that item id is worn.
func EquippedKey(id int32) string {
	return FactEquipped + strconv.FormatInt(int64(id), 10)
}
