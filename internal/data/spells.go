package data

import (
	"fmt"
	"slices"
)

// Spellbook names.
const (
	SpellbookStandard = "standard"
	SpellbookAncient  = "ancient"
)

// Spell is a combat spell with a fixed base max hit.
type Spell struct {
	Name        string
	Spellbook   string
	Level       int64 // magic level required
	BaseMaxHit  int64
	AttackSpeed int64 // ticks
	Element     string
}

const castSpeed = 5

// spellDefs: боевые заклинания. Скорость каста всех autocast-заклинаний 5 тиков.
var spellDefs = []Spell{
	{Name: "wind_strike", Spellbook: SpellbookStandard, Level: 1, BaseMaxHit: 2, AttackSpeed: castSpeed, Element: "air"},
	{Name: "water_strike", Spellbook: SpellbookStandard, Level: 5, BaseMaxHit: 4, AttackSpeed: castSpeed, Element: "water"},
	{Name: "earth_strike", Spellbook: SpellbookStandard, Level: 9, BaseMaxHit: 6, AttackSpeed: castSpeed, Element: "earth"},
	{Name: "fire_strike", Spellbook: SpellbookStandard, Level: 13, BaseMaxHit: 8, AttackSpeed: castSpeed, Element: "fire"},

	{Name: "wind_bolt", Spellbook: SpellbookStandard, Level: 17, BaseMaxHit: 9, AttackSpeed: castSpeed, Element: "air"},
	{Name: "water_bolt", Spellbook: SpellbookStandard, Level: 23, BaseMaxHit: 10, AttackSpeed: castSpeed, Element: "water"},
	{Name: "earth_bolt", Spellbook: SpellbookStandard, Level: 29, BaseMaxHit: 11, AttackSpeed: castSpeed, Element: "earth"},
	{Name: "fire_bolt", Spellbook: SpellbookStandard, Level: 35, BaseMaxHit: 12, AttackSpeed: castSpeed, Element: "fire"},

	{Name: "wind_blast", Spellbook: SpellbookStandard, Level: 41, BaseMaxHit: 13, AttackSpeed: castSpeed, Element: "air"},
	{Name: "water_blast", Spellbook: SpellbookStandard, Level: 47, BaseMaxHit: 14, AttackSpeed: castSpeed, Element: "water"},
	{Name: "earth_blast", Spellbook: SpellbookStandard, Level: 53, BaseMaxHit: 15, AttackSpeed: castSpeed, Element: "earth"},
	{Name: "fire_blast", Spellbook: SpellbookStandard, Level: 59, BaseMaxHit: 16, AttackSpeed: castSpeed, Element: "fire"},

	{Name: "wind_wave", Spellbook: SpellbookStandard, Level: 62, BaseMaxHit: 17, AttackSpeed: castSpeed, Element: "air"},
	{Name: "water_wave", Spellbook: SpellbookStandard, Level: 65, BaseMaxHit: 18, AttackSpeed: castSpeed, Element: "water"},
	{Name: "earth_wave", Spellbook: SpellbookStandard, Level: 70, BaseMaxHit: 19, AttackSpeed: castSpeed, Element: "earth"},
	{Name: "fire_wave", Spellbook: SpellbookStandard, Level: 75, BaseMaxHit: 20, AttackSpeed: castSpeed, Element: "fire"},

	{Name: "wind_surge", Spellbook: SpellbookStandard, Level: 81, BaseMaxHit: 21, AttackSpeed: castSpeed, Element: "air"},
	{Name: "water_surge", Spellbook: SpellbookStandard, Level: 85, BaseMaxHit: 22, AttackSpeed: castSpeed, Element: "water"},
	{Name: "earth_surge", Spellbook: SpellbookStandard, Level: 90, BaseMaxHit: 23, AttackSpeed: castSpeed, Element: "earth"},
	{Name: "fire_surge", Spellbook: SpellbookStandard, Level: 95, BaseMaxHit: 24, AttackSpeed: castSpeed, Element: "fire"},

	{Name: "iban_blast", Spellbook: SpellbookStandard, Level: 50, BaseMaxHit: 25, AttackSpeed: castSpeed},
	{Name: "saradomin_strike", Spellbook: SpellbookStandard, Level: 60, BaseMaxHit: 20, AttackSpeed: castSpeed},
	{Name: "claws_of_guthix", Spellbook: SpellbookStandard, Level: 60, BaseMaxHit: 20, AttackSpeed: castSpeed},
	{Name: "flames_of_zamorak", Spellbook: SpellbookStandard, Level: 60, BaseMaxHit: 20, AttackSpeed: castSpeed},

	{Name: "smoke_blitz", Spellbook: SpellbookAncient, Level: 74, BaseMaxHit: 23, AttackSpeed: castSpeed},
	{Name: "shadow_blitz", Spellbook: SpellbookAncient, Level: 76, BaseMaxHit: 24, AttackSpeed: castSpeed},
	{Name: "blood_blitz", Spellbook: SpellbookAncient, Level: 80, BaseMaxHit: 25, AttackSpeed: castSpeed},
	{Name: "ice_blitz", Spellbook: SpellbookAncient, Level: 82, BaseMaxHit: 26, AttackSpeed: castSpeed},
	{Name: "smoke_barrage", Spellbook: SpellbookAncient, Level: 86, BaseMaxHit: 27, AttackSpeed: castSpeed},
	{Name: "shadow_barrage", Spellbook: SpellbookAncient, Level: 88, BaseMaxHit: 28, AttackSpeed: castSpeed},
	{Name: "blood_barrage", Spellbook: SpellbookAncient, Level: 92, BaseMaxHit: 29, AttackSpeed: castSpeed},
	{Name: "ice_barrage", Spellbook: SpellbookAncient, Level: 94, BaseMaxHit: 30, AttackSpeed: castSpeed},
}

var spellTable = func() map[string]*Spell {
	m := make(map[string]*Spell, len(spellDefs))
	for i := range spellDefs {
		m[spellDefs[i].Name] = &spellDefs[i]
	}
	return m
}()

// LookupSpell returns the spell with the given name.
func LookupSpell(name string) (*Spell, error) {
	s, ok := spellTable[name]
	if !ok {
		return nil, fmt.Errorf("spell %q: %w", name, ErrNotFound)
	}
	return s, nil
}

// Spells returns every known spell in table order.
func Spells() []Spell {
	return slices.Clone(spellDefs)
}
