package data

import (
	"fmt"
	"slices"

	"github.com/udisondev/osrs-sim/internal/model"
)

// PotionBoost raises one skill by Flat + floor(level * Percent / 100).
type PotionBoost struct {
	Skill   model.Skill
	Flat    int64
	Percent int64
}

// Amount returns the boost granted at the given base level.
func (b PotionBoost) Amount(level int64) int64 {
	return b.Flat + level*b.Percent/100
}

// Potion is a consumable that temporarily raises combat skills.
type Potion struct {
	Name   string
	Boosts []PotionBoost
}

func meleeBoost(flat, pct int64) []PotionBoost {
	return []PotionBoost{
		{Skill: model.SkillAttack, Flat: flat, Percent: pct},
		{Skill: model.SkillStrength, Flat: flat, Percent: pct},
		{Skill: model.SkillDefence, Flat: flat, Percent: pct},
	}
}

func allCombatBoost(flat, pct int64) []PotionBoost {
	return append(meleeBoost(flat, pct),
		PotionBoost{Skill: model.SkillRanged, Flat: flat, Percent: pct},
		PotionBoost{Skill: model.SkillMagic, Flat: flat, Percent: pct},
	)
}

// potionDefs: таблица зелий. Divine-варианты дают тот же буст, что и обычные super.
var potionDefs = []Potion{
	{Name: "attack_potion", Boosts: []PotionBoost{{Skill: model.SkillAttack, Flat: 3, Percent: 10}}},
	{Name: "strength_potion", Boosts: []PotionBoost{{Skill: model.SkillStrength, Flat: 3, Percent: 10}}},
	{Name: "defence_potion", Boosts: []PotionBoost{{Skill: model.SkillDefence, Flat: 3, Percent: 10}}},
	{Name: "combat_potion", Boosts: []PotionBoost{
		{Skill: model.SkillAttack, Flat: 3, Percent: 10},
		{Skill: model.SkillStrength, Flat: 3, Percent: 10},
	}},

	{Name: "super_attack", Boosts: []PotionBoost{{Skill: model.SkillAttack, Flat: 5, Percent: 15}}},
	{Name: "super_strength", Boosts: []PotionBoost{{Skill: model.SkillStrength, Flat: 5, Percent: 15}}},
	{Name: "super_defence", Boosts: []PotionBoost{{Skill: model.SkillDefence, Flat: 5, Percent: 15}}},
	{Name: "super_combat", Boosts: meleeBoost(5, 15)},
	{Name: "divine_super_combat", Boosts: meleeBoost(5, 15)},

	{Name: "ranging_potion", Boosts: []PotionBoost{{Skill: model.SkillRanged, Flat: 4, Percent: 10}}},
	{Name: "divine_ranging_potion", Boosts: []PotionBoost{{Skill: model.SkillRanged, Flat: 4, Percent: 10}}},
	{Name: "bastion_potion", Boosts: []PotionBoost{
		{Skill: model.SkillRanged, Flat: 4, Percent: 10},
		{Skill: model.SkillDefence, Flat: 5, Percent: 15},
	}},

	{Name: "magic_potion", Boosts: []PotionBoost{{Skill: model.SkillMagic, Flat: 4}}},
	{Name: "divine_magic_potion", Boosts: []PotionBoost{{Skill: model.SkillMagic, Flat: 4}}},
	{Name: "imbued_heart", Boosts: []PotionBoost{{Skill: model.SkillMagic, Flat: 1, Percent: 10}}},
	{Name: "saturated_heart", Boosts: []PotionBoost{{Skill: model.SkillMagic, Flat: 4, Percent: 10}}},

	{Name: "zamorak_brew", Boosts: []PotionBoost{
		{Skill: model.SkillAttack, Flat: 2, Percent: 20},
		{Skill: model.SkillStrength, Flat: 2, Percent: 12},
	}},
	{Name: "overload", Boosts: allCombatBoost(5, 13)},
	{Name: "overload_plus", Boosts: allCombatBoost(6, 16)},
	{Name: "smelling_salts", Boosts: allCombatBoost(11, 16)},
}

var potionTable = func() map[string]*Potion {
	m := make(map[string]*Potion, len(potionDefs))
	for i := range potionDefs {
		m[potionDefs[i].Name] = &potionDefs[i]
	}
	return m
}()

// LookupPotion returns the potion with the given name.
func LookupPotion(name string) (*Potion, error) {
	p, ok := potionTable[name]
	if !ok {
		return nil, fmt.Errorf("potion %q: %w", name, ErrNotFound)
	}
	return p, nil
}

// Potions returns every known potion in table order.
func Potions() []Potion {
	return slices.Clone(potionDefs)
}

// PotionBoosts returns the per-skill boost of the given potions at the given
// base levels. Potions do not stack: for each skill the largest boost wins.
func PotionBoosts(potions []*Potion, levels map[model.Skill]int64) map[model.Skill]int64 {
	out := make(map[model.Skill]int64)
	for _, p := range potions {
		for _, b := range p.Boosts {
			if v := b.Amount(levels[b.Skill]); v > out[b.Skill] {
				out[b.Skill] = v
			}
		}
	}
	return out
}
