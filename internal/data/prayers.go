package data

import (
	"fmt"
	"slices"

	"github.com/udisondev/osrs-sim/internal/game/combat"
	"github.com/udisondev/osrs-sim/internal/model"
)

// PrayerBoost identifies which level a prayer multiplier scales.
type PrayerBoost int8

const (
	BoostMeleeAttack PrayerBoost = iota
	BoostMeleeStrength
	BoostDefence
	BoostRangedAttack
	BoostRangedStrength
	BoostMagicAttack

	numPrayerBoosts
)

var prayerBoostNames = [numPrayerBoosts]string{
	BoostMeleeAttack:    "melee attack",
	BoostMeleeStrength:  "melee strength",
	BoostDefence:        "defence",
	BoostRangedAttack:   "ranged attack",
	BoostRangedStrength: "ranged strength",
	BoostMagicAttack:    "magic attack",
}

func (b PrayerBoost) String() string {
	if b < 0 || b >= numPrayerBoosts {
		return fmt.Sprintf("boost(%d)", int8(b))
	}
	return prayerBoostNames[b]
}

// Prayer is an overhead-free combat prayer and the multipliers it grants.
type Prayer struct {
	Name  string
	Level int64 // prayer level required
	Mult  map[PrayerBoost]combat.Ratio
}

// prayerDefs: таблица боевых молитв.
var prayerDefs = []Prayer{
	{Name: "clarity_of_thought", Level: 7, Mult: map[PrayerBoost]combat.Ratio{BoostMeleeAttack: {Num: 21, Den: 20}}},
	{Name: "improved_reflexes", Level: 16, Mult: map[PrayerBoost]combat.Ratio{BoostMeleeAttack: {Num: 11, Den: 10}}},
	{Name: "incredible_reflexes", Level: 34, Mult: map[PrayerBoost]combat.Ratio{BoostMeleeAttack: {Num: 23, Den: 20}}},

	{Name: "burst_of_strength", Level: 4, Mult: map[PrayerBoost]combat.Ratio{BoostMeleeStrength: {Num: 21, Den: 20}}},
	{Name: "superhuman_strength", Level: 13, Mult: map[PrayerBoost]combat.Ratio{BoostMeleeStrength: {Num: 11, Den: 10}}},
	{Name: "ultimate_strength", Level: 31, Mult: map[PrayerBoost]combat.Ratio{BoostMeleeStrength: {Num: 23, Den: 20}}},

	{Name: "thick_skin", Level: 1, Mult: map[PrayerBoost]combat.Ratio{BoostDefence: {Num: 21, Den: 20}}},
	{Name: "rock_skin", Level: 10, Mult: map[PrayerBoost]combat.Ratio{BoostDefence: {Num: 11, Den: 10}}},
	{Name: "steel_skin", Level: 28, Mult: map[PrayerBoost]combat.Ratio{BoostDefence: {Num: 23, Den: 20}}},

	{Name: "sharp_eye", Level: 8, Mult: map[PrayerBoost]combat.Ratio{
		BoostRangedAttack: {Num: 21, Den: 20}, BoostRangedStrength: {Num: 21, Den: 20},
	}},
	{Name: "hawk_eye", Level: 26, Mult: map[PrayerBoost]combat.Ratio{
		BoostRangedAttack: {Num: 11, Den: 10}, BoostRangedStrength: {Num: 11, Den: 10},
	}},
	{Name: "eagle_eye", Level: 44, Mult: map[PrayerBoost]combat.Ratio{
		BoostRangedAttack: {Num: 23, Den: 20}, BoostRangedStrength: {Num: 23, Den: 20},
	}},

	{Name: "mystic_will", Level: 9, Mult: map[PrayerBoost]combat.Ratio{BoostMagicAttack: {Num: 21, Den: 20}}},
	{Name: "mystic_lore", Level: 27, Mult: map[PrayerBoost]combat.Ratio{BoostMagicAttack: {Num: 11, Den: 10}}},
	{Name: "mystic_might", Level: 45, Mult: map[PrayerBoost]combat.Ratio{BoostMagicAttack: {Num: 23, Den: 20}}},

	{Name: "chivalry", Level: 60, Mult: map[PrayerBoost]combat.Ratio{
		BoostMeleeAttack: {Num: 23, Den: 20}, BoostMeleeStrength: {Num: 59, Den: 50}, BoostDefence: {Num: 6, Den: 5},
	}},
	{Name: "piety", Level: 70, Mult: map[PrayerBoost]combat.Ratio{
		BoostMeleeAttack: {Num: 6, Den: 5}, BoostMeleeStrength: {Num: 123, Den: 100}, BoostDefence: {Num: 5, Den: 4},
	}},
	{Name: "rigour", Level: 74, Mult: map[PrayerBoost]combat.Ratio{
		BoostRangedAttack: {Num: 6, Den: 5}, BoostRangedStrength: {Num: 123, Den: 100}, BoostDefence: {Num: 5, Den: 4},
	}},
	{Name: "augury", Level: 77, Mult: map[PrayerBoost]combat.Ratio{
		BoostMagicAttack: {Num: 5, Den: 4}, BoostDefence: {Num: 5, Den: 4},
	}},
}

var prayerTable = func() map[string]*Prayer {
	m := make(map[string]*Prayer, len(prayerDefs))
	for i := range prayerDefs {
		m[prayerDefs[i].Name] = &prayerDefs[i]
	}
	return m
}()

// LookupPrayer returns the prayer with the given name.
func LookupPrayer(name string) (*Prayer, error) {
	p, ok := prayerTable[name]
	if !ok {
		return nil, fmt.Errorf("prayer %q: %w", name, ErrNotFound)
	}
	return p, nil
}

// Prayers returns every known prayer in table order.
func Prayers() []Prayer {
	return slices.Clone(prayerDefs)
}

// PrayerMultipliers combines active prayers into one multiplier per boost.
// Two prayers scaling the same level cannot be active together in game; the
// combination is rejected with a ValidationError naming both.
func PrayerMultipliers(prayers []*Prayer) (map[PrayerBoost]combat.Ratio, error) {
	out := make(map[PrayerBoost]combat.Ratio, numPrayerBoosts)
	owner := make(map[PrayerBoost]string, numPrayerBoosts)

	for _, p := range prayers {
		for b := range numPrayerBoosts {
			r, ok := p.Mult[b]
			if !ok {
				continue
			}
			if prev, taken := owner[b]; taken && prev != p.Name {
				return nil, &model.ValidationError{
					Field:  "prayers",
					Reason: fmt.Sprintf("%s and %s both boost %s", prev, p.Name, b),
				}
			}
			owner[b] = p.Name
			out[b] = r
		}
	}
	return out, nil
}
