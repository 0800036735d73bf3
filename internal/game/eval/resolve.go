package eval

import (
	"errors"
	"fmt"
	"maps"
	"slices"
	"strconv"

	"github.com/udisondev/osrs-sim/internal/data"
	"github.com/udisondev/osrs-sim/internal/game/combat"
	"github.com/udisondev/osrs-sim/internal/model"
)

// Catalog is the read side of the item and monster catalog.
type Catalog interface {
	LookupItem(id int32) (model.ItemStats, error)
	LookupMonster(id int32) (model.MonsterStats, error)
}

// MaxLevel is the highest base level of any skill.
const MaxLevel = 99

// Loadout is a fully resolved evaluation input: every identifier looked up,
// every shape validated. Run never fails on a Loadout.
type Loadout struct {
	Levels        map[model.Skill]int64 // base levels
	Boosts        map[model.Skill]int64 // potion + manual
	Prayers       []*data.Prayer
	PrayerMult    map[data.PrayerBoost]combat.Ratio
	Potions       []*data.Potion
	OnTask        bool
	InWilderness  bool
	CurrentHealth int64

	Items       map[model.Slot]model.ItemStats
	Weapon      model.ItemStats
	Stance      model.Stance
	StanceBonus model.StanceBonus
	AttackType  model.AttackType
	Style       model.CombatStyle
	Spell       *data.Spell

	Target        model.Target
	SlayerMonster bool
	CustomTarget  bool
}

// Visible returns the boosted level of skill, never below zero.
func (l *Loadout) Visible(skill model.Skill) int64 {
	return max(l.Levels[skill]+l.Boosts[skill], 0)
}

// Gear aggregates the bonuses of every worn item.
func (l *Loadout) Gear() combat.StatBlock {
	slots := make(map[model.Slot]model.EquipmentStats, len(l.Items))
	for slot, it := range l.Items {
		slots[slot] = *it.Equipment
	}
	return combat.Aggregate(combat.StatBlock{}, slots)
}

// Interval returns the attack interval in ticks before effects.
func (l *Loadout) Interval() int64 {
	if l.Style == model.StyleMagic {
		return l.Spell.AttackSpeed
	}
	return l.Weapon.Weapon.AttackSpeed + l.StanceBonus.SpeedDelta
}

// Resolve validates the inputs and looks up every identifier they reference.
// Shape problems and out-of-range numbers yield *model.ValidationError;
// unknown identifiers and unmet requirements yield *model.ResolutionError.
func Resolve(c Catalog, p model.PlayerInput, b model.BuildInput, t model.TargetInput) (*Loadout, error) {
	l := &Loadout{}
	if err := l.resolvePlayer(p); err != nil {
		return nil, err
	}
	if err := l.resolveEquipment(c, b.Equipment); err != nil {
		return nil, err
	}
	if err := l.resolveStyle(b.Style); err != nil {
		return nil, err
	}
	if err := l.resolveTarget(c, t); err != nil {
		return nil, err
	}
	return l, nil
}

func (l *Loadout) resolvePlayer(p model.PlayerInput) error {
	l.Levels = make(map[model.Skill]int64, len(model.Skills))
	for _, sk := range model.Skills {
		l.Levels[sk] = 1
	}
	l.Levels[model.SkillHitpoints] = 10

	for _, name := range slices.Sorted(maps.Keys(p.Skills)) {
		sk, err := model.ParseSkill(name)
		if err != nil {
			return err
		}
		lvl := p.Skills[name]
		if lvl < 1 || lvl > MaxLevel {
			return &model.ValidationError{Field: "skills." + name, Reason: fmt.Sprintf("level %d out of range 1..%d", lvl, MaxLevel)}
		}
		l.Levels[sk] = lvl
	}

	for _, name := range p.Prayers {
		pr, err := data.LookupPrayer(name)
		if err != nil {
			return &model.ResolutionError{Kind: "prayer", ID: name, Reason: "unknown prayer", Err: err}
		}
		if l.Levels[model.SkillPrayer] < pr.Level {
			return &model.ResolutionError{Kind: "prayer", ID: name, Reason: fmt.Sprintf("requires prayer %d", pr.Level)}
		}
		l.Prayers = append(l.Prayers, pr)
	}
	mult, err := data.PrayerMultipliers(l.Prayers)
	if err != nil {
		return err
	}
	l.PrayerMult = mult

	for _, name := range p.Boosts.Potions {
		pot, err := data.LookupPotion(name)
		if err != nil {
			return &model.ResolutionError{Kind: "potion", ID: name, Reason: "unknown potion", Err: err}
		}
		l.Potions = append(l.Potions, pot)
	}
	l.Boosts = data.PotionBoosts(l.Potions, l.Levels)
	for _, name := range slices.Sorted(maps.Keys(p.Boosts.Manual)) {
		sk, err := model.ParseSkill(name)
		if err != nil {
			return &model.ValidationError{Field: "boosts.manual", Reason: err.Error()}
		}
		v := p.Boosts.Manual[name]
		if err := inRange("boosts.manual."+name, v, -model.MaxBoost, model.MaxBoost); err != nil {
			return err
		}
		l.Boosts[sk] += v
	}

	l.OnTask = p.Flags.OnTask
	l.InWilderness = p.Flags.InWilderness
	l.CurrentHealth = l.Levels[model.SkillHitpoints]
	if p.Flags.CurrentHitpoints != nil {
		hp := *p.Flags.CurrentHitpoints
		if hp < 1 {
			return &model.ValidationError{Field: "flags.current_hitpoints", Reason: fmt.Sprintf("must be at least 1, got %d", hp)}
		}
		if err := inRange("flags.current_hitpoints", hp, 1, model.MaxTargetValue); err != nil {
			return err
		}
		l.CurrentHealth = hp
	}
	return nil
}

func (l *Loadout) resolveEquipment(c Catalog, equipment map[string]int32) error {
	l.Items = make(map[model.Slot]model.ItemStats, len(equipment))

	for _, name := range slices.Sorted(maps.Keys(equipment)) {
		slot, err := model.ParseSlot(name)
		if err != nil {
			return err
		}
		id := equipment[name]
		if id <= 0 {
			return &model.ValidationError{Field: "equipment." + name, Reason: fmt.Sprintf("invalid item id %d", id)}
		}

		it, err := c.LookupItem(id)
		if err != nil {
			return &model.ResolutionError{Kind: "item", ID: strconv.Itoa(int(id)), Reason: "unknown item", Err: err}
		}
		if !it.Equipable || it.Equipment == nil {
			return &model.ResolutionError{Kind: "item", ID: strconv.Itoa(int(id)), Reason: it.Name + " is not equipable"}
		}
		if !slot.Fits(it.Equipment.Slot) {
			return &model.ValidationError{
				Field:  "equipment." + name,
				Reason: fmt.Sprintf("%s is worn in slot %s", it.Name, it.Equipment.Slot),
			}
		}
		for _, sk := range slices.Sorted(maps.Keys(it.Equipment.Requirements)) {
			if need := it.Equipment.Requirements[sk]; l.Levels[sk] < need {
				return &model.ResolutionError{
					Kind:   "item",
					ID:     strconv.Itoa(int(id)),
					Reason: fmt.Sprintf("%s requires %s %d", it.Name, sk, need),
				}
			}
		}
		l.Items[slot] = it
	}

	weapon, ok := l.Items[model.SlotWeapon]
	if !ok {
		return &model.ValidationError{Field: "equipment.weapon", Reason: "a weapon is required"}
	}
	if weapon.Weapon == nil {
		return &model.ResolutionError{Kind: "item", ID: strconv.Itoa(int(weapon.ID)), Reason: weapon.Name + " has no weapon data"}
	}
	if weapon.Weapon.AttackSpeed <= 0 {
		// data.NewStore отсекает такие записи при загрузке
		panic(fmt.Sprintf("eval: item %d has attack speed %d", weapon.ID, weapon.Weapon.AttackSpeed))
	}
	if _, shield := l.Items[model.SlotShield]; shield && weapon.Equipment.Slot == model.Slot2H {
		return &model.ValidationError{Field: "equipment.shield", Reason: weapon.Name + " is two-handed"}
	}
	l.Weapon = weapon
	return nil
}

func (l *Loadout) resolveStyle(s model.StyleInput) error {
	stance, err := model.ParseStance(s.Stance)
	if err != nil {
		return err
	}
	attackType, err := model.ParseAttackType(s.AttackType)
	if err != nil {
		return err
	}
	style := attackType.Style()

	bonus, ok := stance.Bonus(style)
	if !ok {
		return &model.ValidationError{Field: "style.stance", Reason: fmt.Sprintf("%s is not a %s stance", stance, style)}
	}

	if style == model.StyleMagic {
		if s.Spell == "" {
			return &model.ValidationError{Field: "style.spell", Reason: "magic attacks require a spell"}
		}
		sp, err := data.LookupSpell(s.Spell)
		if err != nil {
			return &model.ResolutionError{Kind: "spell", ID: s.Spell, Reason: "unknown spell", Err: err}
		}
		if l.Levels[model.SkillMagic] < sp.Level {
			return &model.ResolutionError{Kind: "spell", ID: s.Spell, Reason: fmt.Sprintf("requires magic %d", sp.Level)}
		}
		l.Spell = sp
	} else {
		if s.Spell != "" {
			return &model.ValidationError{Field: "style.spell", Reason: "only magic attacks cast spells"}
		}
		if !l.Weapon.Weapon.Offers(stance, attackType) {
			return &model.ValidationError{
				Field:  "style",
				Reason: fmt.Sprintf("%s has no %s %s stance", l.Weapon.Name, stance, attackType),
			}
		}
	}

	l.Stance = stance
	l.StanceBonus = bonus
	l.AttackType = attackType
	l.Style = style
	return nil
}

func (l *Loadout) resolveTarget(c Catalog, t model.TargetInput) error {
	switch {
	case t.MonsterID != nil && t.Custom != nil:
		return &model.ValidationError{Field: "target", Reason: "monster_id and custom are mutually exclusive"}
	case t.MonsterID == nil && t.Custom == nil:
		return &model.ValidationError{Field: "target", Reason: "one of monster_id or custom is required"}
	case t.Custom != nil:
		if t.Overrides != nil {
			return &model.ValidationError{Field: "target.overrides", Reason: "overrides apply to catalog monsters only"}
		}
		return l.resolveCustom(t.Custom)
	}

	id := *t.MonsterID
	m, err := c.LookupMonster(id)
	if err != nil {
		return &model.ResolutionError{Kind: "monster", ID: strconv.Itoa(int(id)), Reason: "unknown monster", Err: err}
	}
	l.Target = model.TargetFromMonster(m)
	l.SlayerMonster = m.SlayerMonster
	if t.Overrides != nil {
		return applyOverrides(&l.Target, t.Overrides)
	}
	return nil
}

func (l *Loadout) resolveCustom(ct *model.CustomTarget) error {
	lv := ct.Levels
	// size 0 means the default of one tile
	for _, f := range []struct {
		name string
		v    int64
	}{
		{"levels.hitpoints", lv.Hitpoints},
		{"levels.defence", lv.Defence},
		{"levels.magic", lv.Magic},
		{"size", ct.Size},
	} {
		if err := inRange("target.custom."+f.name, f.v, 0, model.MaxTargetValue); err != nil {
			return err
		}
	}
	if err := checkDefence("target.custom.defence_bonuses", ct.DefenceBonuses); err != nil {
		return err
	}
	name := ct.Name
	if name == "" {
		name = "Custom target"
	}
	size := ct.Size
	if size < 1 {
		size = 1
	}
	l.Target = model.Target{
		Name:         name,
		Hitpoints:    lv.Hitpoints,
		Size:         size,
		DefenceLevel: lv.Defence,
		MagicLevel:   lv.Magic,
		Defence:      ct.DefenceBonuses,
		Attributes:   slices.Clone(ct.Attributes),
	}
	l.CustomTarget = true
	return nil
}

var errNegativeOverride = errors.New("must not be negative")

func inRange(field string, v, lo, hi int64) error {
	if v < lo || v > hi {
		return &model.ValidationError{Field: field, Reason: fmt.Sprintf("%d out of range %d..%d", v, lo, hi)}
	}
	return nil
}

func checkDefence(field string, d model.DefenceBonuses) error {
	for _, b := range []struct {
		name string
		v    int64
	}{
		{"stab", d.Stab}, {"slash", d.Slash}, {"crush", d.Crush}, {"magic", d.Magic}, {"ranged", d.Ranged},
	} {
		if err := inRange(field+"."+b.name, b.v, -model.MaxTargetValue, model.MaxTargetValue); err != nil {
			return err
		}
	}
	return nil
}

func applyOverrides(tg *model.Target, o *model.TargetOverrides) error {
	set := func(field string, dst *int64, v *int64) error {
		if v == nil {
			return nil
		}
		if *v < 0 {
			return &model.ValidationError{Field: "target.overrides." + field, Reason: errNegativeOverride.Error()}
		}
		if err := inRange("target.overrides."+field, *v, 0, model.MaxTargetValue); err != nil {
			return err
		}
		*dst = *v
		return nil
	}
	if err := set("defence_level", &tg.DefenceLevel, o.DefenceLevel); err != nil {
		return err
	}
	if err := set("magic_level", &tg.MagicLevel, o.MagicLevel); err != nil {
		return err
	}
	if err := set("size", &tg.Size, o.Size); err != nil {
		return err
	}
	tg.Size = max(tg.Size, 1)

	if db := o.DefenceBonuses; db != nil {
		replace := func(dst *int64, v *int64) {
			if v != nil {
				*dst = *v
			}
		}
		replace(&tg.Defence.Stab, db.Stab)
		replace(&tg.Defence.Slash, db.Slash)
		replace(&tg.Defence.Crush, db.Crush)
		replace(&tg.Defence.Magic, db.Magic)
		replace(&tg.Defence.Ranged, db.Ranged)
	}
	if d := o.DefenceDeltas; d != nil {
		if err := checkDefence("target.overrides.defence_deltas", *d); err != nil {
			return err
		}
		tg.Defence.Stab += d.Stab
		tg.Defence.Slash += d.Slash
		tg.Defence.Crush += d.Crush
		tg.Defence.Magic += d.Magic
		tg.Defence.Ranged += d.Ranged
	}
	if o.DefenceBonuses != nil || o.DefenceDeltas != nil {
		if err := checkDefence("target.overrides.defence", tg.Defence); err != nil {
			return err
		}
	}

	for _, a := range o.AttributesAdd {
		if !tg.HasAttribute(a) {
			tg.Attributes = append(tg.Attributes, a)
		}
	}
	if len(o.AttributesRemove) > 0 {
		tg.Attributes = slices.DeleteFunc(tg.Attributes, func(a string) bool {
			return slices.Contains(o.AttributesRemove, a)
		})
	}
	return nil
}
