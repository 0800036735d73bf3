package eval

import (
	"github.com/udisondev/osrs-sim/internal/game/effect"
	"github.com/udisondev/osrs-sim/internal/model"
)

// Facts flattens the loadout into the fact set conditions are evaluated
// against. The result is never modified afterwards.
func (l *Loadout) Facts() *effect.Facts {
	f := effect.NewFacts()

	f.Set(effect.FactStyle, string(l.Style))
	f.Set(effect.FactAttackType, string(l.AttackType))
	f.Set(effect.FactStance, string(l.Stance))
	if wt := l.Weapon.Weapon.WeaponType; wt != "" {
		f.Set(effect.FactWeaponType, wt)
	}
	if l.Spell != nil {
		f.Set(effect.FactSpell, l.Spell.Name)
		f.Set(effect.FactSpellbook, l.Spell.Spellbook)
	}

	hpLevel := l.Levels[model.SkillHitpoints]
	f.SetBool(effect.FactOnTask, l.OnTask)
	f.SetBool(effect.FactWilderness, l.InWilderness)
	f.SetBool(effect.FactFullHealth, l.CurrentHealth >= hpLevel)
	f.SetNumber(effect.NumPlayerHitpoints, hpLevel)
	f.SetNumber(effect.NumPlayerCurrentHealth, l.CurrentHealth)

	for _, p := range l.Prayers {
		f.SetBool(effect.FactPrayer+p.Name, true)
	}
	for _, p := range l.Potions {
		f.SetBool(effect.FactPotion+p.Name, true)
	}
	for _, it := range l.Items {
		f.MarkEquipped(it.ID)
	}

	f.Set(effect.FactTargetName, l.Target.Name)
	for _, a := range l.Target.Attributes {
		f.SetBool(effect.FactTargetAttr+a, true)
	}
	f.SetBool(effect.FactSlayerTask, l.SlayerMonster)
	f.SetBool(effect.FactCustomTarget, l.CustomTarget)
	f.SetNumber(effect.NumTargetMagicLevel, l.Target.MagicLevel)
	f.SetNumber(effect.NumTargetSize, l.Target.Size)
	f.SetNumber(effect.NumTargetHitpoints, l.Target.Hitpoints)

	return f
}
