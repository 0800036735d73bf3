package model

// ItemStats is one catalog item as published by the catalog collaborator.
// Records are read-only once loaded.
type ItemStats struct {
	ID              int32           `json:"id"`
	Name            string          `json:"name"`
	Equipable       bool            `json:"equipable"`
	EquipableWeapon bool            `json:"equipable_weapon"`
	Equipment       *EquipmentStats `json:"equipment,omitempty"`
	Weapon          *WeaponStats    `json:"weapon,omitempty"`
}

// EquipmentStats are the bonuses an item contributes while worn.
type EquipmentStats struct {
	Slot Slot `json:"slot"`

	AttackStab   int64 `json:"attack_stab"`
	AttackSlash  int64 `json:"attack_slash"`
	AttackCrush  int64 `json:"attack_crush"`
	AttackMagic  int64 `json:"attack_magic"`
	AttackRanged int64 `json:"attack_ranged"`

	DefenceStab   int64 `json:"defence_stab"`
	DefenceSlash  int64 `json:"defence_slash"`
	DefenceCrush  int64 `json:"defence_crush"`
	DefenceMagic  int64 `json:"defence_magic"`
	DefenceRanged int64 `json:"defence_ranged"`

	MeleeStrength  int64 `json:"melee_strength"`
	RangedStrength int64 `json:"ranged_strength"`
	MagicDamage    int64 `json:"magic_damage"` // percent
	Prayer         int64 `json:"prayer"`

	Requirements map[Skill]int64 `json:"requirements,omitempty"`
}

// WeaponStats describes how a weapon attacks.
type WeaponStats struct {
	AttackSpeed int64          `json:"attack_speed"` // ticks
	WeaponType  string         `json:"weapon_type"`
	Stances     []WeaponStance `json:"stances"`
}

// WeaponStance is one selectable entry of a weapon's combat interface.
type WeaponStance struct {
	CombatStyle string     `json:"combat_style"` // interface label, e.g. "chop"
	AttackType  AttackType `json:"attack_type"`
	AttackStyle Stance     `json:"attack_style"`
	Experience  string     `json:"experience"`
}

// Offers reports whether the weapon interface has the given stance/type pair.
// Weapons without stance data accept any pair.
func (w *WeaponStats) Offers(stance Stance, attackType AttackType) bool {
	if len(w.Stances) == 0 {
		return true
	}
	for _, st := range w.Stances {
		if st.AttackStyle == stance && st.AttackType == attackType {
			return true
		}
	}
	return false
}

// MonsterStats is one catalog monster.
type MonsterStats struct {
	ID          int32  `json:"id"`
	Name        string `json:"name"`
	CombatLevel int64  `json:"combat_level"`
	Hitpoints   int64  `json:"hitpoints"`
	Size        int64  `json:"size"`

	AttackLevel   int64 `json:"attack_level"`
	StrengthLevel int64 `json:"strength_level"`
	DefenceLevel  int64 `json:"defence_level"`
	MagicLevel    int64 `json:"magic_level"`
	RangedLevel   int64 `json:"ranged_level"`

	DefenceStab   int64 `json:"defence_stab"`
	DefenceSlash  int64 `json:"defence_slash"`
	DefenceCrush  int64 `json:"defence_crush"`
	DefenceMagic  int64 `json:"defence_magic"`
	DefenceRanged int64 `json:"defence_ranged"`

	Attributes    []string `json:"attributes,omitempty"`
	Category      []string `json:"category,omitempty"`
	SlayerMonster bool     `json:"slayer_monster"`
	SlayerLevel   int64    `json:"slayer_level"`
}

// DefenceBonuses holds a target's defensive bonus per attack type.
type DefenceBonuses struct {
	Stab   int64 `json:"stab"`
	Slash  int64 `json:"slash"`
	Crush  int64 `json:"crush"`
	Magic  int64 `json:"magic"`
	Ranged int64 `json:"ranged"`
}

// For returns the bonus that defends against t.
func (d DefenceBonuses) For(t AttackType) int64 {
	switch t {
	case AttackStab:
		return d.Stab
	case AttackSlash:
		return d.Slash
	case AttackCrush:
		return d.Crush
	case AttackMagic:
		return d.Magic
	case AttackRanged:
		return d.Ranged
	}
	return 0
}

// Target is a fully resolved defender: catalog monster with overrides applied,
// or a custom record.
type Target struct {
	Name         string
	Hitpoints    int64
	Size         int64
	DefenceLevel int64
	MagicLevel   int64
	Defence      DefenceBonuses
	Attributes   []string
}

// HasAttribute reports whether the target carries attr.
func (t *Target) HasAttribute(attr string) bool {
	for _, a := range t.Attributes {
		if a == attr {
			return true
		}
	}
	return false
}

// TargetFromMonster converts a catalog monster into a Target.
func TargetFromMonster(m MonsterStats) Target {
	size := m.Size
	if size < 1 {
		size = 1
	}
	return Target{
		Name:         m.Name,
		Hitpoints:    m.Hitpoints,
		Size:         size,
		DefenceLevel: m.DefenceLevel,
		MagicLevel:   m.MagicLevel,
		Defence: DefenceBonuses{
			Stab:   m.DefenceStab,
			Slash:  m.DefenceSlash,
			Crush:  m.DefenceCrush,
			Magic:  m.DefenceMagic,
			Ranged: m.DefenceRanged,
		},
		Attributes: append([]string(nil), m.Attributes...),
	}
}
