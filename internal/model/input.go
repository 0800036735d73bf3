package model

// Bounds on numbers that feed roll arithmetic. Resolve rejects caller input
// outside them; the catalog loader rejects records outside them.
const (
	MaxBoost       = 255       // |manual boost| per skill
	MaxTargetValue = 1_000_000 // target levels, size, hitpoints and |defence bonus|
	MaxGearBonus   = 10_000    // |equipment bonus| per item
)

// PlayerInput is the caller-supplied description of the attacking player.
type PlayerInput struct {
	Skills  map[string]int64 `json:"skills" jsonschema:"description=Base levels; missing skills default to 1 (hitpoints to 10)"`
	Prayers []string         `json:"prayers,omitempty"`
	Boosts  BoostInput       `json:"boosts"`
	Flags   PlayerFlags      `json:"flags"`
}

// BoostInput lists active potions plus manual per-skill boosts.
// Potions that affect the same skill do not stack; the largest boost wins.
// Manual boosts are added on top.
type BoostInput struct {
	Potions []string         `json:"potions,omitempty"`
	Manual  map[string]int64 `json:"manual,omitempty"`
}

// PlayerFlags are contextual switches the player controls.
type PlayerFlags struct {
	OnTask       bool `json:"on_task"`
	InWilderness bool `json:"in_wilderness"`
	// CurrentHitpoints defaults to the hitpoints level when nil.
	CurrentHitpoints *int64 `json:"current_hitpoints,omitempty"`
}

// BuildInput is the equipped loadout and chosen attack.
type BuildInput struct {
	Equipment map[string]int32 `json:"equipment" jsonschema:"required,description=Item id per slot; weapon is mandatory"`
	Style     StyleInput       `json:"style" jsonschema:"required"`
}

// StyleInput selects how the weapon is used.
type StyleInput struct {
	Stance     string `json:"stance" jsonschema:"required,enum=accurate,enum=aggressive,enum=defensive,enum=controlled,enum=rapid,enum=longrange,enum=autocast"`
	AttackType string `json:"attack_type" jsonschema:"required,enum=stab,enum=slash,enum=crush,enum=ranged,enum=magic"`
	// Spell is required when AttackType is magic.
	Spell string `json:"spell,omitempty"`
}

// TargetInput is either a catalog reference with optional overrides or a
// self-contained custom target. Exactly one of MonsterID and Custom is set.
type TargetInput struct {
	MonsterID *int32           `json:"monster_id,omitempty"`
	Overrides *TargetOverrides `json:"overrides,omitempty"`
	Custom    *CustomTarget    `json:"custom,omitempty"`
}

// TargetOverrides patch a catalog monster. Nil fields keep catalog values.
type TargetOverrides struct {
	DefenceLevel     *int64                 `json:"defence_level,omitempty"`
	MagicLevel       *int64                 `json:"magic_level,omitempty"`
	Size             *int64                 `json:"size,omitempty"`
	DefenceBonuses   *DefenceBonusOverrides `json:"defence_bonuses,omitempty"`
	DefenceDeltas    *DefenceBonuses        `json:"defence_deltas,omitempty"`
	AttributesAdd    []string               `json:"attributes_add,omitempty"`
	AttributesRemove []string               `json:"attributes_remove,omitempty"`
}

// DefenceBonusOverrides replace individual defensive bonuses.
type DefenceBonusOverrides struct {
	Stab   *int64 `json:"stab,omitempty"`
	Slash  *int64 `json:"slash,omitempty"`
	Crush  *int64 `json:"crush,omitempty"`
	Magic  *int64 `json:"magic,omitempty"`
	Ranged *int64 `json:"ranged,omitempty"`
}

// CustomTarget is a target that does not exist in the catalog.
type CustomTarget struct {
	Name           string         `json:"name"`
	Levels         CustomLevels   `json:"levels"`
	DefenceBonuses DefenceBonuses `json:"defence_bonuses"`
	Attributes     []string       `json:"attributes,omitempty"`
	Size           int64          `json:"size,omitempty"`
}

// CustomLevels are the levels of a custom target.
type CustomLevels struct {
	Hitpoints int64 `json:"hitpoints"`
	Defence   int64 `json:"defence"`
	Magic     int64 `json:"magic"`
}
