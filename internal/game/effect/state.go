package effect

import "fmt"

// Stat names one value of the pipeline working state.
type Stat int8

const (
	StatAttackLevel Stat = iota
	StatStrengthLevel
	StatDefenceLevel
	StatAttackBonus
	StatStrengthBonus
	StatDefenceBonus
	StatEffectiveAttack
	StatEffectiveStrength
	StatEffectiveDefence
	StatAttackRoll
	StatDefenceRoll
	StatMaxHit
	StatMinHit
	StatHitCount
	StatAttackSpeed

	numStats
)

var statNames = [numStats]string{
	StatAttackLevel:       "attack_level",
	StatStrengthLevel:     "strength_level",
	StatDefenceLevel:      "defence_level",
	StatAttackBonus:       "attack_bonus",
	StatStrengthBonus:     "strength_bonus",
	StatDefenceBonus:      "defence_bonus",
	StatEffectiveAttack:   "effective_attack",
	StatEffectiveStrength: "effective_strength",
	StatEffectiveDefence:  "effective_defence",
	StatAttackRoll:        "attack_roll",
	StatDefenceRoll:       "defence_roll",
	StatMaxHit:            "max_hit",
	StatMinHit:            "min_hit",
	StatHitCount:          "hit_count",
	StatAttackSpeed:       "attack_speed",
}

// statFloor is the lowest value a stat may hold. Equipment bonuses can be
// negative; levels, rolls and hits cannot. Hit count and speed never drop below one.
var statFloor = [numStats]int64{
	StatAttackBonus:   minBonus,
	StatStrengthBonus: minBonus,
	StatDefenceBonus:  minBonus,
	StatHitCount:      1,
	StatAttackSpeed:   1,
}

const minBonus = -1 << 40

// writable lists the stats each stage may modify. A stat is writable only
// while the next formula step has not consumed it yet.
var writable = [numStages][]Stat{
	StagePreEffectiveLevel: {
		StatAttackLevel, StatStrengthLevel, StatDefenceLevel,
		StatAttackBonus, StatStrengthBonus, StatDefenceBonus,
		StatHitCount, StatAttackSpeed,
	},
	StagePostEffectiveLevel: {
		StatEffectiveAttack, StatEffectiveStrength, StatEffectiveDefence,
		StatAttackBonus, StatStrengthBonus, StatDefenceBonus,
		StatHitCount, StatAttackSpeed,
	},
	StagePreRolls: {
		StatAttackRoll, StatDefenceRoll,
		StatHitCount, StatAttackSpeed,
	},
	StagePostMaxHit: {
		StatMaxHit, StatMinHit,
		StatHitCount, StatAttackSpeed,
	},
}

func (s Stat) String() string {
	if s < 0 || s >= numStats {
		return fmt.Sprintf("stat(%d)", int8(s))
	}
	return statNames[s]
}

// MarshalText implements encoding.TextMarshaler.
func (s Stat) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// ParseStat converts a stat name to a Stat.
func ParseStat(name string) (Stat, bool) {
	for i, n := range statNames {
		if n == name {
			return Stat(i), true
		}
	}
	return 0, false
}

// WritableIn reports whether stage may modify s.
func (s Stat) WritableIn(stage Stage) bool {
	if stage < 0 || stage >= numStages {
		return false
	}
	for _, w := range writable[stage] {
		if w == s {
			return true
		}
	}
	return false
}

// State is the mutable working state of one evaluation.
// Each call allocates its own State; it is never shared.
type State struct {
	values [numStats]int64
}

// NewState returns a state with hit count and attack speed at their floor.
func NewState() *State {
	s := &State{}
	s.values[StatHitCount] = 1
	s.values[StatAttackSpeed] = 1
	return s
}

// Get returns the current value of stat.
func (s *State) Get(stat Stat) int64 {
	return s.values[stat]
}

// Set stores v, clamped to the stat floor.
func (s *State) Set(stat Stat, v int64) {
	if v < statFloor[stat] {
		v = statFloor[stat]
	}
	s.values[stat] = v
}

// Snapshot returns every stat keyed by name. Used by explain output.
func (s *State) Snapshot() map[string]int64 {
	out := make(map[string]int64, numStats)
	for i := range numStats {
		out[statNames[i]] = s.values[i]
	}
	return out
}
