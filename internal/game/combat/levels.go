package combat

import "fmt"

// Level offsets added after the prayer multiplier and stance bonus.
const (
	LevelOffset        = 8 // melee and ranged
	MagicLevelOffset   = 9 // magic accuracy
	DefenceLevelOffset = 9 // target defence, no stance
)

// Ratio is an exact integer multiplier applied with floor division.
type Ratio struct {
	Num int64
	Den int64
}

// One is the identity multiplier.
var One = Ratio{Num: 1, Den: 1}

// Apply returns floor(v * Num / Den).
func (r Ratio) Apply(v int64) int64 {
	return FloorDiv(v*r.Num, r.Den)
}

// Valid reports whether the ratio can be applied.
func (r Ratio) Valid() bool { return r.Den > 0 && r.Num >= 0 }

// Greater reports whether r is strictly larger than o.
func (r Ratio) Greater(o Ratio) bool { return r.Num*o.Den > o.Num*r.Den }

func (r Ratio) String() string { return fmt.Sprintf("%d/%d", r.Num, r.Den) }

// FloorDiv divides a by b rounding toward negative infinity.
// b must be positive.
func FloorDiv(a, b int64) int64 {
	q := a / b
	if (a%b != 0) && (a < 0) {
		q--
	}
	return q
}

// EffectiveLevel derives an effective level.
// Formula: floor(floor((base + boost) * prayer) + stance + offset).
//
// The inner floor is taken on the prayed level before the stance bonus is
// added; the two steps are never folded into one multiplication.
func EffectiveLevel(base, boost int64, prayer Ratio, stance, offset int64) int64 {
	visible := base + boost
	if visible < 0 {
		visible = 0
	}
	prayed := prayer.Apply(visible)
	return prayed + stance + offset
}

// EffectiveDefenceLevel returns a target's effective defence level.
// Monsters have no stance or prayer: level + 9.
func EffectiveDefenceLevel(level int64) int64 {
	if level < 0 {
		level = 0
	}
	return level + DefenceLevelOffset
}

// EffectiveLevels are the derived levels one evaluation feeds into the rolls.
type EffectiveLevels struct {
	Attack   int64 `json:"attack"`
	Strength int64 `json:"strength"`
	Defence  int64 `json:"defence"` // target
}
