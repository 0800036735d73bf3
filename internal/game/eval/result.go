package eval

import (
	"encoding/json"
	"math/big"

	"github.com/udisondev/osrs-sim/internal/game/combat"
	"github.com/udisondev/osrs-sim/internal/game/effect"
	"github.com/udisondev/osrs-sim/internal/model"
)

// Result is the outcome of one evaluation. Probabilities and averages are
// exact; float views exist for presentation only.
type Result struct {
	Target     string
	Style      model.CombatStyle
	AttackType model.AttackType

	DPS      *big.Rat
	Expected *big.Rat // damage per attack
	Accuracy *big.Rat

	MaxHit      int64
	MinHit      int64
	HitCount    int64
	AttackRoll  int64
	DefenceRoll int64
	Interval    int64 // ticks
	Effective   combat.EffectiveLevels

	// Breakdown lists every applied effect in application order.
	Breakdown  []effect.Applied
	Suppressed []effect.Suppressed
	// Final is the working state after the last stage.
	Final        map[string]int64
	Distribution *combat.Distribution
}

// DPSFloat returns DPS as a float64.
func (r *Result) DPSFloat() float64 {
	f, _ := r.DPS.Float64()
	return f
}

// AccuracyFloat returns the hit chance as a float64.
func (r *Result) AccuracyFloat() float64 {
	f, _ := r.Accuracy.Float64()
	return f
}

// ExpectedFloat returns the expected damage per attack as a float64.
func (r *Result) ExpectedFloat() float64 {
	f, _ := r.Expected.Float64()
	return f
}

type resultJSON struct {
	Target        string                 `json:"target"`
	Style         model.CombatStyle      `json:"style"`
	AttackType    model.AttackType       `json:"attack_type"`
	DPS           float64                `json:"dps"`
	DPSExact      string                 `json:"dps_exact"`
	Expected      float64                `json:"expected_hit"`
	Accuracy      float64                `json:"accuracy"`
	AccuracyExact string                 `json:"accuracy_exact"`
	MaxHit        int64                  `json:"max_hit"`
	MinHit        int64                  `json:"min_hit"`
	HitCount      int64                  `json:"hit_count"`
	AttackRoll    int64                  `json:"attack_roll"`
	DefenceRoll   int64                  `json:"defence_roll"`
	Interval      int64                  `json:"interval_ticks"`
	Effective     combat.EffectiveLevels `json:"effective_levels"`
	Breakdown     []effect.Applied       `json:"breakdown"`
	Suppressed    []effect.Suppressed    `json:"suppressed,omitempty"`
}

// MarshalJSON renders floats next to the exact reduced fractions.
func (r *Result) MarshalJSON() ([]byte, error) {
	breakdown := r.Breakdown
	if breakdown == nil {
		breakdown = []effect.Applied{}
	}
	return json.Marshal(resultJSON{
		Target:        r.Target,
		Style:         r.Style,
		AttackType:    r.AttackType,
		DPS:           r.DPSFloat(),
		DPSExact:      r.DPS.RatString(),
		Expected:      r.ExpectedFloat(),
		Accuracy:      r.AccuracyFloat(),
		AccuracyExact: r.Accuracy.RatString(),
		MaxHit:        r.MaxHit,
		MinHit:        r.MinHit,
		HitCount:      r.HitCount,
		AttackRoll:    r.AttackRoll,
		DefenceRoll:   r.DefenceRoll,
		Interval:      r.Interval,
		Effective:     r.Effective,
		Breakdown:     breakdown,
		Suppressed:    r.Suppressed,
	})
}
