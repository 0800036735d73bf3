package effect

import "fmt"

// Stage is a named point in the evaluation pipeline where effects may apply.
// Stages run in declaration order.
type Stage int8

const (
	// StagePreEffectiveLevel runs on boosted visible levels and aggregated bonuses.
	StagePreEffectiveLevel Stage = iota
	// StagePostEffectiveLevel runs on derived effective levels.
	StagePostEffectiveLevel
	// StagePreRolls runs after the max rolls are formed and before they are compared.
	StagePreRolls
	// StagePostMaxHit runs on the computed max hit before the damage distribution is built.
	StagePostMaxHit

	numStages
)

// Stages lists every stage in pipeline order.
var Stages = []Stage{
	StagePreEffectiveLevel,
	StagePostEffectiveLevel,
	StagePreRolls,
	StagePostMaxHit,
}

var stageNames = [numStages]string{
	StagePreEffectiveLevel:  "pre_effective_level",
	StagePostEffectiveLevel: "post_effective_level",
	StagePreRolls:           "pre_rolls",
	StagePostMaxHit:         "post_max_hit",
}

func (s Stage) String() string {
	if s < 0 || s >= numStages {
		return fmt.Sprintf("stage(%d)", int8(s))
	}
	return stageNames[s]
}

// MarshalText implements encoding.TextMarshaler.
func (s Stage) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// ParseStage converts a stage name to a Stage.
func ParseStage(name string) (Stage, bool) {
	for i, n := range stageNames {
		if n == name {
			return Stage(i), true
		}
	}
	return 0, false
}
