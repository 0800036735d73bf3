package effect

import (
	"fmt"

	"github.com/udisondev/osrs-sim/internal/game/combat"
)

// OpKind enumerates operation shapes.
type OpKind int8

const (
	OpAdd OpKind = iota
	OpMultiply
	OpOverride
	OpSpecial
)

func (k OpKind) String() string {
	switch k {
	case OpAdd:
		return "add"
	case OpMultiply:
		return "multiply"
	case OpOverride:
		return "override"
	case OpSpecial:
		return "special"
	}
	return fmt.Sprintf("op(%d)", int8(k))
}

// Operation is what an effect does to the working state once its condition holds.
type Operation struct {
	Kind    OpKind
	Stat    Stat
	Value   int64        // add, override
	Factor  combat.Ratio // multiply
	Special SpecialOp    // special
}

// Add returns an operation adding v to stat.
func Add(stat Stat, v int64) Operation {
	return Operation{Kind: OpAdd, Stat: stat, Value: v}
}

// Multiply returns an operation setting stat to floor(stat * num / den).
func Multiply(stat Stat, num, den int64) Operation {
	return Operation{Kind: OpMultiply, Stat: stat, Factor: combat.Ratio{Num: num, Den: den}}
}

// Override returns an operation replacing stat with v.
func Override(stat Stat, v int64) Operation {
	return Operation{Kind: OpOverride, Stat: stat, Value: v}
}

// Special returns an operation running the named special-case formula.
func Special(op SpecialOp) Operation {
	return Operation{Kind: OpSpecial, Special: op}
}

// Change records one stat mutation.
type Change struct {
	Stat   Stat
	Before int64
	After  int64
}

// apply mutates s and returns the changes it made, in order.
func (o Operation) apply(stage Stage, f *Facts, s *State) []Change {
	if o.Kind == OpSpecial {
		return o.Special.apply(stage, f, s)
	}

	before := s.Get(o.Stat)
	var after int64
	switch o.Kind {
	case OpAdd:
		after = before + o.Value
	case OpMultiply:
		after = o.Factor.Apply(before)
	case OpOverride:
		after = o.Value
	}
	s.Set(o.Stat, after)
	return []Change{{Stat: o.Stat, Before: before, After: s.Get(o.Stat)}}
}

func (o Operation) String() string {
	switch o.Kind {
	case OpAdd:
		return fmt.Sprintf("add(%s, %d)", o.Stat, o.Value)
	case OpMultiply:
		return fmt.Sprintf("multiply(%s, %s)", o.Stat, o.Factor)
	case OpOverride:
		return fmt.Sprintf("override(%s, %d)", o.Stat, o.Value)
	case OpSpecial:
		return fmt.Sprintf("special(%s)", o.Special)
	}
	return "?"
}

// validate checks that the operation may run in stage.
func (o Operation) validate(stage Stage) error {
	switch o.Kind {
	case OpSpecial:
		stages, ok := o.Special.Stages()
		if !ok {
			return fmt.Errorf("unknown special operation %q", o.Special)
		}
		for _, st := range stages {
			if st == stage {
				return nil
			}
		}
		return fmt.Errorf("special operation %s cannot run in stage %s", o.Special, stage)
	case OpMultiply:
		if !o.Factor.Valid() {
			return fmt.Errorf("multiply %s: invalid factor %s", o.Stat, o.Factor)
		}
	case OpAdd, OpOverride:
	default:
		return fmt.Errorf("unknown operation kind %d", o.Kind)
	}
	if !o.Stat.WritableIn(stage) {
		return fmt.Errorf("stat %s is not writable in stage %s", o.Stat, stage)
	}
	return nil
}
