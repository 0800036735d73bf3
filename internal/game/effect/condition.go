package effect

import (
	"errors"
	"fmt"
	"strings"
)

type condKind int8

const (
	condAlways condKind = iota
	condFact
	condEquipped
	condAnyEquipped
	condAll
	condAny
	condNot
)

// Condition is a compiled predicate over Facts. The set of node kinds is
// closed: fact, equipped, any_equipped, all, any, not. The zero Condition is
// always true.
type Condition struct {
	kind     condKind
	key      string
	equals   string
	items    []int32
	children []Condition
}

// Always returns the condition that is always true.
func Always() Condition { return Condition{} }

// FactIs matches when flag key is set; when equals is non-empty the flag must
// carry exactly that value.
func FactIs(key, equals string) Condition {
	return Condition{kind: condFact, key: key, equals: equals}
}

// Equipped matches when item id is worn.
func Equipped(id int32) Condition {
	return Condition{kind: condEquipped, items: []int32{id}}
}

// AnyEquipped matches when at least one of ids is worn.
func AnyEquipped(ids ...int32) Condition {
	return Condition{kind: condAnyEquipped, items: ids}
}

// All matches when every child matches.
func All(children ...Condition) Condition {
	return Condition{kind: condAll, children: children}
}

// Any matches when at least one child matches.
func Any(children ...Condition) Condition {
	return Condition{kind: condAny, children: children}
}

// Not negates c.
func Not(c Condition) Condition {
	return Condition{kind: condNot, children: []Condition{c}}
}

// Eval evaluates the condition against f. It has no side effects.
func (c Condition) Eval(f *Facts) bool {
	switch c.kind {
	case condAlways:
		return true
	case condFact:
		v, ok := f.Flag(c.key)
		if !ok {
			return false
		}
		if c.equals == "" {
			return v == "true"
		}
		return v == c.equals
	case condEquipped:
		return f.IsEquipped(c.items[0])
	case condAnyEquipped:
		for _, id := range c.items {
			if f.IsEquipped(id) {
				return true
			}
		}
		return false
	case condAll:
		for _, ch := range c.children {
			if !ch.Eval(f) {
				return false
			}
		}
		return true
	case condAny:
		for _, ch := range c.children {
			if ch.Eval(f) {
				return true
			}
		}
		return false
	case condNot:
		return !c.children[0].Eval(f)
	}
	return false
}

// String renders the condition for explain output.
func (c Condition) String() string {
	switch c.kind {
	case condAlways:
		return "always"
	case condFact:
		if c.equals == "" {
			return c.key
		}
		return c.key + "=" + c.equals
	case condEquipped:
		return fmt.Sprintf("equipped(%d)", c.items[0])
	case condAnyEquipped:
		parts := make([]string, len(c.items))
		for i, id := range c.items {
			parts[i] = fmt.Sprint(id)
		}
		return "any_equipped(" + strings.Join(parts, ",") + ")"
	case condAll, condAny:
		parts := make([]string, len(c.children))
		for i, ch := range c.children {
			parts[i] = ch.String()
		}
		name := "all"
		if c.kind == condAny {
			name = "any"
		}
		return name + "(" + strings.Join(parts, ", ") + ")"
	case condNot:
		return "not(" + c.children[0].String() + ")"
	}
	return "?"
}

// conditionDef is the declarative YAML form of a Condition.
// Exactly one field may be set.
type conditionDef struct {
	Fact        string          `yaml:"fact"`
	Equals      string          `yaml:"equals"`
	Equipped    int32           `yaml:"equipped"`
	AnyEquipped []int32         `yaml:"any_equipped"`
	All         []*conditionDef `yaml:"all"`
	Any         []*conditionDef `yaml:"any"`
	Not         *conditionDef   `yaml:"not"`
}

var errEmptyCondition = errors.New("empty condition node")

// compile turns a definition into a Condition. A nil definition is always true.
func (d *conditionDef) compile() (Condition, error) {
	if d == nil {
		return Always(), nil
	}

	set := 0
	if d.Fact != "" {
		set++
	}
	if d.Equipped != 0 {
		set++
	}
	if d.AnyEquipped != nil {
		set++
	}
	if d.All != nil {
		set++
	}
	if d.Any != nil {
		set++
	}
	if d.Not != nil {
		set++
	}

	switch {
	case d.Equals != "" && d.Fact == "":
		return Condition{}, errors.New("equals without fact")
	case set == 0:
		return Condition{}, errEmptyCondition
	case set > 1:
		return Condition{}, errors.New("condition node sets more than one of fact, equipped, any_equipped, all, any, not")
	}

	switch {
	case d.Fact != "":
		if strings.HasSuffix(d.Fact, ".") {
			return Condition{}, fmt.Errorf("fact %q is missing its suffix", d.Fact)
		}
		return FactIs(d.Fact, d.Equals), nil
	case d.Equipped != 0:
		if d.Equipped < 0 {
			return Condition{}, fmt.Errorf("equipped: invalid item id %d", d.Equipped)
		}
		return Equipped(d.Equipped), nil
	case d.AnyEquipped != nil:
		if len(d.AnyEquipped) == 0 {
			return Condition{}, errors.New("any_equipped: empty item list")
		}
		for _, id := range d.AnyEquipped {
			if id <= 0 {
				return Condition{}, fmt.Errorf("any_equipped: invalid item id %d", id)
			}
		}
		return AnyEquipped(d.AnyEquipped...), nil
	case d.Not != nil:
		child, err := d.Not.compile()
		if err != nil {
			return Condition{}, fmt.Errorf("not: %w", err)
		}
		return Not(child), nil
	}

	defs, name := d.All, "all"
	if d.Any != nil {
		defs, name = d.Any, "any"
	}
	if len(defs) == 0 {
		return Condition{}, fmt.Errorf("%s: no children", name)
	}
	children := make([]Condition, 0, len(defs))
	for i, cd := range defs {
		if cd == nil {
			return Condition{}, fmt.Errorf("%s[%d]: %w", name, i, errEmptyCondition)
		}
		ch, err := cd.compile()
		if err != nil {
			return Condition{}, fmt.Errorf("%s[%d]: %w", name, i, err)
		}
		children = append(children, ch)
	}
	if name == "any" {
		return Any(children...), nil
	}
	return All(children...), nil
}
