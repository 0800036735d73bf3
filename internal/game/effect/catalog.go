package effect

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"slices"

	"gopkg.in/yaml.v3"

	"github.com/udisondev/osrs-sim/internal/model"
)

// Catalog is the immutable set of effects, grouped by stage and sorted in
// application order. It is safe for concurrent use by any number of evaluations.
type Catalog struct {
	byStage [numStages][]*Effect
	byID    map[string]*Effect
	groups  map[string]Stage
}

// catalogFile is the YAML document layout.
type catalogFile struct {
	Effects []effectDef `yaml:"effects"`
}

type effectDef struct {
	ID       string        `yaml:"id"`
	Stage    string        `yaml:"stage"`
	Priority int           `yaml:"priority"`
	Group    string        `yaml:"group"`
	Note     string        `yaml:"note"`
	When     *conditionDef `yaml:"when"`
	Op       opDef         `yaml:"op"`
}

type opDef struct {
	Add      *statValueDef `yaml:"add"`
	Multiply *multiplyDef  `yaml:"multiply"`
	Override *statValueDef `yaml:"override"`
	Special  string        `yaml:"special"`
}

type statValueDef struct {
	Stat  string `yaml:"stat"`
	Value int64  `yaml:"value"`
}

type multiplyDef struct {
	Stat string `yaml:"stat"`
	Num  int64  `yaml:"num"`
	Den  int64  `yaml:"den"`
}

// Load parses a YAML effect catalog. source names the document in errors.
// Every defect is reported as *model.ConfigurationError; callers treat it as
// fatal at startup.
func Load(source string, r io.Reader) (*Catalog, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading effect catalog %s: %w", source, err)
	}

	var file catalogFile
	dec := yaml.NewDecoder(bytes.NewReader(raw))
	dec.KnownFields(true)
	if err := dec.Decode(&file); err != nil && !errors.Is(err, io.EOF) {
		return nil, &model.ConfigurationError{Source: source, Reason: fmt.Sprintf("parsing yaml: %v", err)}
	}

	effects := make([]*Effect, 0, len(file.Effects))
	for i := range file.Effects {
		e, err := file.Effects[i].compile()
		if err != nil {
			id := file.Effects[i].ID
			if id == "" {
				id = fmt.Sprintf("#%d", i)
			}
			return nil, &model.ConfigurationError{Source: source, ID: id, Reason: err.Error()}
		}
		effects = append(effects, e)
	}

	c, err := New(effects...)
	if err != nil {
		var cfgErr *model.ConfigurationError
		if errors.As(err, &cfgErr) {
			cfgErr.Source = source
		}
		return nil, err
	}

	slog.Info("loaded effect catalog", "source", source, "effects", len(effects), "groups", len(c.groups))
	return c, nil
}

// New builds a catalog from already-compiled effects. The input order does not
// matter: effects are sorted by (stage, priority, id).
func New(effects ...*Effect) (*Catalog, error) {
	c := &Catalog{
		byID:   make(map[string]*Effect, len(effects)),
		groups: make(map[string]Stage),
	}

	for _, e := range effects {
		if e.ID == "" {
			return nil, &model.ConfigurationError{Source: "effects", Reason: "effect with empty id"}
		}
		if _, dup := c.byID[e.ID]; dup {
			return nil, &model.ConfigurationError{Source: "effects", ID: e.ID, Reason: "duplicate effect id"}
		}
		if e.Stage < 0 || e.Stage >= numStages {
			return nil, &model.ConfigurationError{Source: "effects", ID: e.ID, Reason: fmt.Sprintf("unknown stage %d", e.Stage)}
		}
		if err := e.Op.validate(e.Stage); err != nil {
			return nil, &model.ConfigurationError{Source: "effects", ID: e.ID, Reason: err.Error()}
		}
		if e.Group != "" {
			// A group's winner is chosen at one point of the pipeline; members
			// spread over several stages have no single tie-break point.
			if st, ok := c.groups[e.Group]; ok && st != e.Stage {
				return nil, &model.ConfigurationError{
					Source: "effects",
					ID:     e.ID,
					Reason: fmt.Sprintf("exclusivity group %q spans stages %s and %s", e.Group, st, e.Stage),
				}
			}
			c.groups[e.Group] = e.Stage
		}
		c.byID[e.ID] = e
		c.byStage[e.Stage] = append(c.byStage[e.Stage], e)
	}

	for st := range c.byStage {
		slices.SortFunc(c.byStage[st], compare)
	}
	return c, nil
}

// Effects returns every effect in application order.
func (c *Catalog) Effects() []*Effect {
	out := make([]*Effect, 0, len(c.byID))
	for _, st := range c.byStage {
		out = append(out, st...)
	}
	return out
}

// Effect returns the effect with the given id.
func (c *Catalog) Effect(id string) (*Effect, bool) {
	e, ok := c.byID[id]
	return e, ok
}

// Len returns the number of effects.
func (c *Catalog) Len() int { return len(c.byID) }

// Groups returns every exclusivity group name, sorted.
func (c *Catalog) Groups() []string {
	out := make([]string, 0, len(c.groups))
	for g := range c.groups {
		out = append(out, g)
	}
	slices.Sort(out)
	return out
}

func (d *effectDef) compile() (*Effect, error) {
	if d.ID == "" {
		return nil, errors.New("missing id")
	}
	stage, ok := ParseStage(d.Stage)
	if !ok {
		return nil, fmt.Errorf("unknown stage %q", d.Stage)
	}
	when, err := d.When.compile()
	if err != nil {
		return nil, fmt.Errorf("ill-formed condition: %w", err)
	}
	op, err := d.Op.compile()
	if err != nil {
		return nil, err
	}
	return &Effect{
		ID:       d.ID,
		Stage:    stage,
		Priority: d.Priority,
		Group:    d.Group,
		When:     when,
		Op:       op,
		Note:     d.Note,
	}, nil
}

func (d *opDef) compile() (Operation, error) {
	set := 0
	for _, present := range []bool{d.Add != nil, d.Multiply != nil, d.Override != nil, d.Special != ""} {
		if present {
			set++
		}
	}
	if set != 1 {
		return Operation{}, fmt.Errorf("op must set exactly one of add, multiply, override, special (got %d)", set)
	}

	switch {
	case d.Add != nil:
		stat, err := parseStat(d.Add.Stat)
		if err != nil {
			return Operation{}, err
		}
		return Add(stat, d.Add.Value), nil
	case d.Override != nil:
		stat, err := parseStat(d.Override.Stat)
		if err != nil {
			return Operation{}, err
		}
		return Override(stat, d.Override.Value), nil
	case d.Multiply != nil:
		stat, err := parseStat(d.Multiply.Stat)
		if err != nil {
			return Operation{}, err
		}
		if d.Multiply.Den <= 0 {
			return Operation{}, fmt.Errorf("multiply %s: denominator must be positive", stat)
		}
		if d.Multiply.Num < 0 {
			return Operation{}, fmt.Errorf("multiply %s: numerator must not be negative", stat)
		}
		return Multiply(stat, d.Multiply.Num, d.Multiply.Den), nil
	}

	op := SpecialOp(d.Special)
	if _, ok := op.Stages(); !ok {
		return Operation{}, fmt.Errorf("unknown special operation %q", d.Special)
	}
	return Special(op), nil
}

func parseStat(name string) (Stat, error) {
	stat, ok := ParseStat(name)
	if !ok {
		return 0, fmt.Errorf("unknown stat %q", name)
	}
	return stat, nil
}
