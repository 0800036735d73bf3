package effect

// Effect is one declarative rule: when its condition holds at its stage, its
// operation modifies the working state. Effects are immutable after load.
type Effect struct {
	ID       string
	Stage    Stage
	Priority int
	// Group is the exclusivity group; empty when the effect stacks freely.
	Group string
	When  Condition
	Op    Operation
	// Note is free text shown in explain output.
	Note string
}

// before reports whether e applies before o within one stage:
// higher priority first, ties broken by ascending id.
func (e *Effect) before(o *Effect) bool {
	if e.Priority != o.Priority {
		return e.Priority > o.Priority
	}
	return e.ID < o.ID
}

// compare orders effects for slices.SortFunc.
func compare(a, b *Effect) int {
	switch {
	case a.Stage != b.Stage:
		return int(a.Stage) - int(b.Stage)
	case a.before(b):
		return -1
	case b.before(a):
		return 1
	}
	return 0
}

// Applied is one entry of the evaluation breakdown: an effect whose operation
// ran, and the stat it changed.
type Applied struct {
	EffectID string `json:"effect"`
	Stage    Stage  `json:"stage"`
	Stat     Stat   `json:"stat"`
	Before   int64  `json:"before"`
	After    int64  `json:"after"`
}

// Delta returns After - Before.
func (a Applied) Delta() int64 { return a.After - a.Before }

// Suppressed records a group member whose condition held but lost to a
// higher-ranked member of the same exclusivity group.
type Suppressed struct {
	EffectID string `json:"effect"`
	Group    string `json:"group"`
	Winner   string `json:"winner"`
}
