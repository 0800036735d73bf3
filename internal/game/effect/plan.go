package effect

// Plan is the set of effects that will apply during one evaluation, resolved
// against that evaluation's facts. Conditions read only facts, and facts do
// not change during an evaluation, so exclusivity is settled once up front.
type Plan struct {
	active     [numStages][]*Effect
	suppressed []Suppressed
}

// Plan evaluates every condition against f and resolves exclusivity groups.
// Within a group the first matching member in application order wins, which
// is the highest priority, ties broken by id. Catalog iteration order never
// influences the outcome.
func (c *Catalog) Plan(f *Facts) *Plan {
	p := &Plan{}
	winners := make(map[string]string, len(c.groups))

	for st, effects := range c.byStage {
		for _, e := range effects {
			if !e.When.Eval(f) {
				continue
			}
			if e.Group != "" {
				if w, taken := winners[e.Group]; taken {
					p.suppressed = append(p.suppressed, Suppressed{EffectID: e.ID, Group: e.Group, Winner: w})
					continue
				}
				winners[e.Group] = e.ID
			}
			p.active[st] = append(p.active[st], e)
		}
	}
	return p
}

// Active returns the effects that will run in stage, in order.
func (p *Plan) Active(stage Stage) []*Effect {
	return p.active[stage]
}

// Suppressed returns the group members that matched but lost their group.
func (p *Plan) Suppressed() []Suppressed {
	return p.suppressed
}

// Run applies the stage's active effects to s and returns the breakdown
// entries they produced, in application order.
func (p *Plan) Run(stage Stage, f *Facts, s *State) []Applied {
	var out []Applied
	for _, e := range p.active[stage] {
		for _, ch := range e.Op.apply(stage, f, s) {
			out = append(out, Applied{
				EffectID: e.ID,
				Stage:    stage,
				Stat:     ch.Stat,
				Before:   ch.Before,
				After:    ch.After,
			})
		}
	}
	return out
}
