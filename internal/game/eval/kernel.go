package eval

import (
	"fmt"
	"log/slog"
	"math/big"

	"github.com/udisondev/osrs-sim/internal/data"
	"github.com/udisondev/osrs-sim/internal/game/combat"
	"github.com/udisondev/osrs-sim/internal/game/effect"
	"github.com/udisondev/osrs-sim/internal/model"
)

// Kernel evaluates loadouts against targets. It holds only read-only state
// and is safe for concurrent use.
type Kernel struct {
	Store   Catalog
	Effects *effect.Catalog
	// Tick is the game tick length in seconds. Nil means combat.TickDuration.
	Tick *big.Rat
}

// NewKernel creates a kernel with the standard tick length.
func NewKernel(store Catalog, effects *effect.Catalog) *Kernel {
	return &Kernel{Store: store, Effects: effects, Tick: combat.TickDuration}
}

// TickFromMillis converts a tick length in milliseconds to seconds.
func TickFromMillis(ms int64) (*big.Rat, error) {
	if ms <= 0 {
		return nil, fmt.Errorf("tick must be positive, got %dms", ms)
	}
	return big.NewRat(ms, 1000), nil
}

func (k *Kernel) tick() *big.Rat {
	if k.Tick == nil {
		return combat.TickDuration
	}
	return k.Tick
}

// Evaluate resolves the inputs and computes the expected damage per second.
// Errors are *model.ValidationError or *model.ResolutionError.
func (k *Kernel) Evaluate(p model.PlayerInput, b model.BuildInput, t model.TargetInput) (*Result, error) {
	l, err := k.Resolve(p, b, t)
	if err != nil {
		return nil, err
	}
	res := k.Run(l)
	slog.Debug("evaluated",
		"target", res.Target,
		"attack_type", res.AttackType,
		"max_hit", res.MaxHit,
		"accuracy", res.AccuracyFloat(),
		"dps", res.DPSFloat())
	return res, nil
}

// Resolve validates the inputs against the kernel's catalog.
func (k *Kernel) Resolve(p model.PlayerInput, b model.BuildInput, t model.TargetInput) (*Loadout, error) {
	return Resolve(k.Store, p, b, t)
}

// Run computes the result for a resolved loadout. It never fails; it panics
// only when an internal invariant is broken.
func (k *Kernel) Run(l *Loadout) *Result {
	facts := l.Facts()
	plan := k.Effects.Plan(facts)
	gear := l.Gear()
	magic := l.Style == model.StyleMagic

	s := effect.NewState()
	atkSkill, strSkill := styleSkills(l.Style)
	s.Set(effect.StatAttackLevel, l.Visible(atkSkill))
	s.Set(effect.StatStrengthLevel, l.Visible(strSkill))
	if magic {
		s.Set(effect.StatDefenceLevel, l.Target.MagicLevel)
	} else {
		s.Set(effect.StatDefenceLevel, l.Target.DefenceLevel)
	}
	s.Set(effect.StatAttackBonus, gear.AttackBonus(l.AttackType))
	s.Set(effect.StatStrengthBonus, gear.StrengthBonus(l.Style))
	s.Set(effect.StatDefenceBonus, l.Target.Defence.For(l.AttackType))
	s.Set(effect.StatAttackSpeed, l.Interval())

	var trace []effect.Applied
	trace = append(trace, plan.Run(effect.StagePreEffectiveLevel, facts, s)...)

	atkMult, strMult := l.prayerMult()
	offset := int64(combat.LevelOffset)
	if magic {
		offset = combat.MagicLevelOffset
	}
	s.Set(effect.StatEffectiveAttack,
		combat.EffectiveLevel(s.Get(effect.StatAttackLevel), 0, atkMult, l.StanceBonus.Attack, offset))
	s.Set(effect.StatEffectiveStrength,
		combat.EffectiveLevel(s.Get(effect.StatStrengthLevel), 0, strMult, l.StanceBonus.Strength, combat.LevelOffset))
	s.Set(effect.StatEffectiveDefence, combat.EffectiveDefenceLevel(s.Get(effect.StatDefenceLevel)))

	trace = append(trace, plan.Run(effect.StagePostEffectiveLevel, facts, s)...)

	s.Set(effect.StatAttackRoll, combat.Roll(s.Get(effect.StatEffectiveAttack), s.Get(effect.StatAttackBonus)))
	s.Set(effect.StatDefenceRoll, combat.DefenceRoll(s.Get(effect.StatEffectiveDefence), s.Get(effect.StatDefenceBonus)))
	if magic {
		s.Set(effect.StatMaxHit, combat.MagicMaxHit(l.Spell.BaseMaxHit, s.Get(effect.StatStrengthBonus)))
	} else {
		s.Set(effect.StatMaxHit, combat.MaxHit(s.Get(effect.StatEffectiveStrength), s.Get(effect.StatStrengthBonus)))
	}

	// броски сформированы, но ещё не сравнены
	trace = append(trace, plan.Run(effect.StagePreRolls, facts, s)...)

	accuracy := combat.HitChance(s.Get(effect.StatAttackRoll), s.Get(effect.StatDefenceRoll))

	trace = append(trace, plan.Run(effect.StagePostMaxHit, facts, s)...)

	maxHit := s.Get(effect.StatMaxHit)
	minHit := min(s.Get(effect.StatMinHit), maxHit)
	hits := s.Get(effect.StatHitCount)
	interval := s.Get(effect.StatAttackSpeed)

	dist := combat.HitDistribution(accuracy, minHit, maxHit).Repeat(hits)
	dist.MustBeNormalized()
	expected := dist.Expected()

	return &Result{
		Target:      l.Target.Name,
		Style:       l.Style,
		AttackType:  l.AttackType,
		DPS:         combat.DPS(expected, interval, k.tick()),
		Expected:    expected,
		Accuracy:    accuracy,
		MaxHit:      maxHit,
		MinHit:      minHit,
		HitCount:    hits,
		AttackRoll:  s.Get(effect.StatAttackRoll),
		DefenceRoll: s.Get(effect.StatDefenceRoll),
		Interval:    interval,
		Effective: combat.EffectiveLevels{
			Attack:   s.Get(effect.StatEffectiveAttack),
			Strength: s.Get(effect.StatEffectiveStrength),
			Defence:  s.Get(effect.StatEffectiveDefence),
		},
		Breakdown:    trace,
		Suppressed:   plan.Suppressed(),
		Final:        s.Snapshot(),
		Distribution: dist,
	}
}

// styleSkills returns the skills that drive accuracy and damage for style.
func styleSkills(style model.CombatStyle) (attack, strength model.Skill) {
	switch style {
	case model.StyleRanged:
		return model.SkillRanged, model.SkillRanged
	case model.StyleMagic:
		return model.SkillMagic, model.SkillMagic
	default:
		return model.SkillAttack, model.SkillStrength
	}
}

// prayerMult returns the accuracy and damage prayer multipliers for the
// loadout's style. Absent boosts are the identity; magic damage has no prayer.
func (l *Loadout) prayerMult() (attack, strength combat.Ratio) {
	lookup := func(b data.PrayerBoost) combat.Ratio {
		if r, ok := l.PrayerMult[b]; ok {
			return r
		}
		return combat.One
	}
	switch l.Style {
	case model.StyleRanged:
		return lookup(data.BoostRangedAttack), lookup(data.BoostRangedStrength)
	case model.StyleMagic:
		return lookup(data.BoostMagicAttack), combat.One
	default:
		return lookup(data.BoostMeleeAttack), lookup(data.BoostMeleeStrength)
	}
}
