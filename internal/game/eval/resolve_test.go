package eval

import (
	"errors"
	"math/big"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/udisondev/osrs-sim/internal/data"
	"github.com/udisondev/osrs-sim/internal/model"
)

func TestResolve_Errors(t *testing.T) {
	type kind int
	const (
		validation kind = iota
		resolution
	)

	magic := func(spell string, weapon int32) model.BuildInput {
		b := build("autocast", "magic", map[string]int32{"weapon": weapon})
		b.Style.Spell = spell
		return b
	}

	tests := []struct {
		name   string
		player model.PlayerInput
		build  model.BuildInput
		target model.TargetInput
		kind   kind
		reason string
	}{
		{
			name:   "unknown slot",
			build:  build("accurate", "slash", map[string]int32{"weapon": 27690, "pocket": 4151}),
			kind:   validation,
			reason: `unknown slot "pocket"`,
		},
		{
			name:   "unknown item",
			build:  build("accurate", "slash", map[string]int32{"weapon": 999999}),
			kind:   resolution,
			reason: "unknown item",
		},
		{
			name:   "item in the wrong slot",
			build:  build("accurate", "slash", map[string]int32{"weapon": 27690, "legs": 11832}),
			kind:   validation,
			reason: "worn in slot body",
		},
		{
			name:   "missing weapon",
			build:  build("accurate", "slash", map[string]int32{"body": 11832}),
			kind:   validation,
			reason: "weapon is required",
		},
		{
			name:   "two-handed with shield",
			build:  build("accurate", "slash", map[string]int32{"weapon": 27987, "shield": 12954}),
			kind:   validation,
			reason: "two-handed",
		},
		{
			name: "unmet requirement",
			player: model.PlayerInput{
				Skills: map[string]int64{"attack": 60, "defence": 99},
			},
			build:  build("accurate", "slash", voidwakerBandos),
			kind:   resolution,
			reason: "requires attack 75",
		},
		{
			name:   "unknown stance",
			build:  build("berserk", "slash", voidwakerBandos),
			kind:   validation,
			reason: `unknown stance "berserk"`,
		},
		{
			name:   "stance of another style",
			build:  build("rapid", "slash", voidwakerBandos),
			kind:   validation,
			reason: "rapid is not a melee stance",
		},
		{
			name:   "weapon does not offer the stance",
			build:  build("aggressive", "slash", map[string]int32{"weapon": 4151}),
			kind:   validation,
			reason: "no aggressive slash stance",
		},
		{
			name:   "magic without spell",
			build:  magic("", 21006),
			kind:   validation,
			reason: "require a spell",
		},
		{
			name:   "unknown spell",
			build:  magic("flames_of_zamorak_2", 21006),
			kind:   resolution,
			reason: "unknown spell",
		},
		{
			name: "spell with a melee attack",
			build: func() model.BuildInput {
				b := build("accurate", "slash", voidwakerBandos)
				b.Style.Spell = "fire_surge"
				return b
			}(),
			kind:   validation,
			reason: "only magic attacks",
		},
		{
			name:   "unknown prayer",
			player: model.PlayerInput{Prayers: []string{"smite"}},
			kind:   resolution,
			reason: "unknown prayer",
		},
		{
			name:   "conflicting prayers",
			player: model.PlayerInput{Prayers: []string{"piety", "ultimate_strength"}},
			kind:   validation,
			reason: "both boost melee strength",
		},
		{
			name:   "unknown potion",
			player: model.PlayerInput{Boosts: model.BoostInput{Potions: []string{"antifire"}}},
			kind:   resolution,
			reason: "unknown potion",
		},
		{
			name:   "level out of range",
			player: model.PlayerInput{Skills: map[string]int64{"strength": 120}},
			kind:   validation,
			reason: "out of range",
		},
		{
			name:   "unknown skill",
			player: model.PlayerInput{Skills: map[string]int64{"cooking": 99}},
			kind:   validation,
			reason: `unknown skill "cooking"`,
		},
		{
			name:   "zero current hitpoints",
			player: model.PlayerInput{Flags: model.PlayerFlags{CurrentHitpoints: ptr(int64(0))}},
			kind:   validation,
			reason: "at least 1",
		},
		{
			name:   "no target",
			target: model.TargetInput{},
			kind:   validation,
			reason: "one of monster_id or custom",
		},
		{
			name: "monster and custom",
			target: model.TargetInput{
				MonsterID: ptr(int32(3127)),
				Custom:    &model.CustomTarget{Name: "x"},
			},
			kind:   validation,
			reason: "mutually exclusive",
		},
		{
			name: "overrides on a custom target",
			target: model.TargetInput{
				Custom:    &model.CustomTarget{Name: "x"},
				Overrides: &model.TargetOverrides{Size: ptr(int64(2))},
			},
			kind:   validation,
			reason: "catalog monsters only",
		},
		{
			name:   "unknown monster",
			target: monster(424242),
			kind:   resolution,
			reason: "unknown monster",
		},
		{
			name: "negative override",
			target: model.TargetInput{
				MonsterID: ptr(int32(3127)),
				Overrides: &model.TargetOverrides{DefenceLevel: ptr(int64(-1))},
			},
			kind:   validation,
			reason: "must not be negative",
		},
		{
			name:   "manual boost too large",
			player: model.PlayerInput{Boosts: model.BoostInput{Manual: map[string]int64{"attack": 1 << 60}}},
			kind:   validation,
			reason: "out of range -255..255",
		},
		{
			name:   "manual boost too small",
			player: model.PlayerInput{Boosts: model.BoostInput{Manual: map[string]int64{"strength": -256}}},
			kind:   validation,
			reason: "boosts.manual.strength",
		},
		{
			name:   "current hitpoints too large",
			player: model.PlayerInput{Flags: model.PlayerFlags{CurrentHitpoints: ptr(int64(1 << 40))}},
			kind:   validation,
			reason: "flags.current_hitpoints",
		},
		{
			name: "custom defence level too large",
			target: model.TargetInput{Custom: &model.CustomTarget{
				Levels: model.CustomLevels{Hitpoints: 10, Defence: 1 << 50},
			}},
			kind:   validation,
			reason: "target.custom.levels.defence",
		},
		{
			name: "custom negative level",
			target: model.TargetInput{Custom: &model.CustomTarget{
				Levels: model.CustomLevels{Hitpoints: 10, Magic: -1},
			}},
			kind:   validation,
			reason: "target.custom.levels.magic",
		},
		{
			name: "custom defence bonus too large",
			target: model.TargetInput{Custom: &model.CustomTarget{
				Levels:         model.CustomLevels{Hitpoints: 10},
				DefenceBonuses: model.DefenceBonuses{Slash: -(1 << 55)},
			}},
			kind:   validation,
			reason: "target.custom.defence_bonuses.slash",
		},
		{
			name: "override level too large",
			target: model.TargetInput{
				MonsterID: ptr(int32(3127)),
				Overrides: &model.TargetOverrides{MagicLevel: ptr(int64(model.MaxTargetValue + 1))},
			},
			kind:   validation,
			reason: "target.overrides.magic_level",
		},
		{
			name: "override defence bonus too large",
			target: model.TargetInput{
				MonsterID: ptr(int32(3127)),
				Overrides: &model.TargetOverrides{DefenceBonuses: &model.DefenceBonusOverrides{Crush: ptr(int64(1 << 45))}},
			},
			kind:   validation,
			reason: "target.overrides.defence.crush",
		},
		{
			name: "defence delta too large",
			target: model.TargetInput{
				MonsterID: ptr(int32(3127)),
				Overrides: &model.TargetOverrides{DefenceDeltas: &model.DefenceBonuses{Stab: 1 << 62}},
			},
			kind:   validation,
			reason: "target.overrides.defence_deltas.stab",
		},
		{
			name: "override and delta add up past the bound",
			target: model.TargetInput{
				MonsterID: ptr(int32(3127)),
				Overrides: &model.TargetOverrides{
					DefenceBonuses: &model.DefenceBonusOverrides{Ranged: ptr(int64(model.MaxTargetValue))},
					DefenceDeltas:  &model.DefenceBonuses{Ranged: 1},
				},
			},
			kind:   validation,
			reason: "target.overrides.defence.ranged",
		},
	}

	k := newTestKernel(t)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := tt.player
			if p.Skills == nil {
				p.Skills = maxedPlayer().Skills
			}
			b := tt.build
			if b.Equipment == nil {
				b = build("accurate", "slash", voidwakerBandos)
			}
			tg := tt.target
			if tt.name != "no target" && tg.MonsterID == nil && tg.Custom == nil {
				tg = monster(3127)
			}

			_, err := k.Evaluate(p, b, tg)
			require.Error(t, err)
			assert.True(t, strings.Contains(err.Error(), tt.reason), "error %q, want %q", err, tt.reason)

			var verr *model.ValidationError
			var rerr *model.ResolutionError
			switch tt.kind {
			case validation:
				assert.True(t, errors.As(err, &verr), "want ValidationError, got %T", err)
			case resolution:
				assert.True(t, errors.As(err, &rerr), "want ResolutionError, got %T", err)
			}
		})
	}
}

func TestResolve_UnknownIdentifiersWrapNotFound(t *testing.T) {
	k := newTestKernel(t)

	_, err := k.Evaluate(maxedPlayer(), build("accurate", "slash", map[string]int32{"weapon": 999999}), monster(3127))
	require.Error(t, err)
	assert.True(t, errors.Is(err, data.ErrNotFound))

	_, err = k.Evaluate(maxedPlayer(), build("accurate", "slash", voidwakerBandos), monster(424242))
	require.Error(t, err)
	assert.True(t, errors.Is(err, data.ErrNotFound))
}

func TestResolve_Defaults(t *testing.T) {
	k := newTestKernel(t)
	l, err := k.Resolve(
		model.PlayerInput{Skills: map[string]int64{"attack": 75, "defence": 65}},
		build("accurate", "slash", voidwakerBandos),
		monster(3127),
	)
	require.NoError(t, err)

	assert.Equal(t, int64(1), l.Levels[model.SkillStrength])
	assert.Equal(t, int64(10), l.Levels[model.SkillHitpoints])
	assert.Equal(t, int64(10), l.CurrentHealth)
	assert.Equal(t, model.StyleMelee, l.Style)
	assert.Equal(t, int64(4), l.Interval())
	assert.Equal(t, int64(86), l.Gear().MeleeStrength)
}

func TestResolve_BoostsAndPrayers(t *testing.T) {
	k := newTestKernel(t)
	p := maxedPlayer("super_combat", "strength_potion")
	p.Prayers = []string{"piety"}
	p.Boosts.Manual = map[string]int64{"strength": 2, "attack": -5}

	l, err := k.Resolve(p, build("accurate", "slash", voidwakerBandos), monster(3127))
	require.NoError(t, err)

	assert.Equal(t, int64(99+19+2), l.Visible(model.SkillStrength), "largest potion plus manual")
	assert.Equal(t, int64(99+19-5), l.Visible(model.SkillAttack))
	assert.Len(t, l.Prayers, 1)

	atk, str := l.prayerMult()
	assert.Equal(t, "6/5", atk.String())
	assert.Equal(t, "123/100", str.String())

	f := l.Facts()
	assert.True(t, f.Bool("prayer.piety"))
	assert.True(t, f.Bool("potion.super_combat"))
	assert.True(t, f.Bool("player.full_health"))
	assert.True(t, f.IsEquipped(27690))
	v, ok := f.Flag("style")
	assert.True(t, ok)
	assert.Equal(t, "melee", v)
}

func TestResolve_PrayerLevelRequired(t *testing.T) {
	k := newTestKernel(t)
	p := maxedPlayer()
	p.Skills["prayer"] = 43
	p.Prayers = []string{"piety"}

	_, err := k.Evaluate(p, build("accurate", "slash", voidwakerBandos), monster(3127))
	var rerr *model.ResolutionError
	require.True(t, errors.As(err, &rerr))
	assert.Equal(t, "prayer", rerr.Kind)
}

func TestResolve_OverridesReplaceAndRemove(t *testing.T) {
	k := newTestKernel(t)
	tg := monster(8061)
	tg.Overrides = &model.TargetOverrides{
		MagicLevel:       ptr(int64(1)),
		Size:             ptr(int64(0)),
		DefenceBonuses:   &model.DefenceBonusOverrides{Stab: ptr(int64(-10))},
		AttributesRemove: []string{"undead"},
	}

	l, err := k.Resolve(maxedPlayer(), build("accurate", "slash", voidwakerBandos), tg)
	require.NoError(t, err)
	assert.Equal(t, "Vorkath", l.Target.Name)
	assert.Equal(t, int64(1), l.Target.MagicLevel)
	assert.Equal(t, int64(1), l.Target.Size, "size never drops below one")
	assert.Equal(t, int64(-10), l.Target.Defence.Stab)
	assert.Equal(t, int64(108), l.Target.Defence.Slash)
	assert.Equal(t, []string{"draconic"}, l.Target.Attributes)
	assert.True(t, l.SlayerMonster)

	// the catalog copy keeps its attributes
	m, err := k.Store.LookupMonster(8061)
	require.NoError(t, err)
	assert.Equal(t, []string{"draconic", "undead"}, m.Attributes)
}

func TestResolve_ManualBoostNeverLowersAccuracy(t *testing.T) {
	k := newTestKernel(t)
	b := build("accurate", "slash", voidwakerBandos)

	var prev *big.Rat
	for _, boost := range []int64{-model.MaxBoost, -50, 0, 10, 100, model.MaxBoost} {
		p := maxedPlayer()
		p.Boosts.Manual = map[string]int64{"attack": boost}
		res, err := k.Evaluate(p, b, monster(3127))
		require.NoError(t, err, "boost %d", boost)
		if prev != nil {
			assert.GreaterOrEqual(t, res.Accuracy.Cmp(prev), 0, "boost %d", boost)
		}
		prev = res.Accuracy
	}

	p := maxedPlayer()
	p.Boosts.Manual = map[string]int64{"attack": model.MaxBoost + 1}
	_, err := k.Evaluate(p, b, monster(3127))
	var verr *model.ValidationError
	assert.True(t, errors.As(err, &verr))
}

func TestResolve_AcceptsBoundaryTargets(t *testing.T) {
	k := newTestKernel(t)
	tg := model.TargetInput{Custom: &model.CustomTarget{
		Levels: model.CustomLevels{
			Hitpoints: model.MaxTargetValue,
			Defence:   model.MaxTargetValue,
			Magic:     model.MaxTargetValue,
		},
		DefenceBonuses: model.DefenceBonuses{Slash: -model.MaxTargetValue, Stab: model.MaxTargetValue},
		Size:           model.MaxTargetValue,
	}}

	res, err := k.Evaluate(maxedPlayer(), build("accurate", "slash", voidwakerBandos), tg)
	require.NoError(t, err)
	assert.Zero(t, res.DefenceRoll, "slash bonus below -64 clamps the defence roll")
	assert.Positive(t, res.Accuracy.Sign())
}
