package eval

import (
	"math/big"
	"path/filepath"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/udisondev/osrs-sim/internal/data"
	"github.com/udisondev/osrs-sim/internal/game/effect"
	"github.com/udisondev/osrs-sim/internal/model"
)

func newTestKernel(t testing.TB) *Kernel {
	t.Helper()
	store, err := data.LoadEmbedded()
	require.NoError(t, err)
	effects, err := data.LoadEffects()
	require.NoError(t, err)
	return NewKernel(store, effects)
}

func readFixtures(t testing.TB, player, build, target string) (model.PlayerInput, model.BuildInput, model.TargetInput) {
	t.Helper()
	p, b, tg, err := ReadInputs(
		filepath.Join("testdata", "players", player+".json"),
		filepath.Join("testdata", "builds", build+".json"),
		filepath.Join("testdata", "targets", target+".json"),
	)
	require.NoError(t, err)
	return p, b, tg
}

func maxedPlayer(potions ...string) model.PlayerInput {
	return model.PlayerInput{
		Skills: map[string]int64{
			"attack": 99, "strength": 99, "defence": 99, "ranged": 99,
			"magic": 99, "hitpoints": 99, "prayer": 99, "slayer": 99,
		},
		Boosts: model.BoostInput{Potions: potions},
	}
}

func build(stance, attackType string, equipment map[string]int32) model.BuildInput {
	return model.BuildInput{
		Equipment: equipment,
		Style:     model.StyleInput{Stance: stance, AttackType: attackType},
	}
}

func monster(id int32) model.TargetInput {
	return model.TargetInput{MonsterID: &id}
}

func ptr[T any](v T) *T { return &v }

var voidwakerBandos = map[string]int32{"weapon": 27690, "body": 11832, "legs": 11834}

func TestEvaluate_Golden(t *testing.T) {
	tests := []struct {
		name         string
		player       string
		build        string
		maxHit       int64
		attackRoll   int64
		accuracy     *big.Rat
		dps          *big.Rat
		wantAccuracy float64 // reference value
		wantDPS      float64 // reference value
	}{
		{
			name:         "super strength, accurate",
			player:       "maxed_super_str",
			build:        "voidwaker_bandos_accurate",
			maxHit:       30,
			attackRoll:   15840,
			accuracy:     big.NewRat(7920, 31297),
			dps:          big.NewRat(49500, 31297),
			wantAccuracy: 0.2531,
			wantDPS:      1.585,
		},
		{
			name:         "no boosts, accurate",
			player:       "maxed_no_boosts",
			build:        "voidwaker_bandos_accurate",
			maxHit:       25,
			attackRoll:   15840,
			accuracy:     big.NewRat(7920, 31297),
			dps:          big.NewRat(41250, 31297),
			wantAccuracy: 0.2531,
			wantDPS:      1.322,
		},
		{
			name:         "no boosts, aggressive",
			player:       "maxed_no_boosts",
			build:        "voidwaker_bandos_aggressive",
			maxHit:       26,
			attackRoll:   15408,
			accuracy:     big.NewRat(7704, 31297),
			dps:          big.NewRat(41730, 31297),
			wantAccuracy: 0.2462,
			wantDPS:      1.337,
		},
	}

	k := newTestKernel(t)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, b, tg := readFixtures(t, tt.player, tt.build, "tztok_jad")

			res, err := k.Evaluate(p, b, tg)
			require.NoError(t, err)

			assert.Equal(t, "TzTok-Jad", res.Target)
			assert.Equal(t, tt.maxHit, res.MaxHit)
			assert.Equal(t, int64(0), res.MinHit)
			assert.Equal(t, tt.attackRoll, res.AttackRoll)
			assert.Equal(t, int64(31296), res.DefenceRoll)
			assert.Equal(t, int64(4), res.Interval)
			assert.Equal(t, int64(1), res.HitCount)

			assert.Zero(t, tt.accuracy.Cmp(res.Accuracy), "accuracy %s", res.Accuracy.RatString())
			assert.Zero(t, tt.dps.Cmp(res.DPS), "dps %s", res.DPS.RatString())
			assert.InDelta(t, tt.wantAccuracy, res.AccuracyFloat(), 0.001)
			assert.InDelta(t, tt.wantDPS, res.DPSFloat(), 0.01)
			assert.Empty(t, res.Breakdown)
		})
	}
}

func TestEvaluate_EffectiveLevels(t *testing.T) {
	k := newTestKernel(t)
	p, b, tg := readFixtures(t, "maxed_super_str", "voidwaker_bandos_accurate", "tztok_jad")

	res, err := k.Evaluate(p, b, tg)
	require.NoError(t, err)
	assert.Equal(t, int64(110), res.Effective.Attack)
	assert.Equal(t, int64(126), res.Effective.Strength)
	assert.Equal(t, int64(489), res.Effective.Defence)
}

func TestEvaluate_Idempotent(t *testing.T) {
	k := newTestKernel(t)
	p, b, tg := readFixtures(t, "maxed_super_str", "voidwaker_bandos_accurate", "tztok_jad")

	first, err := k.Evaluate(p, b, tg)
	require.NoError(t, err)
	for range 5 {
		again, err := k.Evaluate(p, b, tg)
		require.NoError(t, err)
		assert.Zero(t, first.DPS.Cmp(again.DPS))
		assert.Zero(t, first.Accuracy.Cmp(again.Accuracy))
		assert.Equal(t, first.MaxHit, again.MaxHit)
		assert.Equal(t, first.Breakdown, again.Breakdown)
	}
}

func TestEvaluate_MonotoneInStrength(t *testing.T) {
	k := newTestKernel(t)
	b := build("accurate", "slash", voidwakerBandos)

	var prev *big.Rat
	for lvl := int64(75); lvl <= 99; lvl++ {
		p := maxedPlayer()
		p.Skills["strength"] = lvl
		res, err := k.Evaluate(p, b, monster(3127))
		require.NoError(t, err)
		if prev != nil {
			assert.GreaterOrEqual(t, res.DPS.Cmp(prev), 0, "strength %d", lvl)
		}
		prev = res.DPS
	}
}

func TestEvaluate_MonotoneInTargetDefence(t *testing.T) {
	k := newTestKernel(t)
	b := build("accurate", "slash", voidwakerBandos)

	var prev *big.Rat
	for def := int64(0); def <= 500; def += 25 {
		tg := monster(3127)
		tg.Overrides = &model.TargetOverrides{DefenceLevel: ptr(def)}
		res, err := k.Evaluate(maxedPlayer(), b, tg)
		require.NoError(t, err)
		if prev != nil {
			assert.LessOrEqual(t, res.DPS.Cmp(prev), 0, "defence %d", def)
		}
		prev = res.DPS
	}
}

func TestEvaluate_MonotoneInGearBonuses(t *testing.T) {
	base, err := data.LoadEmbedded()
	require.NoError(t, err)
	effects, err := data.LoadEffects()
	require.NoError(t, err)

	// kernel whose Voidwaker carries edited bonuses
	withWeapon := func(t *testing.T, edit func(*model.EquipmentStats)) *Kernel {
		t.Helper()
		snap := base.Snapshot()
		i := slices.IndexFunc(snap.Items, func(it model.ItemStats) bool { return it.ID == 27690 })
		require.GreaterOrEqual(t, i, 0)
		eq := *snap.Items[i].Equipment
		edit(&eq)
		snap.Items[i].Equipment = &eq
		store, err := snap.Store()
		require.NoError(t, err)
		return NewKernel(store, effects)
	}
	p := maxedPlayer("super_strength")
	b := build("accurate", "slash", voidwakerBandos)

	t.Run("strength bonus", func(t *testing.T) {
		var prev int64 = -1
		for bonus := int64(-100); bonus <= 400; bonus += 20 {
			k := withWeapon(t, func(eq *model.EquipmentStats) { eq.MeleeStrength = bonus })
			res, err := k.Evaluate(p, b, monster(3127))
			require.NoError(t, err)
			assert.GreaterOrEqual(t, res.MaxHit, prev, "strength bonus %d", bonus)
			prev = res.MaxHit
		}
	})

	t.Run("attack bonus", func(t *testing.T) {
		var prev *big.Rat
		for bonus := int64(-100); bonus <= 400; bonus += 20 {
			k := withWeapon(t, func(eq *model.EquipmentStats) { eq.AttackSlash = bonus })
			res, err := k.Evaluate(p, b, monster(3127))
			require.NoError(t, err)
			if prev != nil {
				assert.GreaterOrEqual(t, res.Accuracy.Cmp(prev), 0, "attack bonus %d", bonus)
			}
			prev = res.Accuracy
		}
	})
}

func TestEvaluate_ZeroAccuracyMeansZeroDPS(t *testing.T) {
	store, err := data.LoadEmbedded()
	require.NoError(t, err)
	effects, err := effect.New(&effect.Effect{
		ID:    "blind",
		Stage: effect.StagePreRolls,
		Op:    effect.Override(effect.StatAttackRoll, 0),
	})
	require.NoError(t, err)
	k := NewKernel(store, effects)

	res, err := k.Evaluate(maxedPlayer(), build("accurate", "slash", voidwakerBandos), monster(3127))
	require.NoError(t, err)
	assert.Zero(t, res.Accuracy.Sign())
	assert.Zero(t, res.DPS.Sign())
	assert.Equal(t, 0.0, res.DPSFloat())
}

func TestEvaluate_DistributionLaw(t *testing.T) {
	k := newTestKernel(t)
	res, err := k.Evaluate(maxedPlayer("super_strength"), build("accurate", "slash", voidwakerBandos), monster(3127))
	require.NoError(t, err)

	assert.Zero(t, res.Distribution.Total().Cmp(big.NewRat(1, 1)))
	assert.Equal(t, res.MaxHit, res.Distribution.Max())

	// single hit, min 0: E = p * max / 2
	want := new(big.Rat).Mul(res.Accuracy, big.NewRat(res.MaxHit, 2))
	assert.Zero(t, want.Cmp(res.Expected), "expected %s want %s", res.Expected.RatString(), want.RatString())
}

func TestEvaluate_DummyUsesFirstBranch(t *testing.T) {
	k := newTestKernel(t)
	p, b, tg := readFixtures(t, "maxed_super_str", "voidwaker_bandos_accurate", "combat_dummy")

	res, err := k.Evaluate(p, b, tg)
	require.NoError(t, err)

	assert.Equal(t, int64(576), res.DefenceRoll)
	assert.Greater(t, res.AttackRoll, res.DefenceRoll)
	// 1 - (576 + 2) / (2 * 15841)
	assert.Zero(t, big.NewRat(15552, 15841).Cmp(res.Accuracy), res.Accuracy.RatString())
	assert.Less(t, res.AccuracyFloat(), 1.0)
}

func TestEvaluate_SalveBeatsSlayerHelm(t *testing.T) {
	k := newTestKernel(t)
	undeadDummy := monster(7413)

	gear := map[string]int32{"weapon": 27690, "body": 11832, "legs": 11834, "head": 11864, "neck": 12018}
	p := maxedPlayer("super_strength")
	p.Flags.OnTask = true

	res, err := k.Evaluate(p, build("accurate", "slash", gear), undeadDummy)
	require.NoError(t, err)

	assert.Equal(t, int64(19008), res.AttackRoll, "15840 * 6/5")
	assert.Equal(t, int64(36), res.MaxHit, "30 * 6/5")

	var applied []string
	for _, a := range res.Breakdown {
		applied = append(applied, a.EffectID)
	}
	assert.Equal(t, []string{"salve_ei_accuracy", "salve_ei_damage"}, applied)
	assert.ElementsMatch(t, []effect.Suppressed{
		{EffectID: "slayer_helm_melee_accuracy", Group: "undead_task_accuracy", Winner: "salve_ei_accuracy"},
		{EffectID: "slayer_helm_melee_damage", Group: "undead_task_damage", Winner: "salve_ei_damage"},
	}, res.Suppressed)

	// without the amulet the helmet applies alone
	delete(gear, "neck")
	res, err = k.Evaluate(p, build("accurate", "slash", gear), undeadDummy)
	require.NoError(t, err)
	assert.Equal(t, int64(18480), res.AttackRoll, "15840 * 7/6")
	assert.Equal(t, int64(35), res.MaxHit, "30 * 7/6")
	assert.Empty(t, res.Suppressed)
}

func TestEvaluate_SpecialWeapons(t *testing.T) {
	tests := []struct {
		name       string
		player     model.PlayerInput
		build      model.BuildInput
		target     int32
		attackRoll int64
		maxHit     int64
		minHit     int64
		interval   int64
	}{
		{
			name:       "twisted bow vs high magic",
			player:     maxedPlayer(),
			build:      build("accurate", "ranged", map[string]int32{"weapon": 20997}),
			target:     3127,
			attackRoll: 20636, // 14740 * 140%
			maxHit:     30,    // 14 * 215%
			interval:   5,
		},
		{
			name:       "colossal blade vs size 5",
			player:     maxedPlayer(),
			build:      build("accurate", "slash", map[string]int32{"weapon": 27987}),
			target:     3127,
			attackRoll: 110 * (105 + 64),
			maxHit:     40,
			interval:   5,
		},
		{
			name:   "full inquisitor",
			player: maxedPlayer(),
			build: build("accurate", "crush", map[string]int32{
				"weapon": 24417, "head": 24419, "body": 24420, "legs": 24421,
			}),
			target:     2668,
			attackRoll: 21084, // 20570 * 1.025
			maxHit:     28,
			interval:   4,
		},
		{
			name:       "osmumten's fang",
			player:     maxedPlayer(),
			build:      build("accurate", "stab", map[string]int32{"weapon": 26219}),
			target:     2668,
			attackRoll: 110 * (105 + 64),
			maxHit:     24,
			minHit:     4,
			interval:   5,
		},
		{
			name:       "rapid shortens the interval",
			player:     maxedPlayer(),
			build:      build("rapid", "ranged", map[string]int32{"weapon": 21012}),
			target:     2668,
			attackRoll: 107 * (95 + 64),
			maxHit:     11,
			interval:   4,
		},
	}

	k := newTestKernel(t)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := k.Evaluate(tt.player, tt.build, monster(tt.target))
			require.NoError(t, err)
			assert.Equal(t, tt.attackRoll, res.AttackRoll)
			assert.Equal(t, tt.maxHit, res.MaxHit)
			assert.Equal(t, tt.minHit, res.MinHit)
			assert.Equal(t, tt.interval, res.Interval)
			res.Distribution.MustBeNormalized()
		})
	}
}

func TestEvaluate_DharokScalesWithMissingHitpoints(t *testing.T) {
	k := newTestKernel(t)
	b := build("aggressive", "slash", map[string]int32{
		"weapon": 4718, "head": 4716, "body": 4720, "legs": 4722,
	})

	full, err := k.Evaluate(maxedPlayer(), b, monster(2668))
	require.NoError(t, err)
	assert.Equal(t, int64(29), full.MaxHit)

	p := maxedPlayer()
	p.Flags.CurrentHitpoints = ptr(int64(1))
	low, err := k.Evaluate(p, b, monster(2668))
	require.NoError(t, err)
	assert.Equal(t, int64(57), low.MaxHit, "29 * (1 + 98*99/10000)")
	assert.Equal(t, 1, low.DPS.Cmp(full.DPS))
}

func TestEvaluate_Magic(t *testing.T) {
	k := newTestKernel(t)
	spell := func(weapon int32) model.BuildInput {
		b := build("autocast", "magic", map[string]int32{"weapon": weapon})
		b.Style.Spell = "fire_surge"
		return b
	}

	res, err := k.Evaluate(maxedPlayer(), spell(21006), monster(3127))
	require.NoError(t, err)
	assert.Equal(t, model.StyleMagic, res.Style)
	assert.Equal(t, int64(108), res.Effective.Attack, "99 + 9")
	assert.Equal(t, int64(9936), res.AttackRoll)
	assert.Equal(t, int64(31296), res.DefenceRoll, "magic level 480 + 9")
	assert.Equal(t, int64(27), res.MaxHit, "24 * 115%")
	assert.Equal(t, int64(5), res.Interval)

	res, err = k.Evaluate(maxedPlayer(), spell(24423), monster(3127))
	require.NoError(t, err)
	assert.Equal(t, int64(4), res.Interval, "harmonised staff casts standard spells faster")
	assert.Equal(t, int64(27), res.MaxHit)
}

func TestEvaluate_MultiHit(t *testing.T) {
	k := newTestKernel(t)
	res, err := k.Evaluate(maxedPlayer(), build("accurate", "crush", map[string]int32{"weapon": 28997}), monster(2668))
	require.NoError(t, err)

	assert.Equal(t, int64(2), res.HitCount)
	assert.Equal(t, int64(12), res.MaxHit, "25 / 2")
	assert.Equal(t, int64(24), res.Distribution.Max())
	res.Distribution.MustBeNormalized()

	// two independent hits: E = 2 * p * max / 2
	want := new(big.Rat).Mul(res.Accuracy, big.NewRat(res.MaxHit, 1))
	assert.Zero(t, want.Cmp(res.Expected))
}

func TestEvaluate_TargetOverrides(t *testing.T) {
	k := newTestKernel(t)
	tg := monster(3127)
	tg.Overrides = &model.TargetOverrides{
		DefenceLevel:  ptr(int64(1)),
		DefenceDeltas: &model.DefenceBonuses{Slash: 100},
		AttributesAdd: []string{"undead"},
	}
	gear := map[string]int32{"weapon": 27690, "neck": 12018}

	res, err := k.Evaluate(maxedPlayer(), build("accurate", "slash", gear), tg)
	require.NoError(t, err)
	assert.Equal(t, int64(10*164), res.DefenceRoll)
	assert.True(t, slices.ContainsFunc(res.Breakdown, func(a effect.Applied) bool {
		return a.EffectID == "salve_ei_accuracy"
	}))

	// the catalog record itself is untouched
	again, err := k.Evaluate(maxedPlayer(), build("accurate", "slash", gear), monster(3127))
	require.NoError(t, err)
	assert.Equal(t, int64(31296), again.DefenceRoll)
	assert.Empty(t, again.Breakdown)
}

func TestEvaluate_CustomTarget(t *testing.T) {
	k := newTestKernel(t)
	tg := model.TargetInput{Custom: &model.CustomTarget{
		Name:           "Greater demon",
		Levels:         model.CustomLevels{Hitpoints: 87, Defence: 100, Magic: 1},
		DefenceBonuses: model.DefenceBonuses{Slash: 50},
		Attributes:     []string{"demon"},
	}}

	res, err := k.Evaluate(maxedPlayer(), build("accurate", "slash", map[string]int32{"weapon": 19675}), tg)
	require.NoError(t, err)
	assert.Equal(t, "Greater demon", res.Target)
	assert.Equal(t, int64(109*114), res.DefenceRoll)
	assert.Equal(t, int64(110*(66+64)*17/10), res.AttackRoll, "arclight vs demon")
}
