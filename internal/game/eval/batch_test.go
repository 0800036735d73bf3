package eval

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/udisondev/osrs-sim/internal/model"
)

func TestBatch_ScoreCachesEqualLoadouts(t *testing.T) {
	k := newTestKernel(t)
	b := NewBatch(k, 1)

	accurate := build("accurate", "slash", voidwakerBandos)
	candidates := []Candidate{
		{Name: "a", Player: maxedPlayer("super_strength"), Build: accurate, Target: monster(3127)},
		{Name: "b", Player: maxedPlayer("super_strength"), Build: accurate, Target: monster(3127)},
		{Name: "c", Player: maxedPlayer(), Build: accurate, Target: monster(3127)},
		{Name: "broken", Player: maxedPlayer(), Build: build("accurate", "slash", nil), Target: monster(3127)},
	}

	scored, err := b.Score(context.Background(), candidates)
	require.NoError(t, err)
	require.Len(t, scored, 4)

	assert.False(t, scored[0].Cached)
	assert.True(t, scored[1].Cached)
	assert.Same(t, scored[0].Result, scored[1].Result)
	assert.False(t, scored[2].Cached)
	assert.Equal(t, int64(25), scored[2].Result.MaxHit)

	var verr *model.ValidationError
	require.Error(t, scored[3].Err)
	assert.True(t, errors.As(scored[3].Err, &verr))
	assert.Nil(t, scored[3].Result)
	assert.Equal(t, "broken", scored[3].Name)

	hits, misses := b.CacheStats()
	assert.Equal(t, int64(1), hits)
	assert.Equal(t, int64(2), misses)
}

func TestBatch_ScoreConcurrentMatchesSequential(t *testing.T) {
	k := newTestKernel(t)

	var candidates []Candidate
	for lvl := int64(80); lvl <= 99; lvl++ {
		p := maxedPlayer()
		p.Skills["strength"] = lvl
		candidates = append(candidates, Candidate{Player: p, Build: build("accurate", "slash", voidwakerBandos), Target: monster(3127)})
	}

	scored, err := NewBatch(k, 8).Score(context.Background(), candidates)
	require.NoError(t, err)
	for i, c := range candidates {
		want, err := k.Evaluate(c.Player, c.Build, c.Target)
		require.NoError(t, err)
		require.NoError(t, scored[i].Err)
		assert.Zero(t, want.DPS.Cmp(scored[i].Result.DPS), "candidate %d", i)
	}
}

func TestBatch_ScoreCancelled(t *testing.T) {
	k := newTestKernel(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewBatch(k, 2).Score(ctx, []Candidate{
		{Player: maxedPlayer(), Build: build("accurate", "slash", voidwakerBandos), Target: monster(3127)},
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, context.Canceled))
}

func TestRank(t *testing.T) {
	k := newTestKernel(t)
	candidates := []Candidate{
		{Name: "no boosts", Player: maxedPlayer(), Build: build("accurate", "slash", voidwakerBandos), Target: monster(3127)},
		{Name: "error", Player: maxedPlayer(), Build: build("rapid", "slash", voidwakerBandos), Target: monster(3127)},
		{Name: "super strength", Player: maxedPlayer("super_strength"), Build: build("accurate", "slash", voidwakerBandos), Target: monster(3127)},
		{Name: "aggressive", Player: maxedPlayer(), Build: build("aggressive", "slash", voidwakerBandos), Target: monster(3127)},
	}

	scored, err := NewBatch(k, 0).Score(context.Background(), candidates)
	require.NoError(t, err)

	var order []string
	for _, i := range Rank(scored) {
		order = append(order, scored[i].Name)
	}
	assert.Equal(t, []string{"super strength", "aggressive", "no boosts"}, order)
}

func TestResult_MarshalJSON(t *testing.T) {
	k := newTestKernel(t)
	res, err := k.Evaluate(maxedPlayer("super_strength"), build("accurate", "slash", voidwakerBandos), monster(3127))
	require.NoError(t, err)

	raw, err := json.Marshal(res)
	require.NoError(t, err)

	var got map[string]any
	require.NoError(t, json.Unmarshal(raw, &got))
	assert.Equal(t, "7920/31297", got["accuracy_exact"])
	assert.Equal(t, "49500/31297", got["dps_exact"])
	assert.InDelta(t, 1.5816, got["dps"], 0.0001)
	assert.Equal(t, float64(30), got["max_hit"])
	assert.Equal(t, float64(4), got["interval_ticks"])
	assert.Equal(t, []any{}, got["breakdown"])
	assert.NotContains(t, got, "suppressed")
}

func TestDecode_RejectsUnknownFields(t *testing.T) {
	_, err := Decode[model.BuildInput](strings.NewReader(`{"equipment": {}, "stlye": {}}`), "build")
	require.Error(t, err)
	var verr *model.ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, "build", verr.Field)

	tg, err := Decode[model.TargetInput](strings.NewReader(`{"monster_id": 415, "overrides": {"size": 2}}`), "target")
	require.NoError(t, err)
	require.NotNil(t, tg.MonsterID)
	assert.Equal(t, int32(415), *tg.MonsterID)
	assert.Equal(t, int64(2), *tg.Overrides.Size)
}

func TestReadFile_Missing(t *testing.T) {
	_, err := ReadFile[model.PlayerInput]("testdata/players/nobody.json", "player")
	require.Error(t, err)
}
