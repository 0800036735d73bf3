package eval

import (
	"cmp"
	"context"
	"encoding/json"
	"fmt"
	"runtime"
	"slices"
	"sync"
	"sync/atomic"

	"golang.org/x/crypto/blake2b"
	"golang.org/x/sync/errgroup"

	"github.com/udisondev/osrs-sim/internal/game/combat"
	"github.com/udisondev/osrs-sim/internal/model"
)

// Candidate is one (player, build, target) triple to score.
type Candidate struct {
	Name   string            `json:"name,omitempty"`
	Player model.PlayerInput `json:"player"`
	Build  model.BuildInput  `json:"build"`
	Target model.TargetInput `json:"target"`
}

// Scored is the outcome for one candidate. Exactly one of Result and Err is set.
type Scored struct {
	Name   string
	Result *Result
	Err    error
	Cached bool
}

// Batch scores many candidates concurrently on top of one Kernel. Results
// are memoized by the resolved inputs, so candidates that differ only in
// ways the formulas cannot see share one evaluation.
type Batch struct {
	kernel  *Kernel
	workers int

	cache  sync.Map // [blake2b.Size256]byte -> *Result
	hits   atomic.Int64
	misses atomic.Int64
}

// NewBatch creates a batch scorer. workers <= 0 means GOMAXPROCS.
func NewBatch(k *Kernel, workers int) *Batch {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	return &Batch{kernel: k, workers: workers}
}

// Score evaluates every candidate. Per-candidate input errors are reported in
// the matching Scored entry. Cancellation is checked only between candidates;
// an evaluation that has started always finishes.
func (b *Batch) Score(ctx context.Context, candidates []Candidate) ([]Scored, error) {
	out := make([]Scored, len(candidates))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(b.workers)
	for i := range candidates {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			out[i] = b.scoreOne(&candidates[i])
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("scoring batch: %w", err)
	}
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("scoring batch: %w", err)
	}
	return out, nil
}

func (b *Batch) scoreOne(c *Candidate) Scored {
	l, err := b.kernel.Resolve(c.Player, c.Build, c.Target)
	if err != nil {
		return Scored{Name: c.Name, Err: err}
	}

	key := l.signature()
	if v, ok := b.cache.Load(key); ok {
		b.hits.Add(1)
		return Scored{Name: c.Name, Result: v.(*Result), Cached: true}
	}
	b.misses.Add(1)
	res := b.kernel.Run(l)
	actual, _ := b.cache.LoadOrStore(key, res)
	return Scored{Name: c.Name, Result: actual.(*Result)}
}

// CacheStats returns the number of cache hits and misses so far.
func (b *Batch) CacheStats() (hits, misses int64) {
	return b.hits.Load(), b.misses.Load()
}

// Rank returns the indexes of successful entries ordered by DPS, highest
// first. Equal DPS keeps input order.
func Rank(scored []Scored) []int {
	var idx []int
	for i, s := range scored {
		if s.Err == nil && s.Result != nil {
			idx = append(idx, i)
		}
	}
	slices.SortStableFunc(idx, func(a, b int) int {
		return cmp.Compare(0, scored[a].Result.DPS.Cmp(scored[b].Result.DPS))
	})
	return idx
}

// loadoutSignature is everything Run reads from a Loadout.
type loadoutSignature struct {
	Gear       combat.StatBlock  `json:"gear"`
	Flags      map[string]string `json:"flags"`
	Numbers    map[string]int64  `json:"numbers"`
	Visible    map[string]int64  `json:"visible"`
	AttackMult combat.Ratio      `json:"attack_mult"`
	StrMult    combat.Ratio      `json:"strength_mult"`
	Stance     model.StanceBonus `json:"stance"`
	AttackType model.AttackType  `json:"attack_type"`
	Interval   int64             `json:"interval"`
	SpellBase  int64             `json:"spell_base"`
	Target     model.Target      `json:"target"`
}

// signature digests the resolved loadout. Maps are emitted with sorted keys
// by encoding/json, so equal loadouts hash equal.
func (l *Loadout) signature() [blake2b.Size256]byte {
	f := l.Facts()
	sig := loadoutSignature{
		Gear:       l.Gear(),
		Flags:      make(map[string]string),
		Numbers:    make(map[string]int64),
		Visible:    make(map[string]int64, len(model.Skills)),
		Stance:     l.StanceBonus,
		AttackType: l.AttackType,
		Interval:   l.Interval(),
		Target:     l.Target,
	}
	for _, k := range f.Keys() {
		sig.Flags[k], _ = f.Flag(k)
	}
	for _, k := range f.NumberKeys() {
		sig.Numbers[k] = f.Number(k)
	}
	for _, sk := range model.Skills {
		sig.Visible[string(sk)] = l.Visible(sk)
	}
	sig.AttackMult, sig.StrMult = l.prayerMult()
	if l.Spell != nil {
		sig.SpellBase = l.Spell.BaseMaxHit
	}
	sig.Target.Attributes = slices.Sorted(slices.Values(l.Target.Attributes))

	raw, err := json.Marshal(sig)
	if err != nil {
		panic(fmt.Sprintf("eval: encoding loadout signature: %v", err))
	}
	return blake2b.Sum256(raw)
}
