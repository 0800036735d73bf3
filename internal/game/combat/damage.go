package combat

import (
	"fmt"
	"math/big"
	"slices"
)

// Distribution is a discrete probability distribution over damage values.
// The shape is data: consumers read outcomes and probabilities and never
// assume a uniform hit.
type Distribution struct {
	probs map[int64]*big.Rat
}

// NewDistribution returns an empty distribution. Use Add to fill it.
func NewDistribution() *Distribution {
	return &Distribution{probs: make(map[int64]*big.Rat)}
}

// Constant returns the distribution that always yields v.
func Constant(v int64) *Distribution {
	d := NewDistribution()
	d.Add(v, big.NewRat(1, 1))
	return d
}

// HitDistribution builds the distribution of a single attack.
// Probability 1 - accuracy lands on 0 (miss); probability accuracy is spread
// uniformly over every integer in [minHit, maxHit].
func HitDistribution(accuracy *big.Rat, minHit, maxHit int64) *Distribution {
	if maxHit < 0 {
		maxHit = 0
	}
	if minHit < 0 {
		minHit = 0
	}
	if minHit > maxHit {
		minHit = maxHit
	}

	d := NewDistribution()
	miss := new(big.Rat).Sub(big.NewRat(1, 1), accuracy)
	d.Add(0, miss)

	width := maxHit - minHit + 1
	each := new(big.Rat).Quo(accuracy, new(big.Rat).SetInt64(width))
	for v := minHit; v <= maxHit; v++ {
		d.Add(v, each)
	}
	return d
}

// Add accumulates probability p on damage value v.
func (d *Distribution) Add(v int64, p *big.Rat) {
	if p.Sign() == 0 {
		if _, ok := d.probs[v]; !ok {
			d.probs[v] = new(big.Rat)
		}
		return
	}
	cur, ok := d.probs[v]
	if !ok {
		d.probs[v] = new(big.Rat).Set(p)
		return
	}
	cur.Add(cur, p)
}

// Probability returns the probability of damage value v.
func (d *Distribution) Probability(v int64) *big.Rat {
	if p, ok := d.probs[v]; ok {
		return new(big.Rat).Set(p)
	}
	return new(big.Rat)
}

// Outcomes returns every damage value with a recorded probability, ascending.
func (d *Distribution) Outcomes() []int64 {
	out := make([]int64, 0, len(d.probs))
	for v := range d.probs {
		out = append(out, v)
	}
	slices.Sort(out)
	return out
}

// Max returns the largest outcome with non-zero probability.
func (d *Distribution) Max() int64 {
	var m int64
	for v, p := range d.probs {
		if p.Sign() > 0 && v > m {
			m = v
		}
	}
	return m
}

// Total returns the sum of all probabilities.
func (d *Distribution) Total() *big.Rat {
	sum := new(big.Rat)
	for _, p := range d.probs {
		sum.Add(sum, p)
	}
	return sum
}

// Expected returns the exact expected damage.
func (d *Distribution) Expected() *big.Rat {
	sum := new(big.Rat)
	term := new(big.Rat)
	for v, p := range d.probs {
		term.Mul(p, new(big.Rat).SetInt64(v))
		sum.Add(sum, term)
	}
	return sum
}

// Convolve returns the distribution of the sum of independent draws from d and o.
// Used for weapons that strike several times per attack.
func (d *Distribution) Convolve(o *Distribution) *Distribution {
	out := NewDistribution()
	term := new(big.Rat)
	for _, a := range d.Outcomes() {
		pa := d.probs[a]
		for _, b := range o.Outcomes() {
			term.Mul(pa, o.probs[b])
			out.Add(a+b, term)
		}
	}
	return out
}

// Repeat returns the distribution of n independent draws from d summed.
// n below 1 is treated as 1.
func (d *Distribution) Repeat(n int64) *Distribution {
	out := d
	for i := int64(1); i < n; i++ {
		out = out.Convolve(d)
	}
	return out
}

// MustBeNormalized panics unless the probabilities sum to exactly 1.
// Only a programming error in a builder can trigger it.
func (d *Distribution) MustBeNormalized() {
	if total := d.Total(); total.Cmp(big.NewRat(1, 1)) != 0 {
		panic(fmt.Sprintf("combat: damage distribution sums to %s, want 1", total.RatString()))
	}
}
