package combat

import "math/big"

// HitChance maps an attack roll and a defence roll to an exact hit probability.
//
//	attack > defence: 1 - (defence + 2) / (2 * (attack + 1))
//	otherwise:        attack / (2 * (defence + 1))
//
// The result is always in [0, 1]. An attack roll of zero yields exactly zero.
func HitChance(attackRoll, defenceRoll int64) *big.Rat {
	if attackRoll < 0 {
		attackRoll = 0
	}
	if defenceRoll < 0 {
		defenceRoll = 0
	}

	a := big.NewInt(attackRoll)
	d := big.NewInt(defenceRoll)

	if attackRoll > defenceRoll {
		num := new(big.Int).Add(d, big.NewInt(2))
		den := new(big.Int).Add(a, big.NewInt(1))
		den.Lsh(den, 1)
		miss := new(big.Rat).SetFrac(num, den)
		return new(big.Rat).Sub(big.NewRat(1, 1), miss)
	}

	den := new(big.Int).Add(d, big.NewInt(1))
	den.Lsh(den, 1)
	return new(big.Rat).SetFrac(a, den)
}
