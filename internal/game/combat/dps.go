package combat

import (
	"fmt"
	"math/big"
)

// TickDuration is the length of one game tick: 0.6 seconds.
var TickDuration = big.NewRat(3, 5)

// DPS returns expected damage per second.
// Formula: expected_damage / (interval_ticks * tick_duration).
//
// A non-positive interval or tick is an invariant violation: weapon speeds are
// validated when the catalog loads, so DPS panics instead of returning an error.
func DPS(expected *big.Rat, intervalTicks int64, tick *big.Rat) *big.Rat {
	if intervalTicks <= 0 {
		panic(fmt.Sprintf("combat: attack interval must be positive, got %d", intervalTicks))
	}
	if tick == nil || tick.Sign() <= 0 {
		panic("combat: tick duration must be positive")
	}
	seconds := new(big.Rat).Mul(new(big.Rat).SetInt64(intervalTicks), tick)
	return new(big.Rat).Quo(expected, seconds)
}
