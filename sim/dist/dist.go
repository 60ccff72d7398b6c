// Package dist provides the distribution sampling used by model bodies:
// thin, explicit wrappers over *rand.Rand so every draw goes through the
// generator injected into the model instance.
package dist

import (
	"fmt"
	"math"
	"math/rand"
)

// Exponential draws from an exponential distribution with the given mean.
func Exponential(rng *rand.Rand, mean float64) float64 {
	return rng.ExpFloat64() * mean
}

// Normal draws from a Gaussian with the given mean and standard deviation.
func Normal(rng *rand.Rand, mean, stdDev float64) float64 {
	return rng.NormFloat64()*stdDev + mean
}

// PositiveNormal draws from a Gaussian and reflects negative samples.
// Activity durations must never be negative.
func PositiveNormal(rng *rand.Rand, mean, stdDev float64) float64 {
	return math.Abs(Normal(rng, mean, stdDev))
}

// Uniform draws uniformly from [low, high).
func Uniform(rng *rand.Rand, low, high float64) float64 {
	return low + rng.Float64()*(high-low)
}

// IntBetween draws a uniform integer from [low, high] inclusive.
func IntBetween(rng *rand.Rand, low, high int) int {
	if high < low {
		panic(fmt.Sprintf("IntBetween: high %d below low %d", high, low))
	}
	return low + rng.Intn(high-low+1)
}

// WeightedChoice picks one of values with the given relative weights.
// Weights need not sum to one but must be non-negative with a positive sum.
func WeightedChoice[T any](rng *rand.Rand, values []T, weights []float64) T {
	if len(values) == 0 || len(values) != len(weights) {
		panic(fmt.Sprintf("WeightedChoice: %d values, %d weights", len(values), len(weights)))
	}
	total := 0.0
	for _, w := range weights {
		if w < 0 || math.IsNaN(w) {
			panic(fmt.Sprintf("WeightedChoice: invalid weight %v", w))
		}
		total += w
	}
	if total <= 0 {
		panic("WeightedChoice: weights sum to zero")
	}
	target := rng.Float64() * total
	acc := 0.0
	for i, w := range weights {
		acc += w
		if target < acc {
			return values[i]
		}
	}
	return values[len(values)-1]
}
