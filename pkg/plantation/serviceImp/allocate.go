package serviceImp

import (
	"math"

	"fruitfarm/entities"
)

// Rand is the subset of *math/rand/v2.Rand used for plantation generation.
type Rand interface {
	IntN(n int) int
	Float64() float64
	Perm(n int) []int
}

// Allocate splits total across a random non-empty subset of compatible.
// Each share is truncated, so the sum never exceeds total. Fruits that are
// not picked get no entry.
func Allocate(total float64, compatible []entities.FruitSpec, rng Rand) map[string]int {
	n := len(compatible)
	if n == 0 {
		return map[string]int{}
	}
	k := 1 + rng.IntN(n)
	picked := rng.Perm(n)[:k]

	weights := make([]float64, k)
	sum := 0.0
	for i := range weights {
		w := rng.Float64()
		for w == 0 {
			w = rng.Float64()
		}
		weights[i] = w
		sum += w
	}

	out := make(map[string]int, k)
	allocated := 0
	largest := ""
	for i, idx := range picked {
		name := compatible[idx].Name
		a := int(math.Floor(total * (weights[i] / sum)))
		out[name] = a
		allocated += a
		if largest == "" || a > out[largest] {
			largest = name
		}
	}
	if excess := allocated - int(math.Floor(total)); excess > 0 {
		out[largest] -= excess
	}
	return out
}

// drawArea picks a total area uniformly in [min, max], rounded to cents.
func drawArea(min, max float64, rng Rand) float64 {
	a := min + rng.Float64()*(max-min)
	return math.Round(a*100) / 100
}
