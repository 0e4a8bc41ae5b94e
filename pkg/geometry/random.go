package geometry

import "math"

// Seeded returns a reproducible value in [0, 1) for seed.
//
// It is the fractional part of sin(seed)*10000. Golden placement fixtures
// depend on this exact transform.
func Seeded(seed float64) float64 {
	x := math.Sin(seed) * 10000
	return x - math.Floor(x)
}
