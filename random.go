package orrery

import "math/rand/v2"

// Starfield returns n points drawn uniformly from [-bound, bound]².
func Starfield(rng *rand.Rand, n int, bound float64) []Vec2 {
	pts := make([]Vec2, n)
	for i := range pts {
		pts[i] = Vec2{
			X: (rng.Float64()*2 - 1) * bound,
			Y: (rng.Float64()*2 - 1) * bound,
		}
	}
	return pts
}

// RGB8 is a color triple with components in [0, 255].
type RGB8 [3]int

// Color converts the triple to an opaque Color.
func (c RGB8) Color() Color {
	return RGB255(c[0], c[1], c[2])
}

// Palette returns n colors with each component drawn uniformly from [0, 255].
func Palette(rng *rand.Rand, n int) []RGB8 {
	out := make([]RGB8, n)
	for i := range out {
		out[i] = RGB8{rng.IntN(256), rng.IntN(256), rng.IntN(256)}
	}
	return out
}
