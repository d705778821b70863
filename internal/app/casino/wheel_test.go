package casino

import (
	"math"
	"testing"

	"lizard-economy/internal/rng"
)

type fixed int

func (f fixed) IntN(n int) int { return int(f) % n }

func TestSpinBoundaries(t *testing.T) {
	cases := []struct {
		n    int
		want Color
	}{
		{0, Red}, {474, Red}, {475, Black}, {949, Black}, {950, Green}, {999, Green},
	}
	for _, tc := range cases {
		if got := spin(fixed(tc.n)); got != tc.want {
			t.Fatalf("spin(%d) = %s, want %s", tc.n, got, tc.want)
		}
	}
}

func TestSpinDistribution(t *testing.T) {
	src := rng.New(42)
	const n = 200000
	counts := map[Color]int{}
	for i := 0; i < n; i++ {
		counts[spin(src)]++
	}
	for _, s := range wheel {
		want := float64(s.Weight) / wheelTotal
		got := float64(counts[s.Color]) / n
		if math.Abs(got-want) > 0.01 {
			t.Fatalf("%s rate %.4f, want about %.4f", s.Color, got, want)
		}
	}
}
