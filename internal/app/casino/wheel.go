package casino

import "lizard-economy/internal/rng"

type Color string

const (
	Red   Color = "red"
	Black Color = "black"
	Green Color = "green"
)

type slot struct {
	Color      Color
	Weight     int
	Multiplier int64
}

// wheel weights are out of wheelTotal.
var wheel = []slot{
	{Color: Red, Weight: 475, Multiplier: 2},
	{Color: Black, Weight: 475, Multiplier: 2},
	{Color: Green, Weight: 50, Multiplier: 10},
}

const wheelTotal = 1000

func slotFor(c Color) (slot, bool) {
	for _, s := range wheel {
		if s.Color == c {
			return s, true
		}
	}
	return slot{}, false
}

func spin(src rng.Source) Color {
	n := src.IntN(wheelTotal)
	for _, s := range wheel {
		if n < s.Weight {
			return s.Color
		}
		n -= s.Weight
	}
	return wheel[len(wheel)-1].Color
}
