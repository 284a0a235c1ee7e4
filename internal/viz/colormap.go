package viz

import (
	"fmt"
	"math"
)

type RGB struct {
	R, G, B uint8
}

func (c RGB) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// Colormap maps t in [0, 1] to a colour.
type Colormap func(t float64) RGB

// viridis sampled at ten evenly spaced points
var viridisStops = []RGB{
	{0x44, 0x01, 0x54},
	{0x48, 0x28, 0x78},
	{0x3e, 0x49, 0x89},
	{0x31, 0x68, 0x8e},
	{0x26, 0x82, 0x8e},
	{0x1f, 0x9e, 0x89},
	{0x35, 0xb7, 0x79},
	{0x6e, 0xce, 0x58},
	{0xb5, 0xde, 0x2b},
	{0xfd, 0xe7, 0x25},
}

// Viridis interpolates between the viridis stops.
func Viridis(t float64) RGB {
	return interpolateStops(viridisStops, t)
}

func interpolateStops(stops []RGB, t float64) RGB {
	if math.IsNaN(t) || t <= 0 {
		return stops[0]
	}
	if t >= 1 {
		return stops[len(stops)-1]
	}
	pos := t * float64(len(stops)-1)
	i := int(pos)
	f := pos - float64(i)
	a, b := stops[i], stops[i+1]
	lerp := func(x, y uint8) uint8 {
		return uint8(math.Round(float64(x) + f*(float64(y)-float64(x))))
	}
	return RGB{lerp(a.R, b.R), lerp(a.G, b.G), lerp(a.B, b.B)}
}

// Normalize maps v from [lo, hi] onto [0, 1], clamping. A degenerate range maps to 0.
func Normalize(v, lo, hi float64) float64 {
	if hi <= lo {
		return 0
	}
	return math.Min(1, math.Max(0, (v-lo)/(hi-lo)))
}
