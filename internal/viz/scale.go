package viz

import (
	"fmt"
	"math"

	"github.com/montanaflynn/stats"
)

// Anchor colors of the diverging red-yellow-green scale, matching the RdYlGn
// colormap endpoints.
var (
	scaleLow  = [3]int{0xd7, 0x30, 0x27} // red
	scaleMid  = [3]int{0xff, 0xff, 0xbf} // yellow
	scaleHigh = [3]int{0x1a, 0x98, 0x50} // green
)

// ColorScale maps values onto the diverging red-yellow-green gradient. Min and
// Max bound the gradient; Center is where the yellow midpoint sits.
type ColorScale struct {
	Min    float64
	Max    float64
	Center float64
}

// NewSpanScale builds a scale whose midpoint sits between the data's own min
// and max. This is the table-view gradient: each column is colored relative to
// itself, not relative to zero.
func NewSpanScale(values []float64) ColorScale {
	min, max := bounds(values)
	return ColorScale{Min: min, Max: max, Center: (min + max) / 2}
}

// NewZeroCenteredScale builds a scale whose yellow midpoint is pinned at zero
// regardless of the data range. Heatmap and bar chart use this so that positive
// change always reads green and negative always reads red.
func NewZeroCenteredScale(values []float64) ColorScale {
	min, max := bounds(values)
	return ColorScale{Min: min, Max: max, Center: 0}
}

// Hex returns the gradient color for v as a #rrggbb string
func (s ColorScale) Hex(v float64) string {
	var from, to [3]int
	var t float64

	switch {
	case s.Min == s.Max:
		from, to, t = scaleMid, scaleMid, 0
	case v <= s.Center:
		from, to = scaleLow, scaleMid
		span := s.Center - s.Min
		if span <= 0 {
			t = 1
		} else {
			t = clamp01((v - s.Min) / span)
		}
	default:
		from, to = scaleMid, scaleHigh
		span := s.Max - s.Center
		if span <= 0 {
			t = 0
		} else {
			t = clamp01((v - s.Center) / span)
		}
	}

	return fmt.Sprintf("#%02x%02x%02x", lerp(from[0], to[0], t), lerp(from[1], to[1], t), lerp(from[2], to[2], t))
}

func bounds(values []float64) (float64, float64) {
	min, err := stats.Min(values)
	if err != nil {
		return 0, 0
	}
	max, _ := stats.Max(values)
	return min, max
}

func lerp(a, b int, t float64) int {
	return a + int(math.Round(float64(b-a)*t))
}

func clamp01(t float64) float64 {
	if t < 0 {
		return 0
	}
	if t > 1 {
		return 1
	}
	return t
}
