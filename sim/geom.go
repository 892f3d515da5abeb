package sim

import (
	"fmt"
	"math"

	"github.com/jakecoffman/cp"
)

// Vector2 is a position or velocity in world units (pixels, y down).
type Vector2 = cp.Vector

// Rect is an axis-aligned rectangle with a top-left origin.
type Rect struct {
	X      float64 `yaml:"x"`
	Y      float64 `yaml:"y"`
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

func (r Rect) Right() float64  { return r.X + r.Width }
func (r Rect) Bottom() float64 { return r.Y + r.Height }

// Overlaps is a strict AABB test; touching edges do not overlap.
func (r Rect) Overlaps(o Rect) bool {
	return r.X < o.Right() && r.Right() > o.X && r.Y < o.Bottom() && r.Bottom() > o.Y
}

// LandsOn reports whether r overlaps platform p horizontally with its bottom
// edge strictly inside p's vertical span. This rejects contact from the side
// and from below.
func (r Rect) LandsOn(p Rect) bool {
	bottom := r.Bottom()
	return r.X < p.Right() && r.Right() > p.X && bottom > p.Y && bottom < p.Bottom()
}

// Near reports whether a and b are closer than radius on both axes.
func Near(a, b Vector2, radius float64) bool {
	return math.Abs(a.X-b.X) < radius && math.Abs(a.Y-b.Y) < radius
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func finite(v Vector2) bool {
	return !math.IsNaN(v.X) && !math.IsInf(v.X, 0) && !math.IsNaN(v.Y) && !math.IsInf(v.Y, 0)
}

func finiteF(vs ...float64) bool {
	for _, v := range vs {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

func mustFinite(what string, v Vector2) {
	if !finite(v) {
		panic(fmt.Sprintf("sim: non-finite %s: (%v, %v)", what, v.X, v.Y))
	}
}
