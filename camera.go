package main

import (
	"math"

	"github.com/milk9111/platformer/common"
)

const cameraSmoothing = 0.12

// Camera scrolls horizontally to keep the player centered, easing toward
// the target and stopping at the level edges.
type Camera struct {
	X float64
}

// Follow moves the camera a fraction of the way to center targetX. worldWidth
// is the full drawable width of the level.
func (c *Camera) Follow(targetX, worldWidth float64) {
	goal := targetX - common.BaseWidth/2
	goal = common.Clamp(goal, 0, max(0, worldWidth-common.BaseWidth))
	c.X = common.Lerp(c.X, goal, cameraSmoothing)
}

// Snap jumps straight to the target, used on load and reset.
func (c *Camera) Snap(targetX, worldWidth float64) {
	c.X = common.Clamp(targetX-common.BaseWidth/2, 0, max(0, worldWidth-common.BaseWidth))
}

// Parallax returns the horizontal offset of a background layer that moves
// at factor times the camera speed, wrapped to period.
func (c *Camera) Parallax(factor, period float64) float64 {
	if period <= 0 {
		return 0
	}
	off := math.Mod(-c.X*factor, period)
	if off > 0 {
		off -= period
	}
	return off
}
