package main

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/milk9111/platformer/common"
	"github.com/milk9111/platformer/sim"
	"golang.org/x/image/colornames"
)

// worldOffsetY centers the level's playable band vertically.
const worldOffsetY = 80

const coinSize = 16

type parallaxBand struct {
	factor float64
	y      float32
	height float32
	width  float32
	gap    float32
	clr    color.Color
}

var bands = []parallaxBand{
	{factor: 0.2, y: 120, height: 260, width: 220, gap: 140, clr: color.RGBA{R: 0x9b, G: 0xb7, B: 0xd4, A: 0xff}},
	{factor: 0.5, y: 240, height: 200, width: 160, gap: 90, clr: color.RGBA{R: 0x6d, G: 0x8f, B: 0xb0, A: 0xff}},
}

type renderer struct {
	camera *Camera
	debug  bool
}

func (r *renderer) draw(screen *ebiten.Image, snap sim.Snapshot, lvl sim.Level) {
	screen.Fill(colornames.Skyblue)
	r.drawBackground(screen)

	for _, p := range lvl.Platforms {
		r.fillWorld(screen, p, colornames.Saddlebrown)
		r.fillWorld(screen, sim.Rect{X: p.X, Y: p.Y, Width: p.Width, Height: 6}, colornames.Forestgreen)
	}

	goal := sim.Rect{X: lvl.GoalX, Y: 0, Width: 6, Height: lvl.MaxFallY + lvl.Tuning.PlayerHeight}
	r.fillWorld(screen, goal, color.RGBA{R: 0xff, G: 0xff, B: 0xff, A: 0x80})

	for _, c := range snap.Coins {
		if c.Collected {
			continue
		}
		r.fillWorld(screen, pickupRect(c.Position), colornames.Gold)
	}
	for _, pu := range snap.PowerUps {
		if pu.Collected {
			continue
		}
		r.fillWorld(screen, pickupRect(pu.Position), colornames.Mediumorchid)
	}

	for _, e := range snap.Enemies {
		r.fillWorld(screen, e.Rect, colornames.Crimson)
	}

	r.drawPlayer(screen, snap, lvl.Tuning)

	if r.debug {
		bounds := sim.Rect{
			X: snap.Player.Position.X, Y: snap.Player.Position.Y,
			Width: lvl.Tuning.PlayerWidth, Height: lvl.Tuning.PlayerHeight,
		}
		r.strokeWorld(screen, bounds, colornames.Lime)
		for _, e := range snap.Enemies {
			r.strokeWorld(screen, e.Rect, colornames.Red)
		}
		for _, c := range snap.Coins {
			radius := lvl.Tuning.PickupRadius
			r.strokeWorld(screen, sim.Rect{X: c.Position.X - radius, Y: c.Position.Y - radius, Width: radius * 2, Height: radius * 2}, colornames.Yellow)
		}
	}
}

func (r *renderer) drawBackground(screen *ebiten.Image) {
	for _, b := range bands {
		period := float64(b.width + b.gap)
		x := float32(r.camera.Parallax(b.factor, period))
		for ; x < common.BaseWidth; x += b.width + b.gap {
			vector.FillRect(screen, x, b.y, b.width, b.height, b.clr, false)
		}
	}
}

func (r *renderer) drawPlayer(screen *ebiten.Image, snap sim.Snapshot, t sim.Tuning) {
	p := snap.Player
	// Blink while invincible, faster in the last second.
	if p.Invincible {
		period := uint64(16)
		if p.InvincibleTicks < t.TickRate {
			period = 6
		}
		if snap.Tick%period < period/2 {
			return
		}
	}
	body := sim.Rect{X: p.Position.X, Y: p.Position.Y, Width: t.PlayerWidth, Height: t.PlayerHeight}
	clr := colornames.Royalblue
	if !p.Grounded {
		clr = colornames.Dodgerblue
	}
	r.fillWorld(screen, body, clr)

	eyeX := p.Position.X + t.PlayerWidth - 18
	if !p.FacingRight {
		eyeX = p.Position.X + 8
	}
	r.fillWorld(screen, sim.Rect{X: eyeX, Y: p.Position.Y + 16, Width: 10, Height: 10}, colornames.White)
}

func (r *renderer) drawHUD(screen *ebiten.Image, snap sim.Snapshot, tickRate int, status string) {
	msg := fmt.Sprintf("Score: %d  Coins: %d/%d  Tick: %d", snap.Score, snap.CollectedCoins(), len(snap.Coins), snap.Tick)
	if snap.Player.Invincible {
		msg += fmt.Sprintf("  INVINCIBLE %.1fs", float64(snap.Player.InvincibleTicks)/float64(tickRate))
	}
	if status != "" {
		msg += "\n" + status
	}
	if r.debug {
		p := snap.Player
		msg += fmt.Sprintf("\npos (%.1f, %.1f) vel (%.1f, %.1f) grounded=%v\nFPS %.1f TPS %.1f",
			p.Position.X, p.Position.Y, p.Velocity.X, p.Velocity.Y, p.Grounded, ebiten.ActualFPS(), ebiten.ActualTPS())
	}
	ebitenutil.DebugPrint(screen, msg)
}

func (r *renderer) fillWorld(screen *ebiten.Image, rect sim.Rect, clr color.Color) {
	x, y := r.toScreen(rect.X, rect.Y)
	vector.FillRect(screen, x, y, float32(rect.Width), float32(rect.Height), clr, false)
}

func (r *renderer) strokeWorld(screen *ebiten.Image, rect sim.Rect, clr color.Color) {
	x, y := r.toScreen(rect.X, rect.Y)
	vector.StrokeRect(screen, x, y, float32(rect.Width), float32(rect.Height), 1.0, clr, false)
}

func (r *renderer) toScreen(x, y float64) (float32, float32) {
	return float32(x - r.camera.X), float32(y + worldOffsetY)
}

// pickupRect draws pickups centered on their proximity anchor.
func pickupRect(pos sim.Vector2) sim.Rect {
	return sim.Rect{X: pos.X - coinSize/2, Y: pos.Y - coinSize/2, Width: coinSize, Height: coinSize}
}
