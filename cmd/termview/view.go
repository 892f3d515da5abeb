package main

import (
	"fmt"
	"math"

	"github.com/gdamore/tcell/v2"
	"github.com/milk9111/platformer/sim"
)

// World units per terminal cell.
const (
	cellWidth  = 10.0
	cellHeight = 20.0
)

var (
	styleSky      = tcell.StyleDefault.Background(tcell.ColorNavy)
	stylePlatform = tcell.StyleDefault.Foreground(tcell.ColorGreen).Background(tcell.ColorNavy)
	styleEnemy    = tcell.StyleDefault.Foreground(tcell.ColorRed).Background(tcell.ColorNavy)
	styleCoin     = tcell.StyleDefault.Foreground(tcell.ColorYellow).Background(tcell.ColorNavy)
	stylePowerUp  = tcell.StyleDefault.Foreground(tcell.ColorPurple).Background(tcell.ColorNavy)
	stylePlayer   = tcell.StyleDefault.Foreground(tcell.ColorWhite).Background(tcell.ColorNavy)
	styleGoal     = tcell.StyleDefault.Foreground(tcell.ColorAqua).Background(tcell.ColorNavy)
	styleHUD      = tcell.StyleDefault.Foreground(tcell.ColorWhite).Bold(true)
)

type cell struct {
	r     rune
	style tcell.Style
}

// frame is a character raster of the world below a one-line HUD.
type frame struct {
	cols, rows int
	cells      []cell
}

func newFrame(cols, rows int) *frame {
	f := &frame{cols: cols, rows: rows, cells: make([]cell, cols*rows)}
	for i := range f.cells {
		f.cells[i] = cell{r: ' ', style: styleSky}
	}
	return f
}

func (f *frame) at(col, row int) cell {
	return f.cells[row*f.cols+col]
}

func (f *frame) set(col, row int, r rune, style tcell.Style) {
	if col < 0 || row < 0 || col >= f.cols || row >= f.rows {
		return
	}
	f.cells[row*f.cols+col] = cell{r: r, style: style}
}

func (f *frame) text(col, row int, s string, style tcell.Style) {
	for i, r := range []rune(s) {
		f.set(col+i, row, r, style)
	}
}

// fill covers every cell the world rectangle touches. World rows start at
// screen row 1; row 0 is the HUD.
func (f *frame) fill(rect sim.Rect, camX float64, r rune, style tcell.Style) {
	c0 := int(math.Floor((rect.X - camX) / cellWidth))
	c1 := int(math.Ceil((rect.Right()-camX)/cellWidth)) - 1
	r0 := int(math.Floor(rect.Y/cellHeight)) + 1
	r1 := int(math.Ceil(rect.Bottom() / cellHeight))
	for row := r0; row <= r1; row++ {
		for col := c0; col <= c1; col++ {
			f.set(col, row, r, style)
		}
	}
}

func (f *frame) point(p sim.Vector2, camX float64, r rune, style tcell.Style) {
	f.set(int(math.Floor((p.X-camX)/cellWidth)), int(math.Floor(p.Y/cellHeight))+1, r, style)
}

// cameraFor centers the player horizontally within the level.
func cameraFor(playerX, levelWidth float64, cols int) float64 {
	view := float64(cols) * cellWidth
	x := playerX - view/2
	return math.Max(0, math.Min(x, levelWidth-view))
}

func rasterize(snap sim.Snapshot, lvl sim.Level, cols, rows int) *frame {
	f := newFrame(cols, rows)
	t := lvl.Tuning
	camX := cameraFor(snap.Player.Position.X, lvl.Width+t.PlayerWidth, cols)

	for _, p := range lvl.Platforms {
		f.fill(p, camX, '▀', stylePlatform)
	}
	f.fill(sim.Rect{X: lvl.GoalX, Y: 0, Width: 1, Height: lvl.MaxFallY + t.PlayerHeight}, camX, '|', styleGoal)
	for _, c := range snap.Coins {
		if !c.Collected {
			f.point(c.Position, camX, 'o', styleCoin)
		}
	}
	for _, pu := range snap.PowerUps {
		if !pu.Collected {
			f.point(pu.Position, camX, '*', stylePowerUp)
		}
	}
	for _, e := range snap.Enemies {
		f.fill(e.Rect, camX, 'X', styleEnemy)
	}

	p := snap.Player
	if !p.Invincible || snap.Tick%10 < 5 {
		body := sim.Rect{X: p.Position.X, Y: p.Position.Y, Width: t.PlayerWidth, Height: t.PlayerHeight}
		f.fill(body, camX, '█', stylePlayer)
	}

	hud := fmt.Sprintf(" score %d  coins %d/%d  tick %d ", snap.Score, snap.CollectedCoins(), len(snap.Coins), snap.Tick)
	switch {
	case snap.LevelComplete:
		hud += " LEVEL COMPLETE  r: play again  esc: quit"
	case snap.GameOver:
		hud += " GAME OVER  r: play again  esc: quit"
	case p.Invincible:
		hud += fmt.Sprintf(" invincible %.1fs", float64(p.InvincibleTicks)/float64(t.TickRate))
	}
	for col := 0; col < cols; col++ {
		f.set(col, 0, ' ', styleHUD)
	}
	f.text(0, 0, hud, styleHUD)
	return f
}

func (f *frame) blit(screen tcell.Screen) {
	for row := 0; row < f.rows; row++ {
		for col := 0; col < f.cols; col++ {
			c := f.at(col, row)
			screen.SetContent(col, row, c.r, nil, c.style)
		}
	}
}
