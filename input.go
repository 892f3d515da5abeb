package main

import (
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/milk9111/platformer/sim"
)

const stickDeadzone = 0.2

// Input samples keyboard and the first gamepad once per frame.
type Input struct {
	MoveX       float64
	JumpPressed bool
	Reset       bool
	Copy        bool
	Debug       bool
}

func NewInput() *Input {
	return &Input{}
}

func (i *Input) Update() {
	moveX := 0.0
	if ebiten.IsKeyPressed(ebiten.KeyA) || ebiten.IsKeyPressed(ebiten.KeyArrowLeft) {
		moveX -= 1
	}
	if ebiten.IsKeyPressed(ebiten.KeyD) || ebiten.IsKeyPressed(ebiten.KeyArrowRight) {
		moveX += 1
	}
	jumpPressed := inpututil.IsKeyJustPressed(ebiten.KeySpace) ||
		inpututil.IsKeyJustPressed(ebiten.KeyW) ||
		inpututil.IsKeyJustPressed(ebiten.KeyArrowUp)
	reset := inpututil.IsKeyJustPressed(ebiten.KeyR)

	if gamepads := ebiten.AppendGamepadIDs(nil); len(gamepads) > 0 {
		id := gamepads[0]
		leftX := ebiten.StandardGamepadAxisValue(id, ebiten.StandardGamepadAxisLeftStickHorizontal)
		if math.Abs(leftX) > stickDeadzone {
			moveX = leftX
		}
		if ebiten.IsStandardGamepadButtonPressed(id, ebiten.StandardGamepadButtonLeftLeft) {
			moveX = -1
		}
		if ebiten.IsStandardGamepadButtonPressed(id, ebiten.StandardGamepadButtonLeftRight) {
			moveX = 1
		}
		jumpPressed = jumpPressed || inpututil.IsStandardGamepadButtonJustPressed(id, ebiten.StandardGamepadButtonRightBottom)
		reset = reset || inpututil.IsStandardGamepadButtonJustPressed(id, ebiten.StandardGamepadButtonCenterRight)
	}

	i.MoveX = moveX
	i.JumpPressed = jumpPressed
	i.Reset = reset
	i.Copy = inpututil.IsKeyJustPressed(ebiten.KeyC)
	i.Debug = inpututil.IsKeyJustPressed(ebiten.KeyF1)
}

// Commands turns the sampled state into session commands. The held
// direction is issued every frame so air control follows the grounded flag.
func (i *Input) Commands() []sim.Command {
	return commandsFor(i.MoveX, i.JumpPressed, i.Reset)
}

func commandsFor(moveX float64, jump, reset bool) []sim.Command {
	cmds := make([]sim.Command, 0, 3)
	switch {
	case moveX < 0:
		cmds = append(cmds, sim.CommandLeft)
	case moveX > 0:
		cmds = append(cmds, sim.CommandRight)
	default:
		cmds = append(cmds, sim.CommandStop)
	}
	if jump {
		cmds = append(cmds, sim.CommandJump)
	}
	if reset {
		cmds = append(cmds, sim.CommandReset)
	}
	return cmds
}
