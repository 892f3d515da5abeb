package main

import (
	"bytes"
	"errors"
	"fmt"
	"log"
	"path/filepath"

	"github.com/ebitenui/ebitenui"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/platformer/assets"
	"github.com/milk9111/platformer/autopilot"
	"github.com/milk9111/platformer/common"
	"github.com/milk9111/platformer/levels"
	"github.com/milk9111/platformer/replay"
	"github.com/milk9111/platformer/sim"
	"golang.design/x/clipboard"
)

const statusFrames = 120

type Options struct {
	Level  string
	Script string
	Record string
	Replay string
	Watch  bool
	Debug  bool
	Mute   bool
}

type Game struct {
	opts      Options
	levelName string

	session  *sim.Session
	input    *Input
	camera   *Camera
	renderer *renderer
	sounds   *assets.Sounds

	pilot    *autopilot.Pilot
	recorder *replay.Recorder
	playback *replay.Playback
	watcher  *levels.Watcher

	ui           *ebitenui.UI
	resetPending bool
	copyPending  bool
	clipboardOK  bool

	last        sim.Snapshot
	status      string
	statusTimer int
}

func NewGame(opts Options) (*Game, error) {
	name := opts.Level
	if name == "" {
		name = levels.DefaultLevel
	}

	var recorded *replay.Log
	if opts.Replay != "" {
		l, err := replay.LoadFile(opts.Replay)
		if err != nil {
			return nil, err
		}
		if opts.Level == "" && l.Level != "" {
			name = l.Level
		}
		recorded = &l
	}

	lvl, err := levels.LoadLevel(name)
	if err != nil {
		return nil, err
	}
	session, err := sim.NewSession(lvl)
	if err != nil {
		return nil, err
	}

	camera := &Camera{}
	g := &Game{
		opts:      opts,
		levelName: name,
		session:   session,
		input:     NewInput(),
		camera:    camera,
		renderer:  &renderer{camera: camera, debug: opts.Debug},
		recorder:  replay.NewRecorder(lvl.Name),
	}
	if recorded != nil {
		g.playback = replay.NewPlayback(*recorded)
	}
	if !opts.Mute {
		g.sounds = assets.NewSounds()
	}

	if opts.Script != "" {
		p, err := autopilot.New(opts.Script)
		if err != nil {
			return nil, err
		}
		g.pilot = p
	}

	if opts.Watch {
		w, err := levels.NewWatcher(levels.DiskDir)
		if err != nil {
			log.Printf("level watch disabled: %v", err)
		} else {
			g.watcher = w
		}
	}

	if err := clipboard.Init(); err != nil {
		log.Printf("clipboard unavailable: %v", err)
	} else {
		g.clipboardOK = true
	}

	ebiten.SetTPS(lvl.Tuning.TickRate)
	g.last = session.Snapshot()
	g.camera.Snap(g.last.Player.Position.X, g.worldWidth())
	return g, nil
}

func (g *Game) Update() error {
	g.pollWatcher()

	g.input.Update()
	if g.input.Debug {
		g.renderer.debug = !g.renderer.debug
	}
	if ebiten.IsKeyPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}

	if g.ui != nil {
		g.ui.Update()
	}
	if g.input.Copy || g.copyPending {
		g.copyPending = false
		g.copyReplay()
	}

	cmds, err := g.commands()
	if err != nil {
		return err
	}
	for _, cmd := range cmds {
		g.recorder.Record(cmd)
	}

	snap := g.session.Tick()
	g.recorder.Advance()
	g.handleEvents(g.session.Events())
	g.last = snap

	if snap.Terminal() && g.ui == nil {
		g.ui = NewResultUI(snap, g.requestPlayAgain, g.copyHandler())
	} else if !snap.Terminal() {
		g.ui = nil
	}

	g.camera.Follow(snap.Player.Position.X+g.session.Tuning().PlayerWidth/2, g.worldWidth())
	if g.statusTimer > 0 {
		g.statusTimer--
	}
	return nil
}

// commands gathers this frame's input from the active source and applies
// it to the session.
func (g *Game) commands() ([]sim.Command, error) {
	var cmds []sim.Command
	switch {
	case g.playback != nil:
		if g.playback.Done() {
			break
		}
		cmds = g.playback.Next()
		for _, cmd := range cmds {
			g.session.Apply(cmd)
		}
		if g.playback.Done() {
			g.setStatus("replay finished")
		}
	case g.pilot != nil:
		out, err := g.pilot.Step(g.session)
		if err != nil {
			return nil, err
		}
		cmds = out
	default:
		cmds = g.input.Commands()
		for _, cmd := range cmds {
			g.session.Apply(cmd)
		}
	}

	if g.resetPending || (g.input.Reset && g.pilot != nil) {
		g.resetPending = false
		g.session.Apply(sim.CommandReset)
		cmds = append(cmds, sim.CommandReset)
	}
	return cmds, nil
}

// requestPlayAgain queues a reset for the next frame. A reset is not part of
// the replay being shown, so playback stops and input takes over.
func (g *Game) requestPlayAgain() {
	if g.playback != nil {
		g.playback = nil
		g.setStatus("replay stopped")
	}
	g.resetPending = true
}

func (g *Game) handleEvents(events []sim.Event) {
	for _, ev := range events {
		switch ev.Kind {
		case sim.EventJumped:
			g.play(assets.JumpTone)
		case sim.EventCoinCollected:
			g.play(assets.CoinTone)
		case sim.EventPowerUpCollected:
			g.play(assets.PowerUpTone)
		case sim.EventGameOver:
			g.play(assets.GameOverTone)
			log.Printf("game over at tick %d, score %d", ev.Tick, g.session.Score)
		case sim.EventLevelComplete:
			g.play(assets.GoalTone)
			log.Printf("level complete at tick %d, score %d", ev.Tick, g.session.Score)
		case sim.EventReset:
			if g.pilot != nil {
				g.pilot.Reset()
			}
			g.camera.Snap(g.session.Player.Position.X, g.worldWidth())
		}
	}
}

func (g *Game) play(t assets.Tone) {
	if g.sounds != nil {
		g.sounds.Play(t)
	}
}

func (g *Game) copyHandler() func() {
	if !g.clipboardOK {
		return nil
	}
	return func() { g.copyPending = true }
}

func (g *Game) copyReplay() {
	if !g.clipboardOK {
		g.setStatus("clipboard unavailable")
		return
	}
	var buf bytes.Buffer
	if err := replay.Encode(&buf, g.recorder.Log()); err != nil {
		log.Printf("copy replay: %v", err)
		return
	}
	clipboard.Write(clipboard.FmtText, buf.Bytes())
	g.setStatus(fmt.Sprintf("replay copied (%d ticks)", g.recorder.Ticks()))
}

func (g *Game) pollWatcher() {
	if g.watcher == nil {
		return
	}
	for {
		select {
		case path, ok := <-g.watcher.Events:
			if !ok {
				g.watcher = nil
				return
			}
			if filepath.Base(path) != filepath.Base(levels.FileName(g.levelName)) {
				continue
			}
			g.reload()
		case err, ok := <-g.watcher.Errors:
			if ok && err != nil {
				log.Printf("level watch: %v", err)
			}
		default:
			return
		}
	}
}

// reload rebuilds the session from the level on disk. A level that fails to
// load or validate leaves the running session untouched.
func (g *Game) reload() {
	lvl, err := levels.LoadLevel(g.levelName)
	if err != nil {
		log.Printf("reload %s: %v", g.levelName, err)
		g.setStatus("reload failed, see log")
		return
	}
	s, err := sim.NewSession(lvl)
	if err != nil {
		log.Printf("reload %s: %v", g.levelName, err)
		return
	}
	g.session = s
	g.recorder = replay.NewRecorder(lvl.Name)
	g.ui = nil
	if g.pilot != nil {
		g.pilot.Reset()
	}
	ebiten.SetTPS(lvl.Tuning.TickRate)
	g.last = s.Snapshot()
	g.camera.Snap(g.last.Player.Position.X, g.worldWidth())
	g.setStatus("reloaded " + g.levelName)
}

func (g *Game) setStatus(msg string) {
	g.status = msg
	g.statusTimer = statusFrames
}

func (g *Game) worldWidth() float64 {
	l := g.session.Level()
	return l.Width + l.Tuning.PlayerWidth
}

// Close stops the level watcher and writes the recording if one was asked
// for.
func (g *Game) Close() error {
	var errs []error
	if g.watcher != nil {
		errs = append(errs, g.watcher.Close())
	}
	if g.opts.Record != "" {
		if err := replay.Save(g.opts.Record, g.recorder.Log()); err != nil {
			errs = append(errs, err)
		} else {
			log.Printf("recorded %d ticks to %s", g.recorder.Ticks(), g.opts.Record)
		}
	}
	return errors.Join(errs...)
}

func (g *Game) Draw(screen *ebiten.Image) {
	g.renderer.draw(screen, g.last, g.session.Level())

	status := ""
	if g.statusTimer > 0 {
		status = g.status
	}
	g.renderer.drawHUD(screen, g.last, g.session.Tuning().TickRate, status)

	if g.ui != nil {
		g.ui.Draw(screen)
	}
}

func (g *Game) LayoutF(outsideWidth, outsideHeight float64) (float64, float64) {
	return common.BaseWidth, common.BaseHeight
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	panic("shouldn't use Layout")
}
