package autopilot

import (
	"embed"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/d5/tengo/v2"
	"github.com/d5/tengo/v2/stdlib"
	"github.com/milk9111/platformer/sim"
)

//go:embed scripts/*.tengo
var ScriptsFS embed.FS

// DiskDir is searched for scripts/<name> before the embedded copies.
var DiskDir = "autopilot"

const dispatchScript = `
update(__engine, __state)
`

// Pilot drives a session from a compiled tengo script. A script defines
// update(engine, state); state is a map kept between calls.
type Pilot struct {
	name     string
	compiled *tengo.Compiled
	state    *tengo.Map
	pending  []sim.Command
}

func LoadScript(name string) ([]byte, error) {
	clean := cleanScriptPath(name)
	if data, err := os.ReadFile(filepath.Join(DiskDir, filepath.FromSlash(clean))); err == nil {
		return data, nil
	}
	return ScriptsFS.ReadFile(clean)
}

// New loads and compiles the named script.
func New(name string) (*Pilot, error) {
	src, err := LoadScript(name)
	if err != nil {
		return nil, fmt.Errorf("autopilot: load %s: %w", name, err)
	}
	return Compile(name, src)
}

func Compile(name string, src []byte) (*Pilot, error) {
	script := tengo.NewScript([]byte(string(src) + "\n" + dispatchScript))
	_ = script.Add("__engine", map[string]any{})
	_ = script.Add("__state", map[string]any{})
	script.SetImports(stdlib.GetModuleMap(stdlib.AllModuleNames()...))

	compiled, err := script.Compile()
	if err != nil {
		return nil, fmt.Errorf("autopilot: compile %s: %w", name, err)
	}
	return &Pilot{
		name:     name,
		compiled: compiled,
		state:    &tengo.Map{Value: map[string]tengo.Object{}},
	}, nil
}

func (p *Pilot) Name() string { return p.name }

// Step runs the script against the current session state, applies the
// commands it issued and returns them in order.
func (p *Pilot) Step(s *sim.Session) ([]sim.Command, error) {
	if p == nil || p.compiled == nil {
		return nil, fmt.Errorf("autopilot: nil pilot")
	}
	p.pending = p.pending[:0]

	if err := p.compiled.Set("__engine", p.engine(s)); err != nil {
		return nil, err
	}
	if err := p.compiled.Set("__state", p.state); err != nil {
		return nil, err
	}
	if err := p.compiled.Run(); err != nil {
		return nil, fmt.Errorf("autopilot: %s: %w", p.name, err)
	}

	cmds := append([]sim.Command(nil), p.pending...)
	for _, cmd := range cmds {
		s.Apply(cmd)
	}
	return cmds, nil
}

// State returns a Go copy of the script's persistent state.
func (p *Pilot) State() map[string]any {
	out, _ := objectToAny(p.state).(map[string]any)
	return out
}

// Reset clears the script state, for use after a session reset.
func (p *Pilot) Reset() {
	p.state = &tengo.Map{Value: map[string]tengo.Object{}}
}

func (p *Pilot) engine(s *sim.Session) *tengo.ImmutableMap {
	values := map[string]tengo.Object{}

	issue := func(name string, cmd sim.Command) {
		values[name] = &tengo.UserFunction{Name: name, Value: func(args ...tengo.Object) (tengo.Object, error) {
			p.pending = append(p.pending, cmd)
			return tengo.TrueValue, nil
		}}
	}
	issue("move_left", sim.CommandLeft)
	issue("move_right", sim.CommandRight)
	issue("stop", sim.CommandStop)
	issue("jump", sim.CommandJump)

	values["player"] = &tengo.UserFunction{Name: "player", Value: func(args ...tengo.Object) (tengo.Object, error) {
		pl := s.Player
		return object(map[string]tengo.Object{
			"x":                floatObj(pl.Position.X),
			"y":                floatObj(pl.Position.Y),
			"vx":               floatObj(pl.Velocity.X),
			"vy":               floatObj(pl.Velocity.Y),
			"grounded":         boolObj(pl.Grounded),
			"walking":          boolObj(pl.Walking),
			"facing_right":     boolObj(pl.FacingRight),
			"invincible":       boolObj(pl.Invincible),
			"invincible_ticks": &tengo.Int{Value: int64(pl.InvincibleTicks)},
		}), nil
	}}

	values["enemies"] = &tengo.UserFunction{Name: "enemies", Value: func(args ...tengo.Object) (tengo.Object, error) {
		out := make([]tengo.Object, 0, len(s.Enemies))
		for _, e := range s.Enemies {
			out = append(out, object(map[string]tengo.Object{
				"x":         floatObj(e.Rect.X),
				"y":         floatObj(e.Rect.Y),
				"width":     floatObj(e.Rect.Width),
				"height":    floatObj(e.Rect.Height),
				"direction": &tengo.Int{Value: int64(e.Direction)},
			}))
		}
		return &tengo.ImmutableArray{Value: out}, nil
	}}

	values["coins"] = &tengo.UserFunction{Name: "coins", Value: func(args ...tengo.Object) (tengo.Object, error) {
		return pickups(s.Coins), nil
	}}
	values["power_ups"] = &tengo.UserFunction{Name: "power_ups", Value: func(args ...tengo.Object) (tengo.Object, error) {
		return pickups(s.PowerUps), nil
	}}

	values["tick"] = &tengo.UserFunction{Name: "tick", Value: func(args ...tengo.Object) (tengo.Object, error) {
		return &tengo.Int{Value: int64(s.Ticks)}, nil
	}}

	values["level"] = &tengo.UserFunction{Name: "level", Value: func(args ...tengo.Object) (tengo.Object, error) {
		lvl, t := s.Level(), s.Tuning()
		return object(map[string]tengo.Object{
			"name":          &tengo.String{Value: lvl.Name},
			"width":         floatObj(lvl.Width),
			"goal_x":        floatObj(lvl.GoalX),
			"max_fall_y":    floatObj(lvl.MaxFallY),
			"player_width":  floatObj(t.PlayerWidth),
			"player_height": floatObj(t.PlayerHeight),
			"jump_force":    floatObj(t.JumpForce),
			"gravity":       floatObj(t.Gravity),
			"move_speed":    floatObj(t.MoveSpeed),
		}), nil
	}}

	return &tengo.ImmutableMap{Value: values}
}

func pickups(items []sim.Pickup) tengo.Object {
	out := make([]tengo.Object, 0, len(items))
	for _, it := range items {
		out = append(out, object(map[string]tengo.Object{
			"x":         floatObj(it.Position.X),
			"y":         floatObj(it.Position.Y),
			"collected": boolObj(it.Collected),
		}))
	}
	return &tengo.ImmutableArray{Value: out}
}

func object(m map[string]tengo.Object) *tengo.ImmutableMap {
	return &tengo.ImmutableMap{Value: m}
}

func floatObj(v float64) tengo.Object { return &tengo.Float{Value: v} }

func boolObj(v bool) tengo.Object {
	if v {
		return tengo.TrueValue
	}
	return tengo.FalseValue
}

func cleanScriptPath(path string) string {
	if path == "" {
		return ""
	}
	s := filepath.ToSlash(path)
	if after, ok := strings.CutPrefix(s, "autopilot/"); ok {
		s = after
	}
	if after, ok := strings.CutPrefix(s, "scripts/"); ok {
		s = after
	}
	if filepath.Ext(s) == "" {
		s += ".tengo"
	}
	return "scripts/" + s
}

func objectToAny(obj tengo.Object) any {
	if obj == nil {
		return nil
	}
	switch v := obj.(type) {
	case *tengo.String:
		return v.Value
	case *tengo.Int:
		return int(v.Value)
	case *tengo.Float:
		return v.Value
	case *tengo.Bool:
		return !v.IsFalsy()
	case *tengo.Array:
		out := make([]any, 0, len(v.Value))
		for _, item := range v.Value {
			out = append(out, objectToAny(item))
		}
		return out
	case *tengo.Map:
		out := make(map[string]any, len(v.Value))
		for k, item := range v.Value {
			out[k] = objectToAny(item)
		}
		return out
	case *tengo.Undefined:
		return nil
	default:
		return v.String()
	}
}
