// Command simulate runs a level headless under an autopilot script or a
// recorded replay and prints the final snapshot as YAML.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/milk9111/platformer/autopilot"
	"github.com/milk9111/platformer/levels"
	"github.com/milk9111/platformer/replay"
	"github.com/milk9111/platformer/sim"
	"gopkg.in/yaml.v3"
)

type config struct {
	level    string
	script   string
	replay   string
	record   string
	ticks    int
	untilEnd bool
	quiet    bool
	summary  bool
	trace    int
	traceLog *log.Logger
}

type result struct {
	Level    string       `yaml:"level"`
	Source   string       `yaml:"source"`
	Ticks    uint64       `yaml:"ticks"`
	Events   int          `yaml:"events"`
	Snapshot sim.Snapshot `yaml:"snapshot"`
}

var errNoSource = errors.New("simulate: one of -script or -replay is required")

func run(cfg config, out io.Writer) (result, error) {
	if (cfg.script == "") == (cfg.replay == "") {
		return result{}, errNoSource
	}

	name := cfg.level
	var recorded replay.Log
	if cfg.replay != "" {
		l, err := replay.LoadFile(cfg.replay)
		if err != nil {
			return result{}, err
		}
		recorded = l
		if name == "" {
			name = l.Level
		}
	}
	if name == "" {
		name = levels.DefaultLevel
	}

	lvl, err := levels.LoadLevel(name)
	if err != nil {
		return result{}, err
	}
	var opts []sim.Option
	if cfg.trace > 0 {
		logger := cfg.traceLog
		if logger == nil {
			logger = log.Default()
		}
		opts = append(opts, sim.WithSystems(newTraceSystem(cfg.trace, logger)))
	}
	s, err := sim.NewSession(lvl, opts...)
	if err != nil {
		return result{}, err
	}

	res := result{Level: lvl.Name}
	rec := replay.NewRecorder(lvl.Name)
	logEvents := func(events []sim.Event) {
		res.Events += len(events)
		if cfg.quiet {
			return
		}
		for _, ev := range events {
			switch ev.Kind {
			case sim.EventGameOver:
				log.Printf("game over at tick %d, score %d", ev.Tick, s.Score)
			case sim.EventLevelComplete:
				log.Printf("level complete at tick %d, score %d", ev.Tick, s.Score)
			default:
				log.Printf("tick %d: %s %d", ev.Tick, ev.Kind, ev.Index)
			}
		}
	}

	if cfg.replay != "" {
		res.Source = "replay " + cfg.replay
		pb := replay.NewPlayback(recorded)
		for !pb.Done() {
			for _, cmd := range pb.Next() {
				rec.Record(cmd)
				s.Apply(cmd)
			}
			s.Tick()
			rec.Advance()
			logEvents(s.Events())
		}
	} else {
		p, err := autopilot.New(cfg.script)
		if err != nil {
			return result{}, err
		}
		res.Source = "script " + cfg.script
		for i := 0; i < cfg.ticks; i++ {
			if cfg.untilEnd && s.Terminal() {
				break
			}
			cmds, err := p.Step(s)
			if err != nil {
				return result{}, fmt.Errorf("simulate: tick %d: %w", s.Ticks, err)
			}
			for _, cmd := range cmds {
				rec.Record(cmd)
			}
			s.Tick()
			rec.Advance()
			logEvents(s.Events())
		}
	}

	if cfg.record != "" {
		if err := replay.Save(cfg.record, rec.Log()); err != nil {
			return result{}, err
		}
	}

	res.Ticks = rec.Ticks()
	res.Snapshot = s.Snapshot()
	enc := yaml.NewEncoder(out)
	enc.SetIndent(2)
	if err := enc.Encode(res); err != nil {
		return result{}, fmt.Errorf("simulate: encode result: %w", err)
	}
	return res, enc.Close()
}

func main() {
	var cfg config
	flag.StringVar(&cfg.level, "level", "", "level name in levels/ (defaults to the replay's level or level1)")
	flag.StringVar(&cfg.script, "script", "", "autopilot script to drive the player")
	flag.StringVar(&cfg.replay, "replay", "", "replay file to play back")
	flag.StringVar(&cfg.record, "record", "", "write the commands that were run to this replay file")
	flag.IntVar(&cfg.ticks, "ticks", 3600, "maximum ticks to run under a script")
	flag.BoolVar(&cfg.untilEnd, "until-end", true, "stop a scripted run once the session is terminal")
	flag.BoolVar(&cfg.quiet, "quiet", false, "do not log events")
	flag.IntVar(&cfg.trace, "trace", 0, "log the player every N ticks (0 disables)")
	flag.BoolVar(&cfg.summary, "summary", false, "print a styled summary of the run to stderr")
	flag.Parse()

	res, err := run(cfg, os.Stdout)
	if err != nil {
		log.Fatal(err)
	}
	if cfg.summary {
		fmt.Fprintln(os.Stderr, renderSummary(res))
	}
}
