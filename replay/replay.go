package replay

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/milk9111/platformer/sim"
	"gopkg.in/yaml.v3"
)

var ErrEmptyLog = errors.New("replay: empty log")

// Entry is a command issued before frame Tick. Repeat counts the following
// frames that began with the same held command.
type Entry struct {
	Tick    uint64      `yaml:"tick"`
	Command sim.Command `yaml:"command"`
	Repeat  uint64      `yaml:"repeat,omitempty"`
}

func (e Entry) covers(frame uint64) bool {
	return frame >= e.Tick && frame <= e.Tick+e.Repeat
}

// Log is a recorded run. Ticks counts host frames, including frames where
// the session was frozen, so playback stays aligned across resets.
type Log struct {
	Level   string  `yaml:"level"`
	Ticks   uint64  `yaml:"ticks"`
	Entries []Entry `yaml:"entries"`
}

// CommandsForTick returns the commands to apply before the given frame, in
// issue order.
func (l Log) CommandsForTick(tick uint64) []sim.Command {
	var result []sim.Command
	for _, e := range l.Entries {
		if e.covers(tick) {
			result = append(result, e.Command)
		}
	}
	return result
}

func isHeld(cmd sim.Command) bool {
	return cmd == sim.CommandLeft || cmd == sim.CommandRight || cmd == sim.CommandStop
}

// Recorder collects the commands a host feeds into a session.
type Recorder struct {
	log         Log
	firstInTick bool
	run         int
}

func NewRecorder(level string) *Recorder {
	return &Recorder{
		log:         Log{Level: level},
		firstInTick: true,
		run:         -1,
	}
}

// Record notes cmd for the current frame.
func (r *Recorder) Record(cmd sim.Command) {
	frame := r.log.Ticks
	first := r.firstInTick
	r.firstInTick = false

	if first && isHeld(cmd) && r.run >= 0 {
		e := &r.log.Entries[r.run]
		if e.Command == cmd && e.Tick+e.Repeat+1 == frame {
			e.Repeat++
			return
		}
	}

	r.log.Entries = append(r.log.Entries, Entry{Tick: frame, Command: cmd})
	if first && isHeld(cmd) {
		r.run = len(r.log.Entries) - 1
	} else if first {
		r.run = -1
	}
}

// Advance closes the current frame. Call it once per session tick.
func (r *Recorder) Advance() {
	if r.firstInTick {
		r.run = -1
	}
	r.log.Ticks++
	r.firstInTick = true
}

// Ticks returns the number of frames recorded.
func (r *Recorder) Ticks() uint64 { return r.log.Ticks }

// Log returns a copy of the closed frames. Commands recorded for a frame
// that has not been advanced yet are left out.
func (r *Recorder) Log() Log {
	out := r.log
	out.Entries = nil
	for _, e := range r.log.Entries {
		if e.Tick >= out.Ticks {
			continue
		}
		if e.Tick+e.Repeat >= out.Ticks {
			e.Repeat = out.Ticks - 1 - e.Tick
		}
		out.Entries = append(out.Entries, e)
	}
	return out
}

// Reset drops everything recorded so far.
func (r *Recorder) Reset() {
	*r = *NewRecorder(r.log.Level)
}

// Play re-runs log against s from its current state and returns the final
// snapshot. Callers normally pass a fresh session for the logged level.
func Play(s *sim.Session, log Log) sim.Snapshot {
	pb := NewPlayback(log)
	for !pb.Done() {
		for _, cmd := range pb.Next() {
			s.Apply(cmd)
		}
		s.Tick()
	}
	return s.Snapshot()
}

// Playback hands out a log's commands one frame at a time.
type Playback struct {
	log   Log
	frame uint64
	next  int
}

func NewPlayback(log Log) *Playback {
	return &Playback{log: log}
}

// Next returns the commands for the current frame and moves to the next.
func (p *Playback) Next() []sim.Command {
	if p.Done() {
		return nil
	}
	var result []sim.Command
	for i := p.next; i < len(p.log.Entries); i++ {
		e := p.log.Entries[i]
		if e.Tick > p.frame {
			break
		}
		if e.covers(p.frame) {
			result = append(result, e.Command)
		}
	}
	p.frame++
	for p.next < len(p.log.Entries) && p.log.Entries[p.next].Tick+p.log.Entries[p.next].Repeat < p.frame {
		p.next++
	}
	return result
}

func (p *Playback) Frame() uint64 { return p.frame }

func (p *Playback) Done() bool { return p.frame >= p.log.Ticks }

func Encode(w io.Writer, log Log) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(log); err != nil {
		return fmt.Errorf("replay: encode: %w", err)
	}
	return enc.Close()
}

func Decode(r io.Reader) (Log, error) {
	var log Log
	if err := yaml.NewDecoder(r).Decode(&log); err != nil {
		if errors.Is(err, io.EOF) {
			return Log{}, ErrEmptyLog
		}
		return Log{}, fmt.Errorf("replay: decode: %w", err)
	}
	var prev uint64
	for i, e := range log.Entries {
		if _, err := sim.ParseCommand(string(e.Command)); err != nil {
			return Log{}, fmt.Errorf("replay: entry %d: %w", i, err)
		}
		if e.Tick < prev {
			return Log{}, fmt.Errorf("replay: entry %d: tick %d before %d", i, e.Tick, prev)
		}
		if e.Tick+e.Repeat >= log.Ticks {
			return Log{}, fmt.Errorf("replay: entry %d: tick %d past end %d", i, e.Tick+e.Repeat, log.Ticks)
		}
		prev = e.Tick
	}
	return log, nil
}

func Save(path string, log Log) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("replay: save %s: %w", path, err)
	}
	if err := Encode(f, log); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}

func LoadFile(path string) (Log, error) {
	f, err := os.Open(path)
	if err != nil {
		return Log{}, fmt.Errorf("replay: load %s: %w", path, err)
	}
	defer f.Close()
	return Decode(f)
}
