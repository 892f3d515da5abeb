package replay

import (
	"bytes"
	"errors"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/milk9111/platformer/levels"
	"github.com/milk9111/platformer/sim"
)

func newSession(t *testing.T) *sim.Session {
	t.Helper()
	lvl, err := levels.Default()
	if err != nil {
		t.Fatalf("levels.Default: %v", err)
	}
	s, err := sim.NewSession(lvl)
	if err != nil {
		t.Fatalf("NewSession: %v", err)
	}
	return s
}

// drive feeds script(frame) into s the way a host does, recording as it goes.
func drive(s *sim.Session, rec *Recorder, frames int, script func(frame int) []sim.Command) {
	for f := 0; f < frames; f++ {
		for _, cmd := range script(f) {
			rec.Record(cmd)
			s.Apply(cmd)
		}
		s.Tick()
		rec.Advance()
	}
}

func hostScript(frame int) []sim.Command {
	var cmds []sim.Command
	switch {
	case frame < 40:
		cmds = append(cmds, sim.CommandRight)
	case frame < 55:
		cmds = append(cmds, sim.CommandStop)
	case frame < 200:
		cmds = append(cmds, sim.CommandRight)
	}
	if frame == 10 || frame == 60 || frame == 61 {
		cmds = append(cmds, sim.CommandJump)
	}
	if frame == 120 {
		cmds = append(cmds, sim.CommandReset)
	}
	return cmds
}

func TestPlayReproducesRecordedRun(t *testing.T) {
	live := newSession(t)
	rec := NewRecorder("level1")
	drive(live, rec, 260, hostScript)
	want := live.Snapshot()

	got := Play(newSession(t), rec.Log())
	if !reflect.DeepEqual(want, got) {
		t.Fatalf("replay diverged:\nwant %+v\ngot  %+v", want, got)
	}
}

func TestRecorderCollapsesHeldCommands(t *testing.T) {
	rec := NewRecorder("level1")
	drive(newSession(t), rec, 100, func(int) []sim.Command {
		return []sim.Command{sim.CommandRight}
	})

	log := rec.Log()
	if log.Ticks != 100 {
		t.Fatalf("expected 100 ticks, got %d", log.Ticks)
	}
	want := []Entry{{Tick: 0, Command: sim.CommandRight, Repeat: 99}}
	if !reflect.DeepEqual(log.Entries, want) {
		t.Fatalf("expected %v, got %v", want, log.Entries)
	}

	t.Run("gap_breaks_run", func(t *testing.T) {
		rec := NewRecorder("level1")
		drive(newSession(t), rec, 5, func(f int) []sim.Command {
			if f == 2 {
				return nil
			}
			return []sim.Command{sim.CommandLeft}
		})
		want := []Entry{
			{Tick: 0, Command: sim.CommandLeft, Repeat: 1},
			{Tick: 3, Command: sim.CommandLeft, Repeat: 1},
		}
		if got := rec.Log().Entries; !reflect.DeepEqual(got, want) {
			t.Fatalf("expected %v, got %v", want, got)
		}
	})

	t.Run("jump_not_collapsed", func(t *testing.T) {
		rec := NewRecorder("level1")
		drive(newSession(t), rec, 3, func(int) []sim.Command {
			return []sim.Command{sim.CommandJump}
		})
		if got := len(rec.Log().Entries); got != 3 {
			t.Fatalf("expected 3 jump entries, got %d", got)
		}
	})
}

func TestLogSkipsOpenFrame(t *testing.T) {
	rec := NewRecorder("level1")
	rec.Record(sim.CommandRight)
	rec.Advance()
	rec.Record(sim.CommandRight)
	rec.Record(sim.CommandJump)

	log := rec.Log()
	want := []Entry{{Tick: 0, Command: sim.CommandRight}}
	if !reflect.DeepEqual(log.Entries, want) {
		t.Fatalf("expected %v, got %v", want, log.Entries)
	}
	if rec.Ticks() != 1 {
		t.Fatalf("expected 1 closed frame, got %d", rec.Ticks())
	}
}

func TestCommandsForTick(t *testing.T) {
	log := Log{
		Ticks: 10,
		Entries: []Entry{
			{Tick: 2, Command: sim.CommandRight, Repeat: 3},
			{Tick: 4, Command: sim.CommandJump},
			{Tick: 6, Command: sim.CommandStop},
		},
	}
	cases := []struct {
		tick uint64
		want []sim.Command
	}{
		{1, nil},
		{2, []sim.Command{sim.CommandRight}},
		{4, []sim.Command{sim.CommandRight, sim.CommandJump}},
		{5, []sim.Command{sim.CommandRight}},
		{6, []sim.Command{sim.CommandStop}},
	}
	pb := NewPlayback(log)
	for f := uint64(0); !pb.Done(); f++ {
		got := pb.Next()
		if want := log.CommandsForTick(f); !reflect.DeepEqual(got, want) {
			t.Fatalf("frame %d: playback %v, log %v", f, got, want)
		}
	}
	for _, c := range cases {
		if got := log.CommandsForTick(c.tick); !reflect.DeepEqual(got, c.want) {
			t.Fatalf("tick %d: expected %v, got %v", c.tick, c.want, got)
		}
	}
}

func TestEncodeDecode(t *testing.T) {
	rec := NewRecorder("level1")
	drive(newSession(t), rec, 200, hostScript)
	log := rec.Log()

	var buf bytes.Buffer
	if err := Encode(&buf, log); err != nil {
		t.Fatalf("Encode: %v", err)
	}
	got, err := Decode(&buf)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if !reflect.DeepEqual(log, got) {
		t.Fatalf("decoded log mismatch:\nwant %+v\ngot  %+v", log, got)
	}

	path := filepath.Join(t.TempDir(), "run.yaml")
	if err := Save(path, log); err != nil {
		t.Fatalf("Save: %v", err)
	}
	loaded, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	if !reflect.DeepEqual(log, loaded) {
		t.Fatalf("loaded log mismatch")
	}
}

func TestDecodeRejects(t *testing.T) {
	cases := []struct {
		name string
		doc  string
		want string
	}{
		{"unknown_command", "ticks: 5\nentries:\n  - {tick: 1, command: fly}\n", "unknown command"},
		{"past_end", "ticks: 5\nentries:\n  - {tick: 4, command: left, repeat: 2}\n", "past end"},
		{"out_of_order", "ticks: 5\nentries:\n  - {tick: 3, command: left}\n  - {tick: 1, command: jump}\n", "before"},
		{"bad_yaml", "ticks: [", "replay: decode"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			_, err := Decode(strings.NewReader(c.doc))
			if err == nil || !strings.Contains(err.Error(), c.want) {
				t.Fatalf("expected error containing %q, got %v", c.want, err)
			}
		})
	}

	if _, err := Decode(strings.NewReader("")); !errors.Is(err, ErrEmptyLog) {
		t.Fatalf("expected ErrEmptyLog, got %v", err)
	}
}
