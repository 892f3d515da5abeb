package main

import (
	"log"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/generators"
	"github.com/gopxl/beep/speaker"
	"github.com/milk9111/platformer/sim"
)

const sampleRate = beep.SampleRate(44100)

type blip struct {
	freq     float64
	duration time.Duration
}

var blips = map[sim.EventKind]blip{
	sim.EventJumped:           {freq: 440, duration: 40 * time.Millisecond},
	sim.EventCoinCollected:    {freq: 880, duration: 60 * time.Millisecond},
	sim.EventPowerUpCollected: {freq: 660, duration: 200 * time.Millisecond},
	sim.EventGameOver:         {freq: 220, duration: 400 * time.Millisecond},
	sim.EventLevelComplete:    {freq: 990, duration: 300 * time.Millisecond},
}

// sound plays a sine blip per gameplay event. A failed speaker init leaves
// it silent.
type sound struct {
	ready bool
}

func newSound(enabled bool) *sound {
	s := &sound{}
	if !enabled {
		return s
	}
	if err := speaker.Init(sampleRate, sampleRate.N(time.Second/10)); err != nil {
		log.Printf("audio initialization failed: %v", err)
		return s
	}
	s.ready = true
	return s
}

func (s *sound) event(kind sim.EventKind) {
	if !s.ready {
		return
	}
	b, ok := blips[kind]
	if !ok {
		return
	}
	sine, err := generators.SineTone(sampleRate, b.freq)
	if err != nil {
		return
	}
	speaker.Play(beep.Take(sampleRate.N(b.duration), sine))
}

func (s *sound) close() {
	if s.ready {
		speaker.Close()
	}
}
