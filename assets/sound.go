package assets

import (
	"encoding/binary"
	"math"
	"sync"

	"github.com/hajimehoshi/ebiten/v2/audio"
)

const SampleRate = 44100

var (
	contextOnce  sync.Once
	audioContext *audio.Context
)

// Context returns the shared audio context. Ebiten allows only one per
// process.
func Context() *audio.Context {
	contextOnce.Do(func() {
		audioContext = audio.NewContext(SampleRate)
	})
	return audioContext
}

// Tone describes a short sine blip that fades out linearly.
type Tone struct {
	Freq     float64
	Duration float64
	Volume   float64
	// Slide moves the pitch linearly to Freq+Slide over the duration.
	Slide float64
}

var (
	JumpTone     = Tone{Freq: 440, Duration: 0.08, Volume: 0.25, Slide: 220}
	CoinTone     = Tone{Freq: 880, Duration: 0.1, Volume: 0.3, Slide: 440}
	PowerUpTone  = Tone{Freq: 520, Duration: 0.35, Volume: 0.3, Slide: 780}
	GameOverTone = Tone{Freq: 330, Duration: 0.6, Volume: 0.35, Slide: -220}
	GoalTone     = Tone{Freq: 660, Duration: 0.5, Volume: 0.3, Slide: 660}
)

// PCM renders t as 16-bit little-endian stereo, the format
// audio.Context.NewPlayerFromBytes expects.
func (t Tone) PCM(sampleRate int) []byte {
	n := int(t.Duration * float64(sampleRate))
	if n <= 0 {
		return nil
	}
	buf := make([]byte, n*4)
	phase := 0.0
	for i := 0; i < n; i++ {
		progress := float64(i) / float64(n)
		freq := t.Freq + t.Slide*progress
		phase += 2 * math.Pi * freq / float64(sampleRate)
		// Linear fade out avoids a click at the end.
		amp := t.Volume * (1 - progress)
		v := int16(math.Sin(phase) * amp * math.MaxInt16)
		binary.LittleEndian.PutUint16(buf[i*4:], uint16(v))
		binary.LittleEndian.PutUint16(buf[i*4+2:], uint16(v))
	}
	return buf
}

// Sounds caches rendered tones so each play only allocates a player.
type Sounds struct {
	ctx   *audio.Context
	mu    sync.Mutex
	cache map[Tone][]byte
}

func NewSounds() *Sounds {
	return &Sounds{ctx: Context(), cache: map[Tone][]byte{}}
}

func (s *Sounds) Play(t Tone) {
	if s == nil || s.ctx == nil {
		return
	}
	s.mu.Lock()
	pcm, ok := s.cache[t]
	if !ok {
		pcm = t.PCM(s.ctx.SampleRate())
		s.cache[t] = pcm
	}
	s.mu.Unlock()
	if len(pcm) == 0 {
		return
	}
	s.ctx.NewPlayerFromBytes(pcm).Play()
}
