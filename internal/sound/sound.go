// Package sound plays short synthesized effects for game events.
package sound

import (
	"math"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/speaker"
)

// SampleRate is the output rate of every effect.
const SampleRate = beep.SampleRate(44100)

// Player plays game sound effects. Implementations must be safe to call
// from the UI goroutine and must never block.
type Player interface {
	Hit(combo int)
	Rug()
	TimeUp()
	Close()
}

// Nop is a Player that stays silent.
type Nop struct{}

func (Nop) Hit(int) {}
func (Nop) Rug()    {}
func (Nop) TimeUp() {}
func (Nop) Close()  {}

// Speaker plays effects on the default audio device.
type Speaker struct {
	mu          sync.Mutex
	mixer       *beep.Mixer
	volume      float64
	initialized bool
}

// NewSpeaker opens the audio device. volume is linear, 0 to 1.
func NewSpeaker(volume float64) (*Speaker, error) {
	if err := speaker.Init(SampleRate, SampleRate.N(100*time.Millisecond)); err != nil {
		return nil, err
	}
	s := &Speaker{
		mixer:       &beep.Mixer{},
		volume:      math.Max(0, math.Min(volume, 1)),
		initialized: true,
	}
	speaker.Play(s.mixer)
	return s, nil
}

func (s *Speaker) play(st beep.Streamer) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.initialized {
		return
	}
	speaker.Lock()
	s.mixer.Add(withVolume(st, s.volume))
	speaker.Unlock()
}

// Hit plays a blip that rises in pitch with the combo.
func (s *Speaker) Hit(combo int) { s.play(HitSound(combo)) }

// Rug plays a falling buzz.
func (s *Speaker) Rug() { s.play(RugSound()) }

// TimeUp plays a two-note chime.
func (s *Speaker) TimeUp() { s.play(TimeUpSound()) }

// Close silences and releases the audio device.
func (s *Speaker) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.initialized {
		return
	}
	speaker.Clear()
	speaker.Close()
	s.initialized = false
}

// HitSound is a short sine blip, a semitone higher per combo step.
func HitSound(combo int) beep.Streamer {
	combo = max(1, min(combo, 10))
	freq := 660 * math.Pow(2, float64(combo-1)/12)
	d := 70 * time.Millisecond
	osc := NewOscillator(freq, d, WaveSine, SampleRate)
	return NewEnvelope(osc, d, 5*time.Millisecond, 40*time.Millisecond, SampleRate)
}

// RugSound is a descending saw buzz over a burst of noise.
func RugSound() beep.Streamer {
	d := 400 * time.Millisecond
	sweep := NewSweep(220, 55, d, WaveSaw, SampleRate)
	noise := NewOscillator(0, 150*time.Millisecond, WaveNoise, SampleRate)
	return beep.Mix(
		withVolume(NewEnvelope(sweep, d, 10*time.Millisecond, 200*time.Millisecond, SampleRate), 0.6),
		withVolume(NewEnvelope(noise, 150*time.Millisecond, 2*time.Millisecond, 120*time.Millisecond, SampleRate), 0.3),
	)
}

// TimeUpSound is two sine notes, a fifth apart.
func TimeUpSound() beep.Streamer {
	d := 150 * time.Millisecond
	first := NewEnvelope(NewOscillator(880, d, WaveSine, SampleRate), d, 5*time.Millisecond, 80*time.Millisecond, SampleRate)
	second := NewEnvelope(NewOscillator(1320, 2*d, WaveSine, SampleRate), 2*d, 5*time.Millisecond, 200*time.Millisecond, SampleRate)
	return beep.Seq(first, second)
}

// withVolume scales st linearly; 0 or less is silent.
func withVolume(st beep.Streamer, vol float64) beep.Streamer {
	if vol <= 0 {
		return &effects.Volume{Streamer: st, Base: 2, Volume: 0, Silent: true}
	}
	return &effects.Volume{Streamer: st, Base: 2, Volume: math.Log2(vol)}
}
