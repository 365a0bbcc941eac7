package sound

import (
	"math"
	"testing"
	"time"

	"github.com/gopxl/beep"
)

// drain streams st to the end and returns every sample.
func drain(t *testing.T, st beep.Streamer) [][2]float64 {
	t.Helper()
	var out [][2]float64
	buf := make([][2]float64, 512)
	for i := 0; i < 1000; i++ {
		n, ok := st.Stream(buf)
		out = append(out, buf[:n]...)
		if !ok {
			return out
		}
	}
	t.Fatal("stream never ended")
	return nil
}

func TestOscillatorLength(t *testing.T) {
	rate := beep.SampleRate(1000)
	osc := NewOscillator(100, 100*time.Millisecond, WaveSine, rate)

	samples := drain(t, osc)
	if len(samples) != 100 {
		t.Errorf("expected 100 samples, got %d", len(samples))
	}
	if osc.Err() != nil {
		t.Errorf("unexpected error: %v", osc.Err())
	}
}

func TestOscillatorWaves(t *testing.T) {
	rate := beep.SampleRate(8000)

	tests := []struct {
		name string
		wave WaveType
	}{
		{"sine", WaveSine},
		{"square", WaveSquare},
		{"saw", WaveSaw},
		{"noise", WaveNoise},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			for i, s := range drain(t, NewOscillator(440, 50*time.Millisecond, tc.wave, rate)) {
				if s[0] < -1 || s[0] > 1 || s[0] != s[1] {
					t.Fatalf("sample %d out of range or not mono: %v", i, s)
				}
				if tc.wave == WaveSquare && math.Abs(s[0]) != 1 {
					t.Fatalf("square sample %d = %v", i, s[0])
				}
			}
		})
	}
}

func TestEnvelopeFades(t *testing.T) {
	rate := beep.SampleRate(1000)
	osc := NewOscillator(0, 100*time.Millisecond, WaveSquare, rate)
	env := NewEnvelope(osc, 100*time.Millisecond, 10*time.Millisecond, 10*time.Millisecond, rate)

	samples := drain(t, env)
	if len(samples) != 100 {
		t.Fatalf("expected 100 samples, got %d", len(samples))
	}
	if samples[0][0] != 0 {
		t.Errorf("attack should start silent, got %v", samples[0][0])
	}
	if samples[50][0] != 1 {
		t.Errorf("sustain should be full volume, got %v", samples[50][0])
	}
	if last := samples[99][0]; last <= 0 || last > 0.2 {
		t.Errorf("release should end near silence, got %v", last)
	}
}

func TestEffectsEnd(t *testing.T) {
	tests := []struct {
		name     string
		streamer beep.Streamer
		min, max time.Duration
	}{
		{"hit", HitSound(3), 60 * time.Millisecond, 80 * time.Millisecond},
		{"rug", RugSound(), 390 * time.Millisecond, 410 * time.Millisecond},
		{"time up", TimeUpSound(), 440 * time.Millisecond, 460 * time.Millisecond},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			n := len(drain(t, tc.streamer))
			got := SampleRate.D(n)
			if got < tc.min || got > tc.max {
				t.Errorf("duration = %v, expected between %v and %v", got, tc.min, tc.max)
			}
		})
	}
}

func TestHitPitchRisesWithCombo(t *testing.T) {
	// Count zero crossings as a pitch proxy
	crossings := func(st beep.Streamer) int {
		samples := drain(t, st)
		c := 0
		for i := 1; i < len(samples); i++ {
			if (samples[i-1][0] < 0) != (samples[i][0] < 0) {
				c++
			}
		}
		return c
	}

	if low, high := crossings(HitSound(1)), crossings(HitSound(10)); high <= low {
		t.Errorf("combo 10 should sound higher than combo 1: %d <= %d crossings", high, low)
	}
}

func TestNopPlayer(t *testing.T) {
	var p Player = Nop{}
	p.Hit(5)
	p.Rug()
	p.TimeUp()
	p.Close()
}
