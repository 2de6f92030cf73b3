package audio

import (
	"math"
	"testing"
	"time"

	"github.com/gopxl/beep"

	"github.com/lixenwraith/ratsign/events"
	"github.com/lixenwraith/ratsign/scene"
)

// TestSoundManagerGracefulDegradation verifies cues are safe without a speaker
func TestSoundManagerGracefulDegradation(t *testing.T) {
	sm := NewSoundManager()

	defer func() {
		if r := recover(); r != nil {
			t.Errorf("cue panicked without initialization: %v", r)
		}
	}()

	sm.PlaySqueak()
	sm.PlayPop()
	sm.PlayJingle()
	sm.Cleanup()
}

// TestSoundManagerInitialization tolerates machines without an audio device
func TestSoundManagerInitialization(t *testing.T) {
	sm := NewSoundManager()

	if err := sm.Initialize(); err != nil {
		t.Logf("sound initialization failed (expected without audio device): %v", err)
		return
	}
	if err := sm.Initialize(); err != nil {
		t.Errorf("second Initialize should be a no-op, got %v", err)
	}

	sm.PlayPop()
	sm.Cleanup()
	sm.PlaySqueak()
}

// drain reads s to exhaustion and returns the sample count and peak amplitude
func drain(t *testing.T, s beep.Streamer, limit int) (int, float64) {
	t.Helper()
	buf := make([][2]float64, 512)
	total, peak := 0, 0.0
	for total < limit {
		n, ok := s.Stream(buf)
		for i := 0; i < n; i++ {
			if buf[i][0] != buf[i][1] {
				t.Fatalf("sample %d not mono: %v", total+i, buf[i])
			}
			peak = math.Max(peak, math.Abs(buf[i][0]))
		}
		total += n
		if !ok {
			break
		}
	}
	return total, peak
}

func TestGenerators(t *testing.T) {
	tests := []struct {
		name    string
		stream  beep.Streamer
		samples int
		maxPeak float64
	}{
		{
			name:    "squeak",
			stream:  beep.Take(sampleRate.N(squeakDurationMs*time.Millisecond), NewSqueakGenerator(sampleRate)),
			samples: sampleRate.N(squeakDurationMs * time.Millisecond),
			maxPeak: squeakAmplitude,
		},
		{
			name:    "pop",
			stream:  beep.Take(sampleRate.N(popDurationMs*time.Millisecond), NewPopGenerator(sampleRate, 42)),
			samples: sampleRate.N(popDurationMs * time.Millisecond),
			maxPeak: popAmplitude,
		},
		{
			name:    "jingle",
			stream:  NewJingle(sampleRate),
			samples: len(jingleNotes) * sampleRate.N(jingleNoteDurationMs*time.Millisecond),
			maxPeak: jingleAmplitude,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n, peak := drain(t, tt.stream, 10*tt.samples)
			if n != tt.samples {
				t.Errorf("length = %d samples, want %d", n, tt.samples)
			}
			if peak <= 0 {
				t.Error("generator is silent")
			}
			if peak > tt.maxPeak+1e-9 {
				t.Errorf("peak %v exceeds %v", peak, tt.maxPeak)
			}
		})
	}
}

func TestPopGenerator_Deterministic(t *testing.T) {
	a := make([][2]float64, 64)
	b := make([][2]float64, 64)
	NewPopGenerator(sampleRate, 7).Stream(a)
	NewPopGenerator(sampleRate, 7).Stream(b)
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("sample %d differs for the same seed", i)
		}
	}
}

type countingPlayer struct {
	squeaks, pops, jingles int
}

func (p *countingPlayer) PlaySqueak() { p.squeaks++ }
func (p *countingPlayer) PlayPop()    { p.pops++ }
func (p *countingPlayer) PlayJingle() { p.jingles++ }

func TestCueHandler(t *testing.T) {
	p := &countingPlayer{}
	q := events.NewEventQueue()
	r := events.NewRouter[*scene.World](q)
	r.Register(NewCueHandler(p))

	for _, typ := range []events.EventType{
		events.EventScatter,
		events.EventPiecePlaced,
		events.EventPiecePlaced,
		events.EventPieceAssigned,
		events.EventDanceStarted,
	} {
		q.Push(events.GameEvent{Type: typ})
	}
	r.DispatchAll(nil)

	if p.squeaks != 1 || p.pops != 2 || p.jingles != 1 {
		t.Errorf("got squeaks=%d pops=%d jingles=%d, want 1/2/1", p.squeaks, p.pops, p.jingles)
	}
}
