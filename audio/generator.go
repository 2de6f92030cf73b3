package audio

import (
	"math"
	"time"

	"github.com/gopxl/beep"
)

const (
	squeakAmplitude = 0.25
	squeakStartHz   = 900
	squeakEndHz     = 2400

	popAmplitude = 0.35
	popToneHz    = 320

	jingleAmplitude = 0.2
)

// Jingle notes in Hz, C major arpeggio ending an octave up
var jingleNotes = []float64{523.25, 659.25, 783.99, 1046.50}

// SqueakGenerator is a sine chirp sweeping upward with a fast attack
type SqueakGenerator struct {
	sr       beep.SampleRate
	pos      int
	phase    float64
	duration int
}

// NewSqueakGenerator creates a squeak generator
func NewSqueakGenerator(sr beep.SampleRate) *SqueakGenerator {
	return &SqueakGenerator{
		sr:       sr,
		duration: sr.N(squeakDurationMs * time.Millisecond),
	}
}

func (g *SqueakGenerator) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		progress := math.Min(float64(g.pos)/float64(g.duration), 1)
		freq := squeakStartHz + (squeakEndHz-squeakStartHz)*progress*progress

		// Integrate frequency into phase so the sweep has no clicks
		g.phase += 2 * math.Pi * freq / float64(g.sr)

		attack := math.Min(float64(g.pos)/float64(g.sr.N(5*time.Millisecond)), 1)
		sample := squeakAmplitude * attack * (1 - progress) * math.Sin(g.phase)

		samples[i][0] = sample
		samples[i][1] = sample
		g.pos++
	}
	return len(samples), true
}

func (g *SqueakGenerator) Err() error {
	return nil
}

// PopGenerator is a short decaying tone mixed with noise
type PopGenerator struct {
	sr   beep.SampleRate
	pos  int
	seed int64
}

// NewPopGenerator creates a pop generator, seed drives the noise component
func NewPopGenerator(sr beep.SampleRate, seed int64) *PopGenerator {
	return &PopGenerator{sr: sr, seed: seed}
}

func (g *PopGenerator) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		t := float64(g.pos) / float64(g.sr)
		envelope := math.Exp(-t * 60)

		g.seed = (g.seed*1103515245 + 12345) & 0x7fffffff
		noise := float64(g.seed)/float64(0x7fffffff)*2 - 1

		sample := popAmplitude * envelope * (0.6*math.Sin(2*math.Pi*popToneHz*t) + 0.4*noise)

		samples[i][0] = sample
		samples[i][1] = sample
		g.pos++
	}
	return len(samples), true
}

func (g *PopGenerator) Err() error {
	return nil
}

// ToneGenerator is a plain sine with a linear release over its length
type ToneGenerator struct {
	sr     beep.SampleRate
	freq   float64
	pos    int
	length int
}

// NewToneGenerator creates a tone of freq Hz fading out over d
func NewToneGenerator(sr beep.SampleRate, freq float64, d time.Duration) *ToneGenerator {
	return &ToneGenerator{sr: sr, freq: freq, length: sr.N(d)}
}

func (g *ToneGenerator) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		t := float64(g.pos) / float64(g.sr)
		release := math.Max(1-float64(g.pos)/float64(g.length), 0)
		sample := jingleAmplitude * release * math.Sin(2*math.Pi*g.freq*t)

		samples[i][0] = sample
		samples[i][1] = sample
		g.pos++
	}
	return len(samples), true
}

func (g *ToneGenerator) Err() error {
	return nil
}

// NewJingle sequences the jingle notes back to back
func NewJingle(sr beep.SampleRate) beep.Streamer {
	d := jingleNoteDurationMs * time.Millisecond
	notes := make([]beep.Streamer, 0, len(jingleNotes))
	for _, f := range jingleNotes {
		notes = append(notes, beep.Take(sr.N(d), NewToneGenerator(sr, f, d)))
	}
	return beep.Seq(notes...)
}
