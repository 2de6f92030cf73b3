package audio

import (
	"math"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/speaker"
)

const (
	sampleRate = beep.SampleRate(48000)

	speakerBufferDurationMs = 100
	squeakDurationMs        = 180
	popDurationMs           = 60
	jingleNoteDurationMs    = 140

	// Upper bound on simultaneous cues, extra cues are dropped
	maxVoices = 8
)

// SoundManager plays short procedural cues through a shared mixer
// Every method is safe to call before Initialize or after Cleanup; it silently does nothing
type SoundManager struct {
	mu          sync.Mutex
	mixer       *beep.Mixer
	master      *effects.Volume
	initialized bool
}

// NewSoundManager creates an uninitialized manager
func NewSoundManager() *SoundManager {
	mixer := &beep.Mixer{}
	return &SoundManager{
		mixer:  mixer,
		master: volume(mixer, 0.8),
	}
}

// Initialize opens the speaker, returns an error when no audio device is available
func (sm *SoundManager) Initialize() error {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if sm.initialized {
		return nil
	}

	if err := speaker.Init(sampleRate, sampleRate.N(speakerBufferDurationMs*time.Millisecond)); err != nil {
		return err
	}

	speaker.Play(sm.master)
	sm.initialized = true
	return nil
}

// Cleanup silences every pending cue
func (sm *SoundManager) Cleanup() {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if !sm.initialized {
		return
	}

	speaker.Lock()
	sm.mixer.Clear()
	speaker.Unlock()

	// beep has no speaker Close; an empty mixer keeps the device quiet
	sm.initialized = false
}

// PlaySqueak plays the startled rising chirp
func (sm *SoundManager) PlaySqueak() {
	sm.play(beep.Take(sampleRate.N(squeakDurationMs*time.Millisecond), NewSqueakGenerator(sampleRate)))
}

// PlayPop plays the click of a piece snapping into place
func (sm *SoundManager) PlayPop() {
	sm.play(beep.Take(sampleRate.N(popDurationMs*time.Millisecond), NewPopGenerator(sampleRate, time.Now().UnixNano())))
}

// PlayJingle plays the ascending arpeggio for a finished sign
func (sm *SoundManager) PlayJingle() {
	sm.play(NewJingle(sampleRate))
}

func (sm *SoundManager) play(s beep.Streamer) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if !sm.initialized {
		return
	}

	speaker.Lock()
	if sm.mixer.Len() < maxVoices {
		sm.mixer.Add(s)
	}
	speaker.Unlock()
}

// volume wraps s with a linear gain in (0, 1], 0 mutes
func volume(s beep.Streamer, gain float64) *effects.Volume {
	if gain <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(gain)}
}
