package audio

import (
	"fmt"
	"log"
	"sync"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/generators"
	"github.com/gopxl/beep/speaker"

	"github.com/lixenwraith/hearth/parameter"
)

const (
	sampleRate = beep.SampleRate(parameter.AudioSampleRate)
)

// ServiceName identifies audio in the service hub
const ServiceName = "audio"

// SoundManager plays short notification tones for form outcomes
// Every Play call is a no-op until Initialize succeeds, so the site runs without a device
type SoundManager struct {
	mu          sync.Mutex
	mixer       *beep.Mixer
	initialized bool
	muted       bool
}

// NewSoundManager creates a new sound manager
func NewSoundManager() *SoundManager {
	return &SoundManager{
		mixer: &beep.Mixer{},
	}
}

// Initialize sets up the audio device
func (sm *SoundManager) Initialize() error {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if sm.initialized {
		return nil
	}

	err := speaker.Init(sampleRate, sampleRate.N(parameter.AudioBufferDuration))
	if err != nil {
		return fmt.Errorf("speaker init: %w", err)
	}

	speaker.Play(sm.mixer)
	sm.initialized = true
	return nil
}

// Cleanup stops all sounds
func (sm *SoundManager) Cleanup() {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if !sm.initialized {
		return
	}

	speaker.Lock()
	sm.mixer.Clear()
	speaker.Unlock()

	// beep has no speaker Close; clearing the mixer leaves the device silent
	sm.initialized = false
}

// SetMuted toggles output without releasing the device
func (sm *SoundManager) SetMuted(muted bool) {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	sm.muted = muted
}

// Muted reports the mute state
func (sm *SoundManager) Muted() bool {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	return sm.muted
}

// play queues a streamer on the mixer if audio is live
func (sm *SoundManager) play(s beep.Streamer) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if !sm.initialized || sm.muted || s == nil {
		return
	}

	speaker.Lock()
	sm.mixer.Add(s)
	speaker.Unlock()
}

// PlaySuccess plays a two-note rising chime
func (sm *SoundManager) PlaySuccess() {
	sm.play(NewChime(sampleRate))
}

// PlayFailure plays a short low buzz
func (sm *SoundManager) PlayFailure() {
	sm.play(NewBuzz(sampleRate))
}

// NewChime builds the success chime streamer, nil if a tone cannot be generated
func NewChime(sr beep.SampleRate) beep.Streamer {
	low, err := generators.SineTone(sr, parameter.ChimeLowFreq)
	if err != nil {
		log.Printf("chime tone: %v", err)
		return nil
	}
	high, err := generators.SineTone(sr, parameter.ChimeHighFreq)
	if err != nil {
		log.Printf("chime tone: %v", err)
		return nil
	}

	n := sr.N(parameter.ChimeNoteDuration)
	notes := beep.Seq(beep.Take(n, low), beep.Take(n, high))
	return &effects.Gain{Streamer: notes, Gain: parameter.ChimeVolume - 1}
}

// NewBuzz builds the failure buzz streamer, nil if a tone cannot be generated
func NewBuzz(sr beep.SampleRate) beep.Streamer {
	fundamental, err := generators.SineTone(sr, parameter.BuzzFreq)
	if err != nil {
		log.Printf("buzz tone: %v", err)
		return nil
	}
	harmonic, err := generators.SineTone(sr, parameter.BuzzFreq*2)
	if err != nil {
		log.Printf("buzz tone: %v", err)
		return nil
	}

	n := sr.N(parameter.BuzzDuration)
	body := beep.Mix(
		beep.Take(n, &effects.Gain{Streamer: fundamental, Gain: -0.5}),
		beep.Take(n, &effects.Gain{Streamer: harmonic, Gain: -0.75}),
	)
	return &effects.Gain{
		Streamer: fadeIn(body, sr.N(parameter.BuzzFadeIn)),
		Gain:     parameter.BuzzVolume - 1,
	}
}

// fadeIn ramps amplitude linearly from zero over the first n samples
func fadeIn(s beep.Streamer, n int) beep.Streamer {
	pos := 0
	return beep.StreamerFunc(func(samples [][2]float64) (int, bool) {
		m, ok := s.Stream(samples)
		for i := range samples[:m] {
			if pos < n {
				g := float64(pos) / float64(n)
				samples[i][0] *= g
				samples[i][1] *= g
			}
			pos++
		}
		return m, ok
	})
}
