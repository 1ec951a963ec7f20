package parameter

import "time"

// Audio Hardware Settings
const (
	AudioSampleRate = 48000

	// AudioBufferDuration determines speaker latency
	AudioBufferDuration = 100 * time.Millisecond
)

// Success chime: two rising sine notes
const (
	ChimeLowFreq      = 660.0
	ChimeHighFreq     = 990.0
	ChimeNoteDuration = 120 * time.Millisecond
	ChimeVolume       = 0.25
)

// Failure buzz: fundamental plus second harmonic, faded in
const (
	BuzzFreq     = 120.0
	BuzzDuration = 250 * time.Millisecond
	BuzzFadeIn   = 20 * time.Millisecond
	BuzzVolume   = 0.2
)
