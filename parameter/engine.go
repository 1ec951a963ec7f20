package parameter

import "time"

// Host Loop Timing
const (
	// FrameUpdateInterval is the rendering frame rate interval (~60 FPS)
	FrameUpdateInterval = 16 * time.Millisecond

	// EventQueueSize is the capacity of the input event channel
	EventQueueSize = 256

	// StatsSampleInterval is how often the fps metric is recomputed
	StatsSampleInterval = time.Second
)

// Terminal cell geometry in surface units
// A cell maps to one raster column and two raster rows (half-block)
const (
	CellWidthUnits  = 8
	CellHeightUnits = 16
)

// Contact form
const (
	// BannerHideDelay is how long a success banner stays visible
	BannerHideDelay = 5 * time.Second

	DefaultSendingText    = "Sending..."
	DefaultSuccessMessage = "Message sent successfully!"
	FailureMessage        = "Failed to send message. Please try again later."

	SuccessGlyph = "✓"
	FailureGlyph = "❌"
)
