package parameter

// Population
const (
	// AreaPerNode is surface area (square units) allotted to each family node at seeding
	AreaPerNode = 12000

	// MembersMin and MembersMax bound the member count per family node, inclusive
	MembersMin = 2
	MembersMax = 5

	// MemberSpread is the fraction of the parent base radius members may sit from centre
	MemberSpread = 0.6
)

// Node geometry and motion
const (
	BaseRadiusMin   = 15.0
	BaseRadiusRange = 10.0

	MemberRadiusMin   = 2.0
	MemberRadiusRange = 3.0

	// VelocitySpread scales (rand - 0.5) into a per-axis velocity
	VelocitySpread = 0.5
)

// Hover scaling
const (
	// HoverDistance is the exclusive pointer distance under which a node enlarges
	HoverDistance = 200.0

	HoverScale  = 2.5
	RestScale   = 1.0
	ScaleEasing = 0.1

	// FigureScale is the scale above which members draw as figures and the logo appears
	FigureScale = 1.5
)

// Connections
const (
	// ConnectionDistance is independent from HoverDistance
	ConnectionDistance = 190.0
	ConnectionAlpha    = 0.4
	ConnectionWidth    = 0.5
)

// Node styling (white at fixed opacities)
const (
	NodeFillAlpha   = 0.15
	NodeBorderAlpha = 0.3
	NodeBorderWidth = 1.0
	MemberAlpha     = 0.8

	LogoAlpha      = 0.7
	LogoSizeFactor = 0.8
	LogoClipFactor = 0.9
)

// PointerSentinel is the far off-surface coordinate used when no pointer is present
const PointerSentinel = -1000.0
