package component

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/milk9111/climbing/collision"
)

// LedgeFinder is the marker the vertical ledge trace is anchored at. Offset
// is relative to the owner's position and rotates with its yaw.
type LedgeFinder struct {
	Offset mgl64.Vec3
}

var LedgeFinderComponent = NewComponent[LedgeFinder]()

// LedgeDetection is recomputed every frame from the latest pair of traces.
// Height keeps the last detected value when detection fails.
type LedgeDetection struct {
	Detected bool
	Height   float64
	// LastDetectedFrame is the frame Height was written, zero if never.
	LastDetectedFrame uint64

	CapsuleHit collision.TraceResult
	LineHit    collision.TraceResult
	// ImpactYaw is the yaw of the capsule impact normal, zero on a miss.
	ImpactYaw float64
}

var LedgeDetectionComponent = NewComponent[LedgeDetection]()
