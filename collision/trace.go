package collision

import "github.com/go-gl/mathgl/mgl64"

type ShapeKind int

const (
	ShapeLine ShapeKind = iota
	ShapeCapsule
)

// Shape is the swept volume of a trace. Capsules are upright.
type Shape struct {
	Kind       ShapeKind
	Radius     float64
	HalfHeight float64
}

func LineShape() Shape {
	return Shape{Kind: ShapeLine}
}

func CapsuleShape(radius, halfHeight float64) Shape {
	return Shape{Kind: ShapeCapsule, Radius: radius, HalfHeight: halfHeight}
}

// extent is the half size the shape adds to a box on each axis.
func (s Shape) extent() mgl64.Vec3 {
	if s.Kind != ShapeCapsule {
		return mgl64.Vec3{}
	}
	return mgl64.Vec3{s.Radius, s.Radius, s.HalfHeight}
}

type DrawDebugTrace int

const (
	DrawDebugNone DrawDebugTrace = iota
	DrawDebugForOneFrame
)

// TraceQuery describes one sweep. It is built per call and not retained.
type TraceQuery struct {
	Start     mgl64.Vec3
	End       mgl64.Vec3
	Shape     Shape
	Profile   string
	Ignore    []string
	DrawDebug DrawDebugTrace
}

func LineQuery(start, end mgl64.Vec3, profile string) TraceQuery {
	return TraceQuery{Start: start, End: end, Shape: LineShape(), Profile: profile}
}

func CapsuleQuery(start, end mgl64.Vec3, radius, halfHeight float64, profile string) TraceQuery {
	return TraceQuery{Start: start, End: end, Shape: CapsuleShape(radius, halfHeight), Profile: profile}
}

type TraceResult struct {
	Hit bool
	// StartPenetrating is set when the trace began inside a collider.
	StartPenetrating bool
	// Time is the fraction along the trace where the hit happened.
	Time     float64
	Distance float64
	// Location is the shape center at the time of the hit.
	Location     mgl64.Vec3
	ImpactPoint  mgl64.Vec3
	ImpactNormal mgl64.Vec3
	Actor        string
	TraceStart   mgl64.Vec3
	TraceEnd     mgl64.Vec3
}

func missResult(q TraceQuery) TraceResult {
	return TraceResult{
		Time:       1,
		Distance:   q.End.Sub(q.Start).Len(),
		Location:   q.End,
		TraceStart: q.Start,
		TraceEnd:   q.End,
	}
}
