package system

import (
	"fmt"
	"image/color"
	"time"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/milk9111/climbing/collision"
	"github.com/milk9111/climbing/common"
	"github.com/milk9111/climbing/ecs"
	"github.com/milk9111/climbing/ecs/component"
)

const (
	ledgeTraceHeight       = 50.0
	ledgeTraceReach        = 33.0
	ledgeCapsuleRadius     = 22.0
	ledgeCapsuleHalfHeight = 100.0
	ledgeVerticalHeight    = 80.0

	ledgeHitMessageDuration    = time.Second
	ledgeHeightMessageDuration = time.Millisecond
)

var (
	ledgeHitColor    = color.RGBA{R: 0, G: 0, B: 255, A: 255}
	ledgeHeightColor = color.RGBA{R: 0, G: 255, B: 255, A: 255}
)

// CollisionQuery is the part of the collision world the gameplay systems
// trace against.
type CollisionQuery interface {
	CapsuleTraceSingleByProfile(q collision.TraceQuery) (bool, collision.TraceResult)
	LineTraceSingleByProfile(q collision.TraceQuery) (bool, collision.TraceResult)
}

// Diagnostics receives on-screen debug messages. A negative key always adds a
// new message; any other key replaces the message with the same key.
type Diagnostics interface {
	AddMessage(key int, duration time.Duration, clr color.Color, text string)
}

// LedgeDetector looks for a climbable ledge in front of a character with a
// capsule sweep followed by a vertical line trace at the ledge finder.
type LedgeDetector struct {
	query CollisionQuery
	diag  Diagnostics

	Profile   string
	DrawDebug bool
	// Ignore lists collider names both traces skip, usually the owner.
	Ignore []string
}

func NewLedgeDetector(query CollisionQuery, diag Diagnostics) *LedgeDetector {
	return &LedgeDetector{
		query:   query,
		diag:    diag,
		Profile: collision.ProfileLedge,
	}
}

// TraceForLedge sweeps a tall capsule a short distance forward from origin.
// The returned yaw faces along the impact normal.
func (d *LedgeDetector) TraceForLedge(origin, forward mgl64.Vec3) (bool, collision.TraceResult, float64) {
	if d == nil || d.query == nil {
		return false, collision.TraceResult{}, 0
	}

	lift := mgl64.Vec3{0, 0, ledgeTraceHeight}
	start := origin.Add(lift)
	end := origin.Add(forward.Mul(ledgeTraceReach)).Add(lift)

	q := collision.CapsuleQuery(start, end, ledgeCapsuleRadius, ledgeCapsuleHalfHeight, d.Profile)
	q.Ignore = d.Ignore
	q.DrawDebug = d.drawDebug()

	hit, res := d.query.CapsuleTraceSingleByProfile(q)
	if !hit {
		return false, res, 0
	}

	d.addMessage(-1, ledgeHitMessageDuration, ledgeHitColor, fmt.Sprintf("Capsule hit %s!", res.Actor))
	return true, res, common.RotFromX(res.ImpactNormal).Yaw
}

// VerticalTrace drops a line onto anchor from above to find the ledge top.
func (d *LedgeDetector) VerticalTrace(anchor mgl64.Vec3) (bool, collision.TraceResult) {
	if d == nil || d.query == nil {
		return false, collision.TraceResult{}
	}

	start := anchor.Add(mgl64.Vec3{0, 0, ledgeVerticalHeight})
	q := collision.LineQuery(start, anchor, d.Profile)
	q.Ignore = d.Ignore
	q.DrawDebug = d.drawDebug()

	hit, res := d.query.LineTraceSingleByProfile(q)
	if !hit {
		return false, res
	}

	d.addMessage(-1, ledgeHitMessageDuration, ledgeHitColor, fmt.Sprintf("Line hit %s!", res.Actor))
	return true, res
}

// Detect runs both traces in order and rewrites state. Height is only
// written when both traces hit.
func (d *LedgeDetector) Detect(state *component.LedgeDetection, origin, forward, anchor mgl64.Vec3, frame uint64) {
	if d == nil || state == nil {
		return
	}

	state.Detected = false
	state.LineHit = collision.TraceResult{}
	state.ImpactYaw = 0

	capsuleHit, capsuleRes, yaw := d.TraceForLedge(origin, forward)
	state.CapsuleHit = capsuleRes
	if capsuleHit {
		state.ImpactYaw = yaw
		if lineHit, lineRes := d.VerticalTrace(anchor); lineHit {
			state.LineHit = lineRes
			state.Detected = true
			state.Height = lineRes.ImpactPoint.Z()
			state.LastDetectedFrame = frame
		} else {
			state.LineHit = lineRes
		}
	}

	d.addMessage(-1, ledgeHeightMessageDuration, ledgeHeightColor, fmt.Sprintf("LedgeHeightLocation: %f", state.Height))
}

func (d *LedgeDetector) drawDebug() collision.DrawDebugTrace {
	if d.DrawDebug {
		return collision.DrawDebugForOneFrame
	}
	return collision.DrawDebugNone
}

func (d *LedgeDetector) addMessage(key int, duration time.Duration, clr color.Color, text string) {
	if d.diag == nil {
		return
	}
	d.diag.AddMessage(key, duration, clr, text)
}

// LedgeDetectionSystem runs the detector every frame for every entity with a
// ledge finder.
type LedgeDetectionSystem struct {
	detector *LedgeDetector
	frame    uint64
}

func NewLedgeDetectionSystem(detector *LedgeDetector) *LedgeDetectionSystem {
	return &LedgeDetectionSystem{detector: detector}
}

func (s *LedgeDetectionSystem) Update(w *ecs.World) {
	if s == nil || s.detector == nil || w == nil {
		return
	}
	s.frame++

	ecs.ForEach3(w,
		component.TransformComponent.Kind(),
		component.LedgeFinderComponent.Kind(),
		component.LedgeDetectionComponent.Kind(),
		func(e ecs.Entity, t *component.Transform, finder *component.LedgeFinder, state *component.LedgeDetection) {
			s.detector.Detect(state, t.Position, t.Forward(), ledgeAnchor(t, finder), s.frame)
		})
}

func LedgeAnchor(w *ecs.World, e ecs.Entity) (mgl64.Vec3, bool) {
	t, ok := ecs.Get(w, e, component.TransformComponent.Kind())
	if !ok {
		return mgl64.Vec3{}, false
	}
	finder, ok := ecs.Get(w, e, component.LedgeFinderComponent.Kind())
	if !ok {
		return mgl64.Vec3{}, false
	}
	return ledgeAnchor(t, finder), true
}

func ledgeAnchor(t *component.Transform, finder *component.LedgeFinder) mgl64.Vec3 {
	return t.Position.Add(t.Rotation.YawOnly().Matrix().Mul3x1(finder.Offset))
}
