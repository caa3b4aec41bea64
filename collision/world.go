package collision

import (
	"fmt"
	"log"
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/jakecoffman/cp"
)

type Collider struct {
	Name        string
	Center      mgl64.Vec3
	HalfExtents mgl64.Vec3
	// Profiles lists the trace profiles this collider blocks.
	Profiles []string
}

func (c *Collider) Bounds() AABB {
	return BoxFromCenter(c.Center, c.HalfExtents)
}

type DebugTrace struct {
	Query  TraceQuery
	Result TraceResult
}

// World answers trace queries against static colliders. Collider footprints
// live in a Chipmunk space which serves as the broadphase; the narrowphase is
// done in 3D against each candidate's box.
type World struct {
	profiles  *Profiles
	space     *cp.Space
	colliders []*Collider

	warned map[string]bool
	debug  []DebugTrace
}

// NewWorld creates an empty collision world. A nil profiles argument uses
// the built-in profiles.
func NewWorld(profiles *Profiles) *World {
	if profiles == nil {
		profiles, _ = NewProfiles()
	}
	space := cp.NewSpace()
	space.Iterations = 20
	return &World{
		profiles: profiles,
		space:    space,
		warned:   make(map[string]bool),
	}
}

func (w *World) Space() *cp.Space {
	if w == nil {
		return nil
	}
	return w.space
}

// AddCollider registers a static box. Every profile it lists must be known.
func (w *World) AddCollider(c Collider) error {
	if w == nil || w.space == nil {
		return fmt.Errorf("collision: add collider %q: nil world", c.Name)
	}
	if c.HalfExtents.X() < 0 || c.HalfExtents.Y() < 0 || c.HalfExtents.Z() < 0 {
		return fmt.Errorf("collision: add collider %q: negative extents", c.Name)
	}
	mask, err := w.profiles.Mask(c.Profiles)
	if err != nil {
		return fmt.Errorf("collision: add collider %q: %w", c.Name, err)
	}

	col := c
	col.Profiles = append([]string(nil), c.Profiles...)
	bounds := col.Bounds()

	shape := cp.NewBox2(w.space.StaticBody, cp.BB{
		L: bounds.Min.X(),
		B: bounds.Min.Y(),
		R: bounds.Max.X(),
		T: bounds.Max.Y(),
	}, 0)
	shape.Filter = cp.NewShapeFilter(cp.NO_GROUP, mask, cp.ALL_CATEGORIES)
	shape.UserData = &col
	w.space.AddShape(shape)

	w.colliders = append(w.colliders, &col)
	return nil
}

func (w *World) Colliders() []Collider {
	if w == nil {
		return nil
	}
	out := make([]Collider, 0, len(w.colliders))
	for _, c := range w.colliders {
		out = append(out, *c)
	}
	return out
}

// Trace sweeps q.Shape from q.Start to q.End and returns the closest blocking
// hit against colliders responding to q.Profile.
func (w *World) Trace(q TraceQuery) TraceResult {
	result := missResult(q)
	if w == nil || w.space == nil {
		return result
	}

	bit, ok := w.profiles.Bit(q.Profile)
	if !ok {
		if !w.warned[q.Profile] {
			w.warned[q.Profile] = true
			log.Printf("collision: trace with unknown profile %q", q.Profile)
		}
		return w.record(q, result)
	}

	ext := q.Shape.extent()
	delta := q.End.Sub(q.Start)
	bestT := math.Inf(1)

	filter := cp.NewShapeFilter(cp.NO_GROUP, cp.ALL_CATEGORIES, bit)
	w.space.BBQuery(sweepBB(q.Start, q.End, ext), filter, func(shape *cp.Shape, _ interface{}) {
		col, ok := shape.UserData.(*Collider)
		if !ok || col == nil || ignored(col.Name, q.Ignore) {
			return
		}
		box := col.Bounds()
		t, normal, hit := box.Expand(ext).segmentHit(q.Start, delta)
		if !hit || t >= bestT {
			return
		}
		bestT = t

		location := q.Start.Add(delta.Mul(t))
		result = TraceResult{
			Hit:          true,
			Time:         t,
			Distance:     delta.Len() * t,
			Location:     location,
			ImpactPoint:  box.Clamp(location),
			ImpactNormal: normal,
			Actor:        col.Name,
			TraceStart:   q.Start,
			TraceEnd:     q.End,
		}
		if normal.Len() == 0 {
			result.StartPenetrating = true
			if delta.Len() > 0 {
				result.ImpactNormal = delta.Normalize().Mul(-1)
			} else {
				result.ImpactNormal = mgl64.Vec3{0, 0, 1}
			}
			result.ImpactPoint = q.Start
		}
	}, nil)

	return w.record(q, result)
}

func (w *World) LineTraceSingleByProfile(q TraceQuery) (bool, TraceResult) {
	q.Shape = LineShape()
	res := w.Trace(q)
	return res.Hit, res
}

func (w *World) CapsuleTraceSingleByProfile(q TraceQuery) (bool, TraceResult) {
	if q.Shape.Kind != ShapeCapsule {
		q.Shape = CapsuleShape(q.Shape.Radius, q.Shape.HalfHeight)
	}
	res := w.Trace(q)
	return res.Hit, res
}

// DebugTraces returns the traces recorded since the last ClearDebugTraces.
func (w *World) DebugTraces() []DebugTrace {
	if w == nil {
		return nil
	}
	return w.debug
}

func (w *World) ClearDebugTraces() {
	if w == nil {
		return
	}
	w.debug = w.debug[:0]
}

func (w *World) record(q TraceQuery, res TraceResult) TraceResult {
	if q.DrawDebug != DrawDebugNone {
		w.debug = append(w.debug, DebugTrace{Query: q, Result: res})
	}
	return res
}

func sweepBB(start, end, ext mgl64.Vec3) cp.BB {
	return cp.BB{
		L: math.Min(start.X(), end.X()) - ext.X(),
		B: math.Min(start.Y(), end.Y()) - ext.Y(),
		R: math.Max(start.X(), end.X()) + ext.X(),
		T: math.Max(start.Y(), end.Y()) + ext.Y(),
	}
}

func ignored(name string, ignore []string) bool {
	for _, n := range ignore {
		if n == name {
			return true
		}
	}
	return false
}
