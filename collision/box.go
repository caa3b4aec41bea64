package collision

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

const parallelEpsilon = 1e-9

// AABB is an axis-aligned box.
type AABB struct {
	Min mgl64.Vec3
	Max mgl64.Vec3
}

func BoxFromCenter(center, halfExtents mgl64.Vec3) AABB {
	return AABB{Min: center.Sub(halfExtents), Max: center.Add(halfExtents)}
}

func (b AABB) Expand(ext mgl64.Vec3) AABB {
	return AABB{Min: b.Min.Sub(ext), Max: b.Max.Add(ext)}
}

func (b AABB) Contains(p mgl64.Vec3) bool {
	for i := 0; i < 3; i++ {
		if p[i] < b.Min[i] || p[i] > b.Max[i] {
			return false
		}
	}
	return true
}

// Clamp returns the point of b closest to p.
func (b AABB) Clamp(p mgl64.Vec3) mgl64.Vec3 {
	var out mgl64.Vec3
	for i := 0; i < 3; i++ {
		out[i] = math.Max(b.Min[i], math.Min(b.Max[i], p[i]))
	}
	return out
}

// segmentHit intersects the segment start + delta*t, t in [0,1], with b using
// the slab method. normal is the outward normal of the entry face; it is zero
// when the segment starts inside b.
func (b AABB) segmentHit(start, delta mgl64.Vec3) (t float64, normal mgl64.Vec3, ok bool) {
	tmin := 0.0
	tmax := 1.0
	for i := 0; i < 3; i++ {
		if math.Abs(delta[i]) < parallelEpsilon {
			if start[i] < b.Min[i] || start[i] > b.Max[i] {
				return 0, mgl64.Vec3{}, false
			}
			continue
		}

		invD := 1.0 / delta[i]
		tEnter := (b.Min[i] - start[i]) * invD
		tExit := (b.Max[i] - start[i]) * invD
		var n mgl64.Vec3
		n[i] = -1
		if tEnter > tExit {
			tEnter, tExit = tExit, tEnter
			n[i] = 1
		}
		if tEnter > tmin {
			tmin = tEnter
			normal = n
		}
		tmax = math.Min(tmax, tExit)
		if tmin > tmax {
			return 0, mgl64.Vec3{}, false
		}
	}
	return tmin, normal, true
}
