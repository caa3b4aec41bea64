package common

import "math"

// Gravity is the world Z acceleration in units per second squared.
const Gravity = -980.0

func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// NormalizeAxis wraps an angle in degrees into (-180, 180].
func NormalizeAxis(angle float64) float64 {
	angle = math.Mod(angle, 360)
	if angle <= -180 {
		angle += 360
	} else if angle > 180 {
		angle -= 360
	}
	return angle
}

// FixedInterpConstantTo moves current toward target by at most speed*dt,
// taking the short way around the circle.
func FixedInterpConstantTo(current, target, dt, speed float64) float64 {
	if speed <= 0 {
		return target
	}
	delta := NormalizeAxis(target - current)
	step := speed * dt
	if math.Abs(delta) <= step {
		return NormalizeAxis(target)
	}
	if delta < 0 {
		step = -step
	}
	return NormalizeAxis(current + step)
}
