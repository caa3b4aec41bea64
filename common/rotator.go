package common

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Rotator is an orientation in degrees. X is forward, Y is right and Z is up.
type Rotator struct {
	Pitch float64 `yaml:"pitch" json:"pitch"`
	Yaw   float64 `yaml:"yaw" json:"yaw"`
	Roll  float64 `yaml:"roll" json:"roll"`
}

var (
	AxisX = mgl64.Vec3{1, 0, 0}
	AxisY = mgl64.Vec3{0, 1, 0}
	AxisZ = mgl64.Vec3{0, 0, 1}
)

// YawOnly drops pitch and roll.
func (r Rotator) YawOnly() Rotator {
	return Rotator{Yaw: r.Yaw}
}

func (r Rotator) Normalized() Rotator {
	return Rotator{
		Pitch: NormalizeAxis(r.Pitch),
		Yaw:   NormalizeAxis(r.Yaw),
		Roll:  NormalizeAxis(r.Roll),
	}
}

// Matrix returns the rotation applied as roll, then pitch, then yaw.
func (r Rotator) Matrix() mgl64.Mat3 {
	yaw := mgl64.Rotate3DZ(mgl64.DegToRad(r.Yaw))
	pitch := mgl64.Rotate3DY(mgl64.DegToRad(-r.Pitch))
	roll := mgl64.Rotate3DX(mgl64.DegToRad(-r.Roll))
	return yaw.Mul3(pitch).Mul3(roll)
}

// UnitAxis returns one of the rotated basis vectors.
func (r Rotator) UnitAxis(axis mgl64.Vec3) mgl64.Vec3 {
	return r.Matrix().Mul3x1(axis).Normalize()
}

func (r Rotator) Forward() mgl64.Vec3 {
	return r.UnitAxis(AxisX)
}

func (r Rotator) Right() mgl64.Vec3 {
	return r.UnitAxis(AxisY)
}

// RotFromX builds a rotator whose forward axis points along dir.
func RotFromX(dir mgl64.Vec3) Rotator {
	if dir.Len() == 0 {
		return Rotator{}
	}
	dir = dir.Normalize()
	yaw := mgl64.RadToDeg(math.Atan2(dir.Y(), dir.X()))
	pitch := mgl64.RadToDeg(math.Atan2(dir.Z(), math.Hypot(dir.X(), dir.Y())))
	return Rotator{Pitch: pitch, Yaw: yaw}
}
