package common

import (
	"testing"

	"github.com/go-gl/mathgl/mgl64"
)

func TestNormalizeAxis(t *testing.T) {
	tests := []struct {
		in, want float64
	}{
		{0, 0},
		{180, 180},
		{-180, 180},
		{190, -170},
		{-190, 170},
		{720, 0},
	}

	for _, tc := range tests {
		if got := NormalizeAxis(tc.in); !mgl64.FloatEqual(got, tc.want) {
			t.Errorf("NormalizeAxis(%v) = %v, want %v", tc.in, got, tc.want)
		}
	}
}

func TestFixedInterpConstantTo(t *testing.T) {
	tests := []struct {
		name                       string
		current, target, dt, speed float64
		want                       float64
	}{
		{name: "steps toward target", current: 0, target: 90, dt: 0.5, speed: 100, want: 50},
		{name: "snaps when close", current: 80, target: 90, dt: 0.5, speed: 100, want: 90},
		{name: "short way around", current: 170, target: -170, dt: 0.1, speed: 100, want: 180},
		{name: "zero speed snaps", current: 10, target: 40, dt: 0.1, speed: 0, want: 40},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := FixedInterpConstantTo(tc.current, tc.target, tc.dt, tc.speed)
			if !mgl64.FloatEqual(got, tc.want) {
				t.Fatalf("got %v, want %v", got, tc.want)
			}
		})
	}
}

func TestRotatorAxes(t *testing.T) {
	tests := []struct {
		name    string
		rot     Rotator
		forward mgl64.Vec3
		right   mgl64.Vec3
		up      mgl64.Vec3
	}{
		{name: "identity", forward: AxisX, right: AxisY, up: AxisZ},
		{name: "yaw 90", rot: Rotator{Yaw: 90}, forward: AxisY, right: mgl64.Vec3{-1, 0, 0}, up: AxisZ},
		{name: "pitch up", rot: Rotator{Pitch: 90}, forward: AxisZ, right: AxisY, up: mgl64.Vec3{-1, 0, 0}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.rot.Forward(); !got.ApproxEqualThreshold(tc.forward, 1e-6) {
				t.Fatalf("Forward = %v, want %v", got, tc.forward)
			}
			if got := tc.rot.Right(); !got.ApproxEqualThreshold(tc.right, 1e-6) {
				t.Fatalf("Right = %v, want %v", got, tc.right)
			}
			if got := tc.rot.UnitAxis(AxisZ); !got.ApproxEqualThreshold(tc.up, 1e-6) {
				t.Fatalf("Up = %v, want %v", got, tc.up)
			}
		})
	}
}

func TestRotFromX(t *testing.T) {
	got := RotFromX(mgl64.Vec3{0, -2, 0})
	if !mgl64.FloatEqual(got.Yaw, -90) || !mgl64.FloatEqual(got.Pitch, 0) {
		t.Fatalf("RotFromX = %+v", got)
	}
	if RotFromX(mgl64.Vec3{}) != (Rotator{}) {
		t.Fatalf("zero direction should give a zero rotator")
	}
}
