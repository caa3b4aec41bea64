package system

import (
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/milk9111/climbing/collision"
	"github.com/milk9111/climbing/common"
	"github.com/milk9111/climbing/ecs"
	"github.com/milk9111/climbing/ecs/component"
)

func testMovement() *component.CharacterMovement {
	return &component.CharacterMovement{
		MaxWalkSpeed:               500,
		MinAnalogWalkSpeed:         20,
		MaxAcceleration:            1500,
		BrakingDecelerationWalking: 2000,
		GroundFriction:             8,
		JumpZVelocity:              700,
		JumpMaxCount:               1,
		AirControl:                 0.35,
		RotationRate:               common.Rotator{Yaw: 500},
		OrientRotationToMovement:   true,
	}
}

func newMovementWorld(t *testing.T, colliders ...collision.Collider) *collision.World {
	t.Helper()
	world := collision.NewWorld(nil)
	for _, c := range colliders {
		if err := world.AddCollider(c); err != nil {
			t.Fatalf("AddCollider(%s): %v", c.Name, err)
		}
	}
	return world
}

func floorCollider() collision.Collider {
	return collision.Collider{
		Name:        "Floor",
		Center:      mgl64.Vec3{0, 0, -10},
		HalfExtents: mgl64.Vec3{1000, 1000, 10},
		Profiles:    []string{collision.ProfileBlockAll, collision.ProfilePawn, collision.ProfileCamera},
	}
}

func newMovingCharacter(t *testing.T, w *ecs.World, pos mgl64.Vec3, falling bool) (*component.Transform, *component.CharacterMovement) {
	t.Helper()
	e := ecs.CreateEntity(w)
	transform := &component.Transform{Position: pos}
	move := testMovement()
	move.Falling = falling
	if err := ecs.Add(w, e, component.TransformComponent.Kind(), transform); err != nil {
		t.Fatalf("add transform: %v", err)
	}
	if err := ecs.Add(w, e, component.CharacterMovementComponent.Kind(), move); err != nil {
		t.Fatalf("add movement: %v", err)
	}
	if err := ecs.Add(w, e, component.CapsuleComponent.Kind(), &component.Capsule{Radius: 42, HalfHeight: 96}); err != nil {
		t.Fatalf("add capsule: %v", err)
	}
	return transform, move
}

func TestMovementAcceleratesOnGround(t *testing.T) {
	w := ecs.NewWorld()
	transform, move := newMovingCharacter(t, w, mgl64.Vec3{0, 0, 96.1}, false)
	sys := NewMovementSystem(newMovementWorld(t, floorCollider()))
	sys.SetTimeStep(1.0 / 60)

	move.AddMovementInput(mgl64.Vec3{1, 0, 0}, 1)
	sys.Update(w)

	if !mgl64.FloatEqualThreshold(move.Velocity.X(), 25, 1e-9) {
		t.Fatalf("Velocity.X = %v, want 25", move.Velocity.X())
	}
	if transform.Position.X() <= 0 {
		t.Fatalf("expected character to move forward, got %v", transform.Position)
	}
	if move.Falling {
		t.Fatalf("character on the floor should not fall")
	}
	if move.PendingInput != (mgl64.Vec3{}) {
		t.Fatalf("input should be consumed")
	}
}

func TestMovementClampsToMaxWalkSpeed(t *testing.T) {
	w := ecs.NewWorld()
	_, move := newMovingCharacter(t, w, mgl64.Vec3{0, 0, 96.1}, false)
	sys := NewMovementSystem(newMovementWorld(t, floorCollider()))
	sys.SetTimeStep(1.0 / 60)

	for i := 0; i < 120; i++ {
		move.AddMovementInput(mgl64.Vec3{0, 1, 0}, 1)
		sys.Update(w)
	}

	if !mgl64.FloatEqualThreshold(move.Velocity.Len(), 500, 1e-6) {
		t.Fatalf("speed = %v, want 500", move.Velocity.Len())
	}
}

func TestMovementBrakesWithoutInput(t *testing.T) {
	w := ecs.NewWorld()
	_, move := newMovingCharacter(t, w, mgl64.Vec3{0, 0, 96.1}, false)
	move.Velocity = mgl64.Vec3{100, 0, 0}
	sys := NewMovementSystem(newMovementWorld(t, floorCollider()))
	sys.SetTimeStep(0.1)

	sys.Update(w)

	if move.Velocity != (mgl64.Vec3{}) {
		t.Fatalf("Velocity = %v, want zero", move.Velocity)
	}
}

func TestMovementFallsAndLands(t *testing.T) {
	w := ecs.NewWorld()
	transform, move := newMovingCharacter(t, w, mgl64.Vec3{0, 0, 150}, false)
	sys := NewMovementSystem(newMovementWorld(t, floorCollider()))
	sys.SetTimeStep(1.0 / 60)

	sys.Update(w)
	if !move.Falling {
		t.Fatalf("expected character without floor below to fall")
	}

	for i := 0; i < 120 && move.Falling; i++ {
		sys.Update(w)
	}

	if move.Falling {
		t.Fatalf("expected character to land")
	}
	if !mgl64.FloatEqualThreshold(transform.Position.Z(), 96.1, 1e-6) {
		t.Fatalf("Position.Z = %v, want 96.1", transform.Position.Z())
	}
	if move.Velocity.Z() != 0 {
		t.Fatalf("Velocity.Z = %v, want 0", move.Velocity.Z())
	}
}

func TestMovementJump(t *testing.T) {
	w := ecs.NewWorld()
	transform, move := newMovingCharacter(t, w, mgl64.Vec3{0, 0, 96.1}, false)
	sys := NewMovementSystem(newMovementWorld(t, floorCollider()))
	sys.SetTimeStep(1.0 / 60)

	move.Jump()
	sys.Update(w)

	if !move.Falling {
		t.Fatalf("expected jump to leave the ground")
	}
	if move.JumpCurrentCount != 1 {
		t.Fatalf("JumpCurrentCount = %d, want 1", move.JumpCurrentCount)
	}
	wantVZ := 700 + common.Gravity/60
	if !mgl64.FloatEqualThreshold(move.Velocity.Z(), wantVZ, 1e-9) {
		t.Fatalf("Velocity.Z = %v, want %v", move.Velocity.Z(), wantVZ)
	}
	if transform.Position.Z() <= 96.1 {
		t.Fatalf("expected character to rise, got z=%v", transform.Position.Z())
	}

	// A second press in the air does nothing with a single jump.
	move.Jump()
	vz := move.Velocity.Z()
	sys.Update(w)
	if move.JumpCurrentCount != 1 || move.Velocity.Z() >= vz {
		t.Fatalf("unexpected air jump: count=%d vz=%v", move.JumpCurrentCount, move.Velocity.Z())
	}
}

func TestMovementBlockedByWall(t *testing.T) {
	w := ecs.NewWorld()
	transform, move := newMovingCharacter(t, w, mgl64.Vec3{0, 0, 96.1}, false)
	wall := collision.Collider{
		Name:        "Wall",
		Center:      mgl64.Vec3{110, 0, 100},
		HalfExtents: mgl64.Vec3{10, 200, 100},
		Profiles:    []string{collision.ProfileBlockAll, collision.ProfilePawn},
	}
	sys := NewMovementSystem(newMovementWorld(t, floorCollider(), wall))
	sys.SetTimeStep(1)

	move.AddMovementInput(mgl64.Vec3{1, 0, 0}, 1)
	sys.Update(w)

	if !mgl64.FloatEqualThreshold(transform.Position.X(), 57.9, 1e-6) {
		t.Fatalf("Position.X = %v, want 57.9", transform.Position.X())
	}
	if !mgl64.FloatEqualThreshold(move.Velocity.X(), 0, 1e-9) {
		t.Fatalf("Velocity.X = %v, want 0", move.Velocity.X())
	}
}

func TestMovementOrientsToAcceleration(t *testing.T) {
	w := ecs.NewWorld()
	transform, move := newMovingCharacter(t, w, mgl64.Vec3{0, 0, 96.1}, false)
	sys := NewMovementSystem(newMovementWorld(t, floorCollider()))
	sys.SetTimeStep(0.1)

	move.AddMovementInput(mgl64.Vec3{0, 1, 0}, 1)
	sys.Update(w)

	if !mgl64.FloatEqualThreshold(transform.Rotation.Yaw, 50, 1e-9) {
		t.Fatalf("Yaw = %v, want 50", transform.Rotation.Yaw)
	}
}
