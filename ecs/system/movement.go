package system

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/climbing/collision"
	"github.com/milk9111/climbing/common"
	"github.com/milk9111/climbing/ecs"
	"github.com/milk9111/climbing/ecs/component"
)

const (
	// movementSkin keeps the capsule just off the surfaces it rests on so
	// later sweeps do not start inside them.
	movementSkin     = 0.1
	floorProbeDepth  = 2.0
	maxSlideAttempts = 2
)

// MovementSystem integrates walking, falling and jumping for every character
// and resolves the result against the collision world.
type MovementSystem struct {
	query CollisionQuery
	dt    float64
}

func NewMovementSystem(query CollisionQuery) *MovementSystem {
	return &MovementSystem{query: query}
}

// SetTimeStep overrides the per-frame delta, which defaults to one tick.
func (s *MovementSystem) SetTimeStep(dt float64) {
	if s == nil {
		return
	}
	s.dt = dt
}

func (s *MovementSystem) Update(w *ecs.World) {
	if s == nil || w == nil {
		return
	}

	dt := s.dt
	if dt <= 0 {
		dt = 1.0 / float64(ebiten.TPS())
	}

	ecs.ForEach3(w,
		component.TransformComponent.Kind(),
		component.CharacterMovementComponent.Kind(),
		component.CapsuleComponent.Kind(),
		func(e ecs.Entity, t *component.Transform, move *component.CharacterMovement, capsule *component.Capsule) {
			s.step(t, move, capsule, dt)
		})
}

func (s *MovementSystem) step(t *component.Transform, move *component.CharacterMovement, capsule *component.Capsule, dt float64) {
	input := move.ConsumeInput()
	input[2] = 0
	if input.Len() > 1 {
		input = input.Normalize()
	}
	move.Acceleration = input.Mul(move.MaxAcceleration)

	s.checkJump(move, dt)
	if move.Falling {
		s.fall(move, input, dt)
	} else {
		s.walk(move, input, dt)
	}
	s.orient(t, move, dt)

	delta := move.Velocity.Mul(dt)
	s.moveHorizontal(t, move, capsule, mgl64.Vec3{delta.X(), delta.Y(), 0})
	s.moveVertical(t, move, capsule, delta.Z())
	if move.IsMovingOnGround() {
		s.findFloor(t, move, capsule)
	}
}

func (s *MovementSystem) checkJump(move *component.CharacterMovement, dt float64) {
	if !move.JumpPressed {
		return
	}

	maxCount := move.JumpMaxCount
	if maxCount <= 0 {
		maxCount = 1
	}

	if move.WasJumping && move.JumpKeyHoldTime < move.JumpMaxHoldTime {
		move.JumpKeyHoldTime += dt
		move.Velocity[2] = move.JumpZVelocity
		return
	}

	if !move.Falling && move.JumpCurrentCount < maxCount {
		move.Velocity[2] = move.JumpZVelocity
		move.Falling = true
		move.JumpCurrentCount++
		move.WasJumping = true
	}

	if move.JumpKeyHoldTime >= move.JumpMaxHoldTime {
		move.JumpPressed = false
		move.WasJumping = false
	}
}

// walk applies ground friction, acceleration and braking to the horizontal
// velocity.
func (s *MovementSystem) walk(move *component.CharacterMovement, input mgl64.Vec3, dt float64) {
	v := mgl64.Vec3{move.Velocity.X(), move.Velocity.Y(), 0}

	if input.Len() == 0 {
		move.Velocity = brake(v, move.BrakingDecelerationWalking, move.GroundFriction, dt)
		return
	}

	maxSpeed := math.Max(move.MaxWalkSpeed*input.Len(), move.MinAnalogWalkSpeed)
	dir := input.Normalize()
	speed := v.Len()
	friction := math.Min(dt*move.GroundFriction, 1)
	v = v.Sub(v.Sub(dir.Mul(speed)).Mul(friction))
	v = v.Add(move.Acceleration.Mul(dt))
	if v.Len() > maxSpeed {
		v = v.Normalize().Mul(maxSpeed)
	}
	move.Velocity = v
}

func (s *MovementSystem) fall(move *component.CharacterMovement, input mgl64.Vec3, dt float64) {
	v := mgl64.Vec3{move.Velocity.X(), move.Velocity.Y(), 0}
	before := v.Len()

	v = v.Add(move.Acceleration.Mul(move.AirControl * dt))
	if limit := math.Max(before, move.MaxWalkSpeed); v.Len() > limit {
		v = v.Normalize().Mul(limit)
	}
	move.Velocity = mgl64.Vec3{v.X(), v.Y(), move.Velocity.Z() + common.Gravity*dt}
}

func brake(v mgl64.Vec3, decel, friction, dt float64) mgl64.Vec3 {
	speed := v.Len()
	if speed == 0 {
		return v
	}
	drop := (decel + friction*speed) * dt
	if drop >= speed {
		return mgl64.Vec3{}
	}
	return v.Mul((speed - drop) / speed)
}

func (s *MovementSystem) orient(t *component.Transform, move *component.CharacterMovement, dt float64) {
	if !move.OrientRotationToMovement || move.Acceleration.Len() == 0 {
		return
	}
	target := common.RotFromX(move.Acceleration).Yaw
	t.Rotation.Yaw = common.FixedInterpConstantTo(t.Rotation.Yaw, target, dt, move.RotationRate.Yaw)
}

func (s *MovementSystem) moveHorizontal(t *component.Transform, move *component.CharacterMovement, capsule *component.Capsule, delta mgl64.Vec3) {
	for i := 0; i < maxSlideAttempts && delta.Len() > 0; i++ {
		if s.query == nil {
			t.Position = t.Position.Add(delta)
			return
		}

		end := t.Position.Add(delta)
		hit, res := s.query.CapsuleTraceSingleByProfile(s.pawnQuery(t.Position, end, capsule))
		if !hit || res.StartPenetrating {
			t.Position = end
			return
		}

		dir := delta.Normalize()
		travel := math.Max(res.Distance-movementSkin, 0)
		t.Position = t.Position.Add(dir.Mul(travel))

		n := res.ImpactNormal
		n[2] = 0
		if n.Len() == 0 {
			return
		}
		n = n.Normalize()
		if into := move.Velocity.Dot(n); into < 0 {
			move.Velocity = move.Velocity.Sub(n.Mul(into))
		}
		remaining := delta.Mul(1 - res.Time)
		delta = remaining.Sub(n.Mul(remaining.Dot(n)))
	}
}

func (s *MovementSystem) moveVertical(t *component.Transform, move *component.CharacterMovement, capsule *component.Capsule, dz float64) {
	if dz == 0 {
		return
	}

	end := t.Position.Add(mgl64.Vec3{0, 0, dz})
	if s.query == nil {
		t.Position = end
		return
	}

	hit, res := s.query.CapsuleTraceSingleByProfile(s.pawnQuery(t.Position, end, capsule))
	if !hit || res.StartPenetrating {
		t.Position = end
		return
	}

	if dz < 0 {
		t.Position[2] = res.Location.Z() + movementSkin
		land(move)
		return
	}
	t.Position[2] = res.Location.Z() - movementSkin
	move.Velocity[2] = 0
}

// findFloor keeps a walking character on the ground and starts a fall when
// the floor disappears.
func (s *MovementSystem) findFloor(t *component.Transform, move *component.CharacterMovement, capsule *component.Capsule) {
	if s.query == nil {
		return
	}

	end := t.Position.Sub(mgl64.Vec3{0, 0, floorProbeDepth})
	hit, res := s.query.CapsuleTraceSingleByProfile(s.pawnQuery(t.Position, end, capsule))
	if !hit {
		move.Falling = true
		return
	}
	if !res.StartPenetrating {
		t.Position[2] = res.Location.Z() + movementSkin
	}
	move.Velocity[2] = 0
}

func land(move *component.CharacterMovement) {
	move.Falling = false
	move.Velocity[2] = 0
	move.JumpCurrentCount = 0
}

func (s *MovementSystem) pawnQuery(start, end mgl64.Vec3, capsule *component.Capsule) collision.TraceQuery {
	return collision.CapsuleQuery(start, end, capsule.Radius, capsule.HalfHeight, collision.ProfilePawn)
}
