package component

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/milk9111/climbing/common"
)

// CharacterMovement holds walking tuning and the runtime movement state that
// the movement system integrates each frame.
type CharacterMovement struct {
	MaxWalkSpeed               float64
	MinAnalogWalkSpeed         float64
	MaxAcceleration            float64
	BrakingDecelerationWalking float64
	GroundFriction             float64
	JumpZVelocity              float64
	JumpMaxHoldTime            float64
	JumpMaxCount               int
	AirControl                 float64
	RotationRate               common.Rotator
	OrientRotationToMovement   bool

	Velocity mgl64.Vec3
	// PendingInput accumulates AddMovementInput calls until consumed.
	PendingInput mgl64.Vec3
	Acceleration mgl64.Vec3
	Falling      bool

	JumpPressed      bool
	JumpKeyHoldTime  float64
	JumpCurrentCount int
	WasJumping       bool
}

func (m *CharacterMovement) AddMovementInput(dir mgl64.Vec3, scale float64) {
	if m == nil || scale == 0 {
		return
	}
	m.PendingInput = m.PendingInput.Add(dir.Mul(scale))
}

func (m *CharacterMovement) ConsumeInput() mgl64.Vec3 {
	if m == nil {
		return mgl64.Vec3{}
	}
	in := m.PendingInput
	m.PendingInput = mgl64.Vec3{}
	return in
}

func (m *CharacterMovement) Jump() {
	if m == nil {
		return
	}
	m.JumpPressed = true
	m.JumpKeyHoldTime = 0
}

func (m *CharacterMovement) StopJumping() {
	if m == nil {
		return
	}
	m.JumpPressed = false
	m.JumpKeyHoldTime = 0
	m.WasJumping = false
}

func (m *CharacterMovement) IsMovingOnGround() bool {
	return m != nil && !m.Falling
}

var CharacterMovementComponent = NewComponent[CharacterMovement]()
