package system

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/milk9111/climbing/common"
	"github.com/milk9111/climbing/ecs"
	"github.com/milk9111/climbing/ecs/component"
)

// Move adds movement input relative to the controller's yaw. value.Y drives
// forward and value.X drives right.
func Move(w *ecs.World, e ecs.Entity, value mgl64.Vec2) {
	ctrl, ok := ecs.Get(w, e, component.ControllerComponent.Kind())
	if !ok {
		return
	}
	move, ok := ecs.Get(w, e, component.CharacterMovementComponent.Kind())
	if !ok {
		return
	}

	yaw := ctrl.ControlRotation.YawOnly()
	move.AddMovementInput(yaw.Forward(), value.Y())
	move.AddMovementInput(yaw.Right(), value.X())
}

// Look adds value.X to the control yaw and value.Y to the control pitch.
func Look(w *ecs.World, e ecs.Entity, value mgl64.Vec2) {
	ctrl, ok := ecs.Get(w, e, component.ControllerComponent.Kind())
	if !ok {
		return
	}
	ctrl.AddYawInput(value.X())
	ctrl.AddPitchInput(value.Y())
}

func Jump(w *ecs.World, e ecs.Entity) {
	if move, ok := ecs.Get(w, e, component.CharacterMovementComponent.Kind()); ok {
		move.Jump()
	}
}

func StopJumping(w *ecs.World, e ecs.Entity) {
	if move, ok := ecs.Get(w, e, component.CharacterMovementComponent.Kind()); ok {
		move.StopJumping()
	}
}

// CharacterInputSystem turns sampled actions into character commands.
type CharacterInputSystem struct{}

func NewCharacterInputSystem() *CharacterInputSystem {
	return &CharacterInputSystem{}
}

func (s *CharacterInputSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}

	ecs.ForEach(w, component.InputComponent.Kind(), func(e ecs.Entity, in *component.Input) {
		if in.JumpTriggered {
			Jump(w, e)
		}
		if in.JumpCompleted {
			StopJumping(w, e)
		}
		if in.MoveTriggered {
			Move(w, e, in.Move)
		}
		if in.LookTriggered {
			Look(w, e, in.Look)
		}
	})
}

// ControllerSystem applies accumulated look input to the control rotation
// and copies it onto the pawn on the axes the pawn follows.
type ControllerSystem struct{}

func NewControllerSystem() *ControllerSystem {
	return &ControllerSystem{}
}

func (s *ControllerSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}

	ecs.ForEach2(w, component.ControllerComponent.Kind(), component.TransformComponent.Kind(), func(e ecs.Entity, ctrl *component.Controller, t *component.Transform) {
		applyRotationInput(ctrl)

		if ctrl.UseControllerRotationPitch {
			t.Rotation.Pitch = ctrl.ControlRotation.Pitch
		}
		if ctrl.UseControllerRotationYaw {
			t.Rotation.Yaw = ctrl.ControlRotation.Yaw
		}
		if ctrl.UseControllerRotationRoll {
			t.Rotation.Roll = ctrl.ControlRotation.Roll
		}
	})
}

func applyRotationInput(ctrl *component.Controller) {
	rot := common.Rotator{
		Pitch: ctrl.ControlRotation.Pitch + ctrl.RotationInput.Pitch,
		Yaw:   ctrl.ControlRotation.Yaw + ctrl.RotationInput.Yaw,
		Roll:  ctrl.ControlRotation.Roll + ctrl.RotationInput.Roll,
	}.Normalized()

	if ctrl.ViewPitchMin < ctrl.ViewPitchMax {
		rot.Pitch = common.Clamp(rot.Pitch, ctrl.ViewPitchMin, ctrl.ViewPitchMax)
	}
	ctrl.ControlRotation = rot
	ctrl.RotationInput = common.Rotator{}
}
