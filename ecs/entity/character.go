package entity

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/milk9111/climbing/collision"
	"github.com/milk9111/climbing/common"
	"github.com/milk9111/climbing/ecs"
	"github.com/milk9111/climbing/ecs/component"
	"github.com/milk9111/climbing/prefabs"
)

// DefaultCharacterSpec is the built-in pawn used when no character prefab is
// available.
func DefaultCharacterSpec() *prefabs.CharacterSpec {
	return &prefabs.CharacterSpec{
		Name: "DefaultCharacter",
		Transform: prefabs.TransformSpec{
			Position: prefabs.Vec3Spec{Z: 88},
		},
		Capsule: prefabs.CapsuleSpec{Radius: 34, HalfHeight: 88},
		Movement: prefabs.MovementSpec{
			MaxWalkSpeed:               600,
			MaxAcceleration:            2048,
			BrakingDecelerationWalking: 2048,
			GroundFriction:             8,
			JumpZVelocity:              420,
			JumpMaxCount:               1,
			AirControl:                 0.05,
			RotationRate:               common.Rotator{Yaw: 360},
		},
		Controller: prefabs.ControllerSpec{
			UseControllerRotationYaw: true,
			ViewPitchMin:             -89,
			ViewPitchMax:             89,
		},
		CameraBoom: prefabs.CameraBoomSpec{
			TargetArmLength:        300,
			UsePawnControlRotation: true,
			DoCollisionTest:        true,
			ProbeChannel:           collision.ProfileCamera,
		},
		FollowCamera: prefabs.FollowCameraSpec{FieldOfView: 90},
	}
}

// NewCharacter builds a character at the transform stored in its spec.
func NewCharacter(w *ecs.World, spec *prefabs.CharacterSpec, prefab string) (ecs.Entity, error) {
	if spec == nil {
		return 0, fmt.Errorf("character: nil spec")
	}
	return NewCharacterAt(w, spec, prefab, spec.Transform.Position.Vec3(), spec.Transform.Rotation)
}

// NewCharacterAt builds a controllable character: capsule, movement,
// controller, camera boom with follow camera, and ledge detection when the
// spec names a ledge finder.
func NewCharacterAt(w *ecs.World, spec *prefabs.CharacterSpec, prefab string, pos mgl64.Vec3, rot common.Rotator) (ecs.Entity, error) {
	if w == nil {
		return 0, fmt.Errorf("character: nil world")
	}
	if spec == nil {
		return 0, fmt.Errorf("character: nil spec")
	}

	e := ecs.CreateEntity(w)
	if err := addCharacterComponents(w, e, spec, prefab, pos, rot); err != nil {
		ecs.DestroyEntity(w, e)
		return 0, fmt.Errorf("character: build %s: %w", spec.Name, err)
	}
	return e, nil
}

func addCharacterComponents(w *ecs.World, e ecs.Entity, spec *prefabs.CharacterSpec, prefab string, pos mgl64.Vec3, rot common.Rotator) error {
	if err := ecs.Add(w, e, component.PlayerTagComponent.Kind(), &component.PlayerTag{}); err != nil {
		return err
	}
	if err := ecs.Add(w, e, component.PawnComponent.Kind(), &component.Pawn{Name: spec.Name, Prefab: prefab}); err != nil {
		return err
	}
	if err := ecs.Add(w, e, component.TransformComponent.Kind(), &component.Transform{Position: pos, Rotation: rot.YawOnly()}); err != nil {
		return err
	}
	if err := ecs.Add(w, e, component.CapsuleComponent.Kind(), &component.Capsule{
		Radius:     spec.Capsule.Radius,
		HalfHeight: spec.Capsule.HalfHeight,
	}); err != nil {
		return err
	}
	if err := ecs.Add(w, e, component.CharacterMovementComponent.Kind(), movementFromSpec(spec.Movement)); err != nil {
		return err
	}
	if err := ecs.Add(w, e, component.ControllerComponent.Kind(), &component.Controller{
		ControlRotation:            rot.YawOnly(),
		ViewPitchMin:               spec.Controller.ViewPitchMin,
		ViewPitchMax:               spec.Controller.ViewPitchMax,
		UseControllerRotationPitch: spec.Controller.UseControllerRotationPitch,
		UseControllerRotationYaw:   spec.Controller.UseControllerRotationYaw,
		UseControllerRotationRoll:  spec.Controller.UseControllerRotationRoll,
	}); err != nil {
		return err
	}
	if err := ecs.Add(w, e, component.InputComponent.Kind(), &component.Input{}); err != nil {
		return err
	}
	if err := ecs.Add(w, e, component.CameraBoomComponent.Kind(), &component.CameraBoom{
		TargetArmLength:        spec.CameraBoom.TargetArmLength,
		SocketOffset:           spec.CameraBoom.SocketOffset.Vec3(),
		TargetOffset:           spec.CameraBoom.TargetOffset.Vec3(),
		UsePawnControlRotation: spec.CameraBoom.UsePawnControlRotation,
		DoCollisionTest:        spec.CameraBoom.DoCollisionTest,
		ProbeChannel:           spec.CameraBoom.ProbeChannel,
		ArmLength:              spec.CameraBoom.TargetArmLength,
	}); err != nil {
		return err
	}
	if err := ecs.Add(w, e, component.FollowCameraComponent.Kind(), &component.FollowCamera{
		FieldOfView:            spec.FollowCamera.FieldOfView,
		UsePawnControlRotation: spec.FollowCamera.UsePawnControlRotation,
	}); err != nil {
		return err
	}

	return setLedgeFinder(w, e, spec.LedgeFinder.Offset.Vec3())
}

// setLedgeFinder gives the character ledge detection at offset, or takes it
// away when offset is zero.
func setLedgeFinder(w *ecs.World, e ecs.Entity, offset mgl64.Vec3) error {
	if offset.Len() == 0 {
		ecs.Remove(w, e, component.LedgeFinderComponent.Kind())
		ecs.Remove(w, e, component.LedgeDetectionComponent.Kind())
		return nil
	}

	if finder, ok := ecs.Get(w, e, component.LedgeFinderComponent.Kind()); ok {
		finder.Offset = offset
	} else if err := ecs.Add(w, e, component.LedgeFinderComponent.Kind(), &component.LedgeFinder{Offset: offset}); err != nil {
		return err
	}
	if ecs.Has(w, e, component.LedgeDetectionComponent.Kind()) {
		return nil
	}
	return ecs.Add(w, e, component.LedgeDetectionComponent.Kind(), &component.LedgeDetection{})
}

func movementFromSpec(s prefabs.MovementSpec) *component.CharacterMovement {
	return &component.CharacterMovement{
		MaxWalkSpeed:               s.MaxWalkSpeed,
		MinAnalogWalkSpeed:         s.MinAnalogWalkSpeed,
		MaxAcceleration:            s.MaxAcceleration,
		BrakingDecelerationWalking: s.BrakingDecelerationWalking,
		GroundFriction:             s.GroundFriction,
		JumpZVelocity:              s.JumpZVelocity,
		JumpMaxHoldTime:            s.JumpMaxHoldTime,
		JumpMaxCount:               s.JumpMaxCount,
		AirControl:                 s.AirControl,
		RotationRate:               s.RotationRate,
		OrientRotationToMovement:   s.OrientRotationToMovement,
	}
}

// ApplyCharacterSpec rewrites the tuning of an existing character in place,
// leaving its position and runtime state alone. Used for prefab hot reload.
func ApplyCharacterSpec(w *ecs.World, e ecs.Entity, spec *prefabs.CharacterSpec) error {
	if spec == nil {
		return fmt.Errorf("character: nil spec")
	}
	if !ecs.IsAlive(w, e) {
		return component.ErrEntityNotAlive
	}

	if capsule, ok := ecs.Get(w, e, component.CapsuleComponent.Kind()); ok {
		capsule.Radius = spec.Capsule.Radius
		capsule.HalfHeight = spec.Capsule.HalfHeight
	}
	if move, ok := ecs.Get(w, e, component.CharacterMovementComponent.Kind()); ok {
		tuned := movementFromSpec(spec.Movement)
		tuned.Velocity = move.Velocity
		tuned.Falling = move.Falling
		tuned.JumpCurrentCount = move.JumpCurrentCount
		*move = *tuned
	}
	if boom, ok := ecs.Get(w, e, component.CameraBoomComponent.Kind()); ok {
		boom.TargetArmLength = spec.CameraBoom.TargetArmLength
		boom.SocketOffset = spec.CameraBoom.SocketOffset.Vec3()
		boom.TargetOffset = spec.CameraBoom.TargetOffset.Vec3()
		boom.UsePawnControlRotation = spec.CameraBoom.UsePawnControlRotation
		boom.DoCollisionTest = spec.CameraBoom.DoCollisionTest
		boom.ProbeChannel = spec.CameraBoom.ProbeChannel
	}
	return setLedgeFinder(w, e, spec.LedgeFinder.Offset.Vec3())
}
