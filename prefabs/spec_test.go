package prefabs

import (
	"testing"

	"github.com/milk9111/climbing/input"
)

func TestLoadCharacterSpec(t *testing.T) {
	spec, err := LoadCharacterSpec("third_person_character.yaml")
	if err != nil {
		t.Fatalf("load character: %v", err)
	}

	checks := []struct {
		name string
		got  float64
		want float64
	}{
		{"capsule_radius", spec.Capsule.Radius, 42},
		{"capsule_half_height", spec.Capsule.HalfHeight, 96},
		{"jump_z_velocity", spec.Movement.JumpZVelocity, 700},
		{"air_control", spec.Movement.AirControl, 0.35},
		{"max_walk_speed", spec.Movement.MaxWalkSpeed, 500},
		{"min_analog_walk_speed", spec.Movement.MinAnalogWalkSpeed, 20},
		{"braking", spec.Movement.BrakingDecelerationWalking, 2000},
		{"rotation_rate_yaw", spec.Movement.RotationRate.Yaw, 500},
		{"arm_length", spec.CameraBoom.TargetArmLength, 400},
	}
	for _, c := range checks {
		t.Run(c.name, func(t *testing.T) {
			if c.got != c.want {
				t.Fatalf("expected %v, got %v", c.want, c.got)
			}
		})
	}

	if !spec.Movement.OrientRotationToMovement {
		t.Fatal("expected orient rotation to movement")
	}
	if spec.Controller.UseControllerRotationYaw || spec.Controller.UseControllerRotationPitch || spec.Controller.UseControllerRotationRoll {
		t.Fatal("character should not follow controller rotation")
	}
	if !spec.CameraBoom.UsePawnControlRotation || spec.FollowCamera.UsePawnControlRotation {
		t.Fatal("boom follows control rotation, camera does not")
	}
}

func TestLoadMappingContext(t *testing.T) {
	ctx, err := LoadMappingContext("input_mapping.yaml")
	if err != nil {
		t.Fatalf("load mapping: %v", err)
	}
	actions := map[string]input.ValueType{}
	for _, m := range ctx.Mappings {
		actions[m.Action] = m.Type
	}
	want := map[string]input.ValueType{
		input.ActionJump: input.ValueDigital,
		input.ActionMove: input.ValueAxis2D,
		input.ActionLook: input.ValueAxis2D,
	}
	for action, typ := range want {
		if actions[action] != typ {
			t.Fatalf("expected %s as %s, got %q", action, typ, actions[action])
		}
	}
}

func TestLoadGameModeSpec(t *testing.T) {
	spec, err := LoadGameModeSpec()
	if err != nil {
		t.Fatalf("load game mode: %v", err)
	}
	if !Exists(spec.DefaultPawn) {
		t.Fatalf("default pawn %q should exist", spec.DefaultPawn)
	}
	if Exists("missing_pawn.yaml") {
		t.Fatal("unexpected prefab")
	}
}

func TestLoadSpecMissing(t *testing.T) {
	if _, err := LoadCharacterSpec("nope.yaml"); err == nil {
		t.Fatal("expected error for missing prefab")
	}
}
