package prefabs

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/milk9111/climbing/common"
	"github.com/milk9111/climbing/input"
	"gopkg.in/yaml.v3"
)

func LoadSpec[T any](filename string) (T, error) {
	var zero T
	data, err := Load(filename)
	if err != nil {
		return zero, fmt.Errorf("prefabs: load %s: %w", filename, err)
	}

	var spec T
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return zero, fmt.Errorf("prefabs: unmarshal %s: %w", filename, err)
	}

	return spec, nil
}

type Vec3Spec struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
	Z float64 `yaml:"z"`
}

func (v Vec3Spec) Vec3() mgl64.Vec3 {
	return mgl64.Vec3{v.X, v.Y, v.Z}
}

type TransformSpec struct {
	Position Vec3Spec       `yaml:"position"`
	Rotation common.Rotator `yaml:"rotation"`
}

type CapsuleSpec struct {
	Radius     float64 `yaml:"radius"`
	HalfHeight float64 `yaml:"half_height"`
}

type MovementSpec struct {
	MaxWalkSpeed               float64        `yaml:"max_walk_speed"`
	MinAnalogWalkSpeed         float64        `yaml:"min_analog_walk_speed"`
	MaxAcceleration            float64        `yaml:"max_acceleration"`
	BrakingDecelerationWalking float64        `yaml:"braking_deceleration_walking"`
	GroundFriction             float64        `yaml:"ground_friction"`
	JumpZVelocity              float64        `yaml:"jump_z_velocity"`
	JumpMaxHoldTime            float64        `yaml:"jump_max_hold_time"`
	JumpMaxCount               int            `yaml:"jump_max_count"`
	AirControl                 float64        `yaml:"air_control"`
	RotationRate               common.Rotator `yaml:"rotation_rate"`
	OrientRotationToMovement   bool           `yaml:"orient_rotation_to_movement"`
}

type ControllerSpec struct {
	UseControllerRotationPitch bool    `yaml:"use_controller_rotation_pitch"`
	UseControllerRotationYaw   bool    `yaml:"use_controller_rotation_yaw"`
	UseControllerRotationRoll  bool    `yaml:"use_controller_rotation_roll"`
	ViewPitchMin               float64 `yaml:"view_pitch_min"`
	ViewPitchMax               float64 `yaml:"view_pitch_max"`
}

type CameraBoomSpec struct {
	TargetArmLength        float64  `yaml:"target_arm_length"`
	SocketOffset           Vec3Spec `yaml:"socket_offset"`
	TargetOffset           Vec3Spec `yaml:"target_offset"`
	UsePawnControlRotation bool     `yaml:"use_pawn_control_rotation"`
	DoCollisionTest        bool     `yaml:"do_collision_test"`
	ProbeChannel           string   `yaml:"probe_channel"`
}

type FollowCameraSpec struct {
	FieldOfView            float64 `yaml:"field_of_view"`
	UsePawnControlRotation bool    `yaml:"use_pawn_control_rotation"`
}

type LedgeFinderSpec struct {
	Offset Vec3Spec `yaml:"offset"`
}

// CharacterSpec describes a controllable character prefab.
type CharacterSpec struct {
	Name         string           `yaml:"name"`
	Transform    TransformSpec    `yaml:"transform"`
	Capsule      CapsuleSpec      `yaml:"capsule"`
	Movement     MovementSpec     `yaml:"movement"`
	Controller   ControllerSpec   `yaml:"controller"`
	CameraBoom   CameraBoomSpec   `yaml:"camera_boom"`
	FollowCamera FollowCameraSpec `yaml:"follow_camera"`
	LedgeFinder  LedgeFinderSpec  `yaml:"ledge_finder"`
}

func LoadCharacterSpec(filename string) (*CharacterSpec, error) {
	spec, err := LoadSpec[CharacterSpec](filename)
	if err != nil {
		return nil, err
	}
	return &spec, nil
}

// GameModeSpec names the pawn prefab spawned for players.
type GameModeSpec struct {
	Name           string `yaml:"name"`
	DefaultPawn    string `yaml:"default_pawn"`
	MappingContext string `yaml:"mapping_context"`
}

func LoadGameModeSpec() (*GameModeSpec, error) {
	spec, err := LoadSpec[GameModeSpec]("game_mode.yaml")
	if err != nil {
		return nil, err
	}
	return &spec, nil
}

func LoadMappingContext(filename string) (*input.MappingContext, error) {
	ctx, err := LoadSpec[input.MappingContext](filename)
	if err != nil {
		return nil, err
	}
	if err := ctx.Validate(); err != nil {
		return nil, fmt.Errorf("prefabs: %s: %w", filename, err)
	}
	return &ctx, nil
}
