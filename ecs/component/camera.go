package component

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/milk9111/climbing/common"
)

// CameraBoom keeps the follow camera at a fixed distance behind its owner and
// pulls in when something blocks the arm.
type CameraBoom struct {
	TargetArmLength        float64
	SocketOffset           mgl64.Vec3
	TargetOffset           mgl64.Vec3
	UsePawnControlRotation bool
	DoCollisionTest        bool
	ProbeChannel           string

	ArmLength float64
	Origin    mgl64.Vec3
	Rotation  common.Rotator
}

var CameraBoomComponent = NewComponent[CameraBoom]()

type FollowCamera struct {
	FieldOfView            float64
	UsePawnControlRotation bool

	Position mgl64.Vec3
	Rotation common.Rotator
}

var FollowCameraComponent = NewComponent[FollowCamera]()
