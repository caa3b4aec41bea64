package component

import "github.com/milk9111/climbing/common"

// Controller is the possessing player controller. Move and look input is
// ignored by entities without one.
type Controller struct {
	ControlRotation common.Rotator
	// RotationInput accumulates look input until the controller system
	// applies it to ControlRotation.
	RotationInput common.Rotator
	ViewPitchMin  float64
	ViewPitchMax  float64

	// The character does not follow the controller rotation on these axes
	// unless set.
	UseControllerRotationPitch bool
	UseControllerRotationYaw   bool
	UseControllerRotationRoll  bool
}

func (c *Controller) AddYawInput(v float64) {
	c.RotationInput.Yaw += v
}

func (c *Controller) AddPitchInput(v float64) {
	c.RotationInput.Pitch += v
}

var ControllerComponent = NewComponent[Controller]()
