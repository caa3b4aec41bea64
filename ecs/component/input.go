package component

import "github.com/go-gl/mathgl/mgl64"

type Input struct {
	Move          mgl64.Vec2
	MoveTriggered bool
	Look          mgl64.Vec2
	LookTriggered bool
	JumpTriggered bool
	JumpCompleted bool
}

var InputComponent = NewComponent[Input]()
