package component

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/milk9111/climbing/common"
)

type Transform struct {
	Position mgl64.Vec3
	Rotation common.Rotator
}

func (t *Transform) Forward() mgl64.Vec3 {
	return t.Rotation.Forward()
}

var TransformComponent = NewComponent[Transform]()
