package system

import (
	"math"

	"github.com/milk9111/climbing/collision"
	"github.com/milk9111/climbing/ecs"
	"github.com/milk9111/climbing/ecs/component"
)

// cameraProbeSkin keeps a pulled-in camera just in front of the surface it
// hit.
const cameraProbeSkin = 2.0

// CameraSystem places each follow camera at the end of its boom.
type CameraSystem struct {
	query CollisionQuery
}

func NewCameraSystem(query CollisionQuery) *CameraSystem {
	return &CameraSystem{query: query}
}

func (cs *CameraSystem) Update(w *ecs.World) {
	if cs == nil || w == nil {
		return
	}

	ecs.ForEach3(w,
		component.TransformComponent.Kind(),
		component.CameraBoomComponent.Kind(),
		component.FollowCameraComponent.Kind(),
		func(e ecs.Entity, t *component.Transform, boom *component.CameraBoom, cam *component.FollowCamera) {
			rot := t.Rotation
			if ctrl, ok := ecs.Get(w, e, component.ControllerComponent.Kind()); ok && boom.UsePawnControlRotation {
				rot = ctrl.ControlRotation
			}

			origin := t.Position.Add(boom.TargetOffset)
			desired := origin.Sub(rot.Forward().Mul(boom.TargetArmLength)).Add(rot.Matrix().Mul3x1(boom.SocketOffset))
			end := desired

			if boom.DoCollisionTest && cs.query != nil {
				profile := boom.ProbeChannel
				if profile == "" {
					profile = collision.ProfileCamera
				}
				if hit, res := cs.query.LineTraceSingleByProfile(collision.LineQuery(origin, desired, profile)); hit {
					dir := desired.Sub(origin)
					pulled := math.Max(res.Distance-cameraProbeSkin, 0)
					if dir.Len() > 0 {
						end = origin.Add(dir.Normalize().Mul(pulled))
					}
				}
			}

			boom.Origin = origin
			boom.Rotation = rot
			boom.ArmLength = end.Sub(origin).Len()

			cam.Position = end
			cam.Rotation = rot
			if ctrl, ok := ecs.Get(w, e, component.ControllerComponent.Kind()); ok && cam.UsePawnControlRotation {
				cam.Rotation = ctrl.ControlRotation
			}
		})
}
