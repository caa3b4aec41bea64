package system

import (
	"github.com/milk9111/climbing/ecs"
	"github.com/milk9111/climbing/ecs/component"
	"github.com/milk9111/climbing/input"
)

// InputSystem samples the local player's mapping contexts and writes the
// action values into every Input component.
type InputSystem struct {
	player *input.Player
	source input.Source
}

func NewInputSystem(player *input.Player, source input.Source) *InputSystem {
	return &InputSystem{player: player, source: source}
}

func (i *InputSystem) Update(w *ecs.World) {
	if i == nil || w == nil || i.player == nil || i.source == nil {
		return
	}

	if u, ok := i.source.(interface{ Update() }); ok {
		u.Update()
	}

	values := i.player.Sample(i.source)
	move := values[input.ActionMove]
	look := values[input.ActionLook]
	jump := values[input.ActionJump]

	ecs.ForEach(w, component.InputComponent.Kind(), func(e ecs.Entity, in *component.Input) {
		in.Move = move.Axis
		in.MoveTriggered = move.Phase == input.PhaseTriggered
		in.Look = look.Axis
		in.LookTriggered = look.Phase == input.PhaseTriggered
		in.JumpTriggered = jump.Phase == input.PhaseTriggered
		in.JumpCompleted = jump.Phase == input.PhaseCompleted
	})
}
