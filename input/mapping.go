package input

import (
	"fmt"
	"sort"

	"github.com/go-gl/mathgl/mgl64"
)

// Logical actions the character responds to.
const (
	ActionJump = "Jump"
	ActionMove = "Move"
	ActionLook = "Look"
)

type ValueType string

const (
	ValueDigital ValueType = "digital"
	ValueAxis2D  ValueType = "axis2d"
)

// Modifiers applied to a binding's raw value, in order.
const (
	ModifierNegate  = "negate"
	ModifierNegateX = "negate_x"
	ModifierNegateY = "negate_y"
	ModifierSwizzle = "swizzle"
)

// Binding maps one device control to an action. Exactly one of Key,
// MouseAxis, GamepadStick or GamepadButton is set.
type Binding struct {
	Key           string   `yaml:"key,omitempty"`
	MouseAxis     string   `yaml:"mouse_axis,omitempty"`
	GamepadStick  string   `yaml:"gamepad_stick,omitempty"`
	GamepadButton string   `yaml:"gamepad_button,omitempty"`
	Deadzone      float64  `yaml:"deadzone,omitempty"`
	Scale         float64  `yaml:"scale,omitempty"`
	Modifiers     []string `yaml:"modifiers,omitempty"`
}

type ActionMapping struct {
	Action   string    `yaml:"action"`
	Type     ValueType `yaml:"type"`
	Bindings []Binding `yaml:"bindings"`
}

// MappingContext is a named set of bindings applied to a player.
type MappingContext struct {
	Name     string          `yaml:"name"`
	Mappings []ActionMapping `yaml:"mappings"`
}

func (c *MappingContext) Validate() error {
	if c == nil {
		return fmt.Errorf("input: nil mapping context")
	}
	for _, m := range c.Mappings {
		if m.Action == "" {
			return fmt.Errorf("input: context %q: mapping without action", c.Name)
		}
		if m.Type != ValueDigital && m.Type != ValueAxis2D {
			return fmt.Errorf("input: context %q: action %q: unknown value type %q", c.Name, m.Action, m.Type)
		}
		for i, b := range m.Bindings {
			set := 0
			for _, s := range []string{b.Key, b.MouseAxis, b.GamepadStick, b.GamepadButton} {
				if s != "" {
					set++
				}
			}
			if set != 1 {
				return fmt.Errorf("input: context %q: action %q: binding %d must name exactly one control", c.Name, m.Action, i)
			}
			for _, mod := range b.Modifiers {
				switch mod {
				case ModifierNegate, ModifierNegateX, ModifierNegateY, ModifierSwizzle:
				default:
					return fmt.Errorf("input: context %q: action %q: unknown modifier %q", c.Name, m.Action, mod)
				}
			}
		}
	}
	return nil
}

type Phase int

const (
	PhaseNone Phase = iota
	PhaseTriggered
	PhaseCompleted
)

func (p Phase) String() string {
	switch p {
	case PhaseTriggered:
		return "triggered"
	case PhaseCompleted:
		return "completed"
	default:
		return "none"
	}
}

type ActionValue struct {
	Action string
	Type   ValueType
	Axis   mgl64.Vec2
	Phase  Phase
}

func (v ActionValue) Pressed() bool {
	return v.Axis.Len() > 0
}

type appliedContext struct {
	ctx      *MappingContext
	priority int
}

// Player is the local player's input subsystem. Contexts with a higher
// priority win when two contexts map the same action.
type Player struct {
	contexts []appliedContext
	previous map[string]bool
}

func NewPlayer() *Player {
	return &Player{previous: make(map[string]bool)}
}

// AddMappingContext applies ctx at priority, replacing an earlier
// application of the same context.
func (p *Player) AddMappingContext(ctx *MappingContext, priority int) {
	if p == nil || ctx == nil {
		return
	}
	p.RemoveMappingContext(ctx)
	p.contexts = append(p.contexts, appliedContext{ctx: ctx, priority: priority})
	sort.SliceStable(p.contexts, func(i, j int) bool {
		return p.contexts[i].priority > p.contexts[j].priority
	})
}

func (p *Player) RemoveMappingContext(ctx *MappingContext) {
	if p == nil {
		return
	}
	out := p.contexts[:0]
	for _, c := range p.contexts {
		if c.ctx != ctx {
			out = append(out, c)
		}
	}
	p.contexts = out
}

func (p *Player) HasMappingContext(ctx *MappingContext) bool {
	if p == nil {
		return false
	}
	for _, c := range p.contexts {
		if c.ctx == ctx {
			return true
		}
	}
	return false
}

// Sample evaluates every mapped action against src. An action is triggered
// while actuated and completed on the first frame it stops.
func (p *Player) Sample(src Source) map[string]ActionValue {
	if p == nil || src == nil {
		return nil
	}
	if p.previous == nil {
		p.previous = make(map[string]bool)
	}

	out := make(map[string]ActionValue)
	for _, applied := range p.contexts {
		for _, m := range applied.ctx.Mappings {
			if _, seen := out[m.Action]; seen {
				continue
			}
			value := ActionValue{Action: m.Action, Type: m.Type, Axis: evaluate(src, m)}
			pressed := value.Pressed()
			switch {
			case pressed:
				value.Phase = PhaseTriggered
			case p.previous[m.Action]:
				value.Phase = PhaseCompleted
			}
			p.previous[m.Action] = pressed
			out[m.Action] = value
		}
	}
	return out
}

func evaluate(src Source, m ActionMapping) mgl64.Vec2 {
	var sum mgl64.Vec2
	for _, b := range m.Bindings {
		sum = sum.Add(bindingValue(src, b))
	}
	if m.Type == ValueDigital {
		if sum.Len() > 0 {
			return mgl64.Vec2{1, 0}
		}
		return mgl64.Vec2{}
	}
	return sum
}

func bindingValue(src Source, b Binding) mgl64.Vec2 {
	var v mgl64.Vec2
	switch {
	case b.Key != "":
		if src.IsKeyPressed(b.Key) {
			v = mgl64.Vec2{1, 0}
		}
	case b.GamepadButton != "":
		if src.IsGamepadButtonPressed(b.GamepadButton) {
			v = mgl64.Vec2{1, 0}
		}
	case b.MouseAxis != "":
		x, y := src.CursorDelta()
		v = mgl64.Vec2{x, y}
	case b.GamepadStick != "":
		x, y, ok := src.GamepadStick(b.GamepadStick)
		if !ok {
			return mgl64.Vec2{}
		}
		v = mgl64.Vec2{x, y}
		if v.Len() <= b.Deadzone {
			return mgl64.Vec2{}
		}
	}

	for _, mod := range b.Modifiers {
		switch mod {
		case ModifierSwizzle:
			v = mgl64.Vec2{v.Y(), v.X()}
		case ModifierNegate:
			v = v.Mul(-1)
		case ModifierNegateX:
			v[0] = -v[0]
		case ModifierNegateY:
			v[1] = -v[1]
		}
	}
	if b.Scale != 0 {
		v = v.Mul(b.Scale)
	}
	return v
}
