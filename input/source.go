package input

import (
	"log"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
)

// Source is the device layer the mapping context is evaluated against.
type Source interface {
	IsKeyPressed(name string) bool
	IsGamepadButtonPressed(name string) bool
	// CursorDelta is the cursor movement since the previous frame.
	CursorDelta() (dx, dy float64)
	// GamepadStick returns a stick's axes. ok is false with no gamepad.
	GamepadStick(name string) (x, y float64, ok bool)
}

var gamepadButtons = map[string]ebiten.StandardGamepadButton{
	"south":          ebiten.StandardGamepadButtonRightBottom,
	"east":           ebiten.StandardGamepadButtonRightRight,
	"west":           ebiten.StandardGamepadButtonRightLeft,
	"north":          ebiten.StandardGamepadButtonRightTop,
	"left_shoulder":  ebiten.StandardGamepadButtonFrontTopLeft,
	"right_shoulder": ebiten.StandardGamepadButtonFrontTopRight,
	"left_trigger":   ebiten.StandardGamepadButtonFrontBottomLeft,
	"right_trigger":  ebiten.StandardGamepadButtonFrontBottomRight,
}

// EbitenSource polls keyboard, mouse and the first standard gamepad.
type EbitenSource struct {
	keys    map[string]ebiten.Key
	unknown map[string]bool

	haveCursor   bool
	lastX, lastY int
	dx, dy       float64
}

func NewEbitenSource() *EbitenSource {
	return &EbitenSource{
		keys:    make(map[string]ebiten.Key),
		unknown: make(map[string]bool),
	}
}

// Update latches the cursor delta. Call once per frame before sampling.
func (s *EbitenSource) Update() {
	if s == nil {
		return
	}
	x, y := ebiten.CursorPosition()
	if !s.haveCursor {
		s.lastX, s.lastY = x, y
		s.haveCursor = true
	}
	s.dx = float64(x - s.lastX)
	s.dy = float64(y - s.lastY)
	s.lastX, s.lastY = x, y
}

func (s *EbitenSource) IsKeyPressed(name string) bool {
	if s == nil {
		return false
	}
	key, ok := s.key(name)
	return ok && ebiten.IsKeyPressed(key)
}

func (s *EbitenSource) IsGamepadButtonPressed(name string) bool {
	if s == nil {
		return false
	}
	button, ok := gamepadButtons[strings.ToLower(name)]
	if !ok {
		return false
	}
	id, ok := firstGamepad()
	return ok && ebiten.IsStandardGamepadButtonPressed(id, button)
}

func (s *EbitenSource) CursorDelta() (float64, float64) {
	if s == nil {
		return 0, 0
	}
	return s.dx, s.dy
}

func (s *EbitenSource) GamepadStick(name string) (float64, float64, bool) {
	if s == nil {
		return 0, 0, false
	}
	id, ok := firstGamepad()
	if !ok {
		return 0, 0, false
	}
	switch strings.ToLower(name) {
	case "left":
		return ebiten.StandardGamepadAxisValue(id, ebiten.StandardGamepadAxisLeftStickHorizontal),
			-ebiten.StandardGamepadAxisValue(id, ebiten.StandardGamepadAxisLeftStickVertical), true
	case "right":
		return ebiten.StandardGamepadAxisValue(id, ebiten.StandardGamepadAxisRightStickHorizontal),
			-ebiten.StandardGamepadAxisValue(id, ebiten.StandardGamepadAxisRightStickVertical), true
	}
	return 0, 0, false
}

func (s *EbitenSource) key(name string) (ebiten.Key, bool) {
	if k, ok := s.keys[name]; ok {
		return k, true
	}
	var k ebiten.Key
	if err := k.UnmarshalText([]byte(name)); err != nil {
		if !s.unknown[name] {
			if s.unknown == nil {
				s.unknown = make(map[string]bool)
			}
			s.unknown[name] = true
			log.Printf("input: %v", err)
		}
		return 0, false
	}
	if s.keys == nil {
		s.keys = make(map[string]ebiten.Key)
	}
	s.keys[name] = k
	return k, true
}

func firstGamepad() (ebiten.GamepadID, bool) {
	ids := ebiten.AppendGamepadIDs(nil)
	for _, id := range ids {
		if ebiten.IsStandardGamepadLayoutAvailable(id) {
			return id, true
		}
	}
	return 0, false
}
