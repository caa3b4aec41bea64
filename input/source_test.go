package input

import (
	"testing"

	"github.com/hajimehoshi/ebiten/v2"
)

func TestEbitenSourceKeyLookup(t *testing.T) {
	tests := []struct {
		name   string
		source *EbitenSource
	}{
		{name: "constructed", source: NewEbitenSource()},
		{name: "zero value", source: &EbitenSource{}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			k, ok := tc.source.key("Space")
			if !ok || k != ebiten.KeySpace {
				t.Fatalf("key(Space) = %v, %v", k, ok)
			}
			if _, ok := tc.source.key("Space"); !ok {
				t.Fatalf("cached key lookup failed")
			}
			if _, ok := tc.source.key("NotAKey"); ok {
				t.Fatalf("expected unknown key to fail")
			}
			if !tc.source.unknown["NotAKey"] {
				t.Fatalf("unknown key should be remembered")
			}
		})
	}
}

func TestNilEbitenSource(t *testing.T) {
	var s *EbitenSource

	s.Update()
	if s.IsKeyPressed("Space") {
		t.Fatalf("nil source reported a pressed key")
	}
	if s.IsGamepadButtonPressed("south") {
		t.Fatalf("nil source reported a pressed button")
	}
	if dx, dy := s.CursorDelta(); dx != 0 || dy != 0 {
		t.Fatalf("CursorDelta = %v, %v", dx, dy)
	}
	if _, _, ok := s.GamepadStick("left"); ok {
		t.Fatalf("nil source reported a gamepad stick")
	}
}
