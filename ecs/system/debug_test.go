package system

import (
	"fmt"
	"image/color"
	"testing"
	"time"
)

func TestDebugOverlayExpiry(t *testing.T) {
	o := NewDebugOverlay()
	o.SetTimeStep(16 * time.Millisecond)

	o.AddMessage(-1, time.Millisecond, color.White, "short")
	o.AddMessage(-1, 40*time.Millisecond, color.White, "long")

	o.Update(nil)
	if got := o.Messages(); len(got) != 2 {
		t.Fatalf("messages after first update = %v, want both", got)
	}

	o.Update(nil)
	if got := o.Messages(); len(got) != 1 || got[0] != "long" {
		t.Fatalf("messages after second update = %v, want [long]", got)
	}

	o.Update(nil)
	o.Update(nil)
	if got := o.Messages(); len(got) != 0 {
		t.Fatalf("messages after expiry = %v, want none", got)
	}
}

func TestDebugOverlayKeys(t *testing.T) {
	o := NewDebugOverlay()

	o.AddMessage(3, time.Second, color.White, "first")
	o.AddMessage(3, time.Second, color.White, "second")
	o.AddMessage(-1, time.Second, color.White, "a")
	o.AddMessage(-1, time.Second, color.White, "a")

	got := o.Messages()
	want := []string{"second", "a", "a"}
	if len(got) != len(want) {
		t.Fatalf("messages = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("message %d = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestDebugOverlayCapsMessages(t *testing.T) {
	o := NewDebugOverlay()
	for i := 0; i < maxDebugMessages+5; i++ {
		o.AddMessage(-1, time.Second, color.White, fmt.Sprintf("m%d", i))
	}

	got := o.Messages()
	if len(got) != maxDebugMessages {
		t.Fatalf("len = %d, want %d", len(got), maxDebugMessages)
	}
	if got[0] != "m5" {
		t.Fatalf("oldest = %q, want m5", got[0])
	}
}
