package system

import (
	"image/color"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/milk9111/climbing/ecs"
)

const (
	maxDebugMessages  = 16
	debugLineHeight   = 16
	debugSwatchSize   = 8
	debugMessageLeft  = 10
	debugMessageRight = 24
)

type debugMessage struct {
	key       int
	remaining time.Duration
	clr       color.Color
	text      string
}

// DebugOverlay collects timed on-screen messages. Update expires them and
// Draw prints the live ones, newest first.
type DebugOverlay struct {
	messages []debugMessage
	step     time.Duration
}

func NewDebugOverlay() *DebugOverlay {
	return &DebugOverlay{}
}

// SetTimeStep overrides the per-frame delta, which defaults to one tick.
func (o *DebugOverlay) SetTimeStep(step time.Duration) {
	if o == nil {
		return
	}
	o.step = step
}

func (o *DebugOverlay) AddMessage(key int, duration time.Duration, clr color.Color, text string) {
	if o == nil {
		return
	}

	msg := debugMessage{key: key, remaining: duration, clr: clr, text: text}
	if key >= 0 {
		for i := range o.messages {
			if o.messages[i].key == key {
				o.messages[i] = msg
				return
			}
		}
	}

	o.messages = append(o.messages, msg)
	if len(o.messages) > maxDebugMessages {
		o.messages = o.messages[len(o.messages)-maxDebugMessages:]
	}
}

// Messages returns the text of the live messages, oldest first.
func (o *DebugOverlay) Messages() []string {
	if o == nil {
		return nil
	}
	out := make([]string, 0, len(o.messages))
	for _, m := range o.messages {
		out = append(out, m.text)
	}
	return out
}

// Update drops messages whose time ran out on an earlier frame, so every
// message is drawn at least once.
func (o *DebugOverlay) Update(w *ecs.World) {
	if o == nil {
		return
	}

	step := o.step
	if step <= 0 {
		step = time.Second / time.Duration(ebiten.TPS())
	}

	live := o.messages[:0]
	for _, m := range o.messages {
		if m.remaining <= 0 {
			continue
		}
		m.remaining -= step
		live = append(live, m)
	}
	o.messages = live
}

func (o *DebugOverlay) Draw(screen *ebiten.Image, x, y int) {
	if o == nil || screen == nil {
		return
	}

	for i := len(o.messages) - 1; i >= 0; i-- {
		m := o.messages[i]
		if m.clr != nil {
			vector.FillRect(screen, float32(x+debugMessageLeft-2), float32(y+4), debugSwatchSize, debugSwatchSize, m.clr, false)
		}
		ebitenutil.DebugPrintAt(screen, m.text, x+debugMessageRight, y)
		y += debugLineHeight
	}
}
