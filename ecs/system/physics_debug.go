package system

import (
	"fmt"
	"image/color"
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/jakecoffman/cp"
	"github.com/milk9111/climbing/collision"
	"github.com/milk9111/climbing/ecs"
	"github.com/milk9111/climbing/ecs/component"
)

const (
	debugCircleSegments = 24
	debugDotSize        = 4
	debugZoom           = 0.5
)

var (
	capsuleTraceColor = color.RGBA{R: 255, G: 255, B: 0, A: 255}
	lineTraceColor    = color.RGBA{R: 255, G: 255, B: 255, A: 255}
	traceHitColor     = color.RGBA{R: 255, G: 40, B: 40, A: 255}
	characterColor    = color.RGBA{R: 80, G: 160, B: 255, A: 255}
	cameraColor       = color.RGBA{R: 200, G: 120, B: 255, A: 255}
)

// DrawPhysicsDebug draws a top-down view of the collision world centered on
// the player: collider footprints, characters, the camera and this frame's
// debug traces. Screen up is world +X.
func DrawPhysicsDebug(world *collision.World, w *ecs.World, screen *ebiten.Image) {
	if world == nil || w == nil || screen == nil {
		return
	}

	drawer := newPhysicsDebugDrawer(w, screen)
	cp.DrawSpace(world.Space(), drawer)

	ecs.ForEach2(w, component.TransformComponent.Kind(), component.CapsuleComponent.Kind(), func(e ecs.Entity, t *component.Transform, capsule *component.Capsule) {
		center := cp.Vector{X: t.Position.X(), Y: t.Position.Y()}
		drawer.drawCircle(center, capsule.Radius, toFColor(characterColor))
		facing := t.Forward().Mul(capsule.Radius * 1.5)
		drawer.drawLine(center, cp.Vector{X: center.X + facing.X(), Y: center.Y + facing.Y()}, toFColor(characterColor))
		if anchor, ok := LedgeAnchor(w, e); ok {
			drawer.DrawDot(debugDotSize*2, cp.Vector{X: anchor.X(), Y: anchor.Y()}, toFColor(traceHitColor), nil)
		}
	})

	ecs.ForEach(w, component.FollowCameraComponent.Kind(), func(e ecs.Entity, cam *component.FollowCamera) {
		pos := cp.Vector{X: cam.Position.X(), Y: cam.Position.Y()}
		drawer.drawCircle(pos, 8, toFColor(cameraColor))
	})

	for _, tr := range world.DebugTraces() {
		drawer.drawTrace(tr)
	}
}

// DrawPlayerStateDebug prints the player's movement and ledge state.
func DrawPlayerStateDebug(w *ecs.World, screen *ebiten.Image) {
	if w == nil || screen == nil {
		return
	}
	player, ok := w.First(component.PlayerTagComponent.Kind())
	if !ok {
		return
	}
	t, ok := ecs.Get(w, player, component.TransformComponent.Kind())
	if !ok {
		return
	}

	text := fmt.Sprintf("Position: %.1f %.1f %.1f\nYaw: %.1f", t.Position.X(), t.Position.Y(), t.Position.Z(), t.Rotation.Yaw)
	if move, ok := ecs.Get(w, player, component.CharacterMovementComponent.Kind()); ok {
		speed := math.Hypot(move.Velocity.X(), move.Velocity.Y())
		text += fmt.Sprintf("\nSpeed: %.1f\nFalling: %v\nJumps: %d", speed, move.Falling, move.JumpCurrentCount)
	}
	if ctrl, ok := ecs.Get(w, player, component.ControllerComponent.Kind()); ok {
		text += fmt.Sprintf("\nControl: pitch %.1f yaw %.1f", ctrl.ControlRotation.Pitch, ctrl.ControlRotation.Yaw)
	}
	if ledge, ok := ecs.Get(w, player, component.LedgeDetectionComponent.Kind()); ok {
		text += fmt.Sprintf("\nLedge: %v\nLedgeHeight: %.1f\nLastLedgeFrame: %d", ledge.Detected, ledge.Height, ledge.LastDetectedFrame)
	}
	ebitenutil.DebugPrintAt(screen, text, 10, 10)
}

type physicsDebugDrawer struct {
	screen  *ebiten.Image
	centerX float64
	centerY float64
	halfW   float64
	halfH   float64
	zoom    float64
}

func newPhysicsDebugDrawer(w *ecs.World, screen *ebiten.Image) *physicsDebugDrawer {
	bounds := screen.Bounds()
	d := &physicsDebugDrawer{
		screen: screen,
		halfW:  float64(bounds.Dx()) / 2,
		halfH:  float64(bounds.Dy()) / 2,
		zoom:   debugZoom,
	}
	if player, ok := w.First(component.PlayerTagComponent.Kind()); ok {
		if t, ok := ecs.Get(w, player, component.TransformComponent.Kind()); ok {
			d.centerX = t.Position.X()
			d.centerY = t.Position.Y()
		}
	}
	return d
}

func (d *physicsDebugDrawer) DrawCircle(pos cp.Vector, angle, radius float64, outline, fill cp.FColor, data interface{}) {
	if radius <= 0 {
		return
	}
	d.drawCircle(pos, radius, outline)
	end := cp.Vector{X: pos.X + math.Cos(angle)*radius, Y: pos.Y + math.Sin(angle)*radius}
	d.drawLine(pos, end, outline)
}

func (d *physicsDebugDrawer) DrawSegment(a, b cp.Vector, fill cp.FColor, data interface{}) {
	d.drawLine(a, b, fill)
}

func (d *physicsDebugDrawer) DrawFatSegment(a, b cp.Vector, radius float64, outline, fill cp.FColor, data interface{}) {
	d.drawLine(a, b, outline)
	if radius > 0 {
		d.drawCircle(a, radius, outline)
		d.drawCircle(b, radius, outline)
	}
}

func (d *physicsDebugDrawer) DrawPolygon(count int, verts []cp.Vector, radius float64, outline, fill cp.FColor, data interface{}) {
	if count <= 0 {
		return
	}
	d.drawPolygon(verts[:count], outline)
}

func (d *physicsDebugDrawer) DrawDot(size float64, pos cp.Vector, fill cp.FColor, data interface{}) {
	if size <= 0 {
		size = debugDotSize
	}
	half := size / 2 / d.zoom
	d.drawLine(cp.Vector{X: pos.X - half, Y: pos.Y}, cp.Vector{X: pos.X + half, Y: pos.Y}, fill)
	d.drawLine(cp.Vector{X: pos.X, Y: pos.Y - half}, cp.Vector{X: pos.X, Y: pos.Y + half}, fill)
}

func (d *physicsDebugDrawer) Flags() uint {
	return cp.DRAW_SHAPES
}

func (d *physicsDebugDrawer) OutlineColor() cp.FColor {
	return cp.FColor{R: 0.2, G: 1, B: 0.2, A: 0.9}
}

// ShapeColor tints ledge colliders so they stand out from plain geometry.
func (d *physicsDebugDrawer) ShapeColor(shape *cp.Shape, data interface{}) cp.FColor {
	if col, ok := shape.UserData.(*collision.Collider); ok {
		for _, p := range col.Profiles {
			if p == collision.ProfileLedge {
				return cp.FColor{R: 1, G: 0.6, B: 0.1, A: 0.9}
			}
		}
	}
	return cp.FColor{R: 0.1, G: 0.6, B: 0.1, A: 0.5}
}

func (d *physicsDebugDrawer) ConstraintColor() cp.FColor {
	return cp.FColor{R: 1, G: 0.5, B: 0.1, A: 0.9}
}

func (d *physicsDebugDrawer) CollisionPointColor() cp.FColor {
	return cp.FColor{R: 1, G: 0.2, B: 0.2, A: 0.9}
}

func (d *physicsDebugDrawer) Data() interface{} {
	return nil
}

func (d *physicsDebugDrawer) drawTrace(tr collision.DebugTrace) {
	clr := lineTraceColor
	if tr.Query.Shape.Kind == collision.ShapeCapsule {
		clr = capsuleTraceColor
	}
	start := cp.Vector{X: tr.Query.Start.X(), Y: tr.Query.Start.Y()}
	end := cp.Vector{X: tr.Query.End.X(), Y: tr.Query.End.Y()}
	d.drawLine(start, end, toFColor(clr))

	if tr.Query.Shape.Kind == collision.ShapeCapsule {
		d.drawCircle(start, tr.Query.Shape.Radius, toFColor(clr))
		d.drawCircle(end, tr.Query.Shape.Radius, toFColor(clr))
	}
	if tr.Result.Hit {
		d.DrawDot(debugDotSize*3, toCP(tr.Result.ImpactPoint), toFColor(traceHitColor), nil)
		if tr.Query.Shape.Kind == collision.ShapeCapsule {
			d.drawCircle(toCP(tr.Result.Location), tr.Query.Shape.Radius, toFColor(traceHitColor))
		}
	}
}

func (d *physicsDebugDrawer) drawLine(a, b cp.Vector, clr cp.FColor) {
	x1, y1 := d.toScreen(a)
	x2, y2 := d.toScreen(b)
	vector.StrokeLine(d.screen, float32(x1), float32(y1), float32(x2), float32(y2), 1, toNRGBA(clr), true)
}

func (d *physicsDebugDrawer) drawPolygon(verts []cp.Vector, clr cp.FColor) {
	if len(verts) == 0 {
		return
	}
	for i := 0; i < len(verts); i++ {
		a := verts[i]
		b := verts[(i+1)%len(verts)]
		d.drawLine(a, b, clr)
	}
}

func (d *physicsDebugDrawer) drawCircle(center cp.Vector, radius float64, clr cp.FColor) {
	if radius <= 0 {
		return
	}
	points := make([]cp.Vector, 0, debugCircleSegments)
	for i := 0; i < debugCircleSegments; i++ {
		t := (2 * math.Pi) * (float64(i) / float64(debugCircleSegments))
		points = append(points, cp.Vector{X: center.X + math.Cos(t)*radius, Y: center.Y + math.Sin(t)*radius})
	}
	d.drawPolygon(points, clr)
}

// toScreen maps world X to screen up and world Y to screen right.
func (d *physicsDebugDrawer) toScreen(v cp.Vector) (float64, float64) {
	sx := d.halfW + (v.Y-d.centerY)*d.zoom
	sy := d.halfH - (v.X-d.centerX)*d.zoom
	return sx, sy
}

func toCP(v mgl64.Vec3) cp.Vector {
	return cp.Vector{X: v.X(), Y: v.Y()}
}

func toFColor(c color.RGBA) cp.FColor {
	return cp.FColor{
		R: float32(c.R) / 255,
		G: float32(c.G) / 255,
		B: float32(c.B) / 255,
		A: float32(c.A) / 255,
	}
}

func toNRGBA(c cp.FColor) color.NRGBA {
	return color.NRGBA{
		R: uint8(clamp01(c.R) * 255),
		G: uint8(clamp01(c.G) * 255),
		B: uint8(clamp01(c.B) * 255),
		A: uint8(clamp01(c.A) * 255),
	}
}

func clamp01(v float32) float32 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
