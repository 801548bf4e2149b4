package render

import (
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/jakecoffman/cp"
)

const (
	circleSegments = 24
	dotSize        = 0.1
)

// camera maps world space (metres, y up) to screen pixels (y down), centred
// on focus.
type camera struct {
	focus  cp.Vector
	scale  float64
	width  float64
	height float64
}

func (c camera) toScreen(v cp.Vector) (float64, float64) {
	return (v.X-c.focus.X)*c.scale + c.width/2, c.height/2 - (v.Y-c.focus.Y)*c.scale
}

// spaceDrawer draws Chipmunk shapes as outlines.
type spaceDrawer struct {
	screen *ebiten.Image
	cam    camera
	shape  cp.FColor
}

func (d *spaceDrawer) DrawCircle(pos cp.Vector, angle, radius float64, outline, fill cp.FColor, data interface{}) {
	if radius <= 0 {
		return
	}
	d.drawCircle(pos, radius, outline)
	end := cp.Vector{X: pos.X + math.Cos(angle)*radius, Y: pos.Y + math.Sin(angle)*radius}
	d.drawLine(pos, end, outline)
}

func (d *spaceDrawer) DrawSegment(a, b cp.Vector, fill cp.FColor, data interface{}) {
	d.drawLine(a, b, fill)
}

func (d *spaceDrawer) DrawFatSegment(a, b cp.Vector, radius float64, outline, fill cp.FColor, data interface{}) {
	d.drawLine(a, b, outline)
	if radius > 0 {
		d.drawCircle(a, radius, outline)
		d.drawCircle(b, radius, outline)
	}
}

func (d *spaceDrawer) DrawPolygon(count int, verts []cp.Vector, radius float64, outline, fill cp.FColor, data interface{}) {
	if count <= 0 {
		return
	}
	d.drawPolygon(verts[:count], outline)
}

func (d *spaceDrawer) DrawDot(size float64, pos cp.Vector, fill cp.FColor, data interface{}) {
	half := dotSize / 2
	d.drawLine(cp.Vector{X: pos.X - half, Y: pos.Y}, cp.Vector{X: pos.X + half, Y: pos.Y}, fill)
	d.drawLine(cp.Vector{X: pos.X, Y: pos.Y - half}, cp.Vector{X: pos.X, Y: pos.Y + half}, fill)
}

func (d *spaceDrawer) Flags() uint {
	return cp.DRAW_SHAPES
}

func (d *spaceDrawer) OutlineColor() cp.FColor {
	return cp.FColor{R: 0.2, G: 1, B: 0.2, A: 0.9}
}

func (d *spaceDrawer) ShapeColor(shape *cp.Shape, data interface{}) cp.FColor {
	return d.shape
}

func (d *spaceDrawer) ConstraintColor() cp.FColor {
	return cp.FColor{R: 1, G: 0.5, B: 0.1, A: 0.9}
}

func (d *spaceDrawer) CollisionPointColor() cp.FColor {
	return cp.FColor{R: 1, G: 0.2, B: 0.2, A: 0.9}
}

func (d *spaceDrawer) Data() interface{} {
	return nil
}

func (d *spaceDrawer) drawLine(a, b cp.Vector, c cp.FColor) {
	d.line(a, b, toNRGBA(c))
}

func (d *spaceDrawer) line(a, b cp.Vector, c color.Color) {
	x1, y1 := d.cam.toScreen(a)
	x2, y2 := d.cam.toScreen(b)
	ebitenutil.DrawLine(d.screen, x1, y1, x2, y2, c)
}

func (d *spaceDrawer) drawPolygon(verts []cp.Vector, c cp.FColor) {
	for i := range verts {
		d.drawLine(verts[i], verts[(i+1)%len(verts)], c)
	}
}

func (d *spaceDrawer) drawCircle(center cp.Vector, radius float64, c cp.FColor) {
	d.drawPolygon(circlePoints(center, radius), c)
}

func circlePoints(center cp.Vector, radius float64) []cp.Vector {
	points := make([]cp.Vector, 0, circleSegments)
	for i := 0; i < circleSegments; i++ {
		t := (2 * math.Pi) * (float64(i) / float64(circleSegments))
		points = append(points, cp.Vector{X: center.X + math.Cos(t)*radius, Y: center.Y + math.Sin(t)*radius})
	}
	return points
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
	return max(0, min(1, v))
}
