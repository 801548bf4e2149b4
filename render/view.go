// Package render draws the simulation: the Chipmunk space, suspension rays
// and a HUD of every controller's control frame.
package render

import (
	"fmt"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/jakecoffman/cp"
	"github.com/milk9111/ragetrack/input"
	"github.com/milk9111/ragetrack/physics"
	"github.com/milk9111/ragetrack/physics/chipmunk"
	"golang.org/x/image/colornames"
)

const pixelsPerMetre = 40

// View implements physics.Publisher. It keeps the transforms published after
// the last frame and draws them on the next Draw.
type View struct {
	backend *chipmunk.Backend
	width   int
	height  int
	debug   bool

	snapshots   []physics.Snapshot
	labels      map[physics.Vehicle]string
	controllers []*input.Controller
}

func NewView(backend *chipmunk.Backend, width, height int, debug bool) *View {
	return &View{
		backend: backend,
		width:   width,
		height:  height,
		debug:   debug,
		labels:  make(map[physics.Vehicle]string),
	}
}

// Publish copies snapshots; the slice is reused by the caller.
func (v *View) Publish(snapshots []physics.Snapshot) {
	v.snapshots = append(v.snapshots[:0], snapshots...)
}

func (v *View) Snapshots() []physics.Snapshot {
	return v.snapshots
}

// Label names a vehicle in the HUD.
func (v *View) Label(veh physics.Vehicle, name string) {
	v.labels[veh] = name
}

// ShowControllers sets the controllers listed in the HUD.
func (v *View) ShowControllers(controllers []*input.Controller) {
	v.controllers = controllers
}

func (v *View) SetDebug(on bool) {
	v.debug = on
}

func (v *View) Layout() (int, int) {
	return v.width, v.height
}

func (v *View) camera() camera {
	cam := camera{scale: pixelsPerMetre, width: float64(v.width), height: float64(v.height)}
	if len(v.snapshots) > 0 {
		cam.focus = v.snapshots[0].Position
	}
	return cam
}

func (v *View) Draw(screen *ebiten.Image) {
	screen.Fill(colornames.Midnightblue)

	d := &spaceDrawer{
		screen: screen,
		cam:    v.camera(),
		shape:  cp.FColor{R: 0.1, G: 0.6, B: 0.1, A: 0.5},
	}
	if v.backend != nil {
		cp.DrawSpace(v.backend.Space(), d)
		v.backend.RayEnds(func(start, end cp.Vector) {
			d.line(start, end, colornames.Orange)
		})
	}

	for _, s := range v.snapshots {
		c := colornames.Gray
		if s.HitGround {
			c = colornames.Lime
		}
		marker := cp.Vector{X: 0.3}.Rotate(cp.ForAngle(s.Angle))
		d.line(s.Position, s.Position.Add(marker), c)
	}

	ebitenutil.DebugPrintAt(screen, v.hud(), 10, 10)
}

func (v *View) hud() string {
	var b strings.Builder
	fmt.Fprintf(&b, "FPS: %.1f  TPS: %.1f\n", ebiten.ActualFPS(), ebiten.ActualTPS())
	for _, c := range v.controllers {
		b.WriteString(frameLine(c.Name(), c.Frame(), c.Faulted()))
		b.WriteByte('\n')
	}
	if v.debug {
		for _, s := range v.snapshots {
			fmt.Fprintf(&b, "%s: pos=(%.2f, %.2f) angle=%.2f ground=%v\n",
				v.label(s.Vehicle), s.Position.X, s.Position.Y, s.Angle, s.HitGround)
		}
	}
	return b.String()
}

func (v *View) label(veh physics.Vehicle) string {
	if name, ok := v.labels[veh]; ok {
		return name
	}
	return "vehicle"
}

func frameLine(name string, f input.ControlFrame, faulted bool) string {
	line := fmt.Sprintf("%s: dir=(%+.2f, %+.2f) boost=%v item=%v", name, f.Directions.X, f.Directions.Y, f.Boost, f.UseItem)
	if faulted {
		line += " [fault]"
	}
	return line
}
