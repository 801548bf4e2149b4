// Package chipmunk implements the physics backend on Chipmunk2D. The world is
// a side view with y up.
package chipmunk

import (
	"github.com/jakecoffman/cp"
	"github.com/milk9111/ragetrack/physics"
)

const (
	collisionTypeTrack cp.CollisionType = iota + 1
	collisionTypeChassis
)

// Config holds space-wide settings.
type Config struct {
	Gravity    float64
	Iterations int
	Friction   float64
}

func DefaultConfig() Config {
	return Config{
		Gravity:    -9.81,
		Iterations: 10,
		Friction:   0.9,
	}
}

type rayGeom struct {
	geom   physics.Geom
	body   *Body
	mount  cp.Vector
	dir    cp.Vector
	length float64
}

// Backend owns the Chipmunk space, the geometry handle table and the
// suspension rays.
type Backend struct {
	space    *cp.Space
	friction float64

	nextGeom   physics.Geom
	nextGroup  uint
	shapeGeoms map[*cp.Shape]physics.Geom
	bodies     map[*cp.Body]*Body
	rays       []rayGeom

	// chassis solver contacts: pending fills during QuickStep, solved is what
	// the next Collide reports
	pending []physics.ContactEvent
	solved  []physics.ContactEvent
}

// New creates a backend with an empty space.
func New(cfg Config) *Backend {
	if cfg.Iterations <= 0 {
		cfg.Iterations = DefaultConfig().Iterations
	}
	space := cp.NewSpace()
	space.Iterations = uint(cfg.Iterations)
	space.SetGravity(cp.Vector{X: 0, Y: cfg.Gravity})

	b := &Backend{
		space:      space,
		friction:   cfg.Friction,
		shapeGeoms: make(map[*cp.Shape]physics.Geom),
		bodies:     make(map[*cp.Body]*Body),
	}
	b.setupHandlers()
	return b
}

// Space returns the underlying Chipmunk space.
func (b *Backend) Space() *cp.Space {
	if b == nil {
		return nil
	}
	return b.space
}

func (b *Backend) newGeom() physics.Geom {
	b.nextGeom++
	return b.nextGeom
}

// AddGround adds a static polyline of track segments.
func (b *Backend) AddGround(points []cp.Vector) []physics.Geom {
	geoms := make([]physics.Geom, 0, max(len(points)-1, 0))
	for i := 0; i+1 < len(points); i++ {
		shape := cp.NewSegment(b.space.StaticBody, points[i], points[i+1], 0)
		shape.SetFriction(b.friction)
		shape.SetCollisionType(collisionTypeTrack)
		b.space.AddShape(shape)

		g := b.newGeom()
		b.shapeGeoms[shape] = g
		geoms = append(geoms, g)
	}
	return geoms
}

// NewBox creates a dynamic box body centred at pos. Each box gets its own
// filter group so its rays never hit it.
func (b *Backend) NewBox(mass, width, height float64, pos cp.Vector) (*Body, physics.Geom) {
	if mass <= 0 {
		mass = 1
	}
	cpBody := cp.NewBody(mass, cp.MomentForBox(mass, width, height))
	cpBody.SetPosition(pos)

	b.nextGroup++
	body := &Body{body: cpBody, gravity: true, group: b.nextGroup}
	cpBody.SetVelocityUpdateFunc(func(cb *cp.Body, gravity cp.Vector, damping float64, dt float64) {
		if !body.gravity {
			gravity = cp.Vector{}
		}
		cp.BodyUpdateVelocity(cb, gravity, damping, dt)
	})

	shape := cp.NewBox(cpBody, width, height, 0)
	shape.SetFriction(b.friction)
	shape.SetCollisionType(collisionTypeChassis)
	shape.SetFilter(cp.NewShapeFilter(body.group, cp.ALL_CATEGORIES, cp.ALL_CATEGORIES))

	b.space.AddBody(cpBody)
	b.space.AddShape(shape)

	g := b.newGeom()
	b.shapeGeoms[shape] = g
	b.bodies[cpBody] = body
	body.shapes = append(body.shapes, shape)
	return body, g
}

// AddRay mounts a suspension ray on body at the body-local point mount,
// pointing along the body-local direction dir.
func (b *Backend) AddRay(body *Body, mount, dir cp.Vector, length float64) physics.Ray {
	g := b.newGeom()
	if dir.LengthSq() == 0 {
		dir = cp.Vector{X: 0, Y: -1}
	}
	b.rays = append(b.rays, rayGeom{
		geom:   g,
		body:   body,
		mount:  mount,
		dir:    dir.Normalize(),
		length: length,
	})
	return physics.Ray{Geom: g, Mount: mount, Length: length}
}

// RemoveBody removes body, its shapes and its rays.
func (b *Backend) RemoveBody(body *Body) {
	if body == nil {
		return
	}
	for _, shape := range body.shapes {
		b.space.RemoveShape(shape)
		delete(b.shapeGeoms, shape)
	}
	body.shapes = nil
	b.space.RemoveBody(body.body)
	delete(b.bodies, body.body)

	kept := b.rays[:0]
	for _, r := range b.rays {
		if r.body != body {
			kept = append(kept, r)
		}
	}
	b.rays = kept
}

// RayEnds returns the world-space start and end of every ray, for drawing.
func (b *Backend) RayEnds(fn func(start, end cp.Vector)) {
	for _, r := range b.rays {
		start, end := r.segment()
		fn(start, end)
	}
}

func (r rayGeom) segment() (cp.Vector, cp.Vector) {
	start := r.body.body.LocalToWorld(r.mount)
	dir := r.dir.Rotate(cp.ForAngle(r.body.body.Angle()))
	return start, start.Add(dir.Mult(r.length))
}

// Collide queries every ray against the space and appends one event per hit,
// followed by the solver contacts recorded during the previous step. Those
// solver contacts lag by one step; they are reported once and dropped by the
// next EmptyContacts.
func (b *Backend) Collide(dst []physics.ContactEvent) []physics.ContactEvent {
	for _, r := range b.rays {
		start, end := r.segment()
		filter := cp.NewShapeFilter(r.body.group, cp.ALL_CATEGORIES, cp.ALL_CATEGORIES)
		hit := b.space.SegmentQueryFirst(start, end, 0, filter)
		if hit.Shape == nil {
			continue
		}
		dst = append(dst, physics.ContactEvent{
			Geom1:  r.geom,
			Geom2:  b.shapeGeoms[hit.Shape],
			Body1:  r.body,
			Body2:  b.wrap(hit.Shape.Body()),
			Point:  hit.Point,
			Normal: hit.Normal,
		})
	}
	return append(dst, b.solved...)
}

// QuickStep integrates the space by dt.
func (b *Backend) QuickStep(dt float64) {
	b.space.Step(dt)
}

// EmptyContacts drops the solver contacts already reported by Collide and
// queues the ones recorded by the last QuickStep.
func (b *Backend) EmptyContacts() {
	clear(b.solved)
	b.solved, b.pending = b.pending, b.solved[:0]
}

// wrap returns the Body for a cp body, or nil for static or unknown bodies.
// The nil is returned untyped so callers can compare against nil.
func (b *Backend) wrap(cb *cp.Body) physics.Body {
	if body, ok := b.bodies[cb]; ok {
		return body
	}
	return nil
}

func (b *Backend) setupHandlers() {
	handler := b.space.NewWildcardCollisionHandler(collisionTypeChassis)
	handler.UserData = b
	handler.PostSolveFunc = func(arb *cp.Arbiter, space *cp.Space, userData interface{}) {
		backend, ok := userData.(*Backend)
		if !ok || backend == nil {
			return
		}
		set := arb.ContactPointSet()
		if set.Count == 0 {
			return
		}
		shapeA, shapeB := arb.Shapes()
		bodyA, bodyB := arb.Bodies()
		backend.pending = append(backend.pending, physics.ContactEvent{
			Geom1:  backend.shapeGeoms[shapeA],
			Geom2:  backend.shapeGeoms[shapeB],
			Body1:  backend.wrap(bodyA),
			Body2:  backend.wrap(bodyB),
			Point:  set.Points[0].PointA,
			Normal: set.Normal,
		})
	}
}
