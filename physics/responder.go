package physics

import "github.com/jakecoffman/cp"

type rayRef struct {
	vehicle Vehicle
	ray     Ray
}

// Reaction describes how one ray contact was resolved.
type Reaction struct {
	Vehicle     Vehicle
	Ray         Ray
	Compression float64
	// Force is what was applied to the body; at ForcePos when Grounded.
	Force    cp.Vector
	ForcePos cp.Vector
	// NormalForce is the contact normal scaled by compression.
	NormalForce cp.Vector
	Grounded    bool
}

// Responder turns suspension-ray contact events into forces. Rays are looked
// up by geometry handle, so each event costs one map lookup.
type Responder struct {
	rays      map[Geom]rayRef
	stiffness float64

	// bodies whose gravity was switched off during the current step
	weightless []Body
}

func NewResponder(stiffness float64) *Responder {
	if stiffness <= 0 {
		stiffness = 1
	}
	return &Responder{
		rays:      make(map[Geom]rayRef),
		stiffness: stiffness,
	}
}

// Track indexes v's rays.
func (r *Responder) Track(v Vehicle) {
	for _, ray := range v.Rays() {
		if ray.Geom == 0 {
			continue
		}
		r.rays[ray.Geom] = rayRef{vehicle: v, ray: ray}
	}
}

// Untrack removes v's rays from the index.
func (r *Responder) Untrack(v Vehicle) {
	for _, ray := range v.Rays() {
		if ref, ok := r.rays[ray.Geom]; ok && ref.vehicle == v {
			delete(r.rays, ray.Geom)
		}
	}
}

func (r *Responder) lookup(ev ContactEvent) (rayRef, bool) {
	if ref, ok := r.rays[ev.Geom1]; ok && ev.Geom1 != 0 {
		return ref, true
	}
	if ref, ok := r.rays[ev.Geom2]; ok && ev.Geom2 != 0 {
		return ref, true
	}
	return rayRef{}, false
}

// Respond applies the suspension force for ev. Events that involve no
// suspension ray are left to the backend and report false.
func (r *Responder) Respond(ev ContactEvent) (Reaction, bool) {
	ref, ok := r.lookup(ev)
	if !ok {
		return Reaction{}, false
	}
	body := ref.vehicle.Body()
	if body == nil {
		return Reaction{}, false
	}

	forcePos := body.LocalToWorld(ref.ray.Mount)
	forceDir := forcePos.Sub(ev.Point)
	compression := ref.ray.Length/2 - forceDir.Length()

	re := Reaction{
		Vehicle:     ref.vehicle,
		Ray:         ref.ray,
		Compression: compression,
		ForcePos:    forcePos,
		NormalForce: ev.Normal.Mult(compression),
	}

	if compression > 0 {
		if body.GravityEnabled() {
			body.SetGravityEnabled(false)
			r.weightless = append(r.weightless, body)
		}
		// a contact exactly at the mount has no direction; push along the normal
		dir := ev.Normal
		if forceDir.LengthSq() > 0 {
			dir = forceDir.Normalize()
		}
		re.Force = dir.Mult(compression * r.stiffness)
		body.AddForceAtPos(re.Force, forcePos)
		ref.vehicle.SetHitGround(true)
		re.Grounded = true
		return re, true
	}

	re.Force = ev.Normal.Mult(compression * r.stiffness)
	body.AddForce(re.Force)
	return re, true
}

// Clear restores gravity on every body switched off during the step.
func (r *Responder) Clear() {
	for i, b := range r.weightless {
		b.SetGravityEnabled(true)
		r.weightless[i] = nil
	}
	r.weightless = r.weightless[:0]
}

// Tracked returns the number of indexed rays.
func (r *Responder) Tracked() int {
	return len(r.rays)
}
