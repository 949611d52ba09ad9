package main

import "math"

// Narrow-phase response constants. Heights and radii are world units;
// the bounce formula is part of the protocol with the client's audio
// analysis (kick amplitude in [0,1] maps to bounce 15..25).
const (
	PlayerRadius = 0.5
	PlayerHeight = 1.8

	GatePushStep = 0.2 // outward correction per resolve call
	GateVelDamp  = 0.5 // horizontal velocity multiplier on contact

	LandingBelow = 0.5 // landing window extends this far below the surface
	LandingAbove = 3.0 // and this far above it

	TrampolineBounce    = 15.0
	TrampolineKickBoost = 10.0

	CloudSurfaceScale = 0.8 // cloud surface sits at objectY + scaleY*0.8

	// Below this squared separation the gate push direction is
	// undefined; the push term is skipped, damping still applies.
	minSeparationSq = 1e-8
)

// ResolvePlayerCollisions runs one narrow-phase pass for body slot i:
// it visits every collision object in the 3x3 cell block around the
// body's current (x,z) and applies the per-type response. kick is the
// externally supplied audio amplitude in [0,1] driving bounce strength.
//
// The body record is read once at entry and written back only if at
// least one rule fired; the return value reports exactly that. A single
// call can fire several rules on disjoint axes (gate push on x/z plus a
// platform snap on y). Within one bucket, when two objects of the same
// type touch the same axis the later-visited one overwrites: last
// applied wins, with traversal running newest registration first.
func (w *World) ResolvePlayerCollisions(i int, kick float32) bool {
	body := w.Body(i)
	px := body[bodyX]
	py := body[bodyY]
	pz := body[bodyZ]
	vx := body[bodyVX]
	vy := body[bodyVY]
	vz := body[bodyVZ]
	grounded := body[bodyGrounded]
	modified := false

	w.cellBuf = w.grid.NeighborCells(px, pz, w.cellBuf[:0])
	for _, cell := range w.cellBuf {
		for idx := w.grid.Bucket(cell); idx != NoIndex; idx = w.grid.Next(idx) {
			obj := w.Object(idx)
			dx := px - obj[slotX]
			dz := pz - obj[slotZ]
			distSq := dx*dx + dz*dz

			switch ObjectType(obj[slotType]) {
			case ObjectGate:
				reach := obj[slotP1] + PlayerRadius
				if distSq >= reach*reach {
					continue
				}
				if distSq > minSeparationSq {
					inv := float32(1.0 / math.Sqrt(float64(distSq)))
					px += dx * inv * GatePushStep
					pz += dz * inv * GatePushStep
				}
				vx *= GateVelDamp
				vz *= GateVelDamp
				modified = true

			case ObjectMushroom, ObjectCloud, ObjectTrampoline:
				// Landing only: ascending players pass through from below
				if vy > 0 {
					continue
				}
				radius := obj[slotP1]
				if distSq >= radius*radius {
					continue
				}
				surfaceY := obj[slotY] + obj[slotP2]
				if ObjectType(obj[slotType]) == ObjectCloud {
					surfaceY = obj[slotY] + obj[slotP2]*CloudSurfaceScale
				}
				if py < surfaceY-LandingBelow || py > surfaceY+LandingAbove {
					continue
				}
				if ObjectType(obj[slotType]) == ObjectTrampoline {
					// Bounce: no y snap, airborne again
					vy = TrampolineBounce + kick*TrampolineKickBoost
					grounded = 0
				} else {
					py = surfaceY + PlayerHeight
					vy = 0
					grounded = 1
				}
				modified = true
			}
		}
	}

	if modified {
		body[bodyX] = px
		body[bodyY] = py
		body[bodyZ] = pz
		body[bodyVX] = vx
		body[bodyVY] = vy
		body[bodyVZ] = vz
		body[bodyGrounded] = grounded
	}
	return modified
}
