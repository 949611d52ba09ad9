package main

import "math"

// Player movement tuning. Units are world meters and seconds.
const (
	WalkAccel     = 40.0
	WalkMaxSpeed  = 8.0
	WalkFriction  = 0.90 // horizontal velocity multiplier per tick
	Gravity       = 25.0
	JumpSpeed     = 9.0
	MaxKick       = 1.0
	RoamHalfWidth = 245.0 // keep players inside the gridded area
)

// Player is one connected explorer in a world session. Its kinematic
// state lives in the world's flat body buffer, addressed by Body; the
// struct itself holds only identity and per-tick input.
type Player struct {
	ID   string
	Name string
	Body int // slot in the world body buffer

	// Latest input, applied on the next tick
	MoveX float64 // input direction, unit-clamped
	MoveZ float64
	Jump  bool
	Kick  float64 // audio kick amplitude [0,1] from the client analyser

	AuthPlayerID int64 // 0 = guest
	Finds        int   // discoveries this session
	SessionXP    int
}

// NewPlayer creates a player bound to an allocated body slot and
// places it at a clear spawn point.
func NewPlayer(id, name string, w *World, body int, rng *worldRand) *Player {
	p := &Player{
		ID:   id,
		Name: name,
		Body: body,
	}
	b := w.Body(body)
	b[bodyX], b[bodyY], b[bodyZ] = w.SpawnPosition(rng)
	b[bodyGrounded] = 1
	return p
}

// ApplyInput stores the latest client input, clamping the move vector
// to unit length and the kick amplitude to [0,1].
func (p *Player) ApplyInput(in ClientInput) {
	mx, mz := in.MoveX, in.MoveZ
	if magSq := mx*mx + mz*mz; magSq > 1 {
		inv := 1 / math.Sqrt(magSq)
		mx *= inv
		mz *= inv
	}
	p.MoveX = mx
	p.MoveZ = mz
	p.Jump = in.Jump
	p.Kick = Clamp(in.Kick, 0, MaxKick)
}

// Update integrates one tick of walking kinematics against the
// terrain: input acceleration, friction, speed clamp, gravity, jump,
// and the ground snap. Platform contacts are the resolver's job and
// run after this.
func (p *Player) Update(dt float64, w *World) {
	b := w.Body(p.Body)
	x := float64(b[bodyX])
	y := float64(b[bodyY])
	z := float64(b[bodyZ])
	vx := float64(b[bodyVX])
	vy := float64(b[bodyVY])
	vz := float64(b[bodyVZ])
	grounded := b[bodyGrounded] != 0

	vx += p.MoveX * WalkAccel * dt
	vz += p.MoveZ * WalkAccel * dt
	vx *= WalkFriction
	vz *= WalkFriction

	if speedSq := vx*vx + vz*vz; speedSq > WalkMaxSpeed*WalkMaxSpeed {
		scale := WalkMaxSpeed / math.Sqrt(speedSq)
		vx *= scale
		vz *= scale
	}

	if p.Jump && grounded {
		vy = JumpSpeed
		grounded = false
	}
	vy -= Gravity * dt

	x += vx * dt
	y += vy * dt
	z += vz * dt

	// Soft world border: slide along the edge instead of escaping
	if x < -RoamHalfWidth {
		x, vx = -RoamHalfWidth, 0
	} else if x > RoamHalfWidth {
		x, vx = RoamHalfWidth, 0
	}
	if z < -RoamHalfWidth {
		z, vz = -RoamHalfWidth, 0
	} else if z > RoamHalfWidth {
		z, vz = RoamHalfWidth, 0
	}

	// Terrain is the floor of last resort
	floor := float64(GroundHeight(float32(x), float32(z))) + PlayerHeight
	if y <= floor && vy <= 0 {
		y = floor
		vy = 0
		grounded = true
	} else if y > floor {
		grounded = false
	}

	b[bodyX] = float32(x)
	b[bodyY] = float32(y)
	b[bodyZ] = float32(z)
	b[bodyVX] = float32(vx)
	b[bodyVY] = float32(vy)
	b[bodyVZ] = float32(vz)
	if grounded {
		b[bodyGrounded] = 1
	} else {
		b[bodyGrounded] = 0
	}
}

// ToState converts the player to its broadcast form
func (p *Player) ToState(w *World) PlayerState {
	b := w.Body(p.Body)
	return PlayerState{
		ID:       p.ID,
		Name:     p.Name,
		X:        round2(float64(b[bodyX])),
		Y:        round2(float64(b[bodyY])),
		Z:        round2(float64(b[bodyZ])),
		VX:       round2(float64(b[bodyVX])),
		VY:       round2(float64(b[bodyVY])),
		VZ:       round2(float64(b[bodyVZ])),
		Grounded: b[bodyGrounded] != 0,
		Finds:    p.Finds,
	}
}
