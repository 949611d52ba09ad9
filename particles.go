package main

import "math"

// Particle pool constants, matching the client's renderer expectations
const (
	ParticleGravity   = -2.0
	ParticleLifeDecay = 0.3  // life units per second
	ParticleMaxDt     = 0.1  // clamp to prevent physics explosions on stalls
	ParticleAudioGain = 2.0  // speed multiplier reaches 1+gain at full pulse
	ParticleBurstVY   = 5.0  // base upward respawn velocity
	ParticleSpread    = 10.0 // horizontal respawn offset range
)

// ParticlePool simulates the session's ambient candy-sparkle particles
// in two parallel flat float32 arrays, stride 4: positions hold
// x,y,z,life and velocities hold vx,vy,vz,speed. Respawn placement is
// derived from particle index and accumulated time, so a pool is fully
// deterministic for a fixed update sequence.
type ParticlePool struct {
	positions  []float32
	velocities []float32
	count      int
	time       float32
	spawnX     float32
	spawnY     float32
	spawnZ     float32
}

// NewParticlePool creates a pool of count particles around an emitter.
// Lives start staggered so respawns spread over the first life cycle.
func NewParticlePool(count int, spawnX, spawnY, spawnZ float32) *ParticlePool {
	p := &ParticlePool{
		positions:  make([]float32, count*4),
		velocities: make([]float32, count*4),
		count:      count,
		spawnX:     spawnX,
		spawnY:     spawnY,
		spawnZ:     spawnZ,
	}
	for i := 0; i < count; i++ {
		p.respawn(i)
		p.positions[i*4+3] = float32(i) / float32(count)
	}
	return p
}

// Count returns the pool size
func (p *ParticlePool) Count() int {
	return p.count
}

// Positions exposes the flat x,y,z,life array for state snapshots
func (p *ParticlePool) Positions() []float32 {
	return p.positions
}

// Update advances every particle by dt seconds. pulse is the current
// audio kick amplitude in [0,1]; it scales effective particle speed so
// the sparkles surge on the beat.
func (p *ParticlePool) Update(dt, pulse float32) {
	if dt > ParticleMaxDt {
		dt = ParticleMaxDt
	}
	p.time += dt

	gravityDt := ParticleGravity * dt
	audioBoost := 1.0 + pulse*ParticleAudioGain
	decay := ParticleLifeDecay * dt

	for i := 0; i < p.count; i++ {
		pi := i * 4
		vi := i * 4

		vy := p.velocities[vi+1] + gravityDt
		p.velocities[vi+1] = vy

		speed := p.velocities[vi+3] * audioBoost
		p.positions[pi] += p.velocities[vi] * dt * speed
		p.positions[pi+1] += vy * dt * speed
		p.positions[pi+2] += p.velocities[vi+2] * dt * speed

		p.positions[pi+3] -= decay
		if p.positions[pi+3] < 0 {
			p.respawn(i)
		}
	}
}

// respawn resets particle i at the emitter with a time-varied offset
// and upward burst. Index and time seed the variation; no RNG state.
func (p *ParticlePool) respawn(i int) {
	seed := float64(i)*0.123 + float64(p.time)*0.1
	offsetX := float32(math.Sin(seed*12.9898)) * ParticleSpread
	offsetZ := float32(math.Cos(seed*78.233)) * ParticleSpread

	pi := i * 4
	p.positions[pi] = p.spawnX + offsetX
	p.positions[pi+1] = p.spawnY
	p.positions[pi+2] = p.spawnZ + offsetZ
	p.positions[pi+3] = 1.0

	velSeed := seed + float64(i)*0.456
	vi := i * 4
	p.velocities[vi] = float32(math.Sin(velSeed)) * 2.0
	p.velocities[vi+1] = ParticleBurstVY + float32(math.Cos(velSeed))*2.0
	p.velocities[vi+2] = float32(math.Cos(velSeed*1.5)) * 2.0
	p.velocities[vi+3] = 1.0
}
