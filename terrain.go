package main

import "math"

// GroundHeight returns the terrain height at (x,z): three layered
// sin/cos octaves. Pure; the client evaluates the identical formula
// for rendering, so the constants here are part of the protocol.
func GroundHeight(x, z float32) float32 {
	fx := float64(x)
	fz := float64(z)
	h := math.Sin(fx*0.05)*2.0 + math.Cos(fz*0.05)*2.0
	h += math.Sin(fx*0.1)*0.8 + math.Cos(fz*0.1)*0.8
	h += math.Sin(fx*0.2)*0.3 + math.Cos(fz*0.2)*0.3
	return float32(h)
}

// noiseHash produces a pseudo-random value in roughly [-1,1] from a
// lattice point. Integer arithmetic wraps intentionally.
func noiseHash(x, y float32) float32 {
	ix := int32(x * 1000)
	iy := int32(y * 1000)
	n := ix + iy*57
	n = (n << 13) ^ n
	return 1.0 - float32((n*(n*n*15731+789221)+1376312589)&0x7fffffff)/1073741824.0
}

func lerp(a, b, t float32) float32 {
	return a + (b-a)*t
}

func smoothstep(t float32) float32 {
	return t * t * (3.0 - 2.0*t)
}

// ValueNoise2D is smoothstep-interpolated lattice noise in [-1,1]
func ValueNoise2D(x, y float32) float32 {
	ix := float32(math.Floor(float64(x)))
	iy := float32(math.Floor(float64(y)))
	fx := smoothstep(x - ix)
	fy := smoothstep(y - iy)

	v00 := noiseHash(ix, iy)
	v10 := noiseHash(ix+1, iy)
	v01 := noiseHash(ix, iy+1)
	v11 := noiseHash(ix+1, iy+1)

	v0 := lerp(v00, v10, fx)
	v1 := lerp(v01, v11, fx)
	return lerp(v0, v1, fy)
}

// FBM layers octaves of ValueNoise2D with halving amplitude and
// doubling frequency. World generation uses it as a placement
// density field.
func FBM(x, y float32, octaves int) float32 {
	value := float32(0)
	amplitude := float32(0.5)
	frequency := float32(1.0)
	for i := 0; i < octaves; i++ {
		value += amplitude * ValueNoise2D(x*frequency, y*frequency)
		amplitude *= 0.5
		frequency *= 2.0
	}
	return value
}
