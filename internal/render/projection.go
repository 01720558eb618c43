package render

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

// Projector maps sphere points to screen coordinates with an orthographic
// camera looking down -Z after rotating by Yaw (about Y) and Pitch (about X).
type Projector struct {
	Yaw, Pitch float64
	// Scale converts world units to pixels.
	Scale   float64
	CenterX float64
	CenterY float64
}

// Rotate applies the camera rotation to p.
func (pr Projector) Rotate(p r3.Vec) r3.Vec {
	sy, cy := math.Sincos(pr.Yaw)
	x := cy*p.X + sy*p.Z
	z := -sy*p.X + cy*p.Z
	sp, cp := math.Sincos(pr.Pitch)
	y := cp*p.Y - sp*z
	z = sp*p.Y + cp*z
	return r3.Vec{X: x, Y: y, Z: z}
}

// Project returns the screen position of p and whether it faces the camera.
// Screen Y grows downwards.
func (pr Projector) Project(p r3.Vec) (float64, float64, bool) {
	r := pr.Rotate(p)
	return pr.CenterX + r.X*pr.Scale, pr.CenterY - r.Y*pr.Scale, r.Z >= 0
}

// SurfacePoint lifts a centroid onto the sphere surface. Zero vectors have
// no direction and report false.
func SurfacePoint(c r3.Vec, radius float64) (r3.Vec, bool) {
	if r3.Norm(c) == 0 {
		return r3.Vec{}, false
	}
	return r3.Scale(radius, r3.Unit(c)), true
}
