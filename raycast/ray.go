// Package raycast intersects rays with render geometry. It is visual picking
// only: shapes are the meshes the renderer draws, not physics colliders.
package raycast

import "github.com/go-gl/mathgl/mgl32"

// Ray is a half-line. Direction does not need to be unit length; Hit distances
// are always measured in world units.
type Ray struct {
	Origin    mgl32.Vec3
	Direction mgl32.Vec3
}

// NewRay returns a ray with a normalized direction.
func NewRay(origin, direction mgl32.Vec3) Ray {
	return Ray{Origin: origin, Direction: direction.Normalize()}
}

// At returns the point at parameter t.
func (r Ray) At(t float32) mgl32.Vec3 {
	return r.Origin.Add(r.Direction.Mul(t))
}

// Hit describes where a ray met a surface.
type Hit struct {
	Distance float32
	Point    mgl32.Vec3
	Normal   mgl32.Vec3
}

// Shape is geometry in its own local space.
type Shape interface {
	// Intersect returns the nearest hit with parameter t >= 0. Hit.Distance
	// holds the ray parameter, not a length.
	Intersect(r Ray) (Hit, bool)
	// Edges returns line segments for wireframe drawing.
	Edges() [][2]mgl32.Vec3
}

// IntersectWorld intersects r with s placed in the world by model.
func IntersectWorld(r Ray, s Shape, model mgl32.Mat4) (Hit, bool) {
	if s == nil || r.Direction.Len() == 0 {
		return Hit{}, false
	}
	if model.Det() == 0 {
		return Hit{}, false
	}
	inv := model.Inv()
	local := Ray{
		Origin:    inv.Mul4x1(r.Origin.Vec4(1)).Vec3(),
		Direction: inv.Mul4x1(r.Direction.Vec4(0)).Vec3(),
	}
	hit, ok := s.Intersect(local)
	if !ok {
		return Hit{}, false
	}

	point := model.Mul4x1(hit.Point.Vec4(1)).Vec3()
	normal := inv.Transpose().Mat3().Mul3x1(hit.Normal)
	if normal.Len() > 0 {
		normal = normal.Normalize()
	}
	return Hit{
		Distance: point.Sub(r.Origin).Len(),
		Point:    point,
		Normal:   normal,
	}, true
}
