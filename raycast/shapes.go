package raycast

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

const epsilon = 1e-6

// Plane is a finite rectangle on y = 0 facing +Y, centred on the origin.
type Plane struct {
	Width float32
	Depth float32
}

func (p Plane) Intersect(r Ray) (Hit, bool) {
	if mgl32.Abs(r.Direction.Y()) < epsilon {
		return Hit{}, false
	}
	t := -r.Origin.Y() / r.Direction.Y()
	if t < 0 {
		return Hit{}, false
	}
	pt := r.At(t)
	if mgl32.Abs(pt.X()) > p.Width/2 || mgl32.Abs(pt.Z()) > p.Depth/2 {
		return Hit{}, false
	}
	pt[1] = 0
	return Hit{Distance: t, Point: pt, Normal: mgl32.Vec3{0, 1, 0}}, true
}

func (p Plane) Edges() [][2]mgl32.Vec3 {
	hw, hd := p.Width/2, p.Depth/2
	c := [4]mgl32.Vec3{{-hw, 0, -hd}, {hw, 0, -hd}, {hw, 0, hd}, {-hw, 0, hd}}
	return [][2]mgl32.Vec3{{c[0], c[1]}, {c[1], c[2]}, {c[2], c[3]}, {c[3], c[0]}}
}

// Sphere is centred on the origin.
type Sphere struct {
	Radius float32
}

func (s Sphere) Intersect(r Ray) (Hit, bool) {
	if s.Radius <= 0 {
		return Hit{}, false
	}
	a := r.Direction.Dot(r.Direction)
	b := 2 * r.Origin.Dot(r.Direction)
	c := r.Origin.Dot(r.Origin) - s.Radius*s.Radius

	disc := b*b - 4*a*c
	if disc < 0 || a == 0 {
		return Hit{}, false
	}
	sq := float32(math.Sqrt(float64(disc)))
	t := (-b - sq) / (2 * a)
	if t < 0 {
		t = (-b + sq) / (2 * a)
	}
	if t < 0 {
		return Hit{}, false
	}
	pt := r.At(t)
	return Hit{Distance: t, Point: pt, Normal: pt.Normalize()}, true
}

func (s Sphere) Edges() [][2]mgl32.Vec3 {
	const segments = 16
	var out [][2]mgl32.Vec3
	ring := func(f func(a float32) mgl32.Vec3) {
		for i := 0; i < segments; i++ {
			a0 := float32(i) / segments * 2 * math.Pi
			a1 := float32(i+1) / segments * 2 * math.Pi
			out = append(out, [2]mgl32.Vec3{f(a0), f(a1)})
		}
	}
	r := s.Radius
	ring(func(a float32) mgl32.Vec3 { return mgl32.Vec3{r * cos(a), 0, r * sin(a)} })
	ring(func(a float32) mgl32.Vec3 { return mgl32.Vec3{r * cos(a), r * sin(a), 0} })
	ring(func(a float32) mgl32.Vec3 { return mgl32.Vec3{0, r * cos(a), r * sin(a)} })
	return out
}

// Box is an axis-aligned box centred on the origin.
type Box struct {
	Half mgl32.Vec3
}

func (b Box) Intersect(r Ray) (Hit, bool) {
	tmin := float32(0)
	tmax := float32(math.MaxFloat32)
	axis, sign := -1, float32(0)

	for i := 0; i < 3; i++ {
		o, d := r.Origin[i], r.Direction[i]
		if mgl32.Abs(d) < epsilon {
			if o < -b.Half[i] || o > b.Half[i] {
				return Hit{}, false
			}
			continue
		}
		inv := 1 / d
		t1 := (-b.Half[i] - o) * inv
		t2 := (b.Half[i] - o) * inv
		s := float32(-1)
		if t1 > t2 {
			t1, t2 = t2, t1
			s = 1
		}
		if t1 > tmin {
			tmin = t1
			axis, sign = i, s
		}
		if t2 < tmax {
			tmax = t2
		}
		if tmax < tmin {
			return Hit{}, false
		}
	}

	var normal mgl32.Vec3
	if axis >= 0 {
		normal[axis] = sign
	}
	return Hit{Distance: tmin, Point: r.At(tmin), Normal: normal}, true
}

func (b Box) Edges() [][2]mgl32.Vec3 {
	h := b.Half
	var c [8]mgl32.Vec3
	for i := range c {
		c[i] = mgl32.Vec3{h[0] * corner(i, 0), h[1] * corner(i, 1), h[2] * corner(i, 2)}
	}
	pairs := [12][2]int{
		{0, 1}, {1, 3}, {3, 2}, {2, 0},
		{4, 5}, {5, 7}, {7, 6}, {6, 4},
		{0, 4}, {1, 5}, {2, 6}, {3, 7},
	}
	out := make([][2]mgl32.Vec3, 0, len(pairs))
	for _, p := range pairs {
		out = append(out, [2]mgl32.Vec3{c[p[0]], c[p[1]]})
	}
	return out
}

// Triangles is an indexed triangle list.
type Triangles struct {
	Vertices []mgl32.Vec3
	Indices  []uint32
}

// Intersect uses Möller-Trumbore against every triangle, keeping the nearest.
func (m Triangles) Intersect(r Ray) (Hit, bool) {
	best := Hit{Distance: float32(math.MaxFloat32)}
	found := false
	for i := 0; i+2 < len(m.Indices); i += 3 {
		i0, i1, i2 := m.Indices[i], m.Indices[i+1], m.Indices[i+2]
		if int(i0) >= len(m.Vertices) || int(i1) >= len(m.Vertices) || int(i2) >= len(m.Vertices) {
			continue
		}
		v0, v1, v2 := m.Vertices[i0], m.Vertices[i1], m.Vertices[i2]
		e1 := v1.Sub(v0)
		e2 := v2.Sub(v0)
		p := r.Direction.Cross(e2)
		det := e1.Dot(p)
		if mgl32.Abs(det) < epsilon {
			continue
		}
		invDet := 1 / det
		s := r.Origin.Sub(v0)
		u := s.Dot(p) * invDet
		if u < 0 || u > 1 {
			continue
		}
		q := s.Cross(e1)
		v := r.Direction.Dot(q) * invDet
		if v < 0 || u+v > 1 {
			continue
		}
		t := e2.Dot(q) * invDet
		if t < 0 || t >= best.Distance {
			continue
		}
		best = Hit{Distance: t, Point: r.At(t), Normal: e1.Cross(e2).Normalize()}
		found = true
	}
	return best, found
}

func (m Triangles) Edges() [][2]mgl32.Vec3 {
	var out [][2]mgl32.Vec3
	for i := 0; i+2 < len(m.Indices); i += 3 {
		idx := [3]uint32{m.Indices[i], m.Indices[i+1], m.Indices[i+2]}
		if int(idx[0]) >= len(m.Vertices) || int(idx[1]) >= len(m.Vertices) || int(idx[2]) >= len(m.Vertices) {
			continue
		}
		for k := 0; k < 3; k++ {
			out = append(out, [2]mgl32.Vec3{m.Vertices[idx[k]], m.Vertices[idx[(k+1)%3]]})
		}
	}
	return out
}

func corner(i, axis int) float32 {
	if i&(1<<axis) != 0 {
		return 1
	}
	return -1
}

func cos(a float32) float32 { return float32(math.Cos(float64(a))) }
func sin(a float32) float32 { return float32(math.Sin(float64(a))) }
