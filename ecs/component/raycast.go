package component

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/milk9111/modelviewer/raycast"
)

// Intersection is one ray hit. Entity holds an ecs.Entity.
type Intersection struct {
	Entity   uint64
	Distance float32
	Point    mgl32.Vec3
	Normal   mgl32.Vec3
}

// RaycastSource carries the pick ray and its hits, nearest first.
type RaycastSource struct {
	Ray           *raycast.Ray
	Intersections []Intersection
}

var RaycastSourceComponent = NewComponent[RaycastSource]()
