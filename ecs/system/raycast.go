package system

import (
	"cmp"
	"slices"

	"github.com/milk9111/modelviewer/ecs"
	"github.com/milk9111/modelviewer/ecs/component"
	"github.com/milk9111/modelviewer/raycast"
)

// RaycastSystem intersects each source's ray with the pickable meshes and
// stores the hits nearest first.
type RaycastSystem struct{}

func NewRaycastSystem() *RaycastSystem {
	return &RaycastSystem{}
}

func (s *RaycastSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}
	ecs.ForEach(w, component.RaycastSourceComponent.Kind(), func(_ ecs.Entity, src *component.RaycastSource) {
		src.Intersections = src.Intersections[:0]
		if src.Ray == nil {
			return
		}
		src.Intersections = Cast(w, *src.Ray, src.Intersections)
	})
}

// Cast appends every hit of r against pickable meshes to dst, sorted by
// distance with ties broken by entity.
func Cast(w *ecs.World, r raycast.Ray, dst []component.Intersection) []component.Intersection {
	ecs.ForEach3(w, component.PickableTagComponent.Kind(), component.MeshComponent.Kind(), component.TransformComponent.Kind(), func(e ecs.Entity, _ *component.PickableTag, mesh *component.Mesh, t *component.Transform) {
		if mesh.Shape == nil {
			return
		}
		hit, ok := raycast.IntersectWorld(r, mesh.Shape, t.Matrix())
		if !ok {
			return
		}
		dst = append(dst, component.Intersection{
			Entity:   uint64(e),
			Distance: hit.Distance,
			Point:    hit.Point,
			Normal:   hit.Normal,
		})
	})
	slices.SortStableFunc(dst, func(a, b component.Intersection) int {
		if c := cmp.Compare(a.Distance, b.Distance); c != 0 {
			return c
		}
		return cmp.Compare(a.Entity, b.Entity)
	})
	return dst
}
