package system

import (
	"github.com/milk9111/modelviewer/ecs"
	"github.com/milk9111/modelviewer/ecs/component"
)

// MarkerSystem moves the marker to the nearest hit of the first raycast
// source. Without a hit the marker keeps its last position.
type MarkerSystem struct{}

func NewMarkerSystem() *MarkerSystem {
	return &MarkerSystem{}
}

func (s *MarkerSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}
	srcEnt, ok := w.First(component.RaycastSourceComponent.Kind())
	if !ok {
		return
	}
	src, _ := ecs.Get(w, srcEnt, component.RaycastSourceComponent.Kind())
	if len(src.Intersections) == 0 {
		return
	}
	markerEnt, ok := w.First(component.MarkerTagComponent.Kind())
	if !ok {
		return
	}
	t, ok := ecs.Get(w, markerEnt, component.TransformComponent.Kind())
	if !ok {
		return
	}
	t.Translation = src.Intersections[0].Point
}
