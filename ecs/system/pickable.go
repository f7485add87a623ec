package system

import (
	"github.com/milk9111/modelviewer/ecs"
	"github.com/milk9111/modelviewer/ecs/component"
)

// PickableRegistrarSystem marks meshes as ray targets as they stream in. The
// marker's own mesh is never marked, and marks are never removed.
type PickableRegistrarSystem struct{}

func NewPickableRegistrarSystem() *PickableRegistrarSystem {
	return &PickableRegistrarSystem{}
}

func (s *PickableRegistrarSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}
	var pending []ecs.Entity
	ecs.ForEach(w, component.MeshComponent.Kind(), func(e ecs.Entity, _ *component.Mesh) {
		if ecs.Has(w, e, component.PickableTagComponent.Kind()) || ecs.Has(w, e, component.MarkerTagComponent.Kind()) {
			return
		}
		pending = append(pending, e)
	})
	for _, e := range pending {
		if err := ecs.Add(w, e, component.PickableTagComponent.Kind(), &component.PickableTag{}); err != nil {
			panic("system: mark pickable: " + err.Error())
		}
	}
}
