package system

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/milk9111/modelviewer/ecs"
	"github.com/milk9111/modelviewer/ecs/component"
	"github.com/milk9111/modelviewer/raycast"
)

// CursorRaySystem turns the pointer position into a world-space pick ray on
// every RaycastSource. With no cursor in the viewport the ray is cleared.
type CursorRaySystem struct{}

func NewCursorRaySystem() *CursorRaySystem {
	return &CursorRaySystem{}
}

func (s *CursorRaySystem) Update(w *ecs.World) {
	if w == nil {
		return
	}

	var ray *raycast.Ray
	pointerEnt, okPointer := w.First(component.PointerComponent.Kind())
	cameraEnt, okCamera := w.First(component.CameraComponent.Kind())
	if okPointer && okCamera {
		pointer, _ := ecs.Get(w, pointerEnt, component.PointerComponent.Kind())
		camera, _ := ecs.Get(w, cameraEnt, component.CameraComponent.Kind())
		if pointer.InViewport {
			if r, ok := CursorRay(*camera, pointer.X, pointer.Y); ok {
				ray = &r
			}
		}
	}

	ecs.ForEach(w, component.RaycastSourceComponent.Kind(), func(_ ecs.Entity, src *component.RaycastSource) {
		if ray == nil {
			src.Ray = nil
			return
		}
		r := *ray
		src.Ray = &r
	})
}

// CursorRay unprojects window coordinates (y down) through the camera.
func CursorRay(c component.Camera, x, y float32) (raycast.Ray, bool) {
	if c.ViewportW <= 0 || c.ViewportH <= 0 {
		return raycast.Ray{}, false
	}
	view := c.View()
	proj := c.Projection()
	winY := float32(c.ViewportH) - y
	near, err := mgl32.UnProject(mgl32.Vec3{x, winY, 0}, view, proj, 0, 0, c.ViewportW, c.ViewportH)
	if err != nil {
		return raycast.Ray{}, false
	}
	far, err := mgl32.UnProject(mgl32.Vec3{x, winY, 1}, view, proj, 0, 0, c.ViewportW, c.ViewportH)
	if err != nil {
		return raycast.Ray{}, false
	}
	dir := far.Sub(near)
	if dir.Len() == 0 {
		return raycast.Ray{}, false
	}
	return raycast.NewRay(near, dir), true
}
