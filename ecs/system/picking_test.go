package system

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/milk9111/modelviewer/ecs"
	"github.com/milk9111/modelviewer/ecs/component"
	"github.com/milk9111/modelviewer/raycast"
)

func addMesh(t *testing.T, w *ecs.World, pos mgl32.Vec3, shape raycast.Shape) ecs.Entity {
	t.Helper()
	e := ecs.CreateEntity(w)
	tr := component.NewTransform(pos)
	if err := ecs.Add(w, e, component.TransformComponent.Kind(), &tr); err != nil {
		t.Fatalf("add transform: %v", err)
	}
	if err := ecs.Add(w, e, component.MeshComponent.Kind(), &component.Mesh{Shape: shape}); err != nil {
		t.Fatalf("add mesh: %v", err)
	}
	return e
}

func addMarker(t *testing.T, w *ecs.World) ecs.Entity {
	t.Helper()
	e := addMesh(t, w, mgl32.Vec3{0, -100, 0}, raycast.Sphere{Radius: 2})
	if err := ecs.Add(w, e, component.MarkerTagComponent.Kind(), &component.MarkerTag{}); err != nil {
		t.Fatalf("add marker tag: %v", err)
	}
	return e
}

func addSource(t *testing.T, w *ecs.World, r *raycast.Ray) ecs.Entity {
	t.Helper()
	e := ecs.CreateEntity(w)
	if err := ecs.Add(w, e, component.RaycastSourceComponent.Kind(), &component.RaycastSource{Ray: r}); err != nil {
		t.Fatalf("add source: %v", err)
	}
	return e
}

func markerPos(t *testing.T, w *ecs.World, e ecs.Entity) mgl32.Vec3 {
	t.Helper()
	tr, ok := ecs.Get(w, e, component.TransformComponent.Kind())
	if !ok {
		t.Fatalf("marker has no transform")
	}
	return tr.Translation
}

func downRay() *raycast.Ray {
	r := raycast.NewRay(mgl32.Vec3{0, 50, 0}, mgl32.Vec3{0, -1, 0})
	return &r
}

func newPickWorld() *ecs.World {
	w := ecs.NewWorld()
	w.AddSystem(NewPickableRegistrarSystem())
	w.AddSystem(NewRaycastSystem())
	w.AddSystem(NewMarkerSystem())
	return w
}

func TestRegistrarMonotonicAndSkipsMarker(t *testing.T) {
	w := newPickWorld()
	marker := addMarker(t, w)
	a := addMesh(t, w, mgl32.Vec3{}, raycast.Sphere{Radius: 1})

	for i := 0; i < 3; i++ {
		w.Update()
		if !ecs.Has(w, a, component.PickableTagComponent.Kind()) {
			t.Fatalf("tick %d: mesh not pickable", i)
		}
		if ecs.Has(w, marker, component.PickableTagComponent.Kind()) {
			t.Fatalf("tick %d: marker became pickable", i)
		}
	}

	b := addMesh(t, w, mgl32.Vec3{5, 0, 0}, raycast.Sphere{Radius: 1})
	w.Update()
	if !ecs.Has(w, b, component.PickableTagComponent.Kind()) {
		t.Fatalf("late mesh not registered")
	}
	if !ecs.Has(w, a, component.PickableTagComponent.Kind()) {
		t.Fatalf("earlier mesh lost eligibility")
	}
}

func TestSameTickVisibility(t *testing.T) {
	w := newPickWorld()
	marker := addMarker(t, w)
	src := addSource(t, w, downRay())
	w.Update()

	ground := addMesh(t, w, mgl32.Vec3{0, 0, 0}, raycast.Plane{Width: 100, Depth: 100})
	w.Update()

	s, _ := ecs.Get(w, src, component.RaycastSourceComponent.Kind())
	if len(s.Intersections) != 1 || s.Intersections[0].Entity != uint64(ground) {
		t.Fatalf("intersections = %+v, want the new ground", s.Intersections)
	}
	if got := markerPos(t, w, marker); !got.ApproxEqualThreshold(mgl32.Vec3{0, 0, 0}, 1e-4) {
		t.Fatalf("marker at %v, want origin", got)
	}
}

func TestMarkerTakesNearest(t *testing.T) {
	w := newPickWorld()
	marker := addMarker(t, w)
	addSource(t, w, downRay())
	addMesh(t, w, mgl32.Vec3{0, 40, 0}, raycast.Sphere{Radius: 1}) // hit at y=41, distance 9
	addMesh(t, w, mgl32.Vec3{0, 0, 0}, raycast.Sphere{Radius: 1})  // distance 49
	addMesh(t, w, mgl32.Vec3{0, 20, 0}, raycast.Sphere{Radius: 1}) // distance 29
	w.Update()

	if got := markerPos(t, w, marker); !got.ApproxEqualThreshold(mgl32.Vec3{0, 41, 0}, 1e-3) {
		t.Fatalf("marker at %v, want (0, 41, 0)", got)
	}
}

func TestMarkerUsesFirstIntersection(t *testing.T) {
	w := ecs.NewWorld()
	w.AddSystem(NewMarkerSystem())
	marker := addMarker(t, w)
	src := addSource(t, w, nil)
	s, _ := ecs.Get(w, src, component.RaycastSourceComponent.Kind())
	s.Intersections = []component.Intersection{
		{Entity: 2, Distance: 2, Point: mgl32.Vec3{0, 2, 0}},
		{Entity: 1, Distance: 5, Point: mgl32.Vec3{0, 5, 0}},
		{Entity: 3, Distance: 9, Point: mgl32.Vec3{0, 9, 0}},
	}
	w.Update()
	if got := markerPos(t, w, marker); got != (mgl32.Vec3{0, 2, 0}) {
		t.Fatalf("marker at %v, want B's point", got)
	}
}

func TestMarkerStickyOnMiss(t *testing.T) {
	w := newPickWorld()
	marker := addMarker(t, w)
	src := addSource(t, w, downRay())
	addMesh(t, w, mgl32.Vec3{0, 0, 0}, raycast.Plane{Width: 10, Depth: 10})
	w.Update()
	hit := markerPos(t, w, marker)

	s, _ := ecs.Get(w, src, component.RaycastSourceComponent.Kind())
	miss := raycast.NewRay(mgl32.Vec3{0, 50, 0}, mgl32.Vec3{0, 1, 0})
	s.Ray = &miss
	w.Update()
	if got := markerPos(t, w, marker); got != hit {
		t.Fatalf("marker moved to %v on a miss", got)
	}

	s.Ray = nil
	w.Update()
	if got := markerPos(t, w, marker); got != hit {
		t.Fatalf("marker moved to %v without a ray", got)
	}
}

func TestRaycastTiesByEntity(t *testing.T) {
	w := ecs.NewWorld()
	a := addMesh(t, w, mgl32.Vec3{}, raycast.Plane{Width: 10, Depth: 10})
	b := addMesh(t, w, mgl32.Vec3{}, raycast.Plane{Width: 10, Depth: 10})
	for _, e := range []ecs.Entity{b, a} {
		if err := ecs.Add(w, e, component.PickableTagComponent.Kind(), &component.PickableTag{}); err != nil {
			t.Fatalf("add tag: %v", err)
		}
	}
	hits := Cast(w, *downRay(), nil)
	if len(hits) != 2 || hits[0].Entity != uint64(a) || hits[1].Entity != uint64(b) {
		t.Fatalf("hits = %+v", hits)
	}
}

func TestCursorRay(t *testing.T) {
	cam := component.Camera{
		Position:  mgl32.Vec3{0, 0, 10},
		FovY:      60,
		Near:      0.1,
		Far:       1000,
		ViewportW: 800,
		ViewportH: 600,
	}

	r, ok := CursorRay(cam, 400, 300)
	if !ok {
		t.Fatalf("no ray through the viewport centre")
	}
	if !r.Direction.ApproxEqualThreshold(mgl32.Vec3{0, 0, -1}, 1e-3) {
		t.Fatalf("direction = %v", r.Direction)
	}

	top, _ := CursorRay(cam, 400, 0)
	if top.Direction.Y() <= 0 {
		t.Fatalf("cursor at the top edge should point up, got %v", top.Direction)
	}

	if _, ok := CursorRay(component.Camera{}, 1, 1); ok {
		t.Fatalf("zero viewport should not produce a ray")
	}
}

func TestCursorRaySystemClearsOutsideViewport(t *testing.T) {
	w := ecs.NewWorld()
	w.AddSystem(NewCursorRaySystem())
	camEnt := ecs.CreateEntity(w)
	cam := component.Camera{Position: mgl32.Vec3{0, 0, 10}, FovY: 60, Near: 0.1, Far: 100, ViewportW: 100, ViewportH: 100}
	if err := ecs.Add(w, camEnt, component.CameraComponent.Kind(), &cam); err != nil {
		t.Fatalf("add camera: %v", err)
	}
	pEnt := ecs.CreateEntity(w)
	if err := ecs.Add(w, pEnt, component.PointerComponent.Kind(), &component.Pointer{X: 50, Y: 50, InViewport: true}); err != nil {
		t.Fatalf("add pointer: %v", err)
	}
	src := addSource(t, w, nil)

	w.Update()
	s, _ := ecs.Get(w, src, component.RaycastSourceComponent.Kind())
	if s.Ray == nil {
		t.Fatalf("expected a ray")
	}

	p, _ := ecs.Get(w, pEnt, component.PointerComponent.Kind())
	p.InViewport = false
	w.Update()
	if s.Ray != nil {
		t.Fatalf("ray kept after the cursor left")
	}
}
