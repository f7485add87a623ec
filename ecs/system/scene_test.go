package system

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/milk9111/modelviewer/assets"
	"github.com/milk9111/modelviewer/ecs"
	"github.com/milk9111/modelviewer/ecs/component"
)

func TestSceneSpawnStreamsIn(t *testing.T) {
	w := ecs.NewWorld()
	w.AddSystem(NewSceneSpawnSystem())
	w.AddSystem(NewPickableRegistrarSystem())

	scene := &assets.Scene{Meshes: []assets.MeshSpec{
		{Name: "floor", Shape: "plane", Size: [3]float32{10, 0, 10}},
		{Name: "head", Shape: "sphere", Radius: 1, Translation: [3]float32{0, 5, 0}},
		{Name: "bad", Shape: "torus"},
	}}
	root := ecs.CreateEntity(w)
	rootT := component.NewTransform(mgl32.Vec3{10, 0, 0})
	rootT.Scale = mgl32.Vec3{2, 2, 2}
	if err := ecs.Add(w, root, component.TransformComponent.Kind(), &rootT); err != nil {
		t.Fatalf("add transform: %v", err)
	}
	if err := ecs.Add(w, root, component.SceneRootComponent.Kind(), &component.SceneRoot{Handle: assets.Ready("dog.yaml#Scene0", scene)}); err != nil {
		t.Fatalf("add scene root: %v", err)
	}

	w.Update()
	meshes := w.Query(component.MeshComponent.Kind())
	if len(meshes) != 2 {
		t.Fatalf("meshes = %d, want 2", len(meshes))
	}
	if len(w.Query(component.AnimationPlayerComponent.Kind())) != 0 {
		t.Fatalf("skeleton spawned on the same tick as meshes")
	}
	for _, e := range meshes {
		if !ecs.Has(w, e, component.PickableTagComponent.Kind()) {
			t.Fatalf("mesh %v not pickable on its spawn tick", e)
		}
	}
	head, _ := ecs.Get(w, meshes[1], component.TransformComponent.Kind())
	if !head.Translation.ApproxEqualThreshold(mgl32.Vec3{10, 10, 0}, 1e-4) {
		t.Fatalf("head at %v, want (10, 10, 0)", head.Translation)
	}

	w.Update()
	w.Update()
	if n := len(w.Query(component.AnimationPlayerComponent.Kind())); n != 1 {
		t.Fatalf("players = %d, want 1", n)
	}
	if n := len(w.Query(component.MeshComponent.Kind())); n != 2 {
		t.Fatalf("meshes respawned: %d", n)
	}
}

func TestSceneSpawnFailedHandleIsSilent(t *testing.T) {
	w := ecs.NewWorld()
	w.AddSystem(NewSceneSpawnSystem())
	root := ecs.CreateEntity(w)
	tr := component.NewTransform(mgl32.Vec3{})
	_ = ecs.Add(w, root, component.TransformComponent.Kind(), &tr)
	_ = ecs.Add(w, root, component.SceneRootComponent.Kind(), &component.SceneRoot{Handle: nil})

	for i := 0; i < 3; i++ {
		w.Update()
	}
	if len(w.Query(component.AnimationPlayerComponent.Kind())) != 0 {
		t.Fatalf("failed scene spawned a player")
	}
}

func TestCompose(t *testing.T) {
	parent := component.Transform{
		Translation: mgl32.Vec3{1, 0, 0},
		Rotation:    mgl32.QuatRotate(mgl32.DegToRad(90), mgl32.Vec3{0, 1, 0}),
		Scale:       mgl32.Vec3{2, 2, 2},
	}
	child := component.NewTransform(mgl32.Vec3{1, 0, 0})
	got := Compose(parent, child)
	if !got.Translation.ApproxEqualThreshold(mgl32.Vec3{1, 0, -2}, 1e-4) {
		t.Fatalf("translation = %v", got.Translation)
	}
	if got.Scale != (mgl32.Vec3{2, 2, 2}) {
		t.Fatalf("scale = %v", got.Scale)
	}
}

func TestOrbitCameraClampsZoom(t *testing.T) {
	w := ecs.NewWorld()
	w.AddSystem(NewOrbitCameraSystem())
	e := ecs.CreateEntity(w)
	_ = ecs.Add(w, e, component.CameraComponent.Kind(), &component.Camera{})
	_ = ecs.Add(w, e, component.OrbitCameraComponent.Kind(), &component.OrbitCamera{
		Radius: 200, ZoomLower: 100, ZoomUpper: 320, ZoomSensitivity: 10, OrbitSensitivity: 0.01,
	})
	_ = ecs.Add(w, e, component.OrbitInputComponent.Kind(), &component.OrbitInput{Scroll: 50})

	w.Update()
	orbit, _ := ecs.Get(w, e, component.OrbitCameraComponent.Kind())
	if orbit.Radius != 100 {
		t.Fatalf("radius = %v, want clamp to 100", orbit.Radius)
	}
	cam, _ := ecs.Get(w, e, component.CameraComponent.Kind())
	if !cam.Position.ApproxEqualThreshold(mgl32.Vec3{0, 0, 100}, 1e-3) {
		t.Fatalf("eye = %v", cam.Position)
	}
	in, _ := ecs.Get(w, e, component.OrbitInputComponent.Kind())
	if in.Scroll != 0 {
		t.Fatalf("input not consumed")
	}

	in.Scroll = -100
	in.DragY = 1000
	w.Update()
	if orbit.Radius != 320 {
		t.Fatalf("radius = %v, want clamp to 320", orbit.Radius)
	}
	if orbit.Pitch > maxPitch {
		t.Fatalf("pitch %v not clamped", orbit.Pitch)
	}
}
