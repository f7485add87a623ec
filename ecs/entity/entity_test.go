package entity

import (
	"testing"
	"testing/fstest"
	"time"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/milk9111/modelviewer/assets"
	"github.com/milk9111/modelviewer/ecs"
	"github.com/milk9111/modelviewer/ecs/component"
	"github.com/milk9111/modelviewer/prefabs"
)

const testModel = `
scenes:
  - meshes:
      - name: body
        shape: box
        size: [2, 2, 2]
animations:
  - name: run
    duration: 0.8
  - name: sit
    duration: 2
  - name: walk
    duration: 1.2
`

func testContext(t *testing.T) *BuildContext {
	t.Helper()
	viewer, err := prefabs.LoadViewerSpec()
	if err != nil {
		t.Fatalf("LoadViewerSpec: %v", err)
	}
	s := assets.NewServer(fstest.MapFS{"models/dog.yaml": {Data: []byte(testModel)}})
	t.Cleanup(s.Close)
	return &BuildContext{Assets: s, Viewer: viewer}
}

func settle(t *testing.T, s *assets.Server) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for s.Pending() > 0 {
		if time.Now().After(deadline) {
			t.Fatalf("assets did not settle")
		}
		s.Update()
		time.Sleep(time.Millisecond)
	}
}

func TestBuildMarker(t *testing.T) {
	w := ecs.NewWorld()
	e, err := BuildEntity(w, "marker.yaml", testContext(t))
	if err != nil {
		t.Fatalf("BuildEntity: %v", err)
	}
	if !ecs.Has(w, e, component.MarkerTagComponent.Kind()) || !ecs.Has(w, e, component.MeshComponent.Kind()) {
		t.Fatalf("marker missing tag or mesh")
	}
	tr, _ := ecs.Get(w, e, component.TransformComponent.Kind())
	if tr.Translation != (mgl32.Vec3{0, -100, 0}) {
		t.Fatalf("marker spawned at %v", tr.Translation)
	}
}

func TestBuildUnknownComponentFails(t *testing.T) {
	w := ecs.NewWorld()
	spec := prefabs.EntityBuildSpec{Components: map[string]any{"transform": nil, "sprite": nil}}
	if _, err := buildFromSpec(w, "bad.yaml", spec, nil); err == nil {
		t.Fatalf("expected error for unknown component")
	}
	if n := len(ecs.Entities(w)); n != 0 {
		t.Fatalf("failed build left %d entities", n)
	}
}

func TestCatalogSlotsFollowLabels(t *testing.T) {
	ctx := testContext(t)
	cat, err := LoadAnimationCatalog(ctx.Assets, ctx.Viewer)
	if err != nil {
		t.Fatalf("LoadAnimationCatalog: %v", err)
	}
	settle(t, ctx.Assets)

	g, ok := cat.Graph.Get()
	if !ok {
		t.Fatalf("graph not ready")
	}
	want := []string{"sit", "walk", "run"}
	if cat.Len() != len(want) {
		t.Fatalf("catalog has %d slots", cat.Len())
	}
	for slot, name := range want {
		clip, ok := g.Clip(cat.Clips[slot])
		if !ok || clip.Name != name {
			t.Fatalf("slot %d = %+v, %v; want %s", slot, clip, ok, name)
		}
	}
}

func TestCatalogRequiresAnimations(t *testing.T) {
	if _, err := LoadAnimationCatalog(nil, &prefabs.ViewerSpec{Model: "m.yaml"}); err == nil {
		t.Fatalf("expected error")
	}
}

func TestBuildScene(t *testing.T) {
	ctx := testContext(t)
	w := ecs.NewWorld()
	if _, err := BuildScene(w, ctx); err != nil {
		t.Fatalf("BuildScene: %v", err)
	}

	var slots []int
	var labels []string
	ecs.ForEach(w, component.AnimationButtonComponent.Kind(), func(_ ecs.Entity, b *component.AnimationButton) {
		slots = append(slots, b.Slot)
		labels = append(labels, b.Label)
	})
	if len(slots) != 3 || slots[0] != 0 || slots[1] != 1 || slots[2] != 2 {
		t.Fatalf("button slots = %v", slots)
	}
	if labels[0] != "Sit" || labels[2] != "Run" {
		t.Fatalf("labels = %v", labels)
	}

	camEnt, ok := w.First(component.CameraComponent.Kind())
	if !ok {
		t.Fatalf("no camera")
	}
	cam, _ := ecs.Get(w, camEnt, component.CameraComponent.Kind())
	if cam.ViewportW != ctx.Viewer.Window.Width {
		t.Fatalf("viewport width = %d", cam.ViewportW)
	}
	orbit, _ := ecs.Get(w, camEnt, component.OrbitCameraComponent.Kind())
	if orbit.ZoomLower != 100 || orbit.ZoomUpper != 320 || orbit.PanSensitivity != 0 {
		t.Fatalf("orbit limits = %+v", orbit)
	}

	rootEnt, ok := w.First(component.SceneRootComponent.Kind())
	if !ok {
		t.Fatalf("no scene root")
	}
	settle(t, ctx.Assets)
	root, _ := ecs.Get(w, rootEnt, component.SceneRootComponent.Kind())
	if scene, ok := root.Handle.Get(); !ok || len(scene.Meshes) != 1 {
		t.Fatalf("scene handle = %v, %v", scene, ok)
	}
}
