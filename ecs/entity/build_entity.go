package entity

import (
	"fmt"
	"image/color"
	"sort"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/milk9111/modelviewer/assets"
	"github.com/milk9111/modelviewer/ecs"
	"github.com/milk9111/modelviewer/ecs/component"
	"github.com/milk9111/modelviewer/prefabs"
)

type entityPrefabSpec = prefabs.EntityBuildSpec

// BuildContext carries what component builders need beyond the raw spec.
type BuildContext struct {
	PrefabPath string
	Assets     *assets.Server
	Viewer     *prefabs.ViewerSpec
}

type componentBuildFn func(w *ecs.World, e ecs.Entity, raw any, ctx *BuildContext) error

var componentRegistry = map[string]componentBuildFn{
	"marker_tag":       addMarkerTag,
	"light_tag":        addLightTag,
	"transform":        addTransform,
	"mesh":             addMesh,
	"camera":           addCamera,
	"orbit_camera":     addOrbitCamera,
	"orbit_input":      addOrbitInput,
	"pointer":          addPointer,
	"raycast_source":   addRaycastSource,
	"scene_root":       addSceneRoot,
	"animation_button": addAnimationButton,
}

// Tags are added before meshes.
var componentBuildOrder = []string{
	"marker_tag",
	"light_tag",
	"transform",
	"mesh",
	"camera",
	"orbit_camera",
	"orbit_input",
	"pointer",
	"raycast_source",
	"scene_root",
	"animation_button",
}

func BuildEntity(w *ecs.World, prefabPath string, ctx *BuildContext) (ecs.Entity, error) {
	if w == nil {
		return 0, fmt.Errorf("build entity: world is nil")
	}

	spec, err := prefabs.LoadEntityBuildSpec(prefabPath)
	if err != nil {
		return 0, fmt.Errorf("build entity: load %q: %w", prefabPath, err)
	}
	return buildFromSpec(w, prefabPath, spec, ctx)
}

func buildFromSpec(w *ecs.World, prefabPath string, spec entityPrefabSpec, ctx *BuildContext) (ecs.Entity, error) {
	if len(spec.Components) == 0 {
		return 0, fmt.Errorf("build entity: prefab %q does not define components", prefabPath)
	}
	if ctx == nil {
		ctx = &BuildContext{}
	}
	ctx.PrefabPath = prefabPath

	e := ecs.CreateEntity(w)

	remaining := make(map[string]any, len(spec.Components))
	for k, v := range spec.Components {
		remaining[k] = v
	}

	build := func(name string) error {
		builder, ok := componentRegistry[name]
		if !ok {
			return fmt.Errorf("build entity: %q: no builder for component %q", prefabPath, name)
		}
		if err := builder(w, e, remaining[name], ctx); err != nil {
			return fmt.Errorf("build entity: %q: add %q: %w", prefabPath, name, err)
		}
		delete(remaining, name)
		return nil
	}

	for _, name := range componentBuildOrder {
		if _, ok := remaining[name]; !ok {
			continue
		}
		if err := build(name); err != nil {
			ecs.DestroyEntity(w, e)
			return 0, err
		}
	}

	names := make([]string, 0, len(remaining))
	for name := range remaining {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		if err := build(name); err != nil {
			ecs.DestroyEntity(w, e)
			return 0, err
		}
	}

	return e, nil
}

func addMarkerTag(w *ecs.World, e ecs.Entity, _ any, _ *BuildContext) error {
	return ecs.Add(w, e, component.MarkerTagComponent.Kind(), &component.MarkerTag{})
}

func addLightTag(w *ecs.World, e ecs.Entity, _ any, _ *BuildContext) error {
	return ecs.Add(w, e, component.LightTagComponent.Kind(), &component.LightTag{})
}

type transformSpec = prefabs.TransformComponentSpec

func addTransform(w *ecs.World, e ecs.Entity, raw any, _ *BuildContext) error {
	spec, err := prefabs.DecodeComponentSpec[transformSpec](raw)
	if err != nil {
		return fmt.Errorf("decode transform spec: %w", err)
	}
	t := component.NewTransform(mgl32.Vec3(spec.Translation))
	r := spec.Rotation
	t.Rotation = mgl32.AnglesToQuat(mgl32.DegToRad(r[0]), mgl32.DegToRad(r[1]), mgl32.DegToRad(r[2]), mgl32.XYZ)
	if spec.Scale != ([3]float32{}) {
		t.Scale = mgl32.Vec3(spec.Scale)
	}
	return ecs.Add(w, e, component.TransformComponent.Kind(), &t)
}

type meshSpec = prefabs.MeshComponentSpec

func addMesh(w *ecs.World, e ecs.Entity, raw any, _ *BuildContext) error {
	spec, err := prefabs.DecodeComponentSpec[meshSpec](raw)
	if err != nil {
		return fmt.Errorf("decode mesh spec: %w", err)
	}
	shape, err := assets.MeshSpec{
		Name:   spec.Name,
		Shape:  spec.Shape,
		Size:   spec.Size,
		Radius: spec.Radius,
	}.Build()
	if err != nil {
		return err
	}
	c := color.RGBA{R: 255, G: 255, B: 255, A: 255}
	if spec.Color != "" {
		parsed, err := prefabs.ParseHexColor(spec.Color)
		if err != nil {
			return fmt.Errorf("mesh color: %w", err)
		}
		c = color.RGBAModel.Convert(parsed).(color.RGBA)
	}
	return ecs.Add(w, e, component.MeshComponent.Kind(), &component.Mesh{Name: spec.Name, Shape: shape, Color: c})
}

type cameraSpec = prefabs.CameraComponentSpec

func addCamera(w *ecs.World, e ecs.Entity, raw any, ctx *BuildContext) error {
	spec, err := prefabs.DecodeComponentSpec[cameraSpec](raw)
	if err != nil {
		return fmt.Errorf("decode camera spec: %w", err)
	}
	if spec.FovY == 0 {
		spec.FovY = 45
	}
	if spec.Near == 0 {
		spec.Near = 0.5
	}
	if spec.Far == 0 {
		spec.Far = 2000
	}
	cam := &component.Camera{FovY: spec.FovY, Near: spec.Near, Far: spec.Far, Up: mgl32.Vec3{0, 1, 0}}
	if ctx.Viewer != nil {
		cam.ViewportW = ctx.Viewer.Window.Width
		cam.ViewportH = ctx.Viewer.Window.Height
	}
	return ecs.Add(w, e, component.CameraComponent.Kind(), cam)
}

type orbitCameraSpec = prefabs.OrbitCameraComponentSpec

func addOrbitCamera(w *ecs.World, e ecs.Entity, raw any, ctx *BuildContext) error {
	spec, err := prefabs.DecodeComponentSpec[orbitCameraSpec](raw)
	if err != nil {
		return fmt.Errorf("decode orbit camera spec: %w", err)
	}
	orbit := &component.OrbitCamera{
		Focus:  mgl32.Vec3(spec.Focus),
		Radius: spec.Radius,
		Yaw:    mgl32.DegToRad(spec.Yaw),
		Pitch:  mgl32.DegToRad(spec.Pitch),
	}
	if ctx.Viewer != nil {
		ApplyOrbitLimits(orbit, ctx.Viewer.Camera)
	}
	return ecs.Add(w, e, component.OrbitCameraComponent.Kind(), orbit)
}

// ApplyOrbitLimits copies zoom bounds and sensitivities from the viewer config.
func ApplyOrbitLimits(orbit *component.OrbitCamera, limits prefabs.OrbitLimitsSpec) {
	orbit.ZoomLower = limits.ZoomLower
	orbit.ZoomUpper = limits.ZoomUpper
	orbit.OrbitSensitivity = limits.OrbitSensitivity
	orbit.ZoomSensitivity = limits.ZoomSensitivity
	orbit.PanSensitivity = limits.PanSensitivity
}

func addOrbitInput(w *ecs.World, e ecs.Entity, _ any, _ *BuildContext) error {
	return ecs.Add(w, e, component.OrbitInputComponent.Kind(), &component.OrbitInput{})
}

func addPointer(w *ecs.World, e ecs.Entity, _ any, _ *BuildContext) error {
	return ecs.Add(w, e, component.PointerComponent.Kind(), &component.Pointer{})
}

func addRaycastSource(w *ecs.World, e ecs.Entity, _ any, _ *BuildContext) error {
	return ecs.Add(w, e, component.RaycastSourceComponent.Kind(), &component.RaycastSource{})
}

type sceneRootSpec = prefabs.SceneRootComponentSpec

func addSceneRoot(w *ecs.World, e ecs.Entity, raw any, ctx *BuildContext) error {
	spec, err := prefabs.DecodeComponentSpec[sceneRootSpec](raw)
	if err != nil {
		return fmt.Errorf("decode scene root spec: %w", err)
	}
	if spec.Scene == "" {
		return fmt.Errorf("scene root: scene path is empty")
	}
	if ctx.Assets == nil {
		return fmt.Errorf("scene root %s: no asset server", spec.Scene)
	}
	return ecs.Add(w, e, component.SceneRootComponent.Kind(), &component.SceneRoot{
		Handle: assets.LoadScene(ctx.Assets, spec.Scene),
	})
}

type animationButtonSpec = prefabs.AnimationButtonComponentSpec

func addAnimationButton(w *ecs.World, e ecs.Entity, raw any, _ *BuildContext) error {
	spec, err := prefabs.DecodeComponentSpec[animationButtonSpec](raw)
	if err != nil {
		return fmt.Errorf("decode animation button spec: %w", err)
	}
	return ecs.Add(w, e, component.AnimationButtonComponent.Kind(), &component.AnimationButton{
		Slot:  spec.Slot,
		Label: spec.Label,
	})
}
