package system

import (
	"image/color"
	"log"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/milk9111/modelviewer/anim"
	"github.com/milk9111/modelviewer/assets"
	"github.com/milk9111/modelviewer/ecs"
	"github.com/milk9111/modelviewer/ecs/component"
)

// SceneSpawnSystem instantiates loaded scenes. Meshes appear on the tick the
// scene resolves and the animated skeleton on the tick after, the way a
// streamed model arrives piecemeal.
type SceneSpawnSystem struct{}

func NewSceneSpawnSystem() *SceneSpawnSystem {
	return &SceneSpawnSystem{}
}

func (s *SceneSpawnSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}
	type job struct {
		root  ecs.Entity
		scene *assets.Scene
		base  component.Transform
		stage component.SceneStage
	}
	var jobs []job
	ecs.ForEach2(w, component.SceneRootComponent.Kind(), component.TransformComponent.Kind(), func(e ecs.Entity, root *component.SceneRoot, t *component.Transform) {
		switch root.Stage {
		case component.SceneWaiting:
			if root.Handle.State() == assets.StateFailed {
				root.Stage = component.SceneDone
				return
			}
			scene, ok := root.Handle.Get()
			if !ok {
				return
			}
			jobs = append(jobs, job{root: e, scene: scene, base: *t, stage: root.Stage})
			root.Stage = component.SceneMeshesSpawned
		case component.SceneMeshesSpawned:
			jobs = append(jobs, job{root: e, base: *t, stage: root.Stage})
			root.Stage = component.SceneDone
		}
	})

	for _, j := range jobs {
		if j.stage == component.SceneWaiting {
			spawnMeshes(w, j.scene, j.base)
			continue
		}
		skeleton := ecs.CreateEntity(w)
		base := j.base
		mustAdd(w, skeleton, component.SkeletonTagComponent.Kind(), &component.SkeletonTag{})
		mustAdd(w, skeleton, component.TransformComponent.Kind(), &base)
		mustAdd(w, skeleton, component.AnimationPlayerComponent.Kind(), &component.AnimationPlayer{Player: anim.NewPlayer()})
	}
}

func spawnMeshes(w *ecs.World, scene *assets.Scene, base component.Transform) {
	for _, spec := range scene.Meshes {
		shape, err := spec.Build()
		if err != nil {
			log.Printf("scene: skip mesh: %v", err)
			continue
		}
		local := component.Transform{
			Translation: spec.LocalTranslation(),
			Rotation:    spec.LocalRotation(),
			Scale:       spec.LocalScale(),
		}
		world := Compose(base, local)
		rgba := spec.RGBA()

		e := ecs.CreateEntity(w)
		mustAdd(w, e, component.TransformComponent.Kind(), &world)
		mustAdd(w, e, component.MeshComponent.Kind(), &component.Mesh{
			Name:  spec.Name,
			Shape: shape,
			Color: color.RGBA{R: rgba[0], G: rgba[1], B: rgba[2], A: rgba[3]},
		})
	}
}

// Compose returns child expressed in parent's space.
func Compose(parent, child component.Transform) component.Transform {
	pr, ps := normalized(parent)
	cr, cs := normalized(child)
	offset := mgl32.Vec3{child.Translation[0] * ps[0], child.Translation[1] * ps[1], child.Translation[2] * ps[2]}
	return component.Transform{
		Translation: parent.Translation.Add(pr.Rotate(offset)),
		Rotation:    pr.Mul(cr),
		Scale:       mgl32.Vec3{ps[0] * cs[0], ps[1] * cs[1], ps[2] * cs[2]},
	}
}

func normalized(t component.Transform) (mgl32.Quat, mgl32.Vec3) {
	rot, scale := t.Rotation, t.Scale
	if rot.Len() == 0 {
		rot = mgl32.QuatIdent()
	}
	if scale == (mgl32.Vec3{}) {
		scale = mgl32.Vec3{1, 1, 1}
	}
	return rot.Normalize(), scale
}

func mustAdd[T any](w *ecs.World, e ecs.Entity, kind component.ComponentKind[T], value *T) {
	if err := ecs.Add(w, e, kind, value); err != nil {
		panic("system: spawn: " + err.Error())
	}
}
