package component

import "github.com/milk9111/modelviewer/assets"

type SceneStage int

const (
	SceneWaiting SceneStage = iota
	SceneMeshesSpawned
	SceneDone
)

// SceneRoot spawns the meshes of a scene asset under this entity's transform,
// then the animated skeleton on the following tick.
type SceneRoot struct {
	Handle *assets.Handle[*assets.Scene]
	Stage  SceneStage
}

var SceneRootComponent = NewComponent[SceneRoot]()
