package main

import (
	"fmt"
	"log"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/milk9111/modelviewer/assets"
	"github.com/milk9111/modelviewer/ecs"
	"github.com/milk9111/modelviewer/ecs/component"
	"github.com/milk9111/modelviewer/ecs/entity"
	"github.com/milk9111/modelviewer/ecs/system"
	"github.com/milk9111/modelviewer/input"
	"github.com/milk9111/modelviewer/prefabs"
	"github.com/milk9111/modelviewer/render"
	"github.com/milk9111/modelviewer/ui"
)

type Game struct {
	frames int

	viewer     *prefabs.ViewerSpec
	world      *ecs.World
	assets     *assets.Server
	controller *system.AnimationController
	hostInput  []ecs.System
	bar        *ui.AnimationBar
	renderer   *render.Wireframe
	watcher    *prefabs.Watcher
}

func NewGame(viewer *prefabs.ViewerSpec, debug, watch bool) (*Game, error) {
	server := assets.NewServer(assets.FS())
	catalog, err := entity.LoadAnimationCatalog(server, viewer)
	if err != nil {
		return nil, err
	}

	w := ecs.NewWorld()
	ctx := &entity.BuildContext{Assets: server, Viewer: viewer}
	if _, err := entity.BuildScene(w, ctx); err != nil {
		return nil, fmt.Errorf("build scene: %w", err)
	}

	controller := system.NewAnimationController(catalog, viewer.Blend())
	w.AddSystem(system.NewSceneSpawnSystem())
	w.AddSystem(system.NewOrbitCameraSystem())
	w.AddSystem(system.NewPickableRegistrarSystem())
	w.AddSystem(system.NewCursorRaySystem())
	w.AddSystem(system.NewRaycastSystem())
	w.AddSystem(system.NewMarkerSystem())
	w.AddSystem(controller)
	w.AddSystem(system.NewButtonFeedbackSystem())
	w.AddSystem(system.NewAnimationAdvanceSystem(viewer.Window.TPS))

	bar := ui.NewAnimationBar(w, viewer.Buttons)
	pointer := input.NewPointerSystem(viewer.Window.Width, viewer.Window.Height)
	pointer.Blocked = bar.Contains

	g := &Game{
		viewer:     viewer,
		world:      w,
		assets:     server,
		controller: controller,
		hostInput: []ecs.System{
			pointer,
			input.NewOrbitInputSystem(),
			input.NewKeyboardSelectSystem(),
			input.NewClipboardSystem(),
		},
		bar:      bar,
		renderer: render.NewWireframe(viewer.Colors, debug),
	}

	if watch {
		watcher, err := prefabs.NewWatcher("prefabs")
		if err != nil {
			log.Printf("prefab hot reload disabled: %v", err)
		} else {
			g.watcher = watcher
		}
	}
	return g, nil
}

func (g *Game) Update() error {
	g.frames++

	g.assets.Update()
	g.reloadChangedPrefabs()

	g.bar.Update()
	for _, s := range g.hostInput {
		s.Update(g.world)
	}
	g.world.Update()
	g.bar.Sync(g.world)

	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	g.renderer.Draw(screen, g.world, g.controller)
	g.bar.Draw(screen)
}

func (g *Game) LayoutF(outsideWidth, outsideHeight float64) (float64, float64) {
	return float64(g.viewer.Window.Width), float64(g.viewer.Window.Height)
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	panic("shouldn't use Layout")
}

func (g *Game) Close() {
	if g.watcher != nil {
		_ = g.watcher.Close()
	}
	g.assets.Close()
}

func (g *Game) reloadChangedPrefabs() {
	if g.watcher == nil {
		return
	}
	for _, name := range g.watcher.Drain() {
		if name != prefabs.ViewerSpecFile {
			log.Printf("prefab %s changed; restart to rebuild entities", name)
			continue
		}
		g.reloadConfig()
	}
}

// reloadConfig re-applies the tunable parts of viewer.yaml. The animation
// catalog and the entity set stay as they were built at startup.
func (g *Game) reloadConfig() {
	viewer, err := prefabs.LoadViewerSpec()
	if err != nil {
		log.Printf("failed to reload %s: %v", prefabs.ViewerSpecFile, err)
		return
	}
	g.controller.SetBlend(viewer.Blend())
	g.renderer.ApplyColors(viewer.Colors)
	ecs.ForEach(g.world, component.OrbitCameraComponent.Kind(), func(_ ecs.Entity, orbit *component.OrbitCamera) {
		entity.ApplyOrbitLimits(orbit, viewer.Camera)
	})
	g.viewer.Colors = viewer.Colors
	g.viewer.Camera = viewer.Camera
	g.viewer.BlendMS = viewer.BlendMS
	log.Printf("reloaded %s", prefabs.ViewerSpecFile)
}
