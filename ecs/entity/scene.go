package entity

import (
	"fmt"

	"github.com/milk9111/modelviewer/anim"
	"github.com/milk9111/modelviewer/assets"
	"github.com/milk9111/modelviewer/ecs"
	"github.com/milk9111/modelviewer/ecs/system"
	"github.com/milk9111/modelviewer/prefabs"
)

const buttonPrefab = "button.yaml"

// LoadAnimationCatalog requests every clip the viewer config lists, in slot
// order, and builds the graph they share. Clips may still be loading when it
// returns; the graph holds their handles.
func LoadAnimationCatalog(s *assets.Server, viewer *prefabs.ViewerSpec) (system.AnimationCatalog, error) {
	if viewer == nil || len(viewer.Animations) == 0 {
		return system.AnimationCatalog{}, fmt.Errorf("animation catalog: no animations configured")
	}
	if viewer.Model == "" {
		return system.AnimationCatalog{}, fmt.Errorf("animation catalog: no model configured")
	}

	g := anim.NewGraph()
	srcs := make([]anim.ClipSource, 0, len(viewer.Animations))
	for _, slot := range viewer.Animations {
		srcs = append(srcs, assets.LoadClip(s, viewer.Model+"#"+slot.Label))
	}
	clips := g.AddClips(srcs, 1, g.Root())

	return system.AnimationCatalog{
		Clips: clips,
		Graph: assets.Ready(viewer.Model+"#graph", g),
	}, nil
}

// BuildScene spawns the entities listed in the viewer config followed by one
// animation button per catalog slot.
func BuildScene(w *ecs.World, ctx *BuildContext) ([]ecs.Entity, error) {
	if ctx == nil || ctx.Viewer == nil {
		return nil, fmt.Errorf("build scene: no viewer config")
	}

	var out []ecs.Entity
	for _, name := range ctx.Viewer.Entities {
		e, err := BuildEntity(w, name, ctx)
		if err != nil {
			return out, err
		}
		out = append(out, e)
	}

	buttons, err := BuildAnimationButtons(w, ctx)
	return append(out, buttons...), err
}

// BuildAnimationButtons creates buttons in slot order, so entity order matches
// slot order.
func BuildAnimationButtons(w *ecs.World, ctx *BuildContext) ([]ecs.Entity, error) {
	var out []ecs.Entity
	for slot, a := range ctx.Viewer.Animations {
		spec, err := prefabs.LoadEntityBuildSpec(buttonPrefab)
		if err != nil {
			return out, fmt.Errorf("build button %d: %w", slot, err)
		}
		label := a.Name
		if label == "" {
			label = a.Label
		}
		spec.Components["animation_button"] = map[string]any{"slot": slot, "label": label}

		e, err := buildFromSpec(w, buttonPrefab, spec, ctx)
		if err != nil {
			return out, err
		}
		out = append(out, e)
	}
	return out, nil
}
