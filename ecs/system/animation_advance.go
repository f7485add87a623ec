package system

import (
	"github.com/milk9111/modelviewer/ecs"
	"github.com/milk9111/modelviewer/ecs/component"
)

// AnimationAdvanceSystem moves every player forward by one tick and declines
// fading transition weights.
type AnimationAdvanceSystem struct {
	Step float32 // seconds per tick
}

func NewAnimationAdvanceSystem(tps int) *AnimationAdvanceSystem {
	step := float32(1.0 / 60.0)
	if tps > 0 {
		step = 1 / float32(tps)
	}
	return &AnimationAdvanceSystem{Step: step}
}

func (s *AnimationAdvanceSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}
	ecs.ForEach2(w, component.AnimationPlayerComponent.Kind(), component.AnimationGraphComponent.Kind(), func(e ecs.Entity, p *component.AnimationPlayer, g *component.AnimationGraph) {
		if p.Player == nil {
			return
		}
		if t, ok := ecs.Get(w, e, component.AnimationTransitionsComponent.Kind()); ok && t.Transitions != nil {
			t.Transitions.Advance(p.Player, s.Step)
		}
		graph, ok := g.Handle.Get()
		if !ok {
			return
		}
		p.Player.Tick(graph, s.Step)
	})
}
