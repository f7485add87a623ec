package system

import (
	"fmt"
	"time"

	"github.com/milk9111/modelviewer/anim"
	"github.com/milk9111/modelviewer/assets"
	"github.com/milk9111/modelviewer/ecs"
	"github.com/milk9111/modelviewer/ecs/component"
)

const (
	DefaultBlend          = 250 * time.Millisecond
	SelectionChangedEvent = "selection_changed"
)

// AnimationCatalog maps slot ids to clip nodes of one shared graph.
type AnimationCatalog struct {
	Clips []anim.NodeIndex
	Graph *assets.Handle[*anim.Graph]
}

func (c AnimationCatalog) Len() int {
	return len(c.Clips)
}

// SelectionState is the slot the user last selected. HasActive is false until
// the first accepted press; slot 0 plays in the meantime.
type SelectionState struct {
	ActiveSlot int
	HasActive  bool
}

// SelectionChanged is the payload of SelectionChangedEvent.
type SelectionChanged struct {
	Previous SelectionState
	Slot     int
}

// AnimationController starts every newly loaded animation player on the
// selected clip and crossfades all players when a button selects another slot.
type AnimationController struct {
	catalog   AnimationCatalog
	selection SelectionState
	blend     time.Duration
}

func NewAnimationController(catalog AnimationCatalog, blend time.Duration) *AnimationController {
	if catalog.Len() == 0 {
		panic("system: animation catalog is empty")
	}
	if blend < 0 {
		blend = DefaultBlend
	}
	return &AnimationController{catalog: catalog, blend: blend}
}

func (c *AnimationController) Selection() SelectionState {
	return c.selection
}

func (c *AnimationController) Catalog() AnimationCatalog {
	return c.catalog
}

// SetBlend changes the crossfade used for subsequent selections.
func (c *AnimationController) SetBlend(d time.Duration) {
	if d >= 0 {
		c.blend = d
	}
}

func (c *AnimationController) Blend() time.Duration {
	return c.blend
}

func (c *AnimationController) Update(w *ecs.World) {
	if w == nil {
		return
	}

	c.startNewPlayers(w)

	slot, pressed := c.takePress(w)
	if !pressed {
		return
	}
	node := c.clip(slot)
	if c.selection.HasActive && c.selection.ActiveSlot == slot {
		return
	}

	prev := c.selection
	c.selection = SelectionState{ActiveSlot: slot, HasActive: true}

	ecs.ForEach2(w, component.AnimationPlayerComponent.Kind(), component.AnimationTransitionsComponent.Kind(), func(e ecs.Entity, p *component.AnimationPlayer, t *component.AnimationTransitions) {
		if p.Player == nil {
			return
		}
		next := anim.NewTransitions()
		if t.Transitions != nil {
			next = t.Transitions.Handoff(p.Player)
		}
		next.Play(p.Player, node, c.blend).Repeat()
		t.Transitions = next
	})

	w.Events().Push(ecs.Event{Type: SelectionChangedEvent, Data: SelectionChanged{Previous: prev, Slot: slot}})
}

// startNewPlayers gives every player seen for the first time the shared graph
// and a baseline transition set playing the current selection.
func (c *AnimationController) startNewPlayers(w *ecs.World) {
	var fresh []ecs.Entity
	ecs.ForEach(w, component.AnimationPlayerComponent.Kind(), func(e ecs.Entity, _ *component.AnimationPlayer) {
		if !ecs.Has(w, e, component.AnimationTransitionsComponent.Kind()) {
			fresh = append(fresh, e)
		}
	})

	for _, e := range fresh {
		p, _ := ecs.Get(w, e, component.AnimationPlayerComponent.Kind())
		if p.Player == nil {
			p.Player = anim.NewPlayer()
		}
		if err := ecs.Add(w, e, component.AnimationGraphComponent.Kind(), &component.AnimationGraph{Handle: c.catalog.Graph}); err != nil {
			panic("system: attach animation graph: " + err.Error())
		}

		t := anim.NewTransitions()
		t.Play(p.Player, c.clip(c.baselineSlot()), 0).Repeat()
		if err := ecs.Add(w, e, component.AnimationTransitionsComponent.Kind(), &component.AnimationTransitions{Transitions: t}); err != nil {
			panic("system: attach animation transitions: " + err.Error())
		}
	}
}

func (c *AnimationController) baselineSlot() int {
	if c.selection.HasActive {
		return c.selection.ActiveSlot
	}
	return 0
}

// takePress returns the first pressed button in entity order and clears every
// pressed flag.
func (c *AnimationController) takePress(w *ecs.World) (int, bool) {
	slot, found := 0, false
	ecs.ForEach(w, component.AnimationButtonComponent.Kind(), func(_ ecs.Entity, b *component.AnimationButton) {
		if !b.Pressed {
			return
		}
		b.Pressed = false
		if !found {
			slot, found = b.Slot, true
		}
	})
	return slot, found
}

func (c *AnimationController) clip(slot int) anim.NodeIndex {
	if slot < 0 || slot >= c.catalog.Len() {
		panic(fmt.Sprintf("system: animation slot %d out of range [0, %d)", slot, c.catalog.Len()))
	}
	return c.catalog.Clips[slot]
}
