package system

import (
	"github.com/milk9111/modelviewer/ecs"
	"github.com/milk9111/modelviewer/ecs/component"
)

// ButtonFeedbackSystem shows the pressed visual on the button of the newly
// selected slot and the normal visual on every other button. It only acts on
// an accepted selection change.
type ButtonFeedbackSystem struct{}

func NewButtonFeedbackSystem() *ButtonFeedbackSystem {
	return &ButtonFeedbackSystem{}
}

func (s *ButtonFeedbackSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}
	events := w.Events().Peek(SelectionChangedEvent)
	if len(events) == 0 {
		return
	}
	changed, ok := events[len(events)-1].Data.(SelectionChanged)
	if !ok {
		return
	}

	ecs.ForEach(w, component.AnimationButtonComponent.Kind(), func(_ ecs.Entity, b *component.AnimationButton) {
		if b.Slot == changed.Slot {
			b.Visual = component.ButtonPressed
		} else {
			b.Visual = component.ButtonNormal
		}
	})
}
