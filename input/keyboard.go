package input

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/milk9111/modelviewer/ecs"
	"github.com/milk9111/modelviewer/ecs/component"
)

var digitKeys = []ebiten.Key{
	ebiten.KeyDigit1, ebiten.KeyDigit2, ebiten.KeyDigit3,
	ebiten.KeyDigit4, ebiten.KeyDigit5, ebiten.KeyDigit6,
	ebiten.KeyDigit7, ebiten.KeyDigit8, ebiten.KeyDigit9,
}

// KeyboardSelectSystem presses the button for slot N-1 when digit N goes down.
type KeyboardSelectSystem struct{}

func NewKeyboardSelectSystem() *KeyboardSelectSystem {
	return &KeyboardSelectSystem{}
}

func (s *KeyboardSelectSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}
	for slot, key := range digitKeys {
		if !inpututil.IsKeyJustPressed(key) {
			continue
		}
		ecs.ForEach(w, component.AnimationButtonComponent.Kind(), func(_ ecs.Entity, b *component.AnimationButton) {
			if b.Slot == slot {
				b.Pressed = true
			}
		})
	}
}
