package input

import (
	"fmt"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"golang.design/x/clipboard"

	"github.com/milk9111/modelviewer/ecs"
	"github.com/milk9111/modelviewer/ecs/component"
)

// ClipboardSystem copies the marker position as "x, y, z" when C is pressed.
type ClipboardSystem struct {
	ready  bool
	failed bool
}

func NewClipboardSystem() *ClipboardSystem {
	return &ClipboardSystem{}
}

func (s *ClipboardSystem) Update(w *ecs.World) {
	if w == nil || !inpututil.IsKeyJustPressed(ebiten.KeyC) {
		return
	}
	if !s.init() {
		return
	}
	e, ok := w.First(component.MarkerTagComponent.Kind())
	if !ok {
		return
	}
	t, ok := ecs.Get(w, e, component.TransformComponent.Kind())
	if !ok {
		return
	}
	p := t.Translation
	text := fmt.Sprintf("%.3f, %.3f, %.3f", p.X(), p.Y(), p.Z())
	clipboard.Write(clipboard.FmtText, []byte(text))
	log.Printf("copied marker position %s", text)
}

func (s *ClipboardSystem) init() bool {
	if s.ready {
		return true
	}
	if s.failed {
		return false
	}
	if err := clipboard.Init(); err != nil {
		log.Printf("clipboard unavailable: %v", err)
		s.failed = true
		return false
	}
	s.ready = true
	return true
}
