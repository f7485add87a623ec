// Package input feeds ebiten mouse and keyboard state into the world.
package input

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/milk9111/modelviewer/ecs"
	"github.com/milk9111/modelviewer/ecs/component"
)

// PointerSystem copies the cursor position into every Pointer component.
// Blocked reports whether a point is covered by UI chrome, which takes the
// cursor out of the 3D viewport.
type PointerSystem struct {
	Width, Height int
	Blocked       func(x, y int) bool
}

func NewPointerSystem(width, height int) *PointerSystem {
	return &PointerSystem{Width: width, Height: height}
}

func (s *PointerSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}
	x, y := ebiten.CursorPosition()
	inside := x >= 0 && y >= 0 && x < s.Width && y < s.Height
	if inside && s.Blocked != nil && s.Blocked(x, y) {
		inside = false
	}
	ecs.ForEach(w, component.PointerComponent.Kind(), func(_ ecs.Entity, p *component.Pointer) {
		p.X, p.Y = float32(x), float32(y)
		p.InViewport = inside
	})
}

// OrbitInputSystem turns right-drag into orbit, middle-drag into pan and the
// wheel into zoom.
type OrbitInputSystem struct {
	lastX, lastY int
	dragging     bool
}

func NewOrbitInputSystem() *OrbitInputSystem {
	return &OrbitInputSystem{}
}

func (s *OrbitInputSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}
	x, y := ebiten.CursorPosition()
	orbiting := ebiten.IsMouseButtonPressed(ebiten.MouseButtonRight)
	panning := ebiten.IsMouseButtonPressed(ebiten.MouseButtonMiddle)
	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonRight) || inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonMiddle) {
		s.lastX, s.lastY = x, y
	}

	dx, dy := float32(x-s.lastX), float32(y-s.lastY)
	s.lastX, s.lastY = x, y
	_, wheel := ebiten.Wheel()

	ecs.ForEach(w, component.OrbitInputComponent.Kind(), func(_ ecs.Entity, in *component.OrbitInput) {
		if orbiting {
			in.DragX += dx
			in.DragY += dy
		}
		if panning {
			in.PanX += dx
			in.PanY += dy
		}
		in.Scroll += float32(wheel)
	})
}
