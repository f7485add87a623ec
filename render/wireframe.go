// Package render draws the world as projected mesh edges.
package render

import (
	"fmt"
	"image/color"
	"strings"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/colornames"

	"github.com/milk9111/modelviewer/ecs"
	"github.com/milk9111/modelviewer/ecs/component"
	"github.com/milk9111/modelviewer/ecs/system"
	"github.com/milk9111/modelviewer/prefabs"
)

const (
	lineWidth    = 1.5
	markerRadius = 5
)

type Wireframe struct {
	Background color.Color
	Line       color.Color
	Marker     color.Color
	Debug      bool
}

func NewWireframe(colors prefabs.ColorsSpec, debug bool) *Wireframe {
	r := &Wireframe{Debug: debug}
	r.ApplyColors(colors)
	return r
}

func (r *Wireframe) ApplyColors(colors prefabs.ColorsSpec) {
	r.Background = colors.Background.Color
	r.Line = colors.Wireframe.Color
	r.Marker = colors.Marker.Color
}

func (r *Wireframe) Draw(screen *ebiten.Image, w *ecs.World, ctrl *system.AnimationController) {
	screen.Fill(r.Background)

	camEnt, ok := w.First(component.CameraComponent.Kind())
	if !ok {
		return
	}
	cam, _ := ecs.Get(w, camEnt, component.CameraComponent.Kind())
	viewProj := cam.Projection().Mul4(cam.View())

	ecs.ForEach2(w, component.MeshComponent.Kind(), component.TransformComponent.Kind(), func(e ecs.Entity, mesh *component.Mesh, t *component.Transform) {
		if mesh.Shape == nil {
			return
		}
		clr := color.Color(mesh.Color)
		if mesh.Color == (color.RGBA{}) {
			clr = r.Line
		}
		mvp := viewProj.Mul4(t.Matrix())
		for _, edge := range mesh.Shape.Edges() {
			x0, y0, ok0 := project(mvp, edge[0], cam.ViewportW, cam.ViewportH)
			x1, y1, ok1 := project(mvp, edge[1], cam.ViewportW, cam.ViewportH)
			if !ok0 || !ok1 {
				continue
			}
			vector.StrokeLine(screen, x0, y0, x1, y1, lineWidth, clr, true)
		}
	})

	ecs.ForEach2(w, component.LightTagComponent.Kind(), component.TransformComponent.Kind(), func(_ ecs.Entity, _ *component.LightTag, t *component.Transform) {
		if x, y, ok := project(viewProj, t.Translation, cam.ViewportW, cam.ViewportH); ok {
			vector.StrokeLine(screen, x-6, y, x+6, y, lineWidth, colornames.Gold, true)
			vector.StrokeLine(screen, x, y-6, x, y+6, lineWidth, colornames.Gold, true)
		}
	})

	if markerEnt, ok := w.First(component.MarkerTagComponent.Kind()); ok {
		if t, ok := ecs.Get(w, markerEnt, component.TransformComponent.Kind()); ok {
			if x, y, ok := project(viewProj, t.Translation, cam.ViewportW, cam.ViewportH); ok {
				vector.DrawFilledCircle(screen, x, y, markerRadius, r.Marker, true)
			}
		}
	}

	ebitenutil.DebugPrint(screen, r.overlay(w, ctrl))
}

func (r *Wireframe) overlay(w *ecs.World, ctrl *system.AnimationController) string {
	var b strings.Builder
	fmt.Fprintf(&b, "FPS: %.1f  TPS: %.1f\n", ebiten.ActualFPS(), ebiten.ActualTPS())
	if ctrl == nil {
		return b.String()
	}

	sel := ctrl.Selection()
	if sel.HasActive {
		fmt.Fprintf(&b, "selected slot: %d\n", sel.ActiveSlot)
	} else {
		b.WriteString("selected slot: none (baseline 0)\n")
	}
	if !r.Debug {
		return b.String()
	}

	cat := ctrl.Catalog()
	graph, _ := cat.Graph.Get()
	ecs.ForEach(w, component.AnimationPlayerComponent.Kind(), func(e ecs.Entity, p *component.AnimationPlayer) {
		if p.Player == nil {
			return
		}
		fmt.Fprintf(&b, "player %v\n", e)
		for _, n := range p.Player.Playing() {
			a, _ := p.Player.Animation(n)
			name := fmt.Sprintf("node %d", n)
			if graph != nil {
				if clip, ok := graph.Clip(n); ok {
					name = clip.Name
				}
			}
			fmt.Fprintf(&b, "  %-6s weight %.2f  t %.2fs\n", name, a.Weight(), a.SeekTime())
		}
	})
	return b.String()
}

// project maps a world point to window pixels. Points behind the camera are
// rejected.
func project(mvp mgl32.Mat4, p mgl32.Vec3, width, height int) (float32, float32, bool) {
	clip := mvp.Mul4x1(p.Vec4(1))
	if clip.W() <= 1e-4 {
		return 0, 0, false
	}
	ndc := clip.Vec3().Mul(1 / clip.W())
	x := (ndc.X() + 1) / 2 * float32(width)
	y := (1 - ndc.Y()) / 2 * float32(height)
	return x, y, true
}
