// Package ui holds the ebitenui widgets drawn over the 3D view.
package ui

import (
	"image"
	"image/color"

	"github.com/ebitenui/ebitenui"
	imageui "github.com/ebitenui/ebitenui/image"
	"github.com/ebitenui/ebitenui/widget"
	"github.com/hajimehoshi/ebiten/v2"
	ebtext "github.com/hajimehoshi/ebiten/v2/text/v2"
	"golang.org/x/image/colornames"
	"golang.org/x/image/font/basicfont"

	"github.com/milk9111/modelviewer/ecs"
	"github.com/milk9111/modelviewer/ecs/component"
	"github.com/milk9111/modelviewer/prefabs"
)

// AnimationBar is a row of toggle buttons along the bottom of the window, one
// per AnimationButton entity. Clicking sets Pressed on the entity; the pressed
// look follows the entity's Visual.
type AnimationBar struct {
	ui      *ebitenui.UI
	group   *widget.RadioGroup
	bar     *widget.Container
	buttons []*widget.Button
	ents    []ecs.Entity
}

func NewAnimationBar(w *ecs.World, spec prefabs.ButtonBarSpec) *AnimationBar {
	idle := imageui.NewNineSliceColor(color.NRGBA{R: 0x33, G: 0x33, B: 0x33, A: 220})
	hover := imageui.NewNineSliceColor(color.NRGBA{R: 0x4a, G: 0x4a, B: 0x4a, A: 230})
	pressed := imageui.NewNineSliceColor(colornames.Steelblue)

	var face ebtext.Face = ebtext.NewGoXFace(basicfont.Face7x13)
	textColor := &widget.ButtonTextColor{Idle: colornames.White}

	bar := widget.NewContainer(
		widget.ContainerOpts.Layout(widget.NewRowLayout(
			widget.RowLayoutOpts.Direction(widget.DirectionHorizontal),
			widget.RowLayoutOpts.Spacing(spec.Margin),
			widget.RowLayoutOpts.Padding(&widget.Insets{Bottom: spec.Margin}),
		)),
		widget.ContainerOpts.WidgetOpts(
			widget.WidgetOpts.LayoutData(widget.AnchorLayoutData{
				HorizontalPosition: widget.AnchorLayoutPositionCenter,
				VerticalPosition:   widget.AnchorLayoutPositionEnd,
			}),
		),
	)

	b := &AnimationBar{bar: bar}
	ecs.ForEach(w, component.AnimationButtonComponent.Kind(), func(e ecs.Entity, ab *component.AnimationButton) {
		ent := e
		btn := widget.NewButton(
			widget.ButtonOpts.Image(&widget.ButtonImage{Idle: idle, Hover: hover, Pressed: pressed}),
			widget.ButtonOpts.Text(ab.Label, &face, textColor),
			widget.ButtonOpts.ToggleMode(),
			widget.ButtonOpts.WidgetOpts(widget.WidgetOpts.MinSize(spec.Size, spec.Size)),
			widget.ButtonOpts.ClickedHandler(func(args *widget.ButtonClickedEventArgs) {
				if target, ok := ecs.Get(w, ent, component.AnimationButtonComponent.Kind()); ok {
					target.Pressed = true
				}
			}),
		)
		b.buttons = append(b.buttons, btn)
		b.ents = append(b.ents, ent)
		bar.AddChild(btn)
	})

	elements := make([]widget.RadioGroupElement, 0, len(b.buttons))
	for _, btn := range b.buttons {
		elements = append(elements, btn)
	}
	b.group = widget.NewRadioGroup(widget.RadioGroupOpts.Elements(elements...))
	b.group.SetActive(nil)

	root := widget.NewContainer(widget.ContainerOpts.Layout(widget.NewAnchorLayout()))
	root.AddChild(bar)
	b.ui = &ebitenui.UI{Container: root}
	return b
}

// Sync shows the pressed look on the button whose entity is ButtonPressed.
// A click toggles a button locally; this puts the group back in line with the
// world once the controller has ruled on it.
func (b *AnimationBar) Sync(w *ecs.World) {
	var want *widget.Button
	for i, e := range b.ents {
		if ab, ok := ecs.Get(w, e, component.AnimationButtonComponent.Kind()); ok && ab.Visual == component.ButtonPressed {
			want = b.buttons[i]
			break
		}
	}
	if want == nil {
		b.group.SetActive(nil)
		return
	}
	b.group.SetActive(want)
}

// Contains reports whether a window point lies over the bar.
func (b *AnimationBar) Contains(x, y int) bool {
	return image.Pt(x, y).In(b.bar.GetWidget().Rect)
}

func (b *AnimationBar) Update() {
	b.ui.Update()
}

func (b *AnimationBar) Draw(screen *ebiten.Image) {
	b.ui.Draw(screen)
}
