package component

import (
	"image/color"

	"github.com/milk9111/modelviewer/raycast"
)

// Mesh is renderable geometry in local space.
type Mesh struct {
	Name  string
	Shape raycast.Shape
	Color color.RGBA
}

var MeshComponent = NewComponent[Mesh]()
