package component

import "github.com/go-gl/mathgl/mgl32"

type Transform struct {
	Translation mgl32.Vec3
	Rotation    mgl32.Quat
	Scale       mgl32.Vec3
}

// NewTransform returns an identity transform at pos.
func NewTransform(pos mgl32.Vec3) Transform {
	return Transform{Translation: pos, Rotation: mgl32.QuatIdent(), Scale: mgl32.Vec3{1, 1, 1}}
}

// Matrix returns translate * rotate * scale. A zero quaternion or zero scale is
// treated as identity so partially filled prefab transforms stay usable.
func (t Transform) Matrix() mgl32.Mat4 {
	rot := t.Rotation
	if rot.Len() == 0 {
		rot = mgl32.QuatIdent()
	}
	scale := t.Scale
	if scale == (mgl32.Vec3{}) {
		scale = mgl32.Vec3{1, 1, 1}
	}
	return mgl32.Translate3D(t.Translation.X(), t.Translation.Y(), t.Translation.Z()).
		Mul4(rot.Normalize().Mat4()).
		Mul4(mgl32.Scale3D(scale.X(), scale.Y(), scale.Z()))
}

var TransformComponent = NewComponent[Transform]()
