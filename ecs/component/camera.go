package component

import "github.com/go-gl/mathgl/mgl32"

type Camera struct {
	Position  mgl32.Vec3
	Focus     mgl32.Vec3
	Up        mgl32.Vec3
	FovY      float32 // degrees
	Near      float32
	Far       float32
	ViewportW int
	ViewportH int
}

func (c Camera) View() mgl32.Mat4 {
	up := c.Up
	if up == (mgl32.Vec3{}) {
		up = mgl32.Vec3{0, 1, 0}
	}
	return mgl32.LookAtV(c.Position, c.Focus, up)
}

func (c Camera) Projection() mgl32.Mat4 {
	aspect := float32(1)
	if c.ViewportH > 0 {
		aspect = float32(c.ViewportW) / float32(c.ViewportH)
	}
	return mgl32.Perspective(mgl32.DegToRad(c.FovY), aspect, c.Near, c.Far)
}

var CameraComponent = NewComponent[Camera]()

// OrbitCamera drives Camera.Position around Focus.
type OrbitCamera struct {
	Focus            mgl32.Vec3
	Radius           float32
	Yaw              float32 // radians
	Pitch            float32 // radians
	ZoomLower        float32
	ZoomUpper        float32
	OrbitSensitivity float32
	ZoomSensitivity  float32
	PanSensitivity   float32
}

var OrbitCameraComponent = NewComponent[OrbitCamera]()
