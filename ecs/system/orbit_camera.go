package system

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/milk9111/modelviewer/common"
	"github.com/milk9111/modelviewer/ecs"
	"github.com/milk9111/modelviewer/ecs/component"
)

const maxPitch = float32(math.Pi/2) - 0.01

// OrbitCameraSystem applies the tick's drag and wheel input to the orbit
// camera and writes the resulting eye position to Camera.
type OrbitCameraSystem struct{}

func NewOrbitCameraSystem() *OrbitCameraSystem {
	return &OrbitCameraSystem{}
}

func (s *OrbitCameraSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}
	ecs.ForEach2(w, component.OrbitCameraComponent.Kind(), component.CameraComponent.Kind(), func(e ecs.Entity, orbit *component.OrbitCamera, cam *component.Camera) {
		if in, ok := ecs.Get(w, e, component.OrbitInputComponent.Kind()); ok {
			orbit.Yaw -= in.DragX * orbit.OrbitSensitivity
			orbit.Pitch += in.DragY * orbit.OrbitSensitivity
			orbit.Radius -= in.Scroll * orbit.ZoomSensitivity

			if orbit.PanSensitivity != 0 {
				right, up := orbitBasis(orbit.Yaw, orbit.Pitch)
				pan := right.Mul(-in.PanX * orbit.PanSensitivity).Add(up.Mul(in.PanY * orbit.PanSensitivity))
				orbit.Focus = orbit.Focus.Add(pan)
			}
			*in = component.OrbitInput{}
		}

		orbit.Pitch = common.Clamp(orbit.Pitch, -maxPitch, maxPitch)
		if orbit.ZoomUpper > orbit.ZoomLower {
			orbit.Radius = common.Clamp(orbit.Radius, orbit.ZoomLower, orbit.ZoomUpper)
		}

		cam.Focus = orbit.Focus
		cam.Position = OrbitEye(orbit.Focus, orbit.Radius, orbit.Yaw, orbit.Pitch)
		cam.Up = mgl32.Vec3{0, 1, 0}
	})
}

// OrbitEye returns the eye position at radius from focus. Yaw 0 looks down -Z.
func OrbitEye(focus mgl32.Vec3, radius, yaw, pitch float32) mgl32.Vec3 {
	cp := float32(math.Cos(float64(pitch)))
	offset := mgl32.Vec3{
		radius * cp * float32(math.Sin(float64(yaw))),
		radius * float32(math.Sin(float64(pitch))),
		radius * cp * float32(math.Cos(float64(yaw))),
	}
	return focus.Add(offset)
}

func orbitBasis(yaw, pitch float32) (right, up mgl32.Vec3) {
	forward := OrbitEye(mgl32.Vec3{}, 1, yaw, pitch).Mul(-1)
	right = forward.Cross(mgl32.Vec3{0, 1, 0}).Normalize()
	up = right.Cross(forward).Normalize()
	return right, up
}
