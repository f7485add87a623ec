package prefabs

import "gopkg.in/yaml.v3"

type EntityBuildSpec struct {
	Name       string         `yaml:"name"`
	Components map[string]any `yaml:"components"`
}

func LoadEntityBuildSpec(filename string) (EntityBuildSpec, error) {
	return LoadSpec[EntityBuildSpec](filename)
}

func DecodeComponentSpec[T any](raw any) (T, error) {
	var zero T
	if raw == nil {
		return zero, nil
	}
	b, err := yaml.Marshal(raw)
	if err != nil {
		return zero, err
	}
	var out T
	if err := yaml.Unmarshal(b, &out); err != nil {
		return zero, err
	}
	return out, nil
}

type TransformComponentSpec struct {
	Translation [3]float32 `yaml:"translation"`
	Rotation    [3]float32 `yaml:"rotation"` // euler degrees, XYZ
	Scale       [3]float32 `yaml:"scale"`
}

type MeshComponentSpec struct {
	Name   string     `yaml:"name"`
	Shape  string     `yaml:"shape"`
	Size   [3]float32 `yaml:"size"`
	Radius float32    `yaml:"radius"`
	Color  string     `yaml:"color"`
}

type CameraComponentSpec struct {
	FovY float32 `yaml:"fov_y"`
	Near float32 `yaml:"near"`
	Far  float32 `yaml:"far"`
}

type OrbitCameraComponentSpec struct {
	Focus  [3]float32 `yaml:"focus"`
	Radius float32    `yaml:"radius"`
	Yaw    float32    `yaml:"yaw"`   // degrees
	Pitch  float32    `yaml:"pitch"` // degrees
}

type SceneRootComponentSpec struct {
	Scene string `yaml:"scene"`
}

type AnimationButtonComponentSpec struct {
	Slot  int    `yaml:"slot"`
	Label string `yaml:"label"`
}
