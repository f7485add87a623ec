package assets

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/go-gl/mathgl/mgl32"
	"gopkg.in/yaml.v3"

	"github.com/milk9111/modelviewer/anim"
	"github.com/milk9111/modelviewer/raycast"
)

// Model is a yaml-described model: scenes of meshes and named animation clips.
type Model struct {
	Name       string           `yaml:"name"`
	Scenes     []Scene          `yaml:"scenes"`
	Animations []ModelAnimation `yaml:"animations"`
}

type Scene struct {
	Meshes []MeshSpec `yaml:"meshes"`
}

type ModelAnimation struct {
	Name     string  `yaml:"name"`
	Duration float32 `yaml:"duration"`
}

// MeshSpec describes one mesh and its transform relative to the scene root.
type MeshSpec struct {
	Name        string       `yaml:"name"`
	Shape       string       `yaml:"shape"`
	Size        [3]float32   `yaml:"size"`
	Radius      float32      `yaml:"radius"`
	Vertices    [][3]float32 `yaml:"vertices"`
	Indices     []uint32     `yaml:"indices"`
	Translation [3]float32   `yaml:"translation"`
	Rotation    [3]float32   `yaml:"rotation"` // euler degrees, XYZ
	Scale       [3]float32   `yaml:"scale"`
	Color       string       `yaml:"color"`
}

// Build constructs the local-space collision shape.
func (m MeshSpec) Build() (raycast.Shape, error) {
	switch strings.ToLower(m.Shape) {
	case "plane":
		return raycast.Plane{Width: m.Size[0], Depth: m.Size[2]}, nil
	case "sphere":
		return raycast.Sphere{Radius: m.Radius}, nil
	case "box":
		return raycast.Box{Half: mgl32.Vec3{m.Size[0] / 2, m.Size[1] / 2, m.Size[2] / 2}}, nil
	case "triangles":
		verts := make([]mgl32.Vec3, len(m.Vertices))
		for i, v := range m.Vertices {
			verts[i] = mgl32.Vec3(v)
		}
		return raycast.Triangles{Vertices: verts, Indices: m.Indices}, nil
	default:
		return nil, fmt.Errorf("mesh %q: unknown shape %q", m.Name, m.Shape)
	}
}

// LocalTranslation, LocalRotation and LocalScale expose the mesh transform.
func (m MeshSpec) LocalTranslation() mgl32.Vec3 { return mgl32.Vec3(m.Translation) }

func (m MeshSpec) LocalRotation() mgl32.Quat {
	r := m.Rotation
	return mgl32.AnglesToQuat(mgl32.DegToRad(r[0]), mgl32.DegToRad(r[1]), mgl32.DegToRad(r[2]), mgl32.XYZ)
}

func (m MeshSpec) LocalScale() mgl32.Vec3 {
	if m.Scale == ([3]float32{}) {
		return mgl32.Vec3{1, 1, 1}
	}
	return mgl32.Vec3(m.Scale)
}

// RGBA parses Color as #rrggbb or #rrggbbaa. Empty or invalid yields white.
func (m MeshSpec) RGBA() [4]uint8 {
	s := strings.TrimPrefix(m.Color, "#")
	if len(s) == 6 {
		s += "ff"
	}
	v, err := strconv.ParseUint(s, 16, 32)
	if len(s) != 8 || err != nil {
		return [4]uint8{255, 255, 255, 255}
	}
	return [4]uint8{uint8(v >> 24), uint8(v >> 16), uint8(v >> 8), uint8(v)}
}

// DecodeModel parses a whole model file. Labels are ignored.
func DecodeModel(data []byte, _ string) (*Model, error) {
	var m Model
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("decode model: %w", err)
	}
	return &m, nil
}

// DecodeScene selects a "SceneN" label from a model file.
func DecodeScene(data []byte, label string) (*Scene, error) {
	m, err := DecodeModel(data, "")
	if err != nil {
		return nil, err
	}
	i, err := labelIndex(label, "Scene")
	if err != nil || i >= len(m.Scenes) {
		return nil, fmt.Errorf("%w: %q", ErrUnknownLabel, label)
	}
	return &m.Scenes[i], nil
}

// DecodeClip selects an "AnimationN" label from a model file.
func DecodeClip(data []byte, label string) (anim.Clip, error) {
	m, err := DecodeModel(data, "")
	if err != nil {
		return anim.Clip{}, err
	}
	i, err := labelIndex(label, "Animation")
	if err != nil || i >= len(m.Animations) {
		return anim.Clip{}, fmt.Errorf("%w: %q", ErrUnknownLabel, label)
	}
	a := m.Animations[i]
	return anim.Clip{Name: a.Name, Duration: a.Duration}, nil
}

func labelIndex(label, prefix string) (int, error) {
	rest, ok := strings.CutPrefix(label, prefix)
	if !ok {
		return 0, ErrUnknownLabel
	}
	i, err := strconv.Atoi(rest)
	if err != nil || i < 0 {
		return 0, ErrUnknownLabel
	}
	return i, nil
}

// LoadScene requests "path#SceneN".
func LoadScene(s *Server, path string) *Handle[*Scene] {
	return Load(s, path, DecodeScene)
}

// LoadClip requests "path#AnimationN".
func LoadClip(s *Server, path string) *Handle[anim.Clip] {
	return Load(s, path, DecodeClip)
}
