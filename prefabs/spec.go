package prefabs

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

func LoadSpec[T any](filename string) (T, error) {
	var zero T
	data, err := Load(filename)
	if err != nil {
		return zero, fmt.Errorf("prefabs: load %s: %w", filename, err)
	}

	var spec T
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return zero, fmt.Errorf("prefabs: unmarshal %s: %w", filename, err)
	}

	return spec, nil
}

const ViewerSpecFile = "viewer.yaml"

// ViewerSpec is the top-level viewer configuration.
type ViewerSpec struct {
	Window     WindowSpec        `yaml:"window"`
	Model      string            `yaml:"model"`
	BlendMS    *int              `yaml:"blend_ms"`
	Animations []CatalogSlotSpec `yaml:"animations"`
	Camera     OrbitLimitsSpec   `yaml:"camera"`
	Colors     ColorsSpec        `yaml:"colors"`
	Buttons    ButtonBarSpec     `yaml:"buttons"`
	Entities   []string          `yaml:"entities"`
}

type WindowSpec struct {
	Width  int    `yaml:"width"`
	Height int    `yaml:"height"`
	Title  string `yaml:"title"`
	TPS    int    `yaml:"tps"`
}

// CatalogSlotSpec binds a slot, in list order, to a model animation label.
type CatalogSlotSpec struct {
	Label string `yaml:"label"`
	Name  string `yaml:"name"`
}

type OrbitLimitsSpec struct {
	ZoomLower        float32 `yaml:"zoom_lower"`
	ZoomUpper        float32 `yaml:"zoom_upper"`
	OrbitSensitivity float32 `yaml:"orbit_sensitivity"`
	ZoomSensitivity  float32 `yaml:"zoom_sensitivity"`
	PanSensitivity   float32 `yaml:"pan_sensitivity"`
}

type ColorsSpec struct {
	Background YAMLColor `yaml:"background"`
	Wireframe  YAMLColor `yaml:"wireframe"`
	Marker     YAMLColor `yaml:"marker"`
	Text       YAMLColor `yaml:"text"`
}

type ButtonBarSpec struct {
	Size   int `yaml:"size"`
	Margin int `yaml:"margin"`
}

// Blend returns the crossfade duration, 250ms when unset.
func (v ViewerSpec) Blend() time.Duration {
	if v.BlendMS == nil || *v.BlendMS < 0 {
		return 250 * time.Millisecond
	}
	return time.Duration(*v.BlendMS) * time.Millisecond
}

func LoadViewerSpec() (*ViewerSpec, error) {
	spec, err := LoadSpec[ViewerSpec](ViewerSpecFile)
	if err != nil {
		return nil, err
	}
	spec.applyDefaults()
	return &spec, nil
}

func (v *ViewerSpec) applyDefaults() {
	if v.Window.Width == 0 {
		v.Window.Width = 1280
	}
	if v.Window.Height == 0 {
		v.Window.Height = 720
	}
	if v.Window.TPS == 0 {
		v.Window.TPS = 60
	}
	if v.Buttons.Size == 0 {
		v.Buttons.Size = 100
	}
	if v.Buttons.Margin == 0 {
		v.Buttons.Margin = 15
	}
	if v.Camera.ZoomLower == 0 && v.Camera.ZoomUpper == 0 {
		v.Camera.ZoomLower, v.Camera.ZoomUpper = 100, 320
	}
	fill := func(c *YAMLColor, def color.NRGBA) {
		if c.Color == nil {
			c.Color = def
		}
	}
	fill(&v.Colors.Background, color.NRGBA{R: 0x1e, G: 0x1e, B: 0x28, A: 0xff})
	fill(&v.Colors.Wireframe, color.NRGBA{R: 0xdd, G: 0xdd, B: 0xdd, A: 0xff})
	fill(&v.Colors.Marker, color.NRGBA{R: 0xff, G: 0x30, B: 0x30, A: 0xff})
	fill(&v.Colors.Text, color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff})
}

type YAMLColor struct {
	color.Color
}

func (c *YAMLColor) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.ScalarNode {
		return fmt.Errorf("color must be a string")
	}
	parsed, err := ParseHexColor(value.Value)
	if err != nil {
		return err
	}
	c.Color = parsed
	return nil
}

// ParseHexColor accepts #rrggbb and #rrggbbaa.
func ParseHexColor(v string) (color.NRGBA, error) {
	s := strings.TrimPrefix(strings.TrimSpace(v), "#")
	if len(s) != 6 && len(s) != 8 {
		return color.NRGBA{}, fmt.Errorf("invalid color format: %q", v)
	}

	parse := func(start int) (uint8, error) {
		n, err := strconv.ParseUint(s[start:start+2], 16, 8)
		return uint8(n), err
	}

	r, err := parse(0)
	if err != nil {
		return color.NRGBA{}, fmt.Errorf("parse red component: %w", err)
	}
	g, err := parse(2)
	if err != nil {
		return color.NRGBA{}, fmt.Errorf("parse green component: %w", err)
	}
	b, err := parse(4)
	if err != nil {
		return color.NRGBA{}, fmt.Errorf("parse blue component: %w", err)
	}
	a := uint8(255)
	if len(s) == 8 {
		a, err = parse(6)
		if err != nil {
			return color.NRGBA{}, fmt.Errorf("parse alpha component: %w", err)
		}
	}
	return color.NRGBA{R: r, G: g, B: b, A: a}, nil
}
