package effects

import (
	"fmt"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// BeatColor is the emissive color the beats pulse toward.
var BeatColor = colorful.Color{R: 0.2, G: 0.1, B: 0.6}

// Material is the shared surface preset for the object field.
type Material struct {
	Name      string
	Color     colorful.Color
	Emissive  colorful.Color
	Metalness float32
	Roughness float32
}

// EmissiveAt blends the preset emissive toward BeatColor.
func (m Material) EmissiveAt(mix float32) colorful.Color {
	return m.Emissive.BlendRgb(BeatColor, float64(mix))
}

func mustHex(s string) colorful.Color {
	c, err := colorful.Hex(s)
	if err != nil {
		panic(fmt.Sprintf("effects: bad preset color %q: %v", s, err))
	}
	return c
}

var (
	nightMaterial = Material{
		Name:      "night",
		Color:     mustHex("#7df9ff"),
		Emissive:  mustHex("#0a2a36"),
		Metalness: 0.2,
		Roughness: 0.35,
	}
	beatsMaterial = Material{
		Name:      "color-beats",
		Color:     mustHex("#ffffff"),
		Emissive:  mustHex("#0050ff"),
		Metalness: 0.5,
		Roughness: 0.2,
	}
	defaultMaterial = Material{
		Name:      "default",
		Color:     mustHex("#ffffff"),
		Emissive:  mustHex("#000000"),
		Metalness: 0.58,
		Roughness: 0.18,
	}
)

// MaterialFor returns the preset a pattern renders with.
func MaterialFor(pattern string) Material {
	switch pattern {
	case "night":
		return nightMaterial
	case "color-beats":
		return beatsMaterial
	default:
		return defaultMaterial
	}
}
