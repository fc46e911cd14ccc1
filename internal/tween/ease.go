package tween

import (
	"fmt"

	"cogentcore.org/core/math32"
)

// Ease maps normalized time in [0,1] to normalized progress.
type Ease func(t float32) float32

func Linear(t float32) float32 { return t }

func OutQuad(t float32) float32 { return 1 - (1-t)*(1-t) }

func OutCubic(t float32) float32 {
	inv := 1 - t
	return 1 - inv*inv*inv
}

func InOutSine(t float32) float32 {
	return -(math32.Cos(math32.Pi*t) - 1) / 2
}

func InOutCubic(t float32) float32 {
	if t < 0.5 {
		return 4 * t * t * t
	}
	inv := -2*t + 2
	return 1 - inv*inv*inv/2
}

var eases = map[string]Ease{
	"linear":     Linear,
	"outQuad":    OutQuad,
	"outCubic":   OutCubic,
	"inOutSine":  InOutSine,
	"inOutCubic": InOutCubic,
}

// ParseEase resolves an easing name as written in scene files.
func ParseEase(name string) (Ease, error) {
	if e, ok := eases[name]; ok {
		return e, nil
	}
	return nil, fmt.Errorf("tween: unknown ease %q", name)
}
