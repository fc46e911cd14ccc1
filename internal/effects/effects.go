// Package effects holds the secondary animations layered on top of a reveal:
// the vertical jitter, the emissive color beats and the material presets each
// pattern renders with.
package effects

import (
	"github.com/ivlev/scrollrig/internal/tween"
)

// Channels are the shared scalars effects animate. The choreographer owns
// them and reads them every frame.
type Channels struct {
	Jitter *float32 // added to every object's offset
	Mix    *float32 // emissive blend toward the beat color
}

// Params describe the reveal an effect accompanies.
type Params struct {
	MaxDelay float32 // latest reveal start in the current schedule
}

// Effect starts its tweens in g. Cancelling g stops it.
type Effect interface {
	Start(g *tween.Group, ch Channels, p Params)
}

// None animates nothing.
type None struct{}

func (None) Start(*tween.Group, Channels, Params) {}

// Jitter bobs the whole field up and down once every object has started
// rising.
type Jitter struct {
	Amplitude float32
	Period    float32
}

// DefaultJitter is the reference bob.
var DefaultJitter = Jitter{Amplitude: 0.25, Period: 2}

func (e Jitter) Start(g *tween.Group, ch Channels, p Params) {
	if ch.Jitter == nil {
		return
	}
	*ch.Jitter = 0
	g.Start(tween.Spec{
		Target:   ch.Jitter,
		From:     0,
		To:       e.Amplitude,
		Delay:    p.MaxDelay,
		Duration: e.Period,
		Ease:     tween.InOutSine,
		Repeat:   tween.Forever,
		Yoyo:     true,
	})
}

// ColorBeats pulses the emissive color.
type ColorBeats struct {
	Period float32
}

// DefaultColorBeats is the reference pulse.
var DefaultColorBeats = ColorBeats{Period: 1.5}

func (e ColorBeats) Start(g *tween.Group, ch Channels, _ Params) {
	if ch.Mix == nil {
		return
	}
	*ch.Mix = 0
	g.Start(tween.Spec{
		Target:   ch.Mix,
		From:     0,
		To:       1,
		Duration: e.Period,
		Ease:     tween.InOutSine,
		Repeat:   tween.Forever,
		Yoyo:     true,
	})
}

// ForPattern returns the secondary effect a pattern runs with.
func ForPattern(pattern string) Effect {
	switch pattern {
	case "jitter":
		return DefaultJitter
	case "color-beats":
		return DefaultColorBeats
	default:
		return None{}
	}
}
