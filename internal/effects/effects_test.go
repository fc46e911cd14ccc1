package effects

import (
	"testing"

	"github.com/ivlev/scrollrig/internal/tween"
	"github.com/stretchr/testify/assert"
)

func TestForPattern(t *testing.T) {
	assert.Equal(t, DefaultJitter, ForPattern("jitter"))
	assert.Equal(t, DefaultColorBeats, ForPattern("color-beats"))
	assert.Equal(t, None{}, ForPattern("wave-z"))
}

func TestJitterWaitsForReveal(t *testing.T) {
	pool := tween.NewPool(1)
	g := pool.NewGroup()
	var jitter float32 = 0.9

	DefaultJitter.Start(g, Channels{Jitter: &jitter}, Params{MaxDelay: 1})
	assert.Equal(t, float32(0), jitter)
	assert.Equal(t, 1, g.Active())

	pool.Advance(0.5)
	assert.Equal(t, float32(0), jitter)

	pool.Advance(1.5) // one second into the bob
	assert.InDelta(t, 0.125, jitter, 1e-4)

	pool.Advance(1) // top of the swing
	assert.InDelta(t, 0.25, jitter, 1e-4)

	g.CancelAll()
	assert.Equal(t, 0, pool.Len())
}

func TestColorBeatsYoyo(t *testing.T) {
	pool := tween.NewPool(1)
	g := pool.NewGroup()
	var mix float32

	DefaultColorBeats.Start(g, Channels{Mix: &mix}, Params{})
	pool.Advance(1.5)
	assert.InDelta(t, 1, mix, 1e-5)
	pool.Advance(1.5)
	assert.InDelta(t, 0, mix, 1e-5)
}

func TestNilChannelsAreSkipped(t *testing.T) {
	pool := tween.NewPool(1)
	g := pool.NewGroup()
	DefaultJitter.Start(g, Channels{}, Params{})
	DefaultColorBeats.Start(g, Channels{}, Params{})
	None{}.Start(g, Channels{}, Params{})
	assert.Equal(t, 0, pool.Len())
}

func TestMaterialPresets(t *testing.T) {
	night := MaterialFor("night")
	assert.Equal(t, "#7df9ff", night.Color.Hex())
	assert.Equal(t, "#0a2a36", night.Emissive.Hex())
	assert.Equal(t, float32(0.35), night.Roughness)

	beats := MaterialFor("color-beats")
	assert.Equal(t, "#0050ff", beats.Emissive.Hex())

	def := MaterialFor("spiral")
	assert.Equal(t, "default", def.Name)
	assert.Equal(t, float32(0.58), def.Metalness)
}

func TestEmissiveAt(t *testing.T) {
	m := MaterialFor("default")
	assert.Equal(t, m.Emissive, m.EmissiveAt(0))

	full := m.EmissiveAt(1)
	assert.InDelta(t, 0.2, full.R, 1e-9)
	assert.InDelta(t, 0.1, full.G, 1e-9)
	assert.InDelta(t, 0.6, full.B, 1e-9)

	half := m.EmissiveAt(0.5)
	assert.InDelta(t, 0.3, half.B, 1e-6)
}
