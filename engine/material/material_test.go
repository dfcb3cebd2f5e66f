package material

import (
	"testing"

	"github.com/Carmen-Shannon/oxy-bog/engine/texture"
	"github.com/stretchr/testify/assert"
)

func TestNewMaterial_Defaults(t *testing.T) {
	m := NewMaterial()

	assert.Equal(t, "", m.Name())
	assert.Equal(t, DefaultShader, m.Shader())
	assert.Empty(t, m.TextureNames())
	assert.Empty(t, m.FloatNames())
	assert.Empty(t, m.IntNames())

	_, ok := m.Float(PropSceneScaleFactor)
	assert.False(t, ok)
	assert.Nil(t, m.Texture(PropTriplane))
}

func TestNewMaterial_Options(t *testing.T) {
	tex := texture.NewTextureArray("sceneTriplane", 2, 6)

	m := NewMaterial(
		WithName("sceneMat"),
		WithShader(""),
		WithTexture(PropTriplane, tex),
		WithFloat(PropTriplaneResolution, 2),
		WithFloat(PropRangeColorMin, -3),
		WithInt(PropDisplayMode, DisplayModeDefault),
	)

	assert.Equal(t, "sceneMat", m.Name())
	assert.Equal(t, DefaultShader, m.Shader())
	assert.Same(t, tex, m.Texture(PropTriplane))

	v, ok := m.Float(PropTriplaneResolution)
	assert.True(t, ok)
	assert.Equal(t, float32(2), v)

	mode, ok := m.Int(PropDisplayMode)
	assert.True(t, ok)
	assert.Equal(t, int32(0), mode)

	assert.Equal(t, []string{PropRangeColorMin, PropTriplaneResolution}, m.FloatNames())
	assert.Equal(t, []string{PropTriplane}, m.TextureNames())
	assert.Equal(t, []string{PropDisplayMode}, m.IntNames())
}

func TestWithShader_Overrides(t *testing.T) {
	m := NewMaterial(WithShader("Custom/Shader"))
	assert.Equal(t, "Custom/Shader", m.Shader())
}
