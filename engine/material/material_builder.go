package material

import (
	"github.com/Carmen-Shannon/oxy-bog/engine/texture"
)

// MaterialBuilderOption is a function that configures a material instance during construction.
type MaterialBuilderOption func(*material)

// WithName is an option builder that sets the name of the material.
//
// Parameters:
//   - name: the identifier for the material
//
// Returns:
//   - MaterialBuilderOption: a function that applies the name option to a material
func WithName(name string) MaterialBuilderOption {
	return func(m *material) {
		m.name = name
	}
}

// WithShader is an option builder that sets the shader name. Empty names are ignored.
//
// Parameters:
//   - shader: the shader name
//
// Returns:
//   - MaterialBuilderOption: a function that applies the shader option to a material
func WithShader(shader string) MaterialBuilderOption {
	return func(m *material) {
		if shader != "" {
			m.shader = shader
		}
	}
}

// WithTexture is an option builder that binds a texture to a property.
//
// Parameters:
//   - property: the texture property name
//   - tex: the texture array to bind
//
// Returns:
//   - MaterialBuilderOption: a function that applies the texture option to a material
func WithTexture(property string, tex *texture.TextureArray) MaterialBuilderOption {
	return func(m *material) {
		m.textures[property] = tex
	}
}

// WithFloat is an option builder that sets a float property.
//
// Parameters:
//   - property: the property name
//   - value: the value
//
// Returns:
//   - MaterialBuilderOption: a function that applies the float option to a material
func WithFloat(property string, value float32) MaterialBuilderOption {
	return func(m *material) {
		m.floats[property] = value
	}
}

// WithInt is an option builder that sets an integer property.
//
// Parameters:
//   - property: the property name
//   - value: the value
//
// Returns:
//   - MaterialBuilderOption: a function that applies the int option to a material
func WithInt(property string, value int32) MaterialBuilderOption {
	return func(m *material) {
		m.ints[property] = value
	}
}
