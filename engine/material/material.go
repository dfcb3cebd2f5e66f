package material

import (
	"sort"

	"github.com/Carmen-Shannon/oxy-bog/engine/texture"
)

// material is the implementation of the Material interface.
type material struct {
	name     string
	shader   string
	textures map[string]*texture.TextureArray
	floats   map[string]float32
	ints     map[string]int32
}

// Material defines the interface for a shader material: a named shader plus the texture and
// scalar properties bound to it.
//
// Properties are set at construction through MaterialBuilderOption functions and are read-only
// through this interface. A single Material instance is shared by every node that renders with it.
type Material interface {
	// Name retrieves the material identifier.
	//
	// Returns:
	//   - string: the name of the material
	Name() string

	// Shader retrieves the name of the shader the material renders with.
	//
	// Returns:
	//   - string: the shader name
	Shader() string

	// Texture retrieves the texture bound to a property, or nil if none is bound.
	//
	// Parameters:
	//   - property: the texture property name (e.g. PropTriplane)
	//
	// Returns:
	//   - *texture.TextureArray: the bound texture, or nil
	Texture(property string) *texture.TextureArray

	// Float retrieves a float property.
	//
	// Parameters:
	//   - property: the property name
	//
	// Returns:
	//   - float32: the value
	//   - bool: false if the property is not set
	Float(property string) (float32, bool)

	// Int retrieves an integer property.
	//
	// Parameters:
	//   - property: the property name
	//
	// Returns:
	//   - int32: the value
	//   - bool: false if the property is not set
	Int(property string) (int32, bool)

	// TextureNames returns the bound texture property names in sorted order.
	//
	// Returns:
	//   - []string: the property names
	TextureNames() []string

	// FloatNames returns the float property names in sorted order.
	//
	// Returns:
	//   - []string: the property names
	FloatNames() []string

	// IntNames returns the integer property names in sorted order.
	//
	// Returns:
	//   - []string: the property names
	IntNames() []string
}

var _ Material = &material{}

// NewMaterial creates a new Material with the DefaultShader and the options applied.
//
// Parameters:
//   - options: variadic list of MaterialBuilderOption functions
//
// Returns:
//   - Material: the configured material
func NewMaterial(options ...MaterialBuilderOption) Material {
	m := &material{
		shader:   DefaultShader,
		textures: make(map[string]*texture.TextureArray),
		floats:   make(map[string]float32),
		ints:     make(map[string]int32),
	}
	for _, opt := range options {
		opt(m)
	}
	return m
}

func (m *material) Name() string {
	return m.name
}

func (m *material) Shader() string {
	return m.shader
}

func (m *material) Texture(property string) *texture.TextureArray {
	return m.textures[property]
}

func (m *material) Float(property string) (float32, bool) {
	v, ok := m.floats[property]
	return v, ok
}

func (m *material) Int(property string) (int32, bool) {
	v, ok := m.ints[property]
	return v, ok
}

func (m *material) TextureNames() []string {
	return sortedKeys(m.textures)
}

func (m *material) FloatNames() []string {
	return sortedKeys(m.floats)
}

func (m *material) IntNames() []string {
	return sortedKeys(m.ints)
}

func sortedKeys[V any](in map[string]V) []string {
	keys := make([]string, 0, len(in))
	for k := range in {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
