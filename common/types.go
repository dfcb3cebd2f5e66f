// package common contains common types that are used throughout the importer. They are not interface-wrapped structs, just plain structs that express
// commonly used data-types.
package common

import (
	"github.com/cogentcore/webgpu/wgpu"
)

// TextureStagingData holds RGBA pixel data for a single texture layer pending persistence.
// Texture arrays hold one TextureStagingData per layer; the bytes are never decoded or recompressed.
type TextureStagingData struct {
	// Pixels is the byte slice representing the actual pixel data for the layer. It is in RGBA format, with 4 bytes per pixel.
	Pixels []byte
	// Width is the width of the layer in pixels.
	Width uint32
	// Height is the height of the layer in pixels.
	Height uint32
}

// SamplerStagingData holds the sampler configuration a renderer must use when binding a texture.
// The values are expressed with the wgpu enums so that a consumer can hand them straight to a sampler descriptor.
type SamplerStagingData struct {
	// AddressModeU, AddressModeV, AddressModeW specify the addressing mode for texture coordinates outside the [0, 1] range in each dimension (U, V, W).
	AddressModeU, AddressModeV, AddressModeW wgpu.AddressMode
	// MagFilter and MinFilter specify the filtering mode for magnification and minification.
	MagFilter, MinFilter wgpu.FilterMode
	// MipmapFilter specifies the filtering mode for mipmap level selection.
	MipmapFilter wgpu.MipmapFilterMode
	// LodMinClamp and LodMaxClamp specify the minimum and maximum level of detail (LOD) for mipmapping.
	LodMinClamp, LodMaxClamp float32
	// MaxAnisotropy specifies the maximum anisotropy level for anisotropic filtering.
	MaxAnisotropy uint16
}

// AddressModeName returns the stable serialized name of a wgpu address mode.
//
// Parameters:
//   - mode: the address mode
//
// Returns:
//   - string: the serialized name, "unknown" for unmapped values
func AddressModeName(mode wgpu.AddressMode) string {
	switch mode {
	case wgpu.AddressModeClampToEdge:
		return "clamp"
	case wgpu.AddressModeRepeat:
		return "repeat"
	case wgpu.AddressModeMirrorRepeat:
		return "mirror"
	default:
		return "unknown"
	}
}

// FilterModeName returns the stable serialized name of a wgpu filter mode.
//
// Parameters:
//   - mode: the filter mode
//
// Returns:
//   - string: "bilinear" for linear filtering, "point" for nearest filtering
func FilterModeName(mode wgpu.FilterMode) string {
	switch mode {
	case wgpu.FilterModeLinear:
		return "bilinear"
	case wgpu.FilterModeNearest:
		return "point"
	default:
		return "unknown"
	}
}

// TextureFormatName returns the stable serialized name of the texture formats the importer produces.
//
// Parameters:
//   - format: the texture format
//
// Returns:
//   - string: the serialized name
func TextureFormatName(format wgpu.TextureFormat) string {
	switch format {
	case wgpu.TextureFormatRGBA8Unorm:
		return "RGBA32"
	case wgpu.TextureFormatRGBA8UnormSrgb:
		return "RGBA32_sRGB"
	default:
		return "unknown"
	}
}
