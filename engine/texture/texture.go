package texture

import (
	"fmt"

	"github.com/Carmen-Shannon/oxy-bog/common"

	"github.com/cogentcore/webgpu/wgpu"
)

const (
	// AxisCount is the number of triplane axes (XY, XZ, YZ).
	AxisCount = 3
	// DefaultChannelChunks is the number of RGBA chunks each axis' feature vector is split into.
	DefaultChannelChunks = 6
	// BytesPerPixel is the size of one RGBA32 texel.
	BytesPerPixel = 4
	// MaxResolution is the largest layer side accepted by SliceLoader and Decode.
	MaxResolution = 1 << 15
)

// TextureArray is a stack of square RGBA8 layers holding encoded triplane features.
// Layer index = axis*ChannelChunks + chunk. The data is linear (not color-space corrected)
// and carries a single mip level.
type TextureArray struct {
	// Name is the asset name of the array, e.g. "bicycleTriplane".
	Name string
	// Width and Height of every layer in pixels.
	Width, Height uint32
	// ChannelChunks is the number of chunk layers per axis.
	ChannelChunks int
	// Format is always RGBA8Unorm; feature data must not be sRGB-decoded.
	Format wgpu.TextureFormat
	// Dimension is the view dimension a renderer binds the array with.
	Dimension wgpu.TextureViewDimension
	// MipLevelCount is 1: mipmapping is disabled for feature data.
	MipLevelCount uint32
	// Sampler is the sampling state the array is meant to be bound with.
	Sampler common.SamplerStagingData
	// Layers holds the raw bytes of every layer, indexed by LayerIndex.
	Layers []common.TextureStagingData
}

// NewTextureArray allocates an empty array with layers of the given size and the importer's fixed sampling state.
//
// Parameters:
//   - name: the asset name
//   - resolution: the side length of every layer in pixels
//   - channelChunks: the number of chunk layers per axis
//
// Returns:
//   - *TextureArray: the array with AxisCount*channelChunks zero-filled layers
func NewTextureArray(name string, resolution int, channelChunks int) *TextureArray {
	layerCount := AxisCount * channelChunks
	layerSize := BytesPerPixel * resolution * resolution
	backing := make([]byte, layerCount*layerSize)

	layers := make([]common.TextureStagingData, layerCount)
	for i := range layers {
		layers[i] = common.TextureStagingData{
			Pixels: backing[i*layerSize : (i+1)*layerSize : (i+1)*layerSize],
			Width:  uint32(resolution),
			Height: uint32(resolution),
		}
	}

	return &TextureArray{
		Name:          name,
		Width:         uint32(resolution),
		Height:        uint32(resolution),
		ChannelChunks: channelChunks,
		Format:        wgpu.TextureFormatRGBA8Unorm,
		Dimension:     wgpu.TextureViewDimension2DArray,
		MipLevelCount: 1,
		Sampler:       FeatureSampler(),
		Layers:        layers,
	}
}

// FeatureSampler returns the sampling state for triplane feature arrays:
// bilinear filtering, clamped addressing and no mip filtering.
func FeatureSampler() common.SamplerStagingData {
	return common.SamplerStagingData{
		AddressModeU:  wgpu.AddressModeClampToEdge,
		AddressModeV:  wgpu.AddressModeClampToEdge,
		AddressModeW:  wgpu.AddressModeClampToEdge,
		MagFilter:     wgpu.FilterModeLinear,
		MinFilter:     wgpu.FilterModeLinear,
		MipmapFilter:  wgpu.MipmapFilterModeNearest,
		LodMinClamp:   0,
		LodMaxClamp:   0,
		MaxAnisotropy: 1,
	}
}

// LayerCount returns the number of layers in the array.
func (t *TextureArray) LayerCount() int {
	return len(t.Layers)
}

// LayerSize returns the byte length of a single layer.
func (t *TextureArray) LayerSize() int {
	return BytesPerPixel * int(t.Width) * int(t.Height)
}

// Layer returns the pixel bytes stored for an (axis, chunk) pair.
//
// Parameters:
//   - axis: the triplane axis in [0, AxisCount)
//   - chunk: the channel chunk in [0, ChannelChunks)
//
// Returns:
//   - []byte: the layer's pixel data
//   - error: error if the pair is out of range
func (t *TextureArray) Layer(axis, chunk int) ([]byte, error) {
	if axis < 0 || axis >= AxisCount || chunk < 0 || chunk >= t.ChannelChunks {
		return nil, fmt.Errorf("layer (%d, %d) out of range", axis, chunk)
	}
	return t.Layers[LayerIndex(axis, chunk, t.ChannelChunks)].Pixels, nil
}

// LayerIndex maps an (axis, chunk) pair onto its layer slot.
func LayerIndex(axis, chunk, channelChunks int) int {
	return axis*channelChunks + chunk
}

// SliceFileName returns the raw file name holding the given (axis, chunk) layer,
// e.g. plane_features_1_04.raw.
func SliceFileName(axis, chunk int) string {
	return fmt.Sprintf("plane_features_%d_%02d.raw", axis, chunk)
}
