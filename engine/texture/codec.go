package texture

import (
	"bufio"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"

	"github.com/cogentcore/webgpu/wgpu"
)

// FileExtension is the extension of an encoded TextureArray.
const FileExtension = ".texarray"

const codecVersion uint32 = 1

var codecMagic = [4]byte{'B', 'O', 'G', 'T'}

// ErrBadTextureArray is returned by Decode for streams that are not an encoded TextureArray.
var ErrBadTextureArray = errors.New("not a texture array stream")

// header is the fixed-size little-endian prefix of an encoded TextureArray. Layer bytes follow
// in layer index order.
type header struct {
	Magic         [4]byte
	Version       uint32
	Format        uint32
	Dimension     uint32
	Width         uint32
	Height        uint32
	Layers        uint32
	ChannelChunks uint32
	MipLevelCount uint32
	AddressModeU  uint32
	AddressModeV  uint32
	AddressModeW  uint32
	MagFilter     uint32
	MinFilter     uint32
	MipmapFilter  uint32
	LodMinClamp   uint32
	LodMaxClamp   uint32
	MaxAnisotropy uint32
}

// Encode writes the array to w: a fixed header followed by every layer's bytes.
//
// Parameters:
//   - w: the destination
//   - t: the array to encode
//
// Returns:
//   - error: error if a layer has the wrong size or the write fails
func Encode(w io.Writer, t *TextureArray) error {
	size := t.LayerSize()
	for i, l := range t.Layers {
		if len(l.Pixels) != size {
			return fmt.Errorf("layer %d has %d bytes, expected %d", i, len(l.Pixels), size)
		}
	}

	h := header{
		Magic:         codecMagic,
		Version:       codecVersion,
		Format:        uint32(t.Format),
		Dimension:     uint32(t.Dimension),
		Width:         t.Width,
		Height:        t.Height,
		Layers:        uint32(len(t.Layers)),
		ChannelChunks: uint32(t.ChannelChunks),
		MipLevelCount: t.MipLevelCount,
		AddressModeU:  uint32(t.Sampler.AddressModeU),
		AddressModeV:  uint32(t.Sampler.AddressModeV),
		AddressModeW:  uint32(t.Sampler.AddressModeW),
		MagFilter:     uint32(t.Sampler.MagFilter),
		MinFilter:     uint32(t.Sampler.MinFilter),
		MipmapFilter:  uint32(t.Sampler.MipmapFilter),
		LodMinClamp:   math.Float32bits(t.Sampler.LodMinClamp),
		LodMaxClamp:   math.Float32bits(t.Sampler.LodMaxClamp),
		MaxAnisotropy: uint32(t.Sampler.MaxAnisotropy),
	}

	bw := bufio.NewWriter(w)
	if err := binary.Write(bw, binary.LittleEndian, &h); err != nil {
		return fmt.Errorf("failed to write texture array header: %w", err)
	}
	for i, l := range t.Layers {
		if _, err := bw.Write(l.Pixels); err != nil {
			return fmt.Errorf("failed to write layer %d: %w", i, err)
		}
	}
	return bw.Flush()
}

// Decode reads an array written by Encode.
//
// Parameters:
//   - r: the source
//   - name: the asset name given to the decoded array
//
// Returns:
//   - *TextureArray: the decoded array
//   - error: ErrBadTextureArray for a foreign stream, or a read error
func Decode(r io.Reader, name string) (*TextureArray, error) {
	var h header
	if err := binary.Read(r, binary.LittleEndian, &h); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadTextureArray, err)
	}
	if h.Magic != codecMagic {
		return nil, ErrBadTextureArray
	}
	if h.Version != codecVersion {
		return nil, fmt.Errorf("%w: unsupported version %d", ErrBadTextureArray, h.Version)
	}
	if h.Width != h.Height || h.Width > MaxResolution || h.ChannelChunks == 0 || h.Layers != AxisCount*h.ChannelChunks {
		return nil, fmt.Errorf("%w: inconsistent header", ErrBadTextureArray)
	}

	t := NewTextureArray(name, int(h.Width), int(h.ChannelChunks))
	t.Format = wgpu.TextureFormat(h.Format)
	t.Dimension = wgpu.TextureViewDimension(h.Dimension)
	t.MipLevelCount = h.MipLevelCount
	t.Sampler.AddressModeU = wgpu.AddressMode(h.AddressModeU)
	t.Sampler.AddressModeV = wgpu.AddressMode(h.AddressModeV)
	t.Sampler.AddressModeW = wgpu.AddressMode(h.AddressModeW)
	t.Sampler.MagFilter = wgpu.FilterMode(h.MagFilter)
	t.Sampler.MinFilter = wgpu.FilterMode(h.MinFilter)
	t.Sampler.MipmapFilter = wgpu.MipmapFilterMode(h.MipmapFilter)
	t.Sampler.LodMinClamp = math.Float32frombits(h.LodMinClamp)
	t.Sampler.LodMaxClamp = math.Float32frombits(h.LodMaxClamp)
	t.Sampler.MaxAnisotropy = uint16(h.MaxAnisotropy)

	for i := range t.Layers {
		if _, err := io.ReadFull(r, t.Layers[i].Pixels); err != nil {
			return nil, fmt.Errorf("failed to read layer %d: %w", i, err)
		}
	}
	return t, nil
}
