package texture

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/Carmen-Shannon/oxy-bog/common"
)

// sliceLoader is the implementation of the SliceLoader interface.
type sliceLoader struct {
	channelChunks int
	namer         func(axis, chunk int) string
}

// SliceLoader defines the interface for reading the grid of raw triplane slices of a scene folder
// into a single TextureArray.
//
// Loading is all-or-nothing: every file is located and size-checked before any byte is copied,
// and the first failure discards everything read so far.
type SliceLoader interface {
	// Load reads AxisCount*ChannelChunks raw files from dir into a new TextureArray.
	//
	// Parameters:
	//   - dir: the scene folder containing plane_features_*.raw files
	//   - name: the asset name given to the resulting array
	//   - resolution: the side length of every layer (triplane_resolution)
	//
	// Returns:
	//   - *TextureArray: the populated array
	//   - error: ErrInvalidResolution for a resolution outside [1, MaxResolution], *MissingSliceError
	//     for the first absent file, *SliceSizeError for the first file whose length is not
	//     4*resolution^2 (only once every file exists), or an I/O error
	Load(dir string, name string, resolution int) (*TextureArray, error)

	// ChannelChunks returns the number of chunk layers read per axis.
	//
	// Returns:
	//   - int: the chunk count
	ChannelChunks() int
}

var _ SliceLoader = &sliceLoader{}

// NewSliceLoader creates a new SliceLoader with the options applied.
//
// Parameters:
//   - options: variadic list of SliceLoaderBuilderOption functions
//
// Returns:
//   - SliceLoader: the configured loader
func NewSliceLoader(options ...SliceLoaderBuilderOption) SliceLoader {
	l := &sliceLoader{
		channelChunks: DefaultChannelChunks,
		namer:         SliceFileName,
	}
	for _, opt := range options {
		opt(l)
	}
	return l
}

func (l *sliceLoader) ChannelChunks() int {
	return l.channelChunks
}

func (l *sliceLoader) Load(dir string, name string, resolution int) (*TextureArray, error) {
	if resolution <= 0 || resolution > MaxResolution {
		return nil, fmt.Errorf("%w: %d (must be in [1, %d])", ErrInvalidResolution, resolution, MaxResolution)
	}
	layerSize := int64(BytesPerPixel) * int64(resolution) * int64(resolution)

	// Locate every slice before checking sizes so the first error names a missing file if there is one.
	paths := make([]string, 0, AxisCount*l.channelChunks)
	files := make([]string, 0, AxisCount*l.channelChunks)
	sizes := make([]int64, 0, AxisCount*l.channelChunks)
	for axis := 0; axis < AxisCount; axis++ {
		for chunk := 0; chunk < l.channelChunks; chunk++ {
			file := l.namer(axis, chunk)
			path := filepath.Join(dir, file)

			info, err := os.Stat(path)
			if err != nil {
				if errors.Is(err, fs.ErrNotExist) {
					return nil, &MissingSliceError{File: file, Dir: dir}
				}
				return nil, fmt.Errorf("failed to stat %s: %w", file, err)
			}
			if info.IsDir() {
				return nil, &MissingSliceError{File: file, Dir: dir}
			}
			paths = append(paths, path)
			files = append(files, file)
			sizes = append(sizes, info.Size())
		}
	}
	for i, size := range sizes {
		if size != layerSize {
			return nil, &SliceSizeError{File: files[i], Expected: layerSize, Actual: size}
		}
	}

	array := NewTextureArray(name, resolution, l.channelChunks)
	for axis := 0; axis < AxisCount; axis++ {
		for chunk := 0; chunk < l.channelChunks; chunk++ {
			idx := LayerIndex(axis, chunk, l.channelChunks)
			if err := readSlice(paths[idx], array.Layers[idx].Pixels); err != nil {
				return nil, err
			}
		}
	}

	common.LogDebug("loaded %d triplane layers (%dx%d) from %s", array.LayerCount(), resolution, resolution, dir)
	return array, nil
}

// readSlice reads exactly len(dst) bytes from path into a scratch buffer and copies them into dst.
// The scratch buffer lives only for this call.
func readSlice(path string, dst []byte) error {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return &MissingSliceError{File: filepath.Base(path), Dir: filepath.Dir(path)}
		}
		return fmt.Errorf("failed to open %s: %w", filepath.Base(path), err)
	}
	defer f.Close()

	buf := make([]byte, len(dst))
	n, err := io.ReadFull(f, buf)
	if err != nil {
		if errors.Is(err, io.ErrUnexpectedEOF) || errors.Is(err, io.EOF) {
			return &SliceSizeError{File: filepath.Base(path), Expected: int64(len(dst)), Actual: int64(n)}
		}
		return fmt.Errorf("failed to read %s: %w", filepath.Base(path), err)
	}

	copy(dst, buf)
	return nil
}
