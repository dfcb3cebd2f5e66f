// Package params holds the scene parameter record deserialized from a Binary Opacity Grid scene's JSON sidecar.
// Field names in the JSON tags are the wire contract written by the baking tools and must not change.
package params

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
)

// MaxTriplaneResolution is the largest accepted triplane_resolution. One RGBA32 layer at this size is 4 GiB.
const MaxTriplaneResolution = 1 << 15

var (
	// ErrInvalidResolution is returned when triplane_resolution is missing or not positive.
	ErrInvalidResolution = errors.New("triplane_resolution must be greater than zero")
	// ErrResolutionTooLarge is returned when triplane_resolution exceeds MaxTriplaneResolution.
	ErrResolutionTooLarge = errors.New("triplane_resolution is too large")
)

// Range is a (min, max) pair used to denormalize packed texture values at render time.
type Range struct {
	Min float32 `json:"min" yaml:"min"`
	Max float32 `json:"max" yaml:"max"`
}

// Ranges groups the four value ranges baked alongside the feature textures.
type Ranges struct {
	DiffuseRGB Range `json:"diffuse_rgb" yaml:"diffuse_rgb"`
	Color      Range `json:"color" yaml:"color"`
	Mean       Range `json:"mean" yaml:"mean"`
	Scale      Range `json:"scale" yaml:"scale"`
}

// SceneParameters describes the sparse grid and triplane geometry of a baked scene.
// Missing JSON fields keep their zero value; unknown fields are ignored.
type SceneParameters struct {
	SparseGridResolution int     `json:"sparse_grid_resolution" yaml:"sparse_grid_resolution"`
	SparseGridVoxelSize  float32 `json:"sparse_grid_voxel_size" yaml:"sparse_grid_voxel_size"`
	DataBlockSize        int     `json:"data_block_size" yaml:"data_block_size"`
	AtlasWidth           int     `json:"atlas_width" yaml:"atlas_width"`
	AtlasHeight          int     `json:"atlas_height" yaml:"atlas_height"`
	AtlasDepth           int     `json:"atlas_depth" yaml:"atlas_depth"`
	NumSlices            int     `json:"num_slices" yaml:"num_slices"`
	SliceDepth           int     `json:"slice_depth" yaml:"slice_depth"`
	SceneScaleFactor     float32 `json:"scene_scale_factor" yaml:"scene_scale_factor"`
	TriplaneResolution   int     `json:"triplane_resolution" yaml:"triplane_resolution"`
	TriplaneVoxelSize    float32 `json:"triplane_voxel_size" yaml:"triplane_voxel_size"`
	Ranges               Ranges  `json:"ranges" yaml:"ranges"`
}

// Load reads and parses a scene parameter file.
//
// Parameters:
//   - path: the JSON file path
//
// Returns:
//   - SceneParameters: the parsed parameters
//   - error: error if the file cannot be read or is not valid JSON
func Load(path string) (SceneParameters, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return SceneParameters{}, fmt.Errorf("failed to read scene parameters: %w", err)
	}
	return Parse(data)
}

// Parse decodes scene parameters from JSON bytes.
//
// Parameters:
//   - data: the JSON document
//
// Returns:
//   - SceneParameters: the parsed parameters
//   - error: error if data is not valid JSON
func Parse(data []byte) (SceneParameters, error) {
	var p SceneParameters
	if err := json.Unmarshal(data, &p); err != nil {
		return SceneParameters{}, fmt.Errorf("failed to parse scene parameters JSON: %w", err)
	}
	return p, nil
}

// Validate checks the fields the importer depends on for sizing its outputs.
// The remaining fields are carried through unchecked.
func (p SceneParameters) Validate() error {
	if p.TriplaneResolution <= 0 {
		return fmt.Errorf("%w (got %d)", ErrInvalidResolution, p.TriplaneResolution)
	}
	if p.TriplaneResolution > MaxTriplaneResolution {
		return fmt.Errorf("%w (got %d, max %d)", ErrResolutionTooLarge, p.TriplaneResolution, MaxTriplaneResolution)
	}
	return nil
}

// TriplaneLayerSize returns the byte length of one RGBA32 triplane slice.
func (p SceneParameters) TriplaneLayerSize() int64 {
	r := int64(p.TriplaneResolution)
	return 4 * r * r
}
