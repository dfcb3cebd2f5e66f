// Package fixture writes Binary Opacity Grid scene folders for tests: a scene_params.json, the raw
// triplane slices and GLB containers with a chosen number of UV channels.
package fixture

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"
	"github.com/stretchr/testify/require"
)

const (
	// OriginalContainer is the unbaked container name shipped with every scene.
	OriginalContainer = "viewer_mesh_post_gltfpack.glb"
	// BakedContainer is the file name used for the baked container by Scene.
	BakedContainer = "viewer_mesh_baked.glb"
	// ParamsFile is the JSON sidecar name used by Scene.
	ParamsFile = "scene_params.json"
	// ChannelChunks mirrors the fixed chunk count of the importer.
	ChannelChunks = 6
)

// MeshSpec describes one mesh written into a fixture container.
type MeshSpec struct {
	Name       string
	UVChannels int
	// Mode is the primitive mode, triangles when zero.
	Mode gltf.PrimitiveMode
}

// SceneOptions controls what Scene writes.
type SceneOptions struct {
	// Resolution is the triplane_resolution written to JSON and used to size the raw slices.
	Resolution int
	// BakedUVChannels is the UV channel count of the baked container's meshes.
	BakedUVChannels int
	// Meshes are the mesh names of the baked container. Defaults to two meshes.
	Meshes []string
	// SkipSlice names a raw slice file that is not written.
	SkipSlice string
}

// Scene creates a complete scene folder named name under parent and returns its path.
func Scene(t testing.TB, parent, name string, opts SceneOptions) string {
	t.Helper()

	if opts.Resolution == 0 {
		opts.Resolution = 4
	}
	if len(opts.Meshes) == 0 {
		opts.Meshes = []string{"mesh_a", "mesh_b"}
	}

	dir := filepath.Join(parent, name)
	require.NoError(t, os.MkdirAll(dir, 0o755))

	WriteParams(t, filepath.Join(dir, ParamsFile), opts.Resolution)
	WriteSlices(t, dir, opts.Resolution, opts.SkipSlice)

	WriteContainer(t, filepath.Join(dir, OriginalContainer), []MeshSpec{{Name: "original", UVChannels: 1}})

	specs := make([]MeshSpec, len(opts.Meshes))
	for i, n := range opts.Meshes {
		specs[i] = MeshSpec{Name: n, UVChannels: opts.BakedUVChannels}
	}
	WriteContainer(t, filepath.Join(dir, BakedContainer), specs)

	return dir
}

// ParamsJSON returns a scene parameter document with the given triplane resolution.
func ParamsJSON(resolution int) string {
	return fmt.Sprintf(`{
  "sparse_grid_resolution": 512,
  "sparse_grid_voxel_size": 0.00390625,
  "data_block_size": 16,
  "atlas_width": 2048,
  "atlas_height": 1024,
  "atlas_depth": 64,
  "num_slices": 4,
  "slice_depth": 16,
  "scene_scale_factor": 0.5,
  "triplane_resolution": %d,
  "triplane_voxel_size": 0.0078125,
  "ranges": {
    "diffuse_rgb": {"min": -1.0, "max": 2.0},
    "color": {"min": -3.0, "max": 3.5},
    "mean": {"min": 0.25, "max": 0.75},
    "scale": {"min": -5.0, "max": 5.0}
  }
}`, resolution)
}

// WriteParams writes ParamsJSON(resolution) to path.
func WriteParams(t testing.TB, path string, resolution int) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte(ParamsJSON(resolution)), 0o644))
}

// SliceName mirrors the importer's plane feature naming.
func SliceName(axis, chunk int) string {
	return fmt.Sprintf("plane_features_%d_%02d.raw", axis, chunk)
}

// SliceBytes returns the deterministic content written for one (axis, chunk) slice.
// Every layer gets a distinct byte pattern so misplaced layers are detectable.
func SliceBytes(axis, chunk, resolution int) []byte {
	layer := axis*ChannelChunks + chunk
	data := make([]byte, 4*resolution*resolution)
	for i := range data {
		data[i] = byte((layer*37 + i*7) % 251)
	}
	return data
}

// WriteSlices writes all 18 raw slices into dir, except the one named skip.
func WriteSlices(t testing.TB, dir string, resolution int, skip string) {
	t.Helper()
	for axis := 0; axis < 3; axis++ {
		for chunk := 0; chunk < ChannelChunks; chunk++ {
			name := SliceName(axis, chunk)
			if name == skip {
				continue
			}
			require.NoError(t, os.WriteFile(filepath.Join(dir, name), SliceBytes(axis, chunk, resolution), 0o644))
		}
	}
}

// WriteContainer writes a GLB with one single-triangle mesh per MeshSpec.
func WriteContainer(t testing.TB, path string, meshes []MeshSpec) {
	t.Helper()

	doc := gltf.NewDocument()
	if len(doc.Scenes) == 0 {
		doc.Scenes = []*gltf.Scene{{Name: "Root Scene"}}
		doc.Scene = gltf.Index(0)
	}

	for i, m := range meshes {
		offset := float32(i)
		positions := [][3]float32{{offset, 0, 0}, {offset + 1, 0, 0}, {offset, 1, 0}}
		attrs := gltf.Attribute{
			gltf.POSITION: modeler.WritePosition(doc, positions),
		}
		for c := 0; c < m.UVChannels; c++ {
			uv := [][2]float32{{float32(c), 0}, {float32(c), 1}, {float32(c) + 0.5, 0.5}}
			attrs[fmt.Sprintf("TEXCOORD_%d", c)] = modeler.WriteTextureCoord(doc, uv)
		}
		indices := modeler.WriteIndices(doc, []uint32{0, 1, 2})

		doc.Meshes = append(doc.Meshes, &gltf.Mesh{
			Name: m.Name,
			Primitives: []*gltf.Primitive{{
				Attributes: attrs,
				Indices:    gltf.Index(indices),
				Mode:       m.Mode,
			}},
		})
		doc.Nodes = append(doc.Nodes, &gltf.Node{Name: m.Name, Mesh: gltf.Index(uint32(len(doc.Meshes) - 1))})
		doc.Scenes[0].Nodes = append(doc.Scenes[0].Nodes, uint32(len(doc.Nodes)-1))
	}

	require.NoError(t, gltf.SaveBinary(doc, path))
}

// WriteGarbage writes a file that is not a valid container.
func WriteGarbage(t testing.TB, path string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte("definitely not a glb"), 0o644))
}
