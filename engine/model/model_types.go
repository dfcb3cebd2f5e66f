package model

// UVChannelCount is the number of UV channels a baked container packs feature data into.
const UVChannelCount = 4

// Mesh represents a single mesh extracted from a container.
// Baked containers carry the per-vertex features in UV1..UV4 (TEXCOORD_0..TEXCOORD_3).
type Mesh struct {
	// Name is the mesh identifier, also used for the node that renders it.
	Name string

	// Positions are the vertex positions.
	Positions [][3]float32

	// Indices are the triangle indices.
	Indices []uint32

	// UVs holds the four UV channels; UVs[0] is UV1. Absent channels are nil.
	UVs [UVChannelCount][][2]float32

	// BoundingMin is the minimum corner of the axis-aligned bounding box.
	BoundingMin [3]float32

	// BoundingMax is the maximum corner of the axis-aligned bounding box.
	BoundingMax [3]float32
}

// MeshSet is the ordered sequence of meshes extracted from one container file.
type MeshSet struct {
	// Name is the container identifier (scene name or file name).
	Name string

	// SourcePath is the container file the meshes were read from.
	SourcePath string

	// Meshes are the extracted meshes in container order.
	Meshes []*Mesh
}
