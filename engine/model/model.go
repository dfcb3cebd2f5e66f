package model

import (
	"github.com/Carmen-Shannon/oxy-bog/common"
)

// NewMesh creates a Mesh and computes its bounding box from the positions.
//
// Parameters:
//   - name: the mesh identifier
//   - positions: the vertex positions
//   - indices: the triangle indices
//   - uvs: up to UVChannelCount UV channels, UV1 first
//
// Returns:
//   - *Mesh: the populated mesh
func NewMesh(name string, positions [][3]float32, indices []uint32, uvs ...[][2]float32) *Mesh {
	m := &Mesh{
		Name:      name,
		Positions: positions,
		Indices:   indices,
	}
	for i := 0; i < len(uvs) && i < UVChannelCount; i++ {
		m.UVs[i] = uvs[i]
	}
	m.BoundingMin, m.BoundingMax = common.BoundingBox(positions)
	return m
}

// VertexCount returns the number of vertices.
func (m *Mesh) VertexCount() int {
	return len(m.Positions)
}

// UVChannelsPopulated returns how many of the leading UV channels are non-empty.
// Counting stops at the first empty channel.
func (m *Mesh) UVChannelsPopulated() int {
	n := 0
	for _, uv := range m.UVs {
		if len(uv) == 0 {
			break
		}
		n++
	}
	return n
}

// IsBaked reports whether the mesh carries positions and all four UV channels,
// the marker of a container with baked feature maps.
func (m *Mesh) IsBaked() bool {
	if m == nil || len(m.Positions) == 0 {
		return false
	}
	for _, uv := range m.UVs {
		if len(uv) == 0 {
			return false
		}
	}
	return true
}

// First returns the first mesh or nil when the set is empty.
func (s *MeshSet) First() *Mesh {
	if s == nil || len(s.Meshes) == 0 {
		return nil
	}
	return s.Meshes[0]
}

// IsBaked reports whether the set's first mesh is baked. Only the first mesh is inspected.
func (s *MeshSet) IsBaked() bool {
	return s.First().IsBaked()
}

// Len returns the number of meshes.
func (s *MeshSet) Len() int {
	if s == nil {
		return 0
	}
	return len(s.Meshes)
}
