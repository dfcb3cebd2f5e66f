package asset

import (
	"fmt"

	"github.com/Carmen-Shannon/oxy-bog/engine/model"
	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"
)

// writeMeshes saves every mesh of set as one node of a binary glTF file. Each populated UV
// channel n is written as TEXCOORD_n so the baked feature channels survive the round trip.
func writeMeshes(path string, set *model.MeshSet) error {
	doc := gltf.NewDocument()
	if len(doc.Scenes) == 0 {
		doc.Scenes = []*gltf.Scene{{}}
		doc.Scene = gltf.Index(0)
	}
	doc.Scenes[0].Name = set.Name

	for _, m := range set.Meshes {
		attrs := gltf.Attribute{}
		if len(m.Positions) > 0 {
			attrs[gltf.POSITION] = modeler.WritePosition(doc, m.Positions)
		}
		for ch, uv := range m.UVs {
			if len(uv) == 0 {
				continue
			}
			if len(m.Positions) > 0 && len(uv) != len(m.Positions) {
				return fmt.Errorf("mesh %q: UV%d has %d entries for %d vertices", m.Name, ch+1, len(uv), len(m.Positions))
			}
			attrs[fmt.Sprintf("TEXCOORD_%d", ch)] = modeler.WriteTextureCoord(doc, uv)
		}

		prim := &gltf.Primitive{Attributes: attrs}
		if len(m.Indices) > 0 {
			prim.Indices = gltf.Index(modeler.WriteIndices(doc, m.Indices))
		}

		doc.Meshes = append(doc.Meshes, &gltf.Mesh{Name: m.Name, Primitives: []*gltf.Primitive{prim}})
		doc.Nodes = append(doc.Nodes, &gltf.Node{Name: m.Name, Mesh: gltf.Index(uint32(len(doc.Meshes) - 1))})
		doc.Scenes[0].Nodes = append(doc.Scenes[0].Nodes, uint32(len(doc.Nodes)-1))
	}

	return gltf.SaveBinary(doc, path)
}
