package loader

import (
	"fmt"

	"github.com/Carmen-Shannon/oxy-bog/common"
	"github.com/Carmen-Shannon/oxy-bog/engine/model"
	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"
)

// gltfMeshExtractorImpl is the implementation of the gltfMeshExtractor interface.
type gltfMeshExtractorImpl struct {
	doc *gltf.Document
}

// gltfMeshExtractor defines the interface for extracting mesh data from a decoded glTF document.
// It converts accessor data into model.Mesh values carrying positions, indices and up to four
// UV channels.
type gltfMeshExtractor interface {
	// ExtractMesh extracts a single mesh by index.
	// Returns one model.Mesh per triangle primitive (glTF meshes can have multiple primitives).
	// Points and line primitives are skipped with a warning.
	//
	// Parameters:
	//   - meshIndex: the index of the mesh to extract
	//
	// Returns:
	//   - []*model.Mesh: one Mesh per primitive
	//   - error: error if extraction fails
	ExtractMesh(meshIndex int) ([]*model.Mesh, error)

	// ExtractAllMeshes extracts all meshes from the document.
	// Returns a flattened slice with one Mesh per primitive across all meshes.
	//
	// Returns:
	//   - []*model.Mesh: all meshes (flattened, one per primitive)
	//   - error: error if extraction fails
	ExtractAllMeshes() ([]*model.Mesh, error)
}

var _ gltfMeshExtractor = &gltfMeshExtractorImpl{}

// newGLTFMeshExtractor creates a new mesh extractor for a decoded document.
//
// Parameters:
//   - doc: the decoded document
//
// Returns:
//   - gltfMeshExtractor: the mesh extractor
func newGLTFMeshExtractor(doc *gltf.Document) gltfMeshExtractor {
	return &gltfMeshExtractorImpl{doc: doc}
}

func (e *gltfMeshExtractorImpl) ExtractMesh(meshIndex int) ([]*model.Mesh, error) {
	if e.doc == nil {
		return nil, fmt.Errorf("no document loaded")
	}
	if meshIndex < 0 || meshIndex >= len(e.doc.Meshes) {
		return nil, fmt.Errorf("mesh index %d out of range", meshIndex)
	}

	mesh := e.doc.Meshes[meshIndex]
	name := mesh.Name
	if name == "" {
		name = fmt.Sprintf("mesh_%d", meshIndex)
	}

	result := make([]*model.Mesh, 0, len(mesh.Primitives))
	for primIdx, prim := range mesh.Primitives {
		if prim.Mode != gltf.PrimitiveTriangles {
			common.LogWarn("skipping mesh %q primitive %d: mode %d is not triangles", name, primIdx, prim.Mode)
			continue
		}
		primName := name
		if len(mesh.Primitives) > 1 {
			primName = fmt.Sprintf("%s_%d", name, primIdx)
		}
		m, err := e.extractPrimitive(prim, primName)
		if err != nil {
			return nil, fmt.Errorf("mesh %d primitive %d: %w", meshIndex, primIdx, err)
		}
		result = append(result, m)
	}

	return result, nil
}

func (e *gltfMeshExtractorImpl) ExtractAllMeshes() ([]*model.Mesh, error) {
	if e.doc == nil {
		return nil, fmt.Errorf("no document loaded")
	}

	var all []*model.Mesh
	for i := range e.doc.Meshes {
		meshes, err := e.ExtractMesh(i)
		if err != nil {
			return nil, err
		}
		all = append(all, meshes...)
	}

	return all, nil
}

// extractPrimitive extracts a single triangle primitive as a model.Mesh.
func (e *gltfMeshExtractorImpl) extractPrimitive(prim *gltf.Primitive, name string) (*model.Mesh, error) {
	// Positions are optional here; a mesh without them simply fails the baked check.
	var positions [][3]float32
	if idx, ok := prim.Attributes[gltf.POSITION]; ok {
		acr, err := e.accessor(idx)
		if err != nil {
			return nil, fmt.Errorf("positions: %w", err)
		}
		positions, err = modeler.ReadPosition(e.doc, acr, nil)
		if err != nil {
			return nil, fmt.Errorf("failed to read positions: %w", err)
		}
	}

	var indices []uint32
	if prim.Indices != nil {
		acr, err := e.accessor(*prim.Indices)
		if err != nil {
			return nil, fmt.Errorf("indices: %w", err)
		}
		indices, err = modeler.ReadIndices(e.doc, acr, nil)
		if err != nil {
			return nil, fmt.Errorf("failed to read indices: %w", err)
		}
	} else {
		indices = make([]uint32, len(positions))
		for i := range indices {
			indices[i] = uint32(i)
		}
	}

	uvs := make([][][2]float32, model.UVChannelCount)
	for ch := 0; ch < model.UVChannelCount; ch++ {
		idx, ok := prim.Attributes[fmt.Sprintf("TEXCOORD_%d", ch)]
		if !ok {
			continue
		}
		acr, err := e.accessor(idx)
		if err != nil {
			return nil, fmt.Errorf("TEXCOORD_%d: %w", ch, err)
		}
		uv, err := modeler.ReadTextureCoord(e.doc, acr, nil)
		if err != nil {
			return nil, fmt.Errorf("failed to read TEXCOORD_%d: %w", ch, err)
		}
		uvs[ch] = uv
	}

	return model.NewMesh(name, positions, indices, uvs...), nil
}

func (e *gltfMeshExtractorImpl) accessor(idx uint32) (*gltf.Accessor, error) {
	if int(idx) >= len(e.doc.Accessors) {
		return nil, fmt.Errorf("accessor index %d out of range", idx)
	}
	return e.doc.Accessors[idx], nil
}
