package loader

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/Carmen-Shannon/oxy-bog/engine/model"
	"github.com/qmuntal/gltf"
)

// gltfImporterImpl is the implementation of the gltfImporter interface.
type gltfImporterImpl struct{}

// gltfImporter defines the interface for orchestrating a glTF/GLB import.
// It decodes the document and runs the mesh extractor over it.
type gltfImporter interface {
	// Import decodes a glTF/GLB file and extracts its meshes.
	//
	// Parameters:
	//   - path: the file path to the glTF or GLB file
	//
	// Returns:
	//   - *model.MeshSet: the extracted meshes
	//   - error: error if import fails
	Import(path string) (*model.MeshSet, error)

	// ImportReader decodes a glTF document from a reader and extracts its meshes.
	// The stream must not reference external buffers.
	//
	// Parameters:
	//   - r: the reader providing glTF/GLB data
	//
	// Returns:
	//   - *model.MeshSet: the extracted meshes
	//   - error: error if import fails
	ImportReader(r io.Reader) (*model.MeshSet, error)
}

var _ gltfImporter = &gltfImporterImpl{}

// newGLTFImporter creates a new glTF importer.
//
// Returns:
//   - gltfImporter: the importer
func newGLTFImporter() gltfImporter {
	return &gltfImporterImpl{}
}

func (imp *gltfImporterImpl) Import(path string) (*model.MeshSet, error) {
	doc, err := gltf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", path, err)
	}

	set, err := imp.importDocument(doc)
	if err != nil {
		return nil, err
	}
	set.Name = gltfExtractModelName(doc, path)
	set.SourcePath = path
	return set, nil
}

func (imp *gltfImporterImpl) ImportReader(r io.Reader) (*model.MeshSet, error) {
	doc := new(gltf.Document)
	if err := gltf.NewDecoder(r).Decode(doc); err != nil {
		return nil, fmt.Errorf("failed to decode from reader: %w", err)
	}

	set, err := imp.importDocument(doc)
	if err != nil {
		return nil, err
	}
	set.Name = gltfExtractModelName(doc, "")
	return set, nil
}

func (imp *gltfImporterImpl) importDocument(doc *gltf.Document) (*model.MeshSet, error) {
	meshes, err := newGLTFMeshExtractor(doc).ExtractAllMeshes()
	if err != nil {
		return nil, fmt.Errorf("mesh extraction failed: %w", err)
	}
	return &model.MeshSet{Meshes: meshes}, nil
}

// gltfExtractModelName derives a set name from the default scene or a file path fallback.
func gltfExtractModelName(doc *gltf.Document, fallbackPath string) string {
	if doc.Scene != nil && int(*doc.Scene) < len(doc.Scenes) {
		if name := doc.Scenes[*doc.Scene].Name; name != "" && name != "Root Scene" {
			return name
		}
	}

	if fallbackPath != "" {
		return strings.TrimSuffix(filepath.Base(fallbackPath), filepath.Ext(fallbackPath))
	}

	return "unnamed_container"
}
