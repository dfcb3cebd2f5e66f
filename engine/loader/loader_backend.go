package loader

import (
	"io"

	"github.com/Carmen-Shannon/oxy-bog/engine/model"
)

// loaderBackend defines the generic interface for loading mesh sets from files or streams.
// Concrete implementations (e.g., gltfLoaderBackend) handle format-specific details.
type loaderBackend interface {
	// Load reads every mesh of the container at path.
	//
	// Parameters:
	//   - path: the file path to load
	//
	// Returns:
	//   - *model.MeshSet: the extracted meshes
	//   - error: error if loading fails
	Load(path string) (*model.MeshSet, error)

	// LoadReader reads every mesh of a self-contained container stream.
	//
	// Parameters:
	//   - r: the reader providing container data
	//
	// Returns:
	//   - *model.MeshSet: the extracted meshes
	//   - error: error if loading fails
	LoadReader(r io.Reader) (*model.MeshSet, error)
}
