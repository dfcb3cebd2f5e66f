package loader

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/Carmen-Shannon/oxy-bog/engine/model"
)

// LoaderBackendType identifies the container file format backend to use.
type LoaderBackendType int

const (
	// BackendTypeGLTF selects the glTF/GLB loader backend.
	BackendTypeGLTF LoaderBackendType = iota
)

// cacheEntry is a parsed mesh set tagged with the file state it was read from.
type cacheEntry struct {
	modTime time.Time
	size    int64
	set     *model.MeshSet
}

// loader is the implementation of the ContainerParser interface.
type loader struct {
	mu sync.RWMutex

	cacheEnabled bool
	meshCache    map[string]cacheEntry

	backend loaderBackend
}

// ContainerParser defines the public-facing interface for reading mesh containers.
// It abstracts the file format (glTF, GLB) behind a backend and optionally caches parsed
// mesh sets by path. A cached entry is reused only while the file's size and modification
// time are unchanged.
type ContainerParser interface {
	// Parse reads a container file into a MeshSet.
	// The backend is selected based on the file extension (.gltf/.glb → glTF backend).
	//
	// Parameters:
	//   - path: the file path to the container
	//
	// Returns:
	//   - *model.MeshSet: the meshes in container order
	//   - error: error if the file cannot be read or is not a valid container
	Parse(path string) (*model.MeshSet, error)

	// ParseReader reads a container from a stream. The result is not cached.
	//
	// Parameters:
	//   - name: the name given to the resulting MeshSet
	//   - r: the reader providing container data
	//
	// Returns:
	//   - *model.MeshSet: the meshes in container order
	//   - error: error if the stream is not a valid container
	ParseReader(name string, r io.Reader) (*model.MeshSet, error)

	// Get retrieves a cached MeshSet by path. Returns nil if not cached.
	//
	// Parameters:
	//   - path: the cache key to look up
	//
	// Returns:
	//   - *model.MeshSet: the cached set or nil
	Get(path string) *model.MeshSet

	// Invalidate drops every cached MeshSet whose path lies under dir (or equals it).
	//
	// Parameters:
	//   - dir: a file path or folder
	Invalidate(dir string)
}

var _ ContainerParser = &loader{}

// NewLoader creates a new ContainerParser with the specified backend type and options applied.
//
// Parameters:
//   - backendType: the type of loader backend to use (e.g., BackendTypeGLTF)
//   - options: a variadic list of LoaderBuilderOption functions to configure the parser
//
// Returns:
//   - ContainerParser: a new parser configured with the provided backend and options
func NewLoader(backendType LoaderBackendType, options ...LoaderBuilderOption) ContainerParser {
	l := &loader{
		mu:        sync.RWMutex{},
		meshCache: make(map[string]cacheEntry),
	}

	switch backendType {
	case BackendTypeGLTF:
		l.backend = newGLTFLoaderBackend()
	}

	for _, option := range options {
		option(l)
	}
	return l
}

func (l *loader) Parse(path string) (*model.MeshSet, error) {
	backend, err := l.resolveBackend(path)
	if err != nil {
		return nil, err
	}

	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("failed to stat %s: %w", path, err)
	}

	if l.cacheEnabled {
		l.mu.RLock()
		cached, ok := l.meshCache[path]
		l.mu.RUnlock()
		if ok && cached.size == info.Size() && cached.modTime.Equal(info.ModTime()) {
			return cached.set, nil
		}
	}

	set, err := backend.Load(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load %s: %w", path, err)
	}

	if l.cacheEnabled {
		l.mu.Lock()
		l.meshCache[path] = cacheEntry{modTime: info.ModTime(), size: info.Size(), set: set}
		l.mu.Unlock()
	}

	return set, nil
}

func (l *loader) ParseReader(name string, r io.Reader) (*model.MeshSet, error) {
	set, err := l.backend.LoadReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to load from reader %q: %w", name, err)
	}
	set.Name = name
	return set, nil
}

func (l *loader) Get(path string) *model.MeshSet {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.meshCache[path].set
}

func (l *loader) Invalidate(dir string) {
	dir = filepath.Clean(dir)
	prefix := dir + string(filepath.Separator)

	l.mu.Lock()
	defer l.mu.Unlock()
	for path := range l.meshCache {
		if path == dir || strings.HasPrefix(path, prefix) {
			delete(l.meshCache, path)
		}
	}
}

// resolveBackend selects an appropriate loader backend based on the file extension.
// Currently only glTF/GLB is supported.
func (l *loader) resolveBackend(path string) (loaderBackend, error) {
	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".gltf", ".glb":
		return l.backend, nil
	default:
		return nil, fmt.Errorf("unsupported container format: %q", ext)
	}
}
