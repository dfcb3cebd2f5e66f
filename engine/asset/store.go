package asset

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/Carmen-Shannon/oxy-bog/common"
	"github.com/google/uuid"
)

var (
	// ErrContainerExists is returned when the scene's output folder exists and overwrite is off.
	ErrContainerExists = errors.New("asset container already exists")
	// ErrContainerClosed is returned when a committed or discarded container is used.
	ErrContainerClosed = errors.New("asset container is closed")
	// ErrInvalidName is returned for container names that are empty or contain path separators.
	ErrInvalidName = errors.New("invalid asset container name")
)

// fsStore is the filesystem implementation of the Store interface.
type fsStore struct {
	root      string
	overwrite bool
	newGUID   func() uuid.UUID
	dirMode   fs.FileMode
	fileMode  fs.FileMode
}

// Store defines the interface for the durable asset storage an import writes into.
//
// Each scene is persisted as one named container: a folder under the store root holding the
// bundle manifest, its binary payloads and the node-tree template. Containers are staged and
// only become visible under their final name on Commit.
type Store interface {
	// Root returns the folder containers are committed under.
	//
	// Returns:
	//   - string: the store root
	Root() string

	// Exists reports whether a committed container with the given name exists.
	//
	// Parameters:
	//   - name: the container name
	//
	// Returns:
	//   - bool: true if <root>/<name> exists
	Exists(name string) bool

	// CreateContainer stages a new container.
	//
	// Parameters:
	//   - name: the container name, usually the scene name
	//
	// Returns:
	//   - Container: the staged container
	//   - error: ErrContainerExists when the name is taken and overwrite is off, ErrInvalidName,
	//     or an I/O error
	CreateContainer(name string) (Container, error)
}

var _ Store = &fsStore{}

// NewStore creates a filesystem Store rooted at root with the options applied.
//
// Parameters:
//   - root: the asset root folder; created on first use
//   - options: variadic list of StoreBuilderOption functions
//
// Returns:
//   - Store: the configured store
func NewStore(root string, options ...StoreBuilderOption) Store {
	s := &fsStore{
		root:     filepath.Clean(root),
		newGUID:  uuid.New,
		dirMode:  0o755,
		fileMode: 0o644,
	}
	for _, opt := range options {
		opt(s)
	}
	return s
}

func (s *fsStore) Root() string {
	return s.root
}

func (s *fsStore) Exists(name string) bool {
	_, err := os.Stat(filepath.Join(s.root, name))
	return err == nil
}

func (s *fsStore) CreateContainer(name string) (Container, error) {
	if name == "" || name == "." || name == ".." || strings.ContainsAny(name, `/\`) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidName, name)
	}

	final := filepath.Join(s.root, name)
	if s.Exists(name) && !s.overwrite {
		return nil, fmt.Errorf("%w: %s", ErrContainerExists, final)
	}

	if err := os.MkdirAll(s.root, s.dirMode); err != nil {
		return nil, fmt.Errorf("failed to create asset root %s: %w", s.root, err)
	}
	staging, err := os.MkdirTemp(s.root, "."+name+".staging-")
	if err != nil {
		return nil, fmt.Errorf("failed to create staging folder for %s: %w", name, err)
	}
	if err := os.Chmod(staging, s.dirMode); err != nil {
		_ = os.RemoveAll(staging)
		return nil, fmt.Errorf("failed to set staging folder mode: %w", err)
	}

	common.LogDebug("staging asset container %s in %s", name, staging)
	return newContainer(s, name, staging, final), nil
}
