package asset

import (
	"io/fs"

	"github.com/google/uuid"
)

// StoreBuilderOption is a functional option for configuring a Store via NewStore.
type StoreBuilderOption func(*fsStore)

// WithOverwrite is an option builder that lets a commit replace an existing container of the
// same name. The replacement happens only after the new container is fully staged.
//
// Parameters:
//   - overwrite: true to replace existing containers
//
// Returns:
//   - StoreBuilderOption: a function that applies the overwrite policy to a store
func WithOverwrite(overwrite bool) StoreBuilderOption {
	return func(s *fsStore) {
		s.overwrite = overwrite
	}
}

// WithGUIDGenerator is an option builder that overrides how object GUIDs are generated.
//
// Parameters:
//   - gen: the generator (default uuid.New)
//
// Returns:
//   - StoreBuilderOption: a function that applies the generator to a store
func WithGUIDGenerator(gen func() uuid.UUID) StoreBuilderOption {
	return func(s *fsStore) {
		if gen != nil {
			s.newGUID = gen
		}
	}
}

// WithFileModes is an option builder that sets the permissions of created folders and files.
//
// Parameters:
//   - dir: the folder mode (default 0755)
//   - file: the file mode (default 0644)
//
// Returns:
//   - StoreBuilderOption: a function that applies the modes to a store
func WithFileModes(dir, file fs.FileMode) StoreBuilderOption {
	return func(s *fsStore) {
		s.dirMode = dir
		s.fileMode = file
	}
}
