package loader

// LoaderBuilderOption is a functional option for configuring a ContainerParser via NewLoader.
type LoaderBuilderOption func(*loader)

// WithMeshCache is an option builder that enables caching of parsed mesh sets by path.
//
// Parameters:
//   - enabled: true to cache parsed containers
//
// Returns:
//   - LoaderBuilderOption: a function that applies the cache option to a loader
func WithMeshCache(enabled bool) LoaderBuilderOption {
	return func(l *loader) {
		l.cacheEnabled = enabled
	}
}

// withBackend replaces the format backend. Used by tests to inject failing or counting backends.
func withBackend(b loaderBackend) LoaderBuilderOption {
	return func(l *loader) {
		l.backend = b
	}
}
