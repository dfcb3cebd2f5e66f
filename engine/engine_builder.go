package engine

import (
	"time"

	"github.com/Carmen-Shannon/oxy-bog/engine/asset"
	"github.com/Carmen-Shannon/oxy-bog/engine/composer"
	"github.com/Carmen-Shannon/oxy-bog/engine/config"
	"github.com/Carmen-Shannon/oxy-bog/engine/loader"
	"github.com/Carmen-Shannon/oxy-bog/engine/texture"
)

// EngineBuilderOption is a functional option for configuring an Engine.
// Use the With* functions to create options that are applied directly to the engine instance.
type EngineBuilderOption func(*engine)

// WithConfig applies every value of a loaded configuration.
// Options after it override individual values.
//
// Parameters:
//   - c: the configuration
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithConfig(c config.Config) EngineBuilderOption {
	return func(e *engine) {
		e.assetRoot = c.AssetRoot
		e.overwrite = c.Overwrite
		e.profilingEnabled = c.Profile
		e.excludedContainer = c.Import.ExcludedContainer
		e.channelChunks = c.Import.ChannelChunks
		e.shader = c.Import.Shader
		e.cacheContainers = c.Import.CacheContainers
		e.batchWorkers = c.Batch.Workers
		e.watchDebounce = c.WatchDebounce()
	}
}

// WithProfiling enables or disables per-stage profiling output.
//
// Parameters:
//   - enabled: if true, enables profiling
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithProfiling(enabled bool) EngineBuilderOption {
	return func(e *engine) {
		e.profilingEnabled = enabled
	}
}

// WithAssetRoot sets the folder the default filesystem store writes under.
// Empty values are ignored.
//
// Parameters:
//   - root: the asset root (default "Assets")
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithAssetRoot(root string) EngineBuilderOption {
	return func(e *engine) {
		if root != "" {
			e.assetRoot = root
		}
	}
}

// WithOverwrite lets Run and Batch replace a previously imported scene of the same name.
//
// Parameters:
//   - overwrite: true to replace existing assets
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithOverwrite(overwrite bool) EngineBuilderOption {
	return func(e *engine) {
		e.overwrite = overwrite
	}
}

// WithStore sets a custom asset store. The store's own overwrite policy then applies to every run.
//
// Parameters:
//   - s: the asset store
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithStore(s asset.Store) EngineBuilderOption {
	return func(e *engine) {
		e.store = s
	}
}

// WithParser sets a custom container parser.
//
// Parameters:
//   - p: the container parser
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithParser(p loader.ContainerParser) EngineBuilderOption {
	return func(e *engine) {
		e.parser = p
	}
}

// WithSliceLoader sets a custom raw slice loader. WithChannelChunks has no effect with it.
//
// Parameters:
//   - l: the slice loader
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithSliceLoader(l texture.SliceLoader) EngineBuilderOption {
	return func(e *engine) {
		e.slices = l
	}
}

// WithComposer sets a custom asset composer. WithShader has no effect with it.
//
// Parameters:
//   - c: the composer
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithComposer(c composer.Composer) EngineBuilderOption {
	return func(e *engine) {
		e.composer = c
	}
}

// WithExcludedContainer sets the base name of the unbaked container that selection skips.
// Empty values are ignored.
//
// Parameters:
//   - name: the file name (default "viewer_mesh_post_gltfpack.glb")
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithExcludedContainer(name string) EngineBuilderOption {
	return func(e *engine) {
		if name != "" {
			e.excludedContainer = name
		}
	}
}

// WithChannelChunks sets the number of raw slices read per axis. Values < 1 are ignored.
//
// Parameters:
//   - n: the chunk count (default 6)
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithChannelChunks(n int) EngineBuilderOption {
	return func(e *engine) {
		if n > 0 {
			e.channelChunks = n
		}
	}
}

// WithShader sets the shader name of the composed material. Empty values are ignored.
//
// Parameters:
//   - shader: the shader name (default "Unlit/BinaryOpacityGrid")
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithShader(shader string) EngineBuilderOption {
	return func(e *engine) {
		if shader != "" {
			e.shader = shader
		}
	}
}

// WithBatchWorkers sets how many scene folders Batch imports at once. Values < 1 are ignored.
//
// Parameters:
//   - n: the worker count (default 4)
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithBatchWorkers(n int) EngineBuilderOption {
	return func(e *engine) {
		if n > 0 {
			e.batchWorkers = n
		}
	}
}

// WithWatchDebounce sets how long Watch waits for file events to settle before re-importing.
// Values <= 0 are ignored.
//
// Parameters:
//   - d: the debounce window (default 500ms)
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithWatchDebounce(d time.Duration) EngineBuilderOption {
	return func(e *engine) {
		if d > 0 {
			e.watchDebounce = d
		}
	}
}
