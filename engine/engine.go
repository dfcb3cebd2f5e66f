package engine

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/Carmen-Shannon/oxy-bog/common"
	"github.com/Carmen-Shannon/oxy-bog/engine/asset"
	"github.com/Carmen-Shannon/oxy-bog/engine/composer"
	"github.com/Carmen-Shannon/oxy-bog/engine/config"
	"github.com/Carmen-Shannon/oxy-bog/engine/loader"
	"github.com/Carmen-Shannon/oxy-bog/engine/params"
	"github.com/Carmen-Shannon/oxy-bog/engine/profiler"
	"github.com/Carmen-Shannon/oxy-bog/engine/texture"
)

// engine implements the Engine interface.
// Its collaborators are stateless between runs, so one engine can drive concurrent runs.
type engine struct {
	store     asset.Store
	assetRoot string
	overwrite bool

	parser   loader.ContainerParser
	slices   texture.SliceLoader
	composer composer.Composer

	excludedContainer string
	channelChunks     int
	shader            string
	cacheContainers   bool

	batchWorkers  int
	watchDebounce time.Duration

	profilingEnabled bool
}

// Engine is the main entry point of the importer.
// It drives the import state machine for one scene folder and the batch and watch modes built on it.
type Engine interface {
	// Run imports one scene folder into the asset store.
	// An empty folder means the selection was cancelled and nothing happens.
	//
	// Parameters:
	//   - folder: the scene folder
	//
	// Returns:
	//   - Result: the outcome, terminal stage and stage trace of the run
	Run(folder string) Result

	// TryLoadAssets imports one scene folder and reports it in the two-value form of the editor menu.
	//
	// Parameters:
	//   - folder: the scene folder
	//
	// Returns:
	//   - bool: true if the assets were persisted
	//   - string: the failure message, empty on success and cancellation
	TryLoadAssets(folder string) (bool, string)

	// Batch imports every immediate sub-folder of root that holds a *.json file, concurrently.
	//
	// Parameters:
	//   - root: the folder containing scene folders
	//
	// Returns:
	//   - []Result: one result per scene folder, sorted by folder name
	//   - error: error if root cannot be listed
	Batch(root string) ([]Result, error)

	// Watch imports folder once, then again whenever its files change, until ctx is done.
	// Re-imports always replace the previous assets.
	//
	// Parameters:
	//   - ctx: cancels the watch
	//   - folder: the scene folder
	//   - onResult: called after every run, may be nil
	//
	// Returns:
	//   - error: error if the folder cannot be watched
	Watch(ctx context.Context, folder string, onResult func(Result)) error

	// Inspect reports what an import of folder would find without writing anything.
	//
	// Parameters:
	//   - folder: the scene folder
	//
	// Returns:
	//   - *Report: the folder report
	//   - error: error if folder cannot be listed
	Inspect(folder string) (*Report, error)

	// AssetRoot returns the folder assets are persisted under.
	//
	// Returns:
	//   - string: the asset root
	AssetRoot() string

	// EnableProfiler enables per-stage timing and memory output to the log.
	EnableProfiler()

	// DisableProfiler disables per-stage profiling output.
	DisableProfiler()
}

var _ Engine = &engine{}

// NewEngine creates a new Engine with the provided options.
// Collaborators not set through options are built from the configured values.
//
// Parameters:
//   - options: functional options for engine configuration
//
// Returns:
//   - Engine: the newly created engine
func NewEngine(options ...EngineBuilderOption) Engine {
	e := &engine{
		assetRoot:         config.DefaultAssetRoot,
		excludedContainer: loader.DefaultExcludedContainer,
		channelChunks:     texture.DefaultChannelChunks,
		shader:            config.DefaultShader,
		batchWorkers:      config.DefaultBatchWorkers,
		watchDebounce:     config.DefaultWatchDebounceMS * time.Millisecond,
	}

	for _, opt := range options {
		opt(e)
	}

	if e.parser == nil {
		e.parser = loader.NewLoader(loader.BackendTypeGLTF, loader.WithMeshCache(e.cacheContainers))
	}
	if e.slices == nil {
		e.slices = texture.NewSliceLoader(texture.WithChannelChunks(e.channelChunks))
	}
	if e.composer == nil {
		e.composer = composer.NewComposer(composer.WithShader(e.shader))
	}

	return e
}

func (e *engine) AssetRoot() string {
	if e.store != nil {
		return e.store.Root()
	}
	return e.assetRoot
}

func (e *engine) EnableProfiler() {
	e.profilingEnabled = true
}

func (e *engine) DisableProfiler() {
	e.profilingEnabled = false
}

func (e *engine) Run(folder string) Result {
	return e.run(folder, e.overwrite)
}

func (e *engine) TryLoadAssets(folder string) (bool, string) {
	res := e.Run(folder)
	switch res.Outcome {
	case OutcomeSucceeded:
		return true, ""
	case OutcomeCancelled:
		return false, ""
	}
	return false, res.Message
}

// storeFor returns the configured store, or a filesystem store under the asset root.
func (e *engine) storeFor(overwrite bool) asset.Store {
	if e.store != nil {
		return e.store
	}
	return asset.NewStore(e.assetRoot, asset.WithOverwrite(overwrite))
}

// run executes the import state machine once.
func (e *engine) run(folder string, overwrite bool) Result {
	r := newImportRun(folder, e.profilingEnabled)
	if folder == "" {
		common.LogInfo("import cancelled")
		return r.cancel()
	}

	r.enter(StageValidatingInputs)
	if info, err := os.Stat(folder); err != nil || !info.IsDir() {
		return r.fail(KindMissingFile, fmt.Sprintf("Folder not found: %s", folder), err)
	}
	jsonFiles, err := listFiles(folder, ".json")
	if err != nil {
		return r.fail(KindMissingFile, fmt.Sprintf("Failed to list folder %s: %v", folder, err), err)
	}
	if len(jsonFiles) == 0 {
		return r.fail(KindMissingFile, "No Json file found in the folder: "+folder, nil)
	}

	r.enter(StageParsingParameters)
	p, err := params.Load(jsonFiles[0])
	if err != nil {
		return r.fail(KindMalformedInput, err.Error(), err)
	}
	if err := p.Validate(); err != nil {
		return r.fail(KindMalformedInput, fmt.Sprintf("%s: %v", filepath.Base(jsonFiles[0]), err), err)
	}
	common.LogDebug("using scene parameters %s (triplane resolution %d)", jsonFiles[0], p.TriplaneResolution)

	r.enter(StageSelectingContainer)
	glbFiles, err := listFiles(folder, ".glb")
	if err != nil {
		return r.fail(KindMissingFile, fmt.Sprintf("Failed to list folder %s: %v", folder, err), err)
	}
	if len(glbFiles) == 0 {
		return r.fail(KindMissingFile, "No glb file found in the folder: "+folder, nil)
	}
	selection, err := loader.Select(e.parser, glbFiles, e.excludedContainer)
	if err != nil {
		return r.fail(KindNoValidContainer, "No valid glb file with baked feature maps found in the folder: "+folder, err)
	}
	r.result.Container = selection.Path

	r.enter(StageLoadingTextures)
	triplane, err := e.slices.Load(folder, composer.TriplaneName(r.result.Scene), p.TriplaneResolution)
	if err != nil {
		var missing *texture.MissingSliceError
		if errors.As(err, &missing) {
			return r.fail(KindMissingFile, err.Error(), err)
		}
		return r.fail(KindMalformedInput, err.Error(), err)
	}

	r.enter(StageComposingAssets)
	bundle, tree, err := e.composer.Compose(p, selection.Meshes, triplane, r.result.Scene)
	if err != nil {
		return r.fail(KindMalformedInput, err.Error(), err)
	}
	dir, err := e.composer.Persist(e.storeFor(overwrite), bundle, tree)
	if err != nil {
		return r.fail(KindPersistenceFailure, err.Error(), err)
	}

	r.result.OutputDir = dir
	common.LogInfo("imported %s into %s", r.result.Scene, dir)
	return r.succeed()
}

// importRun tracks the stage trace and profiling of one run.
type importRun struct {
	result   Result
	profiler *profiler.Profiler
}

func newImportRun(folder string, profiling bool) *importRun {
	r := &importRun{
		result: Result{
			Folder: folder,
			Scene:  SceneName(folder),
			Stage:  StageIdle,
			Trace:  []Stage{StageIdle},
		},
	}
	if profiling {
		r.profiler = profiler.NewProfiler()
	}
	return r
}

func (r *importRun) enter(s Stage) {
	if r.profiler != nil && r.result.Stage != StageIdle {
		r.profiler.Mark(r.result.Stage.String())
	}
	common.LogDebug("%s: %s -> %s", r.result.Scene, r.result.Stage, s)
	r.result.Stage = s
	r.result.Trace = append(r.result.Trace, s)
}

func (r *importRun) cancel() Result {
	r.enter(StageCancelled)
	r.result.Outcome = OutcomeCancelled
	return r.result
}

func (r *importRun) fail(kind ErrorKind, msg string, cause error) Result {
	failedAt := r.result.Stage
	r.enter(StageFailed)
	common.LogError("%s", msg)
	r.result.Outcome = OutcomeFailed
	r.result.Message = msg
	r.result.Err = &ImportError{Kind: kind, Stage: failedAt, Message: msg, Err: cause}
	return r.result
}

func (r *importRun) succeed() Result {
	r.enter(StagePersisted)
	r.result.Outcome = OutcomeSucceeded
	if r.profiler != nil {
		common.LogInfo("[Profiler] %s total: %s", r.result.Scene, r.profiler.Total())
	}
	return r.result
}

// SceneName returns the scene name of a folder: its base name, e.g. "garden" for "/data/garden/".
func SceneName(folder string) string {
	if folder == "" {
		return ""
	}
	return filepath.Base(filepath.Clean(folder))
}
