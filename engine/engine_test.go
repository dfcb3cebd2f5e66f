package engine

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/Carmen-Shannon/oxy-bog/common"
	"github.com/Carmen-Shannon/oxy-bog/engine/asset"
	"github.com/Carmen-Shannon/oxy-bog/engine/config"
	"github.com/Carmen-Shannon/oxy-bog/engine/material"
	"github.com/Carmen-Shannon/oxy-bog/engine/params"
	"github.com/Carmen-Shannon/oxy-bog/engine/texture"
	"github.com/Carmen-Shannon/oxy-bog/internal/fixture"
	"github.com/fsnotify/fsnotify"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	common.SetLogOutput(io.Discard)
	os.Exit(m.Run())
}

var fullTrace = []Stage{
	StageIdle,
	StageValidatingInputs,
	StageParsingParameters,
	StageSelectingContainer,
	StageLoadingTextures,
	StageComposingAssets,
	StagePersisted,
}

// newTestEngine returns an engine writing under a fresh asset root.
func newTestEngine(t *testing.T, options ...EngineBuilderOption) (Engine, string) {
	t.Helper()
	root := filepath.Join(t.TempDir(), "Assets")
	return NewEngine(append([]EngineBuilderOption{WithAssetRoot(root)}, options...)...), root
}

func bakedScene(t *testing.T, name string, resolution int) string {
	t.Helper()
	return fixture.Scene(t, t.TempDir(), name, fixture.SceneOptions{Resolution: resolution, BakedUVChannels: 4})
}

func requireImportError(t *testing.T, res Result, kind ErrorKind, stage Stage) *ImportError {
	t.Helper()
	assert.Equal(t, OutcomeFailed, res.Outcome)
	assert.Equal(t, StageFailed, res.Stage)
	assert.Equal(t, StageFailed, res.Trace[len(res.Trace)-1])

	var importErr *ImportError
	require.ErrorAs(t, res.Err, &importErr)
	assert.Equal(t, kind, importErr.Kind)
	assert.Equal(t, stage, importErr.Stage)
	assert.Equal(t, res.Message, importErr.Error())
	return importErr
}

func TestRun_ImportsScene(t *testing.T) {
	// --- Arrange ---
	dir := bakedScene(t, "garden", 4)
	e, root := newTestEngine(t)

	// --- Act ---
	res := e.Run(dir)

	// --- Assert ---
	require.True(t, res.Succeeded(), res.Message)
	assert.Equal(t, StagePersisted, res.Stage)
	assert.Equal(t, fullTrace, res.Trace)
	assert.Equal(t, "garden", res.Scene)
	assert.Equal(t, filepath.Join(dir, fixture.BakedContainer), res.Container)
	assert.Equal(t, filepath.Join(root, "garden"), res.OutputDir)
	assert.Empty(t, res.Message)
	assert.NoError(t, res.Err)

	manifest, err := asset.ReadManifest(filepath.Join(res.OutputDir, asset.AssetFileName("garden")))
	require.NoError(t, err)
	assert.Equal(t, "garden", manifest.Name)
	assert.Equal(t, "gardenTriplane", manifest.Triplane.Name)
	assert.Equal(t, 18, manifest.Triplane.Layers)
	assert.Equal(t, "gardenMat", manifest.Material.Name)
	assert.Equal(t, material.DefaultShader, manifest.Material.Shader)
	assert.Equal(t, float32(0.5), manifest.Material.Floats[material.PropSceneScaleFactor])
	assert.Equal(t, int32(0), manifest.Material.Ints[material.PropDisplayMode])
	require.Len(t, manifest.Meshes.Entries, 2)

	tpl, err := asset.ReadTemplate(filepath.Join(res.OutputDir, asset.TemplateFileName("garden")))
	require.NoError(t, err)
	require.Len(t, tpl.Nodes, 3)
	assert.Equal(t, "garden", tpl.Nodes[0].Name)
	assert.Equal(t, "mesh_a", tpl.Nodes[1].Name)
	assert.Equal(t, "mesh_b", tpl.Nodes[2].Name)
	for _, node := range tpl.Nodes[1:] {
		require.NotNil(t, node.Renderer)
		assert.Equal(t, manifest.Material.GUID, node.Renderer.Material)
		assert.False(t, node.Renderer.Settings.CastShadows)
		assert.False(t, node.Renderer.Settings.ReceiveShadows)
		assert.False(t, node.Renderer.Settings.LightProbes)
		assert.False(t, node.Renderer.Settings.ReflectionProbes)
		assert.Equal(t, [3]float32{}, node.Transform.Position)
		assert.Equal(t, [3]float32{1, 1, 1}, node.Transform.Scale)
	}
}

func TestTryLoadAssets_Resolution256(t *testing.T) {
	// --- Arrange ---
	const resolution = 256
	dir := bakedScene(t, "bicycle", resolution)
	e, root := newTestEngine(t)

	// --- Act ---
	ok, msg := e.TryLoadAssets(dir)

	// --- Assert ---
	require.True(t, ok, msg)
	assert.Empty(t, msg)

	out := filepath.Join(root, "bicycle")
	manifest, err := asset.ReadManifest(filepath.Join(out, asset.AssetFileName("bicycle")))
	require.NoError(t, err)
	assert.Equal(t, 18, manifest.Triplane.Layers)
	assert.Equal(t, uint32(resolution), manifest.Triplane.Width)
	assert.Equal(t, uint32(resolution), manifest.Triplane.Height)
	assert.Equal(t, float32(resolution), manifest.Material.Floats[material.PropTriplaneResolution])
	assert.Len(t, manifest.Meshes.Entries, 2)

	tpl, err := asset.ReadTemplate(filepath.Join(out, asset.TemplateFileName("bicycle")))
	require.NoError(t, err)
	assert.Len(t, tpl.Nodes, 3)

	f, err := os.Open(filepath.Join(out, asset.TriplaneFileName("bicycleTriplane")))
	require.NoError(t, err)
	defer f.Close()
	array, err := texture.Decode(f, "bicycleTriplane")
	require.NoError(t, err)
	for axis := 0; axis < texture.AxisCount; axis++ {
		for chunk := 0; chunk < texture.DefaultChannelChunks; chunk++ {
			layer, err := array.Layer(axis, chunk)
			require.NoError(t, err)
			assert.Equal(t, fixture.SliceBytes(axis, chunk, resolution), layer, "layer %d_%02d", axis, chunk)
		}
	}
}

func TestRun_TwoUVChannelsHasNoValidContainer(t *testing.T) {
	dir := fixture.Scene(t, t.TempDir(), "garden", fixture.SceneOptions{BakedUVChannels: 2})
	e, root := newTestEngine(t)

	res := e.Run(dir)

	requireImportError(t, res, KindNoValidContainer, StageSelectingContainer)
	assert.Equal(t, "No valid glb file with baked feature maps found in the folder: "+dir, res.Message)
	assert.ErrorIs(t, res.Err, ErrNoValidContainer)
	assert.NoDirExists(t, root)
}

func TestRun_MissingJSON(t *testing.T) {
	dir := bakedScene(t, "garden", 4)
	require.NoError(t, os.Remove(filepath.Join(dir, fixture.ParamsFile)))
	e, root := newTestEngine(t)

	res := e.Run(dir)

	requireImportError(t, res, KindMissingFile, StageValidatingInputs)
	assert.Equal(t, "No Json file found in the folder: "+dir, res.Message)
	assert.ErrorIs(t, res.Err, ErrMissingFile)
	assert.NoDirExists(t, root)
}

func TestRun_MissingGLB(t *testing.T) {
	dir := bakedScene(t, "garden", 4)
	require.NoError(t, os.Remove(filepath.Join(dir, fixture.BakedContainer)))
	require.NoError(t, os.Remove(filepath.Join(dir, fixture.OriginalContainer)))
	e, root := newTestEngine(t)

	res := e.Run(dir)

	requireImportError(t, res, KindMissingFile, StageSelectingContainer)
	assert.Equal(t, "No glb file found in the folder: "+dir, res.Message)
	assert.NoDirExists(t, root)
}

func TestRun_OnlyUnbakedContainer(t *testing.T) {
	dir := bakedScene(t, "garden", 4)
	require.NoError(t, os.Remove(filepath.Join(dir, fixture.BakedContainer)))
	e, _ := newTestEngine(t)

	res := e.Run(dir)

	requireImportError(t, res, KindNoValidContainer, StageSelectingContainer)
}

func TestRun_MissingSlice(t *testing.T) {
	dir := fixture.Scene(t, t.TempDir(), "garden", fixture.SceneOptions{BakedUVChannels: 4, SkipSlice: "plane_features_1_03.raw"})
	e, root := newTestEngine(t)

	res := e.Run(dir)

	importErr := requireImportError(t, res, KindMissingFile, StageLoadingTextures)
	assert.Equal(t, "Can't find file plane_features_1_03.raw in path "+dir+
		"! Make sure that all plane feature .raw files are in the path you selected.", res.Message)
	var missing *texture.MissingSliceError
	require.ErrorAs(t, importErr, &missing)
	assert.Equal(t, "plane_features_1_03.raw", missing.File)
	assert.NoDirExists(t, root)
}

func TestRun_TruncatedSlice(t *testing.T) {
	dir := bakedScene(t, "garden", 4)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "plane_features_2_05.raw"), make([]byte, 3), 0o644))
	e, root := newTestEngine(t)

	res := e.Run(dir)

	requireImportError(t, res, KindMalformedInput, StageLoadingTextures)
	assert.ErrorIs(t, res.Err, texture.ErrTruncatedSlice)
	assert.ErrorIs(t, res.Err, ErrMalformedInput)
	assert.Contains(t, res.Message, "plane_features_2_05.raw")
	assert.NoDirExists(t, root)
}

func TestRun_MalformedJSON(t *testing.T) {
	dir := bakedScene(t, "garden", 4)
	require.NoError(t, os.WriteFile(filepath.Join(dir, fixture.ParamsFile), []byte(`{"triplane_resolution": `), 0o644))
	e, root := newTestEngine(t)

	res := e.Run(dir)

	requireImportError(t, res, KindMalformedInput, StageParsingParameters)
	assert.NotEmpty(t, res.Message)
	assert.NoDirExists(t, root)
}

func TestRun_ZeroResolution(t *testing.T) {
	dir := bakedScene(t, "garden", 4)
	require.NoError(t, os.WriteFile(filepath.Join(dir, fixture.ParamsFile), []byte(`{"scene_scale_factor": 1}`), 0o644))
	e, _ := newTestEngine(t)

	res := e.Run(dir)

	requireImportError(t, res, KindMalformedInput, StageParsingParameters)
	assert.Contains(t, res.Message, fixture.ParamsFile)
}

func TestRun_OverflowingResolution(t *testing.T) {
	// --- Arrange ---
	// 4*R*R wraps to 0 in 64 bits at R = 2^31, so empty slices would otherwise pass the size check.
	dir := bakedScene(t, "garden", 4)
	require.NoError(t, os.WriteFile(filepath.Join(dir, fixture.ParamsFile), []byte(`{"triplane_resolution": 2147483648}`), 0o644))
	for axis := 0; axis < texture.AxisCount; axis++ {
		for chunk := 0; chunk < texture.DefaultChannelChunks; chunk++ {
			require.NoError(t, os.WriteFile(filepath.Join(dir, fixture.SliceName(axis, chunk)), nil, 0o644))
		}
	}
	e, root := newTestEngine(t)

	// --- Act ---
	res := e.Run(dir)

	// --- Assert ---
	requireImportError(t, res, KindMalformedInput, StageParsingParameters)
	assert.ErrorIs(t, res.Err, params.ErrResolutionTooLarge)
	assert.NoDirExists(t, root)
}

func TestRun_FirstJSONWins(t *testing.T) {
	dir := bakedScene(t, "garden", 4)
	// "a_" sorts before scene_params.json and has an unusable resolution.
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a_params.json"), []byte(`{}`), 0o644))
	e, _ := newTestEngine(t)

	res := e.Run(dir)

	requireImportError(t, res, KindMalformedInput, StageParsingParameters)
	assert.Contains(t, res.Message, "a_params.json")
}

func TestRun_FolderNotFound(t *testing.T) {
	e, _ := newTestEngine(t)
	dir := filepath.Join(t.TempDir(), "nope")

	res := e.Run(dir)

	requireImportError(t, res, KindMissingFile, StageValidatingInputs)
	assert.Contains(t, res.Message, dir)
}

func TestRun_Cancelled(t *testing.T) {
	e, root := newTestEngine(t)

	res := e.Run("")
	assert.Equal(t, OutcomeCancelled, res.Outcome)
	assert.Equal(t, []Stage{StageIdle, StageCancelled}, res.Trace)
	assert.Empty(t, res.Message)
	assert.NoError(t, res.Err)

	ok, msg := e.TryLoadAssets("")
	assert.False(t, ok)
	assert.Empty(t, msg)
	assert.NoDirExists(t, root)
}

func TestRun_TrailingSeparator(t *testing.T) {
	dir := bakedScene(t, "garden", 4)
	e, root := newTestEngine(t)

	res := e.Run(dir + string(filepath.Separator))

	require.True(t, res.Succeeded(), res.Message)
	assert.Equal(t, "garden", res.Scene)
	assert.DirExists(t, filepath.Join(root, "garden"))
}

func TestRun_Reimport(t *testing.T) {
	dir := bakedScene(t, "garden", 4)

	t.Run("collision", func(t *testing.T) {
		e, root := newTestEngine(t)
		require.True(t, e.Run(dir).Succeeded())

		res := e.Run(dir)

		requireImportError(t, res, KindPersistenceFailure, StageComposingAssets)
		assert.ErrorIs(t, res.Err, asset.ErrContainerExists)
		assert.FileExists(t, filepath.Join(root, "garden", asset.AssetFileName("garden")))
	})

	t.Run("overwrite", func(t *testing.T) {
		e, root := newTestEngine(t, WithOverwrite(true))
		require.True(t, e.Run(dir).Succeeded())

		res := e.Run(dir)

		require.True(t, res.Succeeded(), res.Message)
		assert.FileExists(t, filepath.Join(root, "garden", asset.AssetFileName("garden")))
	})
}

func TestRun_CustomStore(t *testing.T) {
	dir := bakedScene(t, "garden", 4)
	root := filepath.Join(t.TempDir(), "custom")
	e := NewEngine(WithStore(asset.NewStore(root)), WithAssetRoot("ignored"))

	res := e.Run(dir)

	require.True(t, res.Succeeded(), res.Message)
	assert.Equal(t, root, e.AssetRoot())
	assert.Equal(t, filepath.Join(root, "garden"), res.OutputDir)
}

func TestRun_Profiling(t *testing.T) {
	dir := bakedScene(t, "garden", 4)
	e, _ := newTestEngine(t, WithProfiling(true))

	res := e.Run(dir)
	require.True(t, res.Succeeded(), res.Message)

	e.DisableProfiler()
	e.EnableProfiler()
}

func TestNewEngine_WithConfig(t *testing.T) {
	c := config.Default()
	c.AssetRoot = filepath.Join(t.TempDir(), "fromConfig")
	c.Import.ExcludedContainer = fixture.BakedContainer

	dir := bakedScene(t, "garden", 4)
	e := NewEngine(WithConfig(c))
	assert.Equal(t, c.AssetRoot, e.AssetRoot())

	// The baked container is now the excluded one, leaving only the unbaked original.
	res := e.Run(dir)
	requireImportError(t, res, KindNoValidContainer, StageSelectingContainer)
}

func TestBatch(t *testing.T) {
	// --- Arrange ---
	parent := t.TempDir()
	fixture.Scene(t, parent, "alpha", fixture.SceneOptions{BakedUVChannels: 4})
	fixture.Scene(t, parent, "bravo", fixture.SceneOptions{BakedUVChannels: 4, Resolution: 8})
	fixture.Scene(t, parent, "charlie", fixture.SceneOptions{BakedUVChannels: 2})
	require.NoError(t, os.MkdirAll(filepath.Join(parent, "empty"), 0o755))
	require.NoError(t, os.MkdirAll(filepath.Join(parent, ".hidden"), 0o755))
	fixture.WriteParams(t, filepath.Join(parent, ".hidden", fixture.ParamsFile), 4)
	e, root := newTestEngine(t, WithBatchWorkers(2))

	// --- Act ---
	results, err := e.Batch(parent)

	// --- Assert ---
	require.NoError(t, err)
	require.Len(t, results, 3)
	assert.Equal(t, "alpha", results[0].Scene)
	assert.Equal(t, "bravo", results[1].Scene)
	assert.Equal(t, "charlie", results[2].Scene)
	assert.True(t, results[0].Succeeded(), results[0].Message)
	assert.True(t, results[1].Succeeded(), results[1].Message)
	assert.ErrorIs(t, results[2].Err, ErrNoValidContainer)

	assert.DirExists(t, filepath.Join(root, "alpha"))
	assert.DirExists(t, filepath.Join(root, "bravo"))
	assert.NoDirExists(t, filepath.Join(root, "charlie"))
}

func TestBatch_NoScenes(t *testing.T) {
	e, _ := newTestEngine(t)

	results, err := e.Batch(t.TempDir())
	require.NoError(t, err)
	assert.Empty(t, results)

	_, err = e.Batch(filepath.Join(t.TempDir(), "missing"))
	assert.Error(t, err)
}

func TestInspect(t *testing.T) {
	// --- Arrange ---
	dir := fixture.Scene(t, t.TempDir(), "garden", fixture.SceneOptions{BakedUVChannels: 4, SkipSlice: "plane_features_0_01.raw"})
	require.NoError(t, os.WriteFile(filepath.Join(dir, "sparse_grid_block_indices.raw"), []byte{1}, 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "plane_features_2_02.raw"), []byte{1, 2}, 0o644))
	e, root := newTestEngine(t)

	// --- Act ---
	report, err := e.Inspect(dir)

	// --- Assert ---
	require.NoError(t, err)
	assert.Equal(t, "garden", report.Scene)
	assert.Equal(t, filepath.Join(dir, fixture.ParamsFile), report.ParamsFile)
	require.NotNil(t, report.Params)
	assert.Equal(t, 4, report.Params.TriplaneResolution)

	require.Len(t, report.Containers, 2)
	assert.Equal(t, filepath.Join(dir, fixture.BakedContainer), report.Containers[0].Path)
	assert.True(t, report.Containers[0].Baked)
	assert.Equal(t, 4, report.Containers[0].UVChannels)
	assert.True(t, report.Containers[1].Excluded)
	assert.Equal(t, report.Containers[0].Path, report.Selected)

	require.Len(t, report.Slices, 18)
	assert.Equal(t, "plane_features_0_01.raw", report.Slices[1].File)
	assert.False(t, report.Slices[1].Present)
	assert.False(t, report.Slices[14].OK())
	assert.Equal(t, int64(2), report.Slices[14].Size)
	assert.Equal(t, int64(64), report.Slices[14].Expected)
	assert.True(t, report.Slices[0].OK())
	assert.False(t, report.Ready())

	assert.Equal(t, []string{"sparse_grid_block_indices.raw"}, report.SparseGridFiles)
	assert.NoDirExists(t, root)
}

func TestInspect_ReadyScene(t *testing.T) {
	dir := bakedScene(t, "garden", 4)
	e, _ := newTestEngine(t)

	report, err := e.Inspect(dir)
	require.NoError(t, err)
	assert.True(t, report.Ready())

	_, err = e.Inspect(filepath.Join(dir, fixture.ParamsFile))
	assert.Error(t, err)
}

func waitResult(t *testing.T, results <-chan Result) Result {
	t.Helper()
	select {
	case r := <-results:
		return r
	case <-time.After(10 * time.Second):
		t.Fatal("timed out waiting for an import")
		return Result{}
	}
}

func TestWatch_ReimportsOnChange(t *testing.T) {
	// --- Arrange ---
	dir := bakedScene(t, "garden", 4)
	e, root := newTestEngine(t, WithWatchDebounce(20*time.Millisecond))
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	results := make(chan Result, 16)
	done := make(chan error, 1)
	go func() {
		done <- e.Watch(ctx, dir, func(r Result) { results <- r })
	}()

	// --- Act / Assert ---
	first := waitResult(t, results)
	require.True(t, first.Succeeded(), first.Message)

	require.NoError(t, os.WriteFile(filepath.Join(dir, fixture.ParamsFile), []byte(fixture.ParamsJSON(4)), 0o644))
	second := waitResult(t, results)
	require.True(t, second.Succeeded(), second.Message)
	assert.DirExists(t, filepath.Join(root, "garden"))

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(10 * time.Second):
		t.Fatal("watch did not stop")
	}
}

func TestWatch_MissingFolder(t *testing.T) {
	e, _ := newTestEngine(t)
	err := e.Watch(context.Background(), filepath.Join(t.TempDir(), "missing"), nil)
	assert.Error(t, err)
}

func TestWatch_AssetRootInsideWatchedFolder(t *testing.T) {
	// --- Arrange ---
	dir := bakedScene(t, "garden", 4)
	e := NewEngine(WithAssetRoot(dir), WithWatchDebounce(20*time.Millisecond))
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	results := make(chan Result, 16)
	done := make(chan error, 1)
	go func() {
		done <- e.Watch(ctx, dir, func(r Result) { results <- r })
	}()

	// --- Act / Assert ---
	first := waitResult(t, results)
	require.True(t, first.Succeeded(), first.Message)
	assert.DirExists(t, filepath.Join(dir, "garden"))

	// Writing the output folder must not trigger another import.
	select {
	case r := <-results:
		t.Fatalf("unexpected re-import after own output: %+v", r.Trace)
	case <-time.After(500 * time.Millisecond):
	}

	// Real edits still do.
	require.NoError(t, os.WriteFile(filepath.Join(dir, fixture.ParamsFile), []byte(fixture.ParamsJSON(4)), 0o644))
	second := waitResult(t, results)
	require.True(t, second.Succeeded(), second.Message)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(10 * time.Second):
		t.Fatal("watch did not stop")
	}
}

func TestRelevantEvent(t *testing.T) {
	root := filepath.Join(t.TempDir(), "scene")
	output := filepath.Join(root, "scene")

	testCases := []struct {
		name     string
		event    fsnotify.Event
		expected bool
	}{
		{"params write", fsnotify.Event{Name: filepath.Join(root, fixture.ParamsFile), Op: fsnotify.Write}, true},
		{"chmod only", fsnotify.Event{Name: filepath.Join(root, fixture.ParamsFile), Op: fsnotify.Chmod}, false},
		{"hidden staging", fsnotify.Event{Name: filepath.Join(root, ".scene.staging-1"), Op: fsnotify.Create}, false},
		{"output folder", fsnotify.Event{Name: output, Op: fsnotify.Create}, false},
		{"inside output folder", fsnotify.Event{Name: filepath.Join(output, "mesh.glb"), Op: fsnotify.Write}, false},
		{"asset root", fsnotify.Event{Name: root, Op: fsnotify.Create}, false},
		{"sibling with output prefix", fsnotify.Event{Name: output + "_old.glb", Op: fsnotify.Create}, true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, relevantEvent(tc.event, root, output))
		})
	}
}

func TestStage_String(t *testing.T) {
	assert.Equal(t, "LoadingTextures", StageLoadingTextures.String())
	assert.Equal(t, "Cancelled", StageCancelled.String())
	assert.Equal(t, "Unknown", Stage(99).String())
	assert.True(t, StagePersisted.Terminal())
	assert.False(t, StageComposingAssets.Terminal())
}

func TestImportError_Is(t *testing.T) {
	cause := errors.New("disk full")
	err := error(&ImportError{Kind: KindPersistenceFailure, Message: "failed", Err: cause})

	assert.ErrorIs(t, err, ErrPersistenceFailure)
	assert.ErrorIs(t, err, cause)
	assert.NotErrorIs(t, err, ErrMissingFile)
	assert.Equal(t, "failed", err.Error())
	assert.Equal(t, "PersistenceFailure", KindPersistenceFailure.String())
}
