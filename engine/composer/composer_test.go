package composer

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/Carmen-Shannon/oxy-bog/engine/asset"
	"github.com/Carmen-Shannon/oxy-bog/engine/game_object"
	"github.com/Carmen-Shannon/oxy-bog/engine/material"
	"github.com/Carmen-Shannon/oxy-bog/engine/model"
	"github.com/Carmen-Shannon/oxy-bog/engine/params"
	"github.com/Carmen-Shannon/oxy-bog/engine/scene"
	"github.com/Carmen-Shannon/oxy-bog/engine/texture"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testParams() params.SceneParameters {
	return params.SceneParameters{
		SceneScaleFactor:   0.5,
		TriplaneResolution: 2,
		TriplaneVoxelSize:  0.0078125,
		Ranges: params.Ranges{
			DiffuseRGB: params.Range{Min: -1, Max: 2},
			Color:      params.Range{Min: -3, Max: 3.5},
			Mean:       params.Range{Min: 0.25, Max: 0.75},
			Scale:      params.Range{Min: -5, Max: 5},
		},
	}
}

func testMeshes() *model.MeshSet {
	uv := [][2]float32{{0, 0}, {1, 0}, {0, 1}}
	pos := [][3]float32{{0, 0, 0}, {1, 0, 0}, {0, 1, 0}}
	return &model.MeshSet{Meshes: []*model.Mesh{
		model.NewMesh("first", pos, []uint32{0, 1, 2}, uv, uv, uv, uv),
		model.NewMesh("second", pos, []uint32{0, 1, 2}, uv, uv, uv, uv),
	}}
}

func TestCompose_Material(t *testing.T) {
	tex := texture.NewTextureArray(TriplaneName("garden"), 2, 6)
	b, _, err := NewComposer().Compose(testParams(), testMeshes(), tex, "garden")
	require.NoError(t, err)

	mat := b.Material
	assert.Equal(t, "gardenMat", mat.Name())
	assert.Equal(t, material.DefaultShader, mat.Shader())
	assert.Same(t, tex, mat.Texture(material.PropTriplane))

	expected := map[string]float32{
		material.PropSceneScaleFactor:   0.5,
		material.PropTriplaneVoxelSize:  0.0078125,
		material.PropTriplaneResolution: 2,
		material.PropRangeDiffuseRgbMin: -1,
		material.PropRangeDiffuseRgbMax: 2,
		material.PropRangeColorMin:      -3,
		material.PropRangeColorMax:      3.5,
		material.PropRangeMeanMin:       0.25,
		material.PropRangeMeanMax:       0.75,
		material.PropRangeScaleMin:      -5,
		material.PropRangeScaleMax:      5,
	}
	assert.Len(t, mat.FloatNames(), len(expected))
	for prop, want := range expected {
		got, ok := mat.Float(prop)
		assert.True(t, ok, prop)
		assert.Equal(t, want, got, prop)
	}

	mode, ok := mat.Int(material.PropDisplayMode)
	assert.True(t, ok)
	assert.Equal(t, int32(0), mode)
}

func TestCompose_BundleAndTree(t *testing.T) {
	meshes := testMeshes()
	tex := texture.NewTextureArray(TriplaneName("garden"), 2, 6)

	b, tree, err := NewComposer().Compose(testParams(), meshes, tex, "garden")
	require.NoError(t, err)

	assert.Equal(t, "garden", b.Name)
	assert.Equal(t, testParams(), b.Parameters)
	assert.Same(t, meshes, b.Meshes)
	assert.Same(t, tex, b.Triplane)

	assert.Equal(t, "garden", tree.Name())
	assert.Equal(t, "garden", tree.Root().Name())
	children := tree.Root().Children()
	require.Len(t, children, 2)
	for i, child := range children {
		assert.Equal(t, meshes.Meshes[i].Name, child.Name())
		assert.Same(t, meshes.Meshes[i], child.Mesh())
		assert.Equal(t, b.Material, child.Material(), "material is shared, not copied")
		assert.Equal(t, game_object.UnlitRenderSettings, child.RenderSettings())
	}
}

func TestCompose_Options(t *testing.T) {
	c := NewComposer(WithShader("Custom/Grid"), WithDisplayMode(2), WithRenderSettings(game_object.DefaultRenderSettings))
	b, tree, err := c.Compose(testParams(), testMeshes(), texture.NewTextureArray("t", 2, 6), "garden")
	require.NoError(t, err)

	assert.Equal(t, "Custom/Grid", b.Material.Shader())
	mode, _ := b.Material.Int(material.PropDisplayMode)
	assert.Equal(t, int32(2), mode)
	assert.Equal(t, game_object.DefaultRenderSettings, tree.Root().Children()[0].RenderSettings())
}

func TestCompose_MissingInputs(t *testing.T) {
	tex := texture.NewTextureArray("t", 2, 6)
	c := NewComposer()

	_, _, err := c.Compose(testParams(), testMeshes(), tex, "")
	assert.Error(t, err)
	_, _, err = c.Compose(testParams(), &model.MeshSet{}, tex, "garden")
	assert.Error(t, err)
	_, _, err = c.Compose(testParams(), testMeshes(), nil, "garden")
	assert.Error(t, err)
}

func TestPersist(t *testing.T) {
	root := t.TempDir()
	c := NewComposer()
	b, tree, err := c.Compose(testParams(), testMeshes(), texture.NewTextureArray(TriplaneName("garden"), 2, 6), "garden")
	require.NoError(t, err)

	dir, err := c.Persist(asset.NewStore(root), b, tree)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(root, "garden"), dir)

	tpl, err := asset.ReadTemplate(filepath.Join(dir, "garden.prefab"))
	require.NoError(t, err)
	assert.Len(t, tpl.Nodes, 3)

	manifest, err := asset.ReadManifest(filepath.Join(dir, "gardenAssets.asset"))
	require.NoError(t, err)
	assert.Equal(t, float32(2), manifest.Material.Floats[material.PropTriplaneResolution])
	assert.Equal(t, "gardenMat", manifest.Material.Name)
}

// failingContainer fails at a chosen step and records whether it was discarded.
type failingContainer struct {
	failStore    bool
	failTemplate bool
	discarded    bool
	committed    bool
}

func (f *failingContainer) Name() string { return "garden" }
func (f *failingContainer) StagingDir() string { return "" }
func (f *failingContainer) GUID(any) (uuid.UUID, bool) { return uuid.Nil, false }
func (f *failingContainer) Discard() error {
	f.discarded = true
	return nil
}

func (f *failingContainer) Commit() (string, error) {
	f.committed = true
	return "done", nil
}

func (f *failingContainer) SaveTemplate(scene.Scene) error { return f.fail(f.failTemplate) }
func (f *failingContainer) Store(*asset.Bundle) error { return f.fail(f.failStore) }

func (f *failingContainer) fail(yes bool) error {
	if yes {
		return errors.New("disk full")
	}
	return nil
}

type fakeStore struct {
	container *failingContainer
}

func (s *fakeStore) Root() string { return "" }
func (s *fakeStore) Exists(string) bool { return false }
func (s *fakeStore) CreateContainer(string) (asset.Container, error) {
	return s.container, nil
}

func TestPersist_DiscardsOnFailure(t *testing.T) {
	c := NewComposer()
	b, tree, err := c.Compose(testParams(), testMeshes(), texture.NewTextureArray("t", 2, 6), "garden")
	require.NoError(t, err)

	testCases := []struct {
		name      string
		container *failingContainer
	}{
		{name: "store fails", container: &failingContainer{failStore: true}},
		{name: "template fails", container: &failingContainer{failTemplate: true}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := c.Persist(&fakeStore{container: tc.container}, b, tree)
			assert.ErrorContains(t, err, "disk full")
			assert.True(t, tc.container.discarded)
			assert.False(t, tc.container.committed)
		})
	}
}

func TestPersist_ExistingContainer(t *testing.T) {
	root := t.TempDir()
	c := NewComposer()
	b, tree, err := c.Compose(testParams(), testMeshes(), texture.NewTextureArray("t", 2, 6), "garden")
	require.NoError(t, err)

	_, err = c.Persist(asset.NewStore(root), b, tree)
	require.NoError(t, err)
	_, err = c.Persist(asset.NewStore(root), b, tree)
	assert.ErrorIs(t, err, asset.ErrContainerExists)

	_, err = c.Persist(asset.NewStore(root, asset.WithOverwrite(true)), b, tree)
	assert.NoError(t, err)
}
