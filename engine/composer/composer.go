package composer

import (
	"errors"
	"fmt"

	"github.com/Carmen-Shannon/oxy-bog/common"
	"github.com/Carmen-Shannon/oxy-bog/engine/asset"
	"github.com/Carmen-Shannon/oxy-bog/engine/game_object"
	"github.com/Carmen-Shannon/oxy-bog/engine/material"
	"github.com/Carmen-Shannon/oxy-bog/engine/model"
	"github.com/Carmen-Shannon/oxy-bog/engine/params"
	"github.com/Carmen-Shannon/oxy-bog/engine/scene"
	"github.com/Carmen-Shannon/oxy-bog/engine/texture"
)

// composer is the implementation of the Composer interface.
type composer struct {
	shader         string
	displayMode    int32
	renderSettings game_object.RenderSettings
}

// Composer defines the interface for assembling an import's in-memory outputs and persisting them.
//
// Compose builds the shared material, the owning Bundle and the node-tree template. Persist
// writes both through an asset.Store. The two steps are separate so that nothing reaches
// storage until the complete bundle exists in memory.
type Composer interface {
	// Compose builds the Bundle and its node tree.
	//
	// Parameters:
	//   - p: the scene parameters, copied into the bundle and the material
	//   - meshes: the meshes of the selected container; ownership moves to the bundle
	//   - triplane: the feature texture array; ownership moves to the bundle
	//   - sceneName: the bundle and root node name
	//
	// Returns:
	//   - *asset.Bundle: the bundle
	//   - scene.Scene: the node tree, one child per mesh
	//   - error: error if an input is missing
	Compose(p params.SceneParameters, meshes *model.MeshSet, triplane *texture.TextureArray, sceneName string) (*asset.Bundle, scene.Scene, error)

	// Persist writes the bundle and its node tree into a new container and commits it.
	// On any failure the staged container is discarded.
	//
	// Parameters:
	//   - store: the destination store
	//   - b: the bundle to persist
	//   - tree: the node tree to persist as a template
	//
	// Returns:
	//   - string: the committed container folder
	//   - error: error if any write or the commit fails
	Persist(store asset.Store, b *asset.Bundle, tree scene.Scene) (string, error)
}

var _ Composer = &composer{}

// NewComposer creates a new Composer with the options applied.
//
// Parameters:
//   - options: variadic list of ComposerBuilderOption functions
//
// Returns:
//   - Composer: the configured composer
func NewComposer(options ...ComposerBuilderOption) Composer {
	c := &composer{
		shader:         material.DefaultShader,
		displayMode:    material.DisplayModeDefault,
		renderSettings: game_object.UnlitRenderSettings,
	}
	for _, opt := range options {
		opt(c)
	}
	return c
}

func (c *composer) Compose(p params.SceneParameters, meshes *model.MeshSet, triplane *texture.TextureArray, sceneName string) (*asset.Bundle, scene.Scene, error) {
	switch {
	case sceneName == "":
		return nil, nil, errors.New("scene name is empty")
	case meshes == nil || meshes.Len() == 0:
		return nil, nil, errors.New("no meshes to compose")
	case triplane == nil:
		return nil, nil, errors.New("no triplane texture to compose")
	}

	mat := c.buildMaterial(p, triplane, sceneName)

	b := &asset.Bundle{
		Name:       sceneName,
		Parameters: p,
		Meshes:     meshes,
		Material:   mat,
		Triplane:   triplane,
	}

	nodes := make([]game_object.GameObject, 0, meshes.Len())
	for _, m := range meshes.Meshes {
		nodes = append(nodes, game_object.NewGameObject(
			game_object.WithName(m.Name),
			game_object.WithMesh(m),
			game_object.WithMaterial(mat),
			game_object.WithRenderSettings(c.renderSettings),
		))
	}
	tree := scene.NewScene(sceneName, scene.WithObjects(nodes...))

	common.LogDebug("composed %s: %d meshes, %d triplane layers", sceneName, meshes.Len(), triplane.LayerCount())
	return b, tree, nil
}

func (c *composer) Persist(store asset.Store, b *asset.Bundle, tree scene.Scene) (string, error) {
	container, err := store.CreateContainer(b.Name)
	if err != nil {
		return "", err
	}

	if err := container.Store(b); err != nil {
		c.discard(container)
		return "", fmt.Errorf("failed to store bundle %s: %w", b.Name, err)
	}
	if err := container.SaveTemplate(tree); err != nil {
		c.discard(container)
		return "", fmt.Errorf("failed to save template %s: %w", b.Name, err)
	}

	dir, err := container.Commit()
	if err != nil {
		return "", err
	}
	return dir, nil
}

func (c *composer) discard(container asset.Container) {
	if err := container.Discard(); err != nil {
		common.LogWarn("%v", err)
	}
}

// buildMaterial binds the triplane and copies every scalar the shader reads from the parameters.
func (c *composer) buildMaterial(p params.SceneParameters, triplane *texture.TextureArray, sceneName string) material.Material {
	return material.NewMaterial(
		material.WithName(sceneName+"Mat"),
		material.WithShader(c.shader),
		material.WithTexture(material.PropTriplane, triplane),
		material.WithFloat(material.PropSceneScaleFactor, p.SceneScaleFactor),
		material.WithInt(material.PropDisplayMode, c.displayMode),
		material.WithFloat(material.PropTriplaneVoxelSize, p.TriplaneVoxelSize),
		material.WithFloat(material.PropTriplaneResolution, float32(p.TriplaneResolution)),
		material.WithFloat(material.PropRangeDiffuseRgbMin, p.Ranges.DiffuseRGB.Min),
		material.WithFloat(material.PropRangeDiffuseRgbMax, p.Ranges.DiffuseRGB.Max),
		material.WithFloat(material.PropRangeColorMin, p.Ranges.Color.Min),
		material.WithFloat(material.PropRangeColorMax, p.Ranges.Color.Max),
		material.WithFloat(material.PropRangeMeanMin, p.Ranges.Mean.Min),
		material.WithFloat(material.PropRangeMeanMax, p.Ranges.Mean.Max),
		material.WithFloat(material.PropRangeScaleMin, p.Ranges.Scale.Min),
		material.WithFloat(material.PropRangeScaleMax, p.Ranges.Scale.Max),
	)
}

// TriplaneName returns the texture array name of a scene, e.g. "gardenTriplane".
func TriplaneName(sceneName string) string {
	return sceneName + "Triplane"
}
