package asset

import (
	"errors"

	"github.com/Carmen-Shannon/oxy-bog/engine/material"
	"github.com/Carmen-Shannon/oxy-bog/engine/model"
	"github.com/Carmen-Shannon/oxy-bog/engine/params"
	"github.com/Carmen-Shannon/oxy-bog/engine/texture"
)

// Bundle is the single persisted unit of an import: it owns the scene parameters, the meshes,
// the material and the triplane texture array. Every object is created once per import and is
// not mutated after it is stored.
type Bundle struct {
	// Name is the scene name, the base name of the source folder.
	Name string
	// Parameters is a copy of the scene parameters.
	Parameters params.SceneParameters
	// Meshes are the meshes of the selected container.
	Meshes *model.MeshSet
	// Material is shared by every node of the template.
	Material material.Material
	// Triplane is the feature texture array bound to Material.
	Triplane *texture.TextureArray
}

// Validate checks that every owned object is present.
func (b *Bundle) Validate() error {
	switch {
	case b == nil:
		return errors.New("nil bundle")
	case b.Name == "":
		return errors.New("bundle has no name")
	case b.Meshes == nil || b.Meshes.Len() == 0:
		return errors.New("bundle has no meshes")
	case b.Material == nil:
		return errors.New("bundle has no material")
	case b.Triplane == nil:
		return errors.New("bundle has no triplane texture")
	}
	return nil
}

// AssetFileName returns the manifest file name of a scene, e.g. "gardenAssets.asset".
func AssetFileName(sceneName string) string {
	return sceneName + "Assets.asset"
}

// TemplateFileName returns the node-tree template file name of a scene, e.g. "garden.prefab".
func TemplateFileName(sceneName string) string {
	return sceneName + ".prefab"
}

// MeshesFileName returns the mesh container file name of a scene, e.g. "gardenMeshes.glb".
func MeshesFileName(sceneName string) string {
	return sceneName + "Meshes.glb"
}

// TriplaneFileName returns the file name of an encoded texture array.
func TriplaneFileName(textureName string) string {
	return textureName + texture.FileExtension
}
