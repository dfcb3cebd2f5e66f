package asset

import (
	"fmt"
	"os"

	"github.com/Carmen-Shannon/oxy-bog/engine/params"
	"gopkg.in/yaml.v3"
)

// Manifest is the YAML document describing a persisted Bundle.
type Manifest struct {
	GUID       string                 `yaml:"guid"`
	Name       string                 `yaml:"name"`
	Parameters params.SceneParameters `yaml:"parameters"`
	Triplane   TriplaneEntry          `yaml:"triplane"`
	Material   MaterialEntry          `yaml:"material"`
	Meshes     MeshesEntry            `yaml:"meshes"`
}

// TriplaneEntry describes the texture array file.
type TriplaneEntry struct {
	GUID          string `yaml:"guid"`
	Name          string `yaml:"name"`
	File          string `yaml:"file"`
	Width         uint32 `yaml:"width"`
	Height        uint32 `yaml:"height"`
	Layers        int    `yaml:"layers"`
	ChannelChunks int    `yaml:"channelChunks"`
	Format        string `yaml:"format"`
	MipLevels     uint32 `yaml:"mipLevels"`
	FilterMode    string `yaml:"filterMode"`
	WrapModeU     string `yaml:"wrapModeU"`
	WrapModeV     string `yaml:"wrapModeV"`
}

// MaterialEntry describes the shared material. Textures map property names to texture GUIDs.
type MaterialEntry struct {
	GUID     string             `yaml:"guid"`
	Name     string             `yaml:"name"`
	Shader   string             `yaml:"shader"`
	Textures map[string]string  `yaml:"textures"`
	Floats   map[string]float32 `yaml:"floats"`
	Ints     map[string]int32   `yaml:"ints"`
}

// MeshesEntry describes the mesh container file and the meshes stored in it.
type MeshesEntry struct {
	File    string      `yaml:"file"`
	Entries []MeshEntry `yaml:"entries"`
}

// MeshEntry describes one mesh; Index is its position in the mesh container.
type MeshEntry struct {
	GUID        string     `yaml:"guid"`
	Name        string     `yaml:"name"`
	Index       int        `yaml:"index"`
	VertexCount int        `yaml:"vertexCount"`
	IndexCount  int        `yaml:"indexCount"`
	UVChannels  int        `yaml:"uvChannels"`
	BoundsMin   [3]float32 `yaml:"boundsMin,flow"`
	BoundsMax   [3]float32 `yaml:"boundsMax,flow"`
}

// ReadManifest loads a manifest written by a Container.
//
// Parameters:
//   - path: the .asset file
//
// Returns:
//   - *Manifest: the decoded manifest
//   - error: error if the file cannot be read or decoded
func ReadManifest(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read manifest: %w", err)
	}
	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("failed to decode manifest %s: %w", path, err)
	}
	return &m, nil
}
