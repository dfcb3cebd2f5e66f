package asset

import (
	"fmt"
	"os"

	"github.com/Carmen-Shannon/oxy-bog/engine/game_object"
	"gopkg.in/yaml.v3"
)

// Template is the YAML document of a persisted node tree. Nodes are listed depth-first;
// Parent is 0 for the root.
type Template struct {
	GUID   string         `yaml:"guid"`
	Name   string         `yaml:"name"`
	Bundle string         `yaml:"bundle"`
	Nodes  []TemplateNode `yaml:"nodes"`
}

// TemplateNode is one node of a Template.
type TemplateNode struct {
	ID        uint64            `yaml:"id"`
	Parent    uint64            `yaml:"parent"`
	Name      string            `yaml:"name"`
	Enabled   bool              `yaml:"enabled"`
	Transform TemplateTransform `yaml:"transform"`
	Renderer  *TemplateRenderer `yaml:"renderer,omitempty"`
}

// TemplateTransform is the local transform of a node.
type TemplateTransform struct {
	Position [3]float32 `yaml:"position,flow"`
	Rotation [3]float32 `yaml:"rotation,flow"`
	Scale    [3]float32 `yaml:"scale,flow"`
}

// TemplateRenderer binds a node to a mesh and material by GUID.
type TemplateRenderer struct {
	Mesh     string                     `yaml:"mesh"`
	Material string                     `yaml:"material"`
	Settings game_object.RenderSettings `yaml:"settings"`
}

// ReadTemplate loads a template written by a Container.
//
// Parameters:
//   - path: the .prefab file
//
// Returns:
//   - *Template: the decoded template
//   - error: error if the file cannot be read or decoded
func ReadTemplate(path string) (*Template, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read template: %w", err)
	}
	var t Template
	if err := yaml.Unmarshal(data, &t); err != nil {
		return nil, fmt.Errorf("failed to decode template %s: %w", path, err)
	}
	return &t, nil
}
