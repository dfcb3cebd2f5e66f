package game_object

import (
	"sync"
	"sync/atomic"

	"github.com/Carmen-Shannon/oxy-bog/engine/material"
	"github.com/Carmen-Shannon/oxy-bog/engine/model"
)

// RenderSettings controls how a renderable node interacts with scene lighting.
type RenderSettings struct {
	CastShadows      bool `yaml:"castShadows"`
	ReceiveShadows   bool `yaml:"receiveShadows"`
	LightProbes      bool `yaml:"lightProbes"`
	ReflectionProbes bool `yaml:"reflectionProbes"`
}

// DefaultRenderSettings enables every lighting interaction.
var DefaultRenderSettings = RenderSettings{
	CastShadows:      true,
	ReceiveShadows:   true,
	LightProbes:      true,
	ReflectionProbes: true,
}

// UnlitRenderSettings disables every lighting interaction. Volumetric assets with baked
// appearance render with these.
var UnlitRenderSettings = RenderSettings{}

type gameObject struct {
	mu sync.RWMutex

	id       uint64
	name     string
	enabled  atomic.Bool
	mesh     *model.Mesh
	mat      material.Material
	settings RenderSettings

	position [3]float32
	scale    [3]float32
	rotation [3]float32

	children []GameObject
}

// GameObject defines the interface for a node of a renderable template. A node optionally
// renders a mesh with a material and owns an ordered list of child nodes. Meshes and materials
// are referenced, not copied, so several nodes may share one material.
type GameObject interface {
	// ID returns the object's unique identifier.
	//
	// Returns:
	//   - uint64: the object ID, 0 if unassigned
	ID() uint64

	// SetID sets the object's unique identifier.
	//
	// Parameters:
	//   - id: the ID to assign
	SetID(id uint64)

	// Name returns the node name.
	Name() string

	// Enabled returns whether this object is enabled for rendering.
	Enabled() bool

	// SetEnabled sets whether the object is enabled for rendering.
	//
	// Parameters:
	//   - enabled: true to enable
	SetEnabled(enabled bool)

	// Mesh returns the mesh rendered by this node, or nil for a grouping node.
	Mesh() *model.Mesh

	// Material returns the material the mesh renders with, or nil.
	Material() material.Material

	// RenderSettings returns the node's lighting interaction flags.
	RenderSettings() RenderSettings

	// TransformData returns the local transform of the node.
	//
	// Returns:
	//   - pos: position as [3]float32 (x, y, z)
	//   - scale: scale as [3]float32 (x, y, z)
	//   - rot: rotation as [3]float32 (rx, ry, rz)
	TransformData() (pos, scale, rot [3]float32)

	// AddChild appends a child node.
	//
	// Parameters:
	//   - child: the node to attach
	AddChild(child GameObject)

	// Children returns the child nodes in insertion order.
	//
	// Returns:
	//   - []GameObject: a copy of the child list
	Children() []GameObject

	// Walk visits this node and then every descendant depth-first, in child order.
	// Returning false from fn stops the walk.
	//
	// Parameters:
	//   - fn: the visitor
	Walk(fn func(GameObject) bool)
}

var _ GameObject = &gameObject{}

// NewGameObject creates a new GameObject configured with the given options.
// Objects start enabled with unit scale and DefaultRenderSettings.
//
// Parameters:
//   - options: functional options to configure the object
//
// Returns:
//   - GameObject: the newly created object
func NewGameObject(options ...GameObjectBuilderOption) GameObject {
	obj := &gameObject{
		scale:    [3]float32{1, 1, 1},
		settings: DefaultRenderSettings,
	}
	obj.enabled.Store(true)
	for _, option := range options {
		option(obj)
	}
	return obj
}

func (g *gameObject) ID() uint64 {
	return g.id
}

func (g *gameObject) SetID(id uint64) {
	g.id = id
}

func (g *gameObject) Name() string {
	return g.name
}

func (g *gameObject) Enabled() bool {
	return g.enabled.Load()
}

func (g *gameObject) SetEnabled(enabled bool) {
	g.enabled.Store(enabled)
}

func (g *gameObject) Mesh() *model.Mesh {
	return g.mesh
}

func (g *gameObject) Material() material.Material {
	return g.mat
}

func (g *gameObject) RenderSettings() RenderSettings {
	return g.settings
}

func (g *gameObject) TransformData() (pos, scale, rot [3]float32) {
	return g.position, g.scale, g.rotation
}

func (g *gameObject) AddChild(child GameObject) {
	if child == nil {
		return
	}
	g.mu.Lock()
	g.children = append(g.children, child)
	g.mu.Unlock()
}

func (g *gameObject) Children() []GameObject {
	g.mu.RLock()
	defer g.mu.RUnlock()
	out := make([]GameObject, len(g.children))
	copy(out, g.children)
	return out
}

func (g *gameObject) Walk(fn func(GameObject) bool) {
	g.walk(fn)
}

// walk reports whether the traversal should continue.
func (g *gameObject) walk(fn func(GameObject) bool) bool {
	if !fn(g) {
		return false
	}
	for _, child := range g.Children() {
		cont := true
		child.Walk(func(o GameObject) bool {
			cont = fn(o)
			return cont
		})
		if !cont {
			return false
		}
	}
	return true
}
