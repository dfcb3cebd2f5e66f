package game_object

import (
	"github.com/Carmen-Shannon/oxy-bog/engine/material"
	"github.com/Carmen-Shannon/oxy-bog/engine/model"
)

// GameObjectBuilderOption is a functional option for configuring a GameObject during construction.
type GameObjectBuilderOption func(*gameObject)

// WithID sets the ID of the GameObject.
//
// Parameters:
//   - id: unique identifier for the GameObject
//
// Returns:
//   - GameObjectBuilderOption: functional option to set the ID
func WithID(id uint64) GameObjectBuilderOption {
	return func(obj *gameObject) {
		obj.id = id
	}
}

// WithName sets the node name.
//
// Parameters:
//   - name: the node name
//
// Returns:
//   - GameObjectBuilderOption: functional option to set the name
func WithName(name string) GameObjectBuilderOption {
	return func(obj *gameObject) {
		obj.name = name
	}
}

// WithEnabled sets whether the GameObject is enabled for rendering.
//
// Parameters:
//   - enabled: true to render the object, false to skip it
//
// Returns:
//   - GameObjectBuilderOption: functional option to set the Enabled state
func WithEnabled(enabled bool) GameObjectBuilderOption {
	return func(obj *gameObject) {
		obj.enabled.Store(enabled)
	}
}

// WithMesh sets the mesh rendered by this GameObject.
//
// Parameters:
//   - m: the mesh to reference
//
// Returns:
//   - GameObjectBuilderOption: functional option to set the mesh
func WithMesh(m *model.Mesh) GameObjectBuilderOption {
	return func(obj *gameObject) {
		obj.mesh = m
	}
}

// WithMaterial sets the material the mesh renders with.
//
// Parameters:
//   - mat: the material to reference
//
// Returns:
//   - GameObjectBuilderOption: functional option to set the material
func WithMaterial(mat material.Material) GameObjectBuilderOption {
	return func(obj *gameObject) {
		obj.mat = mat
	}
}

// WithRenderSettings sets the lighting interaction flags.
//
// Parameters:
//   - settings: the render settings
//
// Returns:
//   - GameObjectBuilderOption: functional option to set the render settings
func WithRenderSettings(settings RenderSettings) GameObjectBuilderOption {
	return func(obj *gameObject) {
		obj.settings = settings
	}
}

// WithPosition sets the local position of the GameObject.
//
// Parameters:
//   - x: the x position
//   - y: the y position
//   - z: the z position
//
// Returns:
//   - GameObjectBuilderOption: functional option to set the position
func WithPosition(x, y, z float32) GameObjectBuilderOption {
	return func(obj *gameObject) {
		obj.position = [3]float32{x, y, z}
	}
}

// WithScale sets the local scale of the GameObject.
//
// Parameters:
//   - sx: the x scale factor
//   - sy: the y scale factor
//   - sz: the z scale factor
//
// Returns:
//   - GameObjectBuilderOption: functional option to set the scale
func WithScale(sx, sy, sz float32) GameObjectBuilderOption {
	return func(obj *gameObject) {
		obj.scale = [3]float32{sx, sy, sz}
	}
}

// WithRotation sets the local rotation of the GameObject.
//
// Parameters:
//   - rx: the x rotation angle
//   - ry: the y rotation angle
//   - rz: the z rotation angle
//
// Returns:
//   - GameObjectBuilderOption: functional option to set the rotation
func WithRotation(rx, ry, rz float32) GameObjectBuilderOption {
	return func(obj *gameObject) {
		obj.rotation = [3]float32{rx, ry, rz}
	}
}

// WithChildren attaches child nodes in order.
//
// Parameters:
//   - children: the nodes to attach
//
// Returns:
//   - GameObjectBuilderOption: functional option to attach the children
func WithChildren(children ...GameObject) GameObjectBuilderOption {
	return func(obj *gameObject) {
		for _, c := range children {
			if c != nil {
				obj.children = append(obj.children, c)
			}
		}
	}
}
