package scene

import (
	"github.com/Carmen-Shannon/oxy-bog/engine/game_object"
)

// SceneBuilderOption is a functional option for configuring a Scene.
// Use the With* functions to create options.
type SceneBuilderOption func(s *scene)

// WithObjects attaches initial nodes as children of the root, in order.
// Objects without IDs will be assigned new IDs.
//
// Parameters:
//   - objects: the objects to add
//
// Returns:
//   - SceneBuilderOption: option function to apply
func WithObjects(objects ...game_object.GameObject) SceneBuilderOption {
	return func(s *scene) {
		for _, obj := range objects {
			if obj == nil {
				continue
			}
			obj.Walk(func(o game_object.GameObject) bool {
				s.register(o)
				return true
			})
			s.root.AddChild(obj)
		}
	}
}
