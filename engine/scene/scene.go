package scene

import (
	"sync"
	"sync/atomic"

	"github.com/Carmen-Shannon/oxy-bog/engine/game_object"
)

// Scene is a renderable node-tree template: a named root GameObject with child nodes, plus a
// registry of every node by ID. Nodes reference meshes and materials owned elsewhere, so a
// Scene can be persisted as a reusable template without copying asset data.
// Thread-safe for concurrent access.
type Scene interface {
	// Name returns the scene's identifier.
	Name() string

	// Root returns the root node. Its name equals the scene name.
	Root() game_object.GameObject

	// Count returns the number of nodes in the registry, root included.
	//
	// Returns:
	//   - int: the node count
	Count() int

	// Add attaches obj as a child of parent and registers obj and its existing descendants.
	// A nil parent attaches to the root. Nodes without an ID are assigned the next free ID.
	//
	// Parameters:
	//   - parent: the parent node or nil for the root
	//   - obj: the node to attach
	//
	// Returns:
	//   - uint64: the ID assigned to obj
	Add(parent, obj game_object.GameObject) uint64

	// Get retrieves a node by its ID. Returns nil if not found.
	//
	// Parameters:
	//   - id: the node's unique ID
	//
	// Returns:
	//   - game_object.GameObject: the node or nil
	Get(id uint64) game_object.GameObject

	// Nodes returns every node depth-first from the root, in child order.
	//
	// Returns:
	//   - []game_object.GameObject: the nodes
	Nodes() []game_object.GameObject
}

// TemplateWriter persists a Scene as a reusable template.
type TemplateWriter interface {
	// SaveTemplate writes the node tree of s.
	//
	// Parameters:
	//   - s: the scene to persist
	//
	// Returns:
	//   - error: error if the template cannot be written
	SaveTemplate(s Scene) error
}

type scene struct {
	mu *sync.RWMutex

	name     string
	root     game_object.GameObject
	registry map[uint64]game_object.GameObject
	nextID   uint64
}

// Ensure scene implements Scene interface.
var _ Scene = &scene{}

// NewScene creates a new Scene whose root node is named after the scene.
//
// Parameters:
//   - name: the name of the scene and its root node
//   - options: functional options to further configure the scene
//
// Returns:
//   - Scene: the newly created scene
func NewScene(name string, options ...SceneBuilderOption) Scene {
	s := &scene{
		mu:       &sync.RWMutex{},
		name:     name,
		registry: make(map[uint64]game_object.GameObject),
		nextID:   1,
	}
	s.root = game_object.NewGameObject(game_object.WithName(name))
	s.register(s.root)

	for _, option := range options {
		option(s)
	}
	return s
}

func (s *scene) Name() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.name
}

func (s *scene) Root() game_object.GameObject {
	return s.root
}

func (s *scene) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.registry)
}

func (s *scene) Add(parent, obj game_object.GameObject) uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	if parent == nil {
		parent = s.root
	}
	obj.Walk(func(o game_object.GameObject) bool {
		s.register(o)
		return true
	})
	parent.AddChild(obj)
	return obj.ID()
}

func (s *scene) Get(id uint64) game_object.GameObject {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.registry[id]
}

func (s *scene) Nodes() []game_object.GameObject {
	var nodes []game_object.GameObject
	s.root.Walk(func(o game_object.GameObject) bool {
		nodes = append(nodes, o)
		return true
	})
	return nodes
}

// register assigns an ID when missing and stores the node. Caller holds the lock or owns s exclusively.
func (s *scene) register(obj game_object.GameObject) {
	if obj.ID() == 0 {
		obj.SetID(atomic.AddUint64(&s.nextID, 1) - 1)
	}
	s.registry[obj.ID()] = obj
}
