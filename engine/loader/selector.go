package loader

import (
	"errors"
	"path/filepath"

	"github.com/Carmen-Shannon/oxy-bog/common"
	"github.com/Carmen-Shannon/oxy-bog/engine/model"
)

// DefaultExcludedContainer is the unbaked container shipped with every scene. It never carries
// the baked feature channels and is always skipped.
const DefaultExcludedContainer = "viewer_mesh_post_gltfpack.glb"

// ErrNoValidContainer is returned by Select when no candidate carries baked feature channels.
var ErrNoValidContainer = errors.New("no valid baked container found")

// Selection is the container chosen by Select.
type Selection struct {
	// Path is the selected candidate.
	Path string
	// Meshes are the meshes parsed from Path.
	Meshes *model.MeshSet
}

// Select returns the first candidate, in the given order, that parses and whose first mesh has
// positions and all four UV channels populated. Candidates whose base name equals excluded are
// skipped wherever they appear. Parse failures are logged and skipped; selection stops at the
// first match.
//
// Parameters:
//   - parser: the parser used to decode each candidate
//   - candidates: container paths in selection order
//   - excluded: the base name of the unbaked container
//
// Returns:
//   - Selection: the chosen container and its meshes
//   - error: ErrNoValidContainer if no candidate qualifies
func Select(parser ContainerParser, candidates []string, excluded string) (Selection, error) {
	for _, path := range candidates {
		if filepath.Base(path) == excluded {
			common.LogDebug("skipping unbaked container %s", path)
			continue
		}

		set, err := parser.Parse(path)
		if err != nil {
			common.LogWarn("skipping container %s: %v", path, err)
			continue
		}

		if !set.IsBaked() {
			uvs := 0
			if first := set.First(); first != nil {
				uvs = first.UVChannelsPopulated()
			}
			common.LogDebug("container %s has %d of %d UV channels, skipping", path, uvs, model.UVChannelCount)
			continue
		}

		common.LogInfo("selected baked container %s (%d meshes)", path, set.Len())
		return Selection{Path: path, Meshes: set}, nil
	}

	return Selection{}, ErrNoValidContainer
}
