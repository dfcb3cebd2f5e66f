package engine

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/Carmen-Shannon/oxy-bog/engine/loader"
	"github.com/Carmen-Shannon/oxy-bog/engine/params"
	"github.com/Carmen-Shannon/oxy-bog/engine/texture"
)

// Report describes the inputs of a scene folder.
type Report struct {
	Folder string
	Scene  string
	// ParamsFile is the *.json an import would use, empty if there is none.
	ParamsFile string
	Params     *params.SceneParameters
	ParamsErr  error
	// Containers reports every *.glb candidate in selection order.
	Containers []loader.ContainerReport
	// Selected is the container an import would use, empty if none qualifies.
	Selected string
	Slices   []SliceStatus
	// SparseGridFiles lists the sparse grid payloads present. They are not imported.
	SparseGridFiles []string
}

// SliceStatus is the state of one raw triplane slice.
type SliceStatus struct {
	File     string
	Present  bool
	Size     int64
	Expected int64
}

// OK reports whether the slice exists with the expected length. Expected is 0 when the
// parameters could not be read, in which case only presence is checked.
func (s SliceStatus) OK() bool {
	return s.Present && (s.Expected == 0 || s.Size == s.Expected)
}

// Ready reports whether an import of the folder would get past input validation.
func (r *Report) Ready() bool {
	if r.Params == nil || r.Selected == "" {
		return false
	}
	for _, s := range r.Slices {
		if !s.OK() {
			return false
		}
	}
	return true
}

func (e *engine) Inspect(folder string) (*Report, error) {
	info, err := os.Stat(folder)
	if err != nil {
		return nil, fmt.Errorf("failed to inspect %s: %w", folder, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("failed to inspect %s: not a folder", folder)
	}

	r := &Report{Folder: folder, Scene: SceneName(folder)}

	jsonFiles, err := listFiles(folder, ".json")
	if err != nil {
		return nil, err
	}
	if len(jsonFiles) > 0 {
		r.ParamsFile = jsonFiles[0]
		p, err := params.Load(r.ParamsFile)
		if err == nil {
			err = p.Validate()
		}
		if err != nil {
			r.ParamsErr = err
		} else {
			r.Params = &p
		}
	}

	glbFiles, err := listFiles(folder, ".glb")
	if err != nil {
		return nil, err
	}
	r.Containers = loader.Probe(e.parser, glbFiles, e.excludedContainer)
	for _, c := range r.Containers {
		if c.Baked {
			r.Selected = c.Path
			break
		}
	}

	var expected int64
	if r.Params != nil {
		expected = r.Params.TriplaneLayerSize()
	}
	for axis := 0; axis < texture.AxisCount; axis++ {
		for chunk := 0; chunk < e.slices.ChannelChunks(); chunk++ {
			file := texture.SliceFileName(axis, chunk)
			s := SliceStatus{File: file, Expected: expected}
			info, err := os.Stat(filepath.Join(folder, file))
			switch {
			case err == nil && !info.IsDir():
				s.Present = true
				s.Size = info.Size()
			case err != nil && !errors.Is(err, fs.ErrNotExist):
				return nil, fmt.Errorf("failed to stat %s: %w", file, err)
			}
			r.Slices = append(r.Slices, s)
		}
	}

	raw, err := listFiles(folder, ".raw")
	if err != nil {
		return nil, err
	}
	for _, path := range raw {
		if name := filepath.Base(path); strings.HasPrefix(name, "sparse_grid_") {
			r.SparseGridFiles = append(r.SparseGridFiles, name)
		}
	}

	return r, nil
}
