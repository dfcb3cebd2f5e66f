package asset

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/Carmen-Shannon/oxy-bog/common"
	"github.com/Carmen-Shannon/oxy-bog/engine/game_object"
	"github.com/Carmen-Shannon/oxy-bog/engine/material"
	"github.com/Carmen-Shannon/oxy-bog/engine/scene"
	"github.com/Carmen-Shannon/oxy-bog/engine/texture"
	"github.com/google/uuid"
	"gopkg.in/yaml.v3"
)

// ErrUnknownReference is returned by SaveTemplate when a node references a mesh or material
// that was not stored in the container.
var ErrUnknownReference = errors.New("template references an object not stored in the container")

// container is the implementation of the Container interface.
type container struct {
	mu sync.Mutex

	store   *fsStore
	name    string
	staging string
	final   string
	closed  bool

	bundleGUID uuid.UUID
	guids      map[any]uuid.UUID
}

// Container defines the interface for one staged asset container.
//
// Objects written to a container get a GUID each; the template references those GUIDs instead
// of copying the objects. Nothing is visible under the final folder name until Commit succeeds,
// and Discard removes everything staged so far.
type Container interface {
	scene.TemplateWriter

	// Name returns the container name.
	Name() string

	// StagingDir returns the temporary folder writes go to before Commit.
	StagingDir() string

	// Store persists a bundle: the manifest, the encoded triplane and the mesh container.
	//
	// Parameters:
	//   - b: the bundle to persist
	//
	// Returns:
	//   - error: error if the bundle is incomplete or a write fails
	Store(b *Bundle) error

	// GUID returns the GUID assigned to a stored object (the bundle, its triplane, material or
	// one of its meshes).
	//
	// Parameters:
	//   - obj: the stored object
	//
	// Returns:
	//   - uuid.UUID: the GUID
	//   - bool: false if obj was not stored
	GUID(obj any) (uuid.UUID, bool)

	// Commit moves the staged folder to <root>/<name>, replacing an existing folder when the
	// store allows overwrite.
	//
	// Returns:
	//   - string: the final folder
	//   - error: ErrContainerExists or an I/O error; the staged data is discarded on error
	Commit() (string, error)

	// Discard removes the staged folder. Safe to call after Commit, where it is a no-op.
	//
	// Returns:
	//   - error: error if the staging folder cannot be removed
	Discard() error
}

var _ Container = &container{}

func newContainer(s *fsStore, name, staging, final string) *container {
	return &container{
		store:   s,
		name:    name,
		staging: staging,
		final:   final,
		guids:   make(map[any]uuid.UUID),
	}
}

func (c *container) Name() string {
	return c.name
}

func (c *container) StagingDir() string {
	return c.staging
}

func (c *container) GUID(obj any) (uuid.UUID, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	id, ok := c.guids[obj]
	return id, ok
}

func (c *container) Store(b *Bundle) error {
	if err := b.Validate(); err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return ErrContainerClosed
	}

	c.bundleGUID = c.assign(b)
	triplaneGUID := c.assign(b.Triplane)
	materialGUID := c.assign(b.Material)
	for _, m := range b.Meshes.Meshes {
		c.assign(m)
	}

	triplaneFile := TriplaneFileName(b.Triplane.Name)
	if err := c.writeFile(triplaneFile, func(f *os.File) error {
		return texture.Encode(f, b.Triplane)
	}); err != nil {
		return err
	}

	meshesFile := MeshesFileName(b.Name)
	if err := writeMeshes(filepath.Join(c.staging, meshesFile), b.Meshes); err != nil {
		return fmt.Errorf("failed to write %s: %w", meshesFile, err)
	}

	manifest := Manifest{
		GUID:       c.bundleGUID.String(),
		Name:       b.Name,
		Parameters: b.Parameters,
		Triplane: TriplaneEntry{
			GUID:          triplaneGUID.String(),
			Name:          b.Triplane.Name,
			File:          triplaneFile,
			Width:         b.Triplane.Width,
			Height:        b.Triplane.Height,
			Layers:        b.Triplane.LayerCount(),
			ChannelChunks: b.Triplane.ChannelChunks,
			Format:        common.TextureFormatName(b.Triplane.Format),
			MipLevels:     b.Triplane.MipLevelCount,
			FilterMode:    common.FilterModeName(b.Triplane.Sampler.MagFilter),
			WrapModeU:     common.AddressModeName(b.Triplane.Sampler.AddressModeU),
			WrapModeV:     common.AddressModeName(b.Triplane.Sampler.AddressModeV),
		},
		Material: c.materialEntry(b.Material, materialGUID),
		Meshes:   MeshesEntry{File: meshesFile},
	}
	for i, m := range b.Meshes.Meshes {
		manifest.Meshes.Entries = append(manifest.Meshes.Entries, MeshEntry{
			GUID:        c.guids[m].String(),
			Name:        m.Name,
			Index:       i,
			VertexCount: m.VertexCount(),
			IndexCount:  len(m.Indices),
			UVChannels:  m.UVChannelsPopulated(),
			BoundsMin:   m.BoundingMin,
			BoundsMax:   m.BoundingMax,
		})
	}

	return c.writeYAML(AssetFileName(b.Name), &manifest)
}

func (c *container) SaveTemplate(s scene.Scene) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return ErrContainerClosed
	}

	tpl := Template{
		GUID: c.store.newGUID().String(),
		Name: s.Name(),
	}
	if c.bundleGUID != uuid.Nil {
		tpl.Bundle = c.bundleGUID.String()
	}

	var walkErr error
	var visit func(parent uint64, node game_object.GameObject)
	visit = func(parent uint64, node game_object.GameObject) {
		if walkErr != nil {
			return
		}
		pos, scale, rot := node.TransformData()
		tn := TemplateNode{
			ID:        node.ID(),
			Parent:    parent,
			Name:      node.Name(),
			Enabled:   node.Enabled(),
			Transform: TemplateTransform{Position: pos, Rotation: rot, Scale: scale},
		}
		if mesh := node.Mesh(); mesh != nil {
			meshID, ok := c.guids[mesh]
			if !ok {
				walkErr = fmt.Errorf("%w: mesh %q of node %q", ErrUnknownReference, mesh.Name, node.Name())
				return
			}
			tr := &TemplateRenderer{Mesh: meshID.String(), Settings: node.RenderSettings()}
			if mat := node.Material(); mat != nil {
				matID, ok := c.guids[mat]
				if !ok {
					walkErr = fmt.Errorf("%w: material %q of node %q", ErrUnknownReference, mat.Name(), node.Name())
					return
				}
				tr.Material = matID.String()
			}
			tn.Renderer = tr
		}
		tpl.Nodes = append(tpl.Nodes, tn)
		for _, child := range node.Children() {
			visit(node.ID(), child)
		}
	}
	visit(0, s.Root())
	if walkErr != nil {
		return walkErr
	}

	return c.writeYAML(TemplateFileName(c.name), &tpl)
}

func (c *container) Commit() (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return "", ErrContainerClosed
	}
	c.closed = true

	_, statErr := os.Stat(c.final)
	exists := statErr == nil
	if exists && !c.store.overwrite {
		_ = os.RemoveAll(c.staging)
		return "", fmt.Errorf("%w: %s", ErrContainerExists, c.final)
	}

	if !exists {
		if err := os.Rename(c.staging, c.final); err != nil {
			_ = os.RemoveAll(c.staging)
			return "", fmt.Errorf("failed to commit %s: %w", c.name, err)
		}
		return c.final, nil
	}

	// Move the old folder aside first so a failed rename can restore it.
	backup := c.staging + ".previous"
	if err := os.Rename(c.final, backup); err != nil {
		_ = os.RemoveAll(c.staging)
		return "", fmt.Errorf("failed to replace %s: %w", c.final, err)
	}
	if err := os.Rename(c.staging, c.final); err != nil {
		if restoreErr := os.Rename(backup, c.final); restoreErr != nil {
			common.LogError("failed to restore %s from %s: %v", c.final, backup, restoreErr)
		}
		_ = os.RemoveAll(c.staging)
		return "", fmt.Errorf("failed to commit %s: %w", c.name, err)
	}
	if err := os.RemoveAll(backup); err != nil {
		common.LogWarn("failed to remove replaced container %s: %v", backup, err)
	}

	common.LogInfo("replaced existing asset container %s", c.final)
	return c.final, nil
}

func (c *container) Discard() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return nil
	}
	c.closed = true
	if err := os.RemoveAll(c.staging); err != nil {
		return fmt.Errorf("failed to discard staging folder %s: %w", c.staging, err)
	}
	return nil
}

// assign returns the GUID of obj, generating one on first use. Caller holds c.mu.
func (c *container) assign(obj any) uuid.UUID {
	if id, ok := c.guids[obj]; ok {
		return id
	}
	id := c.store.newGUID()
	c.guids[obj] = id
	return id
}

func (c *container) materialEntry(mat material.Material, id uuid.UUID) MaterialEntry {
	entry := MaterialEntry{
		GUID:     id.String(),
		Name:     mat.Name(),
		Shader:   mat.Shader(),
		Textures: make(map[string]string),
		Floats:   make(map[string]float32),
		Ints:     make(map[string]int32),
	}
	for _, prop := range mat.TextureNames() {
		if tex := mat.Texture(prop); tex != nil {
			entry.Textures[prop] = c.assign(tex).String()
		}
	}
	for _, prop := range mat.FloatNames() {
		entry.Floats[prop], _ = mat.Float(prop)
	}
	for _, prop := range mat.IntNames() {
		entry.Ints[prop], _ = mat.Int(prop)
	}
	return entry
}

func (c *container) writeYAML(name string, doc any) error {
	return c.writeFile(name, func(f *os.File) error {
		enc := yaml.NewEncoder(f)
		enc.SetIndent(2)
		if err := enc.Encode(doc); err != nil {
			return err
		}
		return enc.Close()
	})
}

func (c *container) writeFile(name string, write func(f *os.File) error) error {
	path := filepath.Join(c.staging, name)
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, c.store.fileMode)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", name, err)
	}
	if err := write(f); err != nil {
		f.Close()
		return fmt.Errorf("failed to write %s: %w", name, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to close %s: %w", name, err)
	}
	return nil
}
