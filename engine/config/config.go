// Package config loads importer settings from a TOML file. Unset values fall back to Default.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/Carmen-Shannon/oxy-bog/common"
	"github.com/mitchellh/go-homedir"
	"github.com/pelletier/go-toml/v2"
)

const (
	DefaultAssetRoot         = "Assets"
	DefaultLogLevel          = "info"
	DefaultExcludedContainer = "viewer_mesh_post_gltfpack.glb"
	DefaultChannelChunks     = 6
	DefaultShader            = "Unlit/BinaryOpacityGrid"
	DefaultBatchWorkers      = 4
	DefaultWatchDebounceMS   = 500
)

// Config is the importer configuration.
type Config struct {
	// AssetRoot is the folder scene containers are written under. A leading ~ is expanded.
	AssetRoot string `toml:"asset_root"`
	// Overwrite lets an import replace an existing container of the same name.
	Overwrite bool `toml:"overwrite"`
	// LogLevel is one of debug, info, warn, error.
	LogLevel string `toml:"log_level"`
	// Profile logs per-stage timing and memory stats.
	Profile bool `toml:"profile"`

	Import ImportConfig `toml:"import"`
	Batch  BatchConfig  `toml:"batch"`
	Watch  WatchConfig  `toml:"watch"`
}

// ImportConfig tunes a single import run.
type ImportConfig struct {
	ExcludedContainer string `toml:"excluded_container"`
	ChannelChunks     int    `toml:"channel_chunks"`
	Shader            string `toml:"shader"`
	CacheContainers   bool   `toml:"cache_containers"`
}

// BatchConfig tunes the batch command.
type BatchConfig struct {
	Workers int `toml:"workers"`
}

// WatchConfig tunes the watch command.
type WatchConfig struct {
	DebounceMS int `toml:"debounce_ms"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		AssetRoot: DefaultAssetRoot,
		LogLevel:  DefaultLogLevel,
		Import: ImportConfig{
			ExcludedContainer: DefaultExcludedContainer,
			ChannelChunks:     DefaultChannelChunks,
			Shader:            DefaultShader,
		},
		Batch: BatchConfig{Workers: DefaultBatchWorkers},
		Watch: WatchConfig{DebounceMS: DefaultWatchDebounceMS},
	}
}

// Load reads a TOML configuration file and fills unset values from Default.
// An empty path returns Default. Unknown keys are rejected.
//
// Parameters:
//   - path: the config file, may start with ~
//
// Returns:
//   - Config: the merged configuration
//   - error: error if the file cannot be read or decoded
func Load(path string) (Config, error) {
	if path == "" {
		return Default().Normalize()
	}

	expanded, err := homedir.Expand(path)
	if err != nil {
		return Config{}, fmt.Errorf("failed to expand config path %q: %w", path, err)
	}
	data, err := os.ReadFile(expanded)
	if err != nil {
		return Config{}, fmt.Errorf("failed to read config: %w", err)
	}
	return Parse(data)
}

// Parse decodes a TOML document and fills unset values from Default.
//
// Parameters:
//   - data: the TOML document
//
// Returns:
//   - Config: the merged configuration
//   - error: error if data is not valid TOML or has unknown keys
func Parse(data []byte) (Config, error) {
	var c Config
	dec := toml.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&c); err != nil {
		var strict *toml.StrictMissingError
		if errors.As(err, &strict) {
			return Config{}, fmt.Errorf("unknown config keys:\n%s", strict.String())
		}
		return Config{}, fmt.Errorf("failed to decode config: %w", err)
	}
	return c.Normalize()
}

// Encode writes c as TOML.
//
// Returns:
//   - []byte: the TOML document
//   - error: error if encoding fails
func (c Config) Encode() ([]byte, error) {
	return toml.Marshal(c)
}

// WatchDebounce returns the watch debounce window.
func (c Config) WatchDebounce() time.Duration {
	return time.Duration(c.Watch.DebounceMS) * time.Millisecond
}

// Normalize fills zero values from Default and expands the asset root. Negative counts are rejected.
// Load and Parse call it; callers that change fields afterwards call it again.
func (c Config) Normalize() (Config, error) {
	d := Default()
	c.AssetRoot = common.Coalesce(c.AssetRoot, d.AssetRoot)
	c.LogLevel = common.Coalesce(c.LogLevel, d.LogLevel)
	c.Import.ExcludedContainer = common.Coalesce(c.Import.ExcludedContainer, d.Import.ExcludedContainer)
	c.Import.ChannelChunks = common.Coalesce(c.Import.ChannelChunks, d.Import.ChannelChunks)
	c.Import.Shader = common.Coalesce(c.Import.Shader, d.Import.Shader)
	c.Batch.Workers = common.Coalesce(c.Batch.Workers, d.Batch.Workers)
	c.Watch.DebounceMS = common.Coalesce(c.Watch.DebounceMS, d.Watch.DebounceMS)

	if c.Import.ChannelChunks < 0 {
		return Config{}, fmt.Errorf("import.channel_chunks must be positive, got %d", c.Import.ChannelChunks)
	}
	if c.Batch.Workers < 0 {
		return Config{}, fmt.Errorf("batch.workers must be positive, got %d", c.Batch.Workers)
	}

	root, err := homedir.Expand(c.AssetRoot)
	if err != nil {
		return Config{}, fmt.Errorf("failed to expand asset_root %q: %w", c.AssetRoot, err)
	}
	c.AssetRoot = root
	return c, nil
}
