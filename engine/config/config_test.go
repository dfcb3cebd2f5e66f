package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/mitchellh/go-homedir"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_EmptyPathReturnsDefaults(t *testing.T) {
	c, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, DefaultAssetRoot, c.AssetRoot)
	assert.Equal(t, DefaultLogLevel, c.LogLevel)
	assert.False(t, c.Overwrite)
	assert.Equal(t, DefaultExcludedContainer, c.Import.ExcludedContainer)
	assert.Equal(t, DefaultChannelChunks, c.Import.ChannelChunks)
	assert.Equal(t, DefaultShader, c.Import.Shader)
	assert.Equal(t, DefaultBatchWorkers, c.Batch.Workers)
	assert.Equal(t, 500*time.Millisecond, c.WatchDebounce())
}

func TestParse_OverridesAndFillsDefaults(t *testing.T) {
	c, err := Parse([]byte(`
asset_root = "/srv/assets"
overwrite = true
log_level = "debug"

[batch]
workers = 9
`))
	require.NoError(t, err)

	assert.Equal(t, "/srv/assets", c.AssetRoot)
	assert.True(t, c.Overwrite)
	assert.Equal(t, "debug", c.LogLevel)
	assert.Equal(t, 9, c.Batch.Workers)
	assert.Equal(t, DefaultChannelChunks, c.Import.ChannelChunks)
	assert.Equal(t, DefaultWatchDebounceMS, c.Watch.DebounceMS)
}

func TestParse_UnknownKeyRejected(t *testing.T) {
	_, err := Parse([]byte("asset_rot = \"x\"\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "asset_rot")
}

func TestParse_Malformed(t *testing.T) {
	_, err := Parse([]byte("asset_root = \n"))
	assert.Error(t, err)
}

func TestParse_NegativeValuesRejected(t *testing.T) {
	_, err := Parse([]byte("[import]\nchannel_chunks = -1\n"))
	assert.Error(t, err)

	_, err = Parse([]byte("[batch]\nworkers = -2\n"))
	assert.Error(t, err)
}

func TestParse_ExpandsHome(t *testing.T) {
	home, err := homedir.Dir()
	if err != nil {
		t.Skip("no home directory")
	}

	c, err := Parse([]byte(`asset_root = "~/bog"`))
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, "bog"), c.AssetRoot)
}

func TestLoad_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bog.toml")
	require.NoError(t, os.WriteFile(path, []byte("[watch]\ndebounce_ms = 50\n"), 0o644))

	c, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 50*time.Millisecond, c.WatchDebounce())
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	assert.Error(t, err)
}

func TestEncode_RoundTrip(t *testing.T) {
	want := Default()
	want.Overwrite = true
	want.AssetRoot = "/tmp/assets"

	data, err := want.Encode()
	require.NoError(t, err)

	got, err := Parse(data)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}
