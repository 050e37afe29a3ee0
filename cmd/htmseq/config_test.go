package main

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	htm "github.com/htm-community/htmseq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfigBuildsValidRegion(t *testing.T) {
	cfg := Default()
	_, err := htm.NewRegion(cfg.Region.Params(nil))
	require.NoError(t, err)

	methods, err := cfg.Run.BaselineMethods()
	require.NoError(t, err)
	assert.Equal(t, []htm.PredictorMethod{htm.Last, htm.Zeroth}, methods)

	ep := cfg.Encoder.Params()
	assert.Equal(t, 64, ep.Width)
	assert.Equal(t, "symbol", ep.Name)
}

func TestSaveAndLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "htmseq.yaml")

	cfg := Default()
	cfg.Region.Width = 20
	cfg.Region.LearnOnPredicted = true
	cfg.Run.Text = "ABCD"
	cfg.Run.Baselines = []string{"all"}
	require.NoError(t, cfg.Save(path))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
}

func TestLoadFillsMissingFieldsWithDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "htmseq.yaml")
	require.NoError(t, os.WriteFile(path, []byte("region:\n  width: 8\nrun:\n  text: XYZ\n"), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 8, cfg.Region.Width)
	assert.Equal(t, 32, cfg.Region.Height)
	assert.Equal(t, "XYZ", cfg.Run.Text)
	assert.Equal(t, Default().Encoder, cfg.Encoder)
}

func TestLoadErrors(t *testing.T) {
	dir := t.TempDir()

	_, err := Load(filepath.Join(dir, "missing.yaml"))
	assert.True(t, errors.Is(err, os.ErrNotExist))

	bad := filepath.Join(dir, "bad.yaml")
	require.NoError(t, os.WriteFile(bad, []byte("region: [1, 2"), 0644))
	_, err = Load(bad)
	assert.Error(t, err)
}

func TestLoadOrDefault(t *testing.T) {
	cfg, err := LoadOrDefault("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)

	cfg, err = LoadOrDefault(filepath.Join(t.TempDir(), "none.yaml"))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestInitConfigKeepsExistingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "htmseq.yaml")
	require.NoError(t, InitConfig(path))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)

	cfg.Run.Passes = 3
	require.NoError(t, cfg.Save(path))
	require.NoError(t, InitConfig(path))

	cfg, err = Load(path)
	require.NoError(t, err)
	assert.Equal(t, 3, cfg.Run.Passes)
}

func TestBaselineMethodsRejectsUnknown(t *testing.T) {
	rc := RunConfig{Baselines: []string{"last", "psychic"}}
	_, err := rc.BaselineMethods()
	assert.True(t, errors.Is(err, htm.ErrInvalidParams))
}
