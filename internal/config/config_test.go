package config

import (
	"bytes"
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "seam-carver.toml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestDefaultIsValid(t *testing.T) {
	require.NoError(t, Default().Validate())
}

func TestLoadWithoutPathUsesDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadRejectsMissingNamedFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.toml"))
	assert.ErrorIs(t, err, fs.ErrNotExist)
}

func TestLoadOverridesDefaults(t *testing.T) {
	out := t.TempDir()
	path := writeConfig(t, `
[log]
level = "debug"
format = "json"

[output]
directory = "`+filepath.ToSlash(out)+`"
jpeg_quality = 80
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format)
	assert.Equal(t, filepath.ToSlash(out), cfg.Output.Directory)
	assert.Equal(t, 80, cfg.Output.JPEGQuality)
	assert.Equal(t, 32768, cfg.Limits.MaxWidth)
}

func TestLoadParameters(t *testing.T) {
	path := writeConfig(t, `
[parameters.remove-rows]
frequency = 3

[parameters.carve]
target_width = 10
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, map[string]map[string]int{
		"remove-rows": {"frequency": 3},
		"carve":       {"target_width": 10},
	}, cfg.Parameters)
	assert.Nil(t, Default().Parameters)
}

func TestLoadRejectsBadFiles(t *testing.T) {
	tests := map[string]string{
		"syntax":      "[log\nlevel = 1",
		"unknown key": "[output]\ncolour = \"red\"\n",
		"bad level":   "[log]\nlevel = \"loud\"\n",
		"bad format":  "[log]\nformat = \"xml\"\n",
		"bad quality": "[output]\njpeg_quality = 0\n",
		"bad limits":  "[limits]\nmax_width = -1\n",
		"missing dir": "[output]\ndirectory = \"/does/not/exist/anywhere\"\n",
	}
	for name, body := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := Load(writeConfig(t, body))
			assert.Error(t, err)
		})
	}
}

func TestCheckSize(t *testing.T) {
	cfg := Default()
	cfg.Limits.MaxWidth, cfg.Limits.MaxHeight = 10, 20

	assert.NoError(t, cfg.CheckSize(10, 20))
	assert.Error(t, cfg.CheckSize(11, 5))
	assert.Error(t, cfg.CheckSize(5, 21))
}

func TestNewLogger(t *testing.T) {
	cfg := Default()
	cfg.Log.Format = "json"

	var buf bytes.Buffer
	log, err := cfg.NewLogger(&buf)
	require.NoError(t, err)

	log.Info("Config", "hello", nil)
	assert.Contains(t, buf.String(), `"component":"Config"`)
}
