package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDefault(t *testing.T) {
	assert := assert.New(t)

	cfg := Default()
	assert.Equal([]string{"0", "1"}, cfg.Alphabet)
	assert.Equal("*", cfg.Padding)
	assert.True(cfg.EagerMinimize)
}

func TestLoad_OverridesDefaults(t *testing.T) {
	assert := assert.New(t)

	dir := t.TempDir()
	path := filepath.Join(dir, "engine.toml")
	contents := "padding = \"#\"\neager_minimize = false\n"
	assert.NoError(os.WriteFile(path, []byte(contents), 0644))

	cfg, err := Load(path)
	assert.NoError(err)
	assert.Equal("#", cfg.Padding)
	assert.False(cfg.EagerMinimize)
	assert.Equal([]string{"0", "1"}, cfg.Alphabet)
}

func TestLoad_MissingFile(t *testing.T) {
	assert := assert.New(t)

	_, err := Load("/nonexistent/engine.toml")
	assert.Error(err)
}
