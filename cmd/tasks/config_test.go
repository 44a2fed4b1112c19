package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func withArgs(t *testing.T, args ...string) {
	t.Helper()
	old := os.Args
	os.Args = append([]string{"tasks"}, args...)
	t.Cleanup(func() { os.Args = old })
}

func writeConfigFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "tasks.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestParseFlagsDefaults(t *testing.T) {
	t.Setenv("TASKS_CONFIG", "")
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Chdir(t.TempDir())
	withArgs(t, "-c", "list")

	cfg, err := ParseFlags()
	require.NoError(t, err)

	assert.Equal(t, "list", cfg.Command)
	assert.Equal(t, defaultFile, cfg.File)
	assert.Equal(t, defaultStorage, cfg.Storage)
	assert.Equal(t, defaultPriority, cfg.Priority)
	assert.Equal(t, defaultCategory, cfg.Category)
	assert.Equal(t, defaultSortBy, cfg.SortBy)
	assert.False(t, cfg.Debug)
}

func TestParseFlagsConfigFileSuppliesDefaults(t *testing.T) {
	path := writeConfigFile(t, `
priority = "high"
storage = "sqlite"
category = "Work"
no_color = true
`)
	withArgs(t, "--config", path, "-c", "add", "-d", "x")

	cfg, err := ParseFlags()
	require.NoError(t, err)

	assert.Equal(t, "high", cfg.Priority)
	assert.Equal(t, "sqlite", cfg.Storage)
	assert.Equal(t, "Work", cfg.Category)
	assert.True(t, cfg.NoColor)
	// keys absent from the file keep built-in defaults
	assert.Equal(t, defaultFile, cfg.File)
}

func TestParseFlagsFlagBeatsConfigFile(t *testing.T) {
	path := writeConfigFile(t, `
priority = "high"
storage = "sqlite"
`)
	withArgs(t, "--config", path, "-c", "list", "--storage", "json")

	cfg, err := ParseFlags()
	require.NoError(t, err)

	assert.Equal(t, "json", cfg.Storage)
	// unflagged values still come from the file
	assert.Equal(t, "high", cfg.Priority)
}

func TestParseFlagsBadConfigFile(t *testing.T) {
	path := writeConfigFile(t, `priority = [not toml`)
	withArgs(t, "--config", path, "-c", "list")

	_, err := ParseFlags()
	assert.Error(t, err)
}

func TestFindConfigFileFlagForms(t *testing.T) {
	t.Setenv("TASKS_CONFIG", "")
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Chdir(t.TempDir())

	tests := []struct {
		name string
		args []string
		want string
	}{
		{"long with separate value", []string{"--config", "a.toml", "-c", "list"}, "a.toml"},
		{"long with equals", []string{"--config=b.toml"}, "b.toml"},
		{"short with equals", []string{"-config=c.toml"}, "c.toml"},
		{"short with separate value", []string{"-config", "d.toml"}, "d.toml"},
		{"absent", []string{"-c", "list"}, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, findConfigFile(tt.args))
		})
	}
}

func TestFindConfigFileEnv(t *testing.T) {
	t.Setenv("TASKS_CONFIG", "/etc/tasks/env.toml")

	// env applies when no flag is given, flag wins over env
	assert.Equal(t, "/etc/tasks/env.toml", findConfigFile([]string{"-c", "list"}))
	assert.Equal(t, "flag.toml", findConfigFile([]string{"--config", "flag.toml"}))
}

func TestFindConfigFileCurrentDir(t *testing.T) {
	t.Setenv("TASKS_CONFIG", "")
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "tasks.toml"), []byte(""), 0o644))
	t.Chdir(dir)

	assert.Equal(t, "tasks.toml", findConfigFile([]string{"-c", "list"}))
}

func TestFindConfigFileUserConfigDir(t *testing.T) {
	t.Setenv("TASKS_CONFIG", "")
	configHome := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", configHome)
	t.Chdir(t.TempDir())

	if dir, err := os.UserConfigDir(); err != nil || dir != configHome {
		t.Skip("user config dir does not honor XDG_CONFIG_HOME")
	}

	path := filepath.Join(configHome, "tasks", "tasks.toml")
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(""), 0o644))

	assert.Equal(t, path, findConfigFile([]string{"-c", "list"}))
}
