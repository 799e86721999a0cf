package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	chdir(t, t.TempDir())

	cfg, err := Load("", nil)
	require.NoError(t, err)
	assert.Equal(t, "", cfg.Output)
	assert.Equal(t, "main", cfg.Package)
}

func TestLoadConfigFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "settings.yaml")
	require.NoError(t, os.WriteFile(path, []byte("output: parser.go\npackage: calc\n"), 0644))

	cfg, err := Load(path, nil)
	require.NoError(t, err)
	assert.Equal(t, "parser.go", cfg.Output)
	assert.Equal(t, "calc", cfg.Package)
}

func TestLoadFindsDefaultConfigFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "gramgen.yaml"), []byte("package: calc\n"), 0644))
	chdir(t, dir)

	cfg, err := Load("", nil)
	require.NoError(t, err)
	assert.Equal(t, "calc", cfg.Package)
}

func TestLoadEnvOverridesFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "settings.yaml")
	require.NoError(t, os.WriteFile(path, []byte("package: calc\n"), 0644))
	t.Setenv("GRAMGEN_PACKAGE", "fromenv")

	cfg, err := Load(path, nil)
	require.NoError(t, err)
	assert.Equal(t, "fromenv", cfg.Package)
}

func TestLoadFlagsOverrideEverything(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("GRAMGEN_PACKAGE", "fromenv")

	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.String("package", "", "")
	flags.String("output", "", "")
	require.NoError(t, flags.Parse([]string{"--package", "fromflag"}))

	cfg, err := Load("", flags)
	require.NoError(t, err)
	assert.Equal(t, "fromflag", cfg.Package)
	// An unset flag must not clobber lower-precedence sources.
	assert.Equal(t, "", cfg.Output)
}

func chdir(t *testing.T, dir string) {
	t.Helper()
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() {
		os.Chdir(wd)
	})
}
