package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_ReadsYAML(t *testing.T) {
	dir := t.TempDir()
	yaml := "grpc:\n  port: 6001\nregistry:\n  seed:\n    - id: 7\n      url: localhost:10940\n      name: Meijer\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(yaml), 0o600))

	v, err := Load(dir, "config")
	require.NoError(t, err)
	assert.Equal(t, 6001, v.GetInt("grpc.port"))
	assert.Len(t, v.Get("registry.seed"), 1)
}

func TestLoad_MissingFileIsFine(t *testing.T) {
	v, err := Load(t.TempDir(), "does-not-exist")
	require.NoError(t, err)

	t.Setenv("GRPC_PORT", "7000")
	v.SetDefault("grpc.port", 50051)
	assert.Equal(t, 7000, v.GetInt("grpc.port"))
}

func TestLoadWithFlags(t *testing.T) {
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	fs.String("target", "localhost:50051", "")
	require.NoError(t, fs.Parse([]string{"--target=10.1.1.1:9"}))

	v, err := LoadWithFlags(t.TempDir(), "none", fs, map[string]string{"supplier.target": "target"})
	require.NoError(t, err)
	assert.Equal(t, "10.1.1.1:9", v.GetString("supplier.target"))

	_, err = LoadWithFlags(t.TempDir(), "none", fs, map[string]string{"x": "missing"})
	assert.Error(t, err)
}
