package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"lumefmt/internal/config"
)

func writeManifest(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, config.FileName)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := writeManifest(t, dir, `
max_line_width = 80
indent_size = 4
insert_final_newline = false
defines = ["FAST", "TRACE=off"]

[width]
list = 30
match = 20
`)

	cfg, err := config.Load(path)
	require.NoError(t, err)
	require.Equal(t, 80, cfg.MaxLineWidth)
	require.Equal(t, 4, cfg.IndentSize)
	require.NotNil(t, cfg.InsertFinalNewline)
	require.False(t, *cfg.InsertFinalNewline)
	require.Equal(t, []string{"FAST", "TRACE=off"}, cfg.Defines)
	require.Equal(t, 30, cfg.Width.List)
}

func TestLoadRejectsUnknownKeys(t *testing.T) {
	dir := t.TempDir()
	path := writeManifest(t, dir, "max_width = 80\n")

	_, err := config.Load(path)
	require.Error(t, err)
	require.Contains(t, err.Error(), "unknown key")
}

func TestOptionsFallBackToDefaults(t *testing.T) {
	opt := config.Config{}.Options()
	require.Equal(t, 100, opt.MaxLineWidth)
	require.Equal(t, 2, opt.IndentSize)
	require.True(t, opt.InsertFinalNewline)
	require.Equal(t, 50, opt.Widths.List)
}

func TestOptionsOverrides(t *testing.T) {
	off := false
	cfg := config.Config{MaxLineWidth: 80, InsertFinalNewline: &off}
	cfg.Width.Match = 25

	opt := cfg.Options()
	require.Equal(t, 80, opt.MaxLineWidth)
	require.False(t, opt.InsertFinalNewline)
	require.Equal(t, 25, opt.Widths.Match)
	require.Equal(t, 2, opt.IndentSize, "unset keys keep defaults")
}

func TestFindWalksUpward(t *testing.T) {
	root := t.TempDir()
	writeManifest(t, root, "indent_size = 4\n")
	nested := filepath.Join(root, "a", "b")
	require.NoError(t, os.MkdirAll(nested, 0o755))

	path, ok, err := config.Find(nested)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, filepath.Join(root, config.FileName), path)
}

func TestDiscoverMissingManifest(t *testing.T) {
	cfg, ok, err := config.Discover(t.TempDir())
	require.NoError(t, err)
	require.False(t, ok)
	require.Equal(t, 100, cfg.Options().MaxLineWidth)
}

func TestDefineSet(t *testing.T) {
	cfg := config.Config{Defines: []string{"FAST", "TRACE"}}
	set := cfg.DefineSet([]string{"TRACE=off", "DEBUG"})

	require.True(t, set["FAST"])
	require.False(t, set["TRACE"], "command-line override wins")
	require.True(t, set["DEBUG"])
}
