package driver_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"lumefmt/internal/driver"
	"lumefmt/internal/format"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestCollectFiles(t *testing.T) {
	dir := t.TempDir()
	a := writeFile(t, dir, "a.lm", "let a = 1\n")
	b := writeFile(t, dir, "sub/b.lm", "let b = 2\n")
	writeFile(t, dir, "sub/ignore.txt", "not source\n")

	files, err := driver.CollectFiles(context.Background(), []string{dir})
	require.NoError(t, err)
	require.Equal(t, []string{a, b}, files)
}

func TestCollectFilesDeduplicates(t *testing.T) {
	dir := t.TempDir()
	a := writeFile(t, dir, "a.lm", "let a = 1\n")

	files, err := driver.CollectFiles(context.Background(), []string{a, dir})
	require.NoError(t, err)
	require.Equal(t, []string{a}, files)
}

func TestFormatPathsRewritesFile(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "a.lm", "let   a   =   1\n")

	results, err := driver.FormatPaths(context.Background(), []string{path}, driver.FormatOptions{
		Format: format.DefaultOptions(),
	})
	require.NoError(t, err)
	require.Len(t, results, 1)
	require.NoError(t, results[0].Err)
	require.True(t, results[0].Changed)

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, "let a = 1\n", string(content))
}

func TestFormatPathsCheckLeavesFileAlone(t *testing.T) {
	dir := t.TempDir()
	input := "let   a   =   1\n"
	path := writeFile(t, dir, "a.lm", input)

	results, err := driver.FormatPaths(context.Background(), []string{path}, driver.FormatOptions{
		Check:  true,
		Format: format.DefaultOptions(),
	})
	require.NoError(t, err)
	require.True(t, results[0].Changed)

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, input, string(content))
}

func TestFormatPathsStdout(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "a.lm", "let a = 1\n")

	results, err := driver.FormatPaths(context.Background(), []string{path}, driver.FormatOptions{
		Stdout: true,
		Format: format.DefaultOptions(),
	})
	require.NoError(t, err)
	require.Equal(t, "let a = 1\n", string(results[0].Formatted))
	require.False(t, results[0].Changed)
}

func TestFormatPathsParseErrorIsPerFile(t *testing.T) {
	dir := t.TempDir()
	bad := writeFile(t, dir, "bad.lm", "let = 1\n")
	good := writeFile(t, dir, "good.lm", "let g = 1\n")

	results, err := driver.FormatPaths(context.Background(), []string{bad, good}, driver.FormatOptions{
		Format: format.DefaultOptions(),
	})
	require.NoError(t, err, "per-file failures must not abort the run")
	require.Len(t, results, 2)
	require.Error(t, results[0].Err)
	require.NoError(t, results[1].Err)
}

func TestFormatPathsMaxDiagnosticsCapsBag(t *testing.T) {
	dir := t.TempDir()
	bad := writeFile(t, dir, "bad.lm", "let = 1\nlet = 2\n")

	results, err := driver.FormatPaths(context.Background(), []string{bad}, driver.FormatOptions{
		MaxDiagnostics: 1,
		Format:         format.DefaultOptions(),
	})
	require.NoError(t, err)
	require.Error(t, results[0].Err)
	require.NotNil(t, results[0].Bag)
	require.Equal(t, 1, results[0].Bag.Len())
	require.NotNil(t, results[0].FileSet, "results must carry the file set that resolves diagnostic spans")
}

func TestFormatPathsVerifyIdempotence(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "a.lm", "let a = [1; 2; 3]\n")

	results, err := driver.FormatPaths(context.Background(), []string{path}, driver.FormatOptions{
		VerifyIdempotence: true,
		Format:            format.DefaultOptions(),
	})
	require.NoError(t, err)
	require.NoError(t, results[0].Err)
}

func TestFormatPathsProgressCallback(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "a.lm", "let a = 1\n")
	writeFile(t, dir, "b.lm", "let b = 2\n")

	var seen []string
	results, err := driver.FormatPaths(context.Background(), []string{dir}, driver.FormatOptions{
		Jobs:   1,
		Format: format.DefaultOptions(),
		Progress: func(res driver.FormatResult) {
			seen = append(seen, res.Path)
		},
	})
	require.NoError(t, err)
	require.Len(t, results, 2)
	require.Len(t, seen, 2)
}

func TestDiskCacheRoundTrip(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", t.TempDir())
	cache, err := driver.OpenDiskCache("lumefmt-test")
	require.NoError(t, err)

	key := driver.Digest{1, 2, 3}
	_, hit := cache.Get(key)
	require.False(t, hit)

	require.NoError(t, cache.Put(key, []byte("let a = 1\n"), "a.lm"))
	out, hit := cache.Get(key)
	require.True(t, hit)
	require.Equal(t, "let a = 1\n", string(out))
}

func TestNilCacheIsNoop(t *testing.T) {
	var cache *driver.DiskCache
	require.NoError(t, cache.Put(driver.Digest{}, nil, ""))
	_, hit := cache.Get(driver.Digest{})
	require.False(t, hit)
}

func TestFormatPathsUsesCache(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", t.TempDir())
	cache, err := driver.OpenDiskCache("lumefmt-test")
	require.NoError(t, err)

	dir := t.TempDir()
	path := writeFile(t, dir, "a.lm", "let a = 1\n")
	opts := driver.FormatOptions{Format: format.DefaultOptions(), Cache: cache}

	results, err := driver.FormatPaths(context.Background(), []string{path}, opts)
	require.NoError(t, err)
	require.False(t, results[0].FromCache)

	results, err = driver.FormatPaths(context.Background(), []string{path}, opts)
	require.NoError(t, err)
	require.True(t, results[0].FromCache)
}
