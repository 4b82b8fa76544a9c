// Package driver orchestrates formatting runs over files and directories:
// file discovery, parallelism, the result cache, and write-back.
package driver

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strings"

	"golang.org/x/sync/errgroup"

	"lumefmt/internal/diag"
	"lumefmt/internal/format"
	"lumefmt/internal/source"
)

// SourceExt is the Lume source file extension.
const SourceExt = ".lm"

// FormatOptions configures one formatting run.
type FormatOptions struct {
	// Check leaves files untouched and only reports whether they would change.
	Check bool
	// Stdout returns formatted content in the results instead of writing files.
	Stdout bool
	// VerifyIdempotence re-formats the output and fails if it differs.
	VerifyIdempotence bool

	MaxDiagnostics int
	Jobs           int
	Defines        map[string]bool
	Format         format.Options
	Cache          *DiskCache

	// Progress, when set, receives each finished result; used by the UI.
	Progress func(res FormatResult)
}

// FormatResult is the outcome for one file. FileSet resolves the spans of
// the diagnostics in Bag.
type FormatResult struct {
	Path      string
	Changed   bool
	FromCache bool
	Formatted []byte
	Bag       *diag.Bag
	FileSet   *source.FileSet
	Err       error
}

// CollectFiles expands the given paths: files are taken as-is, directories
// are walked recursively for *.lm files. The result is sorted for
// deterministic run order.
func CollectFiles(ctx context.Context, paths []string) ([]string, error) {
	var files []string
	seen := make(map[string]struct{})
	add := func(p string) {
		if _, ok := seen[p]; !ok {
			seen[p] = struct{}{}
			files = append(files, p)
		}
	}

	for _, path := range paths {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		info, err := os.Stat(path)
		if err != nil {
			return nil, err
		}
		if !info.IsDir() {
			add(path)
			continue
		}
		err = filepath.WalkDir(path, func(p string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if !d.IsDir() && strings.HasSuffix(p, SourceExt) {
				add(p)
			}
			return nil
		})
		if err != nil {
			return nil, err
		}
	}
	sort.Strings(files)
	return files, nil
}

// FormatPaths formats the given files and directories in parallel. Results
// come back in file order; per-file failures are recorded in the result,
// not returned as the run error.
func FormatPaths(ctx context.Context, paths []string, opts FormatOptions) ([]FormatResult, error) {
	files, err := CollectFiles(ctx, paths)
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, errors.New("format: no source files found")
	}

	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}

	results := make([]FormatResult, len(files))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(jobs, len(files)))

	for i, path := range files {
		i, path := i, path
		g.Go(func() error {
			select {
			case <-gctx.Done():
				return gctx.Err()
			default:
			}
			results[i] = formatOne(path, opts)
			if opts.Progress != nil {
				opts.Progress(results[i])
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return results, err
	}
	return results, nil
}

func formatOne(path string, opts FormatOptions) FormatResult {
	result := FormatResult{Path: path}

	data, err := os.ReadFile(path)
	if err != nil {
		bag := diag.NewBag(1)
		bag.Add(diag.Diagnostic{
			Severity: diag.SevError,
			Code:     diag.IOLoadFileError,
			Message:  "failed to load file: " + err.Error(),
		})
		result.Bag = bag
		result.Err = err
		return result
	}

	key := cacheKey(data, opts.Format, opts.Defines)
	formatted, hit := opts.Cache.Get(key)
	if hit {
		result.FromCache = true
	} else {
		fileSet := source.NewFileSet()
		sf := fileSet.Get(fileSet.AddVirtual(path, data))

		out, bag, err := format.Render(sf, opts.Defines, opts.Format, opts.MaxDiagnostics)
		result.Bag = bag
		result.FileSet = fileSet
		if err != nil {
			result.Err = err
			return result
		}
		if opts.VerifyIdempotence {
			if err := verifyIdempotence(path, out, opts); err != nil {
				result.Err = err
				return result
			}
		}
		if err := opts.Cache.Put(key, out, path); err != nil {
			// Cache failures degrade to uncached operation.
			fmt.Fprintf(os.Stderr, "lumefmt: cache write failed: %v\n", err)
		}
		formatted = out
	}

	result.Changed = !bytes.Equal(data, formatted)
	if opts.Stdout {
		result.Formatted = formatted
		return result
	}
	if opts.Check || !result.Changed {
		return result
	}

	mode := os.FileMode(0o644)
	if info, statErr := os.Stat(path); statErr == nil {
		mode = info.Mode()
	}
	if err := os.WriteFile(path, formatted, mode.Perm()); err != nil {
		result.Err = err
	}
	return result
}

// verifyIdempotence formats the formatter's own output and demands a
// byte-identical result.
func verifyIdempotence(path string, out []byte, opts FormatOptions) error {
	fileSet := source.NewFileSet()
	sf := fileSet.Get(fileSet.AddVirtual(path, out))
	again, _, err := format.Render(sf, opts.Defines, opts.Format, opts.MaxDiagnostics)
	if err != nil {
		return fmt.Errorf("reformatting own output failed: %w", err)
	}
	if !bytes.Equal(out, again) {
		return &format.Error{
			Code: diag.FmtNotIdempotent,
			Span: source.Span{File: sf.ID},
			Msg:  "formatting is not idempotent for " + path,
		}
	}
	return nil
}
