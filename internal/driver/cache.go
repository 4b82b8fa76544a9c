package driver

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"github.com/vmihailenco/msgpack/v5"

	"lumefmt/internal/format"
)

// Bump when the payload layout or the formatter's output rules change;
// stale entries are then treated as misses.
const cacheSchemaVersion uint16 = 1

// Digest is a sha256 content key.
type Digest [sha256.Size]byte

// DiskCache memoizes formatter output keyed by input content, options, and
// define set. Formatting is deterministic, so a hit can skip the whole
// pipeline. Thread-safe.
type DiskCache struct {
	mu  sync.RWMutex
	dir string
}

// cachePayload is the stored result for one (content, options) key.
type cachePayload struct {
	Schema uint16
	Path   string
	Output []byte
}

// OpenDiskCache initializes the cache at the standard user cache location.
func OpenDiskCache(app string) (*DiskCache, error) {
	base := os.Getenv("XDG_CACHE_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}
		base = filepath.Join(home, ".cache")
	}
	dir := filepath.Join(base, app)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &DiskCache{dir: dir}, nil
}

func (c *DiskCache) pathFor(key Digest) string {
	return filepath.Join(c.dir, "fmt", hex.EncodeToString(key[:])+".mp")
}

// Put writes a payload atomically.
func (c *DiskCache) Put(key Digest, output []byte, path string) error {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	p := c.pathFor(key)
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		return err
	}
	f, err := os.CreateTemp(filepath.Dir(p), "tmp-*")
	if err != nil {
		return err
	}
	defer func() {
		if rmErr := os.Remove(f.Name()); rmErr != nil && !errors.Is(rmErr, fs.ErrNotExist) {
			fmt.Fprintf(os.Stderr, "lumefmt: failed to remove temp file: %v\n", rmErr)
		}
	}()

	enc := msgpack.NewEncoder(f)
	if err := enc.Encode(&cachePayload{
		Schema: cacheSchemaVersion,
		Path:   path,
		Output: output,
	}); err != nil {
		_ = f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	return os.Rename(f.Name(), p)
}

// Get returns the cached output for a key, or (nil, false) on miss.
func (c *DiskCache) Get(key Digest) ([]byte, bool) {
	if c == nil {
		return nil, false
	}
	c.mu.RLock()
	defer c.mu.RUnlock()

	data, err := os.ReadFile(c.pathFor(key))
	if err != nil {
		return nil, false
	}
	var payload cachePayload
	if err := msgpack.Unmarshal(data, &payload); err != nil {
		return nil, false
	}
	if payload.Schema != cacheSchemaVersion {
		return nil, false
	}
	return payload.Output, true
}

// cacheKey folds the input content, formatting options, and the active
// define set into one digest.
func cacheKey(content []byte, opt format.Options, defines map[string]bool) Digest {
	h := sha256.New()
	h.Write(content)
	fmt.Fprintf(h, "|v%d|w%d|i%d|n%t|%d,%d,%d,%d,%d,%d",
		cacheSchemaVersion, opt.MaxLineWidth, opt.IndentSize, opt.InsertFinalNewline,
		opt.Widths.Arguments, opt.Widths.Infix, opt.Widths.List,
		opt.Widths.Record, opt.Widths.IfElse, opt.Widths.Match)
	keys := make([]string, 0, len(defines))
	for k, on := range defines {
		if on {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)
	for _, k := range keys {
		fmt.Fprintf(h, "|%s", k)
	}
	var d Digest
	copy(d[:], h.Sum(nil))
	return d
}
