// Package procache caches ProcessedFile results keyed on file content so a
// repeat run that sees an unchanged file skips re-parsing it. It follows the
// three-strategy shape spec.md describes (none/per_file/bulk) and is
// grounded on the teacher's facts.Store: a mutex-guarded in-memory index
// that is also flushed to JSON on disk, just serialized with
// encoding/json instead of the teacher's custom JSONL writer since the
// cache here is a single lookup table, not an append log.
package procache

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sync"

	"github.com/nwaobi/packcheck/internal/config"
	"github.com/nwaobi/packcheck/internal/fileclass"
	"github.com/nwaobi/packcheck/internal/packmodel"
)

// Entry is one cached ProcessedFile together with the digest of the source
// it was parsed from. Entries are keyed by the file's relative path (the
// per-file cache names its file after the path's MD5); Digest only decides
// whether an entry is still valid.
type Entry struct {
	Digest        string                    `json:"digest"`
	ProcessedFile *packmodel.ProcessedFile  `json:"processed_file"`
}

// Cache is the interface the pipeline depends on; None/PerFile/Bulk all
// satisfy it.
type Cache interface {
	// Get returns the cached ProcessedFile for relPath if contents still
	// hashes to the cached digest.
	Get(relPath string, contents []byte) (*packmodel.ProcessedFile, bool)
	Put(relPath string, contents []byte, pf *packmodel.ProcessedFile)
	// Flush persists the cache to disk, if the strategy is durable.
	Flush() error
}

// New constructs the Cache implementation named by strategy.
func New(cfg *config.Config, strategy config.CacheStrategy) Cache {
	switch strategy {
	case config.CachePerFile:
		return newPerFileCache(cfg.RepoRoot, cfg.CacheDirectory)
	case config.CacheBulk:
		return newBulkCache(cfg.RepoRoot, cfg.CacheDirectory)
	default:
		return noneCache{}
	}
}

// noneCache never caches; every Get misses.
type noneCache struct{}

func (noneCache) Get(string, []byte) (*packmodel.ProcessedFile, bool) { return nil, false }
func (noneCache) Put(string, []byte, *packmodel.ProcessedFile)        {}
func (noneCache) Flush() error                                        { return nil }

// perFileCache writes one JSON file per source file, named by the MD5 of
// its relative path, so a cache hit needs only a stat-free file read keyed
// by a filename computed without touching the index.
type perFileCache struct {
	dir string
}

func newPerFileCache(repoRoot, cacheDir string) *perFileCache {
	return &perFileCache{dir: filepath.Join(repoRoot, cacheDir, "files")}
}

func (c *perFileCache) path(relPath string) string {
	return filepath.Join(c.dir, fileclass.DigestPath(relPath)+".json")
}

func (c *perFileCache) Get(relPath string, contents []byte) (*packmodel.ProcessedFile, bool) {
	data, err := os.ReadFile(c.path(relPath))
	if err != nil {
		return nil, false
	}
	var entry Entry
	if err := json.Unmarshal(data, &entry); err != nil {
		return nil, false
	}
	if entry.Digest != fileclass.Digest(contents) {
		return nil, false
	}
	return entry.ProcessedFile, true
}

func (c *perFileCache) Put(relPath string, contents []byte, pf *packmodel.ProcessedFile) {
	entry := Entry{Digest: fileclass.Digest(contents), ProcessedFile: pf}
	data, err := json.Marshal(entry)
	if err != nil {
		return
	}
	_ = os.MkdirAll(c.dir, 0o755)
	_ = os.WriteFile(c.path(relPath), data, 0o644)
}

func (c *perFileCache) Flush() error { return nil }

// bulkCache keeps the entire cache as one in-memory map, guarded by a
// mutex the way facts.Store guards its indices, and writes it out as a
// single JSON file on Flush.
type bulkCache struct {
	mu      sync.Mutex
	path    string
	entries map[string]Entry
	dirty   bool
}

func newBulkCache(repoRoot, cacheDir string) *bulkCache {
	path := filepath.Join(repoRoot, cacheDir, "bulk.json")
	c := &bulkCache{path: path, entries: make(map[string]Entry)}
	if data, err := os.ReadFile(path); err == nil {
		_ = json.Unmarshal(data, &c.entries)
	}
	return c
}

func (c *bulkCache) Get(relPath string, contents []byte) (*packmodel.ProcessedFile, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	entry, ok := c.entries[relPath]
	if !ok || entry.Digest != fileclass.Digest(contents) {
		return nil, false
	}
	return entry.ProcessedFile, true
}

func (c *bulkCache) Put(relPath string, contents []byte, pf *packmodel.ProcessedFile) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[relPath] = Entry{Digest: fileclass.Digest(contents), ProcessedFile: pf}
	c.dirty = true
}

func (c *bulkCache) Flush() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.dirty {
		return nil
	}
	data, err := json.MarshalIndent(c.entries, "", "  ")
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(c.path), 0o755); err != nil {
		return err
	}
	if err := os.WriteFile(c.path, data, 0o644); err != nil {
		return err
	}
	c.dirty = false
	return nil
}
