package valcache

import (
	"encoding/hex"
	"errors"
	"os"
	"path/filepath"
	"sync"

	"github.com/vmihailenco/msgpack/v5"
)

// Schema version for the on-disk payload; bump when the format changes so
// stale entries read as misses instead of garbage.
const diskSchemaVersion uint16 = 1

// Rendered is the disk-cached form of one bounded rendering.
type Rendered struct {
	Schema       uint16
	Depth        int
	MaxItems     int
	MaxStringLen int
	Text         string
}

// DiskCache stores rendered text keyed by content digest. Entries are plain
// msgpack files under one directory; writes are atomic via temp-and-rename.
// Safe for concurrent use.
type DiskCache struct {
	mu  sync.RWMutex
	dir string
}

// OpenDiskCache opens (creating if needed) a disk cache rooted at dir. An
// empty dir selects the user cache directory.
func OpenDiskCache(dir string) (*DiskCache, error) {
	if dir == "" {
		base, err := os.UserCacheDir()
		if err != nil {
			return nil, err
		}
		dir = filepath.Join(base, "tvdump")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &DiskCache{dir: dir}, nil
}

func (c *DiskCache) pathFor(key Digest) string {
	return filepath.Join(c.dir, "render", hex.EncodeToString(key[:])+".mp")
}

// Put writes a rendered payload under key, replacing any previous entry.
func (c *DiskCache) Put(key Digest, r Rendered) error {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	r.Schema = diskSchemaVersion
	p := c.pathFor(key)
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		return err
	}
	f, err := os.CreateTemp(filepath.Dir(p), "tmp-*")
	if err != nil {
		return err
	}
	tmp := f.Name()
	if err := msgpack.NewEncoder(f).Encode(&r); err != nil {
		f.Close()
		os.Remove(tmp)
		return err
	}
	if err := f.Close(); err != nil {
		os.Remove(tmp)
		return err
	}
	return os.Rename(tmp, p)
}

// Get reads the payload stored under key. A missing entry or a schema
// mismatch reports a miss, not an error.
func (c *DiskCache) Get(key Digest) (Rendered, bool, error) {
	if c == nil {
		return Rendered{}, false, nil
	}
	c.mu.RLock()
	defer c.mu.RUnlock()

	f, err := os.Open(c.pathFor(key))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Rendered{}, false, nil
		}
		return Rendered{}, false, err
	}
	defer f.Close()

	var r Rendered
	if err := msgpack.NewDecoder(f).Decode(&r); err != nil {
		return Rendered{}, false, err
	}
	if r.Schema != diskSchemaVersion {
		return Rendered{}, false, nil
	}
	return r, true, nil
}

// DropAll removes every cached entry.
func (c *DiskCache) DropAll() error {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	return os.RemoveAll(filepath.Join(c.dir, "render"))
}
