package cache

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"time"
)

// entryMagic starts every file entry; the expiry in Unix nanoseconds (0
// for never) follows on the same line, then the raw data.
const entryMagic = "ribbonpack-cache/1"

var kindPattern = regexp.MustCompile(`^[a-z0-9_-]{1,32}$`)

// FileCache keeps one file per entry under dir, grouped in a directory per
// key kind (the key up to its first colon, "packing" or "artifact" for the
// default keyer). Writes go through a temporary file and a rename, so
// concurrent readers never see a partial entry.
type FileCache struct {
	dir string
}

// NewFileCache creates dir if needed and returns a cache rooted there.
func NewFileCache(dir string) (*FileCache, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create cache dir: %w", err)
	}
	return &FileCache{dir: dir}, nil
}

// DefaultDir returns $XDG_CACHE_HOME/ribbonpack, falling back to the
// user cache directory of the platform.
func DefaultDir() (string, error) {
	if xdg := os.Getenv("XDG_CACHE_HOME"); xdg != "" {
		return filepath.Join(xdg, "ribbonpack"), nil
	}
	base, err := os.UserCacheDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(base, "ribbonpack"), nil
}

// Dir returns the cache directory.
func (c *FileCache) Dir() string { return c.dir }

// Get returns the entry for key. Expired and unreadable entries are
// removed and reported as misses.
func (c *FileCache) Get(_ context.Context, key string) ([]byte, bool, error) {
	path := c.path(key)
	raw, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}

	data, expires, ok := decodeEntry(raw)
	if !ok || (!expires.IsZero() && time.Now().After(expires)) {
		_ = os.Remove(path)
		return nil, false, nil
	}
	return data, true, nil
}

// Set writes the entry for key. A ttl of zero never expires.
func (c *FileCache) Set(_ context.Context, key string, data []byte, ttl time.Duration) error {
	var expires int64
	if ttl > 0 {
		expires = time.Now().Add(ttl).UnixNano()
	}
	path := c.path(key)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), ".tmp-*")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())

	w := bufio.NewWriter(tmp)
	fmt.Fprintf(w, "%s %d\n", entryMagic, expires)
	w.Write(data)
	if err := w.Flush(); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), path)
}

func decodeEntry(raw []byte) (data []byte, expires time.Time, ok bool) {
	header, data, found := bytes.Cut(raw, []byte("\n"))
	if !found {
		return nil, time.Time{}, false
	}
	magic, stamp, found := bytes.Cut(header, []byte(" "))
	if !found || string(magic) != entryMagic {
		return nil, time.Time{}, false
	}
	ns, err := strconv.ParseInt(string(stamp), 10, 64)
	if err != nil {
		return nil, time.Time{}, false
	}
	if ns > 0 {
		expires = time.Unix(0, ns)
	}
	return data, expires, true
}

// Delete removes the entry for key, if any.
func (c *FileCache) Delete(_ context.Context, key string) error {
	if err := os.Remove(c.path(key)); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

// Clear removes every entry and leaves an empty directory.
func (c *FileCache) Clear(context.Context) error {
	if err := os.RemoveAll(c.dir); err != nil {
		return err
	}
	return os.MkdirAll(c.dir, 0o755)
}

// Usage is the number and total size of the entries of one kind.
type Usage struct {
	Entries int
	Bytes   int64
}

// Usage walks the cache directory and totals the entries per kind.
func (c *FileCache) Usage(ctx context.Context) (map[string]Usage, error) {
	out := make(map[string]Usage)
	err := filepath.WalkDir(c.dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		if d.IsDir() || filepath.Ext(path) != ".entry" {
			return nil
		}
		info, err := d.Info()
		if err != nil {
			return err
		}
		rel, _ := filepath.Rel(c.dir, path)
		kind := filepath.Dir(rel)
		u := out[kind]
		u.Entries++
		u.Bytes += info.Size()
		out[kind] = u
		return nil
	})
	return out, err
}

// Close does nothing.
func (c *FileCache) Close() error { return nil }

// path maps key to dir/kind/hash.entry.
func (c *FileCache) path(key string) string {
	kind := "other"
	if k, _, found := bytes.Cut([]byte(key), []byte(":")); found && kindPattern.Match(k) {
		kind = string(k)
	}
	return filepath.Join(c.dir, kind, Hash([]byte(key))+".entry")
}

var _ Cache = (*FileCache)(nil)
