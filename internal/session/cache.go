package session

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/vmihailenco/msgpack/v5"

	"verdict/internal/diag"
	"verdict/internal/source"
)

// Bump when the payload format changes; stale entries then read as misses.
const cacheSchemaVersion uint16 = 1

// Digest keys cache entries.
type Digest = [32]byte

// CacheKey combines everything that determines a file's final
// diagnostics: the input digest (for bundle inputs, a hash of the
// whole bundle including tree and suppressions), the rule-set
// fingerprint and the suppression configuration fingerprint.
func CacheKey(content, table, config Digest) Digest {
	h := sha256.New()
	h.Write(content[:])
	h.Write(table[:])
	h.Write(config[:])
	var out Digest
	h.Sum(out[:0])
	return out
}

// cachedDiagnostic is a Diagnostic with the span's file id stripped;
// ids are per-run and get rebound on load.
type cachedDiagnostic struct {
	Descriptor string
	Rule       string
	Severity   uint8
	Message    string
	Start      uint32
	End        uint32
}

type cachePayload struct {
	Schema      uint16
	Diagnostics []cachedDiagnostic
}

// DiskCache stores final per-file diagnostic lists keyed by Digest.
// Entries are written atomically; all methods are safe for concurrent
// use. Lookups and stores are best effort: IO errors read as misses.
type DiskCache struct {
	mu  sync.RWMutex
	dir string
}

// OpenDiskCache initializes a disk cache under the XDG cache home.
func OpenDiskCache(app string) (*DiskCache, error) {
	base := os.Getenv("XDG_CACHE_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}
		base = filepath.Join(home, ".cache")
	}
	return OpenDiskCacheAt(filepath.Join(base, app))
}

// OpenDiskCacheAt initializes a disk cache at an explicit directory.
func OpenDiskCacheAt(dir string) (*DiskCache, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &DiskCache{dir: dir}, nil
}

func (c *DiskCache) pathFor(key Digest) string {
	return filepath.Join(c.dir, "results", hex.EncodeToString(key[:])+".mp")
}

// Put serializes diagnostics for key. The span file ids are dropped;
// Get rebinds them to the caller's current FileID.
func (c *DiskCache) Put(key Digest, items []diag.Diagnostic) error {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	payload := cachePayload{
		Schema:      cacheSchemaVersion,
		Diagnostics: make([]cachedDiagnostic, 0, len(items)),
	}
	for _, d := range items {
		payload.Diagnostics = append(payload.Diagnostics, cachedDiagnostic{
			Descriptor: d.Descriptor,
			Rule:       d.Rule,
			Severity:   uint8(d.Severity),
			Message:    d.Message,
			Start:      d.Primary.Start,
			End:        d.Primary.End,
		})
	}

	data, err := msgpack.Marshal(&payload)
	if err != nil {
		return err
	}

	p := c.pathFor(key)
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		return err
	}
	tmp, err := os.CreateTemp(filepath.Dir(p), "tmp-*")
	if err != nil {
		return err
	}
	defer func() {
		_ = os.Remove(tmp.Name())
	}()
	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), p)
}

// Get returns the cached diagnostics for key, rebound to file.
// A missing entry, schema mismatch or decode failure reads as a miss.
func (c *DiskCache) Get(key Digest, file source.FileID) ([]diag.Diagnostic, bool) {
	if c == nil {
		return nil, false
	}
	c.mu.RLock()
	defer c.mu.RUnlock()

	data, err := os.ReadFile(c.pathFor(key))
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			return nil, false
		}
		return nil, false
	}

	var payload cachePayload
	if err := msgpack.Unmarshal(data, &payload); err != nil {
		return nil, false
	}
	if payload.Schema != cacheSchemaVersion {
		return nil, false
	}

	out := make([]diag.Diagnostic, 0, len(payload.Diagnostics))
	for _, cd := range payload.Diagnostics {
		out = append(out, diag.Diagnostic{
			Descriptor: cd.Descriptor,
			Rule:       cd.Rule,
			Severity:   diag.Severity(cd.Severity),
			Message:    cd.Message,
			Primary:    source.Span{File: file, Start: cd.Start, End: cd.End},
		})
	}
	return out, true
}
