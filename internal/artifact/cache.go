// Package artifact caches build results keyed by source content fingerprint,
// so repeated builds against an unchanged document skip the pipeline. The
// store is append-only per key: an existing artifact is never rewritten, and
// readers can run concurrently with writers because writers stage into a
// private temp directory and rename into place.
package artifact

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/itsmostafa/pagetree/internal/outline"
)

const documentFile = "document.json"

// Store is a directory-backed artifact cache.
type Store struct {
	dir string
}

// Fingerprint returns the cache key for a source document's raw bytes plus
// any build parameters that change the output.
func Fingerprint(data []byte, params ...string) string {
	h := sha256.New()
	h.Write(data)
	for _, p := range params {
		h.Write([]byte{0})
		h.Write([]byte(p))
	}
	return hex.EncodeToString(h.Sum(nil))
}

// Open creates a Store rooted at dir, creating it if needed. An empty dir
// places the store under the user cache directory.
func Open(dir string) (*Store, error) {
	if dir == "" {
		base, err := os.UserCacheDir()
		if err != nil {
			return nil, fmt.Errorf("resolve cache dir: %w", err)
		}
		dir = filepath.Join(base, "pagetree")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create cache dir: %w", err)
	}
	return &Store{dir: dir}, nil
}

// Load returns the cached document for a key, or ok=false when absent.
func (s *Store) Load(key string) (*outline.Document, bool) {
	data, err := os.ReadFile(filepath.Join(s.dir, key, documentFile))
	if err != nil {
		return nil, false
	}

	var doc outline.Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, false
	}
	return &doc, true
}

// Save writes the document under the key. A key that already exists is left
// untouched; the cache is append-only.
func (s *Store) Save(key string, doc *outline.Document) error {
	final := filepath.Join(s.dir, key)
	if _, err := os.Stat(final); err == nil {
		return nil
	} else if !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("stat cache key: %w", err)
	}

	tmp, err := os.MkdirTemp(s.dir, key+".tmp-*")
	if err != nil {
		return fmt.Errorf("stage cache write: %w", err)
	}
	defer os.RemoveAll(tmp)

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal document: %w", err)
	}
	if err := os.WriteFile(filepath.Join(tmp, documentFile), data, 0o644); err != nil {
		return fmt.Errorf("write document: %w", err)
	}

	if err := os.Rename(tmp, final); err != nil {
		// A concurrent writer finished first; their artifact is equivalent.
		if _, statErr := os.Stat(final); statErr == nil {
			return nil
		}
		return fmt.Errorf("publish cache entry: %w", err)
	}
	return nil
}
