// Package assets loads GLB files from directory roots and caches their bytes.
package assets

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"slices"
	"strings"
	"sync"

	"go.uber.org/zap"
)

// Extension is the file extension of binary glTF assets.
const Extension = ".glb"

// ErrNotFound is returned when no root contains the requested asset.
var ErrNotFound = errors.New("asset not found")

type root struct {
	dir string
	fs  *os.Root
}

// Source serves asset bytes from one or more directories. Names are
// slash-separated and relative to a root; roots are searched in the order
// they were added.
type Source struct {
	roots []root
	cache *Cache
	log   *zap.Logger
	mu    sync.RWMutex
}

// NewSource creates an empty source. A nil logger disables logging.
func NewSource(log *zap.Logger) *Source {
	if log == nil {
		log = zap.NewNop()
	}
	return &Source{
		cache: NewCache(),
		log:   log,
	}
}

// AddRoot adds a directory to the source. Access is confined to it.
func (s *Source) AddRoot(dir string) error {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return fmt.Errorf("resolving root %s: %w", dir, err)
	}
	r, err := os.OpenRoot(abs)
	if err != nil {
		return fmt.Errorf("opening root %s: %w", dir, err)
	}

	s.mu.Lock()
	s.roots = append(s.roots, root{dir: abs, fs: r})
	s.mu.Unlock()

	s.log.Debug("asset root added", zap.String("dir", abs))
	return nil
}

// Roots returns the absolute root directories in search order.
func (s *Source) Roots() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	dirs := make([]string, len(s.roots))
	for i, r := range s.roots {
		dirs[i] = r.dir
	}
	return dirs
}

// Load returns the bytes of the named asset, from cache when possible.
// The returned slice is shared and must not be modified.
func (s *Source) Load(name string) ([]byte, error) {
	name, err := cleanName(name)
	if err != nil {
		return nil, err
	}

	if data, ok := s.cache.Get(name); ok {
		return data, nil
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, r := range s.roots {
		data, err := readAll(r.fs, name)
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("reading %s from %s: %w", name, r.dir, err)
		}
		s.cache.Set(name, data)
		return data, nil
	}

	return nil, fmt.Errorf("%w: %s", ErrNotFound, name)
}

// Invalidate drops the cached bytes of name.
func (s *Source) Invalidate(name string) {
	if name, err := cleanName(name); err == nil && s.cache.Delete(name) {
		s.log.Debug("asset invalidated", zap.String("name", name))
	}
}

// List returns the names of all GLB assets under every root, sorted and
// without duplicates.
func (s *Source) List() ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var names []string
	for _, r := range s.roots {
		err := fs.WalkDir(r.fs.FS(), ".", func(p string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if !d.IsDir() && strings.EqualFold(path.Ext(p), Extension) {
				names = append(names, p)
			}
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("listing %s: %w", r.dir, err)
		}
	}

	slices.Sort(names)
	return slices.Compact(names), nil
}

// Cache returns the byte cache.
func (s *Source) Cache() *Cache {
	return s.cache
}

// Close closes all roots and clears the cache.
func (s *Source) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, r := range s.roots {
		r.fs.Close()
	}
	s.roots = nil
	s.cache.Clear()
}

func readAll(r *os.Root, name string) ([]byte, error) {
	f, err := r.Open(filepath.FromSlash(name))
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return io.ReadAll(f)
}

// cleanName normalizes name and rejects paths that leave the root.
func cleanName(name string) (string, error) {
	name = path.Clean(filepath.ToSlash(name))
	if !fs.ValidPath(name) || name == "." {
		return "", fmt.Errorf("invalid asset name %q", name)
	}
	return name, nil
}
