package assets

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// Change describes an asset file that was written, created or removed.
type Change struct {
	Name    string // Slash-separated, relative to its root
	Removed bool
}

// Watch invalidates cached assets as their files change and reports each
// change to onChange. New subdirectories are watched as they appear. Watch
// blocks until ctx is done or the watcher fails.
func (s *Source) Watch(ctx context.Context, onChange func(Change)) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("creating watcher: %w", err)
	}
	defer w.Close()

	roots := s.Roots()
	for _, dir := range roots {
		if err := watchRecursive(w, dir); err != nil {
			return fmt.Errorf("watching %s: %w", dir, err)
		}
	}
	s.log.Info("watching asset roots", zap.Strings("roots", roots))

	for {
		select {
		case <-ctx.Done():
			return nil

		case e, ok := <-w.Events:
			if !ok {
				return nil
			}
			if e.Has(fsnotify.Create) {
				if fi, err := os.Stat(e.Name); err == nil && fi.IsDir() {
					if err := watchRecursive(w, e.Name); err != nil {
						s.log.Warn("cannot watch new directory", zap.String("dir", e.Name), zap.Error(err))
					}
					continue
				}
			}

			name, ok := relativeName(roots, e.Name)
			if !ok || !strings.EqualFold(filepath.Ext(name), Extension) {
				continue
			}

			var c Change
			switch {
			case e.Has(fsnotify.Remove), e.Has(fsnotify.Rename):
				c = Change{Name: name, Removed: true}
			case e.Has(fsnotify.Create), e.Has(fsnotify.Write):
				c = Change{Name: name}
			default:
				continue
			}

			s.Invalidate(name)
			s.log.Debug("asset changed", zap.String("name", name), zap.Bool("removed", c.Removed))
			if onChange != nil {
				onChange(c)
			}

		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			s.log.Error("watcher error", zap.Error(err))
		}
	}
}

// watchRecursive adds dir and every directory below it to w.
func watchRecursive(w *fsnotify.Watcher, dir string) error {
	return filepath.WalkDir(dir, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return w.Add(p)
		}
		return nil
	})
}

// relativeName maps an absolute event path to an asset name under the first
// root that contains it.
func relativeName(roots []string, p string) (string, bool) {
	for _, dir := range roots {
		rel, err := filepath.Rel(dir, p)
		if err != nil || !filepath.IsLocal(rel) {
			continue
		}
		return filepath.ToSlash(rel), true
	}
	return "", false
}
