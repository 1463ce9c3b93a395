package store

import (
	"path/filepath"
	"strings"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// watch drains filesystem events into the dirty latch until Close.
func (s *Store) watch() {
	for {
		select {
		case <-s.done:
			return
		case event, ok := <-s.watcher.Events:
			if !ok {
				return
			}
			if !event.Has(fsnotify.Create) &&
				!event.Has(fsnotify.Write) &&
				!event.Has(fsnotify.Remove) &&
				!event.Has(fsnotify.Rename) {
				continue
			}
			// Editor temp and hidden files churn constantly; the
			// latch only cares about tracked resources anyway.
			base := filepath.Base(event.Name)
			if strings.HasPrefix(base, ".") || strings.HasPrefix(base, "~") {
				continue
			}
			s.mark(filepath.Clean(event.Name))
			s.log.Debug("filesystem change latched",
				zap.String("path", event.Name),
				zap.String("op", event.Op.String()))
		case err, ok := <-s.watcher.Errors:
			if !ok {
				return
			}
			s.log.Warn("filesystem watcher error", zap.Error(err))
		}
	}
}

// addWatch registers dir with the watcher once. No-op in polling mode.
func (s *Store) addWatch(dir string) {
	if s.watcher == nil {
		return
	}
	s.mu.Lock()
	if _, ok := s.watched[dir]; ok {
		s.mu.Unlock()
		return
	}
	s.watched[dir] = struct{}{}
	s.mu.Unlock()

	if err := s.watcher.Add(dir); err != nil {
		s.log.Warn("failed to watch directory", zap.String("dir", dir), zap.Error(err))
	}
}
