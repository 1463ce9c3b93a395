package store

import (
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"

	"github.com/riftlab/asset-registry/errors"
)

// Store tracks resource files under a content root and latches change
// notifications between refresh cycles.
type Store struct {
	mu      sync.Mutex
	log     *zap.Logger
	root    string
	handles map[string]*Handle
	dirty   map[string]struct{} // latched changes, pending for the next cycle
	cycle   map[string]struct{} // frozen set observed by the current cycle
	watcher *fsnotify.Watcher
	watched map[string]struct{}
	done    chan struct{}
	polling bool
	closed  bool
}

// Option configures a Store before it starts.
type Option func(*Store)

// WithLogger routes store diagnostics to l.
func WithLogger(l *zap.Logger) Option {
	return func(s *Store) {
		if l != nil {
			s.log = l
		}
	}
}

// WithWatcher enables filesystem-event change detection instead of
// per-cycle modification-time polling.
func WithWatcher() Option {
	return func(s *Store) {
		s.polling = false
	}
}

// Open creates a store rooted at root, which must be an existing
// directory.
func Open(root string, opts ...Option) (*Store, error) {
	info, err := os.Stat(root)
	if err != nil {
		return nil, errors.IO(errors.OpInit, root, err)
	}
	if !info.IsDir() {
		return nil, errors.New(errors.OpInit, errors.KindIO).
			Path(root).
			Detail("content root is not a directory").
			Build()
	}

	s := &Store{
		log:     zap.NewNop(),
		root:    filepath.Clean(root),
		handles: make(map[string]*Handle),
		dirty:   make(map[string]struct{}),
		cycle:   make(map[string]struct{}),
		done:    make(chan struct{}),
		polling: true,
	}
	for _, opt := range opts {
		opt(s)
	}

	if !s.polling {
		w, err := fsnotify.NewWatcher()
		if err != nil {
			return nil, errors.Wrap(errors.OpWatch, errors.KindIO, err, "creating filesystem watcher")
		}
		s.watcher = w
		s.watched = make(map[string]struct{})
		go s.watch()
	}
	return s, nil
}

// Root returns the cleaned content root.
func (s *Store) Root() string {
	return s.root
}

// Scan walks dir and returns a handle for every regular file whose
// name ends in one of exts (case-insensitive, dot included), in
// lexical walk order. Hidden files and directories are skipped. When a
// watcher is enabled every directory visited is added to it. A missing
// dir is not an error: a content root may legitimately lack some
// category directories.
func (s *Store) Scan(dir string, exts []string) ([]*Handle, error) {
	if s.isClosed() {
		return nil, errors.Closed(errors.OpScan, "store")
	}
	if _, err := os.Stat(dir); os.IsNotExist(err) {
		s.log.Debug("category directory absent", zap.String("dir", dir))
		return nil, nil
	}

	var out []*Handle
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		name := d.Name()
		if strings.HasPrefix(name, ".") && path != dir {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if d.IsDir() {
			s.addWatch(path)
			return nil
		}
		n := matchExt(name, exts)
		if n == 0 {
			return nil
		}
		out = append(out, s.handleFor(path, name[:len(name)-n]))
		return nil
	})
	if err != nil {
		return nil, errors.IO(errors.OpScan, dir, err)
	}
	return out, nil
}

// matchExt returns the length of the first extension in exts that name
// ends with, or 0. Extensions may span multiple dots (".clip.json").
func matchExt(name string, exts []string) int {
	lower := strings.ToLower(name)
	for _, e := range exts {
		if strings.HasSuffix(lower, e) {
			return len(e)
		}
	}
	return 0
}

// Handle returns the canonical handle for path, creating one on first
// use. The same cleaned path always yields the same handle.
func (s *Store) Handle(path string) *Handle {
	base := filepath.Base(path)
	base = strings.TrimSuffix(base, filepath.Ext(base))
	return s.handleFor(path, base)
}

func (s *Store) handleFor(path, base string) *Handle {
	clean := filepath.Clean(path)
	s.mu.Lock()
	defer s.mu.Unlock()
	if h, ok := s.handles[clean]; ok {
		return h
	}
	h := &Handle{st: s, path: clean, base: base}
	if info, err := os.Stat(clean); err == nil {
		h.mod = info.ModTime()
		h.size = info.Size()
	}
	s.handles[clean] = h
	return h
}

// Invalidate latches a change for path as if detection had reported
// one. The path must already have a handle; unknown paths are ignored.
func (s *Store) Invalidate(path string) {
	s.mark(filepath.Clean(path))
}

func (s *Store) mark(path string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	if _, known := s.handles[path]; !known {
		return
	}
	s.dirty[path] = struct{}{}
}

// BeginCycle freezes the pending change set for one refresh pass.
// Every Handle.NeedsRefresh query until EndCycle observes exactly the
// frozen set; changes latched while the cycle is open are kept for the
// next one. In polling mode the pending set is computed here by
// comparing modification times and sizes.
func (s *Store) BeginCycle() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	if s.polling {
		for path, h := range s.handles {
			info, err := os.Stat(path)
			if err != nil {
				continue // a vanished file is Exists' concern, not the latch's
			}
			if !info.ModTime().Equal(h.mod) || info.Size() != h.size {
				h.mod = info.ModTime()
				h.size = info.Size()
				s.dirty[path] = struct{}{}
			}
		}
	}
	s.cycle = s.dirty
	s.dirty = make(map[string]struct{})
}

// EndCycle discards the frozen set, consuming the changes it carried.
func (s *Store) EndCycle() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cycle = make(map[string]struct{})
}

func (s *Store) pending(path string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.cycle[path]
	return ok
}

func (s *Store) isClosed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.closed
}

// Close stops change detection and clears any pending changes.
// Handles stay usable for Exists checks; NeedsRefresh reads false
// after close.
func (s *Store) Close() error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return nil
	}
	s.closed = true
	s.dirty = make(map[string]struct{})
	s.cycle = make(map[string]struct{})
	w := s.watcher
	close(s.done)
	s.mu.Unlock()

	if w != nil {
		return w.Close()
	}
	return nil
}
