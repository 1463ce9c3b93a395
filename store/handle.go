package store

import (
	"os"
	"time"
)

// Handle is the stable identity of one resource file. Handles are
// canonical per cleaned path: every asset backed by the same file
// shares the same handle, so all tables in a refresh pass agree on
// whether the file changed.
type Handle struct {
	st      *Store
	path    string
	base    string
	builtin bool

	// polling state, guarded by st.mu
	mod  time.Time
	size int64
}

// Builtin returns a handle for an asset with no backing file. It
// always exists and never reports a pending change, which keeps
// built-in assets out of reconciliation entirely.
func Builtin(name string) *Handle {
	return &Handle{base: name, builtin: true}
}

// Path returns the cleaned path of the backing file. It is empty for
// built-in handles.
func (h *Handle) Path() string {
	return h.path
}

// Base returns the file name with directory and matched extension
// stripped. Loaders use it as the default asset name.
func (h *Handle) Base() string {
	return h.base
}

// Builtin reports whether the handle is synthetic.
func (h *Handle) Builtin() bool {
	return h.builtin
}

// Exists reports whether the backing file is still present on disk.
func (h *Handle) Exists() bool {
	if h.builtin {
		return true
	}
	_, err := os.Stat(h.path)
	return err == nil
}

// NeedsRefresh reports whether a change to the backing file has been
// latched and frozen for the current refresh cycle. It answers true
// for every query between BeginCycle and EndCycle of the cycle that
// consumes the change, and false outside one.
func (h *Handle) NeedsRefresh() bool {
	if h.builtin {
		return false
	}
	return h.st.pending(h.path)
}
