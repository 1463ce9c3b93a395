package asset

import (
	"slices"

	"go.uber.org/zap"

	assetregistry "github.com/riftlab/asset-registry"
	"github.com/riftlab/asset-registry/errors"
)

// Table stores one category of assets by name, remembering load order.
// It is not synchronized: the registry owns all tables from a single
// goroutine.
type Table[T Asset] struct {
	category assetregistry.Category
	log      *zap.Logger
	entries  map[string]T
	order    []string
}

// NewTable creates an empty table for category. A nil logger disables
// table diagnostics.
func NewTable[T Asset](category assetregistry.Category, log *zap.Logger) *Table[T] {
	if log == nil {
		log = zap.NewNop()
	}
	return &Table[T]{
		category: category,
		log:      log,
		entries:  make(map[string]T),
	}
}

// Category returns the category the table stores.
func (t *Table[T]) Category() assetregistry.Category {
	return t.category
}

// Len returns the number of registered assets.
func (t *Table[T]) Len() int {
	return len(t.entries)
}

// Names returns the registered names in load order.
func (t *Table[T]) Names() []string {
	return slices.Clone(t.order)
}

// Get returns the asset registered under name and marks it used. A
// miss returns a not-found error and leaves the table untouched.
func (t *Table[T]) Get(name string) (T, error) {
	a, ok := t.entries[name]
	if !ok {
		var zero T
		return zero, errors.NotFound(errors.OpLookup, string(t.category), name)
	}
	a.MarkUsed()
	return a, nil
}

// Insert registers a under name. The first registration of a name
// wins: a duplicate is logged, released, and discarded.
func (t *Table[T]) Insert(name string, a T) bool {
	if _, exists := t.entries[name]; exists {
		t.log.Warn("duplicate asset name, keeping first registration",
			zap.String("category", string(t.category)),
			zap.String("name", name),
			zap.String("path", a.Resource().Path()))
		a.Release()
		return false
	}
	t.entries[name] = a
	t.order = append(t.order, name)
	return true
}

// Each calls fn for every asset in load order until fn returns false.
// It does not mark assets used.
func (t *Table[T]) Each(fn func(name string, a T) bool) {
	for _, name := range t.order {
		if a, ok := t.entries[name]; ok {
			if !fn(name, a) {
				return
			}
		}
	}
}

// Reconcile walks the table in reverse load order over a snapshot of
// its names. An entry whose resource vanished is released and removed;
// an entry whose resource changed is refreshed in place. A failed
// refresh is logged and the previous contents stay current. Builtin
// entries always exist and are never dirty, so they pass through
// untouched.
func (t *Table[T]) Reconcile() {
	names := slices.Clone(t.order)
	for i := len(names) - 1; i >= 0; i-- {
		name := names[i]
		a, ok := t.entries[name]
		if !ok {
			continue
		}
		res := a.Resource()
		switch {
		case !res.Exists():
			t.log.Debug("resource gone, removing asset",
				zap.String("category", string(t.category)),
				zap.String("name", name),
				zap.String("path", res.Path()))
			a.Release()
			t.remove(name)
		case res.NeedsRefresh():
			if err := a.Refresh(); err != nil {
				t.log.Warn("asset refresh failed, keeping previous contents",
					zap.String("category", string(t.category)),
					zap.String("name", name),
					zap.String("path", res.Path()),
					zap.Error(err))
				continue
			}
			t.log.Debug("asset refreshed",
				zap.String("category", string(t.category)),
				zap.String("name", name))
		}
	}
}

// Drain releases every asset in reverse load order and empties the
// table. Assets never marked used are logged and returned in emission
// order; builtin assets are exempt from the audit.
func (t *Table[T]) Drain() []string {
	var unused []string
	for i := len(t.order) - 1; i >= 0; i-- {
		name := t.order[i]
		a, ok := t.entries[name]
		if !ok {
			continue
		}
		if !a.Used() && !a.Resource().Builtin() {
			t.log.Warn("asset loaded but never used",
				zap.String("category", string(t.category)),
				zap.String("name", name))
			unused = append(unused, name)
		}
		a.Release()
	}
	t.entries = make(map[string]T)
	t.order = nil
	return unused
}

// Compact rebuilds the name index to the table's exact size. Called
// once after the initial load, when the table stops growing.
func (t *Table[T]) Compact() {
	entries := make(map[string]T, len(t.entries))
	for k, v := range t.entries {
		entries[k] = v
	}
	t.entries = entries
	t.order = slices.Clip(t.order)
}

// lookup returns the asset under name without marking it used.
func (t *Table[T]) lookup(name string) (T, bool) {
	a, ok := t.entries[name]
	return a, ok
}

func (t *Table[T]) remove(name string) {
	delete(t.entries, name)
	for i, n := range t.order {
		if n == name {
			t.order = append(t.order[:i], t.order[i+1:]...)
			return
		}
	}
}
