package asset

import (
	"slices"

	"go.uber.org/zap"
)

// FanoutIndex records which asset names each definition resource
// currently produces, in definition order. The index and its table are
// reconciled together and agree after every SyncFanout or DropFanout:
// each name the index attributes to a resource is present in the
// table.
type FanoutIndex struct {
	names map[string][]string
	keys  []string
}

// NewFanoutIndex creates an empty index.
func NewFanoutIndex() *FanoutIndex {
	return &FanoutIndex{names: make(map[string][]string)}
}

// Resources returns the tracked resource keys in first-seen order.
func (f *FanoutIndex) Resources() []string {
	return slices.Clone(f.keys)
}

// Names returns the asset names key currently produces, in definition
// order.
func (f *FanoutIndex) Names(key string) []string {
	return slices.Clone(f.names[key])
}

// Len returns the number of tracked resources.
func (f *FanoutIndex) Len() int {
	return len(f.names)
}

func (f *FanoutIndex) set(key string, names []string) {
	if _, known := f.names[key]; !known {
		f.keys = append(f.keys, key)
	}
	f.names[key] = names
}

func (f *FanoutIndex) drop(key string) {
	delete(f.names, key)
	for i, k := range f.keys {
		if k == key {
			f.keys = append(f.keys[:i], f.keys[i+1:]...)
			return
		}
	}
}

// Definition pairs an asset name with its parsed definition payload.
type Definition[D any] struct {
	Name string
	Body D
}

// SyncFanout reconciles the set of assets one definition resource
// produces against defs, the resource's current parse. Names the
// resource already produced are updated in place so pointer holders
// keep their assets; new names are built and inserted; names missing
// from defs are released and removed.
//
// A name owned by a different resource is reported and skipped, and is
// not recorded in this resource's set, so a later sync of this
// resource can never remove the foreign owner's asset. The same rule
// applies to a name repeated within defs: the first occurrence wins.
//
// A failed build skips the definition; a failed update keeps the
// asset's previous contents. Both keep the rest of the document
// flowing.
func SyncFanout[T Asset, D any](tbl *Table[T], idx *FanoutIndex, key string, defs []Definition[D],
	build func(name string, body D) (T, error),
	update func(a T, body D) error,
) {
	prev := idx.Names(key)
	owned := make(map[string]bool, len(prev))
	for _, n := range prev {
		owned[n] = true
	}

	seen := make(map[string]bool, len(defs))
	next := make([]string, 0, len(defs))

	for _, d := range defs {
		if seen[d.Name] {
			tbl.log.Warn("name repeated within definition resource, keeping first",
				zap.String("category", string(tbl.category)),
				zap.String("name", d.Name),
				zap.String("path", key))
			continue
		}
		seen[d.Name] = true

		if a, ok := tbl.lookup(d.Name); ok {
			if owned[d.Name] {
				if err := update(a, d.Body); err != nil {
					tbl.log.Warn("definition update failed, keeping previous contents",
						zap.String("category", string(tbl.category)),
						zap.String("name", d.Name),
						zap.String("path", key),
						zap.Error(err))
				}
				next = append(next, d.Name)
				continue
			}
			tbl.log.Warn("duplicate asset name, keeping first registration",
				zap.String("category", string(tbl.category)),
				zap.String("name", d.Name),
				zap.String("path", key))
			continue
		}

		a, err := build(d.Name, d.Body)
		if err != nil {
			tbl.log.Warn("definition build failed, skipping",
				zap.String("category", string(tbl.category)),
				zap.String("name", d.Name),
				zap.String("path", key),
				zap.Error(err))
			continue
		}
		if tbl.Insert(d.Name, a) {
			next = append(next, d.Name)
		}
	}

	for _, name := range prev {
		if seen[name] {
			continue
		}
		if a, ok := tbl.lookup(name); ok {
			tbl.log.Debug("definition removed, dropping asset",
				zap.String("category", string(tbl.category)),
				zap.String("name", name),
				zap.String("path", key))
			a.Release()
			tbl.remove(name)
		}
	}

	idx.set(key, next)
}

// DropFanout releases and removes every asset key produced, then
// forgets the key. Used when a definition resource vanishes.
func DropFanout[T Asset](tbl *Table[T], idx *FanoutIndex, key string) {
	for _, name := range idx.Names(key) {
		if a, ok := tbl.lookup(name); ok {
			tbl.log.Debug("definition resource gone, dropping asset",
				zap.String("category", string(tbl.category)),
				zap.String("name", name),
				zap.String("path", key))
			a.Release()
			tbl.remove(name)
		}
	}
	idx.drop(key)
}
