package material

import (
	"go.uber.org/zap"

	"github.com/riftlab/asset-registry/asset"
	"github.com/riftlab/asset-registry/store"
)

// Loader scans a directory for material documents and fills a material
// table, recording in a fanout index which document produced which
// materials.
type Loader struct {
	log *zap.Logger
}

// NewLoader creates a loader.
func NewLoader(log *zap.Logger) *Loader {
	if log == nil {
		log = zap.NewNop()
	}
	return &Loader{log: log}
}

// Load parses every material document under dir into tbl and records
// the fanout in idx. A document that fails to parse is logged and
// skipped whole.
func (l *Loader) Load(st *store.Store, dir string, exts []string, tbl *asset.Table[*Material], idx *asset.FanoutIndex) error {
	handles, err := st.Scan(dir, exts)
	if err != nil {
		return err
	}

	for _, h := range handles {
		defs, err := ParseFile(h.Path())
		if err != nil {
			l.log.Warn("material document parse failed, skipping resource",
				zap.String("path", h.Path()),
				zap.Error(err))
			continue
		}
		l.sync(h, defs, tbl, idx)
	}
	return nil
}

// Reconcile brings tbl in line with document changes observed in the
// current store cycle. A vanished document drops the materials it
// produced; a changed one re-parses and syncs. When the re-parse fails
// the current materials stay as they are.
func (l *Loader) Reconcile(st *store.Store, tbl *asset.Table[*Material], idx *asset.FanoutIndex) {
	for _, key := range idx.Resources() {
		h := st.Handle(key)
		if !h.Exists() {
			l.log.Debug("material document removed", zap.String("path", key))
			asset.DropFanout(tbl, idx, key)
			continue
		}
		if !h.NeedsRefresh() {
			continue
		}

		defs, err := ParseFile(key)
		if err != nil {
			l.log.Warn("material document re-parse failed, keeping current materials",
				zap.String("path", key),
				zap.Error(err))
			continue
		}
		l.sync(h, defs, tbl, idx)
	}
}

func (l *Loader) sync(h *store.Handle, defs []Definition, tbl *asset.Table[*Material], idx *asset.FanoutIndex) {
	fan := make([]asset.Definition[Definition], 0, len(defs))
	for _, d := range defs {
		fan = append(fan, asset.Definition[Definition]{Name: d.Name, Body: d})
	}
	asset.SyncFanout(tbl, idx, h.Path(), fan,
		func(name string, body Definition) (*Material, error) {
			return New(name, h, body), nil
		},
		func(m *Material, body Definition) error {
			m.apply(body)
			return nil
		})
}
