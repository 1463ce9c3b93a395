package animation

import (
	"go.uber.org/zap"

	"github.com/riftlab/asset-registry/asset"
	"github.com/riftlab/asset-registry/mesh"
	"github.com/riftlab/asset-registry/store"
)

// Loader fills a clip table from scene-extracted clips and standalone
// clip documents.
type Loader struct {
	dec mesh.Decoder
	log *zap.Logger
}

// NewLoader creates a loader. dec re-decodes scene files when a
// scene-derived clip refreshes.
func NewLoader(dec mesh.Decoder, log *zap.Logger) *Loader {
	if log == nil {
		log = zap.NewNop()
	}
	return &Loader{dec: dec, log: log}
}

// LoadScenes registers clips the mesh loader extracted from scene
// files. Each clip shares its scene's handle; an unnamed clip falls
// back to the scene's base name.
func (l *Loader) LoadScenes(clips []mesh.ClipSource, tbl *asset.Table[*Clip]) {
	for _, cs := range clips {
		name := cs.Clip.Name
		if name == "" {
			name = cs.Handle.Base()
		}
		tbl.Insert(name, NewFromScene(name, cs.Handle, l.dec, cs.Clip))
	}
}

// LoadDocuments parses every clip document under dir into tbl. A
// document that fails to parse is logged and skipped.
func (l *Loader) LoadDocuments(st *store.Store, dir string, exts []string, tbl *asset.Table[*Clip]) error {
	handles, err := st.Scan(dir, exts)
	if err != nil {
		return err
	}

	for _, h := range handles {
		doc, err := ParseDocument(h.Path())
		if err != nil {
			l.log.Warn("clip document parse failed, skipping resource",
				zap.String("path", h.Path()),
				zap.Error(err))
			continue
		}
		name := doc.Name
		if name == "" {
			name = h.Base()
		}
		tbl.Insert(name, NewFromDocument(name, h, doc))
	}
	return nil
}
