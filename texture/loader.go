package texture

import (
	"go.uber.org/zap"

	"github.com/riftlab/asset-registry/asset"
	"github.com/riftlab/asset-registry/store"
)

// Loader scans a directory for image files and fills a texture table.
type Loader struct {
	dec Decoder
	log *zap.Logger
}

// NewLoader creates a loader decoding images with dec.
func NewLoader(dec Decoder, log *zap.Logger) *Loader {
	if log == nil {
		log = zap.NewNop()
	}
	return &Loader{dec: dec, log: log}
}

// Load decodes every image under dir into tbl, one texture per file
// named after its base name. Files that fail to decode are logged and
// skipped.
func (l *Loader) Load(st *store.Store, dir string, exts []string, tbl *asset.Table[*Texture]) error {
	handles, err := st.Scan(dir, exts)
	if err != nil {
		return err
	}
	for _, h := range handles {
		img, err := l.dec.Decode(h.Path())
		if err != nil {
			l.log.Warn("texture decode failed, skipping resource",
				zap.String("path", h.Path()),
				zap.Error(err))
			continue
		}
		name := h.Base()
		tbl.Insert(name, New(name, h, l.dec, img))
	}
	return nil
}
