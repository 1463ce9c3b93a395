package sound

import (
	"go.uber.org/zap"

	"github.com/riftlab/asset-registry/asset"
	"github.com/riftlab/asset-registry/store"
)

// Loader scans a directory for WAV files and fills a sound table.
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

// Load decodes every WAV file under dir into tbl, one sound per file
// named after its base name. Files that fail to decode are logged and
// skipped.
func (l *Loader) Load(st *store.Store, dir string, exts []string, tbl *asset.Table[*Sound]) error {
	handles, err := st.Scan(dir, exts)
	if err != nil {
		return err
	}

	for _, h := range handles {
		buf, err := DecodeFile(h.Path())
		if err != nil {
			l.log.Warn("sound decode failed, skipping resource",
				zap.String("path", h.Path()),
				zap.Error(err))
			continue
		}
		tbl.Insert(h.Base(), New(h.Base(), h, buf))
	}
	return nil
}
