package mesh

import (
	"strconv"

	"go.uber.org/zap"

	"github.com/riftlab/asset-registry/asset"
	"github.com/riftlab/asset-registry/store"
)

// ClipSource is an animation clip extracted from a scene file. The
// loader forwards these to the registry, which feeds them to the
// animation table; the clip shares its scene's handle, so a change to
// the scene file refreshes both the meshes and the clips it carries.
type ClipSource struct {
	Handle *store.Handle
	Clip   SceneClip
}

// Loader scans a directory for scene files and fills a mesh table.
type Loader struct {
	dec Decoder
	log *zap.Logger
}

// NewLoader creates a loader decoding scenes with dec.
func NewLoader(dec Decoder, log *zap.Logger) *Loader {
	if log == nil {
		log = zap.NewNop()
	}
	return &Loader{dec: dec, log: log}
}

// Load decodes every scene file under dir into tbl. A file holding a
// single mesh registers under the file's base name; a multi-object
// file registers one entry per object as base.object. Files that fail
// to decode or carry nothing usable are logged and skipped. Clips
// carried by scenes are returned for the animation table.
func (l *Loader) Load(st *store.Store, dir string, exts []string, tbl *asset.Table[*Mesh]) ([]ClipSource, error) {
	handles, err := st.Scan(dir, exts)
	if err != nil {
		return nil, err
	}

	var clips []ClipSource
	for _, h := range handles {
		scene, err := l.dec.Decode(h.Path())
		if err != nil {
			l.log.Warn("scene decode failed, skipping resource",
				zap.String("path", h.Path()),
				zap.Error(err))
			continue
		}
		clips = l.extract(h, scene, tbl, clips)
	}
	return clips, nil
}

// extract registers a scene's meshes and collects its clips, closing
// the scene on every path.
func (l *Loader) extract(h *store.Handle, scene *Scene, tbl *asset.Table[*Mesh], clips []ClipSource) []ClipSource {
	defer scene.Close()

	if len(scene.Meshes) == 0 && len(scene.Clips) == 0 {
		l.log.Warn("scene carries no usable assets, skipping resource",
			zap.String("path", h.Path()))
		return clips
	}

	single := len(scene.Meshes) == 1
	for i := range scene.Meshes {
		sm := scene.Meshes[i]
		name := h.Base()
		if !single {
			if sm.Name != "" {
				name += "." + sm.Name
			} else {
				name += "." + strconv.Itoa(i)
			}
		}
		tbl.Insert(name, New(name, h, l.dec, sm))
	}

	for _, c := range scene.Clips {
		clips = append(clips, ClipSource{Handle: h, Clip: c})
	}
	return clips
}
