package animation

import (
	"cmp"
	"os"
	"slices"

	"github.com/tidwall/gjson"

	assetregistry "github.com/riftlab/asset-registry"
	"github.com/riftlab/asset-registry/errors"
)

// Document is one parsed clip document. Name may be empty; the loader
// falls back to the file's base name.
type Document struct {
	Name     string
	Duration float64
	Tracks   []Track
}

// ParseDocument reads and parses the clip document at path.
func ParseDocument(path string) (Document, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return Document{}, errors.IO(errors.OpParse, path, err)
	}
	return ParseClip(raw, path)
}

// ParseClip parses JSON source into a normalized clip document: keys
// sorted by time, duration computed from the latest key when absent.
func ParseClip(raw []byte, path string) (Document, error) {
	if !gjson.ValidBytes(raw) {
		return Document{}, clipError(path).Detail("not valid JSON").Build()
	}
	root := gjson.ParseBytes(raw)

	doc := Document{
		Name:     root.Get("name").String(),
		Duration: root.Get("duration").Float(),
	}

	tracks := root.Get("tracks").Array()
	if len(tracks) == 0 {
		return Document{}, clipError(path).Name(doc.Name).Detail("clip has no tracks").Build()
	}
	doc.Tracks = make([]Track, 0, len(tracks))
	for i, tr := range tracks {
		keys := tr.Get("keys").Array()
		if len(keys) == 0 {
			return Document{}, clipError(path).Name(doc.Name).
				Detail("track %d has no keys", i).
				Build()
		}
		track := Track{
			Target:  tr.Get("target").String(),
			Channel: tr.Get("channel").String(),
			Keys:    make([]Key, 0, len(keys)),
		}
		for _, k := range keys {
			key := Key{Time: k.Get("time").Float()}
			for _, v := range k.Get("value").Array() {
				key.Value = append(key.Value, v.Float())
			}
			track.Keys = append(track.Keys, key)
		}
		doc.Tracks = append(doc.Tracks, track)
	}

	doc.normalize()
	return doc, nil
}

// normalize sorts every track's keys by time and derives the duration
// from the latest key when the document carries none.
func (d *Document) normalize() {
	for i := range d.Tracks {
		slices.SortStableFunc(d.Tracks[i].Keys, func(a, b Key) int {
			return cmp.Compare(a.Time, b.Time)
		})
	}
	if d.Duration > 0 {
		return
	}
	for _, tr := range d.Tracks {
		if n := len(tr.Keys); n > 0 && tr.Keys[n-1].Time > d.Duration {
			d.Duration = tr.Keys[n-1].Time
		}
	}
}

func clipError(path string) *errors.Builder {
	return errors.New(errors.OpParse, errors.KindInvalidDocument).
		Category(string(assetregistry.CategoryAnimation)).
		Path(path)
}
