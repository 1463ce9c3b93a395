package animation

import (
	"slices"

	assetregistry "github.com/riftlab/asset-registry"
	"github.com/riftlab/asset-registry/asset"
	"github.com/riftlab/asset-registry/errors"
	"github.com/riftlab/asset-registry/mesh"
)

// Key is one keyframe: a time in seconds and the channel's value at
// that time.
type Key struct {
	Time  float64
	Value []float64
}

// Track animates one channel of one target over a sorted key sequence.
type Track struct {
	Target  string
	Channel string
	Keys    []Key
}

// source reloads a clip's contents from its backing resource.
type source interface {
	load() (Document, error)
}

// Clip is a named animation: a duration and a set of keyframed tracks.
type Clip struct {
	asset.Base

	src      source
	duration float64
	tracks   []Track
}

// NewFromDocument builds a clip backed by a standalone clip document.
func NewFromDocument(name string, res asset.Resource, doc Document) *Clip {
	c := &Clip{
		Base: asset.NewBase(name, res),
		src:  &docSource{path: res.Path()},
	}
	c.apply(doc)
	return c
}

// NewFromScene builds a clip extracted from a scene file. The clip
// shares the scene's resource, so scene changes refresh it too.
func NewFromScene(name string, res asset.Resource, dec mesh.Decoder, sc mesh.SceneClip) *Clip {
	c := &Clip{
		Base: asset.NewBase(name, res),
		src: &sceneSource{
			dec:   dec,
			path:  res.Path(),
			asset: name,
			clip:  sc.Name,
		},
	}
	c.apply(fromScene(sc))
	return c
}

func (c *Clip) apply(doc Document) {
	c.duration = doc.Duration
	c.tracks = doc.Tracks
}

// Duration returns the clip length in seconds.
func (c *Clip) Duration() float64 {
	return c.duration
}

// Tracks returns the clip's tracks in document order.
func (c *Clip) Tracks() []Track {
	return c.tracks
}

// Track returns the track animating channel on target.
func (c *Clip) Track(target, channel string) (Track, bool) {
	for _, tr := range c.tracks {
		if tr.Target == target && tr.Channel == channel {
			return tr, true
		}
	}
	return Track{}, false
}

// Refresh reloads the clip from its source, keeping the previous keys
// on any failure.
func (c *Clip) Refresh() error {
	if c.Resource().Builtin() {
		return nil
	}
	doc, err := c.src.load()
	if err != nil {
		return err
	}
	c.apply(doc)
	return nil
}

// Release drops the keyframe payload.
func (c *Clip) Release() {
	c.tracks = nil
}

// docSource re-parses a standalone clip document. The document's own
// name field is ignored on refresh: the registered name is the clip's
// identity.
type docSource struct {
	path string
}

func (s *docSource) load() (Document, error) {
	return ParseDocument(s.path)
}

// sceneSource re-decodes a scene file and picks this clip out of it.
type sceneSource struct {
	dec   mesh.Decoder
	path  string
	asset string // registered name, for diagnostics
	clip  string // clip name inside the scene
}

func (s *sceneSource) load() (Document, error) {
	scene, err := s.dec.Decode(s.path)
	if err != nil {
		return Document{}, err
	}
	defer scene.Close()

	// A single-clip scene stays bound across a clip rename.
	if len(scene.Clips) == 1 {
		sc := scene.Clips[0]
		s.clip = sc.Name
		return fromScene(sc), nil
	}
	for _, sc := range scene.Clips {
		if sc.Name == s.clip {
			return fromScene(sc), nil
		}
	}
	return Document{}, errors.New(errors.OpRefresh, errors.KindNotFound).
		Category(string(assetregistry.CategoryAnimation)).
		Name(s.asset).
		Path(s.path).
		Detail("clip %q no longer in scene", s.clip).
		Build()
}

// fromScene converts decoder output into a normalized document.
func fromScene(sc mesh.SceneClip) Document {
	tracks := make([]Track, 0, len(sc.Tracks))
	for _, st := range sc.Tracks {
		keys := make([]Key, 0, len(st.Keys))
		for _, k := range st.Keys {
			keys = append(keys, Key{Time: k.Time, Value: slices.Clone(k.Value)})
		}
		tracks = append(tracks, Track{Target: st.Target, Channel: st.Channel, Keys: keys})
	}
	doc := Document{Name: sc.Name, Duration: sc.Duration, Tracks: tracks}
	doc.normalize()
	return doc
}
