package registry

import (
	"go.uber.org/zap"

	assetregistry "github.com/riftlab/asset-registry"
	"github.com/riftlab/asset-registry/animation"
	"github.com/riftlab/asset-registry/asset"
	"github.com/riftlab/asset-registry/config"
	"github.com/riftlab/asset-registry/errors"
	"github.com/riftlab/asset-registry/material"
	"github.com/riftlab/asset-registry/mesh"
	"github.com/riftlab/asset-registry/sound"
	"github.com/riftlab/asset-registry/store"
	"github.com/riftlab/asset-registry/texture"
)

// Registry owns one asset table per category plus the material fanout
// index, and drives their shared lifecycle. All methods are meant for
// a single control goroutine; see the package documentation.
type Registry struct {
	cfg   *config.Config
	log   *zap.Logger
	state State

	st *store.Store

	meshDec mesh.Decoder
	texDec  texture.Decoder

	meshes     *asset.Table[*mesh.Mesh]
	textures   *asset.Table[*texture.Texture]
	materials  *asset.Table[*material.Material]
	animations *asset.Table[*animation.Clip]
	sounds     *asset.Table[*sound.Sound]

	fanout *asset.FanoutIndex

	matLoader *material.Loader
}

// Option configures a Registry before first use.
type Option func(*Registry)

// WithLogger routes registry diagnostics to l.
func WithLogger(l *zap.Logger) Option {
	return func(r *Registry) {
		if l != nil {
			r.log = l
		}
	}
}

// WithMeshDecoder swaps the scene decoder. The default reads Wavefront
// OBJ files.
func WithMeshDecoder(dec mesh.Decoder) Option {
	return func(r *Registry) {
		if dec != nil {
			r.meshDec = dec
		}
	}
}

// WithImageDecoder swaps the texture decoder. The default decodes
// through the linked-in image codecs (PNG, JPEG).
func WithImageDecoder(dec texture.Decoder) Option {
	return func(r *Registry) {
		if dec != nil {
			r.texDec = dec
		}
	}
}

// New creates an uninitialized registry for cfg. A nil cfg uses the
// defaults.
func New(cfg *config.Config, opts ...Option) *Registry {
	if cfg == nil {
		cfg = config.Default()
	}
	r := &Registry{
		cfg:     cfg,
		log:     zap.NewNop(),
		meshDec: mesh.NewOBJDecoder(),
		texDec:  texture.NewImageDecoder(),
		fanout:  asset.NewFanoutIndex(),
	}
	for _, opt := range opts {
		opt(r)
	}

	r.meshes = asset.NewTable[*mesh.Mesh](assetregistry.CategoryMesh, r.log)
	r.textures = asset.NewTable[*texture.Texture](assetregistry.CategoryTexture, r.log)
	r.materials = asset.NewTable[*material.Material](assetregistry.CategoryMaterial, r.log)
	r.animations = asset.NewTable[*animation.Clip](assetregistry.CategoryAnimation, r.log)
	r.sounds = asset.NewTable[*sound.Sound](assetregistry.CategorySound, r.log)
	r.matLoader = material.NewLoader(r.log)
	return r
}

// State returns the current lifecycle state.
func (r *Registry) State() State {
	return r.state
}

func (r *Registry) requireReady(op errors.Op) error {
	if r.state != StateReady {
		return errors.InvalidState(op, r.state.String())
	}
	return nil
}

// Mesh looks up a mesh by name and marks it used. A miss is an error
// by policy: it indicates a content contract violation, not a
// transient condition.
func (r *Registry) Mesh(name string) (*mesh.Mesh, error) {
	if err := r.requireReady(errors.OpLookup); err != nil {
		return nil, err
	}
	return r.meshes.Get(name)
}

// Texture looks up a texture by name and marks it used.
func (r *Registry) Texture(name string) (*texture.Texture, error) {
	if err := r.requireReady(errors.OpLookup); err != nil {
		return nil, err
	}
	return r.textures.Get(name)
}

// Material looks up a material by name and marks it used.
func (r *Registry) Material(name string) (*material.Material, error) {
	if err := r.requireReady(errors.OpLookup); err != nil {
		return nil, err
	}
	return r.materials.Get(name)
}

// Animation looks up an animation clip by name and marks it used.
func (r *Registry) Animation(name string) (*animation.Clip, error) {
	if err := r.requireReady(errors.OpLookup); err != nil {
		return nil, err
	}
	return r.animations.Get(name)
}

// Sound looks up a sound by name and marks it used.
func (r *Registry) Sound(name string) (*sound.Sound, error) {
	if err := r.requireReady(errors.OpLookup); err != nil {
		return nil, err
	}
	return r.sounds.Get(name)
}

// MustMesh is Mesh but panics on a miss.
func (r *Registry) MustMesh(name string) *mesh.Mesh {
	m, err := r.Mesh(name)
	if err != nil {
		panic(err)
	}
	return m
}

// MustTexture is Texture but panics on a miss.
func (r *Registry) MustTexture(name string) *texture.Texture {
	t, err := r.Texture(name)
	if err != nil {
		panic(err)
	}
	return t
}

// MustMaterial is Material but panics on a miss.
func (r *Registry) MustMaterial(name string) *material.Material {
	m, err := r.Material(name)
	if err != nil {
		panic(err)
	}
	return m
}

// MustAnimation is Animation but panics on a miss.
func (r *Registry) MustAnimation(name string) *animation.Clip {
	c, err := r.Animation(name)
	if err != nil {
		panic(err)
	}
	return c
}

// MustSound is Sound but panics on a miss.
func (r *Registry) MustSound(name string) *sound.Sound {
	s, err := r.Sound(name)
	if err != nil {
		panic(err)
	}
	return s
}

// Names returns the registered names for cat in load order, without
// marking anything used. Nil outside Ready.
func (r *Registry) Names(cat assetregistry.Category) []string {
	if r.state != StateReady {
		return nil
	}
	switch cat {
	case assetregistry.CategoryMesh:
		return r.meshes.Names()
	case assetregistry.CategoryTexture:
		return r.textures.Names()
	case assetregistry.CategoryMaterial:
		return r.materials.Names()
	case assetregistry.CategoryAnimation:
		return r.animations.Names()
	case assetregistry.CategorySound:
		return r.sounds.Names()
	}
	return nil
}

// Counts returns the number of loaded assets per category.
func (r *Registry) Counts() map[assetregistry.Category]int {
	return map[assetregistry.Category]int{
		assetregistry.CategoryMesh:      r.meshes.Len(),
		assetregistry.CategoryTexture:   r.textures.Len(),
		assetregistry.CategoryMaterial:  r.materials.Len(),
		assetregistry.CategoryAnimation: r.animations.Len(),
		assetregistry.CategorySound:     r.sounds.Len(),
	}
}
