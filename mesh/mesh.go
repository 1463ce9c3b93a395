package mesh

import (
	assetregistry "github.com/riftlab/asset-registry"
	"github.com/riftlab/asset-registry/asset"
	"github.com/riftlab/asset-registry/errors"
)

// Mesh is a named triangle mesh. Vertices and Indices return views of
// the current geometry; a refresh replaces the backing arrays, so
// consumers that cache slices re-read them after a refresh pass.
type Mesh struct {
	asset.Base

	dec      Decoder
	object   string // object name within the scene file
	vertices []Vertex
	indices  []uint32
}

// New assembles a mesh asset from extracted scene data. dec is kept
// for refreshes and re-reads the resource's path.
func New(name string, res asset.Resource, dec Decoder, sm SceneMesh) *Mesh {
	return &Mesh{
		Base:     asset.NewBase(name, res),
		dec:      dec,
		object:   sm.Name,
		vertices: sm.Vertices,
		indices:  sm.Indices,
	}
}

// Vertices returns the current vertex data.
func (m *Mesh) Vertices() []Vertex {
	return m.vertices
}

// Indices returns the current triangle indices.
func (m *Mesh) Indices() []uint32 {
	return m.indices
}

// Triangles returns the triangle count.
func (m *Mesh) Triangles() int {
	return len(m.indices) / 3
}

// Refresh re-decodes the backing scene file and swaps in this mesh's
// new geometry. When the file holds a single mesh it is taken
// regardless of its object name, so renaming the object in a
// one-object file re-binds cleanly. On any failure the previous
// geometry stays current.
func (m *Mesh) Refresh() error {
	res := m.Resource()
	if res.Builtin() {
		return nil
	}

	scene, err := m.dec.Decode(res.Path())
	if err != nil {
		return errors.Wrap(errors.OpRefresh, errors.KindDecodeFailed, err, "re-decoding scene")
	}
	defer scene.Close()

	if len(scene.Meshes) == 1 {
		m.object = scene.Meshes[0].Name
		m.vertices = scene.Meshes[0].Vertices
		m.indices = scene.Meshes[0].Indices
		return nil
	}
	for i := range scene.Meshes {
		if scene.Meshes[i].Name == m.object {
			m.vertices = scene.Meshes[i].Vertices
			m.indices = scene.Meshes[i].Indices
			return nil
		}
	}
	return errors.New(errors.OpRefresh, errors.KindNotFound).
		Category(string(assetregistry.CategoryMesh)).
		Name(m.Name()).
		Path(res.Path()).
		Detail("object %q no longer in scene", m.object).
		Build()
}

// Release drops the decoded geometry.
func (m *Mesh) Release() {
	m.vertices = nil
	m.indices = nil
}
