package mesh

import (
	"slices"

	"github.com/riftlab/asset-registry/asset"
	"github.com/riftlab/asset-registry/store"
)

// QuadName is the registration name of the built-in unit quad.
const QuadName = "unit_quad"

// Unit quad geometry: a 1x1 face in the XY plane with +Z normals,
// counter-clockwise winding, UVs covering the full [0,1] range.
var (
	quadVertices = []Vertex{
		{Position: Vec3{0, 0, 0}, Normal: Vec3{0, 0, 1}, UV: Vec2{0, 0}},
		{Position: Vec3{1, 0, 0}, Normal: Vec3{0, 0, 1}, UV: Vec2{1, 0}},
		{Position: Vec3{1, 1, 0}, Normal: Vec3{0, 0, 1}, UV: Vec2{1, 1}},
		{Position: Vec3{0, 1, 0}, Normal: Vec3{0, 0, 1}, UV: Vec2{0, 1}},
	}
	quadIndices = []uint32{0, 1, 2, 0, 2, 3}
)

// UnitQuad returns the built-in fallback quad. It carries a builtin
// handle like every other asset, which keeps it out of reconciliation
// and the usage audit without special cases in the table.
func UnitQuad() *Mesh {
	return &Mesh{
		Base:     asset.NewBase(QuadName, store.Builtin(QuadName)),
		vertices: slices.Clone(quadVertices),
		indices:  slices.Clone(quadIndices),
	}
}
