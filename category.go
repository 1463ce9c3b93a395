package assetregistry

// Category identifies one of the asset kinds the registry manages.
// The set is closed: adding a category means adding a typed table, a
// loader, and accessors, so new values only appear alongside code that
// handles them.
type Category string

const (
	CategoryMesh      Category = "mesh"
	CategoryTexture   Category = "texture"
	CategoryMaterial  Category = "material"
	CategoryAnimation Category = "animation"
	CategorySound     Category = "sound"
)

// categories in load order. Meshes load before textures and materials,
// and scene-derived data (animation clips) loads after the scenes that
// carry it. Refresh and teardown walk the same order; only entries
// within a table drain in reverse.
var categories = []Category{
	CategoryMesh,
	CategoryTexture,
	CategoryMaterial,
	CategoryAnimation,
	CategorySound,
}

// Categories returns the managed categories in load order.
func Categories() []Category {
	out := make([]Category, len(categories))
	copy(out, categories)
	return out
}

// Valid reports whether c is one of the managed categories.
func (c Category) Valid() bool {
	switch c {
	case CategoryMesh, CategoryTexture, CategoryMaterial, CategoryAnimation, CategorySound:
		return true
	}
	return false
}

func (c Category) String() string {
	return string(c)
}
