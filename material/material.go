package material

import (
	"slices"

	"github.com/zclconf/go-cty/cty"

	assetregistry "github.com/riftlab/asset-registry"
	"github.com/riftlab/asset-registry/asset"
	"github.com/riftlab/asset-registry/errors"
)

// Material is a named shading definition: texture references, scalar
// surface parameters, and a free-form params table for shader
// uniforms.
type Material struct {
	asset.Base

	diffuse   string
	normal    string
	shininess float64
	tint      [3]float64
	params    map[string]cty.Value
}

// New builds a material from a parsed definition.
func New(name string, res asset.Resource, def Definition) *Material {
	m := &Material{Base: asset.NewBase(name, res)}
	m.apply(def)
	return m
}

// apply overwrites the material's contents from def, preserving its
// identity for pointer holders.
func (m *Material) apply(def Definition) {
	m.diffuse = def.Diffuse
	m.normal = def.Normal
	m.shininess = def.Shininess
	m.tint = def.tint()
	m.params = def.Params
}

// Diffuse returns the diffuse texture name.
func (m *Material) Diffuse() string {
	return m.diffuse
}

// Normal returns the normal map texture name, empty when absent.
func (m *Material) Normal() string {
	return m.normal
}

// Shininess returns the specular exponent.
func (m *Material) Shininess() float64 {
	return m.shininess
}

// Tint returns the RGB tint. White when the definition omits it.
func (m *Material) Tint() [3]float64 {
	return m.tint
}

// Param returns a free-form parameter by name.
func (m *Material) Param(name string) (cty.Value, bool) {
	v, ok := m.params[name]
	return v, ok
}

// FloatParam returns a numeric free-form parameter as a float64.
func (m *Material) FloatParam(name string) (float64, bool) {
	v, ok := m.params[name]
	if !ok || v.Type() != cty.Number {
		return 0, false
	}
	f, _ := v.AsBigFloat().Float64()
	return f, true
}

// ParamNames returns the free-form parameter names, sorted.
func (m *Material) ParamNames() []string {
	names := make([]string, 0, len(m.params))
	for name := range m.params {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// Refresh re-parses this material's document and reapplies its own
// definition. The registry reconciles whole documents through the
// loader instead; this path serves direct single-asset use and keeps
// the previous contents on any failure.
func (m *Material) Refresh() error {
	res := m.Resource()
	if res.Builtin() {
		return nil
	}
	defs, err := ParseFile(res.Path())
	if err != nil {
		return err
	}
	for _, d := range defs {
		if d.Name == m.Name() {
			m.apply(d)
			return nil
		}
	}
	return errors.New(errors.OpRefresh, errors.KindNotFound).
		Category(string(assetregistry.CategoryMaterial)).
		Name(m.Name()).
		Path(res.Path()).
		Detail("definition no longer in document").
		Build()
}

// Release drops the definition payload.
func (m *Material) Release() {
	m.params = nil
	m.diffuse = ""
	m.normal = ""
}
