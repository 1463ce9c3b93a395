package material

import (
	"os"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/zclconf/go-cty/cty"

	assetregistry "github.com/riftlab/asset-registry"
	"github.com/riftlab/asset-registry/errors"
)

// defaultShininess applies when a block omits the attribute.
const defaultShininess = 16

// Definition is one material block translated out of HCL.
type Definition struct {
	Name      string
	Diffuse   string
	Normal    string
	Shininess float64
	Tint      []float64 // empty or exactly three components
	Params    map[string]cty.Value
}

func (d Definition) tint() [3]float64 {
	if len(d.Tint) == 3 {
		return [3]float64{d.Tint[0], d.Tint[1], d.Tint[2]}
	}
	return [3]float64{1, 1, 1}
}

type fileRoot struct {
	Materials []*materialBlock `hcl:"material,block"`
	Remain    hcl.Body         `hcl:",remain"`
}

type materialBlock struct {
	Name      string       `hcl:"name,label"`
	Diffuse   string       `hcl:"diffuse"`
	Normal    string       `hcl:"normal,optional"`
	Shininess *float64     `hcl:"shininess,optional"`
	Tint      []float64    `hcl:"tint,optional"`
	Params    *paramsBlock `hcl:"params,block"`
}

type paramsBlock struct {
	Remain hcl.Body `hcl:",remain"`
}

// ParseFile reads and parses the material document at path.
func ParseFile(path string) ([]Definition, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.IO(errors.OpParse, path, err)
	}
	return ParseDefinitions(src, path)
}

// ParseDefinitions parses HCL source into material definitions, in
// document order. The document parses as a unit: any invalid block
// fails the whole parse.
func ParseDefinitions(src []byte, filename string) ([]Definition, error) {
	file, diags := hclparse.NewParser().ParseHCL(src, filename)
	if diags.HasErrors() {
		return nil, errors.ParseFailed(filename, diags)
	}

	var root fileRoot
	if diags := gohcl.DecodeBody(file.Body, nil, &root); diags.HasErrors() {
		return nil, errors.ParseFailed(filename, diags)
	}

	defs := make([]Definition, 0, len(root.Materials))
	for _, blk := range root.Materials {
		def, err := translate(blk, filename)
		if err != nil {
			return nil, err
		}
		defs = append(defs, def)
	}
	return defs, nil
}

func translate(blk *materialBlock, filename string) (Definition, error) {
	if blk.Name == "" {
		return Definition{}, docError(filename, blk.Name).
			Detail("material block with empty label").
			Build()
	}
	if blk.Diffuse == "" {
		return Definition{}, docError(filename, blk.Name).
			Detail("diffuse texture is required").
			Build()
	}
	if n := len(blk.Tint); n != 0 && n != 3 {
		return Definition{}, docError(filename, blk.Name).
			Detail("tint needs exactly 3 components, got %d", n).
			Build()
	}

	def := Definition{
		Name:      blk.Name,
		Diffuse:   blk.Diffuse,
		Normal:    blk.Normal,
		Shininess: defaultShininess,
		Tint:      blk.Tint,
	}
	if blk.Shininess != nil {
		def.Shininess = *blk.Shininess
	}
	if blk.Params != nil {
		params, err := paramValues(blk.Params.Remain, filename, blk.Name)
		if err != nil {
			return Definition{}, err
		}
		def.Params = params
	}
	return def, nil
}

// paramValues evaluates the free-form params attributes. Expressions
// must be constant: no variables or functions are in scope.
func paramValues(body hcl.Body, filename, name string) (map[string]cty.Value, error) {
	attrs, diags := body.JustAttributes()
	if diags.HasErrors() {
		return nil, errors.ParseFailed(filename, diags)
	}
	if len(attrs) == 0 {
		return nil, nil
	}

	out := make(map[string]cty.Value, len(attrs))
	for attrName, attr := range attrs {
		v, diags := attr.Expr.Value(nil)
		if diags.HasErrors() {
			return nil, docError(filename, name).
				Cause(diags).
				Detail("param %q does not evaluate to a constant", attrName).
				Build()
		}
		out[attrName] = v
	}
	return out, nil
}

func docError(filename, name string) *errors.Builder {
	return errors.New(errors.OpParse, errors.KindInvalidDocument).
		Category(string(assetregistry.CategoryMaterial)).
		Name(name).
		Path(filename)
}
