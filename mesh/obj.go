package mesh

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/riftlab/asset-registry/errors"
)

// OBJDecoder reads Wavefront OBJ scene files. The subset covers what
// asset pipelines export: v, vt, and vn records, o object splits, and
// f faces in any of the three index forms, triangulated as a fan.
// Grouping, smoothing, and material directives are ignored.
type OBJDecoder struct{}

// NewOBJDecoder returns a decoder for .obj scene files.
func NewOBJDecoder() *OBJDecoder {
	return &OBJDecoder{}
}

// Decode parses the file at path into a scene. Faces written before
// any o directive form an unnamed object.
func (d *OBJDecoder) Decode(path string) (*Scene, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.IO(errors.OpDecode, path, err)
	}
	defer f.Close()

	b := &objBuilder{}
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	line := 0
	for scanner.Scan() {
		line++
		if err := b.feed(scanner.Text()); err != nil {
			return nil, errors.New(errors.OpDecode, errors.KindDecodeFailed).
				Path(path).
				Detail("line %d: %v", line, err).
				Build()
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.IO(errors.OpDecode, path, err)
	}
	return b.scene(), nil
}

type objRef struct {
	v, vt, vn int // 1-based, negative counts from the end, 0 absent
}

type objObject struct {
	name  string
	verts []Vertex
	index []uint32
	dedup map[objRef]uint32
}

type objBuilder struct {
	positions []Vec3
	uvs       []Vec2
	normals   []Vec3
	objects   []*objObject
	current   *objObject
}

func (b *objBuilder) feed(raw string) error {
	line := strings.TrimSpace(raw)
	if line == "" || strings.HasPrefix(line, "#") {
		return nil
	}
	fields := strings.Fields(line)
	switch fields[0] {
	case "v":
		p, err := parseVec3(fields[1:])
		if err != nil {
			return err
		}
		b.positions = append(b.positions, p)
	case "vt":
		uv, err := parseVec2(fields[1:])
		if err != nil {
			return err
		}
		b.uvs = append(b.uvs, uv)
	case "vn":
		n, err := parseVec3(fields[1:])
		if err != nil {
			return err
		}
		b.normals = append(b.normals, n)
	case "o":
		name := ""
		if len(fields) > 1 {
			name = fields[1]
		}
		b.startObject(name)
	case "f":
		if len(fields) < 4 {
			return fmt.Errorf("face needs at least 3 vertices")
		}
		obj := b.ensureObject()
		refs := make([]uint32, 0, len(fields)-1)
		for _, s := range fields[1:] {
			r, err := parseFaceRef(s)
			if err != nil {
				return err
			}
			vi, err := obj.vertexIndex(b, r)
			if err != nil {
				return err
			}
			refs = append(refs, vi)
		}
		for i := 2; i < len(refs); i++ {
			obj.index = append(obj.index, refs[0], refs[i-1], refs[i])
		}
	}
	return nil
}

func (b *objBuilder) startObject(name string) {
	o := &objObject{name: name, dedup: make(map[objRef]uint32)}
	b.objects = append(b.objects, o)
	b.current = o
}

func (b *objBuilder) ensureObject() *objObject {
	if b.current == nil {
		b.startObject("")
	}
	return b.current
}

// scene assembles the result, dropping objects that declared a name
// but no geometry.
func (b *objBuilder) scene() *Scene {
	sc := &Scene{Root: &SceneNode{}}
	for _, o := range b.objects {
		if len(o.index) == 0 {
			continue
		}
		i := len(sc.Meshes)
		sc.Meshes = append(sc.Meshes, SceneMesh{Name: o.name, Vertices: o.verts, Indices: o.index})
		sc.Root.Children = append(sc.Root.Children, &SceneNode{Name: o.name, Meshes: []int{i}})
	}
	return sc
}

// vertexIndex resolves an OBJ face reference to an index in the
// object's vertex array, deduplicating identical position/uv/normal
// triples.
func (o *objObject) vertexIndex(b *objBuilder, r objRef) (uint32, error) {
	if i, ok := o.dedup[r]; ok {
		return i, nil
	}
	var v Vertex
	pi, ok := resolveIndex(r.v, len(b.positions))
	if !ok {
		return 0, fmt.Errorf("face references position %d of %d", r.v, len(b.positions))
	}
	v.Position = b.positions[pi]
	if r.vt != 0 {
		ti, ok := resolveIndex(r.vt, len(b.uvs))
		if !ok {
			return 0, fmt.Errorf("face references uv %d of %d", r.vt, len(b.uvs))
		}
		v.UV = b.uvs[ti]
	}
	if r.vn != 0 {
		ni, ok := resolveIndex(r.vn, len(b.normals))
		if !ok {
			return 0, fmt.Errorf("face references normal %d of %d", r.vn, len(b.normals))
		}
		v.Normal = b.normals[ni]
	}
	i := uint32(len(o.verts))
	o.verts = append(o.verts, v)
	o.dedup[r] = i
	return i, nil
}

// resolveIndex maps a 1-based or negative-relative OBJ index onto a
// slice of the given length.
func resolveIndex(n, length int) (int, bool) {
	if n > 0 {
		if n > length {
			return 0, false
		}
		return n - 1, true
	}
	i := length + n
	if i < 0 {
		return 0, false
	}
	return i, true
}

func parseFaceRef(s string) (objRef, error) {
	parts := strings.Split(s, "/")
	if len(parts) > 3 {
		return objRef{}, fmt.Errorf("bad face reference %q", s)
	}
	var r objRef
	var err error
	if r.v, err = parseRefIndex(parts[0], true); err != nil {
		return objRef{}, fmt.Errorf("bad face reference %q", s)
	}
	if len(parts) > 1 {
		if r.vt, err = parseRefIndex(parts[1], false); err != nil {
			return objRef{}, fmt.Errorf("bad face reference %q", s)
		}
	}
	if len(parts) > 2 {
		if r.vn, err = parseRefIndex(parts[2], false); err != nil {
			return objRef{}, fmt.Errorf("bad face reference %q", s)
		}
	}
	return r, nil
}

func parseRefIndex(s string, required bool) (int, error) {
	if s == "" {
		if required {
			return 0, fmt.Errorf("missing index")
		}
		return 0, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil || n == 0 {
		return 0, fmt.Errorf("bad index %q", s)
	}
	return n, nil
}

func parseVec3(fields []string) (Vec3, error) {
	if len(fields) < 3 {
		return Vec3{}, fmt.Errorf("expected 3 components, got %d", len(fields))
	}
	var out [3]float32
	for i := 0; i < 3; i++ {
		f, err := strconv.ParseFloat(fields[i], 32)
		if err != nil {
			return Vec3{}, fmt.Errorf("bad float %q", fields[i])
		}
		out[i] = float32(f)
	}
	return Vec3{out[0], out[1], out[2]}, nil
}

func parseVec2(fields []string) (Vec2, error) {
	if len(fields) < 2 {
		return Vec2{}, fmt.Errorf("expected 2 components, got %d", len(fields))
	}
	var out [2]float32
	for i := 0; i < 2; i++ {
		f, err := strconv.ParseFloat(fields[i], 32)
		if err != nil {
			return Vec2{}, fmt.Errorf("bad float %q", fields[i])
		}
		out[i] = float32(f)
	}
	return Vec2{out[0], out[1]}, nil
}
