package mesh

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const quadOBJ = `# unit quad
v 0 0 0
v 1 0 0
v 1 1 0
v 0 1 0
vt 0 0
vt 1 0
vt 1 1
vt 0 1
vn 0 0 1
f 1/1/1 2/2/1 3/3/1 4/4/1
`

func writeOBJ(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "scene.obj")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	return path
}

func decodeOBJ(t *testing.T, content string) *Scene {
	t.Helper()
	sc, err := NewOBJDecoder().Decode(writeOBJ(t, content))
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	return sc
}

func TestOBJDecodeQuad(t *testing.T) {
	sc := decodeOBJ(t, quadOBJ)
	defer sc.Close()

	if len(sc.Meshes) != 1 {
		t.Fatalf("meshes = %d, want 1", len(sc.Meshes))
	}
	m := sc.Meshes[0]
	if m.Name != "" {
		t.Errorf("name = %q, want unnamed", m.Name)
	}
	if len(m.Vertices) != 4 {
		t.Fatalf("vertices = %d, want 4 after dedup", len(m.Vertices))
	}
	if len(m.Indices) != 6 {
		t.Fatalf("indices = %d, want 6 for fan triangulation", len(m.Indices))
	}
	want := []uint32{0, 1, 2, 0, 2, 3}
	for i, idx := range m.Indices {
		if idx != want[i] {
			t.Fatalf("indices = %v, want %v", m.Indices, want)
		}
	}

	v1 := m.Vertices[1]
	if v1.Position != (Vec3{1, 0, 0}) {
		t.Errorf("vertex 1 position = %v", v1.Position)
	}
	if v1.UV != (Vec2{1, 0}) {
		t.Errorf("vertex 1 uv = %v", v1.UV)
	}
	if v1.Normal != (Vec3{0, 0, 1}) {
		t.Errorf("vertex 1 normal = %v", v1.Normal)
	}
}

func TestOBJMultiObject(t *testing.T) {
	sc := decodeOBJ(t, `
v 0 0 0
v 1 0 0
v 0 1 0
v 0 0 1
o lid
f 1 2 3
o base
f 1 2 4
`)
	defer sc.Close()

	if len(sc.Meshes) != 2 {
		t.Fatalf("meshes = %d, want 2", len(sc.Meshes))
	}
	if sc.Meshes[0].Name != "lid" || sc.Meshes[1].Name != "base" {
		t.Errorf("names = %q, %q", sc.Meshes[0].Name, sc.Meshes[1].Name)
	}
	if len(sc.Root.Children) != 2 {
		t.Fatalf("root children = %d, want 2", len(sc.Root.Children))
	}
	if sc.Root.Children[1].Name != "base" || sc.Root.Children[1].Meshes[0] != 1 {
		t.Errorf("hierarchy should mirror the object list")
	}
}

func TestOBJNegativeIndices(t *testing.T) {
	sc := decodeOBJ(t, `
v 0 0 0
v 1 0 0
v 0 1 0
f -3 -2 -1
`)
	defer sc.Close()

	if len(sc.Meshes) != 1 || len(sc.Meshes[0].Indices) != 3 {
		t.Fatal("negative indices should resolve relative to the end")
	}
	if sc.Meshes[0].Vertices[2].Position != (Vec3{0, 1, 0}) {
		t.Errorf("vertex 2 = %v", sc.Meshes[0].Vertices[2].Position)
	}
}

func TestOBJPositionOnlyFaces(t *testing.T) {
	sc := decodeOBJ(t, `
v 0 0 0
v 1 0 0
v 0 1 0
f 1 2 3
`)
	defer sc.Close()

	v := sc.Meshes[0].Vertices[0]
	if v.UV != (Vec2{}) || v.Normal != (Vec3{}) {
		t.Error("absent uv and normal records should decode as zero values")
	}
}

func TestOBJIgnoresUnknownDirectives(t *testing.T) {
	sc := decodeOBJ(t, `
mtllib scene.mtl
o thing
v 0 0 0
v 1 0 0
v 0 1 0
usemtl stone
s off
g group1
f 1 2 3
`)
	defer sc.Close()

	if len(sc.Meshes) != 1 || sc.Meshes[0].Name != "thing" {
		t.Fatal("material and grouping directives should not affect decoding")
	}
}

func TestOBJEmptyObjectDropped(t *testing.T) {
	sc := decodeOBJ(t, `
o ghost
o solid
v 0 0 0
v 1 0 0
v 0 1 0
f 1 2 3
`)
	defer sc.Close()

	if len(sc.Meshes) != 1 || sc.Meshes[0].Name != "solid" {
		t.Error("objects without faces should be dropped")
	}
}

func TestOBJMalformed(t *testing.T) {
	for name, content := range map[string]string{
		"bad float":      "v 0 zero 0\n",
		"short face":     "v 0 0 0\nv 1 0 0\nf 1 2\n",
		"unknown vertex": "v 0 0 0\nv 1 0 0\nv 0 1 0\nf 1 2 9\n",
		"zero index":     "v 0 0 0\nv 1 0 0\nv 0 1 0\nf 0 1 2\n",
	} {
		t.Run(name, func(t *testing.T) {
			_, err := NewOBJDecoder().Decode(writeOBJ(t, content))
			if err == nil {
				t.Fatal("expected a decode error")
			}
			if !strings.Contains(err.Error(), "line") && !strings.Contains(err.Error(), "decode") {
				t.Errorf("error should locate the problem, got %v", err)
			}
		})
	}
}

func TestOBJMissingFile(t *testing.T) {
	_, err := NewOBJDecoder().Decode(filepath.Join(t.TempDir(), "absent.obj"))
	if err == nil {
		t.Fatal("expected an error for a missing file")
	}
}

func TestSceneCloseIdempotent(t *testing.T) {
	sc := decodeOBJ(t, quadOBJ)

	kept := sc.Meshes[0].Vertices
	sc.Close()
	sc.Close()

	if !sc.Closed() {
		t.Error("Closed should report true")
	}
	if sc.Meshes != nil || sc.Root != nil {
		t.Error("Close should drop decoded buffers")
	}
	if len(kept) != 4 {
		t.Error("slices extracted before Close must stay valid")
	}
}
