package registry

import (
	"bytes"
	"context"
	"encoding/binary"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	assetregistry "github.com/riftlab/asset-registry"
	"github.com/riftlab/asset-registry/config"
	"github.com/riftlab/asset-registry/errors"
	"github.com/riftlab/asset-registry/mesh"
)

const crateOBJ = `v 0 0 0
v 1 0 0
v 1 1 0
v 0 1 0
f 1 2 3 4
`

const triOBJ = `v 0 0 0
v 1 0 0
v 0 1 0
f 1 2 3
`

const surfacesHCL = `
material "bricks" {
  diffuse   = "grid"
  shininess = 10
}

material "floor" {
  diffuse = "grid"
}
`

const walkJSON = `{
  "name": "walk",
  "duration": 1.5,
  "tracks": [{"target": "hip", "channel": "translation", "keys": [{"time": 0, "value": [0, 0, 0]}]}]
}`

func writeFile(t *testing.T, path string, data []byte) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

func pngBytes(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.RGBA{R: uint8(x * 40), G: uint8(y * 40), A: 255})
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("png: %v", err)
	}
	return buf.Bytes()
}

func wavBytes(t *testing.T, n int) []byte {
	t.Helper()
	var b bytes.Buffer
	dataSize := uint32(n * 2)
	b.WriteString("RIFF")
	binary.Write(&b, binary.LittleEndian, uint32(36+dataSize))
	b.WriteString("WAVE")
	b.WriteString("fmt ")
	binary.Write(&b, binary.LittleEndian, uint32(16))
	binary.Write(&b, binary.LittleEndian, uint16(1))
	binary.Write(&b, binary.LittleEndian, uint16(1))
	binary.Write(&b, binary.LittleEndian, uint32(8000))
	binary.Write(&b, binary.LittleEndian, uint32(16000))
	binary.Write(&b, binary.LittleEndian, uint16(2))
	binary.Write(&b, binary.LittleEndian, uint16(16))
	b.WriteString("data")
	binary.Write(&b, binary.LittleEndian, dataSize)
	binary.Write(&b, binary.LittleEndian, make([]int16, n))
	return b.Bytes()
}

// fullTree writes one resource per category and returns the root.
func fullTree(t *testing.T) string {
	t.Helper()
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "meshes", "crate.obj"), []byte(crateOBJ))
	writeFile(t, filepath.Join(root, "textures", "grid.png"), pngBytes(t, 2, 2))
	writeFile(t, filepath.Join(root, "materials", "surfaces.hcl"), []byte(surfacesHCL))
	writeFile(t, filepath.Join(root, "animations", "walk.clip.json"), []byte(walkJSON))
	writeFile(t, filepath.Join(root, "sounds", "blip.wav"), wavBytes(t, 8))
	return root
}

func testConfig(root string) *config.Config {
	cfg := config.Default()
	cfg.Root = root
	return cfg
}

func initialized(t *testing.T, root string, opts ...Option) *Registry {
	t.Helper()
	reg := New(testConfig(root), opts...)
	if err := reg.Initialize(context.Background()); err != nil {
		t.Fatalf("Initialize: %v", err)
	}
	return reg
}

func TestLifecycle(t *testing.T) {
	reg := initialized(t, fullTree(t))
	ctx := context.Background()

	if reg.State() != StateReady {
		t.Fatalf("state = %v, want ready", reg.State())
	}

	counts := reg.Counts()
	want := map[assetregistry.Category]int{
		assetregistry.CategoryMesh:      2, // unit quad + crate
		assetregistry.CategoryTexture:   1,
		assetregistry.CategoryMaterial:  2,
		assetregistry.CategoryAnimation: 1,
		assetregistry.CategorySound:     1,
	}
	for cat, n := range want {
		if counts[cat] != n {
			t.Errorf("%s count = %d, want %d", cat, counts[cat], n)
		}
	}

	names := reg.Names(assetregistry.CategoryMesh)
	if len(names) != 2 || names[0] != mesh.QuadName || names[1] != "crate" {
		t.Errorf("mesh names = %v, want [%s crate]", names, mesh.QuadName)
	}

	crate, err := reg.Mesh("crate")
	if err != nil {
		t.Fatalf("Mesh: %v", err)
	}
	if len(crate.Vertices()) != 4 {
		t.Errorf("crate vertices = %d, want 4", len(crate.Vertices()))
	}
	if _, err := reg.Texture("grid"); err != nil {
		t.Errorf("Texture: %v", err)
	}
	bricks, err := reg.Material("bricks")
	if err != nil {
		t.Fatalf("Material: %v", err)
	}
	if bricks.Diffuse() != "grid" || bricks.Shininess() != 10 {
		t.Errorf("bricks = %q/%v", bricks.Diffuse(), bricks.Shininess())
	}
	walk, err := reg.Animation("walk")
	if err != nil {
		t.Fatalf("Animation: %v", err)
	}
	if walk.Duration() != 1.5 {
		t.Errorf("walk duration = %v", walk.Duration())
	}
	if _, err := reg.Sound("blip"); err != nil {
		t.Errorf("Sound: %v", err)
	}

	if err := reg.Refresh(ctx); err != nil {
		t.Fatalf("Refresh: %v", err)
	}

	report, err := reg.Shutdown(ctx)
	if err != nil {
		t.Fatalf("Shutdown: %v", err)
	}
	if reg.State() != StateTerminated {
		t.Errorf("state = %v, want terminated", reg.State())
	}
	if len(report.Categories) != 5 {
		t.Fatalf("report categories = %d, want 5", len(report.Categories))
	}
	// Everything except floor was looked up; the builtin quad is exempt.
	if report.TotalUnused() != 1 {
		t.Errorf("unused = %d, want 1", report.TotalUnused())
	}
	mat := report.Categories[2]
	if mat.Category != assetregistry.CategoryMaterial || len(mat.Unused) != 1 || mat.Unused[0] != "floor" {
		t.Errorf("material audit = %+v", mat)
	}
}

func TestStateMachine(t *testing.T) {
	reg := New(testConfig(fullTree(t)))
	ctx := context.Background()

	if _, err := reg.Mesh("crate"); !errors.IsInvalidState(err) {
		t.Errorf("lookup before Initialize = %v, want invalid state", err)
	}
	if err := reg.Refresh(ctx); !errors.IsInvalidState(err) {
		t.Errorf("Refresh before Initialize = %v, want invalid state", err)
	}
	if _, err := reg.Shutdown(ctx); !errors.IsInvalidState(err) {
		t.Errorf("Shutdown before Initialize = %v, want invalid state", err)
	}

	if err := reg.Initialize(ctx); err != nil {
		t.Fatalf("Initialize: %v", err)
	}
	if err := reg.Initialize(ctx); !errors.IsInvalidState(err) {
		t.Errorf("second Initialize = %v, want invalid state", err)
	}

	if _, err := reg.Shutdown(ctx); err != nil {
		t.Fatalf("Shutdown: %v", err)
	}
	if _, err := reg.Shutdown(ctx); !errors.IsInvalidState(err) {
		t.Errorf("second Shutdown = %v, want invalid state", err)
	}
	if _, err := reg.Mesh("crate"); !errors.IsInvalidState(err) {
		t.Errorf("lookup after Shutdown = %v, want invalid state", err)
	}
	if err := reg.Refresh(ctx); !errors.IsInvalidState(err) {
		t.Errorf("Refresh after Shutdown = %v, want invalid state", err)
	}
}

func TestInitializeMissingRoot(t *testing.T) {
	reg := New(testConfig(filepath.Join(t.TempDir(), "absent")))
	if err := reg.Initialize(context.Background()); err == nil {
		t.Fatal("expected an error for a missing root")
	}
	if reg.State() != StateUninitialized {
		t.Errorf("state = %v, want uninitialized after a failed Initialize", reg.State())
	}
}

func TestRefreshInPlace(t *testing.T) {
	root := fullTree(t)
	reg := initialized(t, root)
	ctx := context.Background()
	defer reg.Shutdown(ctx)

	crate := reg.MustMesh("crate")
	grid := reg.MustTexture("grid")

	writeFile(t, filepath.Join(root, "meshes", "crate.obj"), []byte(triOBJ))
	writeFile(t, filepath.Join(root, "textures", "grid.png"), pngBytes(t, 4, 4))

	if err := reg.Refresh(ctx); err != nil {
		t.Fatalf("Refresh: %v", err)
	}

	if got := reg.MustMesh("crate"); got != crate {
		t.Error("refresh must preserve mesh identity")
	}
	if len(crate.Vertices()) != 3 {
		t.Errorf("crate vertices = %d, want 3 after refresh", len(crate.Vertices()))
	}
	if got := reg.MustTexture("grid"); got != grid {
		t.Error("refresh must preserve texture identity")
	}
	if grid.Width() != 4 {
		t.Errorf("grid width = %d, want 4 after refresh", grid.Width())
	}
}

func TestRefreshRemoval(t *testing.T) {
	root := fullTree(t)
	reg := initialized(t, root)
	ctx := context.Background()
	defer reg.Shutdown(ctx)

	if _, err := reg.Texture("grid"); err != nil {
		t.Fatalf("Texture: %v", err)
	}
	if err := os.Remove(filepath.Join(root, "textures", "grid.png")); err != nil {
		t.Fatalf("remove: %v", err)
	}

	if err := reg.Refresh(ctx); err != nil {
		t.Fatalf("Refresh: %v", err)
	}
	if _, err := reg.Texture("grid"); !errors.IsNotFound(err) {
		t.Errorf("removed texture lookup = %v, want not found", err)
	}
}

func TestRefreshQuiescentIsSilent(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	reg := initialized(t, fullTree(t), WithLogger(zap.New(core)))
	ctx := context.Background()
	defer reg.Shutdown(ctx)

	logs.TakeAll() // drop the initialize noise

	if err := reg.Refresh(ctx); err != nil {
		t.Fatalf("Refresh: %v", err)
	}
	if err := reg.Refresh(ctx); err != nil {
		t.Fatalf("Refresh: %v", err)
	}

	for _, e := range logs.All() {
		t.Errorf("quiescent refresh logged: %s", e.Message)
	}
}

func TestMaterialFanoutAcrossRefresh(t *testing.T) {
	root := fullTree(t)
	reg := initialized(t, root)
	ctx := context.Background()
	defer reg.Shutdown(ctx)

	floor := reg.MustMaterial("floor")

	rewritten := `
material "floor" {
  diffuse   = "grid"
  shininess = 80
}

material "glass" {
  diffuse = "grid"
}
`
	writeFile(t, filepath.Join(root, "materials", "surfaces.hcl"), []byte(rewritten))
	if err := reg.Refresh(ctx); err != nil {
		t.Fatalf("Refresh: %v", err)
	}

	if _, err := reg.Material("bricks"); !errors.IsNotFound(err) {
		t.Errorf("dropped definition lookup = %v, want not found", err)
	}
	if got := reg.MustMaterial("floor"); got != floor {
		t.Error("surviving definition must preserve identity")
	}
	if floor.Shininess() != 80 {
		t.Errorf("floor shininess = %v, want 80", floor.Shininess())
	}
	if _, err := reg.Material("glass"); err != nil {
		t.Errorf("added definition lookup failed: %v", err)
	}
}

func TestUnitQuadExemptFromAudit(t *testing.T) {
	// An empty root: the quad is the only asset anywhere.
	root := t.TempDir()
	reg := initialized(t, root)
	ctx := context.Background()

	if err := reg.Refresh(ctx); err != nil {
		t.Fatalf("Refresh: %v", err)
	}
	if _, err := reg.Mesh(mesh.QuadName); err != nil {
		t.Fatalf("the unit quad should always resolve: %v", err)
	}
	if _, err := reg.Shutdown(ctx); err != nil {
		t.Fatalf("Shutdown: %v", err)
	}

	reg2 := initialized(t, root)
	report, err := reg2.Shutdown(ctx)
	if err != nil {
		t.Fatalf("Shutdown: %v", err)
	}
	if report.TotalUnused() != 0 {
		t.Errorf("unused = %d, the never-used builtin quad must be exempt", report.TotalUnused())
	}
	if report.Categories[0].Loaded != 1 || report.Categories[0].Used != 0 {
		t.Errorf("mesh audit = %+v, want loaded 1 used 0", report.Categories[0])
	}
}

func TestMustPanicsOnMiss(t *testing.T) {
	reg := initialized(t, fullTree(t))
	defer reg.Shutdown(context.Background())

	defer func() {
		if recover() == nil {
			t.Error("MustMesh should panic on a miss")
		}
	}()
	reg.MustMesh("no_such_mesh")
}

// stubSceneDecoder serves whatever scene factory is currently
// installed, ignoring file contents.
type stubSceneDecoder struct {
	current func() *mesh.Scene
}

func (d *stubSceneDecoder) Decode(string) (*mesh.Scene, error) {
	return d.current(), nil
}

func walkerScene(verts int, dur float64) *mesh.Scene {
	vs := make([]mesh.Vertex, verts)
	return &mesh.Scene{
		Meshes: []mesh.SceneMesh{{Name: "body", Vertices: vs, Indices: []uint32{0, 1, 2}}},
		Clips: []mesh.SceneClip{{
			Name:     "walk",
			Duration: dur,
			Tracks: []mesh.SceneTrack{{
				Target:  "hip",
				Channel: "translation",
				Keys:    []mesh.SceneKey{{Time: 0, Value: []float64{0, 0, 0}}},
			}},
		}},
	}
}

func TestSceneChangeRefreshesMeshAndClip(t *testing.T) {
	root := t.TempDir()
	path := filepath.Join(root, "meshes", "walker.obj")
	writeFile(t, path, []byte("v1"))

	dec := &stubSceneDecoder{current: func() *mesh.Scene { return walkerScene(3, 1) }}
	reg := initialized(t, root, WithMeshDecoder(dec))
	ctx := context.Background()
	defer reg.Shutdown(ctx)

	body := reg.MustMesh("walker")
	walk := reg.MustAnimation("walk")
	if len(body.Vertices()) != 3 || walk.Duration() != 1 {
		t.Fatalf("initial load: %d verts, %v duration", len(body.Vertices()), walk.Duration())
	}

	// One file change refreshes both tables through the shared handle.
	dec.current = func() *mesh.Scene { return walkerScene(4, 2) }
	writeFile(t, path, []byte("v2 longer"))

	if err := reg.Refresh(ctx); err != nil {
		t.Fatalf("Refresh: %v", err)
	}
	if got := reg.MustMesh("walker"); got != body || len(body.Vertices()) != 4 {
		t.Errorf("mesh should refresh in place, got %d verts", len(body.Vertices()))
	}
	if got := reg.MustAnimation("walk"); got != walk || walk.Duration() != 2 {
		t.Errorf("clip should refresh in place, got %v", walk.Duration())
	}
}

func TestWatcherModeLifecycle(t *testing.T) {
	cfg := testConfig(fullTree(t))
	cfg.Watch = true

	reg := New(cfg)
	ctx := context.Background()
	if err := reg.Initialize(ctx); err != nil {
		t.Fatalf("Initialize: %v", err)
	}
	if err := reg.Refresh(ctx); err != nil {
		t.Fatalf("Refresh: %v", err)
	}
	if _, err := reg.Shutdown(ctx); err != nil {
		t.Fatalf("Shutdown: %v", err)
	}
}
