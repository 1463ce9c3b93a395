package mesh

// Vec2 is a 2-component float vector.
type Vec2 struct {
	X, Y float32
}

// Vec3 is a 3-component float vector.
type Vec3 struct {
	X, Y, Z float32
}

// Vertex is the interleaved vertex layout extracted from scenes.
type Vertex struct {
	Position Vec3
	Normal   Vec3
	UV       Vec2
}

// SceneMesh is one mesh extracted from a decoded scene.
type SceneMesh struct {
	Name     string // object name within the file, empty when unnamed
	Vertices []Vertex
	Indices  []uint32
}

// SceneKey is one keyframe of a scene animation track.
type SceneKey struct {
	Time  float64
	Value []float64
}

// SceneTrack animates one channel of one target node.
type SceneTrack struct {
	Target  string
	Channel string
	Keys    []SceneKey
}

// SceneClip is one animation clip carried by a scene file. OBJ scenes
// never carry clips; the field exists for decoders of richer formats.
type SceneClip struct {
	Name     string
	Duration float64
	Tracks   []SceneTrack
}

// SceneNode is one node of the decoded scene hierarchy. OBJ files are
// flat, so their root's children mirror the object list.
type SceneNode struct {
	Name     string
	Meshes   []int // indices into Scene.Meshes
	Children []*SceneNode
}

// Scene holds everything one decode produced. A scene borrows decoder
// buffers: extract what you need, then close it. Close is idempotent.
type Scene struct {
	Meshes []SceneMesh
	Clips  []SceneClip
	Root   *SceneNode

	closed bool
}

// Close releases the scene's decoded buffers. Slices extracted before
// the call stay valid; the scene itself is unusable afterwards.
func (s *Scene) Close() {
	if s.closed {
		return
	}
	s.closed = true
	s.Meshes = nil
	s.Clips = nil
	s.Root = nil
}

// Closed reports whether Close was called.
func (s *Scene) Closed() bool {
	return s.closed
}

// Decoder turns a scene file into meshes and clips. Implementations
// return a non-nil scene only on success; the caller owns the scene
// and must close it.
type Decoder interface {
	Decode(path string) (*Scene, error)
}
