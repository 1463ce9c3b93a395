package asset

// Resource is the view of a backing store entry that reconciliation
// needs. *store.Handle is the production implementation; tests supply
// small fakes.
type Resource interface {
	// Exists reports whether the backing resource is still present.
	Exists() bool

	// NeedsRefresh reports whether the resource changed since the last
	// consumed refresh cycle.
	NeedsRefresh() bool

	// Path identifies the resource for diagnostics. Empty for built-in
	// assets.
	Path() string

	// Builtin reports whether the asset has no backing resource.
	// Builtin assets always exist, never need a refresh, and are
	// exempt from the shutdown usage audit.
	Builtin() bool
}

// Asset is implemented by every loadable asset type, normally by
// embedding Base and adding Refresh and Release.
type Asset interface {
	// Name returns the registration name, unique within a category.
	Name() string

	// Resource returns the backing resource handle. Every asset has
	// one; assets without a file use a builtin handle.
	Resource() Resource

	// MarkUsed flags the asset as retrieved at least once. The flag
	// never clears. The shutdown audit reports assets still unflagged.
	MarkUsed()

	// Used reports whether MarkUsed was ever called.
	Used() bool

	// Refresh re-derives the asset's contents from its resource in
	// place, preserving the asset's identity for pointer holders.
	Refresh() error

	// Release frees decoded payloads. Safe to call more than once.
	Release()
}

// Base carries the identity every asset shares. Embed it by value and
// construct it with NewBase.
type Base struct {
	name string
	res  Resource
	used bool
}

// NewBase builds the common asset core. An asset is never constructed
// without a name and a resource; violating that is a programming error
// and panics.
func NewBase(name string, res Resource) Base {
	if name == "" {
		panic("asset: empty name")
	}
	if res == nil {
		panic("asset: nil resource")
	}
	return Base{name: name, res: res}
}

func (b *Base) Name() string {
	return b.name
}

func (b *Base) Resource() Resource {
	return b.res
}

func (b *Base) MarkUsed() {
	b.used = true
}

func (b *Base) Used() bool {
	return b.used
}
