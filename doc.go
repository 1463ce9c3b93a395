// Package assetregistry provides a process-wide registry for runtime
// game assets: meshes, textures, materials, animation clips, and sounds.
//
// Assets are loaded from files under a content root at startup, served
// by name during the session, kept in sync with on-disk changes through
// an explicit per-tick refresh pass, and audited for use at shutdown.
//
// # Architecture Overview
//
// The library is organized into several packages with distinct
// responsibilities:
//
//	assetregistry/       Root package with the asset category vocabulary
//	├── registry/        High-level facade: initialize, get, refresh, shutdown
//	├── asset/           Generic asset tables and resource fanout reconciliation
//	├── store/           Resource files: scanning, handles, change detection
//	├── mesh/            Mesh assets, OBJ scene decoding, the built-in unit quad
//	├── texture/         Texture assets decoded through the image codecs
//	├── material/        Material assets defined in HCL documents
//	├── animation/       Animation clips from JSON documents and mesh scenes
//	├── sound/           Sound assets decoded into beep buffers
//	├── config/          YAML configuration with per-category directories
//	└── errors/          Structured error types shared by all packages
//
// # Quick Start
//
// Load a content root and serve assets:
//
//	reg := registry.New(config.Default())
//	if err := reg.Initialize(ctx); err != nil {
//	    log.Fatal(err)
//	}
//
//	m, err := reg.Mesh("crate")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(len(m.Vertices()))
//
//	// once per simulation tick
//	reg.Refresh(ctx)
//
//	report, err := reg.Shutdown(ctx)
//
// # Refresh Model
//
// The registry never watches for its own sake: change detection is
// latched in the store and consumed by the next Refresh call, so asset
// pointers handed out by Get stay valid across refreshes. A changed
// file updates the existing asset in place; only a deleted file removes
// its entry. Material documents are the exception in the other
// direction: one document produces many named materials, and a
// re-parse may add or remove names while untouched names keep their
// identity.
//
// # Thread Safety
//
// The registry is intended for a single owner goroutine, mirroring a
// game main loop. Get, Refresh, and Shutdown must not be called
// concurrently. The store's change latch is internally synchronized so
// a watcher goroutine may feed it while the owner ticks.
package assetregistry
