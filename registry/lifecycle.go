package registry

import (
	"context"

	"go.uber.org/zap"

	assetregistry "github.com/riftlab/asset-registry"
	"github.com/riftlab/asset-registry/animation"
	"github.com/riftlab/asset-registry/errors"
	"github.com/riftlab/asset-registry/mesh"
	"github.com/riftlab/asset-registry/sound"
	"github.com/riftlab/asset-registry/store"
	"github.com/riftlab/asset-registry/texture"
)

// Initialize opens the resource store and loads every category. Valid
// only in Uninitialized; on success the registry is Ready.
//
// A resource that fails to decode is logged and skipped so one bad
// file never aborts startup. A failing directory walk or store open is
// fatal and leaves the registry Uninitialized with the store closed.
func (r *Registry) Initialize(ctx context.Context) error {
	if r.state != StateUninitialized {
		return errors.InvalidState(errors.OpInit, r.state.String())
	}

	opts := []store.Option{store.WithLogger(r.log)}
	if r.cfg.Watch {
		opts = append(opts, store.WithWatcher())
	}
	st, err := store.Open(r.cfg.Root, opts...)
	if err != nil {
		return err
	}
	r.st = st

	if err := r.loadAll(st); err != nil {
		st.Close()
		r.st = nil
		return err
	}

	r.meshes.Compact()
	r.textures.Compact()
	r.materials.Compact()
	r.animations.Compact()
	r.sounds.Compact()

	r.state = StateReady
	r.log.Info("asset registry ready",
		zap.String("root", r.cfg.Root),
		zap.Bool("watch", r.cfg.Watch),
		zap.Int("meshes", r.meshes.Len()),
		zap.Int("textures", r.textures.Len()),
		zap.Int("materials", r.materials.Len()),
		zap.Int("animations", r.animations.Len()),
		zap.Int("sounds", r.sounds.Len()))
	return nil
}

// loadAll fills every table in the fixed category order. The unit quad
// registers before the scan, so a file claiming its name loses the
// duplicate contest.
func (r *Registry) loadAll(st *store.Store) error {
	r.meshes.Insert(mesh.QuadName, mesh.UnitQuad())

	meshLoader := mesh.NewLoader(r.meshDec, r.log)
	clips, err := meshLoader.Load(st, r.dir(assetregistry.CategoryMesh), r.exts(assetregistry.CategoryMesh), r.meshes)
	if err != nil {
		return err
	}

	texLoader := texture.NewLoader(r.texDec, r.log)
	if err := texLoader.Load(st, r.dir(assetregistry.CategoryTexture), r.exts(assetregistry.CategoryTexture), r.textures); err != nil {
		return err
	}

	if err := r.matLoader.Load(st, r.dir(assetregistry.CategoryMaterial), r.exts(assetregistry.CategoryMaterial), r.materials, r.fanout); err != nil {
		return err
	}

	animLoader := animation.NewLoader(r.meshDec, r.log)
	animLoader.LoadScenes(clips, r.animations)
	if err := animLoader.LoadDocuments(st, r.dir(assetregistry.CategoryAnimation), r.exts(assetregistry.CategoryAnimation), r.animations); err != nil {
		return err
	}

	soundLoader := sound.NewLoader(r.log)
	return soundLoader.Load(st, r.dir(assetregistry.CategorySound), r.exts(assetregistry.CategorySound), r.sounds)
}

func (r *Registry) dir(cat assetregistry.Category) string {
	return r.cfg.CategoryDir(cat)
}

func (r *Registry) exts(cat assetregistry.Category) []string {
	return r.cfg.Extensions(cat)
}

// Refresh reconciles every table against the resource store: one
// frozen change set, fixed category order, all within a single store
// cycle. Valid only in Ready. A quiescent refresh mutates and logs
// nothing.
func (r *Registry) Refresh(ctx context.Context) error {
	if err := r.requireReady(errors.OpRefresh); err != nil {
		return err
	}

	r.st.BeginCycle()
	defer r.st.EndCycle()

	r.meshes.Reconcile()
	r.textures.Reconcile()
	r.matLoader.Reconcile(r.st, r.materials, r.fanout)
	r.animations.Reconcile()
	r.sounds.Reconcile()
	return nil
}

// Shutdown drains every table in the fixed category order, reporting
// assets that were loaded but never looked up, then closes the store.
// Valid only in Ready; afterwards the registry is Terminated and no
// operation is accepted.
func (r *Registry) Shutdown(ctx context.Context) (*AuditReport, error) {
	if err := r.requireReady(errors.OpShutdown); err != nil {
		return nil, err
	}
	r.state = StateShuttingDown

	report := &AuditReport{
		Categories: []CategoryAudit{
			auditTable(r.meshes),
			auditTable(r.textures),
			auditTable(r.materials),
			auditTable(r.animations),
			auditTable(r.sounds),
		},
	}

	err := r.st.Close()
	r.state = StateTerminated
	r.log.Info("asset registry terminated",
		zap.Int("unused", report.TotalUnused()))
	return report, err
}
