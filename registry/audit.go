package registry

import (
	assetregistry "github.com/riftlab/asset-registry"
	"github.com/riftlab/asset-registry/asset"
)

// AuditReport summarizes the shutdown usage audit, one entry per
// category in drain order.
type AuditReport struct {
	Categories []CategoryAudit
}

// CategoryAudit records one category's usage. Unused lists names never
// looked up, in reverse load order; builtin assets are exempt, so
// Loaded may exceed Used plus the unused count.
type CategoryAudit struct {
	Category assetregistry.Category
	Loaded   int
	Used     int
	Unused   []string
}

// TotalUnused returns the number of audited assets never looked up.
func (r *AuditReport) TotalUnused() int {
	n := 0
	for _, c := range r.Categories {
		n += len(c.Unused)
	}
	return n
}

func auditTable[T asset.Asset](tbl *asset.Table[T]) CategoryAudit {
	a := CategoryAudit{Category: tbl.Category(), Loaded: tbl.Len()}
	tbl.Each(func(name string, item T) bool {
		if item.Used() {
			a.Used++
		}
		return true
	})
	a.Unused = tbl.Drain()
	return a
}
