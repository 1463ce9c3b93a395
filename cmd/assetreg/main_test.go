package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/tidwall/gjson"

	assetregistry "github.com/riftlab/asset-registry"
	"github.com/riftlab/asset-registry/registry"
)

func TestWriteAuditReport(t *testing.T) {
	report := &registry.AuditReport{
		Categories: []registry.CategoryAudit{
			{Category: assetregistry.CategoryMesh, Loaded: 3, Used: 2, Unused: []string{"floor"}},
			{Category: assetregistry.CategoryTexture, Loaded: 1, Used: 1},
		},
	}

	path := filepath.Join(t.TempDir(), "audit.json")
	if err := writeAuditReport(path, report); err != nil {
		t.Fatalf("writeAuditReport: %v", err)
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read report: %v", err)
	}
	if !gjson.ValidBytes(raw) {
		t.Fatalf("report is not valid JSON: %s", raw)
	}

	doc := gjson.ParseBytes(raw)
	if got := doc.Get("unused_total").Int(); got != 1 {
		t.Errorf("unused_total = %d, want 1", got)
	}
	if doc.Get("generated").String() == "" {
		t.Error("generated timestamp missing")
	}
	if got := doc.Get("categories.mesh.loaded").Int(); got != 3 {
		t.Errorf("mesh loaded = %d, want 3", got)
	}
	if got := doc.Get("categories.mesh.used").Int(); got != 2 {
		t.Errorf("mesh used = %d, want 2", got)
	}
	unused := doc.Get("categories.mesh.unused").Array()
	if len(unused) != 1 || unused[0].String() != "floor" {
		t.Errorf("mesh unused = %v, want [floor]", unused)
	}

	// A category with nothing unused still serializes an empty array,
	// so report consumers never see null.
	if tex := doc.Get("categories.texture.unused"); !tex.IsArray() {
		t.Errorf("texture unused = %s, want empty array", tex.Raw)
	}
}
