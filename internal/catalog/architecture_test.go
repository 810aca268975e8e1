package catalog

import (
	"sort"
	"strings"
	"testing"

	"golang.org/x/tools/go/packages"
)

// TestOnlyCatalogPackageImportsInfra ensures that only this package wraps the
// infra-backed implementations. Everything else must depend on the Store
// interface instead of importing backend packages directly.
func TestOnlyCatalogPackageImportsInfra(t *testing.T) {
	infraPrefix := "soundcore/internal/infra/catalog"
	allowedPrefix := "soundcore/internal/catalog"

	cfg := &packages.Config{Mode: packages.NeedName | packages.NeedImports, Tests: true}
	pkgs, err := packages.Load(cfg, "soundcore/...")
	if err != nil {
		t.Fatalf("load packages: %v", err)
	}

	var violations []string
	for _, pkg := range pkgs {
		if strings.HasPrefix(pkg.PkgPath, allowedPrefix) || strings.HasPrefix(pkg.PkgPath, infraPrefix) {
			continue
		}
		for importPath := range pkg.Imports {
			if importPath == infraPrefix || strings.HasPrefix(importPath, infraPrefix+"/") {
				violations = append(violations, pkg.PkgPath+": "+importPath)
			}
		}
	}

	if len(violations) > 0 {
		sort.Strings(violations)
		for _, v := range violations {
			t.Errorf("forbidden import of infra catalog package: %s", v)
		}
		t.Fatalf("found %d forbidden imports of infra catalog packages", len(violations))
	}
}
