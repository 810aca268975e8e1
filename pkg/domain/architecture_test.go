package domain

import (
	"testing"

	"soundcore/testutil"
)

// TestDomainDoesNotImportInternal enforces the architectural rule that the
// domain model must not depend on any internal implementation packages. The
// model is consumed by the exchange engine, not the other way around.
func TestDomainDoesNotImportInternal(t *testing.T) {
	testutil.AssertNoDirectImports(t, ".", testutil.InternalImportForbidden,
		"pkg/domain is the dependency-free model layer")
}
