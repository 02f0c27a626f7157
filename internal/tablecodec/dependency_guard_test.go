package tablecodec

import (
	"strings"
	"testing"

	"fittingcore/testutil"
)

// TestCodecImportBoundaries keeps the codec a leaf: it converts between
// CSV text and domain tables without reaching into the catalog or any of
// the table backends.
func TestCodecImportBoundaries(t *testing.T) {
	testutil.AssertNoDirectImports(t, ".", func(ip string) bool {
		return testutil.ThirdPartyImportForbidden(ip) ||
			strings.HasPrefix(ip, "fittingcore/internal/core") ||
			strings.HasPrefix(ip, "fittingcore/internal/infra")
	}, "codec depends only on the domain tables")
}
