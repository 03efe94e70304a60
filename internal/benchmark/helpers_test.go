package benchmark

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

// writeEstimates writes a minimal Criterion estimates.json at root/rel.
func writeEstimates(t *testing.T, root, rel string, meanNs, stdDevNs float64) string {
	t.Helper()
	body := fmt.Sprintf(`{"mean":{"point_estimate":%g,"standard_error":1.0},"std_dev":{"point_estimate":%g}}`, meanNs, stdDevNs)
	return writeRaw(t, root, rel, body)
}

func writeRaw(t *testing.T, root, rel, body string) string {
	t.Helper()
	path := filepath.Join(root, filepath.FromSlash(rel))
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(body), 0644))
	return path
}
