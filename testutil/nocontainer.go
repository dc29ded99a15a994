//go:build !integration

package testutil

import "testing"

// containerDSN is a no-op outside integration builds.
func containerDSN(t *testing.T) string {
	t.Helper()
	return ""
}
