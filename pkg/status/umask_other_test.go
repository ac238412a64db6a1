//go:build !unix

package status

import "testing"

func withUmask(t *testing.T, mask int) {
	t.Skip("permission bits are only enforced on unix")
}
