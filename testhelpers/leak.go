package testhelpers

import (
	"testing"

	"go.uber.org/goleak"
)

// LeakCheck snapshots the running goroutines. The returned func fails t if
// goroutines started since then are still running.
//
//	defer testhelpers.LeakCheck(t)()
func LeakCheck(t testing.TB) func() {
	ignore := goleak.IgnoreCurrent()
	return func() {
		t.Helper()
		goleak.VerifyNone(t, ignore)
	}
}
