package mcp

import (
	"testing"
)

// TestMain runs without goleak: SDK sessions finish their read loops
// asynchronously after Close, which the leak checker reports as flaky leaks.
func TestMain(m *testing.M) {
	m.Run()
}
