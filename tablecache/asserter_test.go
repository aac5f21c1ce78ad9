package tablecache

import "testing"

func newAsserter(t *testing.T) func(cond bool, format string, args ...interface{}) {
	return func(cond bool, format string, args ...interface{}) {
		t.Helper()
		if !cond {
			t.Fatalf(format, args...)
		}
	}
}
