package bytemap

import "testing"

// newAsserter returns a terse assertion closure in the style used
// throughout this codebase's test suites: cond, then a Printf-style
// failure message.
func newAsserter(t *testing.T) func(cond bool, format string, args ...interface{}) {
	return func(cond bool, format string, args ...interface{}) {
		t.Helper()
		if !cond {
			t.Fatalf(format, args...)
		}
	}
}
