package testutil

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

// AssertLogged checks that every substring appears in the captured log output.
func AssertLogged(t *testing.T, logs string, substrings ...string) {
	t.Helper()

	for _, s := range substrings {
		require.True(t,
			strings.Contains(logs, s),
			"expected %q in log output, got:\n%s", s, logs,
		)
	}
}

// AssertNotLogged checks that no substring appears in the captured log output.
func AssertNotLogged(t *testing.T, logs string, substrings ...string) {
	t.Helper()

	for _, s := range substrings {
		require.False(t,
			strings.Contains(logs, s),
			"did not expect %q in log output", s,
		)
	}
}
