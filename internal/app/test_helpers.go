package app

import (
	"context"
	"testing"

	"github.com/specialistvlad/contentgrid/internal/testutil"
	"github.com/stretchr/testify/require"
)

// SetupAppTest creates a new app instance for system testing. Logs are
// captured at debug level in text format.
func SetupAppTest(t *testing.T, cfg *Config, opts ...Option) (*App, *testutil.SafeBuffer) {
	t.Helper()

	logBuffer := &testutil.SafeBuffer{}
	testutil.LogOnFailure(t, logBuffer)

	cfg.LogLevel = "debug"
	cfg.LogFormat = "text"
	testApp, err := NewApp(context.Background(), logBuffer, cfg, opts...)
	require.NoError(t, err)
	t.Cleanup(func() { _ = testApp.Close() })

	return testApp, logBuffer
}
