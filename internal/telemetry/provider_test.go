package telemetry

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSetup(t *testing.T) {
	testCases := []struct {
		name string
		cfg  Config
	}{
		{"no endpoint", Config{Enabled: true}},
		{"explicitly disabled", Config{Endpoint: "http://localhost:4318", Enabled: false}},
		// A non-routable address, so no export actually happens.
		{"endpoint set", Config{Endpoint: "http://192.0.2.1:4318", Enabled: true}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			shutdown, err := Setup(context.Background(), "contentgrid-test", tc.cfg)
			require.NoError(t, err)
			require.NoError(t, shutdown(context.Background()))
		})
	}
}
