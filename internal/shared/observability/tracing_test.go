package observability

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetupTracingDisabledWithoutEndpoint(t *testing.T) {
	shutdown, err := SetupTracing(context.Background(), "")
	require.NoError(t, err)
	require.NotNil(t, shutdown)
	assert.NoError(t, shutdown(context.Background()))

	_, span := Tracer.Start(context.Background(), "noop")
	span.End()
}
