package actor

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

const (
	waitFor = 2 * time.Second
	tick    = 5 * time.Millisecond
)

// shutdownNow drives sys through Shutdown within a bounded timeout, failing
// the test if it doesn't complete in time.
func shutdownNow(t *testing.T, sys *ActorSystem) {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), waitFor)
	defer cancel()
	require.NoError(t, sys.Shutdown(ctx))
}
