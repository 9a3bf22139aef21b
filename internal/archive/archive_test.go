package archive

import (
	"context"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestArchiveRoundTrip(t *testing.T) {
	databaseURL := os.Getenv("TEST_DATABASE_URL")
	if databaseURL == "" {
		t.Skip("Integration test - requires database (set TEST_DATABASE_URL)")
	}

	a, err := New(databaseURL)
	require.NoError(t, err)
	defer a.Close()

	ctx := context.Background()
	require.NoError(t, a.Record(ctx, "notification-events", "Order 1 shipped, tracking number TRK123456"))

	entries, err := a.Recent(ctx, 1)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "notification-events", entries[0].Topic)
	assert.Equal(t, "Order 1 shipped, tracking number TRK123456", entries[0].Message)
	assert.False(t, entries[0].ReceivedAt.IsZero())
}
