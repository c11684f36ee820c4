package util

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTimeoutContext(t *testing.T) {
	t.Parallel()

	t.Run("survives parent cancellation", func(t *testing.T) {
		parent, cancelParent := context.WithCancel(context.Background())
		ctx, cancel := NewTimeoutContext(parent, time.Minute)
		defer cancel()

		cancelParent()
		assert.NoError(t, ctx.Err())
	})

	t.Run("keeps parent values", func(t *testing.T) {
		type key struct{}
		parent := context.WithValue(context.Background(), key{}, "v")
		ctx, cancel := NewTimeoutContext(parent, time.Minute)
		defer cancel()

		assert.Equal(t, "v", ctx.Value(key{}))
	})

	t.Run("expires on its own deadline", func(t *testing.T) {
		ctx, cancel := NewTimeoutContext(context.Background(), time.Millisecond)
		defer cancel()

		select {
		case <-ctx.Done():
		case <-time.After(time.Second):
			t.Fatal("context did not expire")
		}
		require.ErrorIs(t, ctx.Err(), context.DeadlineExceeded)
	})
}
