package batch_test

import (
	"context"
	"testing"
	"time"

	"github.com/fwojciec/coachdir/batch"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPacer(t *testing.T) {
	t.Parallel()

	t.Run("first wait is immediate", func(t *testing.T) {
		t.Parallel()

		pacer := batch.NewPacer(time.Second)

		start := time.Now()
		err := pacer.Wait(context.Background())

		require.NoError(t, err)
		assert.Less(t, time.Since(start), 50*time.Millisecond)
	})

	t.Run("second wait is delayed", func(t *testing.T) {
		t.Parallel()

		pacer := batch.NewPacer(100 * time.Millisecond)
		require.NoError(t, pacer.Wait(context.Background()))

		start := time.Now()
		err := pacer.Wait(context.Background())

		require.NoError(t, err)
		assert.GreaterOrEqual(t, time.Since(start), 80*time.Millisecond)
	})

	t.Run("zero delay never waits", func(t *testing.T) {
		t.Parallel()

		pacer := batch.NewPacer(0)

		start := time.Now()
		for range 5 {
			require.NoError(t, pacer.Wait(context.Background()))
		}

		assert.Less(t, time.Since(start), 50*time.Millisecond)
	})

	t.Run("returns error when context is canceled", func(t *testing.T) {
		t.Parallel()

		pacer := batch.NewPacer(time.Hour)
		require.NoError(t, pacer.Wait(context.Background()))

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		err := pacer.Wait(ctx)

		require.Error(t, err)
	})
}
