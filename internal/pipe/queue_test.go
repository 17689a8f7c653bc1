package pipe

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestQueueFIFO(t *testing.T) {
	q, err := New[int]("test", 5)
	require.NoError(t, err)

	for i := 1; i <= 5; i++ {
		require.NoError(t, q.Send(i, 0))
	}

	for i := 1; i <= 5; i++ {
		got, ok := q.Receive(context.Background())
		require.True(t, ok)
		require.Equal(t, i, got)
	}
}

func TestQueueRejectsWhenFull(t *testing.T) {
	q, err := New[int]("test", 3)
	require.NoError(t, err)

	for i := 0; i < 3; i++ {
		require.NoError(t, q.Send(i, 0))
	}

	err = q.Send(99, 0)
	require.ErrorIs(t, err, ErrFull)
	require.Equal(t, uint64(1), q.Dropped())
	require.Equal(t, 3, q.Len())

	// Freeing one slot makes the next send succeed.
	_, ok := q.Receive(context.Background())
	require.True(t, ok)
	require.NoError(t, q.Send(99, 0))
}

func TestQueueSendWaitsForSlot(t *testing.T) {
	q, err := New[int]("test", 1)
	require.NoError(t, err)
	require.NoError(t, q.Send(1, 0))

	go func() {
		time.Sleep(20 * time.Millisecond)
		q.Receive(context.Background())
	}()

	require.NoError(t, q.Send(2, time.Second))

	got, ok := q.Receive(context.Background())
	require.True(t, ok)
	require.Equal(t, 2, got)
}

func TestQueueSendTimesOut(t *testing.T) {
	q, err := New[int]("test", 1)
	require.NoError(t, err)
	require.NoError(t, q.Send(1, 0))

	start := time.Now()
	err = q.Send(2, 30*time.Millisecond)
	require.ErrorIs(t, err, ErrFull)
	require.GreaterOrEqual(t, time.Since(start), 30*time.Millisecond)
}

func TestQueueReceiveCancelled(t *testing.T) {
	q, err := New[int]("test", 1)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, ok := q.Receive(ctx)
	require.False(t, ok)
}

func TestQueueRejectsInvalidCapacity(t *testing.T) {
	_, err := New[int]("test", 0)
	require.Error(t, err)

	_, err = New[int]("test", -1)
	require.Error(t, err)
}
