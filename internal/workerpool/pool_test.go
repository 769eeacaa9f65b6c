package workerpool_test

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"gitbind.dev/gitbind/internal/workerpool"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func TestNewDefaultsSize(t *testing.T) {
	require.Equal(t, workerpool.DefaultSize, workerpool.New(0).Size())
	require.Equal(t, workerpool.DefaultSize, workerpool.New(-3).Size())
	require.Equal(t, 2, workerpool.New(2).Size())
}

func TestSubmit(t *testing.T) {
	t.Run("delivers value", func(t *testing.T) {
		pool := workerpool.New(1)
		res := <-workerpool.Submit(context.Background(), pool, func(context.Context) (string, error) {
			return "abc123", nil
		})
		require.NoError(t, res.Err)
		require.Equal(t, "abc123", res.Value)
	})

	t.Run("delivers error", func(t *testing.T) {
		pool := workerpool.New(1)
		boom := errors.New("boom")
		res := <-workerpool.Submit(context.Background(), pool, func(context.Context) (int, error) {
			return 0, boom
		})
		require.ErrorIs(t, res.Err, boom)
	})

	t.Run("does not run when context ends while waiting for a slot", func(t *testing.T) {
		pool := workerpool.New(1)
		release := make(chan struct{})
		first := workerpool.Submit(context.Background(), pool, func(context.Context) (int, error) {
			<-release
			return 1, nil
		})

		ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
		defer cancel()
		var ran atomic.Bool
		second := <-workerpool.Submit(ctx, pool, func(context.Context) (int, error) {
			ran.Store(true)
			return 2, nil
		})
		require.ErrorIs(t, second.Err, context.DeadlineExceeded)
		require.False(t, ran.Load())

		close(release)
		require.Equal(t, 1, (<-first).Value)
	})
}

func TestMapPreservesOrderAndBound(t *testing.T) {
	pool := workerpool.New(2)
	var inFlight, peak atomic.Int32

	items := []int{5, 1, 4, 2, 3}
	out, err := workerpool.Map(context.Background(), pool, items, func(_ context.Context, n int) (int, error) {
		cur := inFlight.Add(1)
		for {
			old := peak.Load()
			if cur <= old || peak.CompareAndSwap(old, cur) {
				break
			}
		}
		time.Sleep(time.Duration(n) * time.Millisecond)
		inFlight.Add(-1)
		return n * 10, nil
	})
	require.NoError(t, err)
	if diff := cmp.Diff([]int{50, 10, 40, 20, 30}, out); diff != "" {
		t.Fatalf("unexpected results (-want +got):\n%s", diff)
	}
	require.LessOrEqual(t, peak.Load(), int32(2))
}

func TestMapStopsOnFirstError(t *testing.T) {
	pool := workerpool.New(1)
	boom := errors.New("boom")

	out, err := workerpool.Map(context.Background(), pool, []string{"a", "b", "c"}, func(ctx context.Context, s string) (string, error) {
		if s == "a" {
			return "", boom
		}
		return s, ctx.Err()
	})
	require.ErrorIs(t, err, boom)
	require.Nil(t, out)
}

func TestMapAllReportsEveryItem(t *testing.T) {
	pool := workerpool.New(3)
	boom := errors.New("boom")

	results := workerpool.MapAll(context.Background(), pool, []string{"ok", "bad", "ok2"}, func(_ context.Context, s string) (string, error) {
		if s == "bad" {
			return "", boom
		}
		return s + "!", nil
	})
	require.Len(t, results, 3)
	require.Equal(t, "ok!", results[0].Value)
	require.ErrorIs(t, results[1].Err, boom)
	require.Equal(t, "ok2!", results[2].Value)
}
