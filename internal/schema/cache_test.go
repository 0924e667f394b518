package schema_test

import (
	"context"
	stderrors "errors"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/standardbeagle/osmtags/internal/schema"
)

func TestCache_ConcurrentFirstAccessLoadsOnce(t *testing.T) {
	var calls atomic.Int32
	release := make(chan struct{})
	cache := schema.NewCacheWithLoader(func(ctx context.Context, src schema.Source) (*schema.Index, error) {
		calls.Add(1)
		<-release
		return schema.Load(ctx, src)
	})

	const workers = 16
	results := make([]*schema.Index, workers)
	var wg sync.WaitGroup
	for i := range workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			ix, err := cache.Get(context.Background(), schema.EmbeddedSource("en"))
			assert.NoError(t, err)
			results[i] = ix
		}()
	}
	close(release)
	wg.Wait()

	assert.Equal(t, int32(1), calls.Load())
	for _, ix := range results {
		assert.Same(t, results[0], ix)
	}

	again, err := cache.Get(context.Background(), schema.EmbeddedSource("en"))
	require.NoError(t, err)
	assert.Same(t, results[0], again)
	assert.Equal(t, int32(1), calls.Load())
}

func TestCache_CancelledCallerDoesNotFailWaiters(t *testing.T) {
	var calls atomic.Int32
	started := make(chan struct{})
	release := make(chan struct{})
	cache := schema.NewCacheWithLoader(func(ctx context.Context, src schema.Source) (*schema.Index, error) {
		if calls.Add(1) == 1 {
			close(started)
		}
		<-release
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		return schema.Load(ctx, src)
	})

	ctx, cancel := context.WithCancel(context.Background())
	first := make(chan error, 1)
	go func() {
		_, err := cache.Get(ctx, schema.EmbeddedSource("en"))
		first <- err
	}()
	<-started

	type result struct {
		ix  *schema.Index
		err error
	}
	second := make(chan result, 1)
	go func() {
		ix, err := cache.Get(context.Background(), schema.EmbeddedSource("en"))
		second <- result{ix, err}
	}()

	cancel()
	assert.ErrorIs(t, <-first, context.Canceled)

	close(release)
	res := <-second
	require.NoError(t, res.err)
	require.NotNil(t, res.ix)
	assert.Equal(t, int32(1), calls.Load())
	assert.Equal(t, 1, cache.Loaded())
}

func TestCache_FailureIsNotRemembered(t *testing.T) {
	var calls atomic.Int32
	cache := schema.NewCacheWithLoader(func(ctx context.Context, src schema.Source) (*schema.Index, error) {
		if calls.Add(1) == 1 {
			return nil, stderrors.New("disk on fire")
		}
		return schema.Load(ctx, src)
	})

	_, err := cache.Get(context.Background(), schema.EmbeddedSource("en"))
	require.Error(t, err)
	assert.Equal(t, 0, cache.Loaded())

	ix, err := cache.Get(context.Background(), schema.EmbeddedSource("en"))
	require.NoError(t, err)
	assert.NotNil(t, ix)
	assert.Equal(t, 1, cache.Loaded())
}

func TestCache_KeyedBySourceAndLocale(t *testing.T) {
	cache := schema.NewCache()
	dir := newDatasetDir(t).Preset("x", `{"tags":{"x":"y"}}`).Build()

	a, err := cache.Get(context.Background(), schema.EmbeddedSource("en"))
	require.NoError(t, err)
	b, err := cache.Get(context.Background(), schema.DirSource(dir, "en"))
	require.NoError(t, err)
	c, err := cache.Get(context.Background(), schema.EmbeddedSource(""))
	require.NoError(t, err)

	assert.NotSame(t, a, b)
	assert.Same(t, a, c, "empty locale means en")
	assert.Equal(t, 2, cache.Loaded())
}

func TestDefaultCacheIsShared(t *testing.T) {
	assert.Same(t, schema.DefaultCache(), schema.DefaultCache())
}
