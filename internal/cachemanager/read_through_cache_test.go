package cachemanager

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

type wrappedInput struct {
	Id int
}

func TestReadThroughCache_Get_WithCacheDisabled(t *testing.T) {
	manager := NewInMemoryCacheManager[string, []*ExampleStruct]("test", DefaultExpiration, DefaultCleanupInterval)

	loads := 0
	readThroughCache := NewReadThroughCache[string, []*ExampleStruct, wrappedInput](
		manager,
		func(ctx context.Context, input wrappedInput) ([]*ExampleStruct, error) {
			loads++
			return []*ExampleStruct{{ID: input.Id}}, nil
		},
		true,
	)

	for i := 0; i < 2; i++ {
		examples, err := readThroughCache.Get(context.Background(), "key", wrappedInput{Id: 1}, time.Minute)
		require.NoError(t, err)
		require.Equal(t, []*ExampleStruct{{ID: 1}}, examples)
	}
	require.Equal(t, 2, loads, "disabled cache must hit the loader every time")
}

func TestReadThroughCache_Get_MissLoadsAndCaches(t *testing.T) {
	manager := NewInMemoryCacheManager[string, []*ExampleStruct]("test", DefaultExpiration, DefaultCleanupInterval)

	loads := 0
	readThroughCache := NewReadThroughCache[string, []*ExampleStruct, wrappedInput](
		manager,
		func(ctx context.Context, input wrappedInput) ([]*ExampleStruct, error) {
			loads++
			return []*ExampleStruct{{ID: input.Id}}, nil
		},
		false,
	)

	examples, err := readThroughCache.Get(context.Background(), "key", wrappedInput{Id: 1}, time.Minute)
	require.NoError(t, err)
	require.Equal(t, []*ExampleStruct{{ID: 1}}, examples)

	// Second read is served from cache.
	_, err = readThroughCache.Get(context.Background(), "key", wrappedInput{Id: 2}, time.Minute)
	require.NoError(t, err)
	require.Equal(t, 1, loads, "second read should not hit the loader")
}

func TestReadThroughCache_Get_LoaderError(t *testing.T) {
	manager := NewInMemoryCacheManager[string, []*ExampleStruct]("test", DefaultExpiration, DefaultCleanupInterval)

	readThroughCache := NewReadThroughCache[string, []*ExampleStruct, wrappedInput](
		manager,
		func(ctx context.Context, input wrappedInput) ([]*ExampleStruct, error) {
			return nil, errors.New("failed to get data")
		},
		false,
	)

	_, err := readThroughCache.Get(context.Background(), "key", wrappedInput{Id: 1}, time.Minute)
	require.Error(t, err)

	_, ok := manager.Get(context.Background(), "key")
	require.False(t, ok, "loader errors must not be cached")
}

func TestReadThroughCache_InvalidateForcesReload(t *testing.T) {
	manager := NewInMemoryCacheManager[string, []*ExampleStruct]("test", DefaultExpiration, DefaultCleanupInterval)

	loads := 0
	readThroughCache := NewReadThroughCache[string, []*ExampleStruct, wrappedInput](
		manager,
		func(ctx context.Context, input wrappedInput) ([]*ExampleStruct, error) {
			loads++
			return []*ExampleStruct{{ID: loads}}, nil
		},
		false,
	)

	examples, err := readThroughCache.Get(context.Background(), "key", wrappedInput{}, time.Minute)
	require.NoError(t, err)
	require.Equal(t, 1, examples[0].ID)

	require.NoError(t, readThroughCache.Invalidate(context.Background(), "key"))

	examples, err = readThroughCache.Get(context.Background(), "key", wrappedInput{}, time.Minute)
	require.NoError(t, err)
	require.Equal(t, 2, examples[0].ID, "invalidation should force a fresh load")
}
