package idgen

import (
	"context"
	"os"
	"strconv"
	"strings"
	"sync"
	"testing"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func setupGeneratorTestPool(t *testing.T) *pgxpool.Pool {
	t.Helper()

	dsn := os.Getenv("DATABASE_URL_FOR_TEST")
	if dsn == "" {
		t.Skip("DATABASE_URL_FOR_TEST not set; skipping id generator tests")
	}

	ctx := context.Background()
	cfg, err := pgxpool.ParseConfig(dsn)
	require.NoError(t, err)

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	require.NoError(t, err)
	require.NoError(t, pool.Ping(ctx))

	t.Cleanup(pool.Close)
	return pool
}

func numericPart(t *testing.T, id string) int64 {
	t.Helper()
	require.True(t, strings.HasPrefix(id, Prefix))
	n, err := strconv.ParseInt(strings.TrimPrefix(id, Prefix), 10, 64)
	require.NoError(t, err)
	return n
}

func TestGenerator_NextID_StrictlyIncreasing(t *testing.T) {
	pool := setupGeneratorTestPool(t)
	gen := NewGenerator(pool, zap.NewNop())
	ctx := context.Background()

	var last int64
	for i := 0; i < 5; i++ {
		id, err := gen.NextID(ctx)
		require.NoError(t, err)

		n := numericPart(t, id)
		require.Greater(t, n, last)
		last = n
	}
}

func TestGenerator_NextID_ConcurrentCallersDistinct(t *testing.T) {
	pool := setupGeneratorTestPool(t)
	gen := NewGenerator(pool, zap.NewNop())
	ctx := context.Background()

	const callers = 10
	ids := make([]string, callers)
	var wg sync.WaitGroup
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			id, err := gen.NextID(ctx)
			require.NoError(t, err)
			ids[i] = id
		}(i)
	}
	wg.Wait()

	seen := make(map[string]struct{}, callers)
	for _, id := range ids {
		_, dup := seen[id]
		require.False(t, dup, "duplicate id issued: %s", id)
		seen[id] = struct{}{}
	}
}

func TestGenerator_NextID_LazilyInitializesCounter(t *testing.T) {
	pool := setupGeneratorTestPool(t)
	gen := NewGenerator(pool, zap.NewNop())
	ctx := context.Background()

	// Only safe to exercise lazy init when no other state depends on
	// the counter row in the test database.
	_, err := pool.Exec(ctx, "DELETE FROM asset_id_counter")
	require.NoError(t, err)

	id, err := gen.NextID(ctx)
	require.NoError(t, err)
	require.Greater(t, numericPart(t, id), int64(1000))
}
