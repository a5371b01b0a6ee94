package summary

import (
	"context"
	"os"
	"testing"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"assetdesk/pkg/testhelpers"
)

func setupSummaryTestPool(t *testing.T) *pgxpool.Pool {
	t.Helper()

	dsn := os.Getenv("DATABASE_URL_FOR_TEST")
	if dsn == "" {
		t.Skip("DATABASE_URL_FOR_TEST not set; skipping summary repository tests")
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

func TestPostgresSummaryRepository_Summary_GroupsAndCounts(t *testing.T) {
	pool := setupSummaryTestPool(t)

	repo := NewPostgresSummaryRepository(pool, zap.NewNop())
	ctx := context.Background()

	empID := testhelpers.CreateTestEmployee(t, pool, "Research")
	testhelpers.CreateTestAsset(t, pool, "Workstation", empID)
	testhelpers.CreateTestAsset(t, pool, "Workstation", empID)
	testhelpers.CreateTestAsset(t, pool, "Workstation", "")

	rows, err := repo.Summary(ctx)
	require.NoError(t, err)

	var assigned, unassigned *Row
	for i := range rows {
		if rows[i].AssetType != "Workstation" {
			continue
		}
		switch rows[i].Department {
		case "Research":
			assigned = &rows[i]
		case "Not Assigned":
			unassigned = &rows[i]
		}
	}

	require.NotNil(t, assigned)
	require.GreaterOrEqual(t, assigned.Count, int64(2))
	require.Equal(t, "Acme", assigned.Brand)
	require.Equal(t, "X1", assigned.Model)

	// Unassigned assets land in the sentinel department bucket.
	require.NotNil(t, unassigned)
	require.GreaterOrEqual(t, unassigned.Count, int64(1))
}

func TestPostgresSummaryRepository_Ping(t *testing.T) {
	pool := setupSummaryTestPool(t)

	repo := NewPostgresSummaryRepository(pool, zap.NewNop())
	require.NoError(t, repo.Ping(context.Background()))
}
