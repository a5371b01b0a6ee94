package testhelpers

import (
	"context"
	"fmt"
	"sync/atomic"
	"testing"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"
)

var uniqueCounter int64

func nextSuffix() int64 {
	return atomic.AddInt64(&uniqueCounter, 1)
}

// CreateTestEmployee inserts a minimal employee row and returns its ID.
func CreateTestEmployee(t *testing.T, db *pgxpool.Pool, department string) string {
	t.Helper()

	ctx := context.Background()
	suffix := nextSuffix()
	id := fmt.Sprintf("test-emp-%d", suffix)
	name := fmt.Sprintf("Test Employee %d", suffix)
	email := fmt.Sprintf("%s@example.com", id)

	_, err := db.Exec(ctx,
		"INSERT INTO employees (employee_id, name, department, email) VALUES ($1, $2, $3, $4)",
		id, name, department, email)
	require.NoError(t, err)
	return id
}

// CreateTestAsset inserts an asset of the given type with a unique serial
// number, optionally assigned (empty holder for an unassigned asset), and
// returns its asset ID. When a holder is given the active assignment record
// is opened alongside so the ledger invariant holds from the start.
func CreateTestAsset(t *testing.T, db *pgxpool.Pool, assetType, holderID string) string {
	t.Helper()

	ctx := context.Background()
	suffix := nextSuffix()
	assetID := fmt.Sprintf("AST_T%d", suffix)
	serial := fmt.Sprintf("SN-%d", suffix)

	var holder *string
	if holderID != "" {
		holder = &holderID
	}

	_, err := db.Exec(ctx,
		`INSERT INTO assets (asset_id, serial_no, asset_type, brand, model, assigned_to)
         VALUES ($1, $2, $3, 'Acme', 'X1', $4)`,
		assetID, serial, assetType, holder)
	require.NoError(t, err)

	if holderID != "" {
		_, err = db.Exec(ctx,
			`INSERT INTO assignment_history (asset_id, employee_id, employee_name, assigned_on, is_active)
             VALUES ($1, $2, $2, CURRENT_DATE, TRUE)`,
			assetID, holderID)
		require.NoError(t, err)
	}
	return assetID
}

// CreateTestAssetType inserts an asset type with spec schema fields and
// returns the type name.
func CreateTestAssetType(t *testing.T, db *pgxpool.Pool, fields map[string]string) string {
	t.Helper()

	ctx := context.Background()
	suffix := nextSuffix()
	typeName := fmt.Sprintf("TestType%d", suffix)

	var typeID int64
	err := db.QueryRow(ctx,
		"INSERT INTO asset_types (type_name) VALUES ($1) RETURNING id", typeName).Scan(&typeID)
	require.NoError(t, err)

	for key, label := range fields {
		_, err = db.Exec(ctx,
			"INSERT INTO asset_spec_fields (asset_type_id, field_key, field_label) VALUES ($1, $2, $3)",
			typeID, key, label)
		require.NoError(t, err)
	}
	return typeName
}

// ActiveAssignmentCount returns the number of active assignment records for
// an asset; the ledger invariant requires this to be at most one.
func ActiveAssignmentCount(t *testing.T, db *pgxpool.Pool, assetID string) int {
	t.Helper()

	var count int
	err := db.QueryRow(context.Background(),
		"SELECT COUNT(*) FROM assignment_history WHERE asset_id = $1 AND is_active = TRUE",
		assetID).Scan(&count)
	require.NoError(t, err)
	return count
}

// OpenRepairCount returns the number of repair records without an end
// timestamp for an asset; at most one may be open at any time.
func OpenRepairCount(t *testing.T, db *pgxpool.Pool, assetID string) int {
	t.Helper()

	var count int
	err := db.QueryRow(context.Background(),
		"SELECT COUNT(*) FROM repair_records WHERE asset_id = $1 AND ended_at IS NULL",
		assetID).Scan(&count)
	require.NoError(t, err)
	return count
}
