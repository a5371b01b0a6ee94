package ledger

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

var ErrAssetNotFound = errors.New("asset not found")

type LedgerRepository interface {
	Reassign(ctx context.Context, input ReassignInput) error
}

type postgresLedgerRepository struct {
	pool   *pgxpool.Pool
	logger *zap.Logger
}

func NewPostgresLedgerRepository(pool *pgxpool.Pool, logger *zap.Logger) LedgerRepository {
	return &postgresLedgerRepository{pool: pool, logger: logger}
}

// Reassign transfers an asset in one transaction. The asset row is locked for
// the duration so concurrent transfers against the same asset serialize. The
// active record is closed before a new one is opened; that ordering is what
// keeps at most one record active per asset.
func (r *postgresLedgerRepository) Reassign(ctx context.Context, input ReassignInput) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	var currentHolder *string
	err = tx.QueryRow(ctx,
		`SELECT assigned_to FROM assets WHERE asset_id = $1 FOR UPDATE`,
		input.AssetID).Scan(&currentHolder)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrAssetNotFound
		}
		return err
	}

	if !sameHolder(currentHolder, input.NewHolderID) {
		if currentHolder != nil {
			// No-op when nothing is active for this pair.
			_, err = tx.Exec(ctx,
				`UPDATE assignment_history
                 SET returned_on = CURRENT_DATE, is_active = FALSE
                 WHERE asset_id = $1 AND employee_id = $2 AND is_active = TRUE`,
				input.AssetID, *currentHolder)
			if err != nil {
				return err
			}
		}

		if input.NewHolderID != nil {
			name := holderName(ctx, tx, *input.NewHolderID)
			_, err = tx.Exec(ctx,
				`INSERT INTO assignment_history (asset_id, employee_id, employee_name, assigned_on, is_active)
                 VALUES ($1, $2, $3, CURRENT_DATE, TRUE)`,
				input.AssetID, *input.NewHolderID, name)
			if err != nil {
				return err
			}
		}
	}

	// The caller's state is authoritative, so holder and repair flag are
	// written even when unchanged.
	_, err = tx.Exec(ctx,
		`UPDATE assets SET assigned_to = $1, under_repair = $2, updated_at = NOW() WHERE asset_id = $3`,
		input.NewHolderID, input.UnderRepair, input.AssetID)
	if err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return err
	}

	r.logger.Info("asset reassigned",
		zap.String("asset_id", input.AssetID),
		zap.Stringp("new_holder", input.NewHolderID),
		zap.Bool("under_repair", input.UnderRepair))
	return nil
}

func sameHolder(a, b *string) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}

func holderName(ctx context.Context, tx pgx.Tx, employeeID string) string {
	var name string
	err := tx.QueryRow(ctx,
		`SELECT COALESCE(name, '') FROM employees WHERE employee_id = $1`, employeeID).Scan(&name)
	if err != nil || name == "" {
		return employeeID
	}
	return name
}
