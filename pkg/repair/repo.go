package repair

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

var (
	ErrAssetNotFound     = errors.New("asset not found")
	ErrLoanerNotFound    = errors.New("loaner asset not found")
	ErrRepairAlreadyOpen = errors.New("asset already has an open repair")
	ErrNoOpenRepair      = errors.New("asset has no open repair")
)

type RepairRepository interface {
	StartRepair(ctx context.Context, input StartRepairInput) (Record, error)
	EndRepair(ctx context.Context, assetID string) error
	ActiveRepair(ctx context.Context, assetID string) (Record, error)
	AvailableLoaners(ctx context.Context, assetType, excludeAssetID string) ([]Loaner, error)
}

type postgresRepairRepository struct {
	pool   *pgxpool.Pool
	logger *zap.Logger
}

func NewPostgresRepairRepository(pool *pgxpool.Pool, logger *zap.Logger) RepairRepository {
	return &postgresRepairRepository{pool: pool, logger: logger}
}

// StartRepair opens a repair episode in one transaction. When the asset has a
// holder and a loaner is supplied, the loaner is marked in use, assigned to
// that holder and given its own active assignment record; the original
// asset's record stays open, the holder keeps ownership of it throughout.
// A loaner supplied for an unassigned asset is ignored with a warning.
func (r *postgresRepairRepository) StartRepair(ctx context.Context, input StartRepairInput) (Record, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return Record{}, err
	}
	defer tx.Rollback(ctx)

	var holder *string
	err = tx.QueryRow(ctx,
		`SELECT assigned_to FROM assets WHERE asset_id = $1 FOR UPDATE`,
		input.AssetID).Scan(&holder)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Record{}, ErrAssetNotFound
		}
		return Record{}, err
	}

	var hasOpen bool
	err = tx.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM repair_records WHERE asset_id = $1 AND ended_at IS NULL)`,
		input.AssetID).Scan(&hasOpen)
	if err != nil {
		return Record{}, err
	}
	if hasOpen {
		return Record{}, ErrRepairAlreadyOpen
	}

	_, err = tx.Exec(ctx,
		`UPDATE assets SET under_repair = TRUE, updated_at = NOW() WHERE asset_id = $1`,
		input.AssetID)
	if err != nil {
		return Record{}, err
	}

	var loanerRef *string
	switch {
	case holder != nil && input.LoanerAssetID != nil:
		if err := r.handOutLoaner(ctx, tx, *input.LoanerAssetID, *holder); err != nil {
			return Record{}, err
		}
		loanerRef = input.LoanerAssetID
	case input.LoanerAssetID != nil:
		r.logger.Warn("loaner ignored: asset has no holder to hand it to",
			zap.String("asset_id", input.AssetID),
			zap.String("loaner_asset_id", *input.LoanerAssetID))
	}

	var record Record
	record.AssetID = input.AssetID
	record.LoanerAssetID = loanerRef
	record.Details = input.Details
	err = tx.QueryRow(ctx,
		`INSERT INTO repair_records (asset_id, loaner_asset_id, details, started_at)
         VALUES ($1, $2, $3, NOW())
         RETURNING id, started_at`,
		input.AssetID, loanerRef, input.Details).Scan(&record.ID, &record.StartedAt)
	if err != nil {
		return Record{}, err
	}

	if err := tx.Commit(ctx); err != nil {
		return Record{}, err
	}

	r.logger.Info("repair started",
		zap.String("asset_id", input.AssetID),
		zap.Stringp("loaner_asset_id", loanerRef))
	return record, nil
}

func (r *postgresRepairRepository) handOutLoaner(ctx context.Context, tx pgx.Tx, loanerID, holderID string) error {
	var exists bool
	if err := tx.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM assets WHERE asset_id = $1)`, loanerID).Scan(&exists); err != nil {
		return err
	}
	if !exists {
		return ErrLoanerNotFound
	}

	_, err := tx.Exec(ctx,
		`UPDATE assets SET loaner_in_use = TRUE, assigned_to = $1, updated_at = NOW() WHERE asset_id = $2`,
		holderID, loanerID)
	if err != nil {
		return err
	}

	var name string
	err = tx.QueryRow(ctx,
		`SELECT COALESCE(name, '') FROM employees WHERE employee_id = $1`, holderID).Scan(&name)
	if err != nil || name == "" {
		name = holderID
	}

	_, err = tx.Exec(ctx,
		`INSERT INTO assignment_history (asset_id, employee_id, employee_name, assigned_on, is_active)
         VALUES ($1, $2, $3, CURRENT_DATE, TRUE)`,
		loanerID, holderID, name)
	return err
}

// EndRepair closes the open repair episode. A loaner, if one was handed out,
// is returned to the pool: assignment closed, in-use flag and holder cleared.
// A second call for the same episode fails with ErrNoOpenRepair.
func (r *postgresRepairRepository) EndRepair(ctx context.Context, assetID string) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	var exists bool
	if err := tx.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM assets WHERE asset_id = $1)`, assetID).Scan(&exists); err != nil {
		return err
	}
	if !exists {
		return ErrAssetNotFound
	}

	var recordID int64
	var loanerID *string
	err = tx.QueryRow(ctx,
		`SELECT id, loaner_asset_id FROM repair_records
         WHERE asset_id = $1 AND ended_at IS NULL
         FOR UPDATE`,
		assetID).Scan(&recordID, &loanerID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrNoOpenRepair
		}
		return err
	}

	if loanerID != nil {
		_, err = tx.Exec(ctx,
			`UPDATE assignment_history
             SET returned_on = CURRENT_DATE, is_active = FALSE
             WHERE asset_id = $1 AND is_active = TRUE`,
			*loanerID)
		if err != nil {
			return err
		}

		_, err = tx.Exec(ctx,
			`UPDATE assets SET loaner_in_use = FALSE, assigned_to = NULL, updated_at = NOW()
             WHERE asset_id = $1`,
			*loanerID)
		if err != nil {
			return err
		}
	}

	_, err = tx.Exec(ctx,
		`UPDATE repair_records SET ended_at = NOW() WHERE id = $1`, recordID)
	if err != nil {
		return err
	}

	_, err = tx.Exec(ctx,
		`UPDATE assets SET under_repair = FALSE, updated_at = NOW() WHERE asset_id = $1`, assetID)
	if err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return err
	}

	r.logger.Info("repair ended",
		zap.String("asset_id", assetID),
		zap.Stringp("loaner_asset_id", loanerID))
	return nil
}

func (r *postgresRepairRepository) ActiveRepair(ctx context.Context, assetID string) (Record, error) {
	query := `SELECT id, asset_id, loaner_asset_id, COALESCE(details, ''), started_at, ended_at
              FROM repair_records
              WHERE asset_id = $1 AND ended_at IS NULL`

	var record Record
	err := r.pool.QueryRow(ctx, query, assetID).Scan(
		&record.ID, &record.AssetID, &record.LoanerAssetID,
		&record.Details, &record.StartedAt, &record.EndedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Record{}, ErrNoOpenRepair
		}
		return Record{}, err
	}
	return record, nil
}

// AvailableLoaners returns the eligible substitute pool: same type,
// unassigned, not under repair, not already loaned out.
func (r *postgresRepairRepository) AvailableLoaners(ctx context.Context, assetType, excludeAssetID string) ([]Loaner, error) {
	query := `SELECT asset_id, COALESCE(serial_no, ''), COALESCE(brand, ''), COALESCE(model, '')
              FROM assets
              WHERE asset_type = $1
                AND asset_id <> $2
                AND assigned_to IS NULL
                AND under_repair = FALSE
                AND loaner_in_use = FALSE
              ORDER BY asset_id`

	rows, err := r.pool.Query(ctx, query, assetType, excludeAssetID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	loaners := make([]Loaner, 0)
	for rows.Next() {
		var l Loaner
		if err := rows.Scan(&l.AssetID, &l.SerialNumber, &l.Brand, &l.Model); err != nil {
			return nil, err
		}
		loaners = append(loaners, l)
	}
	return loaners, rows.Err()
}
