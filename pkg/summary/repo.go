package summary

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

type SummaryRepository interface {
	Summary(ctx context.Context) ([]Row, error)
	Ping(ctx context.Context) error
}

type postgresSummaryRepository struct {
	pool   *pgxpool.Pool
	logger *zap.Logger
}

func NewPostgresSummaryRepository(pool *pgxpool.Pool, logger *zap.Logger) SummaryRepository {
	return &postgresSummaryRepository{pool: pool, logger: logger}
}

// Summary recomputes the grouped counts on every call; nothing is cached.
func (r *postgresSummaryRepository) Summary(ctx context.Context) ([]Row, error) {
	query := `SELECT COALESCE(a.asset_type, ''),
                     COALESCE(e.department, 'Not Assigned') AS department,
                     COALESCE(a.brand, ''), COALESCE(a.model, ''),
                     COUNT(*)
              FROM assets a
              LEFT JOIN employees e ON a.assigned_to = e.employee_id
              GROUP BY a.asset_type, department, a.brand, a.model
              ORDER BY a.asset_type, department, a.brand, a.model`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := make([]Row, 0)
	for rows.Next() {
		var row Row
		if err := rows.Scan(&row.AssetType, &row.Department, &row.Brand, &row.Model, &row.Count); err != nil {
			return nil, err
		}
		result = append(result, row)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	r.logger.Debug("summary computed", zap.Int("rows", len(result)))
	return result, nil
}

func (r *postgresSummaryRepository) Ping(ctx context.Context) error {
	return r.pool.Ping(ctx)
}
