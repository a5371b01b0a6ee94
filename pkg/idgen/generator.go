package idgen

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

// Prefix is prepended to every issued counter value.
const Prefix = "AST_"

// counterFloor is the value the counter row is initialized to when missing;
// the first issued id is therefore AST_1001.
const counterFloor = 1000

// Generator issues globally unique, monotonically increasing asset ids from a
// single-row counter table. An aborted transaction leaves a gap in the
// sequence; monotonicity, not density, is the guarantee.
type Generator struct {
	pool   *pgxpool.Pool
	logger *zap.Logger
}

func NewGenerator(pool *pgxpool.Pool, logger *zap.Logger) *Generator {
	return &Generator{pool: pool, logger: logger}
}

// NextID issues an id in its own transaction.
func (g *Generator) NextID(ctx context.Context) (string, error) {
	tx, err := g.pool.Begin(ctx)
	if err != nil {
		return "", err
	}
	defer tx.Rollback(ctx)

	id, err := NextIDTx(ctx, tx)
	if err != nil {
		return "", err
	}

	if err := tx.Commit(ctx); err != nil {
		return "", err
	}

	g.logger.Info("issued asset id", zap.String("asset_id", id))
	return id, nil
}

// NextIDTx increments the counter inside the caller's transaction. The
// UPDATE ... RETURNING takes a row lock, so concurrent callers serialize on
// the counter row and never observe the same value. A missing counter row is
// lazily initialized to the floor before the first increment.
func NextIDTx(ctx context.Context, tx pgx.Tx) (string, error) {
	value, err := increment(ctx, tx)
	if errors.Is(err, pgx.ErrNoRows) {
		_, err = tx.Exec(ctx,
			`INSERT INTO asset_id_counter (id, current_value) VALUES (1, $1) ON CONFLICT (id) DO NOTHING`,
			counterFloor)
		if err != nil {
			return "", err
		}
		value, err = increment(ctx, tx)
	}
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%s%d", Prefix, value), nil
}

func increment(ctx context.Context, tx pgx.Tx) (int64, error) {
	var value int64
	err := tx.QueryRow(ctx,
		`UPDATE asset_id_counter SET current_value = current_value + 1 WHERE id = 1 RETURNING current_value`,
	).Scan(&value)
	return value, err
}
