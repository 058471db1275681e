package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/DenisMukonin/Project-Portfolio/internal/domain"
)

// listIDs returns the ids of every row in the portfolio scope of an ordered
// child table. The caller compares them as a set against a reorder request.
func listIDs(ctx context.Context, db *sqlx.DB, table string, portfolioID uuid.UUID) ([]uuid.UUID, error) {
	ids := []uuid.UUID{}
	query := fmt.Sprintf(`SELECT id FROM %s WHERE portfolio_id = $1`, table)
	if err := db.SelectContext(ctx, &ids, query, portfolioID); err != nil {
		return nil, fmt.Errorf("list %s ids for portfolio %s: %w", table, portfolioID, err)
	}
	return ids, nil
}

// updateOrders applies all index updates in one transaction so a reader never
// observes a partially applied ordering. The portfolio_id predicate keeps a
// validated request from touching rows outside its scope.
func updateOrders(ctx context.Context, db *sqlx.DB, table string, portfolioID uuid.UUID, updates []domain.OrderUpdate) (int, error) {
	tx, err := db.BeginTxx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("begin reorder tx: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // no-op after commit

	query := fmt.Sprintf(
		`UPDATE %s SET order_index = $1, updated_at = NOW() WHERE id = $2 AND portfolio_id = $3`, table)

	updated := 0
	for _, u := range updates {
		res, err := tx.ExecContext(ctx, query, u.OrderIndex, u.ID, portfolioID)
		if err != nil {
			return 0, fmt.Errorf("reorder %s row %s: %w", table, u.ID, err)
		}
		n, err := res.RowsAffected()
		if err != nil {
			return 0, fmt.Errorf("reorder %s row %s: %w", table, u.ID, err)
		}
		updated += int(n)
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit reorder tx: %w", err)
	}
	return updated, nil
}

// nextOrderIndex returns max(order_index)+1 within the portfolio scope,
// starting from 0 for an empty collection.
func nextOrderIndex(ctx context.Context, db *sqlx.DB, table string, portfolioID uuid.UUID) (int, error) {
	var next int
	query := fmt.Sprintf(
		`SELECT COALESCE(MAX(order_index), -1) + 1 FROM %s WHERE portfolio_id = $1`, table)
	if err := db.GetContext(ctx, &next, query, portfolioID); err != nil {
		return 0, fmt.Errorf("next %s order index for portfolio %s: %w", table, portfolioID, err)
	}
	return next, nil
}
