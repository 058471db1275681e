package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/DenisMukonin/Project-Portfolio/internal/domain"
)

// ViewEventRepository handles the append-only view event log.
type ViewEventRepository struct {
	db *sqlx.DB
}

// NewViewEventRepository creates a new ViewEventRepository.
func NewViewEventRepository(db *sqlx.DB) *ViewEventRepository {
	return &ViewEventRepository{db: db}
}

// Insert records one view event.
func (r *ViewEventRepository) Insert(ctx context.Context, e domain.ViewEvent) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO view_events (portfolio_id, user_agent, referrer, device)
		 VALUES ($1, $2, $3, $4)`,
		e.PortfolioID, e.UserAgent, e.Referrer, e.Device)
	if err != nil {
		return fmt.Errorf("insert view event: %w", err)
	}
	return nil
}

// CountAll returns the all-time view count for a portfolio.
func (r *ViewEventRepository) CountAll(ctx context.Context, portfolioID uuid.UUID) (int, error) {
	var n int
	err := r.db.GetContext(ctx, &n,
		`SELECT count(*) FROM view_events WHERE portfolio_id = $1`, portfolioID)
	if err != nil {
		return 0, fmt.Errorf("count views for portfolio %s: %w", portfolioID, err)
	}
	return n, nil
}

// CountSince returns the view count within a trailing window.
func (r *ViewEventRepository) CountSince(ctx context.Context, portfolioID uuid.UUID, since time.Time) (int, error) {
	var n int
	err := r.db.GetContext(ctx, &n,
		`SELECT count(*) FROM view_events WHERE portfolio_id = $1 AND viewed_at >= $2`,
		portfolioID, since)
	if err != nil {
		return 0, fmt.Errorf("count windowed views for portfolio %s: %w", portfolioID, err)
	}
	return n, nil
}

// DailyCounts groups views since the given instant into UTC calendar days.
// Days without events produce no row; the aggregator zero-fills them.
func (r *ViewEventRepository) DailyCounts(ctx context.Context, portfolioID uuid.UUID, since time.Time) ([]domain.DailyViews, error) {
	counts := []domain.DailyViews{}
	err := r.db.SelectContext(ctx, &counts,
		`SELECT to_char(viewed_at AT TIME ZONE 'UTC', 'YYYY-MM-DD') AS date, count(*) AS views
		 FROM view_events
		 WHERE portfolio_id = $1 AND viewed_at >= $2
		 GROUP BY 1
		 ORDER BY 1 ASC`,
		portfolioID, since)
	if err != nil {
		return nil, fmt.Errorf("daily views for portfolio %s: %w", portfolioID, err)
	}
	return counts, nil
}

// DeviceCounts groups views since the given instant by device class.
func (r *ViewEventRepository) DeviceCounts(ctx context.Context, portfolioID uuid.UUID, since time.Time) ([]domain.DeviceViews, error) {
	counts := []domain.DeviceViews{}
	err := r.db.SelectContext(ctx, &counts,
		`SELECT device, count(*) AS views
		 FROM view_events
		 WHERE portfolio_id = $1 AND viewed_at >= $2
		 GROUP BY device
		 ORDER BY views DESC`,
		portfolioID, since)
	if err != nil {
		return nil, fmt.Errorf("device views for portfolio %s: %w", portfolioID, err)
	}
	return counts, nil
}
