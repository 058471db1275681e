package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/mileusna/useragent"

	"github.com/DenisMukonin/Project-Portfolio/internal/domain"
)

const (
	chartDays      = 7
	trailingWindow = 30 * 24 * time.Hour
)

// ViewStore defines the view event access interface consumed by
// AnalyticsService.
type ViewStore interface {
	Insert(ctx context.Context, e domain.ViewEvent) error
	CountAll(ctx context.Context, portfolioID uuid.UUID) (int, error)
	CountSince(ctx context.Context, portfolioID uuid.UUID, since time.Time) (int, error)
	DailyCounts(ctx context.Context, portfolioID uuid.UUID, since time.Time) ([]domain.DailyViews, error)
	DeviceCounts(ctx context.Context, portfolioID uuid.UUID, since time.Time) ([]domain.DeviceViews, error)
}

// Cooldowner throttles repeat events per key within a window.
type Cooldowner interface {
	Allow(ctx context.Context, key string, window time.Duration) (bool, error)
}

// Stats is the analytics payload for one portfolio.
type Stats struct {
	TotalViews     int                  `json:"totalViews"`
	ThirtyDayViews int                  `json:"thirtyDayViews"`
	ChartData      []domain.DailyViews  `json:"chartData"`
	Devices        []domain.DeviceViews `json:"devices"`
}

// AnalyticsService counts and buckets view events per portfolio.
// Day boundaries are computed in UTC regardless of viewer or server local
// time zone so results are deterministic across deployments.
type AnalyticsService struct {
	portfolios PortfolioFinder
	views      ViewStore
	limiter    Cooldowner
	cooldown   time.Duration
	now        func() time.Time
}

// NewAnalyticsService creates a new AnalyticsService.
func NewAnalyticsService(portfolios PortfolioFinder, views ViewStore, limiter Cooldowner, cooldown time.Duration) *AnalyticsService {
	return &AnalyticsService{
		portfolios: portfolios,
		views:      views,
		limiter:    limiter,
		cooldown:   cooldown,
		now:        time.Now,
	}
}

// Stats computes the all-time count, the trailing 30-day count, and a
// 7-point daily series covering today and the preceding 6 days. Days
// without events are present at zero: the grouped query only returns days
// that have at least one event, so the series is filled in from a map.
// Non-owners learn nothing, not even existence: both absent and foreign
// portfolios read as not found.
func (s *AnalyticsService) Stats(ctx context.Context, userID, portfolioID uuid.UUID) (*Stats, error) {
	p, err := s.portfolios.FindByID(ctx, portfolioID)
	if err != nil {
		return nil, err
	}
	if p.UserID != userID {
		return nil, domain.ErrNotFound
	}

	now := s.now().UTC()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	chartStart := today.AddDate(0, 0, -(chartDays - 1))
	thirtyDaysAgo := now.Add(-trailingWindow)

	total, err := s.views.CountAll(ctx, portfolioID)
	if err != nil {
		return nil, err
	}
	thirtyDay, err := s.views.CountSince(ctx, portfolioID, thirtyDaysAgo)
	if err != nil {
		return nil, err
	}
	daily, err := s.views.DailyCounts(ctx, portfolioID, chartStart)
	if err != nil {
		return nil, err
	}
	devices, err := s.views.DeviceCounts(ctx, portfolioID, thirtyDaysAgo)
	if err != nil {
		return nil, err
	}

	byDate := make(map[string]int, len(daily))
	for _, d := range daily {
		byDate[d.Date] = d.Views
	}

	chart := make([]domain.DailyViews, 0, chartDays)
	for i := chartDays - 1; i >= 0; i-- {
		date := today.AddDate(0, 0, -i).Format("2006-01-02")
		chart = append(chart, domain.DailyViews{Date: date, Views: byDate[date]})
	}

	return &Stats{
		TotalViews:     total,
		ThirtyDayViews: thirtyDay,
		ChartData:      chart,
		Devices:        devices,
	}, nil
}

// TrackInput describes one public page view.
type TrackInput struct {
	PortfolioID uuid.UUID
	UserAgent   *string
	Referrer    *string
	ClientIP    string
}

// Track records one view event for an existing portfolio. Repeat views of
// the same portfolio from the same client inside the cooldown window are
// dropped with a throttling error.
func (s *AnalyticsService) Track(ctx context.Context, input TrackInput) error {
	key := fmt.Sprintf("track:%s:%s", input.PortfolioID, input.ClientIP)
	allowed, err := s.limiter.Allow(ctx, key, s.cooldown)
	if err != nil {
		return err
	}
	if !allowed {
		return domain.ErrRateLimited
	}

	if _, err := s.portfolios.FindByID(ctx, input.PortfolioID); err != nil {
		return err
	}

	return s.views.Insert(ctx, domain.ViewEvent{
		PortfolioID: input.PortfolioID,
		UserAgent:   input.UserAgent,
		Referrer:    input.Referrer,
		Device:      classifyDevice(input.UserAgent),
	})
}

// classifyDevice buckets a user agent into a coarse device class.
func classifyDevice(uaString *string) string {
	if uaString == nil || *uaString == "" {
		return "unknown"
	}
	ua := useragent.Parse(*uaString)
	switch {
	case ua.Mobile:
		return "mobile"
	case ua.Tablet:
		return "tablet"
	case ua.Bot:
		return "bot"
	default:
		return "desktop"
	}
}
