package domain

import (
	"time"

	"github.com/google/uuid"
)

// ViewEvent is an append-only fact row recorded per public page view.
type ViewEvent struct {
	ID          uuid.UUID `json:"id" db:"id"`
	PortfolioID uuid.UUID `json:"portfolio_id" db:"portfolio_id"`
	ViewedAt    time.Time `json:"viewed_at" db:"viewed_at"`
	UserAgent   *string   `json:"user_agent,omitempty" db:"user_agent"`
	Referrer    *string   `json:"referrer,omitempty" db:"referrer"`
	Device      string    `json:"device" db:"device"`
}

// DailyViews is one point of a per-day view series.
type DailyViews struct {
	Date  string `json:"date" db:"date"`
	Views int    `json:"views" db:"views"`
}

// DeviceViews is a per-device-class view count.
type DeviceViews struct {
	Device string `json:"device" db:"device"`
	Views  int    `json:"views" db:"views"`
}
