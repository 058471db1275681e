package domain

import (
	"time"

	"github.com/google/uuid"
)

// Experience is a work history entry. IsCurrent implies EndDate is nil.
type Experience struct {
	ID          uuid.UUID `json:"id" db:"id"`
	PortfolioID uuid.UUID `json:"portfolio_id" db:"portfolio_id"`
	Title       string    `json:"title" db:"title"`
	Company     string    `json:"company" db:"company"`
	Location    *string   `json:"location,omitempty" db:"location"`
	StartDate   Date      `json:"start_date" db:"start_date"`
	EndDate     *Date     `json:"end_date,omitempty" db:"end_date"`
	IsCurrent   bool      `json:"is_current" db:"is_current"`
	Description *string   `json:"description,omitempty" db:"description"`
	OrderIndex  int       `json:"order_index" db:"order_index"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time `json:"updated_at" db:"updated_at"`
}
