package domain

import (
	"time"

	"github.com/google/uuid"
)

// Education is a study history entry. IsCurrent implies EndDate is nil.
type Education struct {
	ID           uuid.UUID `json:"id" db:"id"`
	PortfolioID  uuid.UUID `json:"portfolio_id" db:"portfolio_id"`
	School       string    `json:"school" db:"school"`
	Degree       string    `json:"degree" db:"degree"`
	FieldOfStudy *string   `json:"field_of_study,omitempty" db:"field_of_study"`
	StartDate    Date      `json:"start_date" db:"start_date"`
	EndDate      *Date     `json:"end_date,omitempty" db:"end_date"`
	IsCurrent    bool      `json:"is_current" db:"is_current"`
	Description  *string   `json:"description,omitempty" db:"description"`
	OrderIndex   int       `json:"order_index" db:"order_index"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time `json:"updated_at" db:"updated_at"`
}
