package domain

import "github.com/google/uuid"

// OrderUpdate assigns a new position to one child record.
type OrderUpdate struct {
	ID         uuid.UUID
	OrderIndex int
}
