package models

import (
	"time"

	"github.com/google/uuid"
)

type Resource struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Category  string    `json:"category"`
	Quantity  int       `json:"quantity"`
	Threshold int       `json:"threshold"`
	Latitude  float64   `json:"latitude"`
	Longitude float64   `json:"longitude"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// IsLowStock сообщает, опустился ли запас до порога или ниже
func (r *Resource) IsLowStock() bool {
	return r.Quantity <= r.Threshold
}
