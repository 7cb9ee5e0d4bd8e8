package models

import "time"

// Product represents a product in the catalog.
// Timestamps are managed by the store and never serialized.
type Product struct {
	ID           uint      `json:"id" gorm:"primaryKey;autoIncrement"`
	Name         string    `json:"name" gorm:"type:varchar(255);not null"`
	Price        float64   `json:"price" gorm:"not null"`
	Availability bool      `json:"availability" gorm:"not null"`
	CreatedAt    time.Time `json:"-"`
	UpdatedAt    time.Time `json:"-"`
}

// ProductInput carries the writable fields of a product.
// Availability is a pointer so an omitted value can fall back to true on create.
type ProductInput struct {
	Name         string  `json:"name"`
	Price        float64 `json:"price"`
	Availability *bool   `json:"availability"`
}

// AvailabilityOr returns the requested availability or def when it was omitted.
func (in ProductInput) AvailabilityOr(def bool) bool {
	if in.Availability == nil {
		return def
	}
	return *in.Availability
}
