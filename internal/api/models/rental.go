package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	RentalStatusReserved  = "reserved"
	RentalStatusCancelled = "cancelled"

	RatingMin = 0
	RatingMax = 5
)

type Rental struct {
	ID        string    `gorm:"primaryKey;type:uuid" json:"id"`
	BookID    string    `gorm:"type:uuid;not null;index" json:"book_id"`
	UserID    string    `gorm:"type:uuid;not null;index" json:"user_id"`
	StartTime time.Time `gorm:"not null" json:"start_time"`
	EndTime   time.Time `gorm:"not null" json:"end_time"`
	Status    string    `gorm:"not null;default:'reserved'" json:"status"`
	Rating    *int      `json:"rating"` // nil until the reservation is rated; never cleared once set
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Associations
	User *User `json:"user,omitempty" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE;"`
	Book *Book `json:"book,omitempty" gorm:"foreignKey:BookID;constraint:OnDelete:CASCADE;"`
}

// BeforeCreate hook to set UUID before creating a Rental
func (rental *Rental) BeforeCreate(tx *gorm.DB) (err error) {
	if rental.ID == "" {
		rental.ID = uuid.New().String()
	}
	return
}

func (Rental) TableName() string {
	return "rentals"
}

// DateOnly discards hours, minutes, seconds, ... so reservations compare
// on calendar dates regardless of time of day.
func DateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// Occupying reports whether the rental still blocks the calendar: it must
// be reserved and not yet rated. Cancelled or rated rentals no longer
// occupy the book.
func (rental *Rental) Occupying() bool {
	return rental.Status == RentalStatusReserved && rental.Rating == nil
}

// ValidRating reports whether rating falls in the accepted range.
func ValidRating(rating int) bool {
	return rating >= RatingMin && rating <= RatingMax
}
