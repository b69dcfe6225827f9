package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Book struct {
	ID          string    `gorm:"primaryKey;type:uuid" json:"id"`
	Name        string    `gorm:"not null" json:"name"`
	Author      string    `gorm:"not null" json:"author"`
	ISBN        string    `gorm:"not null" json:"isbn"`
	URL         string    `json:"url"`
	RatingSum   int64     `gorm:"not null;default:0;check:rating_sum >= 0" json:"rating_sum"`
	RatingCount int64     `gorm:"not null;default:0;check:rating_count >= 0" json:"rating_count"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// BeforeCreate hook to set UUID before creating a Book
func (book *Book) BeforeCreate(tx *gorm.DB) (err error) {
	if book.ID == "" {
		book.ID = uuid.New().String()
	}
	return
}

func (Book) TableName() string {
	return "books"
}

// AverageRating returns the running average. RatingSum and RatingCount are
// only ever incremented together, never decremented.
func (book *Book) AverageRating() float64 {
	if book.RatingCount == 0 {
		return 0
	}
	return float64(book.RatingSum) / float64(book.RatingCount)
}
