package dto

import (
	"time"

	"bookrental/internal/api/models"
)

// CreateRentalRequest: payload for reserving a book. Dates are day
// precision, format 2006-01-02.
type CreateRentalRequest struct {
	BookID    string `json:"book_id" binding:"required"`
	UserID    string `json:"user_id" binding:"required"`
	StartTime string `json:"start_time" binding:"required"`
	EndTime   string `json:"end_time" binding:"required"`
}

// RateRentalRequest: payload for finishing or rating a reservation
type RateRentalRequest struct {
	BookID string `json:"book_id" binding:"required"`
	Rating *int   `json:"rating" binding:"required"`
}

// ReservationResponse: a rental joined with denormalized user and book
// snapshots at read time
type ReservationResponse struct {
	ID        string        `json:"id"`
	Status    string        `json:"status"`
	StartTime time.Time     `json:"start_time"`
	EndTime   time.Time     `json:"end_time"`
	Rating    *int          `json:"rating"`
	Book      *BookResponse `json:"book,omitempty"`
	User      *UserResponse `json:"user,omitempty"`
}

// ReservationsResponse: the caller's reservations split into the active
// and past buckets
type ReservationsResponse struct {
	Active []ReservationResponse `json:"active"`
	Past   []ReservationResponse `json:"past"`
}

// FromModelToReservationResponse converts a joined Rental to its view DTO
func FromModelToReservationResponse(rental *models.Rental) *ReservationResponse {
	resp := &ReservationResponse{
		ID:        rental.ID,
		Status:    rental.Status,
		StartTime: rental.StartTime,
		EndTime:   rental.EndTime,
		Rating:    rental.Rating,
	}
	if rental.Book != nil {
		resp.Book = FromModelToBookResponse(rental.Book)
	}
	if rental.User != nil {
		resp.User = FromModelToUserResponse(rental.User)
	}
	return resp
}
