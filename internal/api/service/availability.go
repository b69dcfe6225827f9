package service

import (
	"time"

	"bookrental/internal/api/models"
)

// RentalsByBook groups rentals by their book id so the availability check
// runs in O(books + rentals) overall.
func RentalsByBook(rentals []models.Rental) map[string][]models.Rental {
	grouped := make(map[string][]models.Rental, len(rentals))
	for _, rental := range rentals {
		grouped[rental.BookID] = append(grouped[rental.BookID], rental)
	}
	return grouped
}

// IsBookAvailable reports whether the book is free for the requested date
// range, comparing calendar dates only. A book is taken iff some rental is
// still occupying it (reserved and unrated) and either boundary check hits:
//
//	existing.start <= requested.start <= existing.end
//	requested.start <= existing.start <= requested.end
//
// The two branches cover every closed-interval overlap: whichever range
// starts later has its start inside the other when the ranges collide.
func IsBookAvailable(startTime, endTime time.Time, bookID string, rentalsByBook map[string][]models.Rental) bool {
	rentals, ok := rentalsByBook[bookID]
	if !ok || len(rentals) == 0 {
		return true
	}

	s := models.DateOnly(startTime)
	e := models.DateOnly(endTime)

	for _, rental := range rentals {
		if !rental.Occupying() {
			// cancelled or already rated rentals no longer block the calendar
			continue
		}

		rs := models.DateOnly(rental.StartTime)
		re := models.DateOnly(rental.EndTime)

		if (!rs.After(s) && !re.Before(s)) || (!s.After(rs) && !rs.After(e)) {
			return false
		}
	}

	return true
}
