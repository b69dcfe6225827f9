package dto

import "bookrental/internal/api/models"

// BookRequest: payload for creating or updating a book
type BookRequest struct {
	Name   string `json:"name" binding:"required"`
	Author string `json:"author" binding:"required"`
	ISBN   string `json:"isbn" binding:"required"`
	URL    string `json:"url"`
}

// BookResponse: book fields plus the computed running average
type BookResponse struct {
	ID            string  `json:"id"`
	Name          string  `json:"name"`
	Author        string  `json:"author"`
	ISBN          string  `json:"isbn"`
	URL           string  `json:"url"`
	AverageRating float64 `json:"average_rating"`
}

// BookWithAvailability: book listing entry with the availability flag for
// a requested date range
type BookWithAvailability struct {
	ID            string  `json:"id"`
	Name          string  `json:"name"`
	Author        string  `json:"author"`
	ISBN          string  `json:"isbn"`
	URL           string  `json:"url"`
	AverageRating float64 `json:"average_rating"`
	Available     bool    `json:"available"`
}

// FromModelToBookResponse converts a Book model to BookResponse DTO
func FromModelToBookResponse(book *models.Book) *BookResponse {
	return &BookResponse{
		ID:            book.ID,
		Name:          book.Name,
		Author:        book.Author,
		ISBN:          book.ISBN,
		URL:           book.URL,
		AverageRating: book.AverageRating(),
	}
}
