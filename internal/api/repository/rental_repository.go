package repository

import (
	"context"

	"bookrental/internal/api/models"

	"gorm.io/gorm"
)

// RentalRepository defines the interface for rental data operations.
type RentalRepository interface {
	Create(rental *models.Rental) error
	FindByID(id string) (*models.Rental, error)
	FindAll() ([]models.Rental, error)
	FindAllWithJoins() ([]models.Rental, error)
	UpdateStatus(id, status string) error
	ApplyRating(ctx context.Context, rentalID, bookID string, rating int) error
}

// rentalRepository is the GORM implementation of RentalRepository.
type rentalRepository struct {
	db *gorm.DB
}

// NewRentalRepository creates a new instance of RentalRepository in a GORM implementation
func NewRentalRepository(db *gorm.DB) RentalRepository {
	return &rentalRepository{db: db}
}

func (r *rentalRepository) Create(rental *models.Rental) error {
	return r.db.Create(rental).Error
}

func (r *rentalRepository) FindByID(id string) (*models.Rental, error) {
	var rental models.Rental
	if err := r.db.First(&rental, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &rental, nil
}

func (r *rentalRepository) FindAll() ([]models.Rental, error) {
	var rentals []models.Rental
	if err := r.db.Find(&rentals).Error; err != nil {
		return nil, err
	}
	return rentals, nil
}

// FindAllWithJoins loads rentals together with their user and book snapshots
// for the read-time reservation view.
func (r *rentalRepository) FindAllWithJoins() ([]models.Rental, error) {
	var rentals []models.Rental
	if err := r.db.
		Preload("User").
		Preload("Book").
		Order("start_time").
		Find(&rentals).Error; err != nil {
		return nil, err
	}
	return rentals, nil
}

func (r *rentalRepository) UpdateStatus(id, status string) error {
	return r.db.Model(&models.Rental{}).Where("id = ?", id).Update("status", status).Error
}

// ApplyRating sets the rental's rating and bumps the book's rating_sum and
// rating_count inside one database transaction. The book is re-read inside
// the transaction so concurrent ratings of the same book never lose an
// update; if the book is gone the whole transaction aborts with no partial
// write.
func (r *rentalRepository) ApplyRating(ctx context.Context, rentalID, bookID string, rating int) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var book models.Book
		if err := tx.First(&book, "id = ?", bookID).Error; err != nil {
			return err
		}

		if err := tx.Model(&models.Rental{}).
			Where("id = ?", rentalID).
			Update("rating", rating).Error; err != nil {
			return err
		}

		return tx.Model(&models.Book{}).
			Where("id = ?", bookID).
			Updates(map[string]any{
				"rating_count": book.RatingCount + 1,
				"rating_sum":   book.RatingSum + int64(rating),
			}).Error
	})
}
