package repository

import (
	"bookrental/internal/api/models"

	"gorm.io/gorm"
)

// BookRepository defines the interface for book data operations.
type BookRepository interface {
	Create(book *models.Book) error
	Update(book *models.Book) error
	Delete(id string) error
	FindByID(id string) (*models.Book, error)
	FindAll() ([]models.Book, error)
}

// bookRepository is the GORM implementation of BookRepository.
type bookRepository struct {
	db *gorm.DB
}

// NewBookRepository creates a new instance of BookRepository in a GORM implementation
func NewBookRepository(db *gorm.DB) BookRepository {
	return &bookRepository{db: db}
}

func (r *bookRepository) Create(book *models.Book) error {
	return r.db.Create(book).Error
}

// Update persists the editable fields only. RatingSum and RatingCount are
// owned by the rating transaction and must not be touched here.
func (r *bookRepository) Update(book *models.Book) error {
	return r.db.Model(&models.Book{}).
		Where("id = ?", book.ID).
		Updates(map[string]any{
			"name":   book.Name,
			"author": book.Author,
			"isbn":   book.ISBN,
			"url":    book.URL,
		}).Error
}

func (r *bookRepository) Delete(id string) error {
	result := r.db.Where("id = ?", id).Delete(&models.Book{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *bookRepository) FindByID(id string) (*models.Book, error) {
	var book models.Book
	if err := r.db.First(&book, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &book, nil
}

func (r *bookRepository) FindAll() ([]models.Book, error) {
	var books []models.Book
	if err := r.db.Order("created_at").Find(&books).Error; err != nil {
		return nil, err
	}
	return books, nil
}
