package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"bookrental/internal/api/dto"
	"bookrental/internal/api/models"
	"bookrental/internal/api/repository"

	"gorm.io/gorm"
)

type BookService interface {
	ListWithAvailability(ctx context.Context, startTime, endTime time.Time) ([]dto.BookWithAvailability, error)
	GetBook(id string) (*dto.BookResponse, error)
	CreateBook(ctx context.Context, callerID string, req *dto.BookRequest) (*dto.BookResponse, error)
	UpdateBook(ctx context.Context, callerID, bookID string, req *dto.BookRequest) error
	DeleteBook(ctx context.Context, callerID, bookID string) error
}

type bookService struct {
	bookRepo   repository.BookRepository
	rentalRepo repository.RentalRepository
	userRepo   repository.UserRepository
	cache      *repository.AvailabilityCache
	logger     *slog.Logger
}

func NewBookService(
	bookRepo repository.BookRepository,
	rentalRepo repository.RentalRepository,
	userRepo repository.UserRepository,
	cache *repository.AvailabilityCache,
	logger *slog.Logger,
) BookService {
	return &bookService{
		bookRepo:   bookRepo,
		rentalRepo: rentalRepo,
		userRepo:   userRepo,
		cache:      cache,
		logger:     logger,
	}
}

// ListWithAvailability returns every book with its running average and
// whether it is free for the requested date range. Served from the Redis
// cache when warm; a cache failure degrades to the database path.
func (s *bookService) ListWithAvailability(ctx context.Context, startTime, endTime time.Time) ([]dto.BookWithAvailability, error) {
	var cached []dto.BookWithAvailability
	hit, err := s.cache.Get(ctx, startTime, endTime, &cached)
	if err != nil {
		s.logger.Warn("availability cache read failed", "error", err)
	} else if hit {
		return cached, nil
	}

	books, err := s.bookRepo.FindAll()
	if err != nil {
		return nil, err
	}

	rentals, err := s.rentalRepo.FindAll()
	if err != nil {
		return nil, err
	}
	rentalsByBook := RentalsByBook(rentals)

	listing := make([]dto.BookWithAvailability, 0, len(books))
	for _, book := range books {
		listing = append(listing, dto.BookWithAvailability{
			ID:            book.ID,
			Name:          book.Name,
			Author:        book.Author,
			ISBN:          book.ISBN,
			URL:           book.URL,
			AverageRating: book.AverageRating(),
			Available:     IsBookAvailable(startTime, endTime, book.ID, rentalsByBook),
		})
	}

	if err := s.cache.Set(ctx, startTime, endTime, listing); err != nil {
		s.logger.Warn("availability cache write failed", "error", err)
	}

	return listing, nil
}

func (s *bookService) GetBook(id string) (*dto.BookResponse, error) {
	book, err := s.bookRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return dto.FromModelToBookResponse(book), nil
}

func (s *bookService) CreateBook(ctx context.Context, callerID string, req *dto.BookRequest) (*dto.BookResponse, error) {
	if err := s.validateBookWrite(callerID, req); err != nil {
		return nil, err
	}

	book := &models.Book{
		Name:   req.Name,
		Author: req.Author,
		ISBN:   req.ISBN,
		URL:    req.URL,
		// new books start unrated
		RatingSum:   0,
		RatingCount: 0,
	}

	if err := s.bookRepo.Create(book); err != nil {
		return nil, err
	}

	s.invalidateListing(ctx)
	return dto.FromModelToBookResponse(book), nil
}

func (s *bookService) UpdateBook(ctx context.Context, callerID, bookID string, req *dto.BookRequest) error {
	if err := s.validateBookWrite(callerID, req); err != nil {
		return err
	}

	book, err := s.bookRepo.FindByID(bookID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}

	book.Name = req.Name
	book.Author = req.Author
	book.ISBN = req.ISBN
	book.URL = req.URL

	if err := s.bookRepo.Update(book); err != nil {
		return err
	}

	s.invalidateListing(ctx)
	return nil
}

func (s *bookService) DeleteBook(ctx context.Context, callerID, bookID string) error {
	if err := s.requireManager(callerID); err != nil {
		return err
	}

	if err := s.bookRepo.Delete(bookID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}

	s.invalidateListing(ctx)
	return nil
}

// validateBookWrite covers both create and update: manager role plus the
// required book fields.
func (s *bookService) validateBookWrite(callerID string, req *dto.BookRequest) error {
	if req.Name == "" || req.Author == "" || req.ISBN == "" {
		return ErrInvalidInput
	}
	return s.requireManager(callerID)
}

func (s *bookService) requireManager(callerID string) error {
	caller, err := s.userRepo.FindByID(callerID)
	if err != nil || !caller.IsManager() {
		return ErrForbidden
	}
	return nil
}

func (s *bookService) invalidateListing(ctx context.Context) {
	if err := s.cache.Invalidate(ctx); err != nil {
		s.logger.Warn("availability cache invalidation failed", "error", err)
	}
}
