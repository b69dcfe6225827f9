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

type RentalService interface {
	CreateReservation(ctx context.Context, callerID, bookID, userID string, startTime, endTime time.Time) (*dto.ReservationResponse, error)
	CancelReservation(ctx context.Context, callerID, rentalID string) error
	FinishReservation(ctx context.Context, callerID, rentalID, bookID string, rating int) error
	RateReservation(ctx context.Context, callerID, rentalID, bookID string, rating int) error
	ReservationsForUser(callerID string) (*dto.ReservationsResponse, error)
	AllReservations(callerID string) ([]dto.ReservationResponse, error)
}

type rentalService struct {
	rentalRepo repository.RentalRepository
	bookRepo   repository.BookRepository
	userRepo   repository.UserRepository
	cache      *repository.AvailabilityCache
	logger     *slog.Logger
}

func NewRentalService(
	rentalRepo repository.RentalRepository,
	bookRepo repository.BookRepository,
	userRepo repository.UserRepository,
	cache *repository.AvailabilityCache,
	logger *slog.Logger,
) RentalService {
	return &rentalService{
		rentalRepo: rentalRepo,
		bookRepo:   bookRepo,
		userRepo:   userRepo,
		cache:      cache,
		logger:     logger,
	}
}

// CreateReservation validates and persists a new rental. The availability
// check and the write are deliberately not wrapped in one transaction: two
// concurrent creations for overlapping ranges can both pass the check.
// That window exists in the shipped system and is kept as-is.
func (s *rentalService) CreateReservation(ctx context.Context, callerID, bookID, userID string, startTime, endTime time.Time) (*dto.ReservationResponse, error) {
	if callerID != userID {
		return nil, ErrForbidden
	}
	if bookID == "" || userID == "" {
		return nil, ErrInvalidInput
	}

	start := models.DateOnly(startTime)
	end := models.DateOnly(endTime)
	// parsed request dates are UTC midnight, so today must be too or a
	// same-day reservation fails on servers west of UTC
	today := models.DateOnly(time.Now().UTC())
	if start.After(end) || start.Before(today) {
		return nil, ErrInvalidInput
	}

	if _, err := s.bookRepo.FindByID(bookID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if _, err := s.userRepo.FindByID(userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	rentals, err := s.rentalRepo.FindAll()
	if err != nil {
		return nil, err
	}
	if !IsBookAvailable(start, end, bookID, RentalsByBook(rentals)) {
		return nil, ErrNotAvailable
	}

	rental := &models.Rental{
		BookID:    bookID,
		UserID:    userID,
		StartTime: start,
		EndTime:   end,
		Status:    models.RentalStatusReserved,
		Rating:    nil,
	}

	if err := s.rentalRepo.Create(rental); err != nil {
		return nil, err
	}

	s.invalidateListing(ctx)
	return dto.FromModelToReservationResponse(rental), nil
}

// CancelReservation transitions reserved -> cancelled. The status guard
// makes a second cancel fail rather than silently succeed.
func (s *rentalService) CancelReservation(ctx context.Context, callerID, rentalID string) error {
	if _, err := s.userRepo.FindByID(callerID); err != nil {
		return ErrForbidden
	}

	rental, err := s.rentalRepo.FindByID(rentalID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}

	if rental.Status != models.RentalStatusReserved {
		return ErrNotReserved
	}
	if rental.UserID != callerID {
		return ErrForbidden
	}

	if err := s.rentalRepo.UpdateStatus(rentalID, models.RentalStatusCancelled); err != nil {
		return err
	}

	s.invalidateListing(ctx)
	return nil
}

// FinishReservation closes out a stay by rating it. Status stays reserved;
// the set rating is what marks the reservation past. Requires the rental
// to be unrated so the aggregation below runs at most once per rental.
func (s *rentalService) FinishReservation(ctx context.Context, callerID, rentalID, bookID string, rating int) error {
	rental, err := s.validateRatingWrite(callerID, rentalID, rating)
	if err != nil {
		return err
	}

	if rental.Status != models.RentalStatusReserved {
		return ErrNotReserved
	}
	if rental.Rating != nil {
		return ErrAlreadyRated
	}

	return s.applyRating(ctx, rentalID, bookID, rating)
}

// RateReservation rates a reservation whose stay already elapsed. Unlike
// FinishReservation it accepts any non-cancelled rental of the caller and
// carries no unrated guard; at-most-once stays the caller's obligation,
// matching the shipped behavior.
func (s *rentalService) RateReservation(ctx context.Context, callerID, rentalID, bookID string, rating int) error {
	rental, err := s.validateRatingWrite(callerID, rentalID, rating)
	if err != nil {
		return err
	}

	if rental.Status == models.RentalStatusCancelled {
		return ErrNotReserved
	}

	return s.applyRating(ctx, rentalID, bookID, rating)
}

// validateRatingWrite holds the guards shared by finish and rate: caller
// resolves, rental exists and belongs to the caller, rating in range.
func (s *rentalService) validateRatingWrite(callerID, rentalID string, rating int) (*models.Rental, error) {
	if _, err := s.userRepo.FindByID(callerID); err != nil {
		return nil, ErrForbidden
	}

	rental, err := s.rentalRepo.FindByID(rentalID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	if rental.UserID != callerID {
		return nil, ErrForbidden
	}
	if !models.ValidRating(rating) {
		return nil, ErrRatingOutOfRange
	}

	return rental, nil
}

func (s *rentalService) applyRating(ctx context.Context, rentalID, bookID string, rating int) error {
	if err := s.rentalRepo.ApplyRating(ctx, rentalID, bookID, rating); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}

	s.invalidateListing(ctx)
	return nil
}

// ReservationsForUser returns the caller's reservations joined with book
// and user snapshots, split into active and past. Active means reserved,
// unrated and not yet elapsed; everything else is past.
func (s *rentalService) ReservationsForUser(callerID string) (*dto.ReservationsResponse, error) {
	if _, err := s.userRepo.FindByID(callerID); err != nil {
		return nil, ErrForbidden
	}

	rentals, err := s.rentalRepo.FindAllWithJoins()
	if err != nil {
		return nil, err
	}

	today := models.DateOnly(time.Now().UTC())
	result := &dto.ReservationsResponse{
		Active: []dto.ReservationResponse{},
		Past:   []dto.ReservationResponse{},
	}

	for i := range rentals {
		rental := &rentals[i]
		if rental.UserID != callerID {
			continue
		}

		view := dto.FromModelToReservationResponse(rental)
		if rental.Status == models.RentalStatusCancelled ||
			(rental.Status == models.RentalStatusReserved && rental.Rating != nil) ||
			models.DateOnly(rental.EndTime).Before(today) {
			result.Past = append(result.Past, *view)
		} else {
			result.Active = append(result.Active, *view)
		}
	}

	return result, nil
}

// AllReservations is the manager-only listing across every user.
func (s *rentalService) AllReservations(callerID string) ([]dto.ReservationResponse, error) {
	caller, err := s.userRepo.FindByID(callerID)
	if err != nil || !caller.IsManager() {
		return nil, ErrForbidden
	}

	rentals, err := s.rentalRepo.FindAllWithJoins()
	if err != nil {
		return nil, err
	}

	responses := make([]dto.ReservationResponse, 0, len(rentals))
	for i := range rentals {
		responses = append(responses, *dto.FromModelToReservationResponse(&rentals[i]))
	}
	return responses, nil
}

func (s *rentalService) invalidateListing(ctx context.Context) {
	if err := s.cache.Invalidate(ctx); err != nil {
		s.logger.Warn("availability cache invalidation failed", "error", err)
	}
}
