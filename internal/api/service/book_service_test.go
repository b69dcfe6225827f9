package service

import (
	"context"
	"testing"

	"bookrental/internal/api/dto"
	"bookrental/internal/api/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newBookServiceForTest() (BookService, *mockBookRepo, *mockRentalRepo, *mockUserRepo) {
	bookRepo := &mockBookRepo{}
	rentalRepo := &mockRentalRepo{}
	userRepo := &mockUserRepo{}
	svc := NewBookService(bookRepo, rentalRepo, userRepo, nil, testLogger())
	return svc, bookRepo, rentalRepo, userRepo
}

func validBookRequest() *dto.BookRequest {
	return &dto.BookRequest{
		Name:   "The Go Programming Language",
		Author: "Donovan & Kernighan",
		ISBN:   "978-0134190440",
		URL:    "https://example.com/gopl",
	}
}

func TestCreateBook_Manager(t *testing.T) {
	svc, bookRepo, _, userRepo := newBookServiceForTest()

	userRepo.On("FindByID", "m1").Return(&models.User{ID: "m1", Role: models.RoleManager}, nil)
	bookRepo.On("Create", mock.AnythingOfType("*models.Book")).Return(nil)

	book, err := svc.CreateBook(context.Background(), "m1", validBookRequest())

	require.NoError(t, err)
	assert.Equal(t, "The Go Programming Language", book.Name)
	assert.Zero(t, book.AverageRating)

	created := bookRepo.Calls[0].Arguments.Get(0).(*models.Book)
	assert.Zero(t, created.RatingSum)
	assert.Zero(t, created.RatingCount)
}

func TestCreateBook_NonManager(t *testing.T) {
	svc, bookRepo, _, userRepo := newBookServiceForTest()

	userRepo.On("FindByID", "u1").Return(&models.User{ID: "u1", Role: models.RoleUser}, nil)

	_, err := svc.CreateBook(context.Background(), "u1", validBookRequest())

	assert.ErrorIs(t, err, ErrForbidden)
	bookRepo.AssertNotCalled(t, "Create", mock.Anything)
}

func TestCreateBook_MissingFields(t *testing.T) {
	svc, bookRepo, _, _ := newBookServiceForTest()

	req := validBookRequest()
	req.ISBN = ""

	_, err := svc.CreateBook(context.Background(), "m1", req)

	assert.ErrorIs(t, err, ErrInvalidInput)
	bookRepo.AssertNotCalled(t, "Create", mock.Anything)
}

func TestUpdateBook_NotFound(t *testing.T) {
	svc, bookRepo, _, userRepo := newBookServiceForTest()

	userRepo.On("FindByID", "m1").Return(&models.User{ID: "m1", Role: models.RoleManager}, nil)
	bookRepo.On("FindByID", "missing").Return(nil, gorm.ErrRecordNotFound)

	err := svc.UpdateBook(context.Background(), "m1", "missing", validBookRequest())

	assert.ErrorIs(t, err, ErrNotFound)
	bookRepo.AssertNotCalled(t, "Update", mock.Anything)
}

func TestDeleteBook_NonManager(t *testing.T) {
	svc, bookRepo, _, userRepo := newBookServiceForTest()

	userRepo.On("FindByID", "u1").Return(&models.User{ID: "u1", Role: models.RoleUser}, nil)

	err := svc.DeleteBook(context.Background(), "u1", "b1")

	assert.ErrorIs(t, err, ErrForbidden)
	bookRepo.AssertNotCalled(t, "Delete", mock.Anything)
}

func TestListWithAvailability(t *testing.T) {
	svc, bookRepo, rentalRepo, _ := newBookServiceForTest()

	bookRepo.On("FindAll").Return([]models.Book{
		{ID: "b1", Name: "Taken", RatingSum: 8, RatingCount: 2},
		{ID: "b2", Name: "Free"},
	}, nil)
	rentalRepo.On("FindAll").Return([]models.Rental{{
		ID:        "r1",
		BookID:    "b1",
		UserID:    "u1",
		StartTime: day("2024-01-01"),
		EndTime:   day("2024-01-05"),
		Status:    models.RentalStatusReserved,
	}}, nil)

	listing, err := svc.ListWithAvailability(context.Background(), day("2024-01-03"), day("2024-01-04"))

	require.NoError(t, err)
	require.Len(t, listing, 2)

	byID := map[string]bool{}
	for _, entry := range listing {
		byID[entry.ID] = entry.Available
	}
	assert.False(t, byID["b1"])
	assert.True(t, byID["b2"])

	for _, entry := range listing {
		if entry.ID == "b1" {
			assert.InDelta(t, 4.0, entry.AverageRating, 0.001)
		}
	}
}
