package service

import (
	"context"
	"io"
	"log/slog"

	"bookrental/internal/api/models"

	"github.com/stretchr/testify/mock"
)

// Repository mocks shared by the service tests.

type mockUserRepo struct {
	mock.Mock
}

func (m *mockUserRepo) Create(user *models.User) error {
	return m.Called(user).Error(0)
}

func (m *mockUserRepo) Update(user *models.User) error {
	return m.Called(user).Error(0)
}

func (m *mockUserRepo) Delete(id string) error {
	return m.Called(id).Error(0)
}

func (m *mockUserRepo) FindByID(id string) (*models.User, error) {
	args := m.Called(id)
	if user := args.Get(0); user != nil {
		return user.(*models.User), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockUserRepo) FindByEmail(email string) (*models.User, error) {
	args := m.Called(email)
	if user := args.Get(0); user != nil {
		return user.(*models.User), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockUserRepo) FindAll() ([]models.User, error) {
	args := m.Called()
	if users := args.Get(0); users != nil {
		return users.([]models.User), args.Error(1)
	}
	return nil, args.Error(1)
}

type mockBookRepo struct {
	mock.Mock
}

func (m *mockBookRepo) Create(book *models.Book) error {
	return m.Called(book).Error(0)
}

func (m *mockBookRepo) Update(book *models.Book) error {
	return m.Called(book).Error(0)
}

func (m *mockBookRepo) Delete(id string) error {
	return m.Called(id).Error(0)
}

func (m *mockBookRepo) FindByID(id string) (*models.Book, error) {
	args := m.Called(id)
	if book := args.Get(0); book != nil {
		return book.(*models.Book), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockBookRepo) FindAll() ([]models.Book, error) {
	args := m.Called()
	if books := args.Get(0); books != nil {
		return books.([]models.Book), args.Error(1)
	}
	return nil, args.Error(1)
}

type mockRentalRepo struct {
	mock.Mock
}

func (m *mockRentalRepo) Create(rental *models.Rental) error {
	return m.Called(rental).Error(0)
}

func (m *mockRentalRepo) FindByID(id string) (*models.Rental, error) {
	args := m.Called(id)
	if rental := args.Get(0); rental != nil {
		return rental.(*models.Rental), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockRentalRepo) FindAll() ([]models.Rental, error) {
	args := m.Called()
	if rentals := args.Get(0); rentals != nil {
		return rentals.([]models.Rental), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockRentalRepo) FindAllWithJoins() ([]models.Rental, error) {
	args := m.Called()
	if rentals := args.Get(0); rentals != nil {
		return rentals.([]models.Rental), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockRentalRepo) UpdateStatus(id, status string) error {
	return m.Called(id, status).Error(0)
}

func (m *mockRentalRepo) ApplyRating(ctx context.Context, rentalID, bookID string, rating int) error {
	return m.Called(ctx, rentalID, bookID, rating).Error(0)
}

type mockRefreshTokenRepo struct {
	mock.Mock
}

func (m *mockRefreshTokenRepo) Create(refreshToken *models.RefreshToken) error {
	return m.Called(refreshToken).Error(0)
}

func (m *mockRefreshTokenRepo) FindByToken(tokenString string) (*models.RefreshToken, error) {
	args := m.Called(tokenString)
	if token := args.Get(0); token != nil {
		return token.(*models.RefreshToken), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockRefreshTokenRepo) Revoke(tokenID string) error {
	return m.Called(tokenID).Error(0)
}

func (m *mockRefreshTokenRepo) Delete(tokenID string) error {
	return m.Called(tokenID).Error(0)
}

// testLogger discards output; the services only log cache hiccups.
func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
