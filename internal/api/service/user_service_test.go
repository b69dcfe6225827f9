package service

import (
	"testing"

	"bookrental/internal/api/dto"
	"bookrental/internal/api/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func createUserRequest(id, role string) *dto.CreateUserRequest {
	return &dto.CreateUserRequest{
		ID:       id,
		Name:     "New User",
		Email:    "new@example.com",
		Password: "secret1",
		Role:     role,
	}
}

func TestCreateUser_ManagerCreatesOther(t *testing.T) {
	userRepo := &mockUserRepo{}
	svc := NewUserService(userRepo)

	userRepo.On("FindByID", "m1").Return(&models.User{ID: "m1", Role: models.RoleManager}, nil)
	userRepo.On("FindByEmail", "new@example.com").Return(nil, gorm.ErrRecordNotFound)
	userRepo.On("Create", mock.AnythingOfType("*models.User")).Return(nil)

	user, err := svc.CreateUser("m1", createUserRequest("u-new", models.RoleUser))

	require.NoError(t, err)
	assert.Equal(t, "u-new", user.ID)
	assert.Equal(t, models.RoleUser, user.Role)
}

func TestCreateUser_NonManagerCreatesOther(t *testing.T) {
	userRepo := &mockUserRepo{}
	svc := NewUserService(userRepo)

	userRepo.On("FindByID", "u1").Return(&models.User{ID: "u1", Role: models.RoleUser}, nil)

	_, err := svc.CreateUser("u1", createUserRequest("u-new", models.RoleUser))

	assert.ErrorIs(t, err, ErrForbidden)
	userRepo.AssertNotCalled(t, "Create", mock.Anything)
}

func TestCreateUser_DuplicateEmail(t *testing.T) {
	userRepo := &mockUserRepo{}
	svc := NewUserService(userRepo)

	userRepo.On("FindByID", "m1").Return(&models.User{ID: "m1", Role: models.RoleManager}, nil)
	userRepo.On("FindByEmail", "new@example.com").Return(&models.User{ID: "existing"}, nil)

	_, err := svc.CreateUser("m1", createUserRequest("u-new", models.RoleUser))

	// duplicate email is the one failure the API names explicitly
	assert.ErrorIs(t, err, ErrEmailInUse)
	userRepo.AssertNotCalled(t, "Create", mock.Anything)
}

func TestCreateUser_UnrecognizedRole(t *testing.T) {
	userRepo := &mockUserRepo{}
	svc := NewUserService(userRepo)

	_, err := svc.CreateUser("m1", createUserRequest("u-new", "superadmin"))

	assert.ErrorIs(t, err, ErrInvalidInput)
	userRepo.AssertNotCalled(t, "Create", mock.Anything)
}

func TestUpdateUser_NonManager(t *testing.T) {
	userRepo := &mockUserRepo{}
	svc := NewUserService(userRepo)

	userRepo.On("FindByID", "u1").Return(&models.User{ID: "u1", Role: models.RoleUser}, nil)

	err := svc.UpdateUser("u1", "u2", &dto.UpdateUserRequest{Name: "X", Role: models.RoleUser})

	assert.ErrorIs(t, err, ErrForbidden)
	userRepo.AssertNotCalled(t, "Update", mock.Anything)
}

func TestUpdateUser_Manager(t *testing.T) {
	userRepo := &mockUserRepo{}
	svc := NewUserService(userRepo)

	userRepo.On("FindByID", "m1").Return(&models.User{ID: "m1", Role: models.RoleManager}, nil)
	userRepo.On("FindByID", "u2").Return(&models.User{ID: "u2", Name: "Old", Role: models.RoleUser}, nil)
	userRepo.On("Update", mock.AnythingOfType("*models.User")).Return(nil)

	err := svc.UpdateUser("m1", "u2", &dto.UpdateUserRequest{Name: "Promoted", Role: models.RoleManager})

	require.NoError(t, err)
	updated := userRepo.Calls[len(userRepo.Calls)-1].Arguments.Get(0).(*models.User)
	assert.Equal(t, "Promoted", updated.Name)
	assert.Equal(t, models.RoleManager, updated.Role)
}

func TestDeleteUser_SelfDeleteRejected(t *testing.T) {
	userRepo := &mockUserRepo{}
	svc := NewUserService(userRepo)

	// even a manager cannot delete their own record
	err := svc.DeleteUser("m1", "m1")

	assert.ErrorIs(t, err, ErrForbidden)
	userRepo.AssertNotCalled(t, "Delete", mock.Anything)
}

func TestDeleteUser_NonManager(t *testing.T) {
	userRepo := &mockUserRepo{}
	svc := NewUserService(userRepo)

	userRepo.On("FindByID", "u1").Return(&models.User{ID: "u1", Role: models.RoleUser}, nil)

	err := svc.DeleteUser("u1", "u2")

	assert.ErrorIs(t, err, ErrForbidden)
	userRepo.AssertNotCalled(t, "Delete", mock.Anything)
}

func TestDeleteUser_Manager(t *testing.T) {
	userRepo := &mockUserRepo{}
	svc := NewUserService(userRepo)

	userRepo.On("FindByID", "m1").Return(&models.User{ID: "m1", Role: models.RoleManager}, nil)
	userRepo.On("Delete", "u2").Return(nil)

	assert.NoError(t, svc.DeleteUser("m1", "u2"))
	userRepo.AssertCalled(t, "Delete", "u2")
}
