package service

import (
	"errors"

	"bookrental/internal/api/dto"
	"bookrental/internal/api/models"
	"bookrental/internal/api/repository"
	"bookrental/internal/middleware/auth"

	"gorm.io/gorm"
)

type UserService interface {
	ListUsers(callerID string) ([]dto.UserResponse, error)
	GetUser(id string) (*dto.UserResponse, error)
	CreateUser(callerID string, req *dto.CreateUserRequest) (*dto.UserResponse, error)
	UpdateUser(callerID, userID string, req *dto.UpdateUserRequest) error
	DeleteUser(callerID, userID string) error
}

type userService struct {
	userRepo repository.UserRepository
}

func NewUserService(userRepo repository.UserRepository) UserService {
	return &userService{userRepo: userRepo}
}

func (s *userService) ListUsers(callerID string) ([]dto.UserResponse, error) {
	// any authenticated caller may list; the manager console is the only
	// consumer but reads were never role-gated
	if _, err := s.userRepo.FindByID(callerID); err != nil {
		return nil, ErrForbidden
	}

	users, err := s.userRepo.FindAll()
	if err != nil {
		return nil, err
	}

	responses := make([]dto.UserResponse, 0, len(users))
	for i := range users {
		responses = append(responses, *dto.FromModelToUserResponse(&users[i]))
	}
	return responses, nil
}

func (s *userService) GetUser(id string) (*dto.UserResponse, error) {
	user, err := s.userRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return dto.FromModelToUserResponse(user), nil
}

// CreateUser covers the manager path of user creation: the caller makes a
// record for somebody else, any recognized role allowed. (Self-signup with
// the default role goes through AuthService.Register.) Creating a record
// for one's own id is also accepted, mirroring the signup rule.
func (s *userService) CreateUser(callerID string, req *dto.CreateUserRequest) (*dto.UserResponse, error) {
	if req.Name == "" || req.Email == "" || !models.ValidRole(req.Role) {
		return nil, ErrInvalidInput
	}

	targetID := req.ID
	if targetID != callerID {
		// one user creating another: only managers are allowed
		caller, err := s.userRepo.FindByID(callerID)
		if err != nil || !caller.IsManager() {
			return nil, ErrForbidden
		}
	}

	if _, err := s.userRepo.FindByEmail(req.Email); err == nil {
		return nil, ErrEmailInUse
	}

	hashedPassword, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		ID:       targetID, // empty id gets a uuid from the BeforeCreate hook
		Name:     req.Name,
		Email:    req.Email,
		Password: hashedPassword,
		Role:     req.Role,
	}

	if err := s.userRepo.Create(user); err != nil {
		if errors.Is(err, repository.ErrEmailTaken) {
			return nil, ErrEmailInUse
		}
		return nil, err
	}

	return dto.FromModelToUserResponse(user), nil
}

// UpdateUser lets managers edit name and role only.
func (s *userService) UpdateUser(callerID, userID string, req *dto.UpdateUserRequest) error {
	if req.Name == "" || !models.ValidRole(req.Role) {
		return ErrInvalidInput
	}

	caller, err := s.userRepo.FindByID(callerID)
	if err != nil || !caller.IsManager() {
		return ErrForbidden
	}

	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}

	user.Name = req.Name
	user.Role = req.Role
	return s.userRepo.Update(user)
}

// DeleteUser is manager-only, and a manager cannot delete their own record.
func (s *userService) DeleteUser(callerID, userID string) error {
	if callerID == userID {
		return ErrForbidden
	}

	caller, err := s.userRepo.FindByID(callerID)
	if err != nil || !caller.IsManager() {
		return ErrForbidden
	}

	if err := s.userRepo.Delete(userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}
	return nil
}
