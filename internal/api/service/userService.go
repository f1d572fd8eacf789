package service

import (
	"errors"

	"reviewhub/internal/api/dto"
	"reviewhub/internal/api/middleware/auth"
	"reviewhub/internal/api/models"
	"reviewhub/internal/api/repository"

	"gorm.io/gorm"
)

type UserService interface {
	List(search string, page, pageSize int) (*dto.Page[dto.UserResponse], error)
	GetByUsername(username string) (*dto.UserResponse, error)
	Create(in dto.CreateUserDTO) (*dto.UserResponse, error)
	UpdateByUsername(username string, in dto.UpdateUserDTO) (*dto.UserResponse, error)
	DeleteByUsername(username string) error
	GetMe(userID string) (*dto.UserResponse, error)
	UpdateMe(userID string, in dto.UpdateMeDTO) (*dto.UserResponse, error)
}

type userService struct {
	userRepo repository.UserRepository
}

func NewUserService(userRepo repository.UserRepository) UserService {
	return &userService{userRepo: userRepo}
}

// userUniqueError maps a unique violation on the users table to the
// validation error for the index it tripped. The table carries two unique
// indexes, so the constraint name decides which field collided.
func userUniqueError(err error) error {
	if repository.UniqueViolationConstraint(err) == "idx_users_username" {
		return ErrNameInUse
	}
	return ErrEmailInUse
}

func (s *userService) List(search string, page, pageSize int) (*dto.Page[dto.UserResponse], error) {
	users, total, err := s.userRepo.List(search, page, pageSize)
	if err != nil {
		return nil, err
	}

	responses := make([]dto.UserResponse, 0, len(users))
	for _, user := range users {
		responses = append(responses, *dto.FromModelToUserResponse(&user))
	}

	return dto.NewPage(responses, int(total), page, pageSize), nil
}

func (s *userService) GetByUsername(username string) (*dto.UserResponse, error) {
	user, err := s.userRepo.FindByUsername(username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return dto.FromModelToUserResponse(user), nil
}

// Create is the admin path: the only create surface where role is accepted.
func (s *userService) Create(in dto.CreateUserDTO) (*dto.UserResponse, error) {
	if _, err := s.userRepo.FindByEmail(in.Email); err == nil {
		return nil, ErrEmailInUse
	}
	if _, err := s.userRepo.FindByUsername(in.Username); err == nil {
		return nil, ErrNameInUse
	}

	role := in.Role
	if role == "" {
		role = models.RoleUser
	}

	user := &models.User{
		Email:     in.Email,
		Username:  &in.Username,
		FirstName: in.FirstName,
		LastName:  in.LastName,
		Bio:       in.Bio,
		Role:      role,
	}

	if in.Password != "" {
		hashed, err := auth.HashPassword(in.Password)
		if err != nil {
			return nil, err
		}
		user.Password = hashed
	}

	if err := s.userRepo.Create(user); err != nil {
		if repository.IsUniqueViolation(err) {
			return nil, userUniqueError(err)
		}
		return nil, err
	}

	return dto.FromModelToUserResponse(user), nil
}

func (s *userService) UpdateByUsername(username string, in dto.UpdateUserDTO) (*dto.UserResponse, error) {
	user, err := s.userRepo.FindByUsername(username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	if in.Email != nil {
		user.Email = *in.Email
	}
	if in.Username != nil {
		user.Username = in.Username
	}
	if in.FirstName != nil {
		user.FirstName = in.FirstName
	}
	if in.LastName != nil {
		user.LastName = in.LastName
	}
	if in.Bio != nil {
		user.Bio = in.Bio
	}
	if in.Role != nil {
		user.Role = *in.Role
	}

	if err := s.userRepo.Save(user); err != nil {
		if repository.IsUniqueViolation(err) {
			return nil, userUniqueError(err)
		}
		return nil, err
	}

	return dto.FromModelToUserResponse(user), nil
}

func (s *userService) DeleteByUsername(username string) error {
	if err := s.userRepo.DeleteByUsername(username); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUserNotFound
		}
		return err
	}
	return nil
}

func (s *userService) GetMe(userID string) (*dto.UserResponse, error) {
	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return dto.FromModelToUserResponse(user), nil
}

// UpdateMe updates the caller's own profile. Role and email never change
// here: the DTO has no fields for them, so payloads carrying them are
// silently ignored.
func (s *userService) UpdateMe(userID string, in dto.UpdateMeDTO) (*dto.UserResponse, error) {
	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	if in.Username != nil {
		user.Username = in.Username
	}
	if in.FirstName != nil {
		user.FirstName = in.FirstName
	}
	if in.LastName != nil {
		user.LastName = in.LastName
	}
	if in.Bio != nil {
		user.Bio = in.Bio
	}

	if err := s.userRepo.Save(user); err != nil {
		if repository.IsUniqueViolation(err) {
			return nil, ErrNameInUse
		}
		return nil, err
	}

	return dto.FromModelToUserResponse(user), nil
}
