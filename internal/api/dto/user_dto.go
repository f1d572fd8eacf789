package dto

import "reviewhub/internal/api/models"

// UserResponse is the profile field set exposed to admins and to the user
// themselves.
type UserResponse struct {
	FirstName *string `json:"first_name,omitempty"`
	LastName  *string `json:"last_name,omitempty"`
	Username  *string `json:"username,omitempty"`
	Bio       *string `json:"bio,omitempty"`
	Email     string  `json:"email"`
	Role      string  `json:"role"`
}

func FromModelToUserResponse(user *models.User) *UserResponse {
	return &UserResponse{
		FirstName: user.FirstName,
		LastName:  user.LastName,
		Username:  user.Username,
		Bio:       user.Bio,
		Email:     user.Email,
		Role:      user.Role,
	}
}

// CreateUserDTO is the admin-path create payload; this is the only surface
// where role can be set.
type CreateUserDTO struct {
	Email     string  `json:"email" binding:"required,email"`
	Username  string  `json:"username" binding:"required,min=3,max=50"`
	FirstName *string `json:"first_name"`
	LastName  *string `json:"last_name"`
	Bio       *string `json:"bio"`
	Role      string  `json:"role" binding:"omitempty,oneof=admin moderator user"`
	Password  string  `json:"password" binding:"omitempty,min=8"`
}

// UpdateUserDTO is the admin-path partial update; nil fields stay untouched.
type UpdateUserDTO struct {
	Email     *string `json:"email" binding:"omitempty,email"`
	Username  *string `json:"username" binding:"omitempty,min=3,max=50"`
	FirstName *string `json:"first_name"`
	LastName  *string `json:"last_name"`
	Bio       *string `json:"bio"`
	Role      *string `json:"role" binding:"omitempty,oneof=admin moderator user"`
}

// UpdateMeDTO is the self-service partial update. Role and email are absent
// on purpose: unknown payload fields are dropped during binding, so a caller
// submitting them has no effect.
type UpdateMeDTO struct {
	Username  *string `json:"username" binding:"omitempty,min=3,max=50"`
	FirstName *string `json:"first_name"`
	LastName  *string `json:"last_name"`
	Bio       *string `json:"bio"`
}
