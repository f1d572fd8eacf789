package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Role values stored on a user. Authorization predicates live in the
// permissions package; this is just the persisted enum.
const (
	RoleAdmin     = "admin"
	RoleModerator = "moderator"
	RoleUser      = "user"
)

type User struct {
	ID        string    `gorm:"primaryKey;type:uuid" json:"id"`
	Email     string    `gorm:"uniqueIndex;not null" json:"email"`
	Username  *string   `gorm:"uniqueIndex" json:"username,omitempty"` // optional but unique when set
	FirstName *string   `json:"first_name,omitempty"`
	LastName  *string   `json:"last_name,omitempty"`
	Bio       *string   `gorm:"type:text" json:"bio,omitempty"`
	Role      string    `gorm:"default:'user';not null" json:"role"`
	Superuser bool      `gorm:"default:false;not null" json:"-"` // privileged override, admin path only
	Password  string    `gorm:"column:password_hash;not null" json:"-"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// BeforeCreate hook to set UUID before creating a User
func (user *User) BeforeCreate(tx *gorm.DB) (err error) {
	if user.ID == "" {
		user.ID = uuid.New().String()
	}
	return
}

func (User) TableName() string {
	return "users"
}
