package entity

import (
	"errors"
	"time"
)

const (
	RoleAdmin    = "admin"
	RoleSupplier = "supplier"
	RoleStore    = "store"

	UserStatusActive   = "active"
	UserStatusInactive = "inactive"
)

var (
	ErrInvalidRole       = errors.New("invalid role")
	ErrInvalidUserStatus = errors.New("invalid status")
)

type User struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Password  string    `json:"-"`
	Role      string    `json:"role"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func NewUser(id, name, email, password, role string) *User {
	now := time.Now()
	return &User{
		ID:        id,
		Name:      name,
		Email:     email,
		Password:  password,
		Role:      role,
		Status:    UserStatusActive,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func (u *User) IsActive() bool {
	return u.Status == UserStatusActive
}

func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// Deactivate is the soft delete for users.
func (u *User) Deactivate() {
	u.Status = UserStatusInactive
	u.UpdatedAt = time.Now()
}

func ValidRole(role string) bool {
	switch role {
	case RoleAdmin, RoleSupplier, RoleStore:
		return true
	}
	return false
}

func ValidUserStatus(status string) bool {
	return status == UserStatusActive || status == UserStatusInactive
}
