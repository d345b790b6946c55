package model

import (
	"errors"
	"time"
)

// ErrNotFound is returned by store lookups when no row matches.
var ErrNotFound = errors.New("not found")

const (
	RoleSystemUser = "SYSTEM_USER"
	RoleAppUser    = "APP_USER"
	RoleAppClient  = "APP_CLIENT"
)

const (
	StatusInactive = 0
	StatusActive   = 1
)

type User struct {
	ID                 int64
	Username           string
	Email              string
	PhoneNumber        string
	FirstName          string
	LastName           string
	PasswordHash       string
	Role               string
	Status             int
	EmailVerified      bool
	UserType           int
	LoginAttempts      int
	MustChangePassword bool
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

type CreateUserRequest struct {
	Username    string `json:"username" binding:"required"`
	Email       string `json:"email" binding:"required,email"`
	PhoneNumber string `json:"phoneNumber" binding:"required"`
	FirstName   string `json:"firstName" binding:"required"`
	LastName    string `json:"lastName" binding:"required"`
	Password    string `json:"password" binding:"required"`
	Role        string `json:"role"`
}

// UserPatch lists the fields a caller may change on an existing account.
// Nil means "leave as is". Password is handled separately by the service
// because it must pass through the hasher before it touches the record.
type UserPatch struct {
	FirstName     *string `json:"firstName"`
	LastName      *string `json:"lastName"`
	Password      *string `json:"password"`
	Status        *int    `json:"status"`
	EmailVerified *bool   `json:"emailVerified"`
	ResetAttempts *bool   `json:"resetLoginAttempts"`
}

// Apply copies every non-nil field except Password onto the user.
func (p UserPatch) Apply(u *User) {
	if p.FirstName != nil {
		u.FirstName = *p.FirstName
	}
	if p.LastName != nil {
		u.LastName = *p.LastName
	}
	if p.Status != nil {
		u.Status = *p.Status
	}
	if p.EmailVerified != nil {
		u.EmailVerified = *p.EmailVerified
	}
	if p.ResetAttempts != nil && *p.ResetAttempts {
		u.LoginAttempts = 0
	}
}

// UserPublic is the projection handlers return. It never carries the
// password digest.
type UserPublic struct {
	ID            int64     `json:"id"`
	Username      string    `json:"username"`
	Email         string    `json:"email"`
	PhoneNumber   string    `json:"phoneNumber"`
	FirstName     string    `json:"firstName"`
	LastName      string    `json:"lastName"`
	Role          string    `json:"role"`
	Status        int       `json:"status"`
	EmailVerified bool      `json:"emailVerified"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

func (u *User) Public() UserPublic {
	return UserPublic{
		ID:            u.ID,
		Username:      u.Username,
		Email:         u.Email,
		PhoneNumber:   u.PhoneNumber,
		FirstName:     u.FirstName,
		LastName:      u.LastName,
		Role:          u.Role,
		Status:        u.Status,
		EmailVerified: u.EmailVerified,
		CreatedAt:     u.CreatedAt,
		UpdatedAt:     u.UpdatedAt,
	}
}
