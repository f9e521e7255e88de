package domain

import "time"

type User struct {
	UserID       string     `json:"id"`
	Name         string     `json:"name"`
	Email        string     `json:"email"`
	PasswordHash string     `json:"-"`
	Phone        *string    `json:"phone"`
	IsVerified   bool       `json:"isVerified"`
	GoogleID     *string    `json:"googleId,omitempty"`
	AppleID      *string    `json:"appleId,omitempty"`
	Picture      *string    `json:"picture"`
	CreatedAt    time.Time  `json:"createdAt"`
	UpdatedAt    time.Time  `json:"updatedAt"`
	DeletedAt    *time.Time `json:"deletedAt,omitempty"`
}

// Identity returns the session/token view of the user.
func (u *User) Identity() CurrentUser {
	return CurrentUser{ID: u.UserID, Email: u.Email}
}

type CreateUserRequest struct {
	Name     string `json:"name" validate:"required,max=100"`
	Email    string `json:"email" validate:"required,email,max=255"`
	Password string `json:"password" validate:"required,password"`
	Phone    string `json:"phone" validate:"required,max=20"`
}

type UpdateUserRequest struct {
	Name     *string `json:"name" validate:"omitempty,max=100"`
	Email    *string `json:"email" validate:"omitempty,email,max=255"`
	Password *string `json:"password" validate:"omitempty,password"`
	Phone    *string `json:"phone" validate:"omitempty,max=20"`
}
