package usecase

import (
	"context"

	"postboard/internal/domain/entity"
)

// --- Input DTOs ---

// RegisterInput defines the data required to open an account.
type RegisterInput struct {
	Email    string
	Password string
	Name     string
	Username string
	Age      int
}

// LoginInput defines the data required for a user to log in.
type LoginInput struct {
	Email    string
	Password string
}

// --- Output DTOs ---

// SessionOutput carries the authenticated user and the session token to put in the cookie.
type SessionOutput struct {
	User  *entity.User
	Token string
}

// AccountUsecase defines registration and login.
type AccountUsecase interface {
	Register(ctx context.Context, input *RegisterInput) (*SessionOutput, error)
	Login(ctx context.Context, input *LoginInput) (*SessionOutput, error)
}
