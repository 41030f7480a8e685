package entity

import "github.com/google/uuid"

// Identity is the caller decoded from a verified session token.
// Handlers receive it from the auth gate and never look at the raw token.
type Identity struct {
	UserID uuid.UUID
	Email  string
}
