package auth

import (
	"context"

	"github.com/trezcool/studytrack/core"
)

var (
	// errors
	ErrInvalidCredentials = core.NewAuthError("invalid email or password")
	ErrInvalidToken       = core.NewAuthError("invalid or expired token")
	ErrMissingToken       = core.NewAuthError("missing or malformed bearer token")
	ErrEmailExists        = core.NewValidationError(nil, core.FieldError{
		Field: "email",
		Error: "a user with this email already exists",
	})
)

// Identity is a verified user; its ID is the tenant every entity is scoped to.
type Identity struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
}

// Provider issues and verifies credentials.
type Provider interface {
	SignUp(ctx context.Context, na NewAccount) (Identity, error)
	SignIn(ctx context.Context, creds Credentials) (string, Identity, error)
	Verify(ctx context.Context, token string) (Identity, error)
	Lookup(ctx context.Context, email string) (Identity, error)
}

// NewAccount contains information needed to sign up.
type NewAccount struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
	Name     string `json:"name" validate:"required"`
}

func (na *NewAccount) Validate() error {
	na.Email = core.CleanString(na.Email, true /* lower */)
	na.Name = core.CleanString(na.Name)
	return core.ValidateStruct(na)
}

type Credentials struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

func (c *Credentials) Validate() error {
	c.Email = core.CleanString(c.Email, true /* lower */)
	return core.ValidateStruct(c)
}
