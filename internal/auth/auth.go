// Package auth wraps the external identity provider behind the three
// capabilities the app needs: sign up, password sign-in and tenant membership.
package auth

import (
	"context"
	"errors"

	"github.com/AngelCh415/atelier/internal/models"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserExists         = errors.New("user already registered")
	ErrInvalidInput       = errors.New("invalid input")
)

type SignUpParams struct {
	Email    string
	Password string
	FullName string
}

type Provider interface {
	SignUp(ctx context.Context, p SignUpParams) (models.User, error)
	SignInWithPassword(ctx context.Context, email, password string) (models.Session, error)
	// InsertMembership corre con el access token del usuario (RLS del proveedor).
	InsertMembership(ctx context.Context, accessToken string, m models.Membership) error
}
