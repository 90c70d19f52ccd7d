package auth

import (
	"context"
	"fmt"
	"log/slog"
	"net/mail"
	"strings"

	"github.com/google/uuid"

	"github.com/AngelCh415/atelier/internal/models"
)

const (
	RoleOwner         = "owner"
	minPasswordLength = 8
)

type RegisterRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	FullName string `json:"fullName"`
	FirmName string `json:"firmName"`
}

type Registration struct {
	User       models.User       `json:"user"`
	Membership models.Membership `json:"membership"`
	Session    models.Session    `json:"session"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type Service struct {
	p           Provider
	log         *slog.Logger
	newTenantID func() string
}

func NewService(p Provider, log *slog.Logger) *Service {
	return &Service{p: p, log: log, newTenantID: uuid.NewString}
}

// Register crea el usuario, inicia sesión y con ese token lo da de alta como
// owner de un despacho nuevo.
func (s *Service) Register(ctx context.Context, req RegisterRequest) (Registration, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))
	if _, err := mail.ParseAddress(email); err != nil {
		return Registration{}, fmt.Errorf("%w: email", ErrInvalidInput)
	}
	if len(req.Password) < minPasswordLength {
		return Registration{}, fmt.Errorf("%w: password must have at least %d characters", ErrInvalidInput, minPasswordLength)
	}
	firm := strings.TrimSpace(req.FirmName)
	if firm == "" {
		return Registration{}, fmt.Errorf("%w: firm name required", ErrInvalidInput)
	}

	u, err := s.p.SignUp(ctx, SignUpParams{Email: email, Password: req.Password, FullName: strings.TrimSpace(req.FullName)})
	if err != nil {
		return Registration{}, err
	}
	sess, err := s.p.SignInWithPassword(ctx, email, req.Password)
	if err != nil {
		s.log.Error("sign in after sign up failed", slog.String("user_id", u.ID), slog.String("err", err.Error()))
		return Registration{}, err
	}
	m := models.Membership{UserID: u.ID, TenantID: s.newTenantID(), Role: RoleOwner, FirmName: firm}
	if err := s.p.InsertMembership(ctx, sess.AccessToken, m); err != nil {
		// el usuario ya existe en el proveedor; queda sin despacho
		s.log.Error("membership insert failed", slog.String("user_id", u.ID), slog.String("err", err.Error()))
		return Registration{}, err
	}
	s.log.Info("user registered", slog.String("user_id", u.ID), slog.String("tenant_id", m.TenantID))
	return Registration{User: u, Membership: m, Session: sess}, nil
}

func (s *Service) Login(ctx context.Context, req LoginRequest) (models.Session, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))
	if email == "" || req.Password == "" {
		return models.Session{}, ErrInvalidCredentials
	}
	sess, err := s.p.SignInWithPassword(ctx, email, req.Password)
	if err != nil {
		s.log.Warn("login failed", slog.String("email", email), slog.String("err", err.Error()))
		return models.Session{}, err
	}
	return sess, nil
}
