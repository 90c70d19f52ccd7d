package auth

import (
	"context"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/AngelCh415/atelier/internal/models"
)

// MemoryProvider es un proveedor en proceso para desarrollo local y tests.
type MemoryProvider struct {
	mu          sync.Mutex
	users       map[string]memUser // por email
	tokens      map[string]string  // access token -> user id
	memberships []models.Membership
}

type memUser struct {
	user models.User
	salt string
	hash string
}

func NewMemoryProvider() *MemoryProvider {
	return &MemoryProvider{users: make(map[string]memUser), tokens: make(map[string]string)}
}

func hashPassword(salt, password string) string {
	sum := sha256.Sum256([]byte(salt + password))
	return hex.EncodeToString(sum[:])
}

func (p *MemoryProvider) SignUp(_ context.Context, in SignUpParams) (models.User, error) {
	email := strings.ToLower(strings.TrimSpace(in.Email))
	p.mu.Lock()
	defer p.mu.Unlock()
	if _, ok := p.users[email]; ok {
		return models.User{}, ErrUserExists
	}
	salt := uuid.NewString()
	u := models.User{ID: uuid.NewString(), Email: email, FullName: in.FullName}
	p.users[email] = memUser{user: u, salt: salt, hash: hashPassword(salt, in.Password)}
	return u, nil
}

func (p *MemoryProvider) SignInWithPassword(_ context.Context, email, password string) (models.Session, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	mu, ok := p.users[strings.ToLower(strings.TrimSpace(email))]
	if !ok || subtle.ConstantTimeCompare([]byte(mu.hash), []byte(hashPassword(mu.salt, password))) != 1 {
		return models.Session{}, ErrInvalidCredentials
	}
	token := uuid.NewString()
	p.tokens[token] = mu.user.ID
	return models.Session{
		AccessToken:  token,
		RefreshToken: uuid.NewString(),
		ExpiresIn:    3600,
		User:         mu.user,
	}, nil
}

// InsertMembership solo acepta membresías del dueño del token.
func (p *MemoryProvider) InsertMembership(_ context.Context, accessToken string, m models.Membership) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if uid, ok := p.tokens[accessToken]; !ok || uid != m.UserID {
		return ErrInvalidCredentials
	}
	for _, x := range p.memberships {
		if x.UserID == m.UserID && x.TenantID == m.TenantID {
			return ErrUserExists
		}
	}
	p.memberships = append(p.memberships, m)
	return nil
}

func (p *MemoryProvider) Memberships(userID string) []models.Membership {
	p.mu.Lock()
	defer p.mu.Unlock()
	var out []models.Membership
	for _, m := range p.memberships {
		if m.UserID == userID {
			out = append(out, m)
		}
	}
	return out
}
