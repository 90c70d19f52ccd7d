package auth

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/AngelCh415/atelier/internal/models"
	"github.com/AngelCh415/atelier/internal/utils"
)

// SupabaseProvider habla con la API REST de GoTrue/PostgREST.
type SupabaseProvider struct {
	baseURL string
	apiKey  string
	c       HTTPClient
	bo      utils.Backoff
}

func NewSupabaseProvider(baseURL, apiKey string, c HTTPClient, bo utils.Backoff) *SupabaseProvider {
	return &SupabaseProvider{baseURL: strings.TrimRight(baseURL, "/"), apiKey: apiKey, c: c, bo: bo}
}

type gotrueUser struct {
	ID           string         `json:"id"`
	Email        string         `json:"email"`
	UserMetadata map[string]any `json:"user_metadata"`
}

func (u gotrueUser) toModel() models.User {
	name, _ := u.UserMetadata["full_name"].(string)
	return models.User{ID: u.ID, Email: u.Email, FullName: name}
}

type gotrueSession struct {
	AccessToken  string      `json:"access_token"`
	RefreshToken string      `json:"refresh_token"`
	ExpiresIn    int         `json:"expires_in"`
	User         *gotrueUser `json:"user"`
}

func (p *SupabaseProvider) headers() map[string]string {
	return map[string]string{
		"apikey":        p.apiKey,
		"Authorization": "Bearer " + p.apiKey,
	}
}

// call reintenta errores de red y 5xx; el resto se devuelve tal cual.
func (p *SupabaseProvider) call(ctx context.Context, method, path string, extra map[string]string, body, dst any) error {
	h := p.headers()
	for k, v := range extra {
		h[k] = v
	}
	return p.bo.Do(ctx, func(int) error {
		err := doJSON(ctx, p.c, method, p.baseURL+path, h, body, dst)
		var se *StatusError
		if errors.As(err, &se) && se.Code < 500 {
			return utils.Permanent(err)
		}
		return err
	})
}

// callOnce solo reintenta errores de transporte; cualquier respuesta HTTP es final.
// attempts devuelve cuántos intentos se hicieron.
func (p *SupabaseProvider) callOnce(ctx context.Context, method, path string, body, dst any) (attempts int, err error) {
	err = p.bo.Do(ctx, func(i int) error {
		attempts = i + 1
		err := doJSON(ctx, p.c, method, p.baseURL+path, p.headers(), body, dst)
		var se *StatusError
		if errors.As(err, &se) {
			return utils.Permanent(err)
		}
		return err
	})
	return attempts, err
}

func (p *SupabaseProvider) SignUp(ctx context.Context, in SignUpParams) (models.User, error) {
	body := map[string]any{
		"email":    in.Email,
		"password": in.Password,
		"data":     map[string]string{"full_name": in.FullName},
	}
	// con confirmación de email activa la respuesta es el usuario; sin ella, una sesión
	var resp struct {
		gotrueUser
		User *gotrueUser `json:"user"`
	}
	attempts, err := p.callOnce(ctx, http.MethodPost, "/auth/v1/signup", body, &resp)
	var se *StatusError
	if attempts > 1 && errors.As(err, &se) && se.Code == http.StatusUnprocessableEntity {
		// el intento previo pudo haber creado al usuario antes de perder la respuesta
		sess, serr := p.SignInWithPassword(ctx, in.Email, in.Password)
		if serr == nil {
			return sess.User, nil
		}
	}
	if err != nil {
		return models.User{}, mapErr("sign up", err, map[int]error{
			http.StatusBadRequest:          ErrInvalidInput,
			http.StatusUnprocessableEntity: ErrUserExists,
		})
	}
	u := resp.gotrueUser
	if resp.User != nil {
		u = *resp.User
	}
	if u.ID == "" {
		return models.User{}, errors.New("sign up: provider returned no user id")
	}
	return u.toModel(), nil
}

func (p *SupabaseProvider) SignInWithPassword(ctx context.Context, email, password string) (models.Session, error) {
	body := map[string]string{"email": email, "password": password}
	var resp gotrueSession
	if err := p.call(ctx, http.MethodPost, "/auth/v1/token?grant_type=password", nil, body, &resp); err != nil {
		return models.Session{}, mapErr("sign in", err, map[int]error{
			http.StatusBadRequest:   ErrInvalidCredentials,
			http.StatusUnauthorized: ErrInvalidCredentials,
		})
	}
	s := models.Session{AccessToken: resp.AccessToken, RefreshToken: resp.RefreshToken, ExpiresIn: resp.ExpiresIn}
	if resp.User != nil {
		s.User = resp.User.toModel()
	}
	return s, nil
}

func (p *SupabaseProvider) InsertMembership(ctx context.Context, accessToken string, m models.Membership) error {
	extra := map[string]string{"Prefer": "return=minimal"}
	if accessToken != "" {
		extra["Authorization"] = "Bearer " + accessToken
	}
	if err := p.call(ctx, http.MethodPost, "/rest/v1/memberships", extra, m, nil); err != nil {
		return mapErr("insert membership", err, map[int]error{http.StatusConflict: ErrUserExists})
	}
	return nil
}

func mapErr(op string, err error, byCode map[int]error) error {
	var se *StatusError
	if errors.As(err, &se) {
		if sentinel, ok := byCode[se.Code]; ok {
			return fmt.Errorf("%s: %w: %s", op, sentinel, se.Msg)
		}
	}
	return fmt.Errorf("%s: %w", op, err)
}

// DefaultBackoff para llamadas al proveedor.
func DefaultBackoff(retries int) utils.Backoff { return utils.NewBackoff(100*time.Millisecond, retries) }
