package supabase

import (
	"context"
	"net/http"
	"net/url"
	"time"

	"gophvault/internal/apperr"
	"gophvault/internal/domain/session"
)

type authResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresAt    int64  `json:"expires_at"`
	ExpiresIn    int    `json:"expires_in"`
	User         struct {
		ID    string `json:"id"`
		Email string `json:"email"`
	} `json:"user"`
}

func (r authResponse) tokens() *session.Tokens {
	t := &session.Tokens{
		AccessToken:  r.AccessToken,
		RefreshToken: r.RefreshToken,
		ExpiresIn:    r.ExpiresIn,
		UserID:       r.User.ID,
		Email:        r.User.Email,
	}
	if r.ExpiresAt > 0 {
		t.ExpiresAt = time.Unix(r.ExpiresAt, 0).UTC()
	}
	return t
}

// SignIn обменивает email и производный хеш пароля на токены
func (c *Client) SignIn(ctx context.Context, email, password string) (*session.Tokens, error) {
	return c.token(ctx, "password", map[string]string{
		"email":    email,
		"password": password,
	})
}

func (c *Client) Refresh(ctx context.Context, refreshToken string) (*session.Tokens, error) {
	return c.token(ctx, "refresh_token", map[string]string{
		"refresh_token": refreshToken,
	})
}

func (c *Client) token(ctx context.Context, grant string, body map[string]string) (*session.Tokens, error) {
	raw, err := c.do(ctx, request{
		method: http.MethodPost,
		path:   "/auth/v1/token",
		query:  url.Values{"grant_type": {grant}},
		body:   body,
	}, apperr.ErrAuth)
	if err != nil {
		return nil, err
	}

	resp, err := decode[authResponse](raw)
	if err != nil {
		return nil, err
	}
	if resp.AccessToken == "" {
		return nil, apperr.Auth("в ответе нет access_token")
	}
	return resp.tokens(), nil
}
