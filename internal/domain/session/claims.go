package session

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Claims - полезная нагрузка access-токена Supabase
type Claims struct {
	jwt.RegisteredClaims
	Email     string `json:"email,omitempty"`
	Role      string `json:"role,omitempty"`
	SessionID string `json:"session_id,omitempty"`
}

// parseClaims читает claims без проверки подписи. Подпись проверяет сервер,
// клиенту нужны только срок действия и идентификатор пользователя.
func parseClaims(accessToken string) (*Claims, error) {
	claims := &Claims{}
	if _, _, err := jwt.NewParser().ParseUnverified(accessToken, claims); err != nil {
		return nil, err
	}
	return claims, nil
}

// expiry определяет срок действия токена: expires_at ответа, затем exp из токена,
// затем expires_in относительно now.
func expiry(t *Tokens, claims *Claims, now time.Time) time.Time {
	if !t.ExpiresAt.IsZero() {
		return t.ExpiresAt.UTC()
	}
	if claims != nil && claims.ExpiresAt != nil {
		return claims.ExpiresAt.UTC()
	}
	return now.Add(time.Duration(t.ExpiresIn) * time.Second).UTC()
}
