package session

import "time"

// Session - авторизация устройства. На устройстве хранится не более одной сессии.
type Session struct {
	UserID       string     `json:"user_id"`
	Email        string     `json:"email"`
	AccessToken  string     `json:"-"`
	RefreshToken string     `json:"-"`
	ExpiresAt    time.Time  `json:"expires_at"`
	LastSyncAt   *time.Time `json:"last_sync_at,omitempty"`
}

// ExpiresWithin сообщает, истекает ли токен не позже чем через window от now
func (s *Session) ExpiresWithin(now time.Time, window time.Duration) bool {
	return !s.ExpiresAt.After(now.Add(window))
}

// Tokens - ответ сервера авторизации
type Tokens struct {
	AccessToken  string
	RefreshToken string
	// ExpiresAt нулевой, если сервер не прислал expires_at
	ExpiresAt time.Time
	ExpiresIn int
	UserID    string
	Email     string
}
