// Package crypto - производные ключи, которые CLI вычисляет из мастер-пароля.
// На сервер и в локальный кэш пароль в открытом виде не попадает.
package crypto

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"

	"golang.org/x/crypto/argon2"
	"golang.org/x/crypto/pbkdf2"
)

const (
	pbkdf2Iterations = 100000
	pbkdf2KeyLength  = 32

	argon2Time    = 1
	argon2Memory  = 64 * 1024 // 64 MB
	argon2Threads = 4
	argon2KeyLen  = 32
)

// salt детерминирована по email, чтобы все устройства получали одинаковый хеш
func salt(purpose, email string) []byte {
	sum := sha256.Sum256([]byte("gophvault:" + purpose + ":" + strings.ToLower(strings.TrimSpace(email))))
	return sum[:]
}

// DeriveAuthHash - пароль для сервера авторизации (PBKDF2-SHA256, hex)
func DeriveAuthHash(email, password string) string {
	key := pbkdf2.Key([]byte(password), salt("auth", email), pbkdf2Iterations, pbkdf2KeyLength, sha256.New)
	defer clearMemory(key)
	return hex.EncodeToString(key)
}

// DeriveMasterKeyHash - хеш мастер-ключа для разблокировки (Argon2id, hex)
func DeriveMasterKeyHash(email, password string) string {
	key := argon2.IDKey([]byte(password), salt("master", email), argon2Time, argon2Memory, argon2Threads, argon2KeyLen)
	sum := sha256.Sum256(key)
	clearMemory(key)
	return hex.EncodeToString(sum[:])
}

func clearMemory(b []byte) {
	for i := range b {
		b[i] = 0
	}
}
