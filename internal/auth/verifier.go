// Package auth checks administrator credentials and keeps the login session
// in the kv store.
package auth

import (
	"context"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"errors"
	"strings"
	"sync"
)

var ErrInvalidCredentials = errors.New("incorrect username or password")

// User is who a successful verification resolves to.
type User struct {
	Username string `json:"username"`
	Role     string `json:"role"`
	Name     string `json:"name"`
	Email    string `json:"email"`
}

// CredentialVerifier is satisfied by anything that can vouch for a
// username and password.
type CredentialVerifier interface {
	Verify(ctx context.Context, username, password string) (User, error)
}

type staticUser struct {
	user         User
	passwordHash string
}

// StaticVerifier is an in-memory credential table. Passwords are kept as
// sha256(lower(username) + ":" + password).
type StaticVerifier struct {
	mu sync.RWMutex
	// accountHash -> user
	users map[string]staticUser
}

func NewStaticVerifier() *StaticVerifier {
	return &StaticVerifier{users: map[string]staticUser{}}
}

// DefaultVerifier knows the single built-in administrator.
func DefaultVerifier() *StaticVerifier {
	v := NewStaticVerifier()
	v.Add("admin", "condo123", User{
		Role:  "administrator",
		Name:  "Administrador",
		Email: "admin@condominio.cl",
	})
	return v
}

func sha256Hex(s string) string {
	sum := sha256.Sum256([]byte(s))
	return hex.EncodeToString(sum[:])
}

func normalizeAccount(account string) string {
	return strings.TrimSpace(strings.ToLower(account))
}

func HashAccount(account string) string {
	return sha256Hex(normalizeAccount(account))
}

func HashAccountPassword(account, password string) string {
	return sha256Hex(normalizeAccount(account) + ":" + password)
}

// Add registers or replaces username.
func (v *StaticVerifier) Add(username, password string, u User) {
	u.Username = normalizeAccount(username)

	v.mu.Lock()
	defer v.mu.Unlock()
	v.users[HashAccount(username)] = staticUser{
		user:         u,
		passwordHash: HashAccountPassword(username, password),
	}
}

func (v *StaticVerifier) Verify(ctx context.Context, username, password string) (User, error) {
	v.mu.RLock()
	su, ok := v.users[HashAccount(username)]
	v.mu.RUnlock()

	want := HashAccountPassword(username, password)
	if !ok || subtle.ConstantTimeCompare([]byte(su.passwordHash), []byte(want)) != 1 {
		return User{}, ErrInvalidCredentials
	}
	return su.user, nil
}
