package auth

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/Supervision-Inbound/prueba.condo/internal/kv"
)

const (
	DefaultKey     = "conadmin_auth"
	DefaultLatency = time.Second
)

// Session is what gets persisted after a successful login.
type Session struct {
	User
	LoginTime time.Time `json:"loginTime"`
}

// Result is delivered by LoginAsync.
type Result struct {
	Session Session
	Err     error
}

// Authenticator runs logins against a verifier after a simulated latency.
type Authenticator struct {
	verifier CredentialVerifier
	kv       kv.Store
	key      string
	latency  time.Duration
	logger   *zap.Logger
	now      func() time.Time

	mu      sync.Mutex
	current *Session
}

// NewAuthenticator uses key for the session slot; latency may be zero.
func NewAuthenticator(verifier CredentialVerifier, kvStore kv.Store, key string, latency time.Duration, logger *zap.Logger) *Authenticator {
	if key == "" {
		key = DefaultKey
	}
	return &Authenticator{
		verifier: verifier,
		kv:       kvStore,
		key:      key,
		latency:  latency,
		logger:   logger,
		now:      time.Now,
	}
}

// Login waits out the latency, verifies and stores the session.
func (a *Authenticator) Login(ctx context.Context, username, password string) (Session, error) {
	if a.latency > 0 {
		timer := time.NewTimer(a.latency)
		select {
		case <-ctx.Done():
			timer.Stop()
			return Session{}, ctx.Err()
		case <-timer.C:
		}
	}

	user, err := a.verifier.Verify(ctx, username, password)
	if err != nil {
		a.logger.Warn("Login failed", zap.String("username", username), zap.Error(err))
		return Session{}, err
	}

	sess := Session{User: user, LoginTime: a.now().UTC()}
	b, err := json.Marshal(sess)
	if err != nil {
		return Session{}, fmt.Errorf("encode session: %w", err)
	}
	if err := a.kv.Set(ctx, a.key, string(b)); err != nil {
		return Session{}, fmt.Errorf("store session: %w", err)
	}

	a.mu.Lock()
	a.current = &sess
	a.mu.Unlock()

	a.logger.Info("Login succeeded", zap.String("username", user.Username), zap.String("role", user.Role))
	return sess, nil
}

// LoginAsync runs Login in a goroutine. The channel receives exactly one Result.
func (a *Authenticator) LoginAsync(ctx context.Context, username, password string) <-chan Result {
	ch := make(chan Result, 1)
	go func() {
		sess, err := a.Login(ctx, username, password)
		ch <- Result{Session: sess, Err: err}
	}()
	return ch
}

// Logout forgets the session.
func (a *Authenticator) Logout(ctx context.Context) error {
	a.mu.Lock()
	a.current = nil
	a.mu.Unlock()

	if err := a.kv.Delete(ctx, a.key); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}

// CurrentUser returns the active session, reloading it from the kv store
// after a restart.
func (a *Authenticator) CurrentUser(ctx context.Context) (Session, bool, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.current != nil {
		return *a.current, true, nil
	}
	raw, err := a.kv.Get(ctx, a.key)
	if err != nil {
		if errors.Is(err, kv.ErrMiss) {
			return Session{}, false, nil
		}
		return Session{}, false, err
	}
	var sess Session
	if err := json.Unmarshal([]byte(raw), &sess); err != nil {
		return Session{}, false, fmt.Errorf("decode session: %w", err)
	}
	a.current = &sess
	return sess, true, nil
}

func (a *Authenticator) IsAuthenticated(ctx context.Context) bool {
	_, ok, err := a.CurrentUser(ctx)
	return err == nil && ok
}
