// Package session holds the authenticated user's token and profile,
// durably persisted so a session survives process restarts.
package session

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"sync"

	"github.com/me/taskdeck/pkg/model"
)

// Durable key names. The session store is the only component that
// writes these two keys.
const (
	keyToken = "token"
	keyUser  = "user"
)

// KV is the durable backend for session state. Implementations must
// tolerate missing keys (Get returns ok=false).
type KV interface {
	Get(ctx context.Context, key string) (value string, ok bool, err error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
	Close() error
}

// Store is the single source of truth for "who is logged in".
//
// Login and Logout write the durable backend before touching in-memory
// state, so a concurrent reader never sees memory ahead of disk.
// Readers never observe a half-updated token/user pair.
type Store struct {
	kv     KV
	logger *slog.Logger

	mu    sync.RWMutex
	token string
	user  *model.Profile
}

// NewStore creates a session store over the given backend. Call
// Initialize before first use.
func NewStore(kv KV, logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Store{kv: kv, logger: logger.With("component", "session")}
}

// Initialize loads persisted session state. A missing token or user is
// simply an unauthenticated session. An unparseable persisted user is
// treated as "no user" rather than an error: local corruption is
// recoverable by a fresh login.
func (s *Store) Initialize(ctx context.Context) error {
	token, _, err := s.kv.Get(ctx, keyToken)
	if err != nil {
		return fmt.Errorf("load session token: %w", err)
	}

	var user *model.Profile
	if rawUser, ok, err := s.kv.Get(ctx, keyUser); err != nil {
		return fmt.Errorf("load session user: %w", err)
	} else if ok {
		var profile model.Profile
		if jsonErr := json.Unmarshal([]byte(rawUser), &profile); jsonErr != nil {
			s.logger.Warn("discarding corrupt persisted user", "error", jsonErr)
		} else {
			user = &profile
		}
	}

	// A user is never held without a token.
	if token == "" {
		user = nil
	}

	s.mu.Lock()
	s.token = token
	s.user = user
	s.mu.Unlock()

	s.logger.Debug("session initialized", "authenticated", token != "")
	return nil
}

// Login stores the session durably, then updates in-memory state. The
// token is required; user may be nil when the server response omitted
// profile fields, leaving a token-holding anonymous session.
//
// On a durable-write failure in-memory state is left untouched.
func (s *Store) Login(ctx context.Context, token string, user *model.Profile) error {
	if token == "" {
		return fmt.Errorf("login: token cannot be empty")
	}

	if err := s.kv.Set(ctx, keyToken, token); err != nil {
		return fmt.Errorf("persist token: %w", err)
	}
	if user != nil {
		data, err := json.Marshal(user)
		if err != nil {
			return fmt.Errorf("marshal user: %w", err)
		}
		if err := s.kv.Set(ctx, keyUser, string(data)); err != nil {
			return fmt.Errorf("persist user: %w", err)
		}
	} else {
		if err := s.kv.Delete(ctx, keyUser); err != nil {
			return fmt.Errorf("clear user: %w", err)
		}
	}

	s.mu.Lock()
	s.token = token
	s.user = user
	s.mu.Unlock()

	s.logger.Debug("logged in", "anonymous", user == nil)
	return nil
}

// Logout removes both durable entries, then clears in-memory state.
// Idempotent: logging out while logged out is a no-op.
func (s *Store) Logout(ctx context.Context) error {
	if err := s.kv.Delete(ctx, keyToken); err != nil {
		return fmt.Errorf("clear token: %w", err)
	}
	if err := s.kv.Delete(ctx, keyUser); err != nil {
		return fmt.Errorf("clear user: %w", err)
	}

	s.mu.Lock()
	s.token = ""
	s.user = nil
	s.mu.Unlock()

	s.logger.Debug("logged out")
	return nil
}

// Current returns the token and user as one consistent pair. The
// returned profile is a copy; mutating it does not affect the store.
func (s *Store) Current() (string, *model.Profile) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.user == nil {
		return s.token, nil
	}
	user := *s.user
	return s.token, &user
}

// Token returns the current bearer token, or "" when logged out. It
// satisfies the API client's token source interface.
func (s *Store) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

// IsAuthenticated reports whether a session token is held.
func (s *Store) IsAuthenticated() bool {
	return s.Token() != ""
}

// IsAdmin reports whether the current user has administrative
// capability. Anonymous and token-only sessions are never admin.
func (s *Store) IsAdmin() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.user != nil && s.user.IsAdmin
}

// Close releases the durable backend.
func (s *Store) Close() error {
	return s.kv.Close()
}
