package store

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"sync"

	"github.com/RishabJha134/habitforge-engine/internal/core/domain"
)

// Login result messages, preserved verbatim from the original client.
const (
	MsgInputRequired  = "Mobile number and password are required!"
	MsgLoginOK        = "Login successful!"
	MsgWrongPassword  = "Invalid password!"
	MsgAccountCreated = "Account created and logged in!"
	MsgLoginFailed    = "Something went wrong! Please try again."
)

// LoginResult is what the presentation layer branches on. Failures surface
// here as a human-readable message rather than a thrown fault; Err carries
// the matching sentinel for callers that branch programmatically.
type LoginResult struct {
	Success bool         `json:"success"`
	Message string       `json:"message"`
	User    *domain.User `json:"-"`
	Err     error        `json:"-"`
}

// SessionStore owns the "current user" concept: credential lookup,
// register-on-first-login, and the persisted session pointer.
//
// Every successful state change is mirrored to the substrate before the call
// returns, so in-memory and persisted session never diverge.
type SessionStore struct {
	substrate Substrate

	mu      sync.RWMutex
	current *domain.User
}

func NewSessionStore(substrate Substrate) *SessionStore {
	return &SessionStore{substrate: substrate}
}

// Restore loads the persisted session pointer on startup. A missing, corrupt
// or incomplete record clears the pointer and leaves the session empty; this
// never fails from the caller's point of view.
func (s *SessionStore) Restore(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	raw, err := s.substrate.Get(ctx, KeyCurrentSession)
	if err != nil {
		if !errors.Is(err, ErrKeyNotFound) {
			log.Printf("session: failed to read persisted session: %v", err)
		}
		s.current = nil
		return
	}

	var user domain.User
	if err := json.Unmarshal([]byte(raw), &user); err != nil || !user.Valid() {
		log.Printf("session: clearing corrupted session record")
		if err := s.substrate.Remove(ctx, KeyCurrentSession); err != nil {
			log.Printf("session: failed to remove corrupted session: %v", err)
		}
		s.current = nil
		return
	}

	s.current = &user
}

// Login authenticates an existing account or registers a new one. An unseen
// mobile is a first-time registration: there is no separate sign-up flow and
// no uniqueness enforcement beyond first-writer-wins.
func (s *SessionStore) Login(ctx context.Context, mobile, password string) LoginResult {
	if mobile == "" || password == "" {
		return LoginResult{Success: false, Message: MsgInputRequired, Err: domain.ErrInvalidInput}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	users, err := s.loadUsers(ctx)
	if err != nil {
		log.Printf("session: login failed reading user registry: %v", err)
		return LoginResult{Success: false, Message: MsgLoginFailed, Err: ErrStorageUnavailable}
	}

	for i := range users {
		if users[i].Mobile != mobile {
			continue
		}
		if !users[i].CheckPassword(password) {
			// Session stays unchanged on a credential failure.
			return LoginResult{Success: false, Message: MsgWrongPassword, Err: domain.ErrInvalidCredentials}
		}

		user := users[i]
		if err := s.persistSession(ctx, &user); err != nil {
			log.Printf("session: failed to persist session: %v", err)
			return LoginResult{Success: false, Message: MsgLoginFailed, Err: ErrStorageUnavailable}
		}
		s.current = &user
		return LoginResult{Success: true, Message: MsgLoginOK, User: &user}
	}

	user := domain.NewUser(mobile, password)
	users = append(users, *user)

	if err := s.persistUsers(ctx, users); err != nil {
		log.Printf("session: failed to persist user registry: %v", err)
		return LoginResult{Success: false, Message: MsgLoginFailed, Err: ErrStorageUnavailable}
	}
	if err := s.persistSession(ctx, user); err != nil {
		log.Printf("session: failed to persist session: %v", err)
		return LoginResult{Success: false, Message: MsgLoginFailed, Err: ErrStorageUnavailable}
	}

	s.current = user
	return LoginResult{Success: true, Message: MsgAccountCreated, User: user}
}

// Logout clears the session in memory and removes the persisted pointer.
// Idempotent.
func (s *SessionStore) Logout(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.current = nil
	if err := s.substrate.Remove(ctx, KeyCurrentSession); err != nil {
		log.Printf("session: failed to remove persisted session: %v", err)
	}
}

// Current returns the active user, or nil when no session is active.
func (s *SessionStore) Current() *domain.User {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.current == nil {
		return nil
	}
	clone := *s.current
	return &clone
}

// CurrentUserID returns the active user's id, or "" with no session.
func (s *SessionStore) CurrentUserID() string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.current == nil {
		return ""
	}
	return s.current.ID
}

// FindUser looks up a registered account by id.
func (s *SessionStore) FindUser(ctx context.Context, id string) (*domain.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	users, err := s.loadUsers(ctx)
	if err != nil {
		return nil, err
	}
	for i := range users {
		if users[i].ID == id {
			clone := users[i]
			return &clone, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (s *SessionStore) loadUsers(ctx context.Context) ([]domain.User, error) {
	raw, err := s.substrate.Get(ctx, KeyUsers)
	if errors.Is(err, ErrKeyNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var users []domain.User
	if err := json.Unmarshal([]byte(raw), &users); err != nil {
		// Corrupted registry: reset to empty rather than fail every login.
		log.Printf("session: corrupted user registry, resetting: %v", err)
		return nil, nil
	}
	return users, nil
}

func (s *SessionStore) persistUsers(ctx context.Context, users []domain.User) error {
	data, err := json.Marshal(users)
	if err != nil {
		return err
	}
	return s.substrate.Set(ctx, KeyUsers, string(data))
}

func (s *SessionStore) persistSession(ctx context.Context, user *domain.User) error {
	data, err := json.Marshal(user)
	if err != nil {
		return err
	}
	return s.substrate.Set(ctx, KeyCurrentSession, string(data))
}
