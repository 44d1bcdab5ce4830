package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/RishabJha134/habitforge-engine/internal/core/domain"
	"github.com/RishabJha134/habitforge-engine/internal/core/services"
)

type mockUserFinder struct {
	users map[string]*domain.User
}

func newMockUserFinder(ids ...string) *mockUserFinder {
	m := &mockUserFinder{users: make(map[string]*domain.User)}
	for _, id := range ids {
		m.users[id] = &domain.User{ID: id, Mobile: "9876543210"}
	}
	return m
}

func (m *mockUserFinder) FindUser(ctx context.Context, id string) (*domain.User, error) {
	user, ok := m.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return user, nil
}

func TestTokenService(t *testing.T) {
	finder := newMockUserFinder("u1")

	t.Run("Success: round-trips the user id", func(t *testing.T) {
		svc := services.NewTokenService("test-secret", "habitforge-engine", time.Hour, finder)

		token, err := svc.GenerateToken("u1")
		assert.Nil(t, err)
		assert.NotEmpty(t, token)

		userID, err := svc.ValidateToken(token)
		assert.Nil(t, err)
		assert.Equal(t, "u1", userID)
	})

	t.Run("Error: wrong secret", func(t *testing.T) {
		issuing := services.NewTokenService("secret-a", "habitforge-engine", time.Hour, finder)
		validating := services.NewTokenService("secret-b", "habitforge-engine", time.Hour, finder)

		token, _ := issuing.GenerateToken("u1")
		_, err := validating.ValidateToken(token)
		assert.NotNil(t, err)
	})

	t.Run("Error: wrong issuer", func(t *testing.T) {
		issuing := services.NewTokenService("test-secret", "someone-else", time.Hour, finder)
		validating := services.NewTokenService("test-secret", "habitforge-engine", time.Hour, finder)

		token, _ := issuing.GenerateToken("u1")
		_, err := validating.ValidateToken(token)
		assert.NotNil(t, err)
	})

	t.Run("Error: expired token", func(t *testing.T) {
		svc := services.NewTokenService("test-secret", "habitforge-engine", -time.Minute, finder)

		token, _ := svc.GenerateToken("u1")
		_, err := svc.ValidateToken(token)
		assert.NotNil(t, err)
	})

	t.Run("Error: subject no longer registered", func(t *testing.T) {
		svc := services.NewTokenService("test-secret", "habitforge-engine", time.Hour, finder)

		token, _ := svc.GenerateToken("ghost")
		_, err := svc.ValidateToken(token)
		assert.NotNil(t, err)
	})

	t.Run("Error: garbage token", func(t *testing.T) {
		svc := services.NewTokenService("test-secret", "habitforge-engine", time.Hour, finder)

		_, err := svc.ValidateToken("not.a.token")
		assert.NotNil(t, err)
	})
}
