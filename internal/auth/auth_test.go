package auth

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	apperrors "hotelbooking/pkg/errors"
	"hotelbooking/pkg/logger"
	"hotelbooking/pkg/middleware"
	"hotelbooking/pkg/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memTokens struct {
	mu      sync.Mutex
	nextID  int64
	byHash  map[string]*model.APIToken
	touched map[int64]time.Time
	findErr error
}

func newMemTokens() *memTokens {
	return &memTokens{byHash: map[string]*model.APIToken{}, touched: map[int64]time.Time{}}
}

func (m *memTokens) FindByHash(_ context.Context, hash string) (*model.APIToken, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.findErr != nil {
		return nil, m.findErr
	}
	token, ok := m.byHash[hash]
	if !ok {
		return nil, ErrTokenNotFound
	}
	copied := *token
	return &copied, nil
}

func (m *memTokens) Create(_ context.Context, token *model.APIToken) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.nextID++
	token.ID = m.nextID
	copied := *token
	m.byHash[token.TokenHash] = &copied
	return nil
}

func (m *memTokens) TouchLastUsed(_ context.Context, id int64, at time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.touched[id] = at
	return nil
}

type memUsers struct {
	nextID  int64
	byEmail map[string]*model.User
}

func (m *memUsers) FindByEmail(_ context.Context, email string) (*model.User, error) {
	if user, ok := m.byEmail[email]; ok {
		return user, nil
	}
	return nil, ErrUserNotFound
}

func (m *memUsers) Create(_ context.Context, user *model.User) error {
	m.nextID++
	user.ID = m.nextID
	m.byEmail[user.Email] = user
	return nil
}

func TestHashToken(t *testing.T) {
	hash := HashToken("secret")
	assert.Len(t, hash, 64)
	assert.Equal(t, hash, HashToken("secret"))
	assert.NotEqual(t, hash, HashToken("Secret"))
}

func TestSplitToken(t *testing.T) {
	tests := []struct {
		token      string
		wantID     int64
		wantSecret string
	}{
		{"abc", 0, "abc"},
		{"12|abc", 12, "abc"},
		{"x|abc", 0, "abc"},
	}
	for _, tt := range tests {
		t.Run(tt.token, func(t *testing.T) {
			id, secret := splitToken(tt.token)
			assert.Equal(t, tt.wantID, id)
			assert.Equal(t, tt.wantSecret, secret)
		})
	}
}

func TestIssueAndAuthenticate(t *testing.T) {
	ctx := context.Background()
	tokens := newMemTokens()
	users := &memUsers{byEmail: map[string]*model.User{}}
	issuer := NewIssuer(users, tokens, logger.Discard())

	plaintext, token, err := issuer.Issue(ctx, "  Admin@Example.com ", "admin", "cli")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(plaintext, "1|"))
	assert.Equal(t, int64(1), token.UserID)
	assert.NotContains(t, token.TokenHash, strings.TrimPrefix(plaintext, "1|"))
	require.Contains(t, users.byEmail, "admin@example.com")

	fixed := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	authenticator := NewTokenAuthenticator(tokens, logger.Discard())
	authenticator.now = func() time.Time { return fixed }

	caller, err := authenticator.Authenticate(ctx, plaintext)
	require.NoError(t, err)
	assert.Equal(t, &model.Caller{UserID: 1, TokenID: 1, Name: "cli"}, caller)
	assert.Equal(t, fixed, tokens.touched[1])

	t.Run("secret without id prefix", func(t *testing.T) {
		caller, err := authenticator.Authenticate(ctx, strings.TrimPrefix(plaintext, "1|"))
		require.NoError(t, err)
		assert.Equal(t, int64(1), caller.TokenID)
	})

	t.Run("mismatched id prefix", func(t *testing.T) {
		_, err := authenticator.Authenticate(ctx, "7|"+strings.TrimPrefix(plaintext, "1|"))
		require.Error(t, err)
		assert.True(t, apperrors.HasCode(err, apperrors.CodeUnauthorized))
	})

	t.Run("second token reuses user", func(t *testing.T) {
		_, second, err := issuer.Issue(ctx, "admin@example.com", "", "ci")
		require.NoError(t, err)
		assert.Equal(t, int64(1), second.UserID)
		assert.Len(t, users.byEmail, 1)
	})
}

func TestAuthenticate_Rejects(t *testing.T) {
	authenticator := NewTokenAuthenticator(newMemTokens(), logger.Discard())

	_, err := authenticator.Authenticate(context.Background(), "")
	require.Error(t, err)
	assert.Equal(t, middleware.MsgMissingToken, apperrors.AsAppError(err).Message)

	_, err = authenticator.Authenticate(context.Background(), "1|unknown")
	require.Error(t, err)
	appErr := apperrors.AsAppError(err)
	assert.Equal(t, apperrors.CodeUnauthorized, appErr.Code)
	assert.Equal(t, middleware.MsgInvalidToken, appErr.Message)
}

func TestAuthenticate_StoreFailure(t *testing.T) {
	tokens := newMemTokens()
	tokens.findErr = errors.New("connection reset")
	authenticator := NewTokenAuthenticator(tokens, logger.Discard())

	_, err := authenticator.Authenticate(context.Background(), "token")
	require.Error(t, err)
	assert.True(t, apperrors.HasCode(err, apperrors.CodeInternal))
}
