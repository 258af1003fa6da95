package auth

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"

	"hotelbooking/pkg/logger"
	"hotelbooking/pkg/model"
	"hotelbooking/pkg/sanitizer"
)

const secretBytes = 20

type Issuer struct {
	users  UserRepository
	tokens TokenRepository
	log    *logger.Logger
}

func NewIssuer(users UserRepository, tokens TokenRepository, log *logger.Logger) *Issuer {
	return &Issuer{
		users:  users,
		tokens: tokens,
		log:    log,
	}
}

// Issue creates a token for the user with email, creating the user when
// needed. The returned plaintext is "<token id>|<secret>"; only the secret's
// hash is stored.
func (i *Issuer) Issue(ctx context.Context, email, userName, tokenName string) (string, *model.APIToken, error) {
	user, err := i.findOrCreateUser(ctx, sanitizer.NormalizeEmail(email), sanitizer.NormalizeName(userName))
	if err != nil {
		return "", nil, err
	}

	secret, err := newSecret()
	if err != nil {
		return "", nil, err
	}

	token := &model.APIToken{
		UserID:    user.ID,
		Name:      tokenName,
		TokenHash: HashToken(secret),
	}
	if err := i.tokens.Create(ctx, token); err != nil {
		return "", nil, err
	}

	i.log.Info("API token issued", "token_id", token.ID, "user_id", user.ID, "name", tokenName)
	return fmt.Sprintf("%d|%s", token.ID, secret), token, nil
}

func (i *Issuer) findOrCreateUser(ctx context.Context, email, name string) (*model.User, error) {
	user, err := i.users.FindByEmail(ctx, email)
	if err == nil {
		return user, nil
	}
	if !errors.Is(err, ErrUserNotFound) {
		return nil, err
	}

	if name == "" {
		name = email
	}
	user = &model.User{Name: name, Email: email}
	if err := i.users.Create(ctx, user); err != nil {
		return nil, err
	}
	i.log.Info("User created", "user_id", user.ID, "email", email)
	return user, nil
}

func newSecret() (string, error) {
	buf := make([]byte, secretBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("generate token secret: %w", err)
	}
	return hex.EncodeToString(buf), nil
}
