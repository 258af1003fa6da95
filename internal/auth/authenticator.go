package auth

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"strconv"
	"strings"
	"time"

	apperrors "hotelbooking/pkg/errors"
	"hotelbooking/pkg/logger"
	"hotelbooking/pkg/middleware"
	"hotelbooking/pkg/model"
)

// HashToken returns the stored form of a token secret.
func HashToken(secret string) string {
	sum := sha256.Sum256([]byte(secret))
	return hex.EncodeToString(sum[:])
}

// splitToken separates the optional "<id>|" prefix from the secret. The
// returned id is zero when the prefix is absent or not a number.
func splitToken(token string) (int64, string) {
	prefix, secret, found := strings.Cut(token, "|")
	if !found {
		return 0, token
	}
	id, err := strconv.ParseInt(prefix, 10, 64)
	if err != nil {
		return 0, secret
	}
	return id, secret
}

type TokenAuthenticator struct {
	tokens TokenRepository
	log    *logger.Logger
	now    func() time.Time
}

func NewTokenAuthenticator(tokens TokenRepository, log *logger.Logger) *TokenAuthenticator {
	return &TokenAuthenticator{
		tokens: tokens,
		log:    log,
		now:    time.Now,
	}
}

func (a *TokenAuthenticator) Authenticate(ctx context.Context, token string) (*model.Caller, error) {
	if strings.TrimSpace(token) == "" {
		return nil, apperrors.Unauthorized(middleware.MsgMissingToken)
	}

	id, secret := splitToken(token)
	record, err := a.tokens.FindByHash(ctx, HashToken(secret))
	if err != nil {
		if errors.Is(err, ErrTokenNotFound) {
			return nil, apperrors.Unauthorized(middleware.MsgInvalidToken)
		}
		return nil, apperrors.Internal("Failed to verify API token", err)
	}
	if id != 0 && id != record.ID {
		return nil, apperrors.Unauthorized(middleware.MsgInvalidToken)
	}

	if err := a.tokens.TouchLastUsed(ctx, record.ID, a.now()); err != nil {
		a.log.Warn("Failed to record API token use", "token_id", record.ID, "error", err)
	}

	return &model.Caller{
		UserID:  record.UserID,
		TokenID: record.ID,
		Name:    record.Name,
	}, nil
}
