package middleware

import (
	"context"
	"net/http"

	apperrors "hotelbooking/pkg/errors"
	pkghttp "hotelbooking/pkg/http"
	"hotelbooking/pkg/logger"
	"hotelbooking/pkg/model"

	"github.com/julienschmidt/httprouter"
)

const (
	MsgMissingToken = "API token is missing"
	MsgInvalidToken = "Invalid API token"

	callerKey contextKey = "caller"
)

// Authenticator resolves a bearer token to its caller. An unknown token is
// reported as an Unauthorized AppError.
type Authenticator interface {
	Authenticate(ctx context.Context, token string) (*model.Caller, error)
}

// RequireAPIKey guards a route with bearer-token authentication and stores the
// caller in the request context.
func RequireAPIKey(auth Authenticator, log *logger.Logger) func(httprouter.Handle) httprouter.Handle {
	return func(next httprouter.Handle) httprouter.Handle {
		return func(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
			token := BearerToken(r)
			if token == "" {
				reject(w, r, log, apperrors.Unauthorized(MsgMissingToken))
				return
			}

			caller, err := auth.Authenticate(r.Context(), token)
			if err != nil {
				if !apperrors.HasCode(err, apperrors.CodeUnauthorized) {
					log.Error("API key lookup failed",
						"request_id", RequestIDFromContext(r.Context()),
						"error", err,
					)
				}
				reject(w, r, log, err)
				return
			}

			ctx := context.WithValue(r.Context(), callerKey, caller)
			next(w, r.WithContext(ctx), ps)
		}
	}
}

func reject(w http.ResponseWriter, r *http.Request, log *logger.Logger, err error) {
	log.Warn("Request rejected by API key guard",
		"request_id", RequestIDFromContext(r.Context()),
		"method", r.Method,
		"path", r.URL.Path,
		"reason", apperrors.AsAppError(err).Message,
	)
	if writeErr := pkghttp.WriteError(w, err); writeErr != nil {
		log.Error("failed to write error response", "error", writeErr)
	}
}

func CallerFromContext(ctx context.Context) (*model.Caller, bool) {
	caller, ok := ctx.Value(callerKey).(*model.Caller)
	return caller, ok
}
