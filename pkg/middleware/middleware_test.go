package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	apperrors "hotelbooking/pkg/errors"
	"hotelbooking/pkg/logger"
	"hotelbooking/pkg/model"

	"github.com/julienschmidt/httprouter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type authenticatorFunc func(ctx context.Context, token string) (*model.Caller, error)

func (f authenticatorFunc) Authenticate(ctx context.Context, token string) (*model.Caller, error) {
	return f(ctx, token)
}

func guarded(auth Authenticator) *httprouter.Router {
	router := httprouter.New()
	router.POST("/api/bookings", RequireAPIKey(auth, logger.Discard())(
		func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
			caller, ok := CallerFromContext(r.Context())
			if !ok {
				w.WriteHeader(http.StatusTeapot)
				return
			}
			w.Header().Set("X-Caller", caller.Name)
			w.WriteHeader(http.StatusOK)
		}))
	return router
}

func TestRequireAPIKey(t *testing.T) {
	auth := authenticatorFunc(func(_ context.Context, token string) (*model.Caller, error) {
		switch token {
		case "good":
			return &model.Caller{UserID: 1, Name: "frontdesk"}, nil
		case "broken":
			return nil, errors.New("mongo down")
		default:
			return nil, apperrors.Unauthorized(MsgInvalidToken)
		}
	})

	tests := []struct {
		name       string
		header     string
		wantStatus int
		wantBody   string
	}{
		{"missing header", "", http.StatusUnauthorized, `{"message":"API token is missing"}`},
		{"not a bearer", "Basic Zm9vOmJhcg==", http.StatusUnauthorized, `{"message":"API token is missing"}`},
		{"unknown token", "Bearer nope", http.StatusUnauthorized, `{"message":"Invalid API token"}`},
		{"lookup failure", "Bearer broken", http.StatusInternalServerError, `{"error":"Internal server error"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest(http.MethodPost, "/api/bookings", nil)
			if tt.header != "" {
				r.Header.Set("Authorization", tt.header)
			}
			w := httptest.NewRecorder()

			guarded(auth).ServeHTTP(w, r)

			assert.Equal(t, tt.wantStatus, w.Code)
			assert.JSONEq(t, tt.wantBody, w.Body.String())
		})
	}

	t.Run("valid token reaches handler with caller", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodPost, "/api/bookings", nil)
		r.Header.Set("Authorization", "bearer good")
		w := httptest.NewRecorder()

		guarded(auth).ServeHTTP(w, r)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "frontdesk", w.Header().Get("X-Caller"))
	})
}

func TestIdempotency_ReplaysSuccessfulMutation(t *testing.T) {
	store := NewInMemoryIdempotencyStore(time.Minute)
	defer store.Stop()

	var calls atomic.Int32
	handler := Idempotency(store, "", logger.Discard())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		n := calls.Add(1)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_ = json.NewEncoder(w).Encode(map[string]int32{"n": n})
	}))

	send := func(auth string) *httptest.ResponseRecorder {
		r := httptest.NewRequest(http.MethodPost, "/api/bookings", strings.NewReader(`{}`))
		r.Header.Set(DefaultIdempotencyHeader, "abc")
		r.Header.Set("Authorization", auth)
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, r)
		return w
	}

	first := send("Bearer a")
	second := send("Bearer a")
	other := send("Bearer b")

	assert.JSONEq(t, `{"n":1}`, first.Body.String())
	assert.JSONEq(t, `{"n":1}`, second.Body.String())
	assert.Equal(t, "true", second.Header().Get("Idempotent-Replayed"))
	assert.JSONEq(t, `{"n":2}`, other.Body.String())
}

func TestIdempotency_IgnoresReadsAndFailures(t *testing.T) {
	store := NewInMemoryIdempotencyStore(time.Minute)
	defer store.Stop()

	var calls atomic.Int32
	handler := Idempotency(store, "", logger.Discard())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		if r.Method == http.MethodPost {
			w.WriteHeader(http.StatusBadRequest)
		}
	}))

	for range 2 {
		for _, method := range []string{http.MethodGet, http.MethodPost} {
			r := httptest.NewRequest(method, "/api/rooms", nil)
			r.Header.Set(DefaultIdempotencyHeader, "k")
			handler.ServeHTTP(httptest.NewRecorder(), r)
		}
	}

	assert.Equal(t, int32(4), calls.Load())
}

func TestClientRateLimiter(t *testing.T) {
	limiter := NewClientRateLimiter(2, time.Minute, nil, logger.Discard())
	defer limiter.Stop()

	handler := RateLimit(limiter)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	codes := make([]int, 0, 3)
	for range 3 {
		r := httptest.NewRequest(http.MethodGet, "/api/rooms", nil)
		r.RemoteAddr = "10.0.0.1:5555"
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, r)
		codes = append(codes, w.Code)
	}
	assert.Equal(t, []int{200, 200, 429}, codes)

	r := httptest.NewRequest(http.MethodGet, "/api/rooms", nil)
	r.RemoteAddr = "10.0.0.2:5555"
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, r)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestDefaultClientKey(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.RemoteAddr = "192.168.1.9:1234"
	assert.Equal(t, "ip:192.168.1.9", DefaultClientKey(r))

	r.Header.Set("Authorization", "Bearer secret")
	key := DefaultClientKey(r)
	assert.True(t, strings.HasPrefix(key, "token:"))
	assert.NotContains(t, key, "secret")
}

func TestContentTypeValidation(t *testing.T) {
	handler := ContentTypeValidation(logger.Discard())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	r := httptest.NewRequest(http.MethodPost, "/api/rooms", strings.NewReader(`number=1`))
	r.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, r)
	assert.Equal(t, http.StatusUnsupportedMediaType, w.Code)

	r = httptest.NewRequest(http.MethodPost, "/api/rooms", strings.NewReader(`{}`))
	r.Header.Set("Content-Type", "application/json; charset=utf-8")
	w = httptest.NewRecorder()
	handler.ServeHTTP(w, r)
	assert.Equal(t, http.StatusOK, w.Code)

	r = httptest.NewRequest(http.MethodDelete, "/api/rooms/1", nil)
	w = httptest.NewRecorder()
	handler.ServeHTTP(w, r)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRecovery(t *testing.T) {
	handler := Recovery(logger.Discard())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	}))

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.JSONEq(t, `{"error":"Internal server error"}`, w.Body.String())
}

func TestRequestTimeout(t *testing.T) {
	handler := RequestTimeout(20*time.Millisecond, logger.Discard())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
		w.WriteHeader(http.StatusOK)
	}))

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.JSONEq(t, `{"error":"Request timeout"}`, w.Body.String())
}

func TestRequestLogging_PropagatesRequestID(t *testing.T) {
	var seen string
	handler := RequestLogging(logger.Discard())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = RequestIDFromContext(r.Context())
	}))

	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.Header.Set(RequestIDHeader, "req-123")
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, r)

	require.Equal(t, "req-123", seen)
	assert.Equal(t, "req-123", w.Header().Get(RequestIDHeader))
}

func TestMaxRequestSize(t *testing.T) {
	handler := MaxRequestSize(4)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"a":1}`)))
	assert.Equal(t, http.StatusRequestEntityTooLarge, w.Code)
}
