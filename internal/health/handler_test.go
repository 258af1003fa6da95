package health

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"hotelbooking/pkg/contracts"
	"hotelbooking/pkg/logger"

	"github.com/julienschmidt/httprouter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

type stubPinger struct{ err error }

func (s stubPinger) Ping(context.Context, *readpref.ReadPref) error { return s.err }

func serve(t *testing.T, h *HealthHandler, path string) (int, Response) {
	t.Helper()
	router := httprouter.New()
	h.RegisterRoutes(router, contracts.Open)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))

	var resp Response
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return rec.Code, resp
}

func TestHealth(t *testing.T) {
	h := &HealthHandler{mongo: stubPinger{err: errors.New("down")}, log: logger.Discard()}

	code, resp := serve(t, h, "/health")
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, "ok", resp.Status)
}

func TestReady(t *testing.T) {
	tests := []struct {
		name       string
		mongoErr   error
		redis      func(context.Context) error
		wantCode   int
		wantStatus Response
	}{
		{
			name:       "mongo up without redis",
			wantCode:   http.StatusOK,
			wantStatus: Response{Status: "ready", Database: "ok"},
		},
		{
			name:       "mongo down",
			mongoErr:   errors.New("server selection timeout"),
			wantCode:   http.StatusServiceUnavailable,
			wantStatus: Response{Status: "unavailable", Database: "error"},
		},
		{
			name:       "redis down",
			redis:      func(context.Context) error { return errors.New("connection refused") },
			wantCode:   http.StatusServiceUnavailable,
			wantStatus: Response{Status: "unavailable", Database: "ok", Cache: "error"},
		},
		{
			name:       "both up",
			redis:      func(context.Context) error { return nil },
			wantCode:   http.StatusOK,
			wantStatus: Response{Status: "ready", Database: "ok", Cache: "ok"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := &HealthHandler{mongo: stubPinger{err: tt.mongoErr}, redis: tt.redis, log: logger.Discard()}

			code, resp := serve(t, h, "/ready")
			assert.Equal(t, tt.wantCode, code)
			assert.Equal(t, tt.wantStatus, resp)
		})
	}
}
