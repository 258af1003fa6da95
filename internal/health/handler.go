package health

import (
	"context"
	"net/http"
	"time"

	"hotelbooking/pkg/contracts"
	httputil "hotelbooking/pkg/http"
	"hotelbooking/pkg/logger"

	"github.com/julienschmidt/httprouter"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

const readyTimeout = 2 * time.Second

type Response struct {
	Status   string `json:"status"`
	Database string `json:"database,omitempty"`
	Cache    string `json:"cache,omitempty"`
}

type mongoPinger interface {
	Ping(ctx context.Context, rp *readpref.ReadPref) error
}

type HealthHandler struct {
	mongo mongoPinger
	redis func(ctx context.Context) error
	log   *logger.Logger
}

// NewHealthHandler checks Mongo on /ready, and Redis too when rdb is set.
func NewHealthHandler(mongoClient *mongo.Client, rdb *redis.Client, log *logger.Logger) *HealthHandler {
	h := &HealthHandler{mongo: mongoClient, log: log}
	if rdb != nil {
		h.redis = func(ctx context.Context) error { return rdb.Ping(ctx).Err() }
	}
	return h
}

func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	if err := httputil.WriteJSON(w, http.StatusOK, Response{Status: "ok"}); err != nil {
		h.log.Error("failed to write JSON response", "handler", "Health", "operation", "WriteJSON", "error", err)
	}
}

func (h *HealthHandler) Ready(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), readyTimeout)
	defer cancel()

	status := http.StatusOK
	resp := Response{Status: "ready", Database: "ok"}

	if err := h.mongo.Ping(ctx, nil); err != nil {
		h.log.Error("Database health check failed", "error", err, "path", r.URL.Path)
		status = http.StatusServiceUnavailable
		resp.Status = "unavailable"
		resp.Database = "error"
	}

	if h.redis != nil {
		resp.Cache = "ok"
		if err := h.redis(ctx); err != nil {
			h.log.Error("Cache health check failed", "error", err, "path", r.URL.Path)
			status = http.StatusServiceUnavailable
			resp.Status = "unavailable"
			resp.Cache = "error"
		}
	}

	if err := httputil.WriteJSON(w, status, resp); err != nil {
		h.log.Error("failed to write JSON response", "handler", "Ready", "operation", "WriteJSON", "error", err)
	}
}

// RegisterRoutes ignores guard; probes are always public.
func (h *HealthHandler) RegisterRoutes(router *httprouter.Router, _ contracts.Guard) {
	router.GET("/health", h.Health)
	router.GET("/ready", h.Ready)
}
