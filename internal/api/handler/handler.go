// Package handler provides HTTP handlers for all API endpoints. Every
// data endpoint runs through the same conditional-caching state machine in
// serve(); operational endpoints (root, health) bypass it.
package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/puckboard/puckboard/internal/api/respond"
	"github.com/puckboard/puckboard/internal/cache"
	"github.com/puckboard/puckboard/internal/config"
	"github.com/puckboard/puckboard/internal/db"
	"github.com/puckboard/puckboard/internal/service"
)

// Handler holds shared dependencies for all endpoint handlers.
type Handler struct {
	svc   *service.Service
	pool  *db.Pool
	memo  *cache.Memo
	cfg   *config.Config
	start time.Time
}

// New creates a Handler with shared dependencies.
func New(svc *service.Service, pool *db.Pool, memo *cache.Memo, cfg *config.Config) *Handler {
	return &Handler{
		svc:   svc,
		pool:  pool,
		memo:  memo,
		cfg:   cfg,
		start: time.Now(),
	}
}

// payloadFunc builds the JSON payload for one request on a cache miss.
type payloadFunc func(ctx context.Context) (interface{}, error)

// serve runs the conditional-caching state machine around build.
//
// Non-GET requests and unparsable queries take the no-key path: the handler
// always runs and the response carries cache-busting headers. Otherwise the
// key is derived from the deployment salt and the normalized URL. A memo
// hit whose ETag matches the caller's If-None-Match validator answers 304
// without invoking build at all; a hit without a matching validator serves
// the stored body, also without invoking build — entries are never
// refreshed in place, only abandoned on a deploy-salt change or process
// restart. On a miss, the freshly computed ETag is
// checked against the validator too, so a cold process still answers 304
// to a client holding the right validator.
//
// The memo write is last-writer-wins; concurrent identical misses may each
// run build once. That duplication is accepted rather than coalesced.
func (h *Handler) serve(w http.ResponseWriter, r *http.Request, build payloadFunc) {
	key, cacheable := cache.Key(h.cfg.DeployID, r.URL.Path, r.URL.RawQuery)
	if r.Method != http.MethodGet {
		cacheable = false
	}
	if !cacheable {
		payload, err := build(r.Context())
		if err != nil {
			h.writeError(w, err)
			return
		}
		respond.WriteUncached(w, http.StatusOK, payload)
		return
	}

	validator := r.Header.Get("If-None-Match")
	if entry, hit := h.memo.Get(key); hit {
		if cache.MatchesValidator(validator, entry.ETag) {
			respond.WriteNotModified(w, entry.ETag)
			return
		}
		respond.WriteCached(w, entry.Body, entry.ETag)
		return
	}

	payload, err := build(r.Context())
	if err != nil {
		h.writeError(w, err)
		return
	}
	body, err := json.Marshal(payload)
	if err != nil {
		respond.WriteError(w, http.StatusInternalServerError, "INTERNAL", "failed to encode response")
		return
	}
	etag := cache.ETag(body)
	h.memo.Set(key, body, etag)

	if cache.MatchesValidator(validator, etag) {
		respond.WriteNotModified(w, etag)
		return
	}
	respond.WriteCached(w, body, etag)
}

// writeError maps a failure onto the response. A service.Error's status is
// honored verbatim, falling back to 500 when it is zero; anything else is
// an internal failure.
func (h *Handler) writeError(w http.ResponseWriter, err error) {
	var se *service.Error
	if errors.As(err, &se) {
		status := se.Status
		if status == 0 {
			status = http.StatusInternalServerError
		}
		code := "INTERNAL"
		if status == http.StatusBadRequest {
			code = "BAD_REQUEST"
		}
		respond.WriteError(w, status, code, se.Message)
		return
	}
	respond.WriteError(w, http.StatusInternalServerError, "INTERNAL", err.Error())
}

// Root serves API info at /.
func (h *Handler) Root(w http.ResponseWriter, r *http.Request) {
	respond.WriteUncached(w, http.StatusOK, map[string]interface{}{
		"name":    "Puckboard League API",
		"version": "1.0.0",
		"status":  "running",
	})
}

// HealthCheck returns process status, uptime, and timestamp. Never cached.
func (h *Handler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	respond.WriteUncached(w, http.StatusOK, map[string]interface{}{
		"status":    "healthy",
		"uptime":    time.Since(h.start).Round(time.Second).String(),
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

// HealthCheckDB verifies database connectivity.
func (h *Handler) HealthCheckDB(w http.ResponseWriter, r *http.Request) {
	if err := h.pool.HealthCheck(r.Context()); err != nil {
		respond.WriteUncached(w, http.StatusServiceUnavailable, map[string]interface{}{
			"status":    "unhealthy",
			"database":  "disconnected",
			"timestamp": time.Now().UTC().Format(time.RFC3339),
		})
		return
	}
	respond.WriteUncached(w, http.StatusOK, map[string]interface{}{
		"status":    "healthy",
		"database":  "connected",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

// HealthCheckCache returns response-memo statistics.
func (h *Handler) HealthCheckCache(w http.ResponseWriter, r *http.Request) {
	respond.WriteUncached(w, http.StatusOK, map[string]interface{}{
		"status":    "healthy",
		"memo":      h.memo.Stats(),
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}
