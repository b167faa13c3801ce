// Package respond provides shared JSON response utilities for API handlers.
package respond

import (
	"encoding/json"
	"net/http"
)

// cacheControl is the directive set on every cacheable success: shared and
// edge caches may hold the body for a week and serve it stale during
// revalidation, while clients must revalidate (via ETag) on every use.
const cacheControl = "public, max-age=0, s-maxage=604800, stale-while-revalidate=86400"

// varyHeaders always joins any Vary values already present on cacheable
// responses. The cache key ignores auth headers, so Vary is what keeps
// differently-authorized callers from sharing edge-cached bodies.
var varyHeaders = []string{"Authorization", "X-Api-Key"}

// ErrorResponse is the standard error shape for all API errors.
type ErrorResponse struct {
	Error struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

// WriteCached writes a memoizable JSON body with conditional-caching
// headers: Cache-Control, ETag, and merged Vary.
func WriteCached(w http.ResponseWriter, body []byte, etag string) {
	h := w.Header()
	h.Set("Content-Type", "application/json")
	h.Set("Cache-Control", cacheControl)
	h.Set("ETag", etag)
	for _, v := range varyHeaders {
		h.Add("Vary", v)
	}
	w.WriteHeader(http.StatusOK)
	w.Write(body)
}

// WriteNotModified sends a 304 with the matching ETag and no body.
func WriteNotModified(w http.ResponseWriter, etag string) {
	h := w.Header()
	h.Set("Cache-Control", cacheControl)
	h.Set("ETag", etag)
	for _, v := range varyHeaders {
		h.Add("Vary", v)
	}
	w.WriteHeader(http.StatusNotModified)
}

// WriteError sends a structured JSON error response with cache-busting
// headers. Errors are never memoized.
func WriteError(w http.ResponseWriter, status int, code, message string) {
	resp := ErrorResponse{}
	resp.Error.Code = code
	resp.Error.Message = message
	h := w.Header()
	h.Set("Content-Type", "application/json")
	h.Set("Cache-Control", "no-store")
	h.Set("Pragma", "no-cache")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(resp)
}

// WriteUncached marshals a Go value to JSON with cache-busting headers.
// Used for the non-cacheable path and operational endpoints (health, root).
func WriteUncached(w http.ResponseWriter, status int, v interface{}) {
	h := w.Header()
	h.Set("Content-Type", "application/json")
	h.Set("Cache-Control", "no-store")
	h.Set("Pragma", "no-cache")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
