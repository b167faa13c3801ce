// Package cache provides the request memo behind the API's conditional
// responses: deployment-salted cache keys, weak ETags over JSON payloads,
// and a process-lifetime store of prior successful responses.
//
// This is a correctness cache, not a TTL cache. Entries never expire; they
// are invalidated only by a changed deployment salt or a process restart.
// There is no single-flight coalescing: two concurrent misses on the same
// key may both build the payload and both store it, and the second write
// simply wins. The mutex below exists for map safety, not to prevent that.
package cache

import (
	"crypto/md5"
	"fmt"
	"net/url"
	"strings"
	"sync"
)

// Entry is one memoized successful response: the canonical JSON body and
// its ETag.
type Entry struct {
	Body []byte
	ETag string
}

// Memo is the process-lifetime response store. Construct one at startup and
// inject it; tests call Reset between cases.
type Memo struct {
	mu      sync.RWMutex
	entries map[string]Entry
	enabled bool
}

// New creates a memo. Pass enabled=false for a no-op memo (every lookup
// misses, every store is dropped).
func New(enabled bool) *Memo {
	return &Memo{
		entries: make(map[string]Entry),
		enabled: enabled,
	}
}

// Get retrieves a memoized response.
func (m *Memo) Get(key string) (Entry, bool) {
	if !m.enabled {
		return Entry{}, false
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	e, ok := m.entries[key]
	return e, ok
}

// Set stores a response, overwriting any previous entry for the key.
func (m *Memo) Set(key string, body []byte, etag string) {
	if !m.enabled {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries[key] = Entry{Body: body, ETag: etag}
}

// Reset drops every entry.
func (m *Memo) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries = make(map[string]Entry)
}

// Stats returns memo statistics for the health endpoint.
func (m *Memo) Stats() map[string]interface{} {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return map[string]interface{}{
		"enabled": m.enabled,
		"keys":    len(m.entries),
	}
}

// routePrefix is the one-segment routing prefix stripped during key
// normalization, so the same handler keyed with or without it shares an
// entry.
const routePrefix = "/api"

// Key derives the cache key for a request path and raw query under the
// given deployment salt. It reports false for unparsable queries; callers
// treat that as the non-cacheable path. The key is a pure function of the
// normalized URL and the salt — request headers never participate.
//
// Normalization: strip one routePrefix segment when present, trim exactly
// one trailing slash (root excluded), and re-encode the query with keys
// sorted so parameter order cannot split entries.
func Key(salt, path, rawQuery string) (string, bool) {
	if path == "" {
		path = "/"
	}
	if path == routePrefix {
		path = "/"
	} else if strings.HasPrefix(path, routePrefix+"/") {
		path = path[len(routePrefix):]
	}
	if len(path) > 1 && strings.HasSuffix(path, "/") {
		path = path[:len(path)-1]
	}

	key := salt + ":" + path
	if rawQuery != "" {
		values, err := url.ParseQuery(rawQuery)
		if err != nil {
			return "", false
		}
		if encoded := values.Encode(); encoded != "" {
			key += "?" + encoded
		}
	}
	return key, true
}

// ETag computes a weak ETag over canonical JSON payload bytes.
func ETag(body []byte) string {
	hash := md5.Sum(body)
	return fmt.Sprintf(`W/"%x"`, hash[:8])
}

// MatchesValidator reports whether an If-None-Match header value matches
// the given ETag. The header may list several comma-separated validators;
// weak and strong forms of the same tag compare equal.
func MatchesValidator(ifNoneMatch, etag string) bool {
	if ifNoneMatch == "" || etag == "" {
		return false
	}
	if ifNoneMatch == "*" {
		return true
	}
	want := strongForm(etag)
	for _, candidate := range strings.Split(ifNoneMatch, ",") {
		if strongForm(strings.TrimSpace(candidate)) == want {
			return true
		}
	}
	return false
}

func strongForm(tag string) string {
	return strings.TrimPrefix(tag, "W/")
}
