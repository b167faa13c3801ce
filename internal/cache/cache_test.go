package cache

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKey_Normalization(t *testing.T) {
	a, ok := Key("dev", "/api/seasons/", "b=2&a=1")
	require.True(t, ok)
	b, ok := Key("dev", "/seasons", "a=1&b=2")
	require.True(t, ok)

	// prefix stripped, one trailing slash trimmed, query re-encoded with
	// keys sorted: both spellings share one entry
	assert.Equal(t, a, b)
	assert.Equal(t, "dev:/seasons?a=1&b=2", a)
}

func TestKey_SaltPartitionsKeys(t *testing.T) {
	a, _ := Key("release-1", "/seasons", "")
	b, _ := Key("release-2", "/seasons", "")
	assert.NotEqual(t, a, b)
}

func TestKey_RootKeepsSlash(t *testing.T) {
	key, ok := Key("dev", "/", "")
	require.True(t, ok)
	assert.Equal(t, "dev:/", key)

	key, ok = Key("dev", "/api", "")
	require.True(t, ok)
	assert.Equal(t, "dev:/", key)
}

func TestKey_OnlyOneTrailingSlashTrimmed(t *testing.T) {
	key, ok := Key("dev", "/seasons//", "")
	require.True(t, ok)
	assert.Equal(t, "dev:/seasons/", key)
}

func TestKey_UnparsableQuery(t *testing.T) {
	_, ok := Key("dev", "/seasons", "a=%zz")
	assert.False(t, ok)
}

func TestKey_Idempotent(t *testing.T) {
	first, ok := Key("dev", "/api/skaters", "season=2023&report=both")
	require.True(t, ok)
	second, ok := Key("dev", "/api/skaters", "season=2023&report=both")
	require.True(t, ok)
	assert.Equal(t, first, second)
}

func TestETag_StableAndSensitive(t *testing.T) {
	body := []byte(`{"points":93}`)
	assert.Equal(t, ETag(body), ETag([]byte(`{"points":93}`)))
	assert.NotEqual(t, ETag(body), ETag([]byte(`{"points":94}`)))
	assert.Regexp(t, `^W/"[0-9a-f]{16}"$`, ETag(body))
}

func TestMatchesValidator(t *testing.T) {
	etag := `W/"aabbccdd11223344"`

	assert.True(t, MatchesValidator(etag, etag))
	assert.True(t, MatchesValidator(`"aabbccdd11223344"`, etag), "strong form matches weak")
	assert.True(t, MatchesValidator(`"zz", W/"aabbccdd11223344"`, etag), "comma-separated list")
	assert.True(t, MatchesValidator("*", etag))
	assert.False(t, MatchesValidator("", etag))
	assert.False(t, MatchesValidator(`W/"other"`, etag))
}

func TestMemo_SetGetReset(t *testing.T) {
	m := New(true)

	_, hit := m.Get("k")
	assert.False(t, hit)

	m.Set("k", []byte("body"), `W/"tag"`)
	entry, hit := m.Get("k")
	require.True(t, hit)
	assert.Equal(t, []byte("body"), entry.Body)
	assert.Equal(t, `W/"tag"`, entry.ETag)

	// last writer wins
	m.Set("k", []byte("body2"), `W/"tag2"`)
	entry, _ = m.Get("k")
	assert.Equal(t, `W/"tag2"`, entry.ETag)

	m.Reset()
	_, hit = m.Get("k")
	assert.False(t, hit)
}

func TestMemo_DisabledIsNoOp(t *testing.T) {
	m := New(false)
	m.Set("k", []byte("body"), `W/"tag"`)
	_, hit := m.Get("k")
	assert.False(t, hit)
}
