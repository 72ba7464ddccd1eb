package middleware

import (
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJWKSCacheServesFromCache(t *testing.T) {
	_, srv, hits := jwksServer(t, "kid-1")
	cache := NewJWKSCache(srv.URL, "anon-key", time.Minute, srv.Client())

	for i := 0; i < 3; i++ {
		key, err := cache.GetKey("kid-1")
		require.NoError(t, err)
		assert.Equal(t, "kid-1", key.KeyID())
	}
	assert.Equal(t, int32(1), atomic.LoadInt32(hits))
}

func TestJWKSCacheConcurrentMissFetchesOnce(t *testing.T) {
	_, srv, hits := jwksServer(t, "kid-1")
	cache := NewJWKSCache(srv.URL, "anon-key", time.Minute, srv.Client())

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := cache.GetKey("kid-1")
			assert.NoError(t, err)
		}()
	}
	wg.Wait()
	assert.Equal(t, int32(1), atomic.LoadInt32(hits))
}

func TestJWKSCacheUnknownKid(t *testing.T) {
	_, srv, _ := jwksServer(t, "kid-1")
	cache := NewJWKSCache(srv.URL, "anon-key", time.Minute, srv.Client())

	_, err := cache.GetKey("missing")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found in JWKS")
}

func TestJWKSCacheUpstreamFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	t.Cleanup(srv.Close)
	cache := NewJWKSCache(srv.URL, "anon-key", time.Minute, srv.Client())

	_, err := cache.GetKey("kid-1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 503")
}

func TestJWKSCacheRequiresConfiguration(t *testing.T) {
	cache := NewJWKSCache("", "", time.Minute, nil)
	_, err := cache.GetKey("kid-1")
	assert.Error(t, err)
}
