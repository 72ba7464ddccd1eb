package middleware

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/binna/binna-backend/logger"
	"github.com/lestrrat-go/jwx/v2/jwk"
)

// JWKSCache is a thread-safe cache of the Supabase signing keys.
type JWKSCache struct {
	keys        map[string]jwk.Key
	expiresAt   time.Time
	mutex       sync.RWMutex
	jwksURL     string
	anonKey     string
	ttl         time.Duration
	refreshLock sync.Mutex
	httpClient  *http.Client
}

var (
	jwksCacheInstance *JWKSCache
	jwksCacheOnce     sync.Once
)

// GetJWKSCache returns the process-wide cache, creating it on first use.
func GetJWKSCache(jwksURL, anonKey string, ttl time.Duration) *JWKSCache {
	jwksCacheOnce.Do(func() {
		logger.GetLogger().Infow("Initializing JWKS cache", "url", jwksURL, "ttl", ttl)
		jwksCacheInstance = NewJWKSCache(jwksURL, anonKey, ttl, nil)
	})

	jwksCacheInstance.mutex.Lock()
	if jwksCacheInstance.jwksURL != jwksURL || jwksCacheInstance.anonKey != anonKey {
		jwksCacheInstance.jwksURL = jwksURL
		jwksCacheInstance.anonKey = anonKey
		jwksCacheInstance.expiresAt = time.Time{}
	}
	jwksCacheInstance.mutex.Unlock()

	return jwksCacheInstance
}

// NewJWKSCache builds an unshared cache. A nil client gets a 10s timeout.
func NewJWKSCache(jwksURL, anonKey string, ttl time.Duration, client *http.Client) *JWKSCache {
	if client == nil {
		client = &http.Client{Timeout: 10 * time.Second}
	}
	return &JWKSCache{
		keys:       make(map[string]jwk.Key),
		jwksURL:    jwksURL,
		anonKey:    anonKey,
		ttl:        ttl,
		httpClient: client,
	}
}

// GetKey returns the key for kid, refreshing the set when it is stale or
// the key is unknown.
func (c *JWKSCache) GetKey(kid string) (jwk.Key, error) {
	c.mutex.RLock()
	key, found := c.keys[kid]
	expired := time.Now().After(c.expiresAt)
	c.mutex.RUnlock()

	if found && !expired {
		return key, nil
	}

	logger.GetLogger().Infow("JWKS cache miss or expired, refreshing", "kid", kid, "expired", expired)
	if err := c.refresh(!expired); err != nil {
		return nil, fmt.Errorf("failed to refresh JWKS cache for kid %s: %w", kid, err)
	}

	c.mutex.RLock()
	key, found = c.keys[kid]
	c.mutex.RUnlock()
	if !found {
		return nil, fmt.Errorf("key with kid '%s' not found in JWKS after refresh", kid)
	}
	return key, nil
}

// refresh refetches the key set. Only one fetch runs at a time; callers
// that waited on the lock reuse a set refreshed in the meantime unless
// force is set (an unknown kid on a fresh set).
func (c *JWKSCache) refresh(force bool) error {
	log := logger.GetLogger()

	c.refreshLock.Lock()
	defer c.refreshLock.Unlock()

	c.mutex.RLock()
	fresh := time.Now().Before(c.expiresAt)
	url, anonKey := c.jwksURL, c.anonKey
	c.mutex.RUnlock()
	if fresh && !force {
		return nil
	}
	if url == "" || anonKey == "" {
		return fmt.Errorf("JWKS URL or anon key is not configured")
	}

	ctx, cancel := context.WithTimeout(context.Background(), c.httpClient.Timeout+time.Second)
	defer cancel()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("failed to create JWKS request: %w", err)
	}
	req.Header.Set("apikey", anonKey)
	req.Header.Set("Authorization", "Bearer "+anonKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to fetch JWKS from %s: %w", url, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return fmt.Errorf("failed to read JWKS response body: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		log.Errorw("JWKS endpoint returned non-200 status", "status", resp.StatusCode, "url", url)
		return fmt.Errorf("JWKS endpoint returned status %d", resp.StatusCode)
	}

	set, err := jwk.Parse(body)
	if err != nil {
		return fmt.Errorf("failed to parse JWKS keys: %w", err)
	}

	keys := make(map[string]jwk.Key, set.Len())
	for i := 0; i < set.Len(); i++ {
		key, ok := set.Key(i)
		if !ok || key.KeyID() == "" {
			continue
		}
		keys[key.KeyID()] = key
	}

	c.mutex.Lock()
	c.keys = keys
	c.expiresAt = time.Now().Add(c.ttl)
	c.mutex.Unlock()

	log.Infow("JWKS cache refreshed", "keys_cached", len(keys))
	return nil
}
