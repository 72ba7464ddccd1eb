// Package medusa is a read-only client for the Medusa v2 admin REST API.
// Responses are cached in Redis; a cache that is down only costs latency.
package medusa

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/binna/binna-backend/config"
	apperrors "github.com/binna/binna-backend/errors"
	"github.com/binna/binna-backend/logger"
	"github.com/binna/binna-backend/types"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const (
	serviceName  = "Medusa"
	cachePrefix  = "medusa:"
	maxBodyBytes = 4 << 20
)

// Client talks to the Medusa admin API.
type Client struct {
	baseURL    string
	authHeader string
	enabled    bool
	httpClient *http.Client
	rdb        redis.UniversalClient
	cacheTTL   time.Duration
	log        *zap.SugaredLogger
}

// ClientOption is a function that configures the client
type ClientOption func(*Client)

// WithHTTPClient sets a custom HTTP client
func WithHTTPClient(client *http.Client) ClientOption {
	return func(c *Client) {
		c.httpClient = client
	}
}

// WithCache enables response caching. A nil client disables it.
func WithCache(rdb redis.UniversalClient, ttl time.Duration) ClientOption {
	return func(c *Client) {
		c.rdb = rdb
		c.cacheTTL = ttl
	}
}

func NewClient(cfg config.MedusaConfig, opts ...ClientOption) *Client {
	timeout := time.Duration(cfg.TimeoutSeconds) * time.Second
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	c := &Client{
		baseURL: strings.TrimRight(cfg.URL, "/"),
		// Secret API keys authenticate as the basic-auth username.
		authHeader: "Basic " + base64.StdEncoding.EncodeToString([]byte(cfg.APIKey+":")),
		enabled:    cfg.Enabled && cfg.URL != "" && cfg.APIKey != "",
		httpClient: &http.Client{Timeout: timeout},
		log:        logger.Named("medusa"),
	}

	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Client) Enabled() bool {
	return c.enabled
}

func (c *Client) ListProducts(ctx context.Context, q types.MedusaQuery) (*types.MedusaList[types.MedusaProduct], error) {
	return getList[types.MedusaProduct](ctx, c, "/admin/products", "products", listParams(q))
}

func (c *Client) GetProduct(ctx context.Context, id string) (*types.MedusaProduct, error) {
	var envelope struct {
		Product *types.MedusaProduct `json:"product"`
	}
	if err := c.get(ctx, "/admin/products/"+url.PathEscape(id), nil, &envelope); err != nil {
		return nil, err
	}
	if envelope.Product == nil {
		return nil, apperrors.NotFound("Product", id)
	}
	return envelope.Product, nil
}

func (c *Client) ListInventoryItems(ctx context.Context, q types.MedusaQuery) (*types.MedusaList[types.MedusaInventoryItem], error) {
	params := listParams(q)
	params.Set("fields", "*location_levels")
	return getList[types.MedusaInventoryItem](ctx, c, "/admin/inventory-items", "inventory_items", params)
}

func (c *Client) ListOrders(ctx context.Context, q types.MedusaQuery) (*types.MedusaList[types.MedusaOrder], error) {
	return getList[types.MedusaOrder](ctx, c, "/admin/orders", "orders", listParams(q))
}

func listParams(q types.MedusaQuery) url.Values {
	page := q.Page.Normalize()
	params := url.Values{}
	params.Set("limit", strconv.Itoa(page.Limit))
	params.Set("offset", strconv.Itoa(page.Offset))
	if q.Query != "" {
		params.Set("q", q.Query)
	}
	return params
}

// getList decodes Medusa's list envelope, whose item key differs per resource.
func getList[T any](ctx context.Context, c *Client, path, key string, params url.Values) (*types.MedusaList[T], error) {
	var envelope map[string]json.RawMessage
	if err := c.get(ctx, path, params, &envelope); err != nil {
		return nil, err
	}

	list := &types.MedusaList[T]{Items: make([]T, 0)}
	if raw, ok := envelope[key]; ok {
		if err := json.Unmarshal(raw, &list.Items); err != nil {
			return nil, apperrors.UpstreamFailure(serviceName, fmt.Errorf("decode %s: %w", key, err))
		}
	}
	for field, dst := range map[string]*int{"count": &list.Count, "offset": &list.Offset, "limit": &list.Limit} {
		if raw, ok := envelope[field]; ok {
			_ = json.Unmarshal(raw, dst)
		}
	}
	return list, nil
}

// get fetches path, serving from and filling the cache when one is configured.
func (c *Client) get(ctx context.Context, path string, params url.Values, out any) error {
	if !c.enabled {
		return apperrors.ServiceUnavailable(serviceName)
	}

	target := path
	if len(params) > 0 {
		target += "?" + params.Encode()
	}

	if body, ok := c.cached(ctx, target); ok {
		if err := json.Unmarshal(body, out); err == nil {
			return nil
		}
		c.log.Warnw("Discarding undecodable cached Medusa response", "key", target)
	}

	body, err := c.fetch(ctx, target)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(body, out); err != nil {
		return apperrors.UpstreamFailure(serviceName, fmt.Errorf("decode response: %w", err))
	}

	c.store(ctx, target, body)
	return nil
}

func (c *Client) fetch(ctx context.Context, target string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+target, nil)
	if err != nil {
		return nil, apperrors.UpstreamFailure(serviceName, err)
	}
	req.Header.Set("Authorization", c.authHeader)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, apperrors.UpstreamFailure(serviceName, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, apperrors.UpstreamFailure(serviceName, err)
	}

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return nil, apperrors.NotFound("Medusa resource", target)
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		c.log.Warnw("Medusa request failed", "path", target, "status", resp.StatusCode)
		return nil, apperrors.UpstreamFailure(serviceName, fmt.Errorf("status %d", resp.StatusCode))
	}
	return body, nil
}

func (c *Client) cached(ctx context.Context, key string) ([]byte, bool) {
	if c.rdb == nil || c.cacheTTL <= 0 {
		return nil, false
	}
	body, err := c.rdb.Get(ctx, cachePrefix+key).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			c.log.Warnw("Medusa cache read failed", "key", key, "error", err)
		}
		return nil, false
	}
	return body, true
}

func (c *Client) store(ctx context.Context, key string, body []byte) {
	if c.rdb == nil || c.cacheTTL <= 0 {
		return
	}
	if err := c.rdb.Set(ctx, cachePrefix+key, body, c.cacheTTL).Err(); err != nil {
		c.log.Warnw("Medusa cache write failed", "key", key, "error", err)
	}
}
