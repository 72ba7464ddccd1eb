package medusa

import (
	"context"
	"encoding/base64"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/binna/binna-backend/config"
	apperrors "github.com/binna/binna-backend/errors"
	"github.com/binna/binna-backend/logger"
	"github.com/binna/binna-backend/types"
	"github.com/go-redis/redismock/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	logger.IsTest = true
}

const productsBody = `{"products":[{"id":"prod_1","title":"Cement 50kg","handle":"cement-50kg","status":"published"}],"count":1,"offset":0,"limit":20}`

func newMedusaServer(t *testing.T, status int, body string) (*httptest.Server, *int32) {
	t.Helper()
	var hits int32
	wantAuth := "Basic " + base64.StdEncoding.EncodeToString([]byte("sk_test:"))
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
		if r.Header.Get("Authorization") != wantAuth {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv, &hits
}

func testConfig(url string) config.MedusaConfig {
	return config.MedusaConfig{Enabled: true, URL: url, APIKey: "sk_test", TimeoutSeconds: 2}
}

func TestListProducts(t *testing.T) {
	srv, hits := newMedusaServer(t, http.StatusOK, productsBody)
	client := NewClient(testConfig(srv.URL))

	list, err := client.ListProducts(context.Background(), types.MedusaQuery{})
	require.NoError(t, err)
	require.Len(t, list.Items, 1)
	assert.Equal(t, "Cement 50kg", list.Items[0].Title)
	assert.Equal(t, 1, list.Count)
	assert.Equal(t, 20, list.Limit)
	assert.EqualValues(t, 1, atomic.LoadInt32(hits))
}

func TestGetProduct(t *testing.T) {
	srv, _ := newMedusaServer(t, http.StatusOK, `{"product":{"id":"prod_1","title":"Rebar 12mm"}}`)
	client := NewClient(testConfig(srv.URL))

	p, err := client.GetProduct(context.Background(), "prod_1")
	require.NoError(t, err)
	assert.Equal(t, "Rebar 12mm", p.Title)
}

func TestUpstreamErrors(t *testing.T) {
	tests := []struct {
		name       string
		status     int
		wantStatus int
	}{
		{name: "server error", status: http.StatusInternalServerError, wantStatus: http.StatusBadGateway},
		{name: "bad gateway", status: http.StatusBadGateway, wantStatus: http.StatusBadGateway},
		{name: "not found", status: http.StatusNotFound, wantStatus: http.StatusNotFound},
		{name: "forbidden key", status: http.StatusForbidden, wantStatus: http.StatusBadGateway},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv, _ := newMedusaServer(t, tt.status, `{"message":"boom"}`)
			client := NewClient(testConfig(srv.URL))

			_, err := client.ListOrders(context.Background(), types.MedusaQuery{})
			var appErr *apperrors.AppError
			require.True(t, errors.As(err, &appErr))
			assert.Equal(t, tt.wantStatus, appErr.HTTPStatus)
		})
	}
}

func TestDisabledClient(t *testing.T) {
	client := NewClient(config.MedusaConfig{Enabled: true, URL: "http://medusa.local"})
	assert.False(t, client.Enabled())

	_, err := client.ListInventoryItems(context.Background(), types.MedusaQuery{})
	var appErr *apperrors.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, http.StatusServiceUnavailable, appErr.HTTPStatus)
}

func TestCacheMissStoresResponse(t *testing.T) {
	srv, hits := newMedusaServer(t, http.StatusOK, productsBody)
	rdb, mock := redismock.NewClientMock()
	client := NewClient(testConfig(srv.URL), WithCache(rdb, time.Minute))

	key := "medusa:/admin/products?limit=20&offset=0"
	mock.ExpectGet(key).RedisNil()
	mock.ExpectSet(key, []byte(productsBody), time.Minute).SetVal("OK")

	_, err := client.ListProducts(context.Background(), types.MedusaQuery{})
	require.NoError(t, err)
	assert.EqualValues(t, 1, atomic.LoadInt32(hits))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCacheHitSkipsUpstream(t *testing.T) {
	srv, hits := newMedusaServer(t, http.StatusOK, `{}`)
	rdb, mock := redismock.NewClientMock()
	client := NewClient(testConfig(srv.URL), WithCache(rdb, time.Minute))

	mock.ExpectGet("medusa:/admin/products?limit=20&offset=0").SetVal(productsBody)

	list, err := client.ListProducts(context.Background(), types.MedusaQuery{})
	require.NoError(t, err)
	require.Len(t, list.Items, 1)
	assert.EqualValues(t, 0, atomic.LoadInt32(hits))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCacheFailureFallsThrough(t *testing.T) {
	srv, hits := newMedusaServer(t, http.StatusOK, productsBody)
	rdb, mock := redismock.NewClientMock()
	client := NewClient(testConfig(srv.URL), WithCache(rdb, time.Minute))

	key := "medusa:/admin/products?limit=20&offset=0&q=cement"
	mock.ExpectGet(key).SetErr(errors.New("connection refused"))
	mock.ExpectSet(key, []byte(productsBody), time.Minute).SetErr(errors.New("connection refused"))

	list, err := client.ListProducts(context.Background(), types.MedusaQuery{Query: "cement"})
	require.NoError(t, err)
	assert.Len(t, list.Items, 1)
	assert.EqualValues(t, 1, atomic.LoadInt32(hits))
}
