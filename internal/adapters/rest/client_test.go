package rest

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gitlab.com/nubelio/licences/storefront-client/internal/adapters/config"
	"gitlab.com/nubelio/licences/storefront-client/internal/adapters/logger"
	"gitlab.com/nubelio/licences/storefront-client/internal/adapters/tokenstore"
	"gitlab.com/nubelio/licences/storefront-client/internal/domain"
)

func testClient(t *testing.T, baseURL string, tokens domain.TokenStore) *Client {
	t.Helper()
	provider := &config.StaticProvider{Config: &config.Config{
		API: config.APIConfig{BaseURL: baseURL, TimeoutSeconds: 5, Locale: "fr"},
	}}
	client, err := NewClient(provider, tokens, logger.NewNop())
	require.NoError(t, err)
	return client
}

func TestDoSetsHeaders(t *testing.T) {
	tokens := tokenstore.NewMemoryStore()
	require.NoError(t, tokens.Set(domain.TokenPair{AccessToken: "acc-1", RefreshToken: "ref-1"}))

	var gotLang, gotAuth, gotRequestID, gotContentType string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotLang = r.Header.Get("x-lang")
		gotAuth = r.Header.Get("Authorization")
		gotRequestID = r.Header.Get("X-Request-Id")
		gotContentType = r.Header.Get("Content-Type")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"ok":true}`))
	}))
	defer server.Close()

	client := testClient(t, server.URL, tokens)
	var out map[string]bool
	err := client.Do(context.Background(), call{method: http.MethodGet, route: "/ping", path: "/ping"}, &out)
	require.NoError(t, err)

	assert.Equal(t, "fr", gotLang)
	assert.Equal(t, "Bearer acc-1", gotAuth)
	assert.NotEmpty(t, gotRequestID)
	assert.Equal(t, "application/json", gotContentType)
	assert.True(t, out["ok"])
}

func TestDoOmitsAuthorizationWithoutTokens(t *testing.T) {
	var gotAuth string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	client := testClient(t, server.URL, tokenstore.NewMemoryStore())
	require.NoError(t, client.Do(context.Background(), call{method: http.MethodGet, route: "/ping", path: "/ping"}, nil))
	assert.Empty(t, gotAuth)
}

func TestRefreshAndReplayOn401(t *testing.T) {
	tokens := tokenstore.NewMemoryStore()
	require.NoError(t, tokens.Set(domain.TokenPair{AccessToken: "stale", RefreshToken: "ref-1"}))

	var apiCalls, refreshCalls int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/auth/refresh":
			atomic.AddInt32(&refreshCalls, 1)
			assert.Equal(t, "Bearer ref-1", r.Header.Get("Authorization"))
			w.WriteHeader(http.StatusOK)
			json.NewEncoder(w).Encode(domain.TokenPair{AccessToken: "fresh", RefreshToken: "ref-2"})
		case "/things":
			n := atomic.AddInt32(&apiCalls, 1)
			if n == 1 {
				w.WriteHeader(http.StatusUnauthorized)
				return
			}
			assert.Equal(t, "Bearer fresh", r.Header.Get("Authorization"))
			w.WriteHeader(http.StatusOK)
			w.Write([]byte(`{"value":42}`))
		default:
			t.Errorf("unexpected path %s", r.URL.Path)
		}
	}))
	defer server.Close()

	client := testClient(t, server.URL, tokens)
	var out map[string]int
	err := client.Do(context.Background(), call{method: http.MethodGet, route: "/things", path: "/things"}, &out)
	require.NoError(t, err)

	assert.Equal(t, 42, out["value"])
	assert.EqualValues(t, 2, apiCalls)
	assert.EqualValues(t, 1, refreshCalls)

	pair, ok := tokens.Get()
	require.True(t, ok)
	assert.Equal(t, "fresh", pair.AccessToken)
	assert.Equal(t, "ref-2", pair.RefreshToken)
}

func TestRefreshFailureClearsSession(t *testing.T) {
	tokens := tokenstore.NewMemoryStore()
	require.NoError(t, tokens.Set(domain.TokenPair{AccessToken: "stale", RefreshToken: "dead"}))

	var apiCalls int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/auth/refresh":
			w.WriteHeader(http.StatusUnauthorized)
			w.Write([]byte(`{"statusCode":401,"message":"Invalid refresh token"}`))
		case "/things":
			atomic.AddInt32(&apiCalls, 1)
			w.WriteHeader(http.StatusUnauthorized)
		}
	}))
	defer server.Close()

	client := testClient(t, server.URL, tokens)
	err := client.Do(context.Background(), call{method: http.MethodGet, route: "/things", path: "/things"}, nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrSessionExpired)

	// The original request must not be replayed after a failed refresh.
	assert.EqualValues(t, 1, apiCalls)
	_, ok := tokens.Get()
	assert.False(t, ok)
}

func TestReplayedRequestIsNeverRetriedTwice(t *testing.T) {
	tokens := tokenstore.NewMemoryStore()
	require.NoError(t, tokens.Set(domain.TokenPair{AccessToken: "stale", RefreshToken: "ref-1"}))

	var apiCalls, refreshCalls int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/auth/refresh":
			atomic.AddInt32(&refreshCalls, 1)
			w.WriteHeader(http.StatusOK)
			json.NewEncoder(w).Encode(domain.TokenPair{AccessToken: "fresh", RefreshToken: "ref-2"})
		case "/things":
			atomic.AddInt32(&apiCalls, 1)
			w.WriteHeader(http.StatusUnauthorized)
		}
	}))
	defer server.Close()

	client := testClient(t, server.URL, tokens)
	err := client.Do(context.Background(), call{method: http.MethodGet, route: "/things", path: "/things"}, nil)
	require.Error(t, err)

	var apiErr *domain.APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusUnauthorized, apiErr.StatusCode)

	assert.EqualValues(t, 2, apiCalls)
	assert.EqualValues(t, 1, refreshCalls)
}

func Test401WithoutStoredPairFailsImmediately(t *testing.T) {
	var refreshCalls int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/auth/refresh" {
			atomic.AddInt32(&refreshCalls, 1)
		}
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer server.Close()

	client := testClient(t, server.URL, tokenstore.NewMemoryStore())
	err := client.Do(context.Background(), call{method: http.MethodGet, route: "/things", path: "/things"}, nil)
	assert.ErrorIs(t, err, domain.ErrSessionExpired)
	assert.EqualValues(t, 0, refreshCalls)
}

func TestDecodeErrorEnvelope(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		w.Write([]byte(`{"statusCode":422,"path":"/orders","message":"Validation failed","errors":["customerName is required"]}`))
	}))
	defer server.Close()

	client := testClient(t, server.URL, tokenstore.NewMemoryStore())
	err := client.Do(context.Background(), call{method: http.MethodPost, route: "/orders", path: "/orders"}, nil)
	require.Error(t, err)

	var apiErr *domain.APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, 422, apiErr.StatusCode)
	assert.Equal(t, "Validation failed", apiErr.Message)
	assert.Equal(t, "/orders", apiErr.Path)
	assert.Len(t, apiErr.Errors, 1)
}

func TestDecodeErrorSynthesizesEnvelope(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		w.Write([]byte("upstream exploded"))
	}))
	defer server.Close()

	client := testClient(t, server.URL, tokenstore.NewMemoryStore())
	err := client.Do(context.Background(), call{method: http.MethodGet, route: "/things", path: "/things"}, nil)

	var apiErr *domain.APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusBadGateway, apiErr.StatusCode)
	assert.Equal(t, "upstream exploded", apiErr.Message)
	assert.Equal(t, "/things", apiErr.Path)
}

func TestCookieJarCarriesSessionCookie(t *testing.T) {
	var gotCookie string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/cart":
			http.SetCookie(w, &http.Cookie{Name: "cart_session", Value: "sess-1", Path: "/"})
			w.WriteHeader(http.StatusOK)
		case "/cart/items":
			if c, err := r.Cookie("cart_session"); err == nil {
				gotCookie = c.Value
			}
			w.WriteHeader(http.StatusOK)
		}
	}))
	defer server.Close()

	client := testClient(t, server.URL, tokenstore.NewMemoryStore())
	ctx := context.Background()
	require.NoError(t, client.Do(ctx, call{method: http.MethodGet, route: "/cart", path: "/cart"}, nil))
	require.NoError(t, client.Do(ctx, call{method: http.MethodPost, route: "/cart/items", path: "/cart/items"}, nil))
	assert.Equal(t, "sess-1", gotCookie)
}
