package rest

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/net/publicsuffix"

	"gitlab.com/nubelio/licences/storefront-client/internal/adapters/config"
	"gitlab.com/nubelio/licences/storefront-client/internal/adapters/metrics"
	"gitlab.com/nubelio/licences/storefront-client/internal/domain"
	"gitlab.com/nubelio/licences/storefront-client/pkg/contextkeys"
)

const (
	headerLang      = "x-lang"
	headerRequestID = "X-Request-Id"

	// maxAttempts bounds the 401 recovery: the original request plus
	// exactly one replay after a successful token refresh.
	maxAttempts = 2
)

// Client is the single choke point for all outbound calls to the
// licences API. It decorates every request with the bearer token and
// locale header, carries the cart session cookie in its jar, and
// implements the one-shot refresh-and-replay recovery for expired
// access tokens. All other failures are terminal for the call.
type Client struct {
	baseURL    string
	locale     string
	httpClient *http.Client
	tokens     domain.TokenStore
	logger     domain.Logger

	// refreshMu serializes token refreshes so concurrent 401s trigger
	// a single refresh call rather than one per in-flight request.
	refreshMu sync.Mutex
}

// NewClient constructs the API client from configuration. The cookie
// jar is what carries the server-set cart session cookie across calls,
// the equivalent of the browser's credentialed requests.
func NewClient(cfgProvider config.Provider, tokens domain.TokenStore, logger domain.Logger) (*Client, error) {
	if tokens == nil {
		panic("token store cannot be nil in NewClient")
	}
	if logger == nil {
		panic("logger cannot be nil in NewClient")
	}
	cfg := cfgProvider.Get()

	jar, err := cookiejar.New(&cookiejar.Options{PublicSuffixList: publicsuffix.List})
	if err != nil {
		return nil, fmt.Errorf("failed to create cookie jar: %w", err)
	}

	timeout := time.Duration(cfg.API.TimeoutSeconds) * time.Second
	if timeout <= 0 {
		// Long enough for a cold-started backend; this is a deployment
		// accommodation, not a retry policy.
		timeout = 90 * time.Second
	}

	return &Client{
		baseURL: strings.TrimRight(cfg.API.BaseURL, "/"),
		locale:  cfg.API.Locale,
		httpClient: &http.Client{
			Jar:     jar,
			Timeout: timeout,
		},
		tokens: tokens,
		logger: logger,
	}, nil
}

// call describes one outbound request. route is the stable route
// pattern used as metric label ("/products/:id"), path the concrete
// URL path.
type call struct {
	method string
	route  string
	path   string
	query  url.Values
	body   any
}

// Do executes the call and decodes a successful JSON response into out
// (which may be nil). On a 401 for a not-yet-replayed request it
// refreshes the token pair once and replays the call; on refresh
// failure both tokens are cleared and domain.ErrSessionExpired is
// returned. The attempt number is threaded explicitly rather than
// flagged on a mutable request object.
func (c *Client) Do(ctx context.Context, req call, out any) error {
	return c.do(ctx, req, out, 1)
}

func (c *Client) do(ctx context.Context, req call, out any, attempt int) error {
	ctx = context.WithValue(ctx, contextkeys.RequestIDKey, uuid.NewString())

	httpReq, err := c.buildRequest(ctx, req)
	if err != nil {
		return err
	}

	start := time.Now()
	resp, err := c.httpClient.Do(httpReq)
	elapsed := time.Since(start)
	if err != nil {
		metrics.ObserveAPIRequest(req.route, req.method, 0, elapsed)
		c.logger.Warn(ctx, "Request to licences API failed at transport level",
			"route", req.route, "method", req.method, "error", err.Error())
		return fmt.Errorf("request %s %s failed: %w", req.method, req.route, err)
	}
	defer resp.Body.Close()

	metrics.ObserveAPIRequest(req.route, req.method, resp.StatusCode, elapsed)

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response for %s %s: %w", req.method, req.route, err)
	}

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		if out == nil || len(body) == 0 {
			return nil
		}
		if err := json.Unmarshal(body, out); err != nil {
			return fmt.Errorf("failed to decode response for %s %s: %w", req.method, req.route, err)
		}
		return nil
	}

	if resp.StatusCode == http.StatusUnauthorized && attempt < maxAttempts {
		c.logger.Debug(ctx, "Received 401, attempting token refresh and replay",
			"route", req.route, "attempt", attempt)
		if err := c.refreshTokens(ctx); err != nil {
			return err
		}
		return c.do(ctx, req, out, attempt+1)
	}

	return c.decodeError(resp.StatusCode, body, req.path)
}

func (c *Client) buildRequest(ctx context.Context, req call) (*http.Request, error) {
	u := c.baseURL + req.path
	if len(req.query) > 0 {
		u += "?" + req.query.Encode()
	}

	var reader io.Reader
	if req.body != nil {
		payload, err := json.Marshal(req.body)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal request body for %s %s: %w", req.method, req.route, err)
		}
		reader = bytes.NewReader(payload)
	}

	httpReq, err := http.NewRequestWithContext(ctx, req.method, u, reader)
	if err != nil {
		return nil, fmt.Errorf("failed to build request for %s %s: %w", req.method, req.route, err)
	}

	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set(headerLang, c.locale)
	if requestID, ok := ctx.Value(contextkeys.RequestIDKey).(string); ok {
		httpReq.Header.Set(headerRequestID, requestID)
	}
	if pair, ok := c.tokens.Get(); ok {
		httpReq.Header.Set("Authorization", "Bearer "+pair.AccessToken)
	}
	return httpReq, nil
}

// refreshTokens performs the single refresh attempt of the recovery
// policy. On success the new pair is persisted; on any failure both
// tokens are cleared and the session is declared expired. It is never
// retried.
func (c *Client) refreshTokens(ctx context.Context) error {
	c.refreshMu.Lock()
	defer c.refreshMu.Unlock()

	pair, ok := c.tokens.Get()
	if !ok {
		metrics.IncTokenRefresh("failure")
		return fmt.Errorf("%w: no refresh token available", domain.ErrSessionExpired)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/auth/refresh", nil)
	if err != nil {
		return fmt.Errorf("failed to build refresh request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set(headerLang, c.locale)
	// The refresh endpoint authenticates with the refresh token, not
	// the (expired) access token.
	httpReq.Header.Set("Authorization", "Bearer "+pair.RefreshToken)

	start := time.Now()
	resp, err := c.httpClient.Do(httpReq)
	elapsed := time.Since(start)
	if err != nil {
		metrics.ObserveAPIRequest("/auth/refresh", http.MethodPost, 0, elapsed)
		metrics.IncTokenRefresh("failure")
		c.clearSession(ctx, "transport failure during refresh", err)
		return fmt.Errorf("%w: refresh call failed: %v", domain.ErrSessionExpired, err)
	}
	defer resp.Body.Close()

	metrics.ObserveAPIRequest("/auth/refresh", http.MethodPost, resp.StatusCode, elapsed)

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		metrics.IncTokenRefresh("failure")
		c.clearSession(ctx, "unreadable refresh response", err)
		return fmt.Errorf("%w: failed to read refresh response: %v", domain.ErrSessionExpired, err)
	}

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		metrics.IncTokenRefresh("failure")
		c.clearSession(ctx, "refresh token rejected", c.decodeError(resp.StatusCode, body, "/auth/refresh"))
		return fmt.Errorf("%w: refresh rejected with status %d", domain.ErrSessionExpired, resp.StatusCode)
	}

	var refreshed domain.TokenPair
	if err := json.Unmarshal(body, &refreshed); err != nil || !refreshed.Valid() {
		metrics.IncTokenRefresh("failure")
		c.clearSession(ctx, "malformed refresh response", err)
		return fmt.Errorf("%w: malformed refresh response", domain.ErrSessionExpired)
	}

	if err := c.tokens.Set(refreshed); err != nil {
		metrics.IncTokenRefresh("failure")
		return fmt.Errorf("failed to persist refreshed token pair: %w", err)
	}

	metrics.IncTokenRefresh("success")
	c.logger.Info(ctx, "Access token refreshed after 401")
	return nil
}

func (c *Client) clearSession(ctx context.Context, reason string, cause error) {
	fields := []any{"reason", reason}
	if cause != nil {
		fields = append(fields, "error", cause.Error())
	}
	c.logger.Warn(ctx, "Clearing stored tokens, re-authentication required", fields...)
	if err := c.tokens.Clear(); err != nil {
		c.logger.Error(ctx, "Failed to clear token store", "error", err.Error())
	}
}

// decodeError turns a non-2xx response into the server's error
// envelope, synthesizing the missing fields when the body is not the
// expected JSON shape.
func (c *Client) decodeError(status int, body []byte, path string) error {
	apiErr := &domain.APIError{}
	if err := json.Unmarshal(body, apiErr); err != nil || apiErr.Message == "" {
		apiErr.Message = strings.TrimSpace(string(body))
		if apiErr.Message == "" {
			apiErr.Message = http.StatusText(status)
		}
	}
	if apiErr.StatusCode == 0 {
		apiErr.StatusCode = status
	}
	if apiErr.Path == "" {
		apiErr.Path = path
	}
	return apiErr
}

// IsTimeout reports whether err is a client-side timeout, which the UI
// layer presents as a cold-start wait rather than a hard failure.
func IsTimeout(err error) bool {
	var urlErr *url.Error
	return errors.As(err, &urlErr) && urlErr.Timeout()
}
