package rest

import (
	"context"
	"fmt"
	"net/http"

	"gitlab.com/nubelio/licences/storefront-client/internal/domain"
)

// AuthAPI wraps the /auth routes. Login and Register persist the
// returned token pair as a side effect, so a subsequent Me call
// succeeds without re-sending credentials.
type AuthAPI struct {
	client *Client
	tokens domain.TokenStore
	logger domain.Logger
}

// NewAuthAPI creates the auth route wrapper.
func NewAuthAPI(client *Client, tokens domain.TokenStore, logger domain.Logger) *AuthAPI {
	return &AuthAPI{client: client, tokens: tokens, logger: logger}
}

// Login exchanges credentials for a token pair and persists it.
func (a *AuthAPI) Login(ctx context.Context, req domain.LoginRequest) (*domain.AuthResponse, error) {
	var resp domain.AuthResponse
	err := a.client.Do(ctx, call{
		method: http.MethodPost,
		route:  "/auth/login",
		path:   "/auth/login",
		body:   req,
	}, &resp)
	if err != nil {
		return nil, err
	}
	if err := a.persistPair(ctx, resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Register creates an account and persists the returned token pair.
func (a *AuthAPI) Register(ctx context.Context, req domain.RegisterRequest) (*domain.AuthResponse, error) {
	var resp domain.AuthResponse
	err := a.client.Do(ctx, call{
		method: http.MethodPost,
		route:  "/auth/register",
		path:   "/auth/register",
		body:   req,
	}, &resp)
	if err != nil {
		return nil, err
	}
	if err := a.persistPair(ctx, resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Me returns the authenticated principal for the stored access token.
func (a *AuthAPI) Me(ctx context.Context) (*domain.Admin, error) {
	var admin domain.Admin
	err := a.client.Do(ctx, call{
		method: http.MethodGet,
		route:  "/auth/me",
		path:   "/auth/me",
	}, &admin)
	if err != nil {
		return nil, err
	}
	return &admin, nil
}

// Logout clears the stored token pair. No server round-trip is needed:
// the session dies with the tokens.
func (a *AuthAPI) Logout(ctx context.Context) error {
	if err := a.tokens.Clear(); err != nil {
		return fmt.Errorf("failed to clear tokens on logout: %w", err)
	}
	a.logger.Info(ctx, "Logged out, tokens cleared")
	return nil
}

func (a *AuthAPI) persistPair(ctx context.Context, resp domain.AuthResponse) error {
	pair := domain.TokenPair{AccessToken: resp.AccessToken, RefreshToken: resp.RefreshToken}
	if !pair.Valid() {
		// A partial pair is treated as absent; do not store it.
		a.logger.Warn(ctx, "Auth response carried a partial token pair, not persisting")
		return nil
	}
	if err := a.tokens.Set(pair); err != nil {
		return fmt.Errorf("failed to persist token pair: %w", err)
	}
	return nil
}
