package application

import (
	"context"
	"errors"
	"strings"
	"sync"

	"gitlab.com/nubelio/licences/storefront-client/internal/domain"
)

// AuthState is the lifecycle of the session container.
type AuthState string

const (
	// StateUninitialized means Initialize has not run yet.
	StateUninitialized AuthState = "uninitialized"
	// StateVerifying means a stored token pair is being checked against
	// the API.
	StateVerifying AuthState = "verifying"
	// StateAuthenticated means the API confirmed the current principal.
	StateAuthenticated AuthState = "authenticated"
	// StateUnauthenticated means no usable session exists.
	StateUnauthenticated AuthState = "unauthenticated"
)

// AuthGateway is the slice of the REST boundary the auth container
// consumes.
type AuthGateway interface {
	Login(ctx context.Context, req domain.LoginRequest) (*domain.AuthResponse, error)
	Register(ctx context.Context, req domain.RegisterRequest) (*domain.AuthResponse, error)
	Me(ctx context.Context) (*domain.Admin, error)
	Logout(ctx context.Context) error
}

// AuthService is the session container: it owns the authentication
// state machine and the current principal. Token persistence itself
// lives in the token store; this service only orchestrates it.
type AuthService struct {
	api    AuthGateway
	tokens domain.TokenStore
	logger domain.Logger

	mu    sync.RWMutex
	state AuthState
	user  *domain.Admin
}

// NewAuthService creates the session container in the uninitialized state.
func NewAuthService(api AuthGateway, tokens domain.TokenStore, logger domain.Logger) *AuthService {
	if api == nil {
		panic("api cannot be nil in NewAuthService")
	}
	if tokens == nil {
		panic("tokens cannot be nil in NewAuthService")
	}
	if logger == nil {
		panic("logger cannot be nil in NewAuthService")
	}
	return &AuthService{
		api:    api,
		tokens: tokens,
		logger: logger,
		state:  StateUninitialized,
	}
}

// Initialize resolves the startup session: with no stored pair the
// state settles directly on unauthenticated; with one, the pair is
// verified against /auth/me (which transparently refreshes on 401).
// A rejected session drops the stored pair and settles unauthenticated;
// a transport failure also settles on unauthenticated but keeps the
// stored pair so a later attempt can succeed.
func (s *AuthService) Initialize(ctx context.Context) error {
	if _, ok := s.tokens.Get(); !ok {
		s.setState(StateUnauthenticated, nil)
		return nil
	}

	s.setState(StateVerifying, nil)
	user, err := s.api.Me(ctx)
	if err != nil {
		s.setState(StateUnauthenticated, nil)
		if isSessionRejection(err) {
			// A rejected pair must not survive to be re-verified on
			// every startup.
			if clearErr := s.tokens.Clear(); clearErr != nil {
				s.logger.Warn(ctx, "Failed to clear rejected token pair", "error", clearErr.Error())
			}
			s.logger.Info(ctx, "Stored session rejected, user must log in again")
			return nil
		}
		s.logger.Warn(ctx, "Could not verify stored session", "error", err.Error())
		return err
	}

	s.setState(StateAuthenticated, user)
	s.logger.Info(ctx, "Session restored from stored tokens", "email", user.Email)
	return nil
}

// Login authenticates with credentials. The REST layer persists the
// returned token pair before this returns.
func (s *AuthService) Login(ctx context.Context, email, password string) (*domain.Admin, error) {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return nil, ErrFieldsRequired
	}

	resp, err := s.api.Login(ctx, domain.LoginRequest{Email: email, Password: password})
	if err != nil {
		s.setState(StateUnauthenticated, nil)
		return nil, err
	}

	s.setState(StateAuthenticated, &resp.Admin)
	s.logger.Info(ctx, "User logged in", "email", resp.Admin.Email, "role", string(resp.Admin.Role))
	return &resp.Admin, nil
}

// Register creates a CLIENT account and authenticates it. The password
// confirmation check stays client-side.
func (s *AuthService) Register(ctx context.Context, name, email, password, confirm string) (*domain.Admin, error) {
	name = strings.TrimSpace(name)
	email = strings.TrimSpace(email)
	if name == "" || email == "" || password == "" {
		return nil, ErrFieldsRequired
	}
	if password != confirm {
		return nil, ErrPasswordMismatch
	}
	if len(password) < 6 {
		return nil, ErrPasswordTooShort
	}

	resp, err := s.api.Register(ctx, domain.RegisterRequest{
		Name:     name,
		Email:    email,
		Password: password,
		Role:     domain.RoleClient,
	})
	if err != nil {
		return nil, err
	}

	s.setState(StateAuthenticated, &resp.Admin)
	s.logger.Info(ctx, "User registered", "email", resp.Admin.Email)
	return &resp.Admin, nil
}

// Logout drops the stored pair and resets the container.
func (s *AuthService) Logout(ctx context.Context) error {
	err := s.api.Logout(ctx)
	s.setState(StateUnauthenticated, nil)
	return err
}

// State returns the current lifecycle state.
func (s *AuthService) State() AuthState {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

// CurrentUser returns the authenticated principal, or nil.
func (s *AuthService) CurrentUser() *domain.Admin {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.user
}

// IsAuthenticated reports whether a verified session exists.
func (s *AuthService) IsAuthenticated() bool {
	return s.State() == StateAuthenticated
}

func (s *AuthService) setState(state AuthState, user *domain.Admin) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = state
	s.user = user
}

func isSessionRejection(err error) bool {
	if err == nil {
		return false
	}
	if domain.IsStatus(err, 401) || domain.IsStatus(err, 403) {
		return true
	}
	return errors.Is(err, domain.ErrSessionExpired)
}
