package application

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gitlab.com/nubelio/licences/storefront-client/internal/adapters/logger"
	"gitlab.com/nubelio/licences/storefront-client/internal/adapters/tokenstore"
	"gitlab.com/nubelio/licences/storefront-client/internal/domain"
)

type fakeAuthGateway struct {
	loginResp    *domain.AuthResponse
	loginErr     error
	registerResp *domain.AuthResponse
	registerErr  error
	meResp       *domain.Admin
	meErr        error
	logoutCalled bool
	lastRegister domain.RegisterRequest
	tokens       domain.TokenStore
}

func (f *fakeAuthGateway) Login(ctx context.Context, req domain.LoginRequest) (*domain.AuthResponse, error) {
	if f.loginErr != nil {
		return nil, f.loginErr
	}
	if f.tokens != nil {
		_ = f.tokens.Set(domain.TokenPair{AccessToken: f.loginResp.AccessToken, RefreshToken: f.loginResp.RefreshToken})
	}
	return f.loginResp, nil
}

func (f *fakeAuthGateway) Register(ctx context.Context, req domain.RegisterRequest) (*domain.AuthResponse, error) {
	f.lastRegister = req
	if f.registerErr != nil {
		return nil, f.registerErr
	}
	return f.registerResp, nil
}

func (f *fakeAuthGateway) Me(ctx context.Context) (*domain.Admin, error) {
	return f.meResp, f.meErr
}

func (f *fakeAuthGateway) Logout(ctx context.Context) error {
	f.logoutCalled = true
	if f.tokens != nil {
		_ = f.tokens.Clear()
	}
	return nil
}

func TestInitializeWithoutTokensSettlesUnauthenticated(t *testing.T) {
	svc := NewAuthService(&fakeAuthGateway{}, tokenstore.NewMemoryStore(), logger.NewNop())
	assert.Equal(t, StateUninitialized, svc.State())

	require.NoError(t, svc.Initialize(context.Background()))
	assert.Equal(t, StateUnauthenticated, svc.State())
	assert.Nil(t, svc.CurrentUser())
}

func TestInitializeRestoresStoredSession(t *testing.T) {
	tokens := tokenstore.NewMemoryStore()
	require.NoError(t, tokens.Set(domain.TokenPair{AccessToken: "a", RefreshToken: "r"}))

	gw := &fakeAuthGateway{meResp: &domain.Admin{ID: "u1", Email: "jane@example.com"}}
	svc := NewAuthService(gw, tokens, logger.NewNop())

	require.NoError(t, svc.Initialize(context.Background()))
	assert.Equal(t, StateAuthenticated, svc.State())
	require.NotNil(t, svc.CurrentUser())
	assert.Equal(t, "u1", svc.CurrentUser().ID)
}

func TestInitializeWithRejectedSessionSettlesUnauthenticated(t *testing.T) {
	tokens := tokenstore.NewMemoryStore()
	require.NoError(t, tokens.Set(domain.TokenPair{AccessToken: "a", RefreshToken: "r"}))

	gw := &fakeAuthGateway{meErr: &domain.APIError{StatusCode: http.StatusUnauthorized, Message: "Unauthorized"}}
	svc := NewAuthService(gw, tokens, logger.NewNop())

	require.NoError(t, svc.Initialize(context.Background()), "a rejected session is not an error")
	assert.Equal(t, StateUnauthenticated, svc.State())
	_, ok := tokens.Get()
	assert.False(t, ok, "a rejected pair must be dropped from the store")
}

func TestInitializeWithDisabledAccountClearsTokens(t *testing.T) {
	tokens := tokenstore.NewMemoryStore()
	require.NoError(t, tokens.Set(domain.TokenPair{AccessToken: "a", RefreshToken: "r"}))

	gw := &fakeAuthGateway{meErr: &domain.APIError{StatusCode: http.StatusForbidden, Message: "Account is disabled"}}
	svc := NewAuthService(gw, tokens, logger.NewNop())

	require.NoError(t, svc.Initialize(context.Background()))
	assert.Equal(t, StateUnauthenticated, svc.State())
	_, ok := tokens.Get()
	assert.False(t, ok, "tokens for a disabled account must not survive startup")
}

func TestInitializeWithTransportErrorReturnsIt(t *testing.T) {
	tokens := tokenstore.NewMemoryStore()
	require.NoError(t, tokens.Set(domain.TokenPair{AccessToken: "a", RefreshToken: "r"}))

	gw := &fakeAuthGateway{meErr: assert.AnError}
	svc := NewAuthService(gw, tokens, logger.NewNop())

	err := svc.Initialize(context.Background())
	assert.Error(t, err)
	assert.Equal(t, StateUnauthenticated, svc.State())
	_, ok := tokens.Get()
	assert.True(t, ok, "a transport failure keeps the pair for a later attempt")
}

func TestLoginValidatesInputs(t *testing.T) {
	svc := NewAuthService(&fakeAuthGateway{}, tokenstore.NewMemoryStore(), logger.NewNop())

	_, err := svc.Login(context.Background(), "", "secret")
	assert.ErrorIs(t, err, ErrFieldsRequired)

	_, err = svc.Login(context.Background(), "jane@example.com", "")
	assert.ErrorIs(t, err, ErrFieldsRequired)
}

func TestLoginSuccessAuthenticates(t *testing.T) {
	tokens := tokenstore.NewMemoryStore()
	gw := &fakeAuthGateway{
		tokens: tokens,
		loginResp: &domain.AuthResponse{
			Admin:        domain.Admin{ID: "u1", Email: "jane@example.com"},
			AccessToken:  "acc",
			RefreshToken: "ref",
		},
	}
	svc := NewAuthService(gw, tokens, logger.NewNop())

	user, err := svc.Login(context.Background(), "jane@example.com", "secret")
	require.NoError(t, err)
	assert.Equal(t, "u1", user.ID)
	assert.True(t, svc.IsAuthenticated())
}

func TestLoginFailurePassesServerErrorThrough(t *testing.T) {
	apiErr := &domain.APIError{StatusCode: http.StatusUnauthorized, Message: "Invalid credentials"}
	svc := NewAuthService(&fakeAuthGateway{loginErr: apiErr}, tokenstore.NewMemoryStore(), logger.NewNop())

	_, err := svc.Login(context.Background(), "jane@example.com", "wrong")
	require.Error(t, err)
	assert.Equal(t, "Email ou mot de passe incorrect.", TranslateError(err))
	assert.Equal(t, StateUnauthenticated, svc.State())
}

func TestRegisterValidations(t *testing.T) {
	svc := NewAuthService(&fakeAuthGateway{}, tokenstore.NewMemoryStore(), logger.NewNop())
	ctx := context.Background()

	_, err := svc.Register(ctx, "", "jane@example.com", "secret1", "secret1")
	assert.ErrorIs(t, err, ErrFieldsRequired)

	_, err = svc.Register(ctx, "Jane", "jane@example.com", "secret1", "secret2")
	assert.ErrorIs(t, err, ErrPasswordMismatch)

	_, err = svc.Register(ctx, "Jane", "jane@example.com", "abc", "abc")
	assert.ErrorIs(t, err, ErrPasswordTooShort)
}

func TestRegisterDefaultsToClientRole(t *testing.T) {
	gw := &fakeAuthGateway{registerResp: &domain.AuthResponse{
		Admin: domain.Admin{ID: "u1", Role: domain.RoleClient},
	}}
	svc := NewAuthService(gw, tokenstore.NewMemoryStore(), logger.NewNop())

	_, err := svc.Register(context.Background(), "Jane", "jane@example.com", "secret1", "secret1")
	require.NoError(t, err)
	assert.Equal(t, domain.RoleClient, gw.lastRegister.Role)
	assert.True(t, svc.IsAuthenticated())
}

func TestLogoutResetsState(t *testing.T) {
	tokens := tokenstore.NewMemoryStore()
	gw := &fakeAuthGateway{
		tokens: tokens,
		loginResp: &domain.AuthResponse{
			Admin:        domain.Admin{ID: "u1"},
			AccessToken:  "acc",
			RefreshToken: "ref",
		},
	}
	svc := NewAuthService(gw, tokens, logger.NewNop())
	_, err := svc.Login(context.Background(), "jane@example.com", "secret")
	require.NoError(t, err)

	require.NoError(t, svc.Logout(context.Background()))
	assert.True(t, gw.logoutCalled)
	assert.Equal(t, StateUnauthenticated, svc.State())
	assert.Nil(t, svc.CurrentUser())
	_, ok := tokens.Get()
	assert.False(t, ok)
}
