package domain

// TokenPair is the bearer credential pair issued by the auth endpoints.
// Invariant: both tokens present or the pair counts as absent; a
// partial pair must never be used for authorization.
type TokenPair struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

// Valid reports whether the pair is complete enough to authorize with.
func (p TokenPair) Valid() bool {
	return p.AccessToken != "" && p.RefreshToken != ""
}

// TokenStore persists the bearer token pair across process restarts
// within one installation. Implementations do not track expiry; the
// server's token validity is the sole authority.
type TokenStore interface {
	// Get returns the stored pair. A missing or partial pair is
	// reported as (TokenPair{}, false) and never as an error.
	Get() (TokenPair, bool)

	// Set overwrites the stored pair unconditionally.
	Set(pair TokenPair) error

	// Clear removes both tokens. Used on logout and on irrecoverable
	// auth failure.
	Clear() error
}
