package domain

// Role enumerates the account roles the licences API recognises.
type Role string

const (
	RoleSuperAdmin Role = "SUPER_ADMIN"
	RoleAdmin      Role = "ADMIN"
	RoleClient     Role = "CLIENT"
)

// Admin is the authenticated principal returned by the auth endpoints.
// Despite the name (kept from the remote API contract), storefront
// customers are Admins with the CLIENT role.
type Admin struct {
	ID        string `json:"id"`
	Email     string `json:"email"`
	Name      string `json:"name"`
	Role      Role   `json:"role"`
	IsActive  bool   `json:"isActive"`
	CreatedAt string `json:"createdAt"`
	UpdatedAt string `json:"updatedAt"`
}

// LoginRequest carries the credentials for POST /auth/login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// RegisterRequest carries the payload for POST /auth/register.
// Role is optional; the storefront always registers CLIENT accounts.
type RegisterRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
	Role     Role   `json:"role,omitempty"`
}

// AuthResponse is the shared shape of login and register responses.
type AuthResponse struct {
	Admin        Admin  `json:"admin"`
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

// HealthResponse is returned by GET /health, used to pre-warm a
// cold-started backend.
type HealthResponse struct {
	Status    string  `json:"status"`
	Timestamp string  `json:"timestamp"`
	Uptime    float64 `json:"uptime"`
}
