package api

// Endpoint paths of the auth API.
const (
	PathLogin         = "/api/auth/login"
	PathRegister      = "/api/auth/register"
	PathLogout        = "/api/auth/logout"
	PathDeleteAccount = "/api/auth/delete-account"
	PathMe            = "/api/auth/me"
)

// Credentials is the login and registration request body.
type Credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// AuthResponse is returned by the login, register, logout and
// delete-account endpoints. Token and Username are only set on a
// successful login or registration.
type AuthResponse struct {
	Success  bool   `json:"success"`
	Message  string `json:"message,omitempty"`
	Username string `json:"username,omitempty"`
	Token    string `json:"token,omitempty"`
}

// UserProfile is the body of GET /api/auth/me.
type UserProfile struct {
	Username string `json:"username"`
	Enabled  bool   `json:"enabled"`
	RoleName string `json:"roleName,omitempty"`
}
