package models

// AdminLoginRequest defines the structure for admin login requests.
// Credentials are verified server-side against the configured admin account;
// a successful login issues a signed session token.
type AdminLoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// AdminLoginResponse defines the structure for successful login responses.
type AdminLoginResponse struct {
	Token string `json:"token"` // Signed session JWT
	Email string `json:"email"`
}
