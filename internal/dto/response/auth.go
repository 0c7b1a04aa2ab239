package response

import (
	"time"
)

// RegisterResponse echoes the pending email back to the client: the verify
// step carries it explicitly instead of relying on server-side session state.
type RegisterResponse struct {
	Email        string    `json:"email"`
	OTPExpiresAt time.Time `json:"otp_expires_at"`
}

type AuthResponse struct {
	UserID    string    `json:"user_id"`
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
	Email     string    `json:"email"`
	FullName  string    `json:"full_name"`
	Role      string    `json:"role"`
}
