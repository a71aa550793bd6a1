package dto

// LoginRequest opens a panel session for a role
type LoginRequest struct {
	Role     string `json:"role" binding:"required,oneof=admin developer"`
	Password string `json:"password" binding:"required"`
}

// SessionResponse reports the state of the caller's session
type SessionResponse struct {
	Authenticated bool   `json:"authenticated"`
	Role          string `json:"role,omitempty"`
}
