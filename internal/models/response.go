package models

// APIResponse is the envelope every non-auth endpoint answers with.
type APIResponse struct {
	Success bool        `json:"success"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

// LoginResponse is the answer of POST /auth/login. A failed login is a normal
// response with Success=false, not an error payload.
type LoginResponse struct {
	Success   bool   `json:"success"`
	Message   string `json:"message"`
	UserID    uint   `json:"userId,omitempty"`
	Username  string `json:"username,omitempty"`
	Role      string `json:"role,omitempty"`
	Token     string `json:"token,omitempty"`
	ExpiresAt string `json:"expiresAt,omitempty"`
}

// ValidateResponse is the answer of GET /auth/validate.
type ValidateResponse struct {
	Valid    bool   `json:"valid"`
	UserID   uint   `json:"userId,omitempty"`
	Username string `json:"username,omitempty"`
	Role     string `json:"role,omitempty"`
}
