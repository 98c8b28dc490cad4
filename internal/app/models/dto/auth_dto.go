package dto

// AdminLoginRequest carries the shared admin passcode
type AdminLoginRequest struct {
	Passcode string `json:"passcode" binding:"required"`
}

// AdminLoginResponse returns the issued session token and its lifetime in seconds
type AdminLoginResponse struct {
	Token     string `json:"token"`
	ExpiresIn int    `json:"expiresIn"`
}
