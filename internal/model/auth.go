package model

type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
	Role     string `json:"role" binding:"required"`
}

type LoginResponse struct {
	Message     string       `json:"message"`
	AccessToken string       `json:"accessToken"`
	TokenType   string       `json:"tokenType"`
	User        PrincipalOut `json:"user"`
}

// PrincipalOut is the public projection of an authenticated account:
// identifier and role only.
type PrincipalOut struct {
	Username string `json:"username"`
	Role     string `json:"role"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}
