package authsdk

// TokenResponse is returned by the login and refresh exchanges. The refresh
// exchange may omit RefreshToken, in which case the old one stays valid.
type TokenResponse struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken,omitempty"`
}

// ErrorResponse is the OAuth2 style error body some API gateways return.
type ErrorResponse struct {
	Error            string `json:"error"`
	ErrorDescription string `json:"error_description,omitempty"`
}

type refreshRequest struct {
	RefreshToken string `json:"refreshToken"`
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}
