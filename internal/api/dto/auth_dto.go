package dto

// Data Transfer Objects for authentication requests and responses

// SignupRequest: payload for user registration
type SignupRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Username string `json:"username" binding:"omitempty,min=3,max=50"`
	Password string `json:"password" binding:"required,min=8"`
}

// TokenRequest: payload for obtaining a token pair; email is the
// authentication identifier
type TokenRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// TokenPairResponse: response payload after successful authentication
type TokenPairResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresIn    int64  `json:"expires_in"` // seconds
}

// RefreshTokenRequest: payload for refreshing the access token
type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

// AccessTokenResponse: response payload after refreshing the access token
type AccessTokenResponse struct {
	AccessToken string `json:"access_token"`
	ExpiresIn   int64  `json:"expires_in"` // seconds
}

// EmailLoginRequest: payload requesting a passwordless one-time code
type EmailLoginRequest struct {
	Email string `json:"email" binding:"required,email"`
}

// EmailConfirmRequest: payload exchanging a one-time code for a token pair
type EmailConfirmRequest struct {
	Email string `json:"email" binding:"required,email"`
	Code  string `json:"code" binding:"required,len=6,numeric"`
}
