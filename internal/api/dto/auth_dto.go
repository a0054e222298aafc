package dto

import "github.com/spec-kit/tutoring-service/internal/service"

// RegisterRequest payload for new teacher accounts.
type RegisterRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	FullName string `json:"fullName"`
}

// LoginRequest payload for login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// RefreshRequest payload for token rotation.
type RefreshRequest struct {
	RefreshToken string `json:"refreshToken"`
}

// LogoutRequest optionally names the refresh token to revoke; the access
// token rides in on the Authorization header.
type LogoutRequest struct {
	RefreshToken string `json:"refreshToken"`
}

// TokenPairResponse is the standard response for login and refresh.
type TokenPairResponse struct {
	AccessToken  string   `json:"accessToken"`
	RefreshToken string   `json:"refreshToken"`
	TokenType    string   `json:"tokenType"`
	UserID       int64    `json:"userId"`
	Email        string   `json:"email"`
	Roles        []string `json:"roles"`
}

// NewTokenPairResponse maps a service token pair to the wire shape.
func NewTokenPairResponse(pair *service.TokenPair) TokenPairResponse {
	return TokenPairResponse{
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
		TokenType:    "Bearer",
		UserID:       pair.User.ID,
		Email:        pair.User.Email,
		Roles:        pair.User.Roles,
	}
}
