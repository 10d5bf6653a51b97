package models

import (
	"time"

	"deribit-common/internal/constants"
	"deribit-common/internal/errors"
	"deribit-common/internal/logging"
)

// Grant types accepted by public/auth.
const (
	GrantClientCredentials = "client_credentials"
	GrantRefreshToken      = "refresh_token"
)

// AuthRequest holds the params of public/auth.
type AuthRequest struct {
	GrantType    string `json:"grant_type" validate:"required,oneof=client_credentials refresh_token"`
	ClientID     string `json:"client_id,omitempty"`
	ClientSecret string `json:"client_secret,omitempty"`
	RefreshToken string `json:"refresh_token,omitempty"`
	Scope        string `json:"scope,omitempty"`
}

// ClientCredentialsAuth returns a key pair login request.
func ClientCredentialsAuth(clientID, clientSecret, scope string) AuthRequest {
	return AuthRequest{
		GrantType:    GrantClientCredentials,
		ClientID:     clientID,
		ClientSecret: clientSecret,
		Scope:        scope,
	}
}

// RefreshAuth returns a token refresh request.
func RefreshAuth(refreshToken string) AuthRequest {
	return AuthRequest{GrantType: GrantRefreshToken, RefreshToken: refreshToken}
}

// Method returns public/auth.
func (r AuthRequest) Method() string { return "public/auth" }

// Validate checks that the grant carries its credentials.
func (r AuthRequest) Validate() error {
	if err := validateDraft(&r); err != nil {
		return err
	}
	switch r.GrantType {
	case GrantClientCredentials:
		if r.ClientID == "" || r.ClientSecret == "" {
			return errors.NewValidationError(errors.InvalidCredentials, "client_secret", logging.MaskSecret(r.ClientSecret),
				"client_id and client_secret are required")
		}
	case GrantRefreshToken:
		if r.RefreshToken == "" {
			return errors.NewValidationError(errors.InvalidCredentials, "refresh_token", "", "must not be empty")
		}
	}
	return nil
}

// String masks the secret and refresh token.
func (r AuthRequest) String() string {
	return "AuthRequest{grant_type=" + r.GrantType + " client_id=" + r.ClientID +
		" client_secret=" + logging.MaskSecret(r.ClientSecret) +
		" refresh_token=" + logging.MaskSecret(r.RefreshToken) + "}"
}

// AuthResponse is the result of public/auth. ExpiresIn is in seconds.
type AuthResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	TokenType    string `json:"token_type"`
	ExpiresIn    int64  `json:"expires_in"`
	Scope        string `json:"scope"`
}

// ExpiresAt returns when the access token expires, given when it was issued.
func (a AuthResponse) ExpiresAt(issued time.Time) time.Time {
	return issued.Add(time.Duration(a.ExpiresIn) * time.Second)
}

// NeedsRefresh reports whether now is within constants.TokenRefreshBuffer of
// the expiry.
func (a AuthResponse) NeedsRefresh(issued, now time.Time) bool {
	return !now.Before(a.ExpiresAt(issued).Add(-constants.TokenRefreshBuffer))
}

// String masks both tokens.
func (a AuthResponse) String() string {
	return "AuthResponse{access_token=" + logging.MaskSecret(a.AccessToken) +
		" refresh_token=" + logging.MaskSecret(a.RefreshToken) +
		" token_type=" + a.TokenType + " scope=" + a.Scope + "}"
}
