package models

import (
	"fmt"

	"github.com/golang-jwt/jwt/v5"
)

// TokenKind distinguishes access tokens from rotation (refresh) tokens so one
// can never be presented in place of the other.
type TokenKind string

const (
	AccessTokenKind  TokenKind = "access"
	RefreshTokenKind TokenKind = "refresh"
)

// TokenClaims is the claim set carried by every issued token.
type TokenClaims struct {
	jwt.RegisteredClaims

	// Kind is the purpose of the token.
	Kind TokenKind `json:"kind"`
}

// Token wraps a JWT token with convenience accessors for authentication flows.
//
// It embeds [jwt.Token] for low-level token operations (signing, parsing)
// and [TokenClaims] for claim access (subject, expiry, kind).
type Token struct {
	// Token is the underlying JWT token used for signing and claim inspection.
	*jwt.Token `json:"-"`

	TokenClaims

	// SignedString is the compact JWS representation of the token.
	SignedString string `json:"-"`
}

// UserID returns the account identifier held in the "sub" claim.
func (t *Token) UserID() (string, error) {
	userID, err := t.GetSubject()
	if err != nil {
		return "", fmt.Errorf("error extracting UserID from token: %w", err)
	}
	if userID == "" {
		return "", fmt.Errorf("error extracting UserID from token: empty subject")
	}

	return userID, nil
}

// String returns the compact JWS serialization of the token.
func (t *Token) String() string {
	return t.SignedString
}

// TokenPair is the pair of credentials handed to a client after login or
// rotation.
type TokenPair struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}
