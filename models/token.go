package models

import (
	"errors"

	"github.com/golang-jwt/jwt/v5"
)

// Token wraps a parsed JWT identity token.
//
// Credential issuance is an external collaborator's concern: the engine only
// verifies a presented token and extracts the user identity from the "sub"
// claim. UserID is the cached, validated subject.
type Token struct {
	// Token is the underlying JWT used for claim inspection. Excluded from
	// JSON serialization because only the compact string form is meaningful
	// outside the server process.
	*jwt.Token `json:"-"`

	// RegisteredClaims provides access to the standard JWT claim set
	// (sub, exp, iat, nbf, iss, aud, jti) as defined by RFC 7519.
	jwt.RegisteredClaims

	// UserID is the owner identifier extracted from the "sub" claim.
	UserID string `json:"-"`
}

// GetUserID returns the user identifier from the token's "sub" claim.
// Returns an error if the subject claim is missing or empty.
func (t *Token) GetUserID() (string, error) {
	userID, err := t.GetSubject()
	if err != nil {
		return "", err
	}
	if userID == "" {
		return "", errors.New("empty subject claim")
	}
	return userID, nil
}
