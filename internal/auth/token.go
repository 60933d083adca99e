// Package auth issues and validates the signed part of bearer tokens.
//
// A bearer token is only half-checked here: the Issuer verifies the JWT
// signature, while the auth middleware separately requires the literal token
// string to be present in the auth_tokens table. Both checks must pass.
package auth

import (
	"crypto/rand"
	"encoding/base64"

	"github.com/golang-jwt/jwt/v5"
)

// Validation is the outcome of checking a token's signature. It is a result
// value, never an error: every malformed, mis-signed or otherwise undecodable
// token collapses into Valid=false with the failure kept in Reason for logs.
type Validation struct {
	Valid    bool
	Username string
	Reason   string
}

// Issuer signs and verifies JWTs with a shared HMAC secret.
type Issuer struct {
	secret []byte
	method jwt.SigningMethod
}

// NewIssuer creates an Issuer for the given secret and HMAC algorithm name
// (HS256, HS384 or HS512). Unknown names fall back to HS256.
func NewIssuer(secret, algorithm string) *Issuer {
	method := jwt.GetSigningMethod(algorithm)
	if _, ok := method.(*jwt.SigningMethodHMAC); !ok {
		method = jwt.SigningMethodHS256
	}
	return &Issuer{secret: []byte(secret), method: method}
}

// Issue creates a signed token whose subject is the username. No expiry claim
// is added; validity rests on the signature and on the persisted token row.
func (i *Issuer) Issue(username string) (string, error) {
	claims := jwt.MapClaims{"sub": username}
	token := jwt.NewWithClaims(i.method, claims)
	return token.SignedString(i.secret)
}

// Validate checks the token signature and extracts the subject claim.
func (i *Issuer) Validate(tokenString string) Validation {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return i.secret, nil
	})
	if err != nil {
		return Validation{Reason: err.Error()}
	}
	if !token.Valid {
		return Validation{Reason: "token not valid"}
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return Validation{Reason: "unexpected claims type"}
	}
	sub, ok := claims["sub"].(string)
	if !ok || sub == "" {
		return Validation{Reason: "missing subject claim"}
	}

	return Validation{Valid: true, Username: sub}
}

// NewSecret returns a fresh url-safe random secret for a token row.
func NewSecret() string {
	b := make([]byte, 16)
	if _, err := rand.Read(b); err != nil {
		// crypto/rand never fails on supported platforms
		panic(err)
	}
	return base64.RawURLEncoding.EncodeToString(b)
}
