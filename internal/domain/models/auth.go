package models

import "github.com/golang-jwt/jwt/v5"

// OperatorClaims is the payload of a session token issued by the upstream
// API's login endpoint.
type OperatorClaims struct {
	jwt.RegisteredClaims        // Standard JWT claims (sub, exp, iat, ...)
	UserID               string `json:"id"`
	Email                string `json:"email"`
	Role                 string `json:"role"`
}

// GetOperatorID returns the upstream user id, falling back to the subject.
func (c *OperatorClaims) GetOperatorID() string {
	if c.UserID != "" {
		return c.UserID
	}
	return c.Subject
}

// Operator is the signed-in console operator a workspace belongs to.
type Operator struct {
	ID    string `json:"id"`
	Email string `json:"email,omitempty"`
	Role  string `json:"role,omitempty"`
	Token string `json:"-"`
}
