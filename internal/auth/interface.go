package auth

import "github.com/Hazembel/mamaty-dashboard-sub000/internal/domain/models"

// TokenInspector reads the operator out of a session token.
// The console does not hold the upstream signing keys: the signature is
// checked by the upstream API on every forwarded call, the inspector only
// rejects tokens that are malformed or already expired.
type TokenInspector interface {
	// Inspect returns the operator, or a *domain.SessionExpiredError
	Inspect(tokenString string) (*models.Operator, error)
}
