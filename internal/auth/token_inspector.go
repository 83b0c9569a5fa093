package auth

import (
	"log/slog"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/Hazembel/mamaty-dashboard-sub000/internal/domain"
	"github.com/Hazembel/mamaty-dashboard-sub000/internal/domain/models"
)

// DefaultLeeway tolerates small clock drift with the upstream API.
const DefaultLeeway = 30 * time.Second

// JWTInspector implements TokenInspector for the upstream HS256 tokens.
type JWTInspector struct {
	parser *jwt.Parser
	leeway time.Duration
	now    func() time.Time
	logger *slog.Logger
}

// NewJWTInspector creates an inspector with DefaultLeeway.
func NewJWTInspector(logger *slog.Logger) *JWTInspector {
	return &JWTInspector{
		parser: jwt.NewParser(),
		leeway: DefaultLeeway,
		now:    time.Now,
		logger: logger,
	}
}

// Inspect parses the token without verifying it and checks its expiry.
func (i *JWTInspector) Inspect(tokenString string) (*models.Operator, error) {
	if tokenString == "" {
		return nil, &domain.SessionExpiredError{Message: "missing session token"}
	}

	claims := &models.OperatorClaims{}
	if _, _, err := i.parser.ParseUnverified(tokenString, claims); err != nil {
		i.logger.Debug("token parse failed", "error", err)
		return nil, &domain.SessionExpiredError{Message: "malformed session token"}
	}

	if claims.ExpiresAt != nil && i.now().After(claims.ExpiresAt.Add(i.leeway)) {
		i.logger.Debug("token expired", "operator", claims.GetOperatorID(), "expired_at", claims.ExpiresAt.Time)
		return nil, &domain.SessionExpiredError{Message: "session expired"}
	}

	id := claims.GetOperatorID()
	if id == "" {
		return nil, &domain.SessionExpiredError{Message: "session token has no subject"}
	}

	return &models.Operator{
		ID:    id,
		Email: claims.Email,
		Role:  claims.Role,
		Token: tokenString,
	}, nil
}
