package auth

import (
	"context"
	"strings"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/spec-kit/tutoring-service/internal/domain"
)

const principalKey = "auth_principal"

// Principal represents the authenticated caller for the rest of the request.
// Roles are the live role set re-resolved from storage, not the token claim,
// so role revocations take effect immediately.
type Principal struct {
	UserID int64
	Email  string
	Roles  []string
}

// HasRole reports whether the principal carries the given role name.
func (p *Principal) HasRole(role string) bool {
	for _, r := range p.Roles {
		if r == role {
			return true
		}
	}
	return false
}

// TokenValidator checks a token of the expected kind against the blacklist
// and resolves the live identity behind it. Implemented by the auth service;
// the gate holds the single copy of that check rather than repeating it.
type TokenValidator interface {
	Validate(ctx context.Context, token string, kind TokenKind) (*domain.User, error)
}

// Middleware is the request authentication gate: it decides whether the
// request carries a usable access token and, if so, who the caller is.
// Every failure leaves the request unauthenticated rather than erroring;
// turning "unauthenticated" into 401/403 is the role guards' job.
type Middleware struct {
	validator   TokenValidator
	publicPaths []string
	logger      *zap.Logger
}

// NewMiddleware constructs the gate around a token validator.
func NewMiddleware(validator TokenValidator, publicPaths []string, logger *zap.Logger) *Middleware {
	return &Middleware{
		validator:   validator,
		publicPaths: publicPaths,
		logger:      logger,
	}
}

// Handle runs on every request. Outcomes are "authenticated as X with roles
// R" or "unauthenticated"; both proceed down the chain.
func (m *Middleware) Handle(c *fiber.Ctx) error {
	if m.isPublicPath(c.Path()) {
		return c.Next()
	}

	token := BearerToken(c.Get(fiber.HeaderAuthorization))
	if token == "" {
		return c.Next()
	}

	user, err := m.validator.Validate(c.Context(), token, TokenKindAccess)
	if err != nil {
		m.logger.Warn("unusable bearer token", zap.String("path", c.Path()), zap.Error(err))
		return c.Next()
	}

	c.Locals(principalKey, &Principal{
		UserID: user.ID,
		Email:  user.Email,
		Roles:  user.Roles,
	})
	return c.Next()
}

// PrincipalFromContext retrieves the authenticated caller, if any.
func PrincipalFromContext(c *fiber.Ctx) (*Principal, bool) {
	val := c.Locals(principalKey)
	if val == nil {
		return nil, false
	}
	principal, ok := val.(*Principal)
	return principal, ok
}

func (m *Middleware) isPublicPath(path string) bool {
	for _, prefix := range m.publicPaths {
		if strings.HasPrefix(path, prefix) {
			return true
		}
	}
	return false
}

// BearerToken extracts the token from an Authorization header, or returns
// "" when the header is missing or not a Bearer scheme.
func BearerToken(header string) string {
	if header == "" {
		return ""
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}
