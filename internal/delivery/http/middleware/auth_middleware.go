package middleware

import (
	"errors"
	"strings"

	"jobboard/internal/pkg/jwt"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
)

// CtxIdentityKey holds the jwt.Identity of an authenticated request.
const CtxIdentityKey = "identity"

type AuthMiddleware struct {
	jwt jwt.Service
}

func NewAuthMiddleware(jwtSvc jwt.Service) *AuthMiddleware {
	return &AuthMiddleware{jwt: jwtSvc}
}

// Middleware rejects requests without a valid access token. Refresh tokens
// are not accepted here.
func (m *AuthMiddleware) Middleware() fiber.Handler {
	return func(c fiber.Ctx) error {
		token, ok := BearerToken(c.Get(fiber.HeaderAuthorization))
		if !ok {
			return NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
		}

		claims, err := m.jwt.ParseAccessToken(token)
		if err != nil {
			msg := "Invalid token"
			if errors.Is(err, jwt.ErrTokenExpired) {
				msg = "Token expired"
			}
			return NewAppError(fiber.StatusUnauthorized, msg, nil, err)
		}

		SetIdentity(c, jwt.Identity{UserID: claims.UserID, Email: claims.Email, Role: claims.Role})
		return c.Next()
	}
}

// RequireRole lets the request through only when the authenticated role is
// one of roles. It must run after the auth middleware.
func RequireRole(roles ...string) fiber.Handler {
	return func(c fiber.Ctx) error {
		id, ok := IdentityFrom(c)
		if !ok {
			return NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
		}
		for _, r := range roles {
			if id.Role == r {
				return c.Next()
			}
		}
		return NewAppError(fiber.StatusForbidden, "Forbidden", nil, nil)
	}
}

func SetIdentity(c fiber.Ctx, id jwt.Identity) {
	c.Locals(CtxIdentityKey, id)
}

// IdentityFrom reads the caller stored by the auth middleware.
func IdentityFrom(c fiber.Ctx) (jwt.Identity, bool) {
	id, ok := c.Locals(CtxIdentityKey).(jwt.Identity)
	if !ok || id.UserID == uuid.Nil {
		return jwt.Identity{}, false
	}
	return id, true
}

// BearerToken extracts the token from an "Authorization: Bearer <token>"
// header. The scheme is matched case-insensitively.
func BearerToken(header string) (string, bool) {
	scheme, token, found := strings.Cut(strings.TrimSpace(header), " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}
