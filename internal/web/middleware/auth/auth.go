package auth

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"github.com/anighost1/pp-be/internal/auth"
	"github.com/anighost1/pp-be/internal/web/handler"
	"github.com/anighost1/pp-be/internal/web/session"
)

const bearerPrefix = "Bearer "

// Response messages sent with 401 and 403.
const (
	MsgTokenMissing = "Authorization token missing or malformed"
	MsgTokenExpired = "Token has expired"
	MsgTokenInvalid = "Invalid token"
	MsgTokenRevoked = "Token has been revoked"
	MsgForbidden    = "You don't have permission to access this resource"
)

// RequireToken verifies the bearer token of the request and stores its
// claims and user id in fiber locals.
func RequireToken(tokens *auth.TokenManager, denylist *session.Denylist) fiber.Handler {
	return func(c *fiber.Ctx) error {
		header := c.Get(fiber.HeaderAuthorization)
		if !strings.HasPrefix(header, bearerPrefix) || strings.TrimSpace(header[len(bearerPrefix):]) == "" {
			return handler.Fail(c, fiber.StatusUnauthorized, MsgTokenMissing)
		}

		claims, err := tokens.Parse(strings.TrimSpace(header[len(bearerPrefix):]))
		switch {
		case errors.Is(err, auth.ErrTokenExpired):
			return handler.Fail(c, fiber.StatusUnauthorized, MsgTokenExpired)
		case err != nil:
			log.Debug().Err(err).Msg("rejected token")
			return handler.Fail(c, fiber.StatusUnauthorized, MsgTokenInvalid)
		}

		revoked, err := denylist.IsRevoked(claims.ID)
		if err != nil {
			log.Error().Err(err).Str("jti", claims.ID).Msg("failed to check token denylist")
			return handler.Fail(c, fiber.StatusInternalServerError, "Internal server error")
		}

		if revoked {
			return handler.Fail(c, fiber.StatusUnauthorized, MsgTokenRevoked)
		}

		c.Locals(handler.LocalClaims, claims)
		c.Locals(handler.LocalUserID, claims.UserID)

		return c.Next()
	}
}

// RequirePermission allows the request when the token snapshot holds the
// named permission or belongs to a superuser. It must run after RequireToken.
func RequirePermission(name string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		claims, ok := handler.Claims(c)
		if !ok {
			return handler.Fail(c, fiber.StatusUnauthorized, MsgTokenMissing)
		}

		if !claims.Resolution().Has(name) {
			log.Warn().Uint64("user_id", claims.UserID).Str("permission", name).
				Msg("User lacks required permission")

			return handler.Fail(c, fiber.StatusForbidden, MsgForbidden)
		}

		return c.Next()
	}
}
