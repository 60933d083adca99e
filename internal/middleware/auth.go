package middleware

import (
	"strings"

	"murmur/internal/auth"
	"murmur/internal/models"
	"murmur/internal/repository"

	"github.com/gofiber/fiber/v2"
)

// AuthRequired enforces the two-step bearer check on protected routes: the
// token's signature must verify AND the literal token string must match the
// row currently stored for a user. A token that passes only one check is
// unauthorized. On success the resolved user id lands in c.Locals("userID").
func AuthRequired(issuer *auth.Issuer, tokens repository.TokenRepository) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return models.RespondWithError(c, fiber.StatusUnauthorized,
				models.NewUnauthorizedError("Authorization header required"))
		}

		// Extract token from "Bearer <token>"
		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			return models.RespondWithError(c, fiber.StatusUnauthorized,
				models.NewUnauthorizedError("Invalid authorization header format"))
		}
		tokenString := parts[1]

		if v := issuer.Validate(tokenString); !v.Valid {
			return models.RespondWithError(c, fiber.StatusUnauthorized,
				models.NewUnauthorizedError("Invalid or expired token"))
		}

		row, err := tokens.GetByToken(c.UserContext(), tokenString)
		if err != nil {
			return models.RespondWithError(c, fiber.StatusInternalServerError,
				models.NewInternalError(err))
		}
		if row == nil {
			// Well-signed but superseded by a later login, or never issued.
			return models.RespondWithError(c, fiber.StatusUnauthorized,
				models.NewUnauthorizedError("Token is not recognized"))
		}

		c.Locals("userID", row.UserID)

		return c.Next()
	}
}
