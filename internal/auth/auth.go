package auth

import (
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
)

// UserIDFromCtx extracts the user_id claim from the JWT token stored in
// `c.Locals("user")` by the JWT middleware. Several packages need the
// authenticated principal, so it lives here for reuse.
func UserIDFromCtx(c *fiber.Ctx) (string, error) {
	u := c.Locals("user")
	if u == nil {
		return "", fiber.ErrUnauthorized
	}
	tok, ok := u.(*jwt.Token)
	if !ok {
		return "", fiber.ErrUnauthorized
	}
	claims, ok := tok.Claims.(jwt.MapClaims)
	if !ok {
		return "", fiber.ErrUnauthorized
	}
	raw, ok := claims["user_id"]
	if !ok {
		return "", fiber.ErrUnauthorized
	}
	id, ok := raw.(string)
	if !ok || id == "" {
		return "", fiber.ErrUnauthorized
	}
	return id, nil
}
