package cart

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

const sessionCookie = "cart_session"

// SessionID returns the shopper's opaque cart session id, minting a
// cookie-backed one on first contact. Guests and logged-in shoppers share the
// same mechanism so a basket survives signing in.
func SessionID(c *fiber.Ctx) string {
	if v := c.Cookies(sessionCookie); v != "" {
		return v
	}
	id := uuid.NewString()
	c.Cookie(&fiber.Cookie{
		Name:     sessionCookie,
		Value:    id,
		Path:     "/",
		HTTPOnly: true,
	})
	return id
}
