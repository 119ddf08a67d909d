package http

import (
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"

	"github.com/sentinelwatch/sentinel-backend/internal/store"
)

// GenerateToken signs an HS256 token carrying the user id and the server
// side session id.
func GenerateToken(secret []byte, userID int, sessionID string, ttl time.Duration) (string, error) {
	claims := jwt.MapClaims{
		"user_id": userID,
		"sid":     sessionID,
		"exp":     time.Now().Add(ttl).Unix(),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
}

// NewAuthMiddleware gates protected routes. The token comes from the
// session cookie, with an Authorization Bearer fallback for non-browser
// callers. The embedded session id must still exist in the store, so a
// logged-out token is rejected even before its expiry.
func NewAuthMiddleware(st store.Store, secret []byte) fiber.Handler {
	return func(c *fiber.Ctx) error {
		raw := c.Cookies(SessionCookie)
		if raw == "" {
			header := c.Get("Authorization")
			parts := strings.SplitN(header, " ", 2)
			if len(parts) == 2 && strings.EqualFold(parts[0], "Bearer") {
				raw = parts[1]
			}
		}
		if raw == "" {
			return fiber.NewError(fiber.StatusUnauthorized, "Unauthorized")
		}

		token, err := jwt.Parse(raw, func(t *jwt.Token) (interface{}, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fiber.NewError(fiber.StatusUnauthorized, "Unauthorized")
			}
			return secret, nil
		})
		if err != nil || !token.Valid {
			return fiber.NewError(fiber.StatusUnauthorized, "Unauthorized")
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			return fiber.NewError(fiber.StatusUnauthorized, "Unauthorized")
		}

		userIDVal, ok := claims["user_id"].(float64)
		if !ok || userIDVal <= 0 {
			return fiber.NewError(fiber.StatusUnauthorized, "Unauthorized")
		}
		sid, ok := claims["sid"].(string)
		if !ok || sid == "" {
			return fiber.NewError(fiber.StatusUnauthorized, "Unauthorized")
		}

		sess, err := st.GetSession(userContext(c), sid)
		if err != nil || sess.UserID != int(userIDVal) {
			return fiber.NewError(fiber.StatusUnauthorized, "Unauthorized")
		}

		c.Locals("user_id", int(userIDVal))
		c.Locals("session_id", sid)
		return c.Next()
	}
}
