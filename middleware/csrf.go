package middleware

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"

	"campaignmanager/utils"

	"github.com/gofiber/fiber/v2"
)

// CSRFConfig holds CSRF protection configuration
type CSRFConfig struct {
	TokenLength  int
	CookieName   string
	HeaderName   string
	CookieMaxAge int
	Skipper      func(*fiber.Ctx) bool
}

// DefaultCSRFConfig returns default CSRF configuration
func DefaultCSRFConfig() CSRFConfig {
	return CSRFConfig{
		TokenLength:  32,
		CookieName:   "cm_csrf",
		HeaderName:   "X-CSRF-Token",
		CookieMaxAge: 24 * 3600,
	}
}

// CSRFProtection rejects state-changing requests whose header token does
// not match the token cookie (double submit)
func CSRFProtection(config ...CSRFConfig) fiber.Handler {
	cfg := DefaultCSRFConfig()
	if len(config) > 0 {
		cfg = config[0]
	}

	return func(c *fiber.Ctx) error {
		// Skip if skipper function returns true
		if cfg.Skipper != nil && cfg.Skipper(c) {
			return c.Next()
		}

		// Skip GET, HEAD, OPTIONS requests
		switch c.Method() {
		case fiber.MethodGet, fiber.MethodHead, fiber.MethodOptions:
			return c.Next()
		}

		// Get token from cookie and header
		cookieToken := c.Cookies(cfg.CookieName)
		headerToken := c.Get(cfg.HeaderName)

		if cookieToken == "" || headerToken == "" {
			return utils.NewAppError(fiber.StatusForbidden, "csrf_missing", "CSRF token missing", nil)
		}
		if !tokensEqual(cookieToken, headerToken) {
			return utils.NewAppError(fiber.StatusForbidden, "csrf_mismatch", "CSRF token mismatch", nil)
		}

		return c.Next()
	}
}

// CSRFToken issues a fresh token in the cookie and the response body. The
// client echoes it in the header on every state-changing request.
func CSRFToken(config ...CSRFConfig) fiber.Handler {
	cfg := DefaultCSRFConfig()
	if len(config) > 0 {
		cfg = config[0]
	}

	return func(c *fiber.Ctx) error {
		// Generate random token
		token, err := generateToken(cfg.TokenLength)
		if err != nil {
			return utils.InternalServerError("error_500", "Failed to generate CSRF token", err)
		}

		c.Cookie(&fiber.Cookie{
			Name:     cfg.CookieName,
			Value:    token,
			MaxAge:   cfg.CookieMaxAge,
			HTTPOnly: true,
			SameSite: "Strict",
		})

		// The client reads the token here; the cookie itself is HTTPOnly

		return c.JSON(fiber.Map{
			"token":  token,
			"header": cfg.HeaderName,
		})
	}
}

// generateToken generates a random URL-safe token
func generateToken(length int) (string, error) {
	b := make([]byte, length)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}

// tokensEqual performs constant-time comparison of tokens
func tokensEqual(a, b string) bool {
	return subtle.ConstantTimeCompare([]byte(a), []byte(b)) == 1
}
