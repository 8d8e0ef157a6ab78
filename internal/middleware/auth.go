package middleware

import (
	"strings"

	"ungatekeep/internal/config"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
)

// Locals keys populated by the auth middleware for downstream resolution.
const (
	// ClaimsLocalsKey holds the verified jwt.MapClaims of the bearer credential.
	ClaimsLocalsKey = "credentialClaims"
	// SubjectLocalsKey holds the raw subject string, for logging convenience.
	SubjectLocalsKey = "credentialSubject"
)

var cfg *config.Config

// InitMiddleware initializes authentication middleware with the given config.
func InitMiddleware(c *config.Config) {
	cfg = c
}

// AuthRequired enforces a verified bearer credential on protected routes.
// It only validates the token and stores the decoded claims; deriving the
// caller's subject and roles from those claims is the identity resolver's job.
func AuthRequired(c *fiber.Ctx) error {
	claims, errMsg := parseBearerClaims(c)
	if claims == nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": errMsg,
		})
	}

	storeClaims(c, claims)
	return c.Next()
}

// OptionalAuth stores decoded claims when a valid bearer credential is present
// and lets the request through regardless. Read endpoints use it so responses
// can include caller-specific fields (e.g. liked-by-me) without requiring auth.
func OptionalAuth(c *fiber.Ctx) error {
	if claims, _ := parseBearerClaims(c); claims != nil {
		storeClaims(c, claims)
	}
	return c.Next()
}

func storeClaims(c *fiber.Ctx, claims jwt.MapClaims) {
	c.Locals(ClaimsLocalsKey, claims)
	if sub, ok := claims["sub"].(string); ok {
		c.Locals(SubjectLocalsKey, sub)
	}
}

// parseBearerClaims extracts and validates the bearer token from the
// Authorization header. Returns nil claims and a client-safe message on failure.
func parseBearerClaims(c *fiber.Ctx) (jwt.MapClaims, string) {
	authHeader := c.Get("Authorization")
	if authHeader == "" {
		return nil, "Authorization header required"
	}

	// Extract token from "Bearer <token>"
	parts := strings.Split(authHeader, " ")
	if len(parts) != 2 || parts[0] != "Bearer" {
		return nil, "Invalid authorization header format"
	}

	token, err := jwt.Parse(parts[1], func(token *jwt.Token) (interface{}, error) {
		// Validate signing method
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fiber.NewError(fiber.StatusUnauthorized, "Invalid signing method")
		}
		return []byte(cfg.JWTSecret), nil
	})
	if err != nil || !token.Valid {
		return nil, "Invalid or expired token"
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, "Invalid token claims"
	}

	return claims, ""
}
