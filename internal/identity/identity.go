// Package identity resolves the caller's subject and roles from the verified
// bearer credential. Signature verification happens in the auth middleware;
// this package only interprets the already-validated claims.
package identity

import (
	"ungatekeep/internal/middleware"
	"ungatekeep/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
)

// Subject is the resolved external identity of the caller for one request.
// It is recomputed per request from the credential and never persisted.
type Subject struct {
	AuthID string
	Roles  []string
}

// Resolve derives the caller's Subject from the verified credential claims
// stored in the request context. It fails Unauthenticated when no credential
// is present and MalformedCredential when the claims lack a usable subject.
func Resolve(c *fiber.Ctx) (Subject, error) {
	raw := c.Locals(middleware.ClaimsLocalsKey)
	if raw == nil {
		return Subject{}, models.NewUnauthenticatedError("No verified credential in request context")
	}

	claims, ok := raw.(jwt.MapClaims)
	if !ok {
		return Subject{}, models.NewMalformedCredentialError("Unexpected credential principal type")
	}

	sub, ok := claims["sub"].(string)
	if !ok || sub == "" {
		return Subject{}, models.NewMalformedCredentialError("Credential is missing a subject claim")
	}

	return Subject{AuthID: sub, Roles: rolesFromClaims(claims)}, nil
}

// rolesFromClaims extracts role names from the "roles" claim. A missing or
// malformed claim means no elevated privilege, never an error.
func rolesFromClaims(claims jwt.MapClaims) []string {
	raw, ok := claims["roles"].([]interface{})
	if !ok {
		return nil
	}

	roles := make([]string, 0, len(raw))
	for _, entry := range raw {
		if role, ok := entry.(string); ok && role != "" {
			roles = append(roles, role)
		}
	}
	return roles
}
