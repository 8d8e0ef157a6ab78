package server

import (
	"errors"

	"ungatekeep/internal/identity"
	"ungatekeep/internal/models"

	"github.com/gofiber/fiber/v2"
)

// errResponseWritten is a sentinel indicating the HTTP response was already
// committed by a helper. Handlers must return nil (not this error) to avoid
// Fiber's ErrorHandler overwriting the response.
var errResponseWritten = errors.New("response already written")

// Pagination holds parsed limit/offset query parameters.
type Pagination struct {
	Limit  int
	Offset int
}

const maxPaginationLimit = 100

func parsePagination(c *fiber.Ctx, defaultLimit int) Pagination {
	limit := c.QueryInt("limit", defaultLimit)
	if limit <= 0 {
		limit = defaultLimit
	}
	if limit > maxPaginationLimit {
		limit = maxPaginationLimit
	}

	offset := c.QueryInt("offset", 0)
	if offset < 0 {
		offset = 0
	}

	return Pagination{Limit: limit, Offset: offset}
}

// parseID extracts a route parameter as a positive uint. On failure it writes
// a 400 JSON response and returns errResponseWritten; callers should then
// return nil.
func (s *Server) parseID(c *fiber.Ctx, param string) (uint, error) {
	id, err := c.ParamsInt(param)
	if err != nil || id <= 0 {
		_ = models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid ID"))
		return 0, errResponseWritten
	}
	return uint(id), nil
}

// respondError maps the error's code to an HTTP status and writes the JSON
// body. All handler error paths funnel through here.
func respondError(c *fiber.Ctx, err error) error {
	return models.RespondWithError(c, models.StatusFor(err), err)
}

// subject resolves the caller's identity from the verified claims. On
// failure it writes the 401 response itself and returns errResponseWritten.
func (s *Server) subject(c *fiber.Ctx) (identity.Subject, error) {
	sub, err := identity.Resolve(c)
	if err != nil {
		_ = respondError(c, err)
		return identity.Subject{}, errResponseWritten
	}
	return sub, nil
}

// viewerID resolves the caller to a local profile ID for read models, or 0
// when the request is anonymous or the caller has no profile yet. Reads never
// fail just because the viewer is unknown.
func (s *Server) viewerID(c *fiber.Ctx) uint {
	sub, err := identity.Resolve(c)
	if err != nil {
		return 0
	}
	user, err := s.userRepo.GetByAuthID(c.Context(), sub.AuthID)
	if err != nil {
		return 0
	}
	return user.ID
}
