package server

import (
	"ungatekeep/internal/models"
	"ungatekeep/internal/service"

	"github.com/gofiber/fiber/v2"
)

// RegisterUser handles POST /api/users. The profile is bound to the caller's
// verified auth ID, never one supplied in the body.
func (s *Server) RegisterUser(c *fiber.Ctx) error {
	sub, err := s.subject(c)
	if err != nil {
		return nil
	}

	var req struct {
		Username  string `json:"username"`
		Bio       string `json:"bio"`
		AvatarURL string `json:"avatar_url"`
		LikeEmoji string `json:"like_emoji"`
	}
	if err := c.BodyParser(&req); err != nil {
		return respondError(c, models.NewValidationError("Invalid request body"))
	}

	user, err := s.userService.Register(c.Context(), sub, service.RegisterInput{
		Username:  req.Username,
		Bio:       req.Bio,
		AvatarURL: req.AvatarURL,
		LikeEmoji: req.LikeEmoji,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(user)
}

// GetMyProfile handles GET /api/users/me
func (s *Server) GetMyProfile(c *fiber.Ctx) error {
	sub, err := s.subject(c)
	if err != nil {
		return nil
	}

	user, err := s.userService.GetMe(c.Context(), sub)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(user)
}

// GetUserProfile handles GET /api/users/:id
func (s *Server) GetUserProfile(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	user, err := s.userService.GetUserByID(c.Context(), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(user)
}

// GetAllUsers handles GET /api/users
func (s *Server) GetAllUsers(c *fiber.Ctx) error {
	page := parsePagination(c, 50)

	users, err := s.userService.ListUsers(c.Context(), page.Limit, page.Offset)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(users)
}

// ChangeUsername handles PUT /api/users/:id/username. Renames are gated by
// ownership, the change cooldown, and global uniqueness, in that order.
func (s *Server) ChangeUsername(c *fiber.Ctx) error {
	sub, err := s.subject(c)
	if err != nil {
		return nil
	}
	targetID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	var req struct {
		Username string `json:"username"`
	}
	if err := c.BodyParser(&req); err != nil {
		return respondError(c, models.NewValidationError("Invalid request body"))
	}

	user, err := s.userService.ChangeUsername(c.Context(), sub, targetID, req.Username)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(user)
}

// UpdateProfile handles PUT /api/users/:id
func (s *Server) UpdateProfile(c *fiber.Ctx) error {
	sub, err := s.subject(c)
	if err != nil {
		return nil
	}
	targetID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	var req struct {
		Bio       string `json:"bio"`
		AvatarURL string `json:"avatar_url"`
		LikeEmoji string `json:"like_emoji"`
	}
	if err := c.BodyParser(&req); err != nil {
		return respondError(c, models.NewValidationError("Invalid request body"))
	}

	user, err := s.userService.UpdateProfile(c.Context(), sub, targetID, service.UpdateProfileInput{
		Bio:       req.Bio,
		AvatarURL: req.AvatarURL,
		LikeEmoji: req.LikeEmoji,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(user)
}

// ChangeRole handles PUT /api/users/:id/role (admin only).
func (s *Server) ChangeRole(c *fiber.Ctx) error {
	sub, err := s.subject(c)
	if err != nil {
		return nil
	}
	targetID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	var req struct {
		Role string `json:"role"`
	}
	if err := c.BodyParser(&req); err != nil {
		return respondError(c, models.NewValidationError("Invalid request body"))
	}

	user, err := s.userService.ChangeRole(c.Context(), sub, targetID, req.Role)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(user)
}

// DeleteUser handles DELETE /api/users/:id
func (s *Server) DeleteUser(c *fiber.Ctx) error {
	sub, err := s.subject(c)
	if err != nil {
		return nil
	}
	targetID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	if err := s.userService.DeleteUser(c.Context(), sub, targetID); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
