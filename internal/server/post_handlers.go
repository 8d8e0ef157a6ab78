package server

import (
	"ungatekeep/internal/models"
	"ungatekeep/internal/service"

	"github.com/gofiber/fiber/v2"
)

// CreatePost handles POST /api/posts
func (s *Server) CreatePost(c *fiber.Ctx) error {
	sub, err := s.subject(c)
	if err != nil {
		return nil
	}

	var req struct {
		Caption string   `json:"caption"`
		Images  []string `json:"images"`
	}
	if err := c.BodyParser(&req); err != nil {
		return respondError(c, models.NewValidationError("Invalid request body"))
	}

	view, err := s.postService.CreatePost(c.Context(), sub, service.CreatePostInput{
		Caption: req.Caption,
		Images:  req.Images,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(view)
}

// GetPost handles GET /api/posts/:id. Like count and the caller's own like
// state are computed fresh for each response.
func (s *Server) GetPost(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	view, err := s.postService.GetPost(c.Context(), id, s.viewerID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(view)
}

// GetUserPosts handles GET /api/users/:id/posts
func (s *Server) GetUserPosts(c *fiber.Ctx) error {
	userID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}
	page := parsePagination(c, 20)

	views, err := s.postService.ListUserPosts(c.Context(), userID, s.viewerID(c), page.Limit, page.Offset)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(views)
}

// UpdatePost handles PUT /api/posts/:id
func (s *Server) UpdatePost(c *fiber.Ctx) error {
	sub, err := s.subject(c)
	if err != nil {
		return nil
	}
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	var req struct {
		Caption string `json:"caption"`
	}
	if err := c.BodyParser(&req); err != nil {
		return respondError(c, models.NewValidationError("Invalid request body"))
	}

	view, err := s.postService.UpdateCaption(c.Context(), sub, id, req.Caption)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(view)
}

// DeletePost handles DELETE /api/posts/:id
func (s *Server) DeletePost(c *fiber.Ctx) error {
	sub, err := s.subject(c)
	if err != nil {
		return nil
	}
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	if err := s.postService.DeletePost(c.Context(), sub, id); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// ToggleLike handles POST /api/posts/:id/like. One endpoint flips the state
// both ways and always reports the resulting state with a fresh count.
func (s *Server) ToggleLike(c *fiber.Ctx) error {
	sub, err := s.subject(c)
	if err != nil {
		return nil
	}
	postID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	caller, err := s.userRepo.GetByAuthID(c.Context(), sub.AuthID)
	if err != nil {
		return respondError(c, err)
	}

	status, err := s.likeService.Toggle(c.Context(), caller.ID, postID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(status)
}

// GetLikeStatus handles GET /api/posts/:id/like/status
func (s *Server) GetLikeStatus(c *fiber.Ctx) error {
	postID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	status, err := s.likeService.Status(c.Context(), s.viewerID(c), postID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(status)
}

// GetPostLikers handles GET /api/posts/:id/likes
func (s *Server) GetPostLikers(c *fiber.Ctx) error {
	postID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	likers, err := s.likeService.Likers(c.Context(), postID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(likers)
}
