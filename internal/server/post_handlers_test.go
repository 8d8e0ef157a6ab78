package server

import (
	"context"
	"net/http"
	"testing"

	"ungatekeep/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreatePost(t *testing.T) {
	t.Run("requires at least one image", func(t *testing.T) {
		s := newTestServer(noopDeps())
		app := fiber.New()
		app.Post("/api/posts", withClaims("auth0|author"), s.CreatePost)

		resp, err := app.Test(jsonRequest(t, http.MethodPost, "/api/posts", fiber.Map{
			"caption": "no pics",
		}))
		require.NoError(t, err)
		defer func() { _ = resp.Body.Close() }()
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("creates and returns the view", func(t *testing.T) {
		deps := noopDeps()
		deps.userRepo.getByAuthIDFn = func(_ context.Context, authID string) (*models.User, error) {
			return &models.User{ID: 42, AuthID: authID}, nil
		}
		deps.postRepo.createFn = func(_ context.Context, p *models.Post) error {
			p.ID = 5
			return nil
		}
		s := newTestServer(deps)
		app := fiber.New()
		app.Post("/api/posts", withClaims("auth0|author"), s.CreatePost)

		resp, err := app.Test(jsonRequest(t, http.MethodPost, "/api/posts", fiber.Map{
			"caption": "sunset",
			"images":  []string{"one.jpg", "two.jpg"},
		}))
		require.NoError(t, err)
		assert.Equal(t, http.StatusCreated, resp.StatusCode)

		var view struct {
			Post      models.Post `json:"post"`
			LikeCount int64       `json:"like_count"`
			Liked     bool        `json:"liked"`
		}
		decodeBody(t, resp, &view)
		assert.Equal(t, uint(42), view.Post.UserID)
		assert.Equal(t, int64(0), view.LikeCount)
		assert.False(t, view.Liked)
	})
}

func TestGetPost(t *testing.T) {
	deps := noopDeps()
	deps.postRepo.getByIDFn = func(_ context.Context, id uint) (*models.Post, error) {
		return &models.Post{ID: id, UserID: 1, Caption: "sunset"}, nil
	}
	deps.likeRepo.countFn = func(context.Context, uint) (int64, error) { return 3, nil }
	s := newTestServer(deps)

	app := fiber.New()
	app.Get("/api/posts/:id", s.GetPost)

	resp, err := app.Test(jsonRequest(t, http.MethodGet, "/api/posts/5", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var view struct {
		LikeCount int64 `json:"like_count"`
		Liked     bool  `json:"liked"`
	}
	decodeBody(t, resp, &view)
	assert.Equal(t, int64(3), view.LikeCount)
	assert.False(t, view.Liked, "anonymous viewer never reads as having liked")
}

func TestToggleLike(t *testing.T) {
	caller := func(_ context.Context, authID string) (*models.User, error) {
		return &models.User{ID: 9, AuthID: authID}, nil
	}

	t.Run("toggling on returns the new state", func(t *testing.T) {
		deps := noopDeps()
		deps.userRepo.getByAuthIDFn = caller
		deps.likeRepo.toggleFn = func(_ context.Context, userID, postID uint) (bool, error) {
			assert.Equal(t, uint(9), userID)
			assert.Equal(t, uint(5), postID)
			return true, nil
		}
		deps.likeRepo.countFn = func(context.Context, uint) (int64, error) { return 4, nil }
		s := newTestServer(deps)
		app := fiber.New()
		app.Post("/api/posts/:id/like", withClaims("auth0|liker"), s.ToggleLike)

		resp, err := app.Test(jsonRequest(t, http.MethodPost, "/api/posts/5/like", nil))
		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, resp.StatusCode)

		var status struct {
			Liked bool  `json:"liked"`
			Count int64 `json:"count"`
		}
		decodeBody(t, resp, &status)
		assert.True(t, status.Liked)
		assert.Equal(t, int64(4), status.Count)
	})

	t.Run("missing post is 404", func(t *testing.T) {
		deps := noopDeps()
		deps.userRepo.getByAuthIDFn = caller
		deps.postRepo.getByIDFn = func(_ context.Context, id uint) (*models.Post, error) {
			return nil, models.NewNotFoundError("Post", id)
		}
		s := newTestServer(deps)
		app := fiber.New()
		app.Post("/api/posts/:id/like", withClaims("auth0|liker"), s.ToggleLike)

		resp, err := app.Test(jsonRequest(t, http.MethodPost, "/api/posts/99/like", nil))
		require.NoError(t, err)
		defer func() { _ = resp.Body.Close() }()
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	})

	t.Run("no credential is 401", func(t *testing.T) {
		s := newTestServer(noopDeps())
		app := fiber.New()
		app.Post("/api/posts/:id/like", s.ToggleLike)

		resp, err := app.Test(jsonRequest(t, http.MethodPost, "/api/posts/5/like", nil))
		require.NoError(t, err)
		defer func() { _ = resp.Body.Close() }()
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})
}

func TestGetLikeStatus_Anonymous(t *testing.T) {
	deps := noopDeps()
	deps.likeRepo.countFn = func(context.Context, uint) (int64, error) { return 2, nil }
	s := newTestServer(deps)
	app := fiber.New()
	app.Get("/api/posts/:id/like/status", s.GetLikeStatus)

	resp, err := app.Test(jsonRequest(t, http.MethodGet, "/api/posts/5/like/status", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var status struct {
		Liked bool  `json:"liked"`
		Count int64 `json:"count"`
	}
	decodeBody(t, resp, &status)
	assert.False(t, status.Liked)
	assert.Equal(t, int64(2), status.Count)
}

func TestGetPostLikers(t *testing.T) {
	deps := noopDeps()
	deps.likeRepo.likersFn = func(_ context.Context, postID uint) ([]models.User, error) {
		return []models.User{{ID: 1}, {ID: 2}}, nil
	}
	s := newTestServer(deps)
	app := fiber.New()
	app.Get("/api/posts/:id/likes", s.GetPostLikers)

	resp, err := app.Test(jsonRequest(t, http.MethodGet, "/api/posts/5/likes", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var likers []models.User
	decodeBody(t, resp, &likers)
	assert.Len(t, likers, 2)
}

func TestUpdatePost_StrangerForbidden(t *testing.T) {
	deps := noopDeps()
	deps.postRepo.getByIDFn = func(_ context.Context, id uint) (*models.Post, error) {
		return &models.Post{ID: id, UserID: 1, User: models.User{ID: 1, AuthID: "auth0|owner"}}, nil
	}
	s := newTestServer(deps)
	app := fiber.New()
	app.Put("/api/posts/:id", withClaims("auth0|stranger"), s.UpdatePost)

	resp, err := app.Test(jsonRequest(t, http.MethodPut, "/api/posts/5", fiber.Map{
		"caption": "hijack",
	}))
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}

func TestDeletePost_AdminOverride(t *testing.T) {
	deps := noopDeps()
	deps.postRepo.getByIDFn = func(_ context.Context, id uint) (*models.Post, error) {
		return &models.Post{ID: id, UserID: 1, User: models.User{ID: 1, AuthID: "auth0|owner"}}, nil
	}
	deleted := uint(0)
	deps.postRepo.deleteFn = func(_ context.Context, id uint) error {
		deleted = id
		return nil
	}
	s := newTestServer(deps)
	app := fiber.New()
	app.Delete("/api/posts/:id", withClaims("auth0|moderator", models.RoleAdmin), s.DeletePost)

	resp, err := app.Test(jsonRequest(t, http.MethodDelete, "/api/posts/5", nil))
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
	assert.Equal(t, uint(5), deleted)
}
