package service

import (
	"context"

	"ungatekeep/internal/middleware"
	"ungatekeep/internal/models"
	"ungatekeep/internal/repository"
)

type LikeService struct {
	likeRepo repository.LikeRepository
	postRepo repository.PostRepository
}

func NewLikeService(likeRepo repository.LikeRepository, postRepo repository.PostRepository) *LikeService {
	return &LikeService{likeRepo: likeRepo, postRepo: postRepo}
}

// LikeStatus is the response read model for the toggle and status endpoints.
// Count always comes from a fresh query over the relation set.
type LikeStatus struct {
	Liked bool  `json:"liked"`
	Count int64 `json:"count"`
}

// Toggle flips the caller's like on the post and reports the resulting
// state. The repository runs the flip in a single transaction; a concurrent
// toggle that wins the insert still leaves the caller Liked, so the reported
// state always matches a relation row that exists.
func (s *LikeService) Toggle(ctx context.Context, userID, postID uint) (*LikeStatus, error) {
	if _, err := s.postRepo.GetByID(ctx, postID); err != nil {
		return nil, err
	}

	liked, err := s.likeRepo.Toggle(ctx, userID, postID)
	if err != nil {
		middleware.LikeToggles.WithLabelValues("error").Inc()
		return nil, err
	}
	if liked {
		middleware.LikeToggles.WithLabelValues("liked").Inc()
	} else {
		middleware.LikeToggles.WithLabelValues("unliked").Inc()
	}

	count, err := s.likeRepo.Count(ctx, postID)
	if err != nil {
		return nil, err
	}
	return &LikeStatus{Liked: liked, Count: count}, nil
}

func (s *LikeService) Status(ctx context.Context, userID, postID uint) (*LikeStatus, error) {
	if _, err := s.postRepo.GetByID(ctx, postID); err != nil {
		return nil, err
	}

	liked := false
	if userID != 0 {
		var err error
		liked, err = s.likeRepo.Exists(ctx, userID, postID)
		if err != nil {
			return nil, err
		}
	}

	count, err := s.likeRepo.Count(ctx, postID)
	if err != nil {
		return nil, err
	}
	return &LikeStatus{Liked: liked, Count: count}, nil
}

// Likers lists the users who currently like the post, oldest like first.
func (s *LikeService) Likers(ctx context.Context, postID uint) ([]models.User, error) {
	if _, err := s.postRepo.GetByID(ctx, postID); err != nil {
		return nil, err
	}
	return s.likeRepo.Likers(ctx, postID)
}
