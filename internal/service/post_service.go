package service

import (
	"context"

	"ungatekeep/internal/access"
	"ungatekeep/internal/identity"
	"ungatekeep/internal/models"
	"ungatekeep/internal/repository"
)

const maxCaptionLen = 2000

type PostService struct {
	postRepo repository.PostRepository
	likeRepo repository.LikeRepository
	userRepo repository.UserRepository
}

func NewPostService(postRepo repository.PostRepository, likeRepo repository.LikeRepository, userRepo repository.UserRepository) *PostService {
	return &PostService{postRepo: postRepo, likeRepo: likeRepo, userRepo: userRepo}
}

// PostView is the read model returned to callers: the post plus like state
// computed fresh from the relation set at assembly time. It is never written
// back to storage.
type PostView struct {
	Post      *models.Post `json:"post"`
	LikeCount int64        `json:"like_count"`
	Liked     bool         `json:"liked"`
}

type CreatePostInput struct {
	Caption string
	Images  []string
}

func (s *PostService) CreatePost(ctx context.Context, sub identity.Subject, in CreatePostInput) (*PostView, error) {
	if len(in.Images) == 0 {
		return nil, models.NewValidationError("A post needs at least one image")
	}
	if len(in.Caption) > maxCaptionLen {
		return nil, models.NewValidationError("Caption too long (max 2000 characters)")
	}

	author, err := s.userRepo.GetByAuthID(ctx, sub.AuthID)
	if err != nil {
		return nil, err
	}

	post := &models.Post{
		UserID:  author.ID,
		Caption: in.Caption,
		Images:  in.Images,
	}
	if err := s.postRepo.Create(ctx, post); err != nil {
		return nil, err
	}
	return &PostView{Post: post, LikeCount: 0, Liked: false}, nil
}

// GetPost assembles the view for one post. viewerID 0 means an anonymous
// caller; Liked stays false without a liker lookup.
func (s *PostService) GetPost(ctx context.Context, id uint, viewerID uint) (*PostView, error) {
	post, err := s.postRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.assembleView(ctx, post, viewerID)
}

func (s *PostService) ListUserPosts(ctx context.Context, userID uint, viewerID uint, limit, offset int) ([]*PostView, error) {
	posts, err := s.postRepo.GetByUserID(ctx, userID, limit, offset)
	if err != nil {
		return nil, err
	}

	views := make([]*PostView, 0, len(posts))
	for _, post := range posts {
		view, err := s.assembleView(ctx, post, viewerID)
		if err != nil {
			return nil, err
		}
		views = append(views, view)
	}
	return views, nil
}

func (s *PostService) UpdateCaption(ctx context.Context, sub identity.Subject, postID uint, caption string) (*PostView, error) {
	if len(caption) > maxCaptionLen {
		return nil, models.NewValidationError("Caption too long (max 2000 characters)")
	}

	post, err := s.postRepo.GetByID(ctx, postID)
	if err != nil {
		return nil, err
	}
	if err := s.assertPostAccess(ctx, sub, post); err != nil {
		return nil, err
	}

	if err := s.postRepo.UpdateCaption(ctx, post.ID, caption); err != nil {
		return nil, err
	}
	post.Caption = caption
	return s.assembleView(ctx, post, 0)
}

func (s *PostService) DeletePost(ctx context.Context, sub identity.Subject, postID uint) error {
	post, err := s.postRepo.GetByID(ctx, postID)
	if err != nil {
		return err
	}
	if err := s.assertPostAccess(ctx, sub, post); err != nil {
		return err
	}
	return s.postRepo.Delete(ctx, post.ID)
}

// assertPostAccess resolves the post's owner to an auth ID and applies the
// owner-or-admin gate. The preloaded association is used when present so the
// common path costs no extra read.
func (s *PostService) assertPostAccess(ctx context.Context, sub identity.Subject, post *models.Post) error {
	ownerAuthID := post.User.AuthID
	if ownerAuthID == "" {
		owner, err := s.userRepo.GetByID(ctx, post.UserID)
		if err != nil {
			return err
		}
		ownerAuthID = owner.AuthID
	}
	return access.AssertOwnerOrAdmin(sub, ownerAuthID)
}

func (s *PostService) assembleView(ctx context.Context, post *models.Post, viewerID uint) (*PostView, error) {
	count, err := s.likeRepo.Count(ctx, post.ID)
	if err != nil {
		return nil, err
	}

	liked := false
	if viewerID != 0 {
		liked, err = s.likeRepo.Exists(ctx, viewerID, post.ID)
		if err != nil {
			return nil, err
		}
	}
	return &PostView{Post: post, LikeCount: count, Liked: liked}, nil
}
