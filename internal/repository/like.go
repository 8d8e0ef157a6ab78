// Package repository implements the data access layer for the application.
package repository

import (
	"context"
	"time"

	"ungatekeep/internal/cache"
	"ungatekeep/internal/models"

	"gorm.io/gorm"
)

// LikeRepository defines persistence operations for the like relation set.
// The (user_id, post_id) pair carries a unique constraint; toggle correctness
// under concurrent requests rests on that constraint, not on application locks.
type LikeRepository interface {
	// Toggle flips the relation for the pair inside one transaction and
	// returns the resulting state: true for Liked, false for NotLiked.
	Toggle(ctx context.Context, userID, postID uint) (bool, error)
	Exists(ctx context.Context, userID, postID uint) (bool, error)
	Count(ctx context.Context, postID uint) (int64, error)
	Likers(ctx context.Context, postID uint) ([]models.User, error)
}

type likeRepository struct {
	db *gorm.DB
}

// NewLikeRepository creates a new like repository
func NewLikeRepository(db *gorm.DB) LikeRepository {
	return &likeRepository{db: db}
}

func (r *likeRepository) Toggle(ctx context.Context, userID, postID uint) (bool, error) {
	liked := false
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&models.Like{}).
			Where("user_id = ? AND post_id = ?", userID, postID).
			Count(&count).Error; err != nil {
			return err
		}

		if count > 0 {
			liked = false
			return tx.Where("user_id = ? AND post_id = ?", userID, postID).
				Delete(&models.Like{}).Error
		}

		// Atomic conditional insert. When a concurrent toggle for the same
		// pair wins the race, the conflict clause makes this a no-op and the
		// caller still observes Liked: the row exists either way.
		res := tx.Exec(
			`INSERT INTO likes (user_id, post_id, liked_at)
			 VALUES (?, ?, ?)
			 ON CONFLICT (user_id, post_id) DO NOTHING`,
			userID, postID, time.Now().UTC(),
		)
		if res.Error != nil {
			return res.Error
		}
		liked = true
		return nil
	})
	if err != nil {
		return false, models.NewInternalError(err)
	}

	cache.InvalidatePost(ctx, postID)
	return liked, nil
}

func (r *likeRepository) Exists(ctx context.Context, userID, postID uint) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.Like{}).
		Where("user_id = ? AND post_id = ?", userID, postID).
		Count(&count).Error; err != nil {
		return false, models.NewInternalError(err)
	}
	return count > 0, nil
}

// Count returns the cardinality of the relation set for the post. It is the
// only source of the like count; nothing caches or denormalizes it.
func (r *likeRepository) Count(ctx context.Context, postID uint) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.Like{}).
		Where("post_id = ?", postID).
		Count(&count).Error; err != nil {
		return 0, models.NewInternalError(err)
	}
	return count, nil
}

func (r *likeRepository) Likers(ctx context.Context, postID uint) ([]models.User, error) {
	var users []models.User
	err := r.db.WithContext(ctx).
		Model(&models.User{}).
		Joins("JOIN likes ON likes.user_id = users.id").
		Where("likes.post_id = ?", postID).
		Order("likes.liked_at ASC").
		Find(&users).Error
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return users, nil
}
