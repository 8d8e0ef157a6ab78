// Package service holds the application's business rules. Services receive
// the caller's resolved identity explicitly and enforce access before any
// mutation.
package service

import (
	"context"

	"ungatekeep/internal/access"
	"ungatekeep/internal/identity"
	"ungatekeep/internal/models"
	"ungatekeep/internal/repository"
)

const (
	maxUsernameLen = 30
	maxBioLen      = 500
)

type UserService struct {
	userRepo repository.UserRepository
	cooldown *UsernameCooldownPolicy
	clock    Clock
}

func NewUserService(userRepo repository.UserRepository, cooldown *UsernameCooldownPolicy, clock Clock) *UserService {
	return &UserService{userRepo: userRepo, cooldown: cooldown, clock: clock}
}

type RegisterInput struct {
	Username  string
	Bio       string
	AvatarURL string
	LikeEmoji string
}

// Register creates the profile bound to the caller's auth ID. The username
// change timestamp is seeded at creation so the cooldown window starts
// counting immediately.
func (s *UserService) Register(ctx context.Context, sub identity.Subject, in RegisterInput) (*models.User, error) {
	user := &models.User{
		AuthID:            sub.AuthID,
		Bio:               in.Bio,
		AvatarURL:         in.AvatarURL,
		LikeEmoji:         in.LikeEmoji,
		UsernameUpdatedAt: s.clock.NowUTC(),
	}
	if in.Username != "" {
		if len(in.Username) > maxUsernameLen {
			return nil, models.NewValidationError("Username too long (max 30 characters)")
		}
		username := in.Username
		user.Username = &username
	}
	if len(in.Bio) > maxBioLen {
		return nil, models.NewValidationError("Bio too long (max 500 characters)")
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *UserService) GetMe(ctx context.Context, sub identity.Subject) (*models.User, error) {
	return s.userRepo.GetByAuthID(ctx, sub.AuthID)
}

func (s *UserService) GetUserByID(ctx context.Context, id uint) (*models.User, error) {
	return s.userRepo.GetByID(ctx, id)
}

func (s *UserService) ListUsers(ctx context.Context, limit, offset int) ([]models.User, error) {
	return s.userRepo.List(ctx, limit, offset)
}

// ChangeUsername applies the rename gates in order: the caller must own the
// profile or be an admin, the cooldown window must have elapsed, and the new
// name must not be held by anyone else. The first failing gate decides the
// error; later gates are not consulted.
func (s *UserService) ChangeUsername(ctx context.Context, sub identity.Subject, targetID uint, username string) (*models.User, error) {
	if username == "" {
		return nil, models.NewValidationError("Username must not be empty")
	}
	if len(username) > maxUsernameLen {
		return nil, models.NewValidationError("Username too long (max 30 characters)")
	}

	user, err := s.userRepo.GetByID(ctx, targetID)
	if err != nil {
		return nil, err
	}
	if err := access.AssertOwnerOrAdmin(sub, user.AuthID); err != nil {
		return nil, err
	}
	if err := s.cooldown.Check(user.UsernameUpdatedAt); err != nil {
		return nil, err
	}
	taken, err := s.userRepo.UsernameTaken(ctx, username, user.ID)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, models.NewConflictError("Username already taken")
	}

	user.Username = &username
	user.UsernameUpdatedAt = s.clock.NowUTC()
	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

type UpdateProfileInput struct {
	Bio       string
	AvatarURL string
	LikeEmoji string
}

// UpdateProfile updates the free-form profile fields. Empty input fields are
// left unchanged. Username is deliberately excluded; renames go through
// ChangeUsername and its cooldown.
func (s *UserService) UpdateProfile(ctx context.Context, sub identity.Subject, targetID uint, in UpdateProfileInput) (*models.User, error) {
	user, err := s.userRepo.GetByID(ctx, targetID)
	if err != nil {
		return nil, err
	}
	if err := access.AssertOwnerOrAdmin(sub, user.AuthID); err != nil {
		return nil, err
	}

	if in.Bio != "" {
		if len(in.Bio) > maxBioLen {
			return nil, models.NewValidationError("Bio too long (max 500 characters)")
		}
		user.Bio = in.Bio
	}
	if in.AvatarURL != "" {
		user.AvatarURL = in.AvatarURL
	}
	if in.LikeEmoji != "" {
		user.LikeEmoji = in.LikeEmoji
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// ChangeRole is admin only. Owning the profile grants nothing here.
func (s *UserService) ChangeRole(ctx context.Context, sub identity.Subject, targetID uint, role string) (*models.User, error) {
	if err := access.AssertAdmin(sub); err != nil {
		return nil, err
	}
	if role == "" {
		return nil, models.NewValidationError("Role must not be empty")
	}

	user, err := s.userRepo.GetByID(ctx, targetID)
	if err != nil {
		return nil, err
	}
	user.Role = role
	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *UserService) DeleteUser(ctx context.Context, sub identity.Subject, targetID uint) error {
	user, err := s.userRepo.GetByID(ctx, targetID)
	if err != nil {
		return err
	}
	if err := access.AssertOwnerOrAdmin(sub, user.AuthID); err != nil {
		return err
	}
	return s.userRepo.Delete(ctx, user.ID)
}
