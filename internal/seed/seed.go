// Package seed provides helpers to create demo data for development
// databases. Not for production use.
package seed

import (
	"fmt"
	"log"
	"math/rand"
	"strings"
	"time"

	"ungatekeep/internal/models"

	"github.com/brianvoe/gofakeit/v6"
	"gorm.io/gorm"
)

// Options configures a seeding run.
type Options struct {
	NumUsers    int
	NumPosts    int
	ShouldClean bool
}

var likeEmojis = []string{"❤️", "🔥", "✨", "💀", "🫶", "👀", "🌈", "🍕"}

// Seeder builds and persists demo entities.
type Seeder struct {
	db   *gorm.DB
	rand *rand.Rand
}

func NewSeeder(db *gorm.DB) *Seeder {
	gofakeit.Seed(time.Now().UnixNano())
	return &Seeder{
		db:   db,
		rand: rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// ClearAll wipes the seeded tables, likes first so foreign keys hold
// throughout.
func (s *Seeder) ClearAll() error {
	for _, table := range []string{"likes", "posts", "users"} {
		if err := s.db.Exec("DELETE FROM " + table).Error; err != nil {
			return fmt.Errorf("clearing %s: %w", table, err)
		}
	}
	log.Println("Cleared existing data")
	return nil
}

// BuildUser constructs an unpersisted demo user. Every third user has no
// username yet, matching fresh registrations in the wild.
func (s *Seeder) BuildUser(n int) *models.User {
	created := time.Now().UTC().Add(-time.Duration(s.rand.Intn(120*24)) * time.Hour)
	user := &models.User{
		AuthID:            fmt.Sprintf("auth0|%s", gofakeit.UUID()),
		Bio:               gofakeit.Sentence(8),
		AvatarURL:         fmt.Sprintf("https://i.pravatar.cc/300?u=%d", n),
		Role:              "user",
		LikeEmoji:         likeEmojis[s.rand.Intn(len(likeEmojis))],
		UsernameUpdatedAt: created,
		CreatedAt:         created,
	}
	if n%3 != 0 {
		username := strings.ToLower(gofakeit.Username())
		if len(username) > 24 {
			username = username[:24]
		}
		username = fmt.Sprintf("%s%d", username, n)
		user.Username = &username
	}
	return user
}

// BuildPost constructs an unpersisted demo post for the given author with
// one to four image refs packed into the storage column.
func (s *Seeder) BuildPost(author *models.User) *models.Post {
	refs := make([]string, 1+s.rand.Intn(4))
	for i := range refs {
		refs[i] = fmt.Sprintf("https://picsum.photos/seed/%s/800/800", gofakeit.UUID())
	}
	return &models.Post{
		UserID:    author.ID,
		Caption:   gofakeit.Sentence(6 + s.rand.Intn(10)),
		ImageRefs: strings.Join(refs, ","),
		CreatedAt: time.Now().UTC().Add(-time.Duration(s.rand.Intn(90*24)) * time.Hour),
	}
}

// Run seeds users, posts, and a like mesh. Likes go through the same
// conditional insert as production writes, so re-runs and random collisions
// stay harmless.
func (s *Seeder) Run(opts Options) error {
	if opts.ShouldClean {
		if err := s.ClearAll(); err != nil {
			return err
		}
	}

	users := make([]*models.User, 0, opts.NumUsers)
	for i := 0; i < opts.NumUsers; i++ {
		user := s.BuildUser(i)
		if i == 0 {
			user.Role = models.RoleAdmin
		}
		if err := s.db.Create(user).Error; err != nil {
			return fmt.Errorf("seeding user %d: %w", i, err)
		}
		users = append(users, user)
	}
	log.Printf("Seeded %d users", len(users))

	posts := make([]*models.Post, 0, opts.NumPosts)
	for i := 0; i < opts.NumPosts; i++ {
		post := s.BuildPost(users[s.rand.Intn(len(users))])
		if err := s.db.Create(post).Error; err != nil {
			return fmt.Errorf("seeding post %d: %w", i, err)
		}
		posts = append(posts, post)
	}
	log.Printf("Seeded %d posts", len(posts))

	likes := 0
	for _, post := range posts {
		for _, user := range users {
			if s.rand.Intn(100) >= 20 {
				continue
			}
			likedAt := post.CreatedAt.Add(time.Duration(s.rand.Intn(72)) * time.Hour)
			err := s.db.Exec(
				`INSERT INTO likes (user_id, post_id, liked_at)
				 VALUES (?, ?, ?)
				 ON CONFLICT (user_id, post_id) DO NOTHING`,
				user.ID, post.ID, likedAt.UTC(),
			).Error
			if err != nil {
				return fmt.Errorf("seeding like: %w", err)
			}
			likes++
		}
	}
	log.Printf("Seeded %d likes", likes)
	return nil
}
