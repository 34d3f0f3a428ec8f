package seed

import (
	"context"
	"fmt"
	"log"

	"quorum/internal/models"

	"gorm.io/gorm"
)

// Options configuration for the seeder
type Options struct {
	NumUsers      int
	NumTopics     int
	PostsPerTopic int
	ShouldClean   bool
}

var topicTagPool = []string{
	"go", "postgres", "redis", "docker", "kubernetes", "linux",
	"performance", "debugging", "beginner", "showcase", "question",
	"discussion", "announcement", "review",
}

// Seed populates the database with demo data.
func Seed(ctx context.Context, db *gorm.DB, opts Options) error {
	log.Printf("Starting database seeding with %d users and %d topics...", opts.NumUsers, opts.NumTopics)

	if opts.ShouldClean {
		if err := clearData(db); err != nil {
			log.Println("Warning: could not clear all existing data, continuing anyway...")
		}
	}

	if err := Categories(db); err != nil {
		return fmt.Errorf("failed to seed categories: %w", err)
	}

	f := NewFactory(db)

	users, err := createUsers(f, opts.NumUsers)
	if err != nil {
		return fmt.Errorf("failed to create users: %w", err)
	}
	log.Printf("%d users created", len(users))

	var categories []*models.Category
	if err := db.Order("display_order asc").Find(&categories).Error; err != nil {
		return fmt.Errorf("failed to load categories: %w", err)
	}

	topics, err := createThreads(ctx, f, users, categories, opts)
	if err != nil {
		return fmt.Errorf("failed to create threads: %w", err)
	}
	log.Printf("%d topics created", len(topics))

	log.Println("Database seeding completed")
	return nil
}

func clearData(db *gorm.DB) error {
	log.Println("Clearing existing data...")
	sql := `TRUNCATE TABLE topic_watches, forum_user_stats, tags, topic_tags, reported_contents,
		moderation_log_entries, edit_history_entries, votes, attachments, replies, posts,
		topics, categories, users RESTART IDENTITY CASCADE;`
	return db.Exec(sql).Error
}

func createUsers(f *Factory, count int) ([]*models.User, error) {
	users := make([]*models.User, 0, count)

	// a couple of fixed identities so the dev login story is predictable
	if count >= 2 {
		mod, err := f.CreateModerator(func(u *models.User) {
			u.Username = "mod"
			u.Email = "mod@example.com"
			u.DisplayName = "Resident Moderator"
		})
		if err == nil {
			users = append(users, mod)
		}
		dev, err := f.CreateUser(func(u *models.User) {
			u.Username = "dev"
			u.Email = "dev@example.com"
			u.DisplayName = "Local Developer"
		})
		if err == nil {
			users = append(users, dev)
		}
	}

	for i := len(users); i < count; i++ {
		user, err := f.CreateUser()
		if err != nil {
			log.Printf("Failed to create user: %v", err)
			continue
		}
		users = append(users, user)
	}
	return users, nil
}

func createThreads(ctx context.Context, f *Factory, users []*models.User, categories []*models.Category, opts Options) ([]*models.Topic, error) {
	if len(users) == 0 || len(categories) == 0 {
		return nil, nil
	}

	postsPerTopic := opts.PostsPerTopic
	if postsPerTopic <= 0 {
		postsPerTopic = 3
	}

	topics := make([]*models.Topic, 0, opts.NumTopics)
	for i := 0; i < opts.NumTopics; i++ {
		author := users[f.rng.Intn(len(users))]
		category := categories[f.rng.Intn(len(categories))]

		topic, err := f.CreateTopic(ctx, author, category)
		if err != nil {
			return nil, err
		}
		topics = append(topics, topic)

		if f.rng.Float32() < 0.6 {
			names := pickTags(f, 1+f.rng.Intn(3))
			if err := f.AttachTags(ctx, topic, names); err != nil {
				return nil, err
			}
		}

		for p := 0; p < f.rng.Intn(postsPerTopic)+1; p++ {
			poster := users[f.rng.Intn(len(users))]
			post, err := f.CreatePost(ctx, poster, topic)
			if err != nil {
				return nil, err
			}

			for r := 0; r < f.rng.Intn(3); r++ {
				replier := users[f.rng.Intn(len(users))]
				if _, err := f.CreateReply(ctx, replier, post); err != nil {
					return nil, err
				}
			}

			// a slice of the audience votes on each post
			for v := 0; v < f.rng.Intn(4); v++ {
				voter := users[f.rng.Intn(len(users))]
				if err := f.CastVote(ctx, voter, models.VoteTargetPost, post.ID); err != nil {
					return nil, err
				}
			}
		}

		for w := 0; w < f.rng.Intn(3); w++ {
			watcher := users[f.rng.Intn(len(users))]
			if err := f.WatchTopic(ctx, watcher, topic); err != nil {
				return nil, err
			}
		}

		if i > 0 && i%50 == 0 {
			log.Printf("Created %d topics...", i)
		}
	}
	return topics, nil
}

func pickTags(f *Factory, n int) []string {
	if n > len(topicTagPool) {
		n = len(topicTagPool)
	}
	picked := make([]string, 0, n)
	seen := map[string]bool{}
	for len(picked) < n {
		name := topicTagPool[f.rng.Intn(len(topicTagPool))]
		if seen[name] {
			continue
		}
		seen[name] = true
		picked = append(picked, name)
	}
	return picked
}
