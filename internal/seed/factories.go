// Package seed provides helpers to create demo data for development and
// testing. Content writes go through the repository layer so denormalized
// counters and stats rollups come out consistent.
package seed

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"quorum/internal/models"
	"quorum/internal/repository"

	"github.com/brianvoe/gofakeit/v6"
	"gorm.io/gorm"
)

// Factory builds domain entities and persists them. Users, tags, and
// categories are written directly; topics, posts, replies, and votes run
// through the repositories so the engine maintains its own bookkeeping.
type Factory struct {
	db *gorm.DB

	topics  repository.TopicRepository
	posts   repository.PostRepository
	replies repository.ReplyRepository
	votes   repository.VoteRepository
	watches repository.WatchRepository
	tags    repository.TagRepository

	rng *rand.Rand
}

// NewFactory creates a new Factory bound to the provided Gorm DB.
func NewFactory(db *gorm.DB) *Factory {
	gofakeit.Seed(time.Now().UnixNano())
	//nolint:gosec // weak randomness is fine for seeding
	return &Factory{
		db:      db,
		topics:  repository.NewTopicRepository(db),
		posts:   repository.NewPostRepository(db),
		replies: repository.NewReplyRepository(db),
		votes:   repository.NewVoteRepository(db),
		watches: repository.NewWatchRepository(db),
		tags:    repository.NewTagRepository(db),
		rng:     rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// CreateUser constructs and persists a sample `models.User`. Optional
// override functions may modify the generated user before saving.
func (f *Factory) CreateUser(overrides ...func(*models.User)) (*models.User, error) {
	username := fmt.Sprintf("%s%d", gofakeit.Username(), gofakeit.Number(100, 999))
	user := &models.User{
		Username:    username,
		Email:       gofakeit.Email(),
		DisplayName: gofakeit.Name(),
		AvatarURL:   fmt.Sprintf("https://i.pravatar.cc/150?u=%s", username),
		Role:        models.RoleUser,
	}

	for _, override := range overrides {
		override(user)
	}

	if err := f.db.Create(user).Error; err != nil {
		return nil, err
	}
	return user, nil
}

// CreateModerator persists a user carrying the moderator role.
func (f *Factory) CreateModerator(overrides ...func(*models.User)) (*models.User, error) {
	withRole := func(u *models.User) { u.Role = models.RoleModerator }
	return f.CreateUser(append([]func(*models.User){withRole}, overrides...)...)
}

// CreateTopic opens a thread in the category through the topic repository,
// so category and author counters are bumped the same way production
// writes bump them.
func (f *Factory) CreateTopic(ctx context.Context, author *models.User, category *models.Category, overrides ...func(*models.Topic)) (*models.Topic, error) {
	topic := &models.Topic{
		Title:      gofakeit.Sentence(f.rng.Intn(6) + 4),
		Content:    gofakeit.Paragraph(1, 3, 8, "\n"),
		CategoryID: category.ID,
		UserID:     author.ID,
		Status:     models.TopicStatusOpen,
	}

	for _, override := range overrides {
		override(topic)
	}

	if err := f.topics.Create(ctx, topic); err != nil {
		return nil, err
	}
	return topic, nil
}

// CreatePost adds a post to the topic through the post repository.
func (f *Factory) CreatePost(ctx context.Context, author *models.User, topic *models.Topic, overrides ...func(*models.Post)) (*models.Post, error) {
	post := &models.Post{
		TopicID: topic.ID,
		UserID:  author.ID,
		Content: gofakeit.Paragraph(1, 2, 10, "\n"),
	}

	for _, override := range overrides {
		override(post)
	}

	if err := f.posts.Create(ctx, post); err != nil {
		return nil, err
	}
	return post, nil
}

// CreateReply attaches a reply to the post. Replies never touch thread
// recency here, matching the default rollout policy.
func (f *Factory) CreateReply(ctx context.Context, author *models.User, post *models.Post, overrides ...func(*models.Reply)) (*models.Reply, error) {
	reply := &models.Reply{
		PostID:  post.ID,
		UserID:  author.ID,
		Content: gofakeit.Sentence(f.rng.Intn(12) + 4),
	}

	for _, override := range overrides {
		override(reply)
	}

	if err := f.replies.Create(ctx, reply, false); err != nil {
		return nil, err
	}
	return reply, nil
}

// CastVote records a vote through the ledger; polarity skews positive the
// way live traffic does.
func (f *Factory) CastVote(ctx context.Context, voter *models.User, kind models.VoteTarget, targetID uint) error {
	polarity := models.Upvote
	if f.rng.Float32() < 0.2 {
		polarity = models.Downvote
	}
	_, err := f.votes.Cast(ctx, voter.ID, kind, targetID, polarity)
	return err
}

// AttachTags resolves names to tags, creating missing ones, and binds them
// to the topic.
func (f *Factory) AttachTags(ctx context.Context, topic *models.Topic, names []string) error {
	tags, err := f.tags.GetOrCreateByNames(ctx, names)
	if err != nil {
		return err
	}
	return f.topics.SetTags(ctx, topic, tags)
}

// WatchTopic subscribes the user to the topic.
func (f *Factory) WatchTopic(ctx context.Context, user *models.User, topic *models.Topic) error {
	_, err := f.watches.Watch(ctx, user.ID, topic.ID)
	return err
}
