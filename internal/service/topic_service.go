package service

import (
	"context"
	"strings"

	"quorum/internal/cache"
	"quorum/internal/models"
	"quorum/internal/observability"
	"quorum/internal/query"
	"quorum/internal/repository"
)

// TopicService owns topic lifecycle: creation, lifecycle transitions,
// pinning, locking, and answer marking.
type TopicService struct {
	topicRepo    repository.TopicRepository
	categoryRepo repository.CategoryRepository
	userRepo     repository.UserRepository
	tagRepo      repository.TagRepository
}

type CreateTopicInput struct {
	UserID     uint
	CategoryID uint
	Title      string
	Content    string
	Tags       []string
}

type UpdateTopicInput struct {
	UserID    uint
	Moderator bool
	TopicID   uint
	Title     string
	Content   string
}

type TransitionTopicInput struct {
	ActorID   uint
	Moderator bool
	TopicID   uint
	Status    models.TopicStatus
}

type MarkAnswerInput struct {
	ActorID   uint
	Moderator bool
	TopicID   uint
	PostID    uint
}

type ListTopicsInput struct {
	CategoryID uint
	UserID     uint
	Status     models.TopicStatus
	Title      string
	TagID      uint
	Page       query.PageRequest
}

// NewTopicService creates a new TopicService
func NewTopicService(
	topicRepo repository.TopicRepository,
	categoryRepo repository.CategoryRepository,
	userRepo repository.UserRepository,
	tagRepo repository.TagRepository,
) *TopicService {
	return &TopicService{
		topicRepo:    topicRepo,
		categoryRepo: categoryRepo,
		userRepo:     userRepo,
		tagRepo:      tagRepo,
	}
}

func (s *TopicService) CreateTopic(ctx context.Context, in CreateTopicInput) (*models.Topic, error) {
	if strings.TrimSpace(in.Title) == "" {
		return nil, models.NewValidationError("Title is required")
	}
	if len(in.Title) > maxTitleLen {
		return nil, models.NewValidationError("Title too long")
	}
	if err := requireContent(in.Content, maxContentLen); err != nil {
		return nil, err
	}
	if len(in.Tags) > maxTagsPerTopic {
		return nil, models.NewValidationError("Too many tags")
	}

	author, err := s.userRepo.GetByID(ctx, in.UserID)
	if err != nil {
		return nil, asNotFound(err, "User", in.UserID)
	}
	if author.IsBanned {
		return nil, models.NewUnauthorizedError("Banned users cannot create topics")
	}

	category, err := s.categoryRepo.GetByID(ctx, in.CategoryID)
	if err != nil {
		return nil, asNotFound(err, "Category", in.CategoryID)
	}
	if !category.IsActive {
		return nil, models.NewConflictError("Cannot create a topic in an inactive category")
	}

	topic := &models.Topic{
		Title:      in.Title,
		Content:    in.Content,
		CategoryID: in.CategoryID,
		UserID:     in.UserID,
		Status:     models.TopicStatusOpen,
	}
	if err := s.topicRepo.Create(ctx, topic); err != nil {
		return nil, err
	}

	if len(in.Tags) > 0 {
		names := normalizeTagNames(in.Tags)
		tags, err := s.tagRepo.GetOrCreateByNames(ctx, names)
		if err != nil {
			return nil, models.NewConsistencyError(err)
		}
		if err := s.topicRepo.SetTags(ctx, topic, tags); err != nil {
			return nil, models.NewConsistencyError(err)
		}
		topic.Tags = tags
	}
	return topic, nil
}

// GetTopic fetches a topic cache-aside. When countView is set the view
// counter advances; a failed bump never fails the read.
func (s *TopicService) GetTopic(ctx context.Context, id uint, countView bool) (*models.Topic, error) {
	var topic models.Topic
	err := cache.Aside(ctx, cache.TopicKey(id), &topic, cache.TopicTTL, func() error {
		fetched, err := s.topicRepo.GetByID(ctx, id)
		if err != nil {
			return err
		}
		topic = *fetched
		return nil
	})
	if err != nil {
		return nil, asNotFound(err, "Topic", id)
	}
	if countView {
		_ = s.topicRepo.IncrementViewCount(ctx, id)
	}
	return &topic, nil
}

func (s *TopicService) ListTopics(ctx context.Context, in ListTopicsInput) (*query.Page[*models.Topic], error) {
	items, count, err := s.topicRepo.List(ctx, repository.TopicFilter{
		CategoryID: in.CategoryID,
		UserID:     in.UserID,
		Status:     in.Status,
		Title:      in.Title,
		TagID:      in.TagID,
		Page:       in.Page,
	})
	if err != nil {
		return nil, err
	}
	return &query.Page[*models.Topic]{Items: items, Count: count}, nil
}

// UpdateTopic edits the title or opening content. Only the author or a
// moderator may edit, and archived topics reject all mutation.
func (s *TopicService) UpdateTopic(ctx context.Context, in UpdateTopicInput) (*models.Topic, error) {
	topic, err := s.topicRepo.GetByID(ctx, in.TopicID)
	if err != nil {
		return nil, asNotFound(err, "Topic", in.TopicID)
	}
	if topic.Status == models.TopicStatusArchived {
		return nil, models.NewConflictError("Archived topics cannot be modified")
	}
	if topic.UserID != in.UserID && !in.Moderator {
		return nil, models.NewUnauthorizedError("You can only edit your own topics")
	}

	title := topic.Title
	if in.Title != "" {
		if len(in.Title) > maxTitleLen {
			return nil, models.NewValidationError("Title too long")
		}
		title = in.Title
	}
	content := topic.Content
	if in.Content != "" {
		if len(in.Content) > maxContentLen {
			return nil, models.NewValidationError("Content too long")
		}
		content = in.Content
	}

	if err := s.topicRepo.UpdateContent(ctx, topic.ID, title, content); err != nil {
		return nil, err
	}
	topic.Title = title
	topic.Content = content
	return topic, nil
}

// TransitionTopic moves a topic through its lifecycle with the status
// lattice enforced: archived is terminal, open and closed convert freely.
// Closing an open topic is allowed for the author as well as moderators;
// reopening and archiving stay moderator-only.
func (s *TopicService) TransitionTopic(ctx context.Context, in TransitionTopicInput) (*models.Topic, error) {
	topic, err := s.topicRepo.GetByID(ctx, in.TopicID)
	if err != nil {
		return nil, asNotFound(err, "Topic", in.TopicID)
	}

	authorClose := in.ActorID == topic.UserID &&
		topic.Status == models.TopicStatusOpen && in.Status == models.TopicStatusClosed
	if !in.Moderator && !authorClose {
		return nil, models.NewUnauthorizedError("Only moderators can change topic status")
	}

	if topic.Status == in.Status {
		return topic, nil
	}
	if !topic.CanTransitionTo(in.Status) {
		return nil, models.NewConflictError("Invalid topic status transition")
	}

	if err := s.topicRepo.SetStatus(ctx, topic, in.Status, in.ActorID); err != nil {
		return nil, asNotFound(err, "Topic", in.TopicID)
	}
	observability.TopicTransitions.WithLabelValues(string(in.Status)).Inc()
	return topic, nil
}

func (s *TopicService) SetPinned(ctx context.Context, topicID uint, pinned, moderator bool) error {
	if !moderator {
		return models.NewUnauthorizedError("Only moderators can pin topics")
	}
	if _, err := s.topicRepo.GetByID(ctx, topicID); err != nil {
		return asNotFound(err, "Topic", topicID)
	}
	return s.topicRepo.SetPinned(ctx, topicID, pinned)
}

func (s *TopicService) SetLocked(ctx context.Context, topicID uint, locked, moderator bool) error {
	if !moderator {
		return models.NewUnauthorizedError("Only moderators can lock topics")
	}
	topic, err := s.topicRepo.GetByID(ctx, topicID)
	if err != nil {
		return asNotFound(err, "Topic", topicID)
	}
	if topic.Status == models.TopicStatusArchived {
		return models.NewConflictError("Archived topics cannot be modified")
	}
	return s.topicRepo.SetLocked(ctx, topicID, locked)
}

// MarkAnswer designates one post as the topic's accepted answer. Allowed for
// the topic author and moderators. Marking a different post moves the flag.
func (s *TopicService) MarkAnswer(ctx context.Context, in MarkAnswerInput) error {
	topic, err := s.topicRepo.GetByID(ctx, in.TopicID)
	if err != nil {
		return asNotFound(err, "Topic", in.TopicID)
	}
	if topic.Status == models.TopicStatusArchived {
		return models.NewConflictError("Archived topics cannot be modified")
	}
	if topic.UserID != in.ActorID && !in.Moderator {
		return models.NewUnauthorizedError("Only the topic author or a moderator can mark an answer")
	}

	if err := s.topicRepo.MarkAnswer(ctx, topic, in.PostID, in.ActorID); err != nil {
		return asNotFound(err, "Post", in.PostID)
	}
	return nil
}

func (s *TopicService) UnmarkAnswer(ctx context.Context, in MarkAnswerInput) error {
	topic, err := s.topicRepo.GetByID(ctx, in.TopicID)
	if err != nil {
		return asNotFound(err, "Topic", in.TopicID)
	}
	if topic.Status == models.TopicStatusArchived {
		return models.NewConflictError("Archived topics cannot be modified")
	}
	if topic.UserID != in.ActorID && !in.Moderator {
		return models.NewUnauthorizedError("Only the topic author or a moderator can unmark an answer")
	}
	return s.topicRepo.UnmarkAnswer(ctx, topic)
}

func normalizeTagNames(raw []string) []string {
	seen := make(map[string]bool, len(raw))
	out := make([]string, 0, len(raw))
	for _, name := range raw {
		name = strings.ToLower(strings.TrimSpace(name))
		if name == "" || len(name) > maxTagNameLen || seen[name] {
			continue
		}
		seen[name] = true
		out = append(out, name)
	}
	return out
}
