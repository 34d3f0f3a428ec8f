package service

import (
	"context"

	"quorum/internal/cache"
	"quorum/internal/models"
	"quorum/internal/policy"
	"quorum/internal/query"
	"quorum/internal/repository"
)

// PostService owns posts within topics: creation gated on topic state,
// edits routed through the edit trail, and soft deletion.
type PostService struct {
	postRepo    repository.PostRepository
	topicRepo   repository.TopicRepository
	userRepo    repository.UserRepository
	historyRepo repository.EditHistoryRepository
	flags       *policy.Flags
}

type CreatePostInput struct {
	UserID      uint
	Moderator   bool
	TopicID     uint
	Content     string
	Attachments []models.Attachment
}

type EditPostInput struct {
	EditorID  uint
	Moderator bool
	PostID    uint
	Content   string
}

type DeletePostInput struct {
	ActorID   uint
	Moderator bool
	PostID    uint
}

type ListPostsInput struct {
	TopicID   uint
	UserID    uint
	Moderator bool
	Page      query.PageRequest
}

// NewPostService creates a new PostService
func NewPostService(
	postRepo repository.PostRepository,
	topicRepo repository.TopicRepository,
	userRepo repository.UserRepository,
	historyRepo repository.EditHistoryRepository,
	flags *policy.Flags,
) *PostService {
	return &PostService{
		postRepo:    postRepo,
		topicRepo:   topicRepo,
		userRepo:    userRepo,
		historyRepo: historyRepo,
		flags:       flags,
	}
}

// CreatePost adds a post to a topic. Closed and archived topics reject new
// posts outright. Locked topics reject them too, unless the author is a
// moderator and the lock-override policy is on.
func (s *PostService) CreatePost(ctx context.Context, in CreatePostInput) (*models.Post, error) {
	if err := requireContent(in.Content, maxContentLen); err != nil {
		return nil, err
	}

	author, err := s.userRepo.GetByID(ctx, in.UserID)
	if err != nil {
		return nil, asNotFound(err, "User", in.UserID)
	}
	if author.IsBanned {
		return nil, models.NewUnauthorizedError("Banned users cannot post")
	}

	topic, err := s.topicRepo.GetByID(ctx, in.TopicID)
	if err != nil {
		return nil, asNotFound(err, "Topic", in.TopicID)
	}
	if topic.Status != models.TopicStatusOpen {
		return nil, models.NewConflictError("Topic does not accept new posts")
	}
	if topic.IsLocked {
		override := in.Moderator && s.flags.Enabled(policy.ModOverrideLock, in.UserID)
		if !override {
			return nil, models.NewConflictError("Topic is locked")
		}
	}

	post := &models.Post{
		TopicID:     in.TopicID,
		UserID:      in.UserID,
		Content:     in.Content,
		Attachments: in.Attachments,
	}
	if err := s.postRepo.Create(ctx, post); err != nil {
		return nil, models.NewConsistencyError(err)
	}
	return post, nil
}

func (s *PostService) GetPost(ctx context.Context, id uint, moderator bool) (*models.Post, error) {
	post, err := s.postRepo.GetByID(ctx, id, moderator)
	if err != nil {
		return nil, asNotFound(err, "Post", id)
	}
	return post, nil
}

// ListPosts returns a page of a topic's posts. The unfiltered public first
// page is served cache-aside; deeper pages and moderator views hit the store.
func (s *PostService) ListPosts(ctx context.Context, in ListPostsInput) (*query.Page[*models.Post], error) {
	if _, err := s.topicRepo.GetByID(ctx, in.TopicID); err != nil {
		return nil, asNotFound(err, "Topic", in.TopicID)
	}
	filter := repository.PostFilter{
		TopicID:        in.TopicID,
		UserID:         in.UserID,
		IncludeDeleted: in.Moderator,
		Page:           in.Page.Normalize(),
	}

	cacheable := !in.Moderator && in.UserID == 0 && filter.Page.Page == 1 &&
		filter.Page.PerPage == query.DefaultPerPage && filter.Page.SortBy == ""
	if cacheable {
		var page query.Page[*models.Post]
		err := cache.Aside(ctx, cache.TopicPostsKey(in.TopicID), &page, cache.TopicPostsTTL, func() error {
			items, count, err := s.postRepo.ListByTopic(ctx, filter)
			if err != nil {
				return err
			}
			page = query.Page[*models.Post]{Items: items, Count: count}
			return nil
		})
		if err != nil {
			return nil, err
		}
		return &page, nil
	}

	items, count, err := s.postRepo.ListByTopic(ctx, filter)
	if err != nil {
		return nil, err
	}
	return &query.Page[*models.Post]{Items: items, Count: count}, nil
}

// EditPost applies new content through the edit trail: the prior revision is
// snapshotted and the edit counter advances in the same transaction.
func (s *PostService) EditPost(ctx context.Context, in EditPostInput) (*models.Post, error) {
	if err := requireContent(in.Content, maxContentLen); err != nil {
		return nil, err
	}

	post, err := s.postRepo.GetByID(ctx, in.PostID, false)
	if err != nil {
		return nil, asNotFound(err, "Post", in.PostID)
	}
	if post.UserID != in.EditorID && !in.Moderator {
		return nil, models.NewUnauthorizedError("You can only edit your own posts")
	}

	topic, err := s.topicRepo.GetByID(ctx, post.TopicID)
	if err != nil {
		return nil, asNotFound(err, "Topic", post.TopicID)
	}
	if topic.Status == models.TopicStatusArchived {
		return nil, models.NewConflictError("Archived topics cannot be modified")
	}

	if _, err := s.historyRepo.RecordEdit(ctx, models.ContentKindPost, in.PostID, in.Content, in.EditorID); err != nil {
		return nil, models.NewConsistencyError(err)
	}
	return s.postRepo.GetByID(ctx, in.PostID, false)
}

// PostHistory returns the edit trail for a post, oldest first.
func (s *PostService) PostHistory(ctx context.Context, postID uint, page query.PageRequest) (*query.Page[*models.EditHistoryEntry], error) {
	if _, err := s.postRepo.GetByID(ctx, postID, true); err != nil {
		return nil, asNotFound(err, "Post", postID)
	}
	items, count, err := s.historyRepo.ListForContent(ctx, models.ContentKindPost, postID, page)
	if err != nil {
		return nil, err
	}
	return &query.Page[*models.EditHistoryEntry]{Items: items, Count: count}, nil
}

// DeletePost soft-deletes a post. The author may remove their own; anything
// else requires a moderator. Counters stay put, only visibility changes.
func (s *PostService) DeletePost(ctx context.Context, in DeletePostInput) error {
	post, err := s.postRepo.GetByID(ctx, in.PostID, false)
	if err != nil {
		return asNotFound(err, "Post", in.PostID)
	}
	if post.UserID != in.ActorID && !in.Moderator {
		return models.NewUnauthorizedError("You can only delete your own posts")
	}

	topic, err := s.topicRepo.GetByID(ctx, post.TopicID)
	if err != nil {
		return asNotFound(err, "Topic", post.TopicID)
	}
	if topic.Status == models.TopicStatusArchived {
		return models.NewConflictError("Archived topics cannot be modified")
	}

	if err := s.postRepo.SoftDelete(ctx, in.PostID, in.ActorID); err != nil {
		return asNotFound(err, "Post", in.PostID)
	}
	return nil
}

func (s *PostService) RestorePost(ctx context.Context, postID uint, moderator bool) error {
	if !moderator {
		return models.NewUnauthorizedError("Only moderators can restore posts")
	}
	if err := s.postRepo.Restore(ctx, postID); err != nil {
		return asNotFound(err, "Post", postID)
	}
	return nil
}
