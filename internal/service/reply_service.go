package service

import (
	"context"

	"quorum/internal/models"
	"quorum/internal/policy"
	"quorum/internal/query"
	"quorum/internal/repository"
)

// ReplyService owns flat replies under posts. Replies follow the same
// lifecycle gates as posts but, by default, never bump thread recency.
type ReplyService struct {
	replyRepo   repository.ReplyRepository
	postRepo    repository.PostRepository
	topicRepo   repository.TopicRepository
	userRepo    repository.UserRepository
	historyRepo repository.EditHistoryRepository
	flags       *policy.Flags
}

type CreateReplyInput struct {
	UserID    uint
	Moderator bool
	PostID    uint
	Content   string
}

type EditReplyInput struct {
	EditorID  uint
	Moderator bool
	ReplyID   uint
	Content   string
}

type DeleteReplyInput struct {
	ActorID   uint
	Moderator bool
	ReplyID   uint
}

type ListRepliesInput struct {
	PostID    uint
	Moderator bool
	Page      query.PageRequest
}

// NewReplyService creates a new ReplyService
func NewReplyService(
	replyRepo repository.ReplyRepository,
	postRepo repository.PostRepository,
	topicRepo repository.TopicRepository,
	userRepo repository.UserRepository,
	historyRepo repository.EditHistoryRepository,
	flags *policy.Flags,
) *ReplyService {
	return &ReplyService{
		replyRepo:   replyRepo,
		postRepo:    postRepo,
		topicRepo:   topicRepo,
		userRepo:    userRepo,
		historyRepo: historyRepo,
		flags:       flags,
	}
}

func (s *ReplyService) CreateReply(ctx context.Context, in CreateReplyInput) (*models.Reply, error) {
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

	post, err := s.postRepo.GetByID(ctx, in.PostID, false)
	if err != nil {
		return nil, asNotFound(err, "Post", in.PostID)
	}

	topic, err := s.topicRepo.GetByID(ctx, post.TopicID)
	if err != nil {
		return nil, asNotFound(err, "Topic", post.TopicID)
	}
	if topic.Status != models.TopicStatusOpen {
		return nil, models.NewConflictError("Topic does not accept new replies")
	}
	if topic.IsLocked {
		override := in.Moderator && s.flags.Enabled(policy.ModOverrideLock, in.UserID)
		if !override {
			return nil, models.NewConflictError("Topic is locked")
		}
	}

	reply := &models.Reply{
		PostID:  in.PostID,
		UserID:  in.UserID,
		Content: in.Content,
	}
	touchThread := s.flags.Enabled(policy.RepliesTouchThread, in.UserID)
	if err := s.replyRepo.Create(ctx, reply, touchThread); err != nil {
		return nil, models.NewConsistencyError(err)
	}
	return reply, nil
}

func (s *ReplyService) GetReply(ctx context.Context, id uint, moderator bool) (*models.Reply, error) {
	reply, err := s.replyRepo.GetByID(ctx, id, moderator)
	if err != nil {
		return nil, asNotFound(err, "Reply", id)
	}
	return reply, nil
}

func (s *ReplyService) ListReplies(ctx context.Context, in ListRepliesInput) (*query.Page[*models.Reply], error) {
	if _, err := s.postRepo.GetByID(ctx, in.PostID, in.Moderator); err != nil {
		return nil, asNotFound(err, "Post", in.PostID)
	}
	items, count, err := s.replyRepo.ListByPost(ctx, repository.ReplyFilter{
		PostID:         in.PostID,
		IncludeDeleted: in.Moderator,
		Page:           in.Page,
	})
	if err != nil {
		return nil, err
	}
	return &query.Page[*models.Reply]{Items: items, Count: count}, nil
}

func (s *ReplyService) EditReply(ctx context.Context, in EditReplyInput) (*models.Reply, error) {
	if err := requireContent(in.Content, maxContentLen); err != nil {
		return nil, err
	}

	reply, err := s.replyRepo.GetByID(ctx, in.ReplyID, false)
	if err != nil {
		return nil, asNotFound(err, "Reply", in.ReplyID)
	}
	if reply.UserID != in.EditorID && !in.Moderator {
		return nil, models.NewUnauthorizedError("You can only edit your own replies")
	}

	if err := s.guardTopicMutable(ctx, reply.PostID); err != nil {
		return nil, err
	}

	if _, err := s.historyRepo.RecordEdit(ctx, models.ContentKindReply, in.ReplyID, in.Content, in.EditorID); err != nil {
		return nil, models.NewConsistencyError(err)
	}
	return s.replyRepo.GetByID(ctx, in.ReplyID, false)
}

// ReplyHistory returns the edit trail for a reply, oldest first.
func (s *ReplyService) ReplyHistory(ctx context.Context, replyID uint, page query.PageRequest) (*query.Page[*models.EditHistoryEntry], error) {
	if _, err := s.replyRepo.GetByID(ctx, replyID, true); err != nil {
		return nil, asNotFound(err, "Reply", replyID)
	}
	items, count, err := s.historyRepo.ListForContent(ctx, models.ContentKindReply, replyID, page)
	if err != nil {
		return nil, err
	}
	return &query.Page[*models.EditHistoryEntry]{Items: items, Count: count}, nil
}

func (s *ReplyService) DeleteReply(ctx context.Context, in DeleteReplyInput) error {
	reply, err := s.replyRepo.GetByID(ctx, in.ReplyID, false)
	if err != nil {
		return asNotFound(err, "Reply", in.ReplyID)
	}
	if reply.UserID != in.ActorID && !in.Moderator {
		return models.NewUnauthorizedError("You can only delete your own replies")
	}

	if err := s.guardTopicMutable(ctx, reply.PostID); err != nil {
		return err
	}

	if err := s.replyRepo.SoftDelete(ctx, in.ReplyID, in.ActorID); err != nil {
		return asNotFound(err, "Reply", in.ReplyID)
	}
	return nil
}

func (s *ReplyService) RestoreReply(ctx context.Context, replyID uint, moderator bool) error {
	if !moderator {
		return models.NewUnauthorizedError("Only moderators can restore replies")
	}
	if err := s.replyRepo.Restore(ctx, replyID); err != nil {
		return asNotFound(err, "Reply", replyID)
	}
	return nil
}

// guardTopicMutable blocks mutation of content whose topic is archived.
func (s *ReplyService) guardTopicMutable(ctx context.Context, postID uint) error {
	post, err := s.postRepo.GetByID(ctx, postID, true)
	if err != nil {
		return asNotFound(err, "Post", postID)
	}
	topic, err := s.topicRepo.GetByID(ctx, post.TopicID)
	if err != nil {
		return asNotFound(err, "Topic", post.TopicID)
	}
	if topic.Status == models.TopicStatusArchived {
		return models.NewConflictError("Archived topics cannot be modified")
	}
	return nil
}
