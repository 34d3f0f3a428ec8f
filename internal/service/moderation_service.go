package service

import (
	"context"
	"strings"

	"quorum/internal/models"
	"quorum/internal/query"
	"quorum/internal/repository"
)

// ModerationService records moderator actions and applies their side
// effects. Every action writes an immutable log entry; content removals and
// bans commit their side effect with the entry or not at all.
type ModerationService struct {
	modRepo  repository.ModerationRepository
	userRepo repository.UserRepository
}

type RemoveContentInput struct {
	ModeratorID uint
	Kind        models.ContentKind
	ContentID   uint
	AuthorID    uint
	Details     string
}

type BanUserInput struct {
	ModeratorID  uint
	TargetUserID uint
	Details      string
}

type WarnUserInput struct {
	ModeratorID  uint
	TargetUserID uint
	Details      string
}

type ListModerationLogInput struct {
	ActionType   models.ModerationAction
	ModeratorID  uint
	TargetUserID uint
	Page         query.PageRequest
}

// NewModerationService creates a new ModerationService
func NewModerationService(modRepo repository.ModerationRepository, userRepo repository.UserRepository) *ModerationService {
	return &ModerationService{modRepo: modRepo, userRepo: userRepo}
}

func (s *ModerationService) requireModerator(ctx context.Context, userID uint) (*models.User, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, asNotFound(err, "User", userID)
	}
	if !user.IsModerator() {
		return nil, models.NewUnauthorizedError("Moderator role required")
	}
	return user, nil
}

// RemoveContent soft-deletes a post or reply and records the action.
func (s *ModerationService) RemoveContent(ctx context.Context, in RemoveContentInput) (*models.ModerationLogEntry, error) {
	if _, err := s.requireModerator(ctx, in.ModeratorID); err != nil {
		return nil, err
	}
	if in.Kind != models.ContentKindPost && in.Kind != models.ContentKindReply {
		return nil, models.NewValidationError("Unknown content kind")
	}

	// posts and replies both log as delete_comment; TargetKind carries which
	entry := &models.ModerationLogEntry{
		ActionType:  models.ActionDeleteComment,
		ModeratorID: in.ModeratorID,
		TargetKind:  &in.Kind,
		TargetID:    &in.ContentID,
		Details:     in.Details,
	}
	if in.AuthorID != 0 {
		entry.TargetUserID = &in.AuthorID
	}

	if err := s.modRepo.RecordContentRemoval(ctx, entry, in.Kind, in.ContentID); err != nil {
		return nil, asNotFound(err, string(in.Kind), in.ContentID)
	}
	return entry, nil
}

func (s *ModerationService) BanUser(ctx context.Context, in BanUserInput) (*models.ModerationLogEntry, error) {
	if _, err := s.requireModerator(ctx, in.ModeratorID); err != nil {
		return nil, err
	}
	if in.ModeratorID == in.TargetUserID {
		return nil, models.NewConflictError("Moderators cannot ban themselves")
	}
	if strings.TrimSpace(in.Details) == "" {
		return nil, models.NewValidationError("Ban reason is required")
	}
	if len(in.Details) > maxReasonLen {
		return nil, models.NewValidationError("Reason too long")
	}

	target, err := s.userRepo.GetByID(ctx, in.TargetUserID)
	if err != nil {
		return nil, asNotFound(err, "User", in.TargetUserID)
	}
	if target.IsBanned {
		return nil, models.NewConflictError("User is already banned")
	}

	entry := &models.ModerationLogEntry{
		ActionType:   models.ActionBanUser,
		ModeratorID:  in.ModeratorID,
		TargetUserID: &in.TargetUserID,
		Details:      in.Details,
	}
	if err := s.modRepo.RecordBan(ctx, entry, in.TargetUserID, true); err != nil {
		return nil, models.NewConsistencyError(err)
	}
	return entry, nil
}

func (s *ModerationService) UnbanUser(ctx context.Context, in BanUserInput) (*models.ModerationLogEntry, error) {
	if _, err := s.requireModerator(ctx, in.ModeratorID); err != nil {
		return nil, err
	}

	target, err := s.userRepo.GetByID(ctx, in.TargetUserID)
	if err != nil {
		return nil, asNotFound(err, "User", in.TargetUserID)
	}
	if !target.IsBanned {
		return nil, models.NewConflictError("User is not banned")
	}

	entry := &models.ModerationLogEntry{
		ActionType:   models.ActionUnbanUser,
		ModeratorID:  in.ModeratorID,
		TargetUserID: &in.TargetUserID,
		Details:      in.Details,
	}
	if err := s.modRepo.RecordBan(ctx, entry, in.TargetUserID, false); err != nil {
		return nil, models.NewConsistencyError(err)
	}
	return entry, nil
}

func (s *ModerationService) WarnUser(ctx context.Context, in WarnUserInput) (*models.ModerationLogEntry, error) {
	if _, err := s.requireModerator(ctx, in.ModeratorID); err != nil {
		return nil, err
	}
	if strings.TrimSpace(in.Details) == "" {
		return nil, models.NewValidationError("Warning details are required")
	}
	if len(in.Details) > maxReasonLen {
		return nil, models.NewValidationError("Details too long")
	}
	if _, err := s.userRepo.GetByID(ctx, in.TargetUserID); err != nil {
		return nil, asNotFound(err, "User", in.TargetUserID)
	}

	entry := &models.ModerationLogEntry{
		ActionType:   models.ActionWarnUser,
		ModeratorID:  in.ModeratorID,
		TargetUserID: &in.TargetUserID,
		Details:      in.Details,
	}
	if err := s.modRepo.Record(ctx, entry); err != nil {
		return nil, err
	}
	return entry, nil
}

// ListLog returns moderation log entries, newest first. Moderator only.
func (s *ModerationService) ListLog(ctx context.Context, actorID uint, in ListModerationLogInput) (*query.Page[*models.ModerationLogEntry], error) {
	if _, err := s.requireModerator(ctx, actorID); err != nil {
		return nil, err
	}
	items, count, err := s.modRepo.List(ctx, repository.ModerationFilter{
		ActionType:   in.ActionType,
		ModeratorID:  in.ModeratorID,
		TargetUserID: in.TargetUserID,
		Page:         in.Page,
	})
	if err != nil {
		return nil, err
	}
	return &query.Page[*models.ModerationLogEntry]{Items: items, Count: count}, nil
}
