package service

import (
	"context"

	"quorum/internal/models"
	"quorum/internal/query"
	"quorum/internal/repository"
)

// VoteService fronts the vote ledger: one vote per user per target, with
// idempotent cast and removal.
type VoteService struct {
	voteRepo repository.VoteRepository
	userRepo repository.UserRepository
}

type CastVoteInput struct {
	UserID     uint
	TargetKind models.VoteTarget
	TargetID   uint
	Polarity   models.VotePolarity
}

type RemoveVoteInput struct {
	UserID     uint
	TargetKind models.VoteTarget
	TargetID   uint
}

// VoteResult reports what a cast or removal did along with the vote row now
// in effect (nil after removal).
type VoteResult struct {
	Outcome repository.VoteOutcome `json:"outcome"`
	Vote    *models.Vote           `json:"vote,omitempty"`
}

// NewVoteService creates a new VoteService
func NewVoteService(voteRepo repository.VoteRepository, userRepo repository.UserRepository) *VoteService {
	return &VoteService{voteRepo: voteRepo, userRepo: userRepo}
}

func (s *VoteService) CastVote(ctx context.Context, in CastVoteInput) (*VoteResult, error) {
	if !models.ValidVoteTarget(in.TargetKind) {
		return nil, models.NewValidationError("Unknown vote target kind")
	}
	if in.Polarity != models.Upvote && in.Polarity != models.Downvote {
		return nil, models.NewValidationError("Vote value must be +1 or -1")
	}

	voter, err := s.userRepo.GetByID(ctx, in.UserID)
	if err != nil {
		return nil, asNotFound(err, "User", in.UserID)
	}
	if voter.IsBanned {
		return nil, models.NewUnauthorizedError("Banned users cannot vote")
	}

	outcome, err := s.voteRepo.Cast(ctx, in.UserID, in.TargetKind, in.TargetID, in.Polarity)
	if err != nil {
		return nil, asNotFound(err, string(in.TargetKind), in.TargetID)
	}

	vote, err := s.voteRepo.GetUserVote(ctx, in.UserID, in.TargetKind, in.TargetID)
	if err != nil {
		return nil, err
	}
	return &VoteResult{Outcome: outcome, Vote: vote}, nil
}

func (s *VoteService) RemoveVote(ctx context.Context, in RemoveVoteInput) (*VoteResult, error) {
	if !models.ValidVoteTarget(in.TargetKind) {
		return nil, models.NewValidationError("Unknown vote target kind")
	}

	outcome, err := s.voteRepo.Remove(ctx, in.UserID, in.TargetKind, in.TargetID)
	if err != nil {
		return nil, asNotFound(err, string(in.TargetKind), in.TargetID)
	}
	return &VoteResult{Outcome: outcome}, nil
}

// GetUserVote returns the caller's vote on a target, nil when absent.
func (s *VoteService) GetUserVote(ctx context.Context, userID uint, kind models.VoteTarget, targetID uint) (*models.Vote, error) {
	if !models.ValidVoteTarget(kind) {
		return nil, models.NewValidationError("Unknown vote target kind")
	}
	return s.voteRepo.GetUserVote(ctx, userID, kind, targetID)
}

func (s *VoteService) ListUserVotes(ctx context.Context, userID uint, page query.PageRequest) (*query.Page[*models.Vote], error) {
	items, count, err := s.voteRepo.ListForUser(ctx, userID, page)
	if err != nil {
		return nil, err
	}
	return &query.Page[*models.Vote]{Items: items, Count: count}, nil
}
