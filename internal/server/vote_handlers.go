package server

import (
	"quorum/internal/models"
	"quorum/internal/service"

	"github.com/gofiber/fiber/v2"
)

// CastVote records or flips the caller's vote on a target (protected)
func (s *Server) CastVote(c *fiber.Ctx) error {
	ctx := c.UserContext()

	var req struct {
		TargetKind models.VoteTarget `json:"target_kind"`
		TargetID   uint              `json:"target_id"`
		Value      int               `json:"value"`
	}
	if parseErr := c.BodyParser(&req); parseErr != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest, models.NewValidationError("Invalid request body"))
	}

	result, err := s.voteService.CastVote(ctx, service.CastVoteInput{
		UserID:     currentUserID(c),
		TargetKind: req.TargetKind,
		TargetID:   req.TargetID,
		Polarity:   models.VotePolarity(req.Value),
	})
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(result)
}

// RemoveVote retracts the caller's vote on a target (protected)
func (s *Server) RemoveVote(c *fiber.Ctx) error {
	ctx := c.UserContext()

	var req struct {
		TargetKind models.VoteTarget `json:"target_kind"`
		TargetID   uint              `json:"target_id"`
	}
	if parseErr := c.BodyParser(&req); parseErr != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest, models.NewValidationError("Invalid request body"))
	}

	result, err := s.voteService.RemoveVote(ctx, service.RemoveVoteInput{
		UserID:     currentUserID(c),
		TargetKind: req.TargetKind,
		TargetID:   req.TargetID,
	})
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(result)
}

// GetMyVote returns the caller's current vote on a target, if any (protected)
func (s *Server) GetMyVote(c *fiber.Ctx) error {
	ctx := c.UserContext()

	targetID := c.QueryInt("targetId")
	if targetID <= 0 {
		return models.RespondWithError(c, fiber.StatusBadRequest, models.NewValidationError("Invalid targetId"))
	}

	vote, err := s.voteService.GetUserVote(ctx, currentUserID(c),
		models.VoteTarget(c.Query("kind")), uint(targetID))
	if err != nil {
		return respondServiceError(c, err)
	}
	if vote == nil {
		return c.SendStatus(fiber.StatusNoContent)
	}
	return c.JSON(vote)
}

// ListMyVotes returns a page of the caller's votes, newest first (protected)
func (s *Server) ListMyVotes(c *fiber.Ctx) error {
	ctx := c.UserContext()

	page, err := s.voteService.ListUserVotes(ctx, currentUserID(c), parsePageRequest(c))
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(page)
}
