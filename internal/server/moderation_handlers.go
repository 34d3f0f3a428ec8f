package server

import (
	"quorum/internal/models"
	"quorum/internal/service"

	"github.com/gofiber/fiber/v2"
)

// RemoveContent soft deletes a post or reply and writes the moderation log
// entry in the same transaction (moderator only)
func (s *Server) RemoveContent(c *fiber.Ctx) error {
	ctx := c.UserContext()

	var req struct {
		Kind      models.ContentKind `json:"kind"`
		ContentID uint               `json:"content_id"`
		AuthorID  uint               `json:"author_id"`
		Details   string             `json:"details"`
	}
	if parseErr := c.BodyParser(&req); parseErr != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest, models.NewValidationError("Invalid request body"))
	}

	entry, err := s.moderationService.RemoveContent(ctx, service.RemoveContentInput{
		ModeratorID: currentUserID(c),
		Kind:        req.Kind,
		ContentID:   req.ContentID,
		AuthorID:    req.AuthorID,
		Details:     req.Details,
	})
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(entry)
}

// BanUser bans a user and records the action (moderator only)
func (s *Server) BanUser(c *fiber.Ctx) error {
	return s.applyBan(c, true)
}

// UnbanUser lifts a ban and records the action (moderator only)
func (s *Server) UnbanUser(c *fiber.Ctx) error {
	return s.applyBan(c, false)
}

func (s *Server) applyBan(c *fiber.Ctx, ban bool) error {
	ctx := c.UserContext()

	targetID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	var req struct {
		Details string `json:"details"`
	}
	if parseErr := c.BodyParser(&req); parseErr != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest, models.NewValidationError("Invalid request body"))
	}

	in := service.BanUserInput{
		ModeratorID:  currentUserID(c),
		TargetUserID: targetID,
		Details:      req.Details,
	}

	var entry *models.ModerationLogEntry
	if ban {
		entry, err = s.moderationService.BanUser(ctx, in)
	} else {
		entry, err = s.moderationService.UnbanUser(ctx, in)
	}
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(entry)
}

// WarnUser records a warning against a user (moderator only)
func (s *Server) WarnUser(c *fiber.Ctx) error {
	ctx := c.UserContext()

	targetID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	var req struct {
		Details string `json:"details"`
	}
	if parseErr := c.BodyParser(&req); parseErr != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest, models.NewValidationError("Invalid request body"))
	}

	entry, err := s.moderationService.WarnUser(ctx, service.WarnUserInput{
		ModeratorID:  currentUserID(c),
		TargetUserID: targetID,
		Details:      req.Details,
	})
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(entry)
}

// GetModerationLog returns a filtered page of the moderation log
// (moderator only)
func (s *Server) GetModerationLog(c *fiber.Ctx) error {
	ctx := c.UserContext()

	page, err := s.moderationService.ListLog(ctx, currentUserID(c), service.ListModerationLogInput{
		ActionType:   models.ModerationAction(c.Query("action")),
		ModeratorID:  uint(c.QueryInt("moderatorId")),
		TargetUserID: uint(c.QueryInt("targetUserId")),
		Page:         parsePageRequest(c),
	})
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(page)
}
