package server

import (
	"quorum/internal/models"
	"quorum/internal/service"

	"github.com/gofiber/fiber/v2"
)

// ListReplies returns a page of replies on a post (public)
func (s *Server) ListReplies(c *fiber.Ctx) error {
	ctx := c.UserContext()

	postID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	page, err := s.replyService.ListReplies(ctx, service.ListRepliesInput{
		PostID:    postID,
		Moderator: isModerator(c),
		Page:      parsePageRequest(c),
	})
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(page)
}

// GetReply returns a single reply (public)
func (s *Server) GetReply(c *fiber.Ctx) error {
	ctx := c.UserContext()

	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	reply, err := s.replyService.GetReply(ctx, id, isModerator(c))
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(reply)
}

// CreateReply attaches a reply to a post (protected)
func (s *Server) CreateReply(c *fiber.Ctx) error {
	ctx := c.UserContext()

	postID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	var req struct {
		Content string `json:"content"`
	}
	if parseErr := c.BodyParser(&req); parseErr != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest, models.NewValidationError("Invalid request body"))
	}

	reply, err := s.replyService.CreateReply(ctx, service.CreateReplyInput{
		UserID:    currentUserID(c),
		Moderator: isModerator(c),
		PostID:    postID,
		Content:   req.Content,
	})
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(reply)
}

// EditReply replaces a reply's content, snapshotting the prior version
// (owner or moderator)
func (s *Server) EditReply(c *fiber.Ctx) error {
	ctx := c.UserContext()

	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	var req struct {
		Content string `json:"content"`
	}
	if parseErr := c.BodyParser(&req); parseErr != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest, models.NewValidationError("Invalid request body"))
	}

	reply, err := s.replyService.EditReply(ctx, service.EditReplyInput{
		EditorID:  currentUserID(c),
		Moderator: isModerator(c),
		ReplyID:   id,
		Content:   req.Content,
	})
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(reply)
}

// GetReplyHistory returns the reply's edit trail, oldest first (public)
func (s *Server) GetReplyHistory(c *fiber.Ctx) error {
	ctx := c.UserContext()

	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	page, err := s.replyService.ReplyHistory(ctx, id, parsePageRequest(c))
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(page)
}

// DeleteReply soft deletes a reply (owner or moderator)
func (s *Server) DeleteReply(c *fiber.Ctx) error {
	ctx := c.UserContext()

	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	if err := s.replyService.DeleteReply(ctx, service.DeleteReplyInput{
		ActorID:   currentUserID(c),
		Moderator: isModerator(c),
		ReplyID:   id,
	}); err != nil {
		return respondServiceError(c, err)
	}
	return c.SendStatus(fiber.StatusOK)
}

// RestoreReply reverses a soft delete (moderator only)
func (s *Server) RestoreReply(c *fiber.Ctx) error {
	ctx := c.UserContext()

	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	if err := s.replyService.RestoreReply(ctx, id, isModerator(c)); err != nil {
		return respondServiceError(c, err)
	}
	return c.SendStatus(fiber.StatusOK)
}
