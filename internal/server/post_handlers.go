package server

import (
	"quorum/internal/models"
	"quorum/internal/service"

	"github.com/gofiber/fiber/v2"
)

// ListPosts returns a page of posts in a topic (public). Moderators also see
// soft-deleted rows.
func (s *Server) ListPosts(c *fiber.Ctx) error {
	ctx := c.UserContext()

	topicID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	page, err := s.postService.ListPosts(ctx, service.ListPostsInput{
		TopicID:   topicID,
		UserID:    uint(c.QueryInt("userId")),
		Moderator: isModerator(c),
		Page:      parsePageRequest(c),
	})
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(page)
}

// GetPost returns a single post (public)
func (s *Server) GetPost(c *fiber.Ctx) error {
	ctx := c.UserContext()

	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	post, err := s.postService.GetPost(ctx, id, isModerator(c))
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(post)
}

// CreatePost adds a post to a topic (protected)
func (s *Server) CreatePost(c *fiber.Ctx) error {
	ctx := c.UserContext()

	topicID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	var req struct {
		Content     string              `json:"content"`
		Attachments []models.Attachment `json:"attachments"`
	}
	if parseErr := c.BodyParser(&req); parseErr != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest, models.NewValidationError("Invalid request body"))
	}

	post, err := s.postService.CreatePost(ctx, service.CreatePostInput{
		UserID:      currentUserID(c),
		Moderator:   isModerator(c),
		TopicID:     topicID,
		Content:     req.Content,
		Attachments: req.Attachments,
	})
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(post)
}

// EditPost replaces a post's content, snapshotting the prior version into
// the edit trail (owner or moderator)
func (s *Server) EditPost(c *fiber.Ctx) error {
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

	post, err := s.postService.EditPost(ctx, service.EditPostInput{
		EditorID:  currentUserID(c),
		Moderator: isModerator(c),
		PostID:    id,
		Content:   req.Content,
	})
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(post)
}

// GetPostHistory returns the post's edit trail, oldest first (public)
func (s *Server) GetPostHistory(c *fiber.Ctx) error {
	ctx := c.UserContext()

	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	page, err := s.postService.PostHistory(ctx, id, parsePageRequest(c))
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(page)
}

// DeletePost soft deletes a post (owner or moderator)
func (s *Server) DeletePost(c *fiber.Ctx) error {
	ctx := c.UserContext()

	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	if err := s.postService.DeletePost(ctx, service.DeletePostInput{
		ActorID:   currentUserID(c),
		Moderator: isModerator(c),
		PostID:    id,
	}); err != nil {
		return respondServiceError(c, err)
	}
	return c.SendStatus(fiber.StatusOK)
}

// RestorePost reverses a soft delete (moderator only)
func (s *Server) RestorePost(c *fiber.Ctx) error {
	ctx := c.UserContext()

	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	if err := s.postService.RestorePost(ctx, id, isModerator(c)); err != nil {
		return respondServiceError(c, err)
	}
	return c.SendStatus(fiber.StatusOK)
}
