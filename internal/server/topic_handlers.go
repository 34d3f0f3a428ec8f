package server

import (
	"quorum/internal/models"
	"quorum/internal/service"

	"github.com/gofiber/fiber/v2"
)

// ListTopics returns a page of topics, pinned first (public)
func (s *Server) ListTopics(c *fiber.Ctx) error {
	ctx := c.UserContext()

	page, err := s.topicService.ListTopics(ctx, service.ListTopicsInput{
		CategoryID: uint(c.QueryInt("categoryId")),
		UserID:     uint(c.QueryInt("userId")),
		Status:     models.TopicStatus(c.Query("status")),
		Title:      c.Query("title"),
		TagID:      uint(c.QueryInt("tagId")),
		Page:       parsePageRequest(c),
	})
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(page)
}

// GetTopic returns a single topic and counts the view (public)
func (s *Server) GetTopic(c *fiber.Ctx) error {
	ctx := c.UserContext()

	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	topic, err := s.topicService.GetTopic(ctx, id, true)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(topic)
}

// CreateTopic opens a new thread (protected)
func (s *Server) CreateTopic(c *fiber.Ctx) error {
	ctx := c.UserContext()
	userID := currentUserID(c)

	var req struct {
		CategoryID uint     `json:"category_id"`
		Title      string   `json:"title"`
		Content    string   `json:"content"`
		Tags       []string `json:"tags"`
	}
	if parseErr := c.BodyParser(&req); parseErr != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest, models.NewValidationError("Invalid request body"))
	}

	topic, err := s.topicService.CreateTopic(ctx, service.CreateTopicInput{
		UserID:     userID,
		CategoryID: req.CategoryID,
		Title:      req.Title,
		Content:    req.Content,
		Tags:       req.Tags,
	})
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(topic)
}

// UpdateTopic edits title/content (author or moderator)
func (s *Server) UpdateTopic(c *fiber.Ctx) error {
	ctx := c.UserContext()

	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	var req struct {
		Title   string `json:"title"`
		Content string `json:"content"`
	}
	if parseErr := c.BodyParser(&req); parseErr != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest, models.NewValidationError("Invalid request body"))
	}

	topic, err := s.topicService.UpdateTopic(ctx, service.UpdateTopicInput{
		UserID:    currentUserID(c),
		Moderator: isModerator(c),
		TopicID:   id,
		Title:     req.Title,
		Content:   req.Content,
	})
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(topic)
}

// TransitionTopic moves a topic through its lifecycle (moderator only,
// enforced by the service)
func (s *Server) TransitionTopic(c *fiber.Ctx) error {
	ctx := c.UserContext()

	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	var req struct {
		Status models.TopicStatus `json:"status"`
	}
	if parseErr := c.BodyParser(&req); parseErr != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest, models.NewValidationError("Invalid request body"))
	}

	topic, err := s.topicService.TransitionTopic(ctx, service.TransitionTopicInput{
		ActorID:   currentUserID(c),
		Moderator: isModerator(c),
		TopicID:   id,
		Status:    req.Status,
	})
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(topic)
}

// MarkAnswer marks a post as the topic's accepted answer (author or moderator)
func (s *Server) MarkAnswer(c *fiber.Ctx) error {
	ctx := c.UserContext()

	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	var req struct {
		PostID uint `json:"post_id"`
	}
	if parseErr := c.BodyParser(&req); parseErr != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest, models.NewValidationError("Invalid request body"))
	}

	if err := s.topicService.MarkAnswer(ctx, service.MarkAnswerInput{
		ActorID:   currentUserID(c),
		Moderator: isModerator(c),
		TopicID:   id,
		PostID:    req.PostID,
	}); err != nil {
		return respondServiceError(c, err)
	}
	return c.SendStatus(fiber.StatusOK)
}

// UnmarkAnswer clears the topic's accepted answer (author or moderator)
func (s *Server) UnmarkAnswer(c *fiber.Ctx) error {
	ctx := c.UserContext()

	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	if err := s.topicService.UnmarkAnswer(ctx, service.MarkAnswerInput{
		ActorID:   currentUserID(c),
		Moderator: isModerator(c),
		TopicID:   id,
	}); err != nil {
		return respondServiceError(c, err)
	}
	return c.SendStatus(fiber.StatusOK)
}

// PinTopic pins a topic to the top of its listings (moderator only)
func (s *Server) PinTopic(c *fiber.Ctx) error {
	return s.setTopicPinned(c, true)
}

// UnpinTopic removes the pin (moderator only)
func (s *Server) UnpinTopic(c *fiber.Ctx) error {
	return s.setTopicPinned(c, false)
}

func (s *Server) setTopicPinned(c *fiber.Ctx, pinned bool) error {
	ctx := c.UserContext()

	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	if err := s.topicService.SetPinned(ctx, id, pinned, isModerator(c)); err != nil {
		return respondServiceError(c, err)
	}
	return c.SendStatus(fiber.StatusOK)
}

// LockTopic blocks new content without closing the topic (moderator only)
func (s *Server) LockTopic(c *fiber.Ctx) error {
	return s.setTopicLocked(c, true)
}

// UnlockTopic lifts the lock (moderator only)
func (s *Server) UnlockTopic(c *fiber.Ctx) error {
	return s.setTopicLocked(c, false)
}

func (s *Server) setTopicLocked(c *fiber.Ctx, locked bool) error {
	ctx := c.UserContext()

	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	if err := s.topicService.SetLocked(ctx, id, locked, isModerator(c)); err != nil {
		return respondServiceError(c, err)
	}
	return c.SendStatus(fiber.StatusOK)
}
