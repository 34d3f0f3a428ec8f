package server

import (
	"github.com/gofiber/fiber/v2"
)

// WatchTopic subscribes the caller to a topic (protected)
func (s *Server) WatchTopic(c *fiber.Ctx) error {
	ctx := c.UserContext()

	topicID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	changed, err := s.watchService.Watch(ctx, currentUserID(c), topicID)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(fiber.Map{"watching": true, "changed": changed})
}

// UnwatchTopic removes the caller's subscription (protected)
func (s *Server) UnwatchTopic(c *fiber.Ctx) error {
	ctx := c.UserContext()

	topicID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	changed, err := s.watchService.Unwatch(ctx, currentUserID(c), topicID)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(fiber.Map{"watching": false, "changed": changed})
}

// GetWatchStatus reports whether the caller watches the topic (protected)
func (s *Server) GetWatchStatus(c *fiber.Ctx) error {
	ctx := c.UserContext()

	topicID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	watching, err := s.watchService.IsWatching(ctx, currentUserID(c), topicID)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(fiber.Map{"watching": watching})
}

// ListWatchedTopics returns the topics the caller watches, most recently
// watched first (protected)
func (s *Server) ListWatchedTopics(c *fiber.Ctx) error {
	ctx := c.UserContext()

	page, err := s.watchService.ListWatchedTopics(ctx, currentUserID(c), parsePageRequest(c))
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(page)
}

// ListWatchers returns the ids of every user watching a topic, for
// notification fan-out (moderator only)
func (s *Server) ListWatchers(c *fiber.Ctx) error {
	ctx := c.UserContext()

	topicID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	ids, err := s.watchService.Watchers(ctx, topicID)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(fiber.Map{"user_ids": ids})
}
