package server

import (
	"errors"

	"quorum/internal/models"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// ListTags returns a page of tags, optionally filtered by name (public)
func (s *Server) ListTags(c *fiber.Ctx) error {
	ctx := c.UserContext()

	tags, count, err := s.tagRepo.List(ctx, c.Query("name"), parsePageRequest(c))
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(fiber.Map{"items": tags, "count": count})
}

// DeleteTag removes a tag, detaching it from all topics (moderator only)
func (s *Server) DeleteTag(c *fiber.Ctx) error {
	ctx := c.UserContext()

	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	if err := s.tagRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.RespondWithError(c, fiber.StatusNotFound,
				models.NewNotFoundError("Tag", id))
		}
		return respondServiceError(c, err)
	}
	return c.SendStatus(fiber.StatusOK)
}
