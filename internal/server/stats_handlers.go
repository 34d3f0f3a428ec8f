package server

import (
	"github.com/gofiber/fiber/v2"
)

// GetUserStats returns a user's activity rollup (public)
func (s *Server) GetUserStats(c *fiber.Ctx) error {
	ctx := c.UserContext()

	userID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	stats, err := s.statsService.GetUserStats(ctx, userID)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(stats)
}

// RecomputeUserStats rebuilds a user's rollup from the source tables and
// reports whether the stored row had drifted (moderator only)
func (s *Server) RecomputeUserStats(c *fiber.Ctx) error {
	ctx := c.UserContext()

	userID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	stats, drifted, err := s.statsService.RecomputeUserStats(ctx, userID)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(fiber.Map{"stats": stats, "drifted": drifted})
}
