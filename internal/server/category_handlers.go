package server

import (
	"quorum/internal/models"
	"quorum/internal/service"

	"github.com/gofiber/fiber/v2"
)

// ListCategories returns a page of categories (public). Moderators also see
// deactivated ones.
func (s *Server) ListCategories(c *fiber.Ctx) error {
	ctx := c.UserContext()

	page, err := s.categoryService.ListCategories(ctx, service.ListCategoriesInput{
		Name:      c.Query("name"),
		Moderator: isModerator(c),
		Page:      parsePageRequest(c),
	})
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(page)
}

// GetCategory returns a single category by id (public)
func (s *Server) GetCategory(c *fiber.Ctx) error {
	ctx := c.UserContext()

	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	category, err := s.categoryService.GetCategory(ctx, id)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(category)
}

// GetCategoryBySlug returns a single category by slug (public)
func (s *Server) GetCategoryBySlug(c *fiber.Ctx) error {
	ctx := c.UserContext()

	category, err := s.categoryService.GetCategoryBySlug(ctx, c.Params("slug"))
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(category)
}

// CreateCategory creates a category (moderator only)
func (s *Server) CreateCategory(c *fiber.Ctx) error {
	ctx := c.UserContext()

	var req struct {
		Name         string `json:"name"`
		Slug         string `json:"slug"`
		Description  string `json:"description"`
		DisplayOrder int    `json:"display_order"`
	}
	if parseErr := c.BodyParser(&req); parseErr != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest, models.NewValidationError("Invalid request body"))
	}

	category, err := s.categoryService.CreateCategory(ctx, service.CreateCategoryInput{
		Name:         req.Name,
		Slug:         req.Slug,
		Description:  req.Description,
		DisplayOrder: req.DisplayOrder,
	})
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(category)
}

// UpdateCategory updates name/description/display order (moderator only)
func (s *Server) UpdateCategory(c *fiber.Ctx) error {
	ctx := c.UserContext()

	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	var req struct {
		Name         string `json:"name"`
		Description  string `json:"description"`
		DisplayOrder *int   `json:"display_order"`
	}
	if parseErr := c.BodyParser(&req); parseErr != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest, models.NewValidationError("Invalid request body"))
	}

	category, err := s.categoryService.UpdateCategory(ctx, service.UpdateCategoryInput{
		CategoryID:   id,
		Name:         req.Name,
		Description:  req.Description,
		DisplayOrder: req.DisplayOrder,
	})
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(category)
}

// ActivateCategory re-enables a deactivated category (moderator only)
func (s *Server) ActivateCategory(c *fiber.Ctx) error {
	return s.setCategoryActive(c, true)
}

// DeactivateCategory hides a category from public listings (moderator only)
func (s *Server) DeactivateCategory(c *fiber.Ctx) error {
	return s.setCategoryActive(c, false)
}

func (s *Server) setCategoryActive(c *fiber.Ctx, active bool) error {
	ctx := c.UserContext()

	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	if err := s.categoryService.SetCategoryActive(ctx, id, active); err != nil {
		return respondServiceError(c, err)
	}
	return c.SendStatus(fiber.StatusOK)
}

// RecountCategory rebuilds the category's denormalized counters from the
// topic and post tables (moderator only)
func (s *Server) RecountCategory(c *fiber.Ctx) error {
	ctx := c.UserContext()

	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	if err := s.statsService.RecomputeCategoryCounters(ctx, id); err != nil {
		return respondServiceError(c, err)
	}
	return c.SendStatus(fiber.StatusOK)
}
