package service

import (
	"context"
	"regexp"
	"strings"

	"quorum/internal/cache"
	"quorum/internal/models"
	"quorum/internal/query"
	"quorum/internal/repository"
)

var slugPattern = regexp.MustCompile(`^[a-z0-9]+(-[a-z0-9]+)*$`)

// CategoryService manages the category tree.
type CategoryService struct {
	categoryRepo repository.CategoryRepository
}

type CreateCategoryInput struct {
	Name         string
	Slug         string
	Description  string
	DisplayOrder int
}

type UpdateCategoryInput struct {
	CategoryID   uint
	Name         string
	Description  string
	DisplayOrder *int
}

type ListCategoriesInput struct {
	Name      string
	Moderator bool
	Page      query.PageRequest
}

// NewCategoryService creates a new CategoryService
func NewCategoryService(categoryRepo repository.CategoryRepository) *CategoryService {
	return &CategoryService{categoryRepo: categoryRepo}
}

// Slugify derives a URL slug from a category name.
func Slugify(name string) string {
	s := strings.ToLower(strings.TrimSpace(name))
	s = regexp.MustCompile(`[^a-z0-9]+`).ReplaceAllString(s, "-")
	return strings.Trim(s, "-")
}

func (s *CategoryService) CreateCategory(ctx context.Context, in CreateCategoryInput) (*models.Category, error) {
	if strings.TrimSpace(in.Name) == "" {
		return nil, models.NewValidationError("Name is required")
	}
	slug := in.Slug
	if slug == "" {
		slug = Slugify(in.Name)
	}
	if !slugPattern.MatchString(slug) {
		return nil, models.NewValidationError("Slug must be lowercase letters, digits, and hyphens")
	}

	if _, err := s.categoryRepo.GetBySlug(ctx, slug); err == nil {
		return nil, models.NewConflictError("A category with this slug already exists")
	}

	category := &models.Category{
		Name:         in.Name,
		Slug:         slug,
		Description:  in.Description,
		DisplayOrder: in.DisplayOrder,
		IsActive:     true,
	}
	if err := s.categoryRepo.Create(ctx, category); err != nil {
		return nil, err
	}
	return category, nil
}

func (s *CategoryService) GetCategory(ctx context.Context, id uint) (*models.Category, error) {
	var category models.Category
	err := cache.Aside(ctx, cache.CategoryKey(id), &category, cache.CategoryTTL, func() error {
		fetched, err := s.categoryRepo.GetByID(ctx, id)
		if err != nil {
			return err
		}
		category = *fetched
		return nil
	})
	if err != nil {
		return nil, asNotFound(err, "Category", id)
	}
	return &category, nil
}

func (s *CategoryService) GetCategoryBySlug(ctx context.Context, slug string) (*models.Category, error) {
	category, err := s.categoryRepo.GetBySlug(ctx, slug)
	if err != nil {
		return nil, asNotFound(err, "Category", slug)
	}
	return category, nil
}

// ListCategories returns a page of categories. Inactive categories only show
// up for moderator-scoped requests. The unfiltered public first page is
// served cache-aside.
func (s *CategoryService) ListCategories(ctx context.Context, in ListCategoriesInput) (*query.Page[*models.Category], error) {
	filter := repository.CategoryFilter{
		Name:            in.Name,
		IncludeInactive: in.Moderator,
		Page:            in.Page.Normalize(),
	}

	cacheable := !in.Moderator && in.Name == "" && filter.Page.Page == 1 &&
		filter.Page.PerPage == query.DefaultPerPage && filter.Page.SortBy == ""
	if cacheable {
		var page query.Page[*models.Category]
		err := cache.Aside(ctx, cache.CategoryListKey(), &page, cache.CategoryListTTL, func() error {
			items, count, err := s.categoryRepo.List(ctx, filter)
			if err != nil {
				return err
			}
			page = query.Page[*models.Category]{Items: items, Count: count}
			return nil
		})
		if err != nil {
			return nil, err
		}
		return &page, nil
	}

	items, count, err := s.categoryRepo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	return &query.Page[*models.Category]{Items: items, Count: count}, nil
}

func (s *CategoryService) UpdateCategory(ctx context.Context, in UpdateCategoryInput) (*models.Category, error) {
	category, err := s.categoryRepo.GetByID(ctx, in.CategoryID)
	if err != nil {
		return nil, asNotFound(err, "Category", in.CategoryID)
	}

	if in.Name != "" {
		category.Name = in.Name
	}
	if in.Description != "" {
		category.Description = in.Description
	}
	if in.DisplayOrder != nil {
		category.DisplayOrder = *in.DisplayOrder
	}

	if err := s.categoryRepo.Update(ctx, category); err != nil {
		return nil, err
	}
	return category, nil
}

// SetCategoryActive hides or restores a category. Deactivation never touches
// the topics underneath; they simply stop appearing in public listings.
func (s *CategoryService) SetCategoryActive(ctx context.Context, id uint, active bool) error {
	if _, err := s.categoryRepo.GetByID(ctx, id); err != nil {
		return asNotFound(err, "Category", id)
	}
	return s.categoryRepo.SetActive(ctx, id, active)
}
