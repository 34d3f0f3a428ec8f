// Package service contains the business logic for the forum engine. Services
// validate input, enforce permission and lifecycle rules, and delegate the
// transactional work to the repository layer.
package service

import (
	"errors"
	"strings"

	"quorum/internal/models"

	"gorm.io/gorm"
)

// Content limits enforced on user input.
const (
	maxTitleLen   = 300
	maxContentLen = 50000
	maxReasonLen  = 2000
	maxTagNameLen = 60
	maxTagsPerTopic = 8
)

// asNotFound converts a missing-row error into the domain's not-found shape;
// anything else passes through untouched.
func asNotFound(err error, resource string, id interface{}) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.NewNotFoundError(resource, id)
	}
	return err
}

func requireContent(content string, max int) error {
	if strings.TrimSpace(content) == "" {
		return models.NewValidationError("Content is required")
	}
	if len(content) > max {
		return models.NewValidationError("Content too long")
	}
	return nil
}
