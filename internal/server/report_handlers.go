package server

import (
	"quorum/internal/models"
	"quorum/internal/service"

	"github.com/gofiber/fiber/v2"
)

// FileReport files a report against content or a user; the response carries
// the opaque reference the reporter uses to check status later (protected)
func (s *Server) FileReport(c *fiber.Ctx) error {
	ctx := c.UserContext()

	var req struct {
		ReportType     models.ReportType `json:"report_type"`
		Reason         string            `json:"reason"`
		ContentID      *uint             `json:"content_id"`
		ReportedUserID *uint             `json:"reported_user_id"`
	}
	if parseErr := c.BodyParser(&req); parseErr != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest, models.NewValidationError("Invalid request body"))
	}

	report, err := s.reportService.FileReport(ctx, service.FileReportInput{
		ReportingUserID: currentUserID(c),
		ReportType:      req.ReportType,
		Reason:          req.Reason,
		ContentID:       req.ContentID,
		ReportedUserID:  req.ReportedUserID,
	})
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(report)
}

// GetReportByReference returns a report by its opaque reference. Reporters
// see their own reports; moderators see all (protected)
func (s *Server) GetReportByReference(c *fiber.Ctx) error {
	ctx := c.UserContext()

	report, err := s.reportService.GetReportByReference(ctx,
		c.Params("reference"), currentUserID(c), isModerator(c))
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(report)
}

// ListReports returns a filtered page of reports (moderator only)
func (s *Server) ListReports(c *fiber.Ctx) error {
	ctx := c.UserContext()

	page, err := s.reportService.ListReports(ctx, isModerator(c), service.ListReportsInput{
		Status:     models.ReportStatus(c.Query("status")),
		ReportType: models.ReportType(c.Query("type")),
		Page:       parsePageRequest(c),
	})
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(page)
}

// ResolveReport moves a report through its review lifecycle (moderator only)
func (s *Server) ResolveReport(c *fiber.Ctx) error {
	ctx := c.UserContext()

	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	var req struct {
		Status            models.ReportStatus `json:"status"`
		ResolutionDetails string              `json:"resolution_details"`
	}
	if parseErr := c.BodyParser(&req); parseErr != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest, models.NewValidationError("Invalid request body"))
	}

	report, err := s.reportService.ResolveReport(ctx, service.ResolveReportInput{
		ModeratorID:       currentUserID(c),
		ReportID:          id,
		Status:            req.Status,
		ResolutionDetails: req.ResolutionDetails,
	})
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(report)
}
