package service

import (
	"context"
	"strings"
	"time"

	"quorum/internal/models"
	"quorum/internal/query"
	"quorum/internal/repository"

	"github.com/google/uuid"
)

// ReportService owns the report workflow: filing, triage, and resolution.
type ReportService struct {
	reportRepo repository.ReportRepository
	userRepo   repository.UserRepository
}

type FileReportInput struct {
	ReportingUserID uint
	ReportType      models.ReportType
	Reason          string
	ContentID       *uint
	ReportedUserID  *uint
}

type ResolveReportInput struct {
	ModeratorID       uint
	ReportID          uint
	Status            models.ReportStatus
	ResolutionDetails string
}

type ListReportsInput struct {
	Status     models.ReportStatus
	ReportType models.ReportType
	Page       query.PageRequest
}

// NewReportService creates a new ReportService
func NewReportService(reportRepo repository.ReportRepository, userRepo repository.UserRepository) *ReportService {
	return &ReportService{reportRepo: reportRepo, userRepo: userRepo}
}

// FileReport creates a pending report and hands back an opaque reference the
// reporter can use to check status later.
func (s *ReportService) FileReport(ctx context.Context, in FileReportInput) (*models.ReportedContent, error) {
	if !models.ValidReportType(in.ReportType) {
		return nil, models.NewValidationError("Unknown report type")
	}
	if strings.TrimSpace(in.Reason) == "" {
		return nil, models.NewValidationError("Reason is required")
	}
	if len(in.Reason) > maxReasonLen {
		return nil, models.NewValidationError("Reason too long")
	}
	if in.ReportType == models.ReportTypeUser && in.ReportedUserID == nil {
		return nil, models.NewValidationError("User reports must name a user")
	}

	if _, err := s.userRepo.GetByID(ctx, in.ReportingUserID); err != nil {
		return nil, asNotFound(err, "User", in.ReportingUserID)
	}

	report := &models.ReportedContent{
		Reference:       uuid.NewString(),
		ReportType:      in.ReportType,
		Reason:          in.Reason,
		Status:          models.ReportStatusPending,
		ContentID:       in.ContentID,
		ReportingUserID: in.ReportingUserID,
		ReportedUserID:  in.ReportedUserID,
	}
	if err := s.reportRepo.Create(ctx, report); err != nil {
		return nil, err
	}
	return report, nil
}

// GetReportByReference lets the original reporter check status. Moderators
// may look up any report; reporters only their own.
func (s *ReportService) GetReportByReference(ctx context.Context, reference string, actorID uint, moderator bool) (*models.ReportedContent, error) {
	report, err := s.reportRepo.GetByReference(ctx, reference)
	if err != nil {
		return nil, asNotFound(err, "Report", reference)
	}
	if !moderator && report.ReportingUserID != actorID {
		return nil, models.NewUnauthorizedError("You can only view your own reports")
	}
	return report, nil
}

func (s *ReportService) ListReports(ctx context.Context, moderator bool, in ListReportsInput) (*query.Page[*models.ReportedContent], error) {
	if !moderator {
		return nil, models.NewUnauthorizedError("Moderator role required")
	}
	items, count, err := s.reportRepo.List(ctx, repository.ReportFilter{
		Status:     in.Status,
		ReportType: in.ReportType,
		Page:       in.Page,
	})
	if err != nil {
		return nil, err
	}
	return &query.Page[*models.ReportedContent]{Items: items, Count: count}, nil
}

// ResolveReport moves a report along its status lattice. Terminal states
// record who resolved it and when.
func (s *ReportService) ResolveReport(ctx context.Context, in ResolveReportInput) (*models.ReportedContent, error) {
	moderator, err := s.userRepo.GetByID(ctx, in.ModeratorID)
	if err != nil {
		return nil, asNotFound(err, "User", in.ModeratorID)
	}
	if !moderator.IsModerator() {
		return nil, models.NewUnauthorizedError("Moderator role required")
	}

	report, err := s.reportRepo.GetByID(ctx, in.ReportID)
	if err != nil {
		return nil, asNotFound(err, "Report", in.ReportID)
	}
	if !report.CanTransitionTo(in.Status) {
		return nil, models.NewConflictError("Invalid report status transition")
	}

	updates := map[string]interface{}{}
	if in.Status == models.ReportStatusResolved || in.Status == models.ReportStatusRejected {
		now := time.Now().UTC()
		updates["resolved_by_id"] = in.ModeratorID
		updates["resolved_at"] = now
		updates["resolution_details"] = in.ResolutionDetails
	}

	if err := s.reportRepo.SetStatus(ctx, report, in.Status, updates); err != nil {
		return nil, models.NewConflictError("Report was updated concurrently")
	}
	return s.reportRepo.GetByID(ctx, in.ReportID)
}
