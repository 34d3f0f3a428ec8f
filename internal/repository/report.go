package repository

import (
	"context"

	"quorum/internal/models"
	"quorum/internal/query"

	"gorm.io/gorm"
)

// ReportFilter holds list filters for reported content.
type ReportFilter struct {
	Status     models.ReportStatus
	ReportType models.ReportType
	Page       query.PageRequest
}

var reportSort = query.Sortable{
	Columns: map[string]string{
		"createdAt": "created_at",
		"status":    "status",
	},
	Default: "created_at desc",
}

// ReportRepository defines the interface for reported-content rows.
type ReportRepository interface {
	Create(ctx context.Context, report *models.ReportedContent) error
	GetByID(ctx context.Context, id uint) (*models.ReportedContent, error)
	GetByReference(ctx context.Context, reference string) (*models.ReportedContent, error)
	List(ctx context.Context, filter ReportFilter) ([]*models.ReportedContent, int64, error)
	// SetStatus applies a status transition, guarded on the current status.
	SetStatus(ctx context.Context, report *models.ReportedContent, next models.ReportStatus, updates map[string]interface{}) error
}

type reportRepository struct {
	db *gorm.DB
}

// NewReportRepository creates a new ReportRepository
func NewReportRepository(db *gorm.DB) ReportRepository {
	return &reportRepository{db: db}
}

func (r *reportRepository) Create(ctx context.Context, report *models.ReportedContent) error {
	return r.db.WithContext(ctx).Create(report).Error
}

func (r *reportRepository) GetByID(ctx context.Context, id uint) (*models.ReportedContent, error) {
	var report models.ReportedContent
	if err := r.db.WithContext(ctx).First(&report, id).Error; err != nil {
		return nil, err
	}
	return &report, nil
}

func (r *reportRepository) GetByReference(ctx context.Context, reference string) (*models.ReportedContent, error) {
	var report models.ReportedContent
	if err := r.db.WithContext(ctx).Where("reference = ?", reference).First(&report).Error; err != nil {
		return nil, err
	}
	return &report, nil
}

func (r *reportRepository) List(ctx context.Context, filter ReportFilter) ([]*models.ReportedContent, int64, error) {
	base := r.db.WithContext(ctx).Model(&models.ReportedContent{})
	if filter.Status != "" {
		base = base.Where("status = ?", filter.Status)
	}
	if filter.ReportType != "" {
		base = base.Where("report_type = ?", filter.ReportType)
	}

	var count int64
	if err := base.Count(&count).Error; err != nil {
		return nil, 0, err
	}

	var reports []*models.ReportedContent
	if err := query.Paginate(base, filter.Page, reportSort).Find(&reports).Error; err != nil {
		return nil, 0, err
	}
	return reports, count, nil
}

func (r *reportRepository) SetStatus(ctx context.Context, report *models.ReportedContent, next models.ReportStatus, updates map[string]interface{}) error {
	if updates == nil {
		updates = map[string]interface{}{}
	}
	updates["status"] = next

	res := r.db.WithContext(ctx).Model(&models.ReportedContent{}).
		Where("id = ? AND status = ?", report.ID, report.Status).
		Updates(updates)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	report.Status = next
	return nil
}
