package models

import "time"

// ReportType is the kind of content a report refers to.
type ReportType string

const (
	ReportTypeReview  ReportType = "review"
	ReportTypeComment ReportType = "comment"
	ReportTypeUser    ReportType = "user"
	ReportTypeMessage ReportType = "message"
	ReportTypeOther   ReportType = "other"
)

// ValidReportType reports whether t names a supported report type.
func ValidReportType(t ReportType) bool {
	switch t {
	case ReportTypeReview, ReportTypeComment, ReportTypeUser, ReportTypeMessage, ReportTypeOther:
		return true
	}
	return false
}

// ReportStatus is the review state of a report.
type ReportStatus string

const (
	ReportStatusPending  ReportStatus = "pending"
	ReportStatusReviewed ReportStatus = "reviewed"
	ReportStatusResolved ReportStatus = "resolved"
	ReportStatusRejected ReportStatus = "rejected"
)

// ReportedContent is a user-filed report against content or another user.
// Reference is an opaque token safe to hand to reporters so they can check
// status without exposing row ids.
type ReportedContent struct {
	ID         uint         `gorm:"primaryKey" json:"id"`
	Reference  string       `gorm:"size:36;not null;uniqueIndex" json:"reference"`
	ReportType ReportType   `gorm:"type:varchar(20);not null;index" json:"report_type"`
	Reason     string       `gorm:"type:text;not null" json:"reason"`
	Status     ReportStatus `gorm:"type:varchar(20);not null;default:'pending';index" json:"status"`

	ContentID       *uint `json:"content_id,omitempty"`
	ReportingUserID uint  `gorm:"not null;index" json:"reporting_user_id"`
	ReportedUserID  *uint `gorm:"index" json:"reported_user_id,omitempty"`

	ResolutionDetails string     `gorm:"type:text" json:"resolution_details,omitempty"`
	ResolvedByID      *uint      `json:"resolved_by_id,omitempty"`
	ResolvedAt        *time.Time `json:"resolved_at,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// CanTransitionTo reports whether the report status lattice permits moving to
// next: Pending to Reviewed to Resolved or Rejected, with Pending allowed to jump
// straight to a terminal state.
func (r *ReportedContent) CanTransitionTo(next ReportStatus) bool {
	switch r.Status {
	case ReportStatusPending:
		return next == ReportStatusReviewed || next == ReportStatusResolved || next == ReportStatusRejected
	case ReportStatusReviewed:
		return next == ReportStatusResolved || next == ReportStatusRejected
	}
	return false
}
