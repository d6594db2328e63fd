package auditlog

import (
	"time"

	"gorm.io/datatypes"
)

// AuditLog is one append-only trail entry. Rows are never updated or
// deleted after creation.
type AuditLog struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	UserID    *uint          `gorm:"index" json:"userId,omitempty"`
	RefID     *uint          `gorm:"index" json:"refId,omitempty"`
	Scope     string         `gorm:"size:20;index" json:"scope"`
	Action    string         `gorm:"size:60;not null;index" json:"action"`
	Details   datatypes.JSON `json:"details,omitempty"`
	IPAddress string         `gorm:"size:45" json:"ipAddress,omitempty"`
	Status    string         `gorm:"size:20" json:"status"`
	CreatedAt time.Time      `gorm:"index" json:"createdAt"`
}

// Action vocabulary. Details carry the per-action payload.
const (
	ActionSignup        = "SIGNUP"
	ActionLogin         = "LOGIN"
	ActionDraftSaved    = "DRAFT_SAVED"
	ActionSubmitted     = "SUBMITTED"
	ActionCreated       = "CREATED"
	ActionApproved      = "APPROVED"
	ActionObserved      = "OBSERVED"
	ActionChangeRequest = "CHANGE_REQUESTED"
	ActionUpload        = "UPLOAD"
	ActionExport        = "EXPORT"
)

const (
	StatusSuccess = "SUCCESS"
	StatusFailure = "FAILURE"
)
