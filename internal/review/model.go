package review

import "time"

// Decision is one immutable review verdict. A record accumulates
// decisions over its lifetime; rows are never updated or deleted.
type Decision struct {
	ID           uint   `gorm:"primaryKey" json:"id"`
	Scope        string `gorm:"size:20;not null;index:idx_decisions_ref" json:"scope"`
	RefID        uint   `gorm:"not null;index:idx_decisions_ref" json:"refId"`
	TargetUserID uint   `gorm:"not null;index" json:"targetUserId"`
	ReviewerID   uint   `gorm:"not null" json:"reviewerId"`
	Verdict      string `gorm:"size:30;not null" json:"verdict"`
	Comment      string `gorm:"type:text" json:"comment,omitempty"`
	ActaURL      string `gorm:"size:500" json:"actaUrl,omitempty"`

	CreatedAt time.Time `gorm:"index" json:"createdAt"`
}
