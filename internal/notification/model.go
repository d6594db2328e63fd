package notification

import "time"

// InboxItem is one in-app notification for an applicant.
type InboxItem struct {
	ID      uint   `gorm:"primaryKey" json:"id"`
	UserID  uint   `gorm:"not null;index" json:"userId"`
	Scope   string `gorm:"size:20" json:"scope"`
	RefID   *uint  `json:"refId,omitempty"`
	Title   string `gorm:"size:200;not null" json:"title"`
	Body    string `gorm:"type:text" json:"body"`
	ActaURL string `gorm:"size:500" json:"actaUrl,omitempty"`
	Read    bool   `gorm:"not null;default:false" json:"read"`

	CreatedAt time.Time `gorm:"index" json:"createdAt"`
}

// DecisionEvent is the message published when staff decide on a
// submission. It carries everything the consumer needs to notify the
// applicant without further lookups.
type DecisionEvent struct {
	UserID   uint   `json:"userId"`
	Email    string `json:"email"`
	Scope    string `json:"scope"`
	RefID    uint   `json:"refId"`
	Title    string `json:"title"`
	Decision string `json:"decision"`
	Comment  string `json:"comment,omitempty"`
	ActaURL  string `json:"actaUrl,omitempty"`
}
