package auditlog

import (
	"context"
	"encoding/json"
	"log"
	"math"
)

type Paginated struct {
	Data       []AuditLog `json:"data"`
	Total      int64      `json:"total"`
	Page       int        `json:"page"`
	Limit      int        `json:"limit"`
	TotalPages int        `json:"totalPages"`
}

type Service interface {
	LogAction(ctx context.Context, userID *uint, refID *uint, scope string, action string, details map[string]interface{}, ip string, status string)
	HistoryForUser(ctx context.Context, userID uint, page, limit int) (*Paginated, error)
	List(ctx context.Context, filter Filter) (*Paginated, error)
}

type service struct{ repo Repository }

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

// LogAction appends one trail entry. Failures are logged but never
// propagate, the business operation must not fail because of the trail.
func (s *service) LogAction(ctx context.Context, userID *uint, refID *uint, scope string, action string, details map[string]interface{}, ip string, status string) {
	if details == nil {
		details = map[string]interface{}{}
	}
	detailsJSON, err := json.Marshal(details)
	if err != nil {
		detailsJSON = []byte("{}")
	}

	entry := &AuditLog{
		UserID:    userID,
		RefID:     refID,
		Scope:     scope,
		Action:    action,
		Details:   detailsJSON,
		IPAddress: ip,
		Status:    status,
	}
	if err := s.repo.Create(ctx, entry); err != nil {
		log.Printf("⚠️ Failed to write audit log (%s %s): %v", scope, action, err)
	}
}

func (s *service) HistoryForUser(ctx context.Context, userID uint, page, limit int) (*Paginated, error) {
	page, limit = clampPage(page, limit)
	logs, total, err := s.repo.ListByUser(ctx, userID, limit, (page-1)*limit)
	if err != nil {
		return nil, err
	}
	return paginate(logs, total, page, limit), nil
}

func (s *service) List(ctx context.Context, filter Filter) (*Paginated, error) {
	filter.Page, filter.Limit = clampPage(filter.Page, filter.Limit)
	logs, total, err := s.repo.ListByFilter(ctx, filter)
	if err != nil {
		return nil, err
	}
	return paginate(logs, total, filter.Page, filter.Limit), nil
}

func clampPage(page, limit int) (int, int) {
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}
	return page, limit
}

func paginate(logs []AuditLog, total int64, page, limit int) *Paginated {
	return &Paginated{
		Data:       logs,
		Total:      total,
		Page:       page,
		Limit:      limit,
		TotalPages: int(math.Ceil(float64(total) / float64(limit))),
	}
}
