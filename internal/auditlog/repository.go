package auditlog

import (
	"context"

	"gorm.io/gorm"
)

// Filter narrows the staff listing.
type Filter struct {
	UserID *uint
	Scope  string
	Action string
	Page   int
	Limit  int
}

type Repository interface {
	Create(ctx context.Context, entry *AuditLog) error
	ListByUser(ctx context.Context, userID uint, limit, offset int) ([]AuditLog, int64, error)
	ListByFilter(ctx context.Context, filter Filter) ([]AuditLog, int64, error)
}

type repository struct{ db *gorm.DB }

func NewRepository(db *gorm.DB) Repository {
	return &repository{db}
}

func (r *repository) Create(ctx context.Context, entry *AuditLog) error {
	return r.db.WithContext(ctx).Create(entry).Error
}

func (r *repository) ListByUser(ctx context.Context, userID uint, limit, offset int) ([]AuditLog, int64, error) {
	var (
		logs  []AuditLog
		total int64
	)
	q := r.db.WithContext(ctx).Model(&AuditLog{}).Where("user_id = ?", userID)
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	err := q.Order("created_at DESC").Limit(limit).Offset(offset).Find(&logs).Error
	return logs, total, err
}

func (r *repository) ListByFilter(ctx context.Context, filter Filter) ([]AuditLog, int64, error) {
	var (
		logs  []AuditLog
		total int64
	)
	q := r.db.WithContext(ctx).Model(&AuditLog{})
	if filter.UserID != nil {
		q = q.Where("user_id = ?", *filter.UserID)
	}
	if filter.Scope != "" {
		q = q.Where("scope = ?", filter.Scope)
	}
	if filter.Action != "" {
		q = q.Where("action = ?", filter.Action)
	}
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (filter.Page - 1) * filter.Limit
	err := q.Order("created_at DESC").Limit(filter.Limit).Offset(offset).Find(&logs).Error
	return logs, total, err
}
