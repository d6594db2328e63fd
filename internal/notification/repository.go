package notification

import (
	"gorm.io/gorm"
)

type Repository interface {
	Create(item *InboxItem) error
	ListByUser(userID uint, limit, offset int) ([]InboxItem, int64, error)
	MarkRead(userID uint, itemID uint) error
}

type repository struct{ db *gorm.DB }

func NewRepository(db *gorm.DB) Repository {
	return &repository{db}
}

func (r *repository) Create(item *InboxItem) error {
	return r.db.Create(item).Error
}

func (r *repository) ListByUser(userID uint, limit, offset int) ([]InboxItem, int64, error) {
	var (
		items []InboxItem
		total int64
	)
	q := r.db.Model(&InboxItem{}).Where("user_id = ?", userID)
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	err := q.Order("created_at DESC").Limit(limit).Offset(offset).Find(&items).Error
	return items, total, err
}

func (r *repository) MarkRead(userID uint, itemID uint) error {
	res := r.db.Model(&InboxItem{}).
		Where("id = ? AND user_id = ?", itemID, userID).
		Update("read", true)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
