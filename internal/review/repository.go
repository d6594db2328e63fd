package review

import (
	"gorm.io/gorm"
)

type Repository interface {
	CreateDecision(d *Decision) error
	ListDecisions(scope string, refID uint) ([]Decision, error)
}

type repository struct{ db *gorm.DB }

func NewRepository(db *gorm.DB) Repository {
	return &repository{db}
}

func (r *repository) CreateDecision(d *Decision) error {
	return r.db.Create(d).Error
}

func (r *repository) ListDecisions(scope string, refID uint) ([]Decision, error) {
	var decisions []Decision
	err := r.db.
		Where("scope = ? AND ref_id = ?", scope, refID).
		Order("created_at DESC").
		Find(&decisions).Error
	return decisions, err
}
