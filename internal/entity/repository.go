package entity

import (
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/Chelo123Mau/P-RENAPP/internal/submission"
)

type Repository interface {
	Transaction(fn func(tx *gorm.DB) error) error

	UpsertDraft(draft *EntityDraft) error
	FindDraftByUserID(userID uint) (*EntityDraft, error)

	CreateTx(tx *gorm.DB, e *Entity) error
	FindByUserID(userID uint) (*Entity, error)
	FindByID(id uint) (*Entity, error)
	ExistsForUser(userID uint) (bool, error)
	UpdateStatus(id uint, status submission.Status) error
	ListByStatuses(statuses []submission.Status, q, sort string, limit, offset int) ([]Entity, int64, error)
	ListAll(q string, limit, offset int) ([]Entity, int64, error)
	CountByStatuses(statuses []submission.Status) (int64, error)
}

type repository struct{ db *gorm.DB }

func NewRepository(db *gorm.DB) Repository {
	return &repository{db}
}

// Transaction spans the entity insert and the draft-file reassignment.
func (r *repository) Transaction(fn func(tx *gorm.DB) error) error {
	return r.db.Transaction(fn)
}

func (r *repository) UpsertDraft(draft *EntityDraft) error {
	return r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"data", "updated_at"}),
	}).Create(draft).Error
}

func (r *repository) FindDraftByUserID(userID uint) (*EntityDraft, error) {
	var draft EntityDraft
	err := r.db.Where("user_id = ?", userID).First(&draft).Error
	return &draft, err
}

func (r *repository) CreateTx(tx *gorm.DB, e *Entity) error {
	return tx.Create(e).Error
}

func (r *repository) FindByUserID(userID uint) (*Entity, error) {
	var e Entity
	err := r.db.Where("user_id = ?", userID).First(&e).Error
	return &e, err
}

func (r *repository) FindByID(id uint) (*Entity, error) {
	var e Entity
	err := r.db.First(&e, id).Error
	return &e, err
}

func (r *repository) ExistsForUser(userID uint) (bool, error) {
	var count int64
	err := r.db.Model(&Entity{}).Where("user_id = ?", userID).Count(&count).Error
	return count > 0, err
}

func (r *repository) UpdateStatus(id uint, status submission.Status) error {
	return r.db.Model(&Entity{}).Where("id = ?", id).Update("status", status).Error
}

func (r *repository) ListByStatuses(statuses []submission.Status, q, sort string, limit, offset int) ([]Entity, int64, error) {
	var (
		entities []Entity
		total    int64
	)
	query := r.db.Model(&Entity{}).Where("status IN ?", statuses)
	if q != "" {
		like := "%" + q + "%"
		query = query.Where("name ILIKE ? OR nit ILIKE ?", like, like)
	}
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	err := query.Order(orderClause(sort)).Limit(limit).Offset(offset).Find(&entities).Error
	return entities, total, err
}

// orderClause maps the sort query param onto a fixed column. Oldest-first
// is the reviewer queue order, newest-first the default listing order.
func orderClause(sort string) string {
	if sort == "oldest" {
		return "updated_at ASC"
	}
	return "updated_at DESC"
}

func (r *repository) ListAll(q string, limit, offset int) ([]Entity, int64, error) {
	var (
		entities []Entity
		total    int64
	)
	query := r.db.Model(&Entity{})
	if q != "" {
		like := "%" + q + "%"
		query = query.Where("name ILIKE ? OR nit ILIKE ?", like, like)
	}
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	err := query.Order("updated_at DESC").Limit(limit).Offset(offset).Find(&entities).Error
	return entities, total, err
}

func (r *repository) CountByStatuses(statuses []submission.Status) (int64, error) {
	var total int64
	err := r.db.Model(&Entity{}).Where("status IN ?", statuses).Count(&total).Error
	return total, err
}
