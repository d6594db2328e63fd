package project

import (
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/Chelo123Mau/P-RENAPP/internal/submission"
)

type Repository interface {
	Transaction(fn func(tx *gorm.DB) error) error

	UpsertDraft(draft *ProjectDraft) error
	FindDraftByUserID(userID uint) (*ProjectDraft, error)

	CreateTx(tx *gorm.DB, p *Project) error
	FindByID(id uint) (*Project, error)
	ListByUserID(userID uint) ([]Project, error)
	UpdateStatus(id uint, status submission.Status) error
	ListByStatuses(statuses []submission.Status, q, sort string, limit, offset int) ([]Project, int64, error)
	ListAll(q string, limit, offset int) ([]Project, int64, error)
	CountByStatuses(statuses []submission.Status) (int64, error)
}

type repository struct{ db *gorm.DB }

func NewRepository(db *gorm.DB) Repository {
	return &repository{db}
}

// Transaction spans the project insert and the draft-file reassignment.
func (r *repository) Transaction(fn func(tx *gorm.DB) error) error {
	return r.db.Transaction(fn)
}

func (r *repository) UpsertDraft(draft *ProjectDraft) error {
	return r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"data", "updated_at"}),
	}).Create(draft).Error
}

func (r *repository) FindDraftByUserID(userID uint) (*ProjectDraft, error) {
	var draft ProjectDraft
	err := r.db.Where("user_id = ?", userID).First(&draft).Error
	return &draft, err
}

func (r *repository) CreateTx(tx *gorm.DB, p *Project) error {
	return tx.Create(p).Error
}

func (r *repository) FindByID(id uint) (*Project, error) {
	var p Project
	err := r.db.First(&p, id).Error
	return &p, err
}

func (r *repository) ListByUserID(userID uint) ([]Project, error) {
	var projects []Project
	err := r.db.Where("user_id = ?", userID).Order("created_at DESC").Find(&projects).Error
	return projects, err
}

func (r *repository) UpdateStatus(id uint, status submission.Status) error {
	return r.db.Model(&Project{}).Where("id = ?", id).Update("status", status).Error
}

func (r *repository) ListByStatuses(statuses []submission.Status, q, sort string, limit, offset int) ([]Project, int64, error) {
	var (
		projects []Project
		total    int64
	)
	query := r.db.Model(&Project{}).Where("status IN ?", statuses)
	if q != "" {
		like := "%" + q + "%"
		query = query.Where("title ILIKE ? OR titular_medida ILIKE ?", like, like)
	}
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	err := query.Order(orderClause(sort)).Limit(limit).Offset(offset).Find(&projects).Error
	return projects, total, err
}

func orderClause(sort string) string {
	if sort == "oldest" {
		return "updated_at ASC"
	}
	return "updated_at DESC"
}

func (r *repository) ListAll(q string, limit, offset int) ([]Project, int64, error) {
	var (
		projects []Project
		total    int64
	)
	query := r.db.Model(&Project{})
	if q != "" {
		like := "%" + q + "%"
		query = query.Where("title ILIKE ? OR titular_medida ILIKE ?", like, like)
	}
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	err := query.Order("updated_at DESC").Limit(limit).Offset(offset).Find(&projects).Error
	return projects, total, err
}

func (r *repository) CountByStatuses(statuses []submission.Status) (int64, error) {
	var total int64
	err := r.db.Model(&Project{}).Where("status IN ?", statuses).Count(&total).Error
	return total, err
}
