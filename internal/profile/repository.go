package profile

import (
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/Chelo123Mau/P-RENAPP/internal/submission"
)

type Repository interface {
	UpsertDraft(draft *ProfileDraft) error
	FindDraftByUserID(userID uint) (*ProfileDraft, error)

	SaveProfile(p *UserProfile) error
	FindByUserID(userID uint) (*UserProfile, error)
	FindByID(id uint) (*UserProfile, error)
	UpdateStatus(id uint, status submission.Status) error
	ListByStatuses(statuses []submission.Status, q, sort string, limit, offset int) ([]UserProfile, int64, error)
	ListAll(q string, limit, offset int) ([]UserProfile, int64, error)
	CountByStatuses(statuses []submission.Status) (int64, error)
}

type repository struct{ db *gorm.DB }

func NewRepository(db *gorm.DB) Repository {
	return &repository{db}
}

func (r *repository) UpsertDraft(draft *ProfileDraft) error {
	return r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"data", "updated_at"}),
	}).Create(draft).Error
}

func (r *repository) FindDraftByUserID(userID uint) (*ProfileDraft, error) {
	var draft ProfileDraft
	err := r.db.Where("user_id = ?", userID).First(&draft).Error
	return &draft, err
}

func (r *repository) SaveProfile(p *UserProfile) error {
	return r.db.Save(p).Error
}

func (r *repository) FindByUserID(userID uint) (*UserProfile, error) {
	var p UserProfile
	err := r.db.Where("user_id = ?", userID).First(&p).Error
	return &p, err
}

func (r *repository) FindByID(id uint) (*UserProfile, error) {
	var p UserProfile
	err := r.db.First(&p, id).Error
	return &p, err
}

func (r *repository) UpdateStatus(id uint, status submission.Status) error {
	return r.db.Model(&UserProfile{}).Where("id = ?", id).Update("status", status).Error
}

func (r *repository) ListByStatuses(statuses []submission.Status, q, sort string, limit, offset int) ([]UserProfile, int64, error) {
	var (
		profiles []UserProfile
		total    int64
	)
	query := r.db.Model(&UserProfile{}).Where("status IN ?", statuses)
	if q != "" {
		like := "%" + q + "%"
		query = query.Where("nombres ILIKE ? OR apellidos ILIKE ? OR nro_documento ILIKE ?", like, like, like)
	}
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	err := query.Order(orderClause(sort)).Limit(limit).Offset(offset).Find(&profiles).Error
	return profiles, total, err
}

func orderClause(sort string) string {
	if sort == "oldest" {
		return "updated_at ASC"
	}
	return "updated_at DESC"
}

func (r *repository) ListAll(q string, limit, offset int) ([]UserProfile, int64, error) {
	var (
		profiles []UserProfile
		total    int64
	)
	query := r.db.Model(&UserProfile{})
	if q != "" {
		like := "%" + q + "%"
		query = query.Where("nombres ILIKE ? OR apellidos ILIKE ? OR nro_documento ILIKE ?", like, like, like)
	}
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	err := query.Order("updated_at DESC").Limit(limit).Offset(offset).Find(&profiles).Error
	return profiles, total, err
}

func (r *repository) CountByStatuses(statuses []submission.Status) (int64, error) {
	var total int64
	err := r.db.Model(&UserProfile{}).Where("status IN ?", statuses).Count(&total).Error
	return total, err
}
