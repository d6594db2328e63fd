package file

import (
	"gorm.io/gorm"
)

type Repository interface {
	Create(f *File) error
	Delete(id uint) error
	FindByDraftKey(draftKey string, userID uint) ([]File, error)
	FindByOwner(userID uint, docType string) ([]File, error)
	FindByEntityID(entityID uint, docType string) ([]File, error)
	FindByProjectID(projectID uint, docType string) ([]File, error)
	ListByDocType(docType string, limit, offset int) ([]File, int64, error)

	ReassignToEntity(tx *gorm.DB, draftKey string, userID uint, entityID uint) (int64, error)
	ReassignToProject(tx *gorm.DB, draftKey string, userID uint, projectID uint) (int64, error)
}

type repository struct{ db *gorm.DB }

func NewRepository(db *gorm.DB) Repository {
	return &repository{db}
}

func (r *repository) Create(f *File) error {
	return r.db.Create(f).Error
}

func (r *repository) Delete(id uint) error {
	return r.db.Delete(&File{}, id).Error
}

func (r *repository) FindByDraftKey(draftKey string, userID uint) ([]File, error) {
	var files []File
	err := r.db.
		Where("draft_key = ? AND created_by_user_id = ?", draftKey, userID).
		Order("created_at ASC").
		Find(&files).Error
	return files, err
}

func (r *repository) FindByOwner(userID uint, docType string) ([]File, error) {
	var files []File
	q := r.db.Where("created_by_user_id = ?", userID)
	if docType != "" {
		q = q.Where("doc_type = ?", docType)
	}
	err := q.Order("created_at ASC").Find(&files).Error
	return files, err
}

func (r *repository) FindByEntityID(entityID uint, docType string) ([]File, error) {
	var files []File
	q := r.db.Where("entity_id = ?", entityID)
	if docType != "" {
		q = q.Where("doc_type = ?", docType)
	}
	err := q.Order("created_at ASC").Find(&files).Error
	return files, err
}

func (r *repository) FindByProjectID(projectID uint, docType string) ([]File, error) {
	var files []File
	q := r.db.Where("project_id = ?", projectID)
	if docType != "" {
		q = q.Where("doc_type = ?", docType)
	}
	err := q.Order("created_at ASC").Find(&files).Error
	return files, err
}

func (r *repository) ListByDocType(docType string, limit, offset int) ([]File, int64, error) {
	var (
		files []File
		total int64
	)
	q := r.db.Model(&File{}).Where("doc_type = ?", docType)
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	err := q.Order("created_at DESC").Limit(limit).Offset(offset).Find(&files).Error
	return files, total, err
}

// ReassignToEntity moves every draft file of the owner onto the new
// entity and clears the draft key. Runs inside the caller's transaction.
func (r *repository) ReassignToEntity(tx *gorm.DB, draftKey string, userID uint, entityID uint) (int64, error) {
	res := tx.Model(&File{}).
		Where("draft_key = ? AND created_by_user_id = ?", draftKey, userID).
		Updates(map[string]interface{}{
			"entity_id": entityID,
			"draft_key": nil,
		})
	return res.RowsAffected, res.Error
}

func (r *repository) ReassignToProject(tx *gorm.DB, draftKey string, userID uint, projectID uint) (int64, error) {
	res := tx.Model(&File{}).
		Where("draft_key = ? AND created_by_user_id = ?", draftKey, userID).
		Updates(map[string]interface{}{
			"project_id": projectID,
			"draft_key":  nil,
		})
	return res.RowsAffected, res.Error
}
