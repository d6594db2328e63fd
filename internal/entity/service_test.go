package entity

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"

	"github.com/Chelo123Mau/P-RENAPP/internal/auditlog"
	"github.com/Chelo123Mau/P-RENAPP/internal/file"
	"github.com/Chelo123Mau/P-RENAPP/internal/submission"
)

type fakeRepo struct {
	exists    bool
	createErr error
	entity    *Entity
	draft     *EntityDraft
	status    submission.Status
}

func (r *fakeRepo) Transaction(fn func(tx *gorm.DB) error) error { return fn(nil) }

func (r *fakeRepo) UpsertDraft(d *EntityDraft) error {
	r.draft = d
	return nil
}

func (r *fakeRepo) FindDraftByUserID(userID uint) (*EntityDraft, error) {
	if r.draft == nil {
		return nil, gorm.ErrRecordNotFound
	}
	return r.draft, nil
}

func (r *fakeRepo) CreateTx(tx *gorm.DB, e *Entity) error {
	if r.createErr != nil {
		return r.createErr
	}
	e.ID = 7
	r.entity = e
	return nil
}

func (r *fakeRepo) FindByUserID(userID uint) (*Entity, error) {
	if r.entity == nil {
		return nil, gorm.ErrRecordNotFound
	}
	return r.entity, nil
}

func (r *fakeRepo) FindByID(id uint) (*Entity, error) {
	if r.entity == nil || r.entity.ID != id {
		return nil, gorm.ErrRecordNotFound
	}
	return r.entity, nil
}

func (r *fakeRepo) ExistsForUser(userID uint) (bool, error) { return r.exists, nil }

func (r *fakeRepo) UpdateStatus(id uint, status submission.Status) error {
	r.status = status
	return nil
}

func (r *fakeRepo) ListByStatuses(statuses []submission.Status, q, sort string, limit, offset int) ([]Entity, int64, error) {
	return nil, 0, nil
}

func (r *fakeRepo) ListAll(q string, limit, offset int) ([]Entity, int64, error) {
	return nil, 0, nil
}

func (r *fakeRepo) CountByStatuses(statuses []submission.Status) (int64, error) { return 0, nil }

type fakeFiles struct {
	file.Service
	reassignErr error
	called      bool
	draftKey    string
	userID      uint
	entityID    uint
}

func (f *fakeFiles) ReassignToEntity(tx *gorm.DB, draftKey string, userID uint, entityID uint) error {
	f.called = true
	f.draftKey = draftKey
	f.userID = userID
	f.entityID = entityID
	return f.reassignErr
}

type fakeAudit struct{}

func (fakeAudit) LogAction(ctx context.Context, userID *uint, refID *uint, scope string, action string, details map[string]interface{}, ip string, status string) {
}

func (fakeAudit) HistoryForUser(ctx context.Context, userID uint, page, limit int) (*auditlog.Paginated, error) {
	return nil, nil
}

func (fakeAudit) List(ctx context.Context, filter auditlog.Filter) (*auditlog.Paginated, error) {
	return nil, nil
}

func TestCreateRejectsSecondEntity(t *testing.T) {
	repo := &fakeRepo{exists: true}
	svc := NewService(repo, &fakeFiles{}, fakeAudit{})

	_, err := svc.Create(context.Background(), 3, "", map[string]interface{}{"name": "Coop Illimani"}, "10.0.0.1")
	assert.ErrorIs(t, err, ErrDuplicateEntity)
}

func TestCreateMapsUniqueViolationToDuplicate(t *testing.T) {
	repo := &fakeRepo{
		createErr: errors.New(`duplicate key value violates unique constraint "idx_entities_user_id" (SQLSTATE 23505)`),
	}
	svc := NewService(repo, &fakeFiles{}, fakeAudit{})

	_, err := svc.Create(context.Background(), 3, "", map[string]interface{}{"name": "Coop Illimani"}, "10.0.0.1")
	assert.ErrorIs(t, err, ErrDuplicateEntity)
}

func TestIsUniqueViolation(t *testing.T) {
	assert.True(t, isUniqueViolation(gorm.ErrDuplicatedKey))
	assert.True(t, isUniqueViolation(errors.New("ERROR: duplicate key (SQLSTATE 23505)")))
	assert.False(t, isUniqueViolation(errors.New("connection refused")))
	assert.False(t, isUniqueViolation(nil))
}

func TestCreateClaimsDraftFiles(t *testing.T) {
	repo := &fakeRepo{}
	files := &fakeFiles{}
	svc := NewService(repo, files, fakeAudit{})

	e, err := svc.Create(context.Background(), 3, "dk-123", map[string]interface{}{"name": "Coop Illimani"}, "10.0.0.1")
	assert.NoError(t, err)
	assert.True(t, files.called)
	assert.Equal(t, "dk-123", files.draftKey)
	assert.Equal(t, uint(3), files.userID)
	assert.Equal(t, e.ID, files.entityID)
	assert.Equal(t, submission.StatusEnviado, e.Status)
}

func TestCreateWithoutDraftKeySkipsReassignment(t *testing.T) {
	files := &fakeFiles{}
	svc := NewService(&fakeRepo{}, files, fakeAudit{})

	_, err := svc.Create(context.Background(), 3, "", map[string]interface{}{"name": "Coop Illimani"}, "10.0.0.1")
	assert.NoError(t, err)
	assert.False(t, files.called)
}

func TestCreateAbortsWhenReassignmentFails(t *testing.T) {
	reassignErr := errors.New("update failed")
	files := &fakeFiles{reassignErr: reassignErr}
	svc := NewService(&fakeRepo{}, files, fakeAudit{})

	_, err := svc.Create(context.Background(), 3, "dk-123", map[string]interface{}{"name": "Coop Illimani"}, "10.0.0.1")
	assert.ErrorIs(t, err, reassignErr)
}

func TestRequestChangeByNonOwner(t *testing.T) {
	repo := &fakeRepo{entity: &Entity{ID: 7, UserID: 3, Status: submission.StatusAprobado}}
	svc := NewService(repo, &fakeFiles{}, fakeAudit{})

	_, err := svc.RequestChange(context.Background(), 99, 7, "10.0.0.1")
	assert.ErrorIs(t, err, ErrNotOwner)
}

func TestRequestChangeMovesToModificationQueue(t *testing.T) {
	repo := &fakeRepo{entity: &Entity{ID: 7, UserID: 3, Status: submission.StatusAprobado}}
	svc := NewService(repo, &fakeFiles{}, fakeAudit{})

	e, err := svc.RequestChange(context.Background(), 3, 7, "10.0.0.1")
	assert.NoError(t, err)
	assert.Equal(t, submission.StatusSolicitudMod, e.Status)
	assert.Equal(t, submission.StatusSolicitudMod, repo.status)
}
